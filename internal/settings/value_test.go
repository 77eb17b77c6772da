package settings

import (
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		typeTag string
		raw     string
		want    any
		wantErr bool
	}{
		{"bool true", TypeBoolean, "true", true, false},
		{"bool false", TypeBoolean, "false", false, false},
		{"bool junk is false", TypeBoolean, "yes", false, false},
		{"number", TypeNumber, "12.5", 12.5, false},
		{"number int form", TypeNumber, "10", 10.0, false},
		{"number junk", TypeNumber, "ten", nil, true},
		{"json array", TypeJSON, `["a","b"]`, []any{"a", "b"}, false},
		{"json object", TypeJSON, `{"k":1}`, map[string]any{"k": 1.0}, false},
		{"json junk", TypeJSON, `{broken`, nil, true},
		{"string passthrough", TypeString, "hello", "hello", false},
		{"unknown tag falls back to string", "color", "#fff", "#fff", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.typeTag, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode(%s, %q) error = %v, wantErr %v", tt.typeTag, tt.raw, err, tt.wantErr)
			}
			if err == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode(%s, %q) = %#v, want %#v", tt.typeTag, tt.raw, got, tt.want)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		typeTag string
		v       any
		want    string
		wantErr bool
	}{
		{"bool", TypeBoolean, true, "true", false},
		{"bool from string", TypeBoolean, "false", "false", false},
		{"bool from number", TypeBoolean, 1.0, "", true},
		{"number", TypeNumber, 12.5, "12.5", false},
		{"number from string", TypeNumber, "10", "10", false},
		{"number from bool", TypeNumber, true, "", true},
		{"json", TypeJSON, []any{"a"}, `["a"]`, false},
		{"string", TypeString, "x", "x", false},
		{"string from number", TypeString, 3.0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.typeTag, tt.v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Encode(%s, %#v) error = %v, wantErr %v", tt.typeTag, tt.v, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("Encode(%s, %#v) = %q, want %q", tt.typeTag, tt.v, got, tt.want)
			}
		})
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"integrations.webhook_secret", true},
		{"some.password_hint", true},
		{"api.token_ttl", true},
		{"aws.credentials_path", true},
		{"site.name", false},
		{"features.notes_enabled", false},
	}
	for _, tt := range tests {
		if got := IsSensitiveKey(tt.key); got != tt.want {
			t.Errorf("IsSensitiveKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

// Every definition's default must decode under its own type tag, otherwise
// a reset would plant values GetValue can never return.
func TestDefaultsDecode(t *testing.T) {
	for _, def := range Definitions {
		if _, err := Decode(def.Type, def.Default); err != nil {
			t.Errorf("default for %s does not decode as %s: %v", def.Key, def.Type, err)
		}
	}
}
