package model

// Setting mirrors a row of the `settings` table. Value always holds the
// string encoding; Type tells consumers how to decode it (string, number,
// boolean or json). Category is the first namespace segment of the key
// unless assigned explicitly at seed time.
//
// Fields:
//  Key         – globally unique, dot-namespaced key (e.g. "site.name").
//  Value       – string encoding of the value.
//  Type        – declared type tag: "string", "number", "boolean" or "json".
//  Category    – grouping used by the admin UI and the resolver.
//  Description – human-readable purpose of the setting.
type Setting struct {
	Key         string `json:"key"`         // settings.key
	Value       string `json:"value"`       // settings.value
	Type        string `json:"type"`        // settings.type
	Category    string `json:"category"`    // settings.category
	Description string `json:"description"` // settings.description
}
