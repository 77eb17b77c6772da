package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/iliyamo/folio-cms/internal/model"
)

func settingsServer(t *testing.T, rows []model.Setting, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "settings": rows})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func row(key, value, typeTag string) model.Setting {
	return model.Setting{Key: key, Value: value, Type: typeTag}
}

func TestCacheSeedThenLoad(t *testing.T) {
	srv := settingsServer(t, []model.Setting{row("site.name", "Fetched", TypeString)}, http.StatusOK)
	c := NewCache(srv.URL)

	c.Seed([]model.Setting{row("site.name", "Seeded", TypeString)})
	if got := c.GetString("site.name", "?"); got != "Seeded" {
		t.Fatalf("after seed: site.name = %q", got)
	}
	if c.Loaded() {
		t.Fatal("seed flipped the loaded latch")
	}

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := c.GetString("site.name", "?"); got != "Fetched" {
		t.Errorf("after load: site.name = %q, want Fetched", got)
	}
	if !c.Loaded() {
		t.Error("load did not flip the latch")
	}
}

// Once loaded, a snapshot can never supersede the fetched data again.
func TestCacheSnapshotCannotOverwriteLoadedData(t *testing.T) {
	srv := settingsServer(t, []model.Setting{row("site.name", "Fetched", TypeString)}, http.StatusOK)
	c := NewCache(srv.URL)

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	c.Seed([]model.Setting{row("site.name", "Stale Snapshot", TypeString)})
	if got := c.GetString("site.name", "?"); got != "Fetched" {
		t.Errorf("seed after load took effect: site.name = %q", got)
	}
}

func TestCacheApplyFlipsLatch(t *testing.T) {
	c := NewCache("http://unused.invalid")
	c.Apply([]model.Setting{row("site.name", "Written", TypeString)})
	if !c.Loaded() {
		t.Error("Apply() did not flip the latch")
	}
	c.Seed([]model.Setting{row("site.name", "Snapshot", TypeString)})
	if got := c.GetString("site.name", "?"); got != "Written" {
		t.Errorf("seed after apply took effect: site.name = %q", got)
	}
}

func TestCacheLoadFailureDegradesToDefaults(t *testing.T) {
	srv := settingsServer(t, nil, http.StatusInternalServerError)
	c := NewCache(srv.URL)

	if err := c.Load(context.Background()); err == nil {
		t.Fatal("Load() against failing endpoint returned nil")
	}
	if c.Loaded() {
		t.Error("failed load flipped the latch")
	}
	// Consumers still resolve, from the built-in defaults.
	if got := c.GetString("site.name", "?"); got == "?" {
		t.Error("no defaults installed after failed load on empty cache")
	}
}

func TestCacheLoadFailureKeepsSeededValues(t *testing.T) {
	srv := settingsServer(t, nil, http.StatusInternalServerError)
	c := NewCache(srv.URL)
	c.Seed([]model.Setting{row("site.name", "Seeded", TypeString)})

	if err := c.Load(context.Background()); err == nil {
		t.Fatal("Load() against failing endpoint returned nil")
	}
	if got := c.GetString("site.name", "?"); got != "Seeded" {
		t.Errorf("failed load clobbered seeded values: site.name = %q", got)
	}
}

func TestGetValueFallbacks(t *testing.T) {
	c := NewCache("http://unused.invalid")
	c.Apply([]model.Setting{
		row("good.number", "4.5", TypeNumber),
		row("bad.number", "many", TypeNumber),
		row("good.bool", "true", TypeBoolean),
		row("good.list", `["a","b"]`, TypeJSON),
		row("bad.list", `{oops`, TypeJSON),
	})

	if got := c.GetNumber("good.number", 1); got != 4.5 {
		t.Errorf("GetNumber(good) = %v", got)
	}
	if got := c.GetNumber("bad.number", 1); got != 1 {
		t.Errorf("GetNumber(undecodable) = %v, want default 1", got)
	}
	if got := c.GetNumber("absent.number", 2); got != 2 {
		t.Errorf("GetNumber(absent) = %v, want default 2", got)
	}
	if got := c.GetBool("good.bool", false); got != true {
		t.Errorf("GetBool(good) = %v", got)
	}
	if got := c.GetStrings("good.list", nil); len(got) != 2 || got[0] != "a" {
		t.Errorf("GetStrings(good) = %v", got)
	}
	if got := c.GetStrings("bad.list", []string{"d"}); len(got) != 1 || got[0] != "d" {
		t.Errorf("GetStrings(undecodable) = %v, want default", got)
	}
	// Type mismatch falls back too: a number read as string.
	if got := c.GetString("good.number", "def"); got != "def" {
		t.Errorf("GetString over number = %q, want default", got)
	}
}

func TestGroupedViewsFollowUpdates(t *testing.T) {
	c := NewCache("http://unused.invalid")
	c.Apply([]model.Setting{
		row("features.rss_enabled", "false", TypeBoolean),
		row("uploads.max_size_mb", "25", TypeNumber),
	})
	if c.Features().RSS {
		t.Error("Features().RSS = true, want false")
	}
	if got := c.Uploads().MaxSizeMB; got != 25 {
		t.Errorf("Uploads().MaxSizeMB = %v, want 25", got)
	}

	c.Apply([]model.Setting{row("features.rss_enabled", "true", TypeBoolean)})
	if !c.Features().RSS {
		t.Error("Features().RSS did not follow the update")
	}
	// Key gone from the new snapshot: hardcoded fallback applies.
	if got := c.Uploads().MaxSizeMB; got != 10 {
		t.Errorf("Uploads().MaxSizeMB after key removal = %v, want fallback 10", got)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache("http://unused.invalid")
	c.Seed(DefaultRows())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.GetString("site.name", "")
				c.Features()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Apply(DefaultRows())
			}
		}()
	}
	wg.Wait()
}
