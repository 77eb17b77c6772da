package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/iliyamo/folio-cms/internal/model"
)

// Cache is the resolved-settings view consumed by pages, feeds and the OG
// renderer. Two sources populate it over a process lifetime: a server-side
// snapshot seeded at startup (a best-effort placeholder so nothing renders
// against an empty map) and the cache's own fetch from the settings
// endpoint, which permanently supersedes the snapshot. The supersession is
// a one-way latch: once the fetch has resolved, a snapshot can never
// overwrite it again.
//
// A Cache is owned by a single server process; the latch is guarded by the
// same mutex as the map, no further coordination exists or is needed.
type Cache struct {
	mu     sync.RWMutex
	values map[string]model.Setting
	loaded bool // set once authoritative data arrived; never cleared

	endpoint string
	client   *http.Client
}

// NewCache builds an empty cache fetching from the given settings
// endpoint. The HTTP client carries a bounded timeout: a hanging settings
// fetch degrades to defaults instead of hanging consumers.
func NewCache(endpoint string) *Cache {
	return &Cache{
		values:   map[string]model.Setting{},
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// Seed installs a server-side snapshot as provisional values. Once the
// cache has loaded its own data the snapshot is ignored: authoritative
// data never reverts to a placeholder, no matter how often callers re-seed.
func (c *Cache) Seed(snapshot []model.Setting) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return
	}
	c.install(snapshot)
}

// Apply installs rows as authoritative data and flips the latch. The
// settings handlers call this after a successful write so the local view
// does not wait for the next fetch.
func (c *Cache) Apply(rows []model.Setting) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.install(rows)
	c.loaded = true
}

// install replaces the map content. Callers hold the lock.
func (c *Cache) install(rows []model.Setting) {
	m := make(map[string]model.Setting, len(rows))
	for _, row := range rows {
		m[row.Key] = row
	}
	c.values = m
}

// Load fetches the settings endpoint and installs the result as
// authoritative. On failure the cache keeps whatever it has; if it has
// nothing at all, the built-in defaults are installed (without flipping
// the latch) so every consumer-facing field still resolves.
func (c *Cache) Load(ctx context.Context) error {
	err := c.fetch(ctx)
	if err == nil {
		return nil
	}
	c.mu.Lock()
	if !c.loaded && len(c.values) == 0 {
		c.install(DefaultRows())
	}
	c.mu.Unlock()
	return err
}

func (c *Cache) fetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("settings fetch: unexpected status %d", resp.StatusCode)
	}
	var payload struct {
		Success  bool            `json:"success"`
		Settings []model.Setting `json:"settings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return err
	}
	if !payload.Success {
		return fmt.Errorf("settings fetch: endpoint reported failure")
	}
	c.Apply(payload.Settings)
	return nil
}

// Loaded reports whether authoritative data has arrived.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// GetValue decodes the stored value of key per its declared type and
// returns def when the key is absent or its value does not decode. A
// malformed stored value can never panic past this boundary.
func (c *Cache) GetValue(key string, def any) any {
	c.mu.RLock()
	row, ok := c.values[key]
	c.mu.RUnlock()
	if !ok {
		return def
	}
	v, err := Decode(row.Type, row.Value)
	if err != nil {
		return def
	}
	return v
}

// Typed convenience accessors. A value of the wrong dynamic type falls
// back to the default, same as an absent key.

func (c *Cache) GetString(key, def string) string {
	if s, ok := c.GetValue(key, def).(string); ok {
		return s
	}
	return def
}

func (c *Cache) GetBool(key string, def bool) bool {
	if b, ok := c.GetValue(key, def).(bool); ok {
		return b
	}
	return def
}

func (c *Cache) GetNumber(key string, def float64) float64 {
	if f, ok := c.GetValue(key, def).(float64); ok {
		return f
	}
	return def
}

func (c *Cache) GetStrings(key string, def []string) []string {
	v := c.GetValue(key, nil)
	if v == nil {
		return def
	}
	if out := stringsFromJSON(v); out != nil {
		return out
	}
	return def
}
