package settings // package settings implements the settings store, typed decoding and the hydration cache

import (
	"strings"

	"github.com/iliyamo/folio-cms/internal/model"
)

// Declared type tags for setting values. Every stored value is a string;
// the tag says how to decode it.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeJSON    = "json"
)

// Definition describes one recognized setting key. The set of definitions
// is the allow-list: updates naming any other key are rejected wholesale.
type Definition struct {
	Key         string
	Type        string
	Category    string
	Description string
	Default     string   // string encoding of the default value
	Enum        []string // non-empty -> value must be one of these
	IsURL       bool     // value must parse as an absolute URL
}

// Definitions is the full default set, seeded at initialization and
// restored by reset. Categories follow the first namespace segment of the
// key except where assigned explicitly.
var Definitions = []Definition{
	{Key: "site.name", Type: TypeString, Category: "site", Description: "Site title", Default: "Folio"},
	{Key: "site.tagline", Type: TypeString, Category: "site", Description: "Short tagline under the title", Default: "notes, projects and a resume"},
	{Key: "site.description", Type: TypeString, Category: "site", Description: "Longer description used on the home page", Default: "A personal portfolio site."},
	{Key: "site.url", Type: TypeString, Category: "site", Description: "Canonical base URL", Default: "http://localhost:8080", IsURL: true},
	{Key: "site.author", Type: TypeString, Category: "site", Description: "Owner display name", Default: "Site Owner"},
	{Key: "site.email", Type: TypeString, Category: "site", Description: "Public contact email", Default: "owner@example.com"},

	{Key: "appearance.theme", Type: TypeString, Category: "appearance", Description: "Color theme", Default: "system", Enum: []string{"light", "dark", "system"}},
	{Key: "appearance.accent_color", Type: TypeString, Category: "appearance", Description: "Accent color (hex)", Default: "#2563eb"},
	{Key: "appearance.font", Type: TypeString, Category: "appearance", Description: "Body font family", Default: "Inter"},
	{Key: "appearance.show_avatar", Type: TypeBoolean, Category: "appearance", Description: "Show the avatar on the home page", Default: "true"},

	{Key: "features.notes_enabled", Type: TypeBoolean, Category: "features", Description: "Expose the notes section", Default: "true"},
	{Key: "features.projects_enabled", Type: TypeBoolean, Category: "features", Description: "Expose the projects section", Default: "true"},
	{Key: "features.comments_enabled", Type: TypeBoolean, Category: "features", Description: "Enable note comments", Default: "false"},
	{Key: "features.rss_enabled", Type: TypeBoolean, Category: "features", Description: "Expose RSS/Atom/JSON feeds", Default: "true"},

	{Key: "uploads.max_size_mb", Type: TypeNumber, Category: "uploads", Description: "Maximum media upload size in megabytes", Default: "10"},
	{Key: "uploads.allowed_types", Type: TypeJSON, Category: "uploads", Description: "Allowed upload MIME types", Default: `["image/png","image/jpeg","image/webp","image/gif"]`},

	{Key: "seo.meta_title", Type: TypeString, Category: "seo", Description: "Default meta title", Default: "Folio"},
	{Key: "seo.meta_description", Type: TypeString, Category: "seo", Description: "Default meta description", Default: "A personal portfolio site."},
	{Key: "seo.keywords", Type: TypeJSON, Category: "seo", Description: "Default meta keywords", Default: `["portfolio","blog"]`},
	{Key: "seo.twitter_handle", Type: TypeString, Category: "seo", Description: "Twitter/X handle for cards", Default: ""},

	{Key: "notify.email_on_publish", Type: TypeBoolean, Category: "notify", Description: "Send an email when a note is published", Default: "false"},
	{Key: "notify.email_to", Type: TypeString, Category: "notify", Description: "Recipient for publish notifications", Default: ""},

	// Stored like any other setting but stripped from every listing
	// response by the sensitive-key filter below.
	{Key: "integrations.webhook_secret", Type: TypeString, Category: "integrations", Description: "Shared secret for outgoing webhooks", Default: ""},
}

var defByKey = func() map[string]Definition {
	m := make(map[string]Definition, len(Definitions))
	for _, d := range Definitions {
		m[d.Key] = d
	}
	return m
}()

// DefinitionFor returns the definition of a recognized key.
func DefinitionFor(key string) (Definition, bool) {
	d, ok := defByKey[key]
	return d, ok
}

// DefaultRows materializes the default set as settings rows, ready for
// seeding or reset.
func DefaultRows() []model.Setting {
	rows := make([]model.Setting, 0, len(Definitions))
	for _, d := range Definitions {
		rows = append(rows, model.Setting{
			Key:         d.Key,
			Value:       d.Default,
			Type:        d.Type,
			Category:    d.Category,
			Description: d.Description,
		})
	}
	return rows
}

// sensitiveFragments are matched as substrings of the key. Keys matching
// any fragment never leave the server through a listing response, admin
// callers included.
var sensitiveFragments = []string{"secret", "password", "credential", "token"}

// IsSensitiveKey reports whether a key must be filtered from externally
// facing reads.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, frag := range sensitiveFragments {
		if strings.Contains(k, frag) {
			return true
		}
	}
	return false
}
