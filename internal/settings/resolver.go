package settings

// Grouped views over the flat key/value map. Each accessor recomputes its
// struct from the cache on every call, so a settings update is visible on
// the next read. Every field has a hardcoded fallback: consumers get a
// usable value even when the settings fetch failed entirely.

// SiteIdentity groups the site.* keys.
type SiteIdentity struct {
	Name        string `json:"name"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	Email       string `json:"email"`
}

func (c *Cache) Site() SiteIdentity {
	return SiteIdentity{
		Name:        c.GetString("site.name", "Folio"),
		Tagline:     c.GetString("site.tagline", ""),
		Description: c.GetString("site.description", ""),
		URL:         c.GetString("site.url", "http://localhost:8080"),
		Author:      c.GetString("site.author", "Site Owner"),
		Email:       c.GetString("site.email", ""),
	}
}

// Appearance groups the appearance.* keys.
type Appearance struct {
	Theme       string `json:"theme"`
	AccentColor string `json:"accent_color"`
	Font        string `json:"font"`
	ShowAvatar  bool   `json:"show_avatar"`
}

func (c *Cache) Appearance() Appearance {
	return Appearance{
		Theme:       c.GetString("appearance.theme", "system"),
		AccentColor: c.GetString("appearance.accent_color", "#2563eb"),
		Font:        c.GetString("appearance.font", "Inter"),
		ShowAvatar:  c.GetBool("appearance.show_avatar", true),
	}
}

// Features groups the feature flags.
type Features struct {
	Notes    bool `json:"notes"`
	Projects bool `json:"projects"`
	Comments bool `json:"comments"`
	RSS      bool `json:"rss"`
}

func (c *Cache) Features() Features {
	return Features{
		Notes:    c.GetBool("features.notes_enabled", true),
		Projects: c.GetBool("features.projects_enabled", true),
		Comments: c.GetBool("features.comments_enabled", false),
		RSS:      c.GetBool("features.rss_enabled", true),
	}
}

// Uploads groups the upload limits.
type Uploads struct {
	MaxSizeMB    float64  `json:"max_size_mb"`
	AllowedTypes []string `json:"allowed_types"`
}

func (c *Cache) Uploads() Uploads {
	return Uploads{
		MaxSizeMB:    c.GetNumber("uploads.max_size_mb", 10),
		AllowedTypes: c.GetStrings("uploads.allowed_types", []string{"image/png", "image/jpeg"}),
	}
}

// SEO groups the seo.* keys.
type SEO struct {
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	Keywords        []string `json:"keywords"`
	TwitterHandle   string   `json:"twitter_handle"`
}

func (c *Cache) SEO() SEO {
	return SEO{
		MetaTitle:       c.GetString("seo.meta_title", "Folio"),
		MetaDescription: c.GetString("seo.meta_description", ""),
		Keywords:        c.GetStrings("seo.keywords", nil),
		TwitterHandle:   c.GetString("seo.twitter_handle", ""),
	}
}
