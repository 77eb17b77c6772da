package model

import (
	"database/sql"
	"time"
)

// Note is a blog note / article as stored in the `notes` table.
type Note struct {
	ID          uint64       // notes.id
	Slug        string       // notes.slug (unique)
	Title       string       // notes.title
	Summary     string       // notes.summary
	Body        string       // notes.body (markdown)
	CategoryID  uint64       // notes.category_id (0 when uncategorized)
	IsPublished bool         // notes.is_published
	PublishedAt sql.NullTime // notes.published_at (null while draft)
	CreatedAt   time.Time    // notes.created_at
	UpdatedAt   time.Time    // notes.updated_at
}

// Category groups notes; a note belongs to at most one category.
type Category struct {
	ID   uint64 `json:"id"`   // categories.id
	Slug string `json:"slug"` // categories.slug (unique)
	Name string `json:"name"` // categories.name
}

// Tag is a free-form label attached to notes through `note_tags`.
type Tag struct {
	ID   uint64 `json:"id"`   // tags.id
	Slug string `json:"slug"` // tags.slug (unique)
	Name string `json:"name"` // tags.name
}
