package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/folio-cms/internal/model"
)

type NoteRepo struct{ DB *sql.DB }

func NewNoteRepo(db *sql.DB) *NoteRepo { return &NoteRepo{DB: db} }

const noteColumns = "id,slug,title,summary,body,category_id,is_published,published_at,created_at,updated_at"

func scanNote(sc interface{ Scan(...any) error }) (model.Note, error) {
	var n model.Note
	var catID sql.NullInt64
	err := sc.Scan(&n.ID, &n.Slug, &n.Title, &n.Summary, &n.Body, &catID,
		&n.IsPublished, &n.PublishedAt, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return n, ErrNotFound
	}
	if catID.Valid {
		n.CategoryID = uint64(catID.Int64)
	}
	return n, err
}

// List returns notes, optionally restricted to published ones, newest
// first. Drafts only ever leave this repo through the admin handlers.
func (r *NoteRepo) List(ctx context.Context, publishedOnly bool, limit int) ([]model.Note, error) {
	q := "SELECT " + noteColumns + " FROM notes"
	if publishedOnly {
		q += " WHERE is_published=1"
	}
	q += " ORDER BY COALESCE(published_at, created_at) DESC"
	var args []any
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// ListByCategory returns published notes in a category, newest first.
func (r *NoteRepo) ListByCategory(ctx context.Context, categoryID uint64) ([]model.Note, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE is_published=1 AND category_id=? ORDER BY published_at DESC",
		categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// ListByTag returns published notes carrying a tag, newest first.
func (r *NoteRepo) ListByTag(ctx context.Context, tagSlug string) ([]model.Note, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+prefixed(noteColumns, "n.")+" FROM notes n"+
			" JOIN note_tags nt ON nt.note_id=n.id JOIN tags t ON t.id=nt.tag_id"+
			" WHERE n.is_published=1 AND t.slug=? ORDER BY n.published_at DESC",
		tagSlug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// prefixed qualifies each column of a comma-joined list for a join query.
func prefixed(columns, prefix string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = prefix + p
	}
	return strings.Join(parts, ",")
}

// GetBySlug fetches a note by slug.
func (r *NoteRepo) GetBySlug(ctx context.Context, slug string) (model.Note, error) {
	return scanNote(r.DB.QueryRowContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE slug=? LIMIT 1", slug))
}

// GetByID fetches a note by id.
func (r *NoteRepo) GetByID(ctx context.Context, id uint64) (model.Note, error) {
	return scanNote(r.DB.QueryRowContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE id=? LIMIT 1", id))
}

// Create inserts a draft note and returns its id.
func (r *NoteRepo) Create(ctx context.Context, n *model.Note) (uint64, error) {
	var catID any
	if n.CategoryID != 0 {
		catID = n.CategoryID
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notes (slug, title, summary, body, category_id) VALUES (?,?,?,?,?)",
		n.Slug, n.Title, n.Summary, n.Body, catID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites the editable fields of a note.
func (r *NoteRepo) Update(ctx context.Context, n *model.Note) error {
	var catID any
	if n.CategoryID != 0 {
		catID = n.CategoryID
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE notes SET slug=?, title=?, summary=?, body=?, category_id=? WHERE id=?",
		n.Slug, n.Title, n.Summary, n.Body, catID, n.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicate
		}
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		// Zero affected rows can also mean a no-change update; confirm existence.
		if _, err := r.GetByID(ctx, n.ID); err != nil {
			return err
		}
	}
	return nil
}

// SetPublished flips the published flag, stamping published_at on the
// first publish and clearing it on unpublish.
func (r *NoteRepo) SetPublished(ctx context.Context, id uint64, published bool, at time.Time) error {
	var res sql.Result
	var err error
	if published {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE notes SET is_published=1, published_at=COALESCE(published_at, ?) WHERE id=?",
			at.UTC(), id)
	} else {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE notes SET is_published=0, published_at=NULL WHERE id=?", id)
	}
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a note and its tag links.
func (r *NoteRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM note_tags WHERE note_id=?", id); err != nil {
		_ = tx.Rollback()
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM notes WHERE id=?", id)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		_ = tx.Rollback()
		return ErrNotFound
	}
	return tx.Commit()
}

// SetTags replaces the tag links of a note.
func (r *NoteRepo) SetTags(ctx context.Context, noteID uint64, tagIDs []uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM note_tags WHERE note_id=?", noteID); err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO note_tags (note_id, tag_id) VALUES (?,?)", noteID, tagID); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// TagsFor returns the tags linked to a note.
func (r *NoteRepo) TagsFor(ctx context.Context, noteID uint64) ([]model.Tag, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT t.id, t.slug, t.name FROM tags t JOIN note_tags nt ON nt.tag_id=t.id WHERE nt.note_id=? ORDER BY t.name",
		noteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
