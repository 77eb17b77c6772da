package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/folio-cms/internal/model"
)

// CategoryRepo and TagRepo are small slug/name lookup tables; the two are
// kept in one file because their queries are near identical.

type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, slug, name FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (model.Category, error) {
	var c model.Category
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, slug, name FROM categories WHERE slug=? LIMIT 1", slug).
		Scan(&c.ID, &c.Slug, &c.Name)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

func (r *CategoryRepo) Create(ctx context.Context, slug, name string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO categories (slug, name) VALUES (?,?)", slug, name)
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

func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// Orphan the notes instead of deleting them.
	if _, err := tx.ExecContext(ctx, "UPDATE notes SET category_id=NULL WHERE category_id=?", id); err != nil {
		_ = tx.Rollback()
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE id=?", id)
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

type TagRepo struct{ DB *sql.DB }

func NewTagRepo(db *sql.DB) *TagRepo { return &TagRepo{DB: db} }

func (r *TagRepo) List(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, slug, name FROM tags ORDER BY name")
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

func (r *TagRepo) Create(ctx context.Context, slug, name string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tags (slug, name) VALUES (?,?)", slug, name)
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

func (r *TagRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM note_tags WHERE tag_id=?", id); err != nil {
		_ = tx.Rollback()
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM tags WHERE id=?", id)
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
