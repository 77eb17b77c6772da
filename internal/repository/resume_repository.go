package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/folio-cms/internal/model"
)

type ResumeRepo struct{ DB *sql.DB }

func NewResumeRepo(db *sql.DB) *ResumeRepo { return &ResumeRepo{DB: db} }

// List returns resume sections in display order. When visibleOnly is set,
// hidden sections are excluded (the public page uses this).
func (r *ResumeRepo) List(ctx context.Context, visibleOnly bool) ([]model.ResumeSection, error) {
	q := "SELECT id, kind, title, body, position, is_visible, updated_at FROM resume_sections"
	if visibleOnly {
		q += " WHERE is_visible=1"
	}
	q += " ORDER BY position, id"
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ResumeSection
	for rows.Next() {
		var s model.ResumeSection
		if err := rows.Scan(&s.ID, &s.Kind, &s.Title, &s.Body, &s.Position, &s.IsVisible, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ResumeRepo) Create(ctx context.Context, s *model.ResumeSection) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO resume_sections (kind, title, body, position, is_visible) VALUES (?,?,?,?,?)",
		s.Kind, s.Title, s.Body, s.Position, s.IsVisible)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *ResumeRepo) Update(ctx context.Context, s *model.ResumeSection) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE resume_sections SET kind=?, title=?, body=?, position=?, is_visible=? WHERE id=?",
		s.Kind, s.Title, s.Body, s.Position, s.IsVisible, s.ID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		var one int
		if err := r.DB.QueryRowContext(ctx,
			"SELECT 1 FROM resume_sections WHERE id=?", s.ID).Scan(&one); err == sql.ErrNoRows {
			return ErrNotFound
		}
	}
	return nil
}

func (r *ResumeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM resume_sections WHERE id=?", id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}
