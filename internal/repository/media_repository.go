package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/folio-cms/internal/model"
)

type MediaRepo struct{ DB *sql.DB }

func NewMediaRepo(db *sql.DB) *MediaRepo { return &MediaRepo{DB: db} }

func (r *MediaRepo) List(ctx context.Context) ([]model.MediaFile, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, object_key, file_name, content_type, size_bytes, url, uploaded_by, created_at FROM media_files ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.MediaFile
	for rows.Next() {
		var m model.MediaFile
		if err := rows.Scan(&m.ID, &m.ObjectKey, &m.FileName, &m.ContentType,
			&m.SizeBytes, &m.URL, &m.UploadedBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MediaRepo) GetByID(ctx context.Context, id uint64) (model.MediaFile, error) {
	var m model.MediaFile
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, object_key, file_name, content_type, size_bytes, url, uploaded_by, created_at FROM media_files WHERE id=? LIMIT 1",
		id).Scan(&m.ID, &m.ObjectKey, &m.FileName, &m.ContentType,
		&m.SizeBytes, &m.URL, &m.UploadedBy, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return m, ErrNotFound
	}
	return m, err
}

func (r *MediaRepo) Create(ctx context.Context, m *model.MediaFile) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO media_files (object_key, file_name, content_type, size_bytes, url, uploaded_by) VALUES (?,?,?,?,?,?)",
		m.ObjectKey, m.FileName, m.ContentType, m.SizeBytes, m.URL, m.UploadedBy)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *MediaRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM media_files WHERE id=?", id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}
