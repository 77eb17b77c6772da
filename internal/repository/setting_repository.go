package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/folio-cms/internal/model"
)

// SettingRepo reads and writes the `settings` table. Batch update and
// reset run inside transactions so readers never observe a half-applied
// batch or a partially cleared table.
type SettingRepo struct{ DB *sql.DB }

func NewSettingRepo(db *sql.DB) *SettingRepo { return &SettingRepo{DB: db} }

// GetAll returns every settings row ordered by key.
func (r *SettingRepo) GetAll(ctx context.Context) ([]model.Setting, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT `key`,`value`,`type`,category,description FROM settings ORDER BY `key`")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Setting
	for rows.Next() {
		var s model.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.Type, &s.Category, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateMany applies a validated key→value batch in one transaction.
// Validation happens above this layer; here every key is assumed to exist.
func (r *SettingRepo) UpdateMany(ctx context.Context, changes map[string]string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for k, v := range changes {
		if _, err := tx.ExecContext(ctx,
			"UPDATE settings SET `value`=? WHERE `key`=?", v, k); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Reset replaces the table content with the given rows atomically
// (clear-then-insert inside one transaction).
func (r *SettingRepo) Reset(ctx context.Context, defaults []model.Setting) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM settings"); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := insertSettings(ctx, tx, defaults, false); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Seed inserts rows that are not present yet, leaving existing values
// alone. Called once at startup so a fresh database gets the default set.
func (r *SettingRepo) Seed(ctx context.Context, defaults []model.Setting) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := insertSettings(ctx, tx, defaults, true); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func insertSettings(ctx context.Context, tx *sql.Tx, rows []model.Setting, ignoreExisting bool) error {
	verb := "INSERT INTO"
	if ignoreExisting {
		verb = "INSERT IGNORE INTO"
	}
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(verb + " settings (`key`,`value`,`type`,category,description) VALUES ")
	for i, s := range rows {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?,?,?,?,?)")
		args = append(args, s.Key, s.Value, s.Type, s.Category, s.Description)
	}
	_, err := tx.ExecContext(ctx, sb.String(), args...)
	return err
}
