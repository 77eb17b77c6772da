package settings

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/iliyamo/folio-cms/internal/model"
)

// Repo is the persistence slice the store needs. Implemented by
// repository.SettingRepo; tests use an in-memory fake.
type Repo interface {
	GetAll(ctx context.Context) ([]model.Setting, error)
	UpdateMany(ctx context.Context, changes map[string]string) error
	Reset(ctx context.Context, defaults []model.Setting) error
}

// ValidationError names every offending key of a rejected update batch.
// When it is returned, nothing was written.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid settings: " + strings.Join(keys, ", ")
}

// Store wraps the settings repository with allow-list validation,
// all-or-nothing update semantics and sensitive-key filtering.
type Store struct {
	repo Repo
}

func NewStore(repo Repo) *Store { return &Store{repo: repo} }

// List returns every setting minus the sensitive ones. The filter applies
// to all callers, admin included; sensitive values are consumed internally
// and never listed.
func (s *Store) List(ctx context.Context) ([]model.Setting, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := rows[:0]
	for _, row := range rows {
		if !IsSensitiveKey(row.Key) {
			out = append(out, row)
		}
	}
	return out, nil
}

// Update validates the whole batch before touching the store. Any unknown
// key, undecodable value, URL that does not parse or enum value outside
// its declared set rejects the batch wholesale; a rejected batch is never
// partially applied. On success the filtered post-update list is returned.
func (s *Store) Update(ctx context.Context, changes map[string]string) ([]model.Setting, error) {
	fields := map[string]string{}
	for key, value := range changes {
		def, ok := DefinitionFor(key)
		if !ok {
			fields[key] = "unknown setting key"
			continue
		}
		if _, err := Decode(def.Type, value); err != nil {
			fields[key] = fmt.Sprintf("invalid %s value", def.Type)
			continue
		}
		if def.IsURL {
			if u, err := url.ParseRequestURI(value); err != nil || u.Host == "" {
				fields[key] = "must be a valid absolute URL"
				continue
			}
		}
		if len(def.Enum) > 0 && !contains(def.Enum, value) {
			fields[key] = "must be one of: " + strings.Join(def.Enum, ", ")
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	if err := s.repo.UpdateMany(ctx, changes); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

// Reset restores the full default set in one atomic store operation.
func (s *Store) Reset(ctx context.Context) error {
	return s.repo.Reset(ctx, DefaultRows())
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
