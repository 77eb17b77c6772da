package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/folio-cms/internal/model"
)

// fakeRepo is an in-memory settings table.
type fakeRepo struct {
	rows        map[string]model.Setting
	updateCalls int
	failAll     bool
}

func newFakeRepo() *fakeRepo {
	r := &fakeRepo{rows: map[string]model.Setting{}}
	for _, row := range DefaultRows() {
		r.rows[row.Key] = row
	}
	return r
}

func (r *fakeRepo) GetAll(_ context.Context) ([]model.Setting, error) {
	if r.failAll {
		return nil, errors.New("db down")
	}
	out := make([]model.Setting, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeRepo) UpdateMany(_ context.Context, changes map[string]string) error {
	if r.failAll {
		return errors.New("db down")
	}
	r.updateCalls++
	for k, v := range changes {
		row := r.rows[k]
		row.Value = v
		r.rows[k] = row
	}
	return nil
}

func (r *fakeRepo) Reset(_ context.Context, defaults []model.Setting) error {
	if r.failAll {
		return errors.New("db down")
	}
	r.rows = map[string]model.Setting{}
	for _, row := range defaults {
		r.rows[row.Key] = row
	}
	return nil
}

func TestStoreListFiltersSensitiveKeys(t *testing.T) {
	store := NewStore(newFakeRepo())
	rows, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("List() returned nothing")
	}
	for _, row := range rows {
		if IsSensitiveKey(row.Key) {
			t.Errorf("List() leaked sensitive key %s", row.Key)
		}
	}
}

func TestStoreUpdateAppliesValidBatch(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo)

	rows, err := store.Update(context.Background(), map[string]string{
		"site.name":        "New Name",
		"appearance.theme": "dark",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if repo.rows["site.name"].Value != "New Name" {
		t.Errorf("site.name = %q after update", repo.rows["site.name"].Value)
	}
	for _, row := range rows {
		if IsSensitiveKey(row.Key) {
			t.Errorf("Update() result leaked sensitive key %s", row.Key)
		}
	}
}

// One bad key rejects the whole batch; the good keys must not be written.
func TestStoreUpdateIsAllOrNothing(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo)
	before := repo.rows["site.name"].Value

	_, err := store.Update(context.Background(), map[string]string{
		"site.name":   "New Name",
		"not.a.key":   "x",
		"site.url":    "not a url",
		"uploads.max_size_mb": "lots",
		"appearance.theme":    "neon",
	})
	if err == nil {
		t.Fatal("Update() with invalid keys succeeded")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Update() error type = %T, want *ValidationError", err)
	}
	for _, key := range []string{"not.a.key", "site.url", "uploads.max_size_mb", "appearance.theme"} {
		if _, ok := verr.Fields[key]; !ok {
			t.Errorf("ValidationError missing field %s: %v", key, verr.Fields)
		}
	}
	if _, ok := verr.Fields["site.name"]; ok {
		t.Error("ValidationError flagged the valid key site.name")
	}
	if repo.updateCalls != 0 {
		t.Errorf("repo.UpdateMany called %d times on rejected batch", repo.updateCalls)
	}
	if repo.rows["site.name"].Value != before {
		t.Error("rejected batch partially applied")
	}
}

func TestStoreUpdateValidatesEnumAndURL(t *testing.T) {
	store := NewStore(newFakeRepo())

	if _, err := store.Update(context.Background(), map[string]string{"appearance.theme": "dark"}); err != nil {
		t.Errorf("enum member rejected: %v", err)
	}
	if _, err := store.Update(context.Background(), map[string]string{"appearance.theme": "sepia"}); err == nil {
		t.Error("enum outsider accepted")
	}
	if _, err := store.Update(context.Background(), map[string]string{"site.url": "https://example.com"}); err != nil {
		t.Errorf("absolute URL rejected: %v", err)
	}
	if _, err := store.Update(context.Background(), map[string]string{"site.url": "/just/a/path"}); err == nil {
		t.Error("host-less URL accepted")
	}
}

func TestStoreReset(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo)

	if _, err := store.Update(context.Background(), map[string]string{"site.name": "Changed"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := store.Reset(context.Background()); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	def, _ := DefinitionFor("site.name")
	if repo.rows["site.name"].Value != def.Default {
		t.Errorf("site.name after reset = %q, want default %q", repo.rows["site.name"].Value, def.Default)
	}
	if len(repo.rows) != len(DefaultRows()) {
		t.Errorf("reset left %d rows, want %d", len(repo.rows), len(DefaultRows()))
	}
}

func TestStorePropagatesRepoErrors(t *testing.T) {
	repo := newFakeRepo()
	repo.failAll = true
	store := NewStore(repo)

	if _, err := store.List(context.Background()); err == nil {
		t.Error("List() swallowed repo error")
	}
	if _, err := store.Update(context.Background(), map[string]string{"site.name": "x"}); err == nil {
		t.Error("Update() swallowed repo error")
	}
	if err := store.Reset(context.Background()); err == nil {
		t.Error("Reset() swallowed repo error")
	}
}
