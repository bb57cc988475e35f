package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/viewctrls/internal/database"
	"github.com/jask/viewctrls/internal/database/repository"
	"github.com/jask/viewctrls/internal/dom"
	"github.com/jask/viewctrls/internal/manifest"
	"github.com/jask/viewctrls/internal/viewctrls"
)

func newRepo(t *testing.T) *repository.ControlSetRepo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewControlSetRepo(db)
}

func TestSaveAndLoadKeepsOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t)

	wrapper := "toolbar"
	doc := &manifest.Document{
		WrapperClass: &wrapper,
		Controls: []manifest.Control{
			{Key: "zeta", Func: "noop", Args: []any{1, "two", viewctrls.MapSlice{{Key: "b", Value: true}, {Key: "a", Value: 2}}}},
			{Key: "alpha", Label: 7, Icon: "fa fa-a", Tag: "button", Callback: "log",
				Attr:    dom.Attrs{dom.A("title", "A"), dom.A("data-x", "1"), dom.A("aria-label", "alpha")},
				ThisArg: "host"},
		},
	}
	require.NoError(t, repo.Save(ctx, repository.ControlSet{Name: "tools", Document: doc}))

	got, err := repo.ByName(ctx, "tools")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, repository.SetID("tools"), got.ID)
	assert.Equal(t, doc, got.Document)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSaveReplacesControls(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t)

	first := &manifest.Document{Controls: []manifest.Control{{Key: "a", Func: "noop"}, {Key: "b", Func: "noop"}}}
	second := &manifest.Document{Controls: []manifest.Control{{Key: "c", Fn: "mark"}}}
	require.NoError(t, repo.Save(ctx, repository.ControlSet{Name: "s", Document: first}))
	require.NoError(t, repo.Save(ctx, repository.ControlSet{Name: "s", Document: second}))

	got, err := repo.ByName(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, got.Document.Keys())

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Controls)
}

func TestByNameMissingAndDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t)

	got, err := repo.ByName(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Save(ctx, repository.ControlSet{Name: "x", Document: &manifest.Document{
		Controls: []manifest.Control{{Key: "a", Func: "noop", Attr: dom.Attrs{dom.A("title", "t")}}},
	}}))
	ok, err := repo.Delete(ctx, "x")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Delete(ctx, "x")
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSaveRequiresName(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	assert.Error(t, repo.Save(context.Background(), repository.ControlSet{}))
}
