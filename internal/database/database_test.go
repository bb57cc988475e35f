package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/viewctrls/internal/database/repository"
	"github.com/jask/viewctrls/internal/handlers"
	"github.com/jask/viewctrls/internal/manifest"
)

func TestSetupMigratesAndSeeds(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	dbPath := filepath.Join(t.TempDir(), "nested", "viewctrls.db")

	db, err := Setup(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewControlSetRepo(db)
	sets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, DefaultSetName, sets[0].Name)
	assert.Equal(t, 3, sets[0].Controls)
	assert.Equal(t, repository.SetID(DefaultSetName), sets[0].ID)

	set, err := repo.ByName(ctx, DefaultSetName)
	require.NoError(t, err)
	assert.Equal(t, DefaultDocument(), set.Document)

	opts, err := set.Options(handlers.NewWithBuiltins(nil), manifest.Defaults{})
	require.NoError(t, err)
	assert.Equal(t, []string{"edit", "refresh", "remove"}, opts.Controls.Keys())
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "viewctrls.db")
	db, err := Setup(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewControlSetRepo(db)
	_, err = repo.Delete(ctx, DefaultSetName)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, repository.ControlSet{Name: "mine", Document: DefaultDocument()}))

	require.NoError(t, SeedDefaults(ctx, db))
	sets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "mine", sets[0].Name)
}

func TestRunMigrationsTwiceAndDown(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "viewctrls.db")
	require.NoError(t, RunMigrations(dbPath))
	require.NoError(t, RunMigrations(dbPath))
	require.NoError(t, MigrateDown(dbPath))

	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='control_sets'`).Scan(&n))
	assert.Equal(t, 0, n)
}
