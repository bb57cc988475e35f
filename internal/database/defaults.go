package database

import (
	"context"
	"database/sql"

	"github.com/jask/viewctrls/internal/database/repository"
	"github.com/jask/viewctrls/internal/dom"
	"github.com/jask/viewctrls/internal/handlers"
	"github.com/jask/viewctrls/internal/manifest"
)

// DefaultSetName is the set seeded into new databases.
const DefaultSetName = "default"

// DefaultDocument returns the definition of the default set.
func DefaultDocument() *manifest.Document {
	capitalize := true
	return &manifest.Document{
		CapitalizeLabels: &capitalize,
		Controls: []manifest.Control{
			{Key: "edit", Label: "edit", Icon: "icon-edit", Func: handlers.Mark, Attr: dom.Attrs{dom.A("title", "Edit")}},
			{Key: "refresh", Label: "refresh", Icon: "icon-refresh", Callback: handlers.Log},
			{Key: "remove", Label: "remove", Icon: "icon-remove", Fn: handlers.Toggle, Args: []any{"removed"}},
		},
	}
}

// SeedDefaults ensures the default control set exists for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	repo := repository.NewControlSetRepo(db)
	existing, err := repo.List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}
	return repo.Save(ctx, repository.ControlSet{
		ID:       repository.SetID(DefaultSetName),
		Name:     DefaultSetName,
		Document: DefaultDocument(),
	})
}
