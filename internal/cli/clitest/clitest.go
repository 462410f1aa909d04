// Package clitest builds command contexts over a throwaway SQLite store.
package clitest

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitus/internal/app"
	"github.com/julianstephens/habitus/internal/cli"
	"github.com/julianstephens/habitus/internal/metrics"
	"github.com/julianstephens/habitus/internal/models"
	"github.com/julianstephens/habitus/internal/storage/sqlite"
	"github.com/julianstephens/habitus/internal/utils"
)

// Setup returns an initialized context whose clock is pinned to day.
func Setup(t *testing.T, day string) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	m := metrics.New()
	return &cli.Context{
		Store:   store,
		Service: app.New(store, utils.FixedDay(day), m),
		Metrics: m,
		Confirm: func(string) (bool, error) { return true, nil },
	}
}

// WithFamily creates a family, selects it on ctx and returns it.
func WithFamily(t *testing.T, ctx *cli.Context, name string) models.Family {
	t.Helper()
	family, err := ctx.Service.CreateFamily(name)
	if err != nil {
		t.Fatalf("failed to create family: %v", err)
	}
	ctx.Family = family.ID
	return family
}

// WithChild adds a child to the selected family.
func WithChild(t *testing.T, ctx *cli.Context, name string) models.Child {
	t.Helper()
	child, err := ctx.Service.AddChild(ctx.Family, name, "")
	if err != nil {
		t.Fatalf("failed to add child: %v", err)
	}
	return child
}
