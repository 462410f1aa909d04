package system

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/julianstephens/habitus/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete the SQLite database (after a backup) and start over."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized habitus storage at: %s\n", ctx.Store.GetConfigPath())
	fmt.Println(cli.MutedStyle.Render("Next: habitus family add <name> --use"))
	return nil
}

// reset removes the database file so Init starts from an empty schema.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if !ctx.IsSQLite() {
		return errors.New("--force only works with SQLite storage")
	}
	path := ctx.Store.GetConfigPath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("checking database %s: %w", path, err)
	}

	ctx.PerformAutomaticBackup()
	// the file stays locked while the store is open
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing database: %w", err)
	}
	fmt.Println(cli.WarningStyle.Render("Removed existing database at " + path))
	return nil
}
