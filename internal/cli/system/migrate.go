package system

import (
	"fmt"

	"github.com/julianstephens/habitus/internal/cli"
)

// migrator is implemented by stores that run embedded schema migrations
type migrator interface {
	Migrate(logFn func(string)) (int, error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("%T does not run schema migrations", ctx.Store)
	}

	applied, err := m.Migrate(func(msg string) {
		fmt.Println(cli.MutedStyle.Render(msg))
	})
	if err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	switch applied {
	case 0:
		fmt.Println("Schema is up to date.")
	case 1:
		fmt.Println(cli.SuccessStyle.Render("Applied 1 migration."))
	default:
		fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Applied %d migrations.", applied)))
	}
	return nil
}
