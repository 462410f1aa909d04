package system

import (
	"fmt"

	"github.com/julianstephens/habitus/internal/backup"
	"github.com/julianstephens/habitus/internal/cli"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a backup now." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Replace the database with a backup."`
}

func manager(ctx *cli.Context) (*backup.Manager, error) {
	if !ctx.IsSQLite() {
		return nil, fmt.Errorf("backups are only supported for SQLite storage, use pg_dump for PostgreSQL")
	}
	return backup.NewManager(ctx.Store.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	info, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	fmt.Printf("Backup created: %s (%d bytes)\n", info.Name, info.Size)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}
	fmt.Printf("Backups in %s:\n", mgr.Dir())
	for _, b := range backups {
		fmt.Printf("  %s  %s  %s\n", b.Name, b.Timestamp.Local().Format("2006-01-02 15:04:05"),
			cli.MutedStyle.Render(fmt.Sprintf("%.1f KB", float64(b.Size)/1024)))
	}
	return nil
}

type BackupRestoreCmd struct {
	Name string `arg:"" help:"Backup file name, or 'latest'." default:"latest"`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := manager(ctx)
	if err != nil {
		return err
	}
	b, err := mgr.Resolve(c.Name)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Ask(fmt.Sprintf("Replace the current database with %s?", b.Name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	if err := mgr.Restore(b); err != nil {
		return err
	}
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to reopen restored database: %w", err)
	}
	fmt.Printf("Restored database from %s\n", b.Name)
	return nil
}
