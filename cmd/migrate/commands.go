package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/retailpos/backend/internal/infrastructure/migration"
	"github.com/retailpos/backend/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator((*migration.Migrator).Up)
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator((*migration.Migrator).Down)
	},
}

var stepCmd = &cobra.Command{
	Use:   "step <n>",
	Short: "Apply n migrations (negative rolls back)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return withMigrator(func(m *migration.Migrator) error { return m.Steps(n) })
	},
}

var gotoCmd = &cobra.Command{
	Use:   "goto <version>",
	Short: "Migrate up or down to a specific version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return withMigrator(func(m *migration.Migrator) error { return m.GoTo(uint(version)) })
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *migration.Migrator) error {
			status, err := m.Status()
			if err != nil {
				return err
			}
			if status.Version == 0 {
				log.Info("No migrations applied")
				return nil
			}
			log.Info("Current migration version",
				zap.Uint("version", status.Version),
				zap.Bool("dirty", status.Dirty),
			)
			return nil
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force <version>",
	Short: "Set the schema version without running migrations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return withMigrator(func(m *migration.Migrator) error { return m.Force(version) })
	},
}

var dropConfirmed bool

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop every database object",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !dropConfirmed {
			return errors.New("drop cancelled, pass --confirm to drop all data")
		}
		return withMigrator((*migration.Migrator).Drop)
	},
}

var createCmd = &cobra.Command{
	Use:   "create <name> [description]",
	Short: "Create a new migration file pair in --path",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := migrationsPath
		if dir == "" {
			dir = "migrations"
		}
		description := ""
		if len(args) > 1 {
			description = args[1]
		}

		mf, err := migration.CreateMigration(dir, args[0], description)
		if err != nil {
			return err
		}
		log.Info("Migration created",
			zap.Uint("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var fsys fs.FS = migrations.FS
		if migrationsPath != "" {
			fsys = os.DirFS(migrationsPath)
		}
		names, err := migration.ListMigrations(fsys)
		if err != nil {
			return err
		}

		if len(names) == 0 {
			log.Info("No migrations found")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), "  -", name)
		}
		return nil
	},
}

func init() {
	dropCmd.Flags().BoolVar(&dropConfirmed, "confirm", false, "confirm dropping all data")
}
