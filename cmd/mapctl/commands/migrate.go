package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vihaan004/Map-My-Major-sub000/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()
		return database.RunMigrations(e.sqlDB, e.logger)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every applied migration (drops all data)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !forceDown {
			return fmt.Errorf("refusing to drop the schema without --force")
		}
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()
		return database.RollbackMigrations(e.sqlDB, e.logger)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied migration version",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		version, dirty, ok, err := database.MigrationVersion(e.sqlDB)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch {
		case !ok:
			fmt.Fprintln(out, "no migrations applied")
		case dirty:
			fmt.Fprintf(out, "%d (dirty)\n", version)
		default:
			fmt.Fprintln(out, version)
		}
		return nil
	},
}

var forceDown bool

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)

	migrateDownCmd.Flags().BoolVar(&forceDown, "force", false, "confirm dropping every table")
}
