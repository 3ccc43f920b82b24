package commands

import (
	"github.com/spf13/cobra"

	"github.com/rqa-security/guardhouse/pkg/commands/text"
)

var (
	dbInitShort = "Apply the database schema"

	dbInitLong = text.LongDesc(`
		Creates the tables of the service. Tables that already exist are left alone, so
		the command can be run against a live database.

		With --seed the lookup tables (genders, civil statuses, client types, assignment
		statuses and deduction types) are filled with their default rows.
	`)

	dbInitExample = text.Examples(`
		# Create the schema and the lookup rows
		guardhouse db init --seed
	`)
)

func (a *app) newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database commands",
	}

	initCmd := &cobra.Command{
		Use:     "init",
		Short:   dbInitShort,
		Long:    dbInitLong,
		Example: dbInitExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seed, _ := cmd.Flags().GetBool("seed")

			return a.runDBInit(cmd, seed)
		},
	}
	initCmd.Flags().Bool("seed", false, "Fill the lookup tables")

	cmd.AddCommand(initCmd)

	return cmd
}

func (a *app) runDBInit(cmd *cobra.Command, seed bool) error {
	return a.withStore(cmd, func(store Store) error {
		if err := store.Bootstrap(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("Schema applied")

		if !seed {
			return nil
		}
		if err := store.Seed(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("Lookup tables seeded")

		return nil
	})
}
