package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitlab.com/dirk.krummacker/address-book/internal/config"
	"gitlab.com/dirk.krummacker/address-book/internal/logger"
	"gitlab.com/dirk.krummacker/address-book/internal/seed"
)

var (
	configPath string
	file       string
)

// Usage example on the command line:
// > DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 go run main.go --file=../../scripts/database.sql
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "migration",
	Short:         "Create and fill the contacts table the seed import reads",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMigration,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/address-book/config.yml)")
	rootCmd.Flags().StringVar(&file, "file", "database.sql", "the sql file to execute")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	dsn := cfg.Seed.DSN()
	if dsn == "" {
		return errors.New("no database: set DBHOST or seed.host in the config file")
	}
	log := logger.New(&cfg.Log)
	defer log.Sync()

	script, err := os.Open(file) // nosemgrep
	if err != nil {
		return err
	}
	defer script.Close()

	db, err := seed.Open(cmd.Context(), dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	executed, err := seed.Migrate(cmd.Context(), db, script, log)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Executed %d statements.\n", executed)
	return nil
}
