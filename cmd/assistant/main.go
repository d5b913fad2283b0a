// Package main provides the assistant, an interactive address book on the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/address-book/internal/assistant"
	"gitlab.com/dirk.krummacker/address-book/internal/book"
	"gitlab.com/dirk.krummacker/address-book/internal/config"
	"gitlab.com/dirk.krummacker/address-book/internal/logger"
	"gitlab.com/dirk.krummacker/address-book/internal/seed"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	configPath string
	logFile    string
	seedImport bool
)

// Usage example on the command line:
// > go run main.go
// > DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 go run main.go --seed --log-file=assistant.log
func main() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(exitCode(err))
}

var rootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Interactive address book",
	Long: `assistant keeps an address book for the duration of a session.

Contacts have a name, phone numbers of ten characters and an optional birthday
(DD.MM.YYYY). Type 'help' at the prompt for the list of commands and 'exit' to
leave. Nothing is saved when the session ends.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAssistant,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/address-book/config.yml)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file (default no logs)")
	rootCmd.Flags().BoolVar(&seedImport, "seed", false, "import contacts from the MySQL database given by DBHOST, DBUSER, DBPWD and DBNAME")
	rootCmd.Version = Version
}

func runAssistant(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return &exitError{code: ExitConfigError, err: err}
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	// Standard output belongs to the conversation.
	if cfg.Log.File == "" || cfg.Log.File == "-" {
		cfg.Log.File = os.DevNull
	}
	log := logger.New(&cfg.Log)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := book.New()
	if seedImport {
		dsn := cfg.Seed.DSN()
		if dsn == "" {
			return &exitError{code: ExitConfigError, err: errors.New("--seed needs DBHOST or seed.host in the config file")}
		}
		result, err := seed.Import(ctx, dsn, b, log)
		if err != nil {
			return &exitError{code: ExitSeedError, err: err}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d contacts.\n", result.Created)
	}

	log.Info("session started", zap.Int("contacts", b.Len()))
	err = assistant.New(b, assistant.WithLogger(log)).Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
