package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/address-book/internal/book"
	"gitlab.com/dirk.krummacker/address-book/internal/config"
	"gitlab.com/dirk.krummacker/address-book/internal/logger"
	"gitlab.com/dirk.krummacker/address-book/internal/seed"
	"gitlab.com/dirk.krummacker/address-book/internal/service"
)

var (
	configPath string
	port       string
	seedImport bool
)

// Usage example on the command line:
// > PORT=8080 GIN_MODE=release GIN_LOGGING=OFF go run main.go
// > DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 go run main.go --seed
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "service",
	Short:         "Serve an address book over HTTP",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runService,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/address-book/config.yml)")
	rootCmd.Flags().StringVar(&port, "port", "", "port to listen on (default $PORT or 8080)")
	rootCmd.Flags().BoolVar(&seedImport, "seed", false, "import contacts from the MySQL database given by DBHOST, DBUSER, DBPWD and DBNAME")
}

func runService(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Port = port
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return fmt.Errorf("could not parse port %q: %w", cfg.Port, err)
	}

	log := logger.New(&cfg.Log)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := book.New()
	if seedImport {
		dsn := cfg.Seed.DSN()
		if dsn == "" {
			return errors.New("--seed needs DBHOST or seed.host in the config file")
		}
		if _, err := seed.Import(ctx, dsn, b, log); err != nil {
			return err
		}
	}

	service.SetupDirectory(b, log)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           service.SetupHttpRouter(cfg.GinLogging),
		ReadHeaderTimeout: 15 * time.Second,
		ErrorLog:          zap.NewStdLog(log),
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
