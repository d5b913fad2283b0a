package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	url      string
	interval time.Duration
	timeout  time.Duration
)

// Usage example on the command line:
// > go run main.go --url=http://localhost:8080/contacts --timeout=2m
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "wait-until-available",
	Short:         "Wait until the address book service answers",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx := cmd.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return waitUntilAvailable(ctx, http.DefaultClient, url, interval, log)
	},
}

func init() {
	rootCmd.Flags().StringVar(&url, "url", "http://localhost:8080/contacts", "URL that must answer with 200 OK")
	rootCmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "time between two attempts")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "give up after this long (default never)")
}

// waitUntilAvailable polls url until it answers with 200 OK or ctx is done.
func waitUntilAvailable(ctx context.Context, client *http.Client, url string, interval time.Duration, log *zap.Logger) error {
	start := time.Now()
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		res, err := client.Do(req)
		if err == nil {
			res.Body.Close()
			if res.StatusCode == http.StatusOK {
				log.Info("service is available", zap.String("url", url), zap.Duration("waited", time.Since(start)))
				return nil
			}
			log.Info("service not ready", zap.Int("status", res.StatusCode))
		} else {
			log.Info("service not reachable", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s: %w", url, ctx.Err())
		case <-time.After(interval):
		}
	}
}
