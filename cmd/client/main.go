package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var baseURL string

// Usage example on the command line:
// > go run main.go --url=http://localhost:8080
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "client",
	Short:         "Measure the average request latency of the address book service",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return benchmark(cmd.OutOrStdout(), []int{1000, 5000, 10000, 50000})
	},
}

func init() {
	rootCmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "base URL of the service")
}

// benchmark prints the average duration in microseconds of each kind of request for address books
// of the given sizes.
func benchmark(out io.Writer, sizes []int) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Contacts      POST       PUT       GET    DELETE ")
	fmt.Fprintln(out, "---------------------------------------------------")
	for _, loops := range sizes {
		fmt.Fprintf(out, "%10d", loops)
		names := make([]string, loops)
		for i := range names {
			names[i] = fmt.Sprintf("Marcus%d", i)
		}

		// POST requests
		d, err := callInLoop(names, func(name string) (int64, error) {
			body := fmt.Sprintf(`{"name": %q, "phones": ["3999777555"], "birthday": "09.11.0027"}`, name)
			return sendRequest(http.MethodPost, baseURL+"/contacts", bytes.NewReader([]byte(body)))
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%10d", d)

		// PUT requests
		d, err = callInLoop(shuffled(names), func(name string) (int64, error) {
			return sendRequest(http.MethodPut, baseURL+"/contacts/"+name+"/phones/3999777555",
				bytes.NewReader([]byte(`{"phone": "3999777666"}`)))
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%10d", d)

		// GET requests
		d, err = callInLoop(shuffled(names), func(name string) (int64, error) {
			return sendRequest(http.MethodGet, baseURL+"/contacts/"+name, nil)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%10d", d)

		// DELETE requests
		d, err = callInLoop(shuffled(names), func(name string) (int64, error) {
			return sendRequest(http.MethodDelete, baseURL+"/contacts/"+name, nil)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%10d", d)
		fmt.Fprintln(out)
	}
	return nil
}

// callInLoop calls f for every name and returns the average duration in microseconds.
func callInLoop(names []string, f func(name string) (int64, error)) (int64, error) {
	var duration int64
	for _, name := range names {
		d, err := f(name)
		if err != nil {
			return 0, err
		}
		duration += d
	}
	return duration / int64(len(names)*1000), nil
}

func shuffled(names []string) []string {
	s := append([]string(nil), names...)
	rand.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
	return s
}

// sendRequest executes the request and returns its duration in nanoseconds. Any status other than
// 200 or 201 is an error.
func sendRequest(method string, requestURL string, body io.Reader) (int64, error) {
	req, err := http.NewRequest(method, requestURL, body)
	if err != nil {
		return 0, fmt.Errorf("could not create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	before := time.Now().UnixNano()
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error making http request: %w", err)
	}
	defer res.Body.Close()
	if _, err := io.Copy(io.Discard, res.Body); err != nil {
		return 0, fmt.Errorf("could not read response body: %w", err)
	}
	after := time.Now().UnixNano()
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("%s %s: %s", method, requestURL, res.Status)
	}
	return after - before, nil
}
