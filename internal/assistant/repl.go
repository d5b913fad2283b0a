package assistant

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Run reads commands from in and writes replies to out until the user leaves, the input ends or
// ctx is cancelled. Only a read error or the cancellation are returned.
func (a *Assistant) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	done := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		done <- scanner.Err()
	}()

	fmt.Fprintln(out, greeting)
	for {
		fmt.Fprint(out, prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case err := <-done:
			fmt.Fprintln(out)
			return err
		case line := <-lines:
			reply, exit := a.Handle(line)
			if reply != "" {
				fmt.Fprintln(out, reply)
			}
			if exit {
				return nil
			}
		}
	}
}
