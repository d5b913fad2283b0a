package seed

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Statements splits an SQL script into its statements. A statement ends on the line that contains a
// semicolon; lines starting with "--" are comments.
func Statements(script io.Reader) ([]string, error) {
	var statements []string
	var builder strings.Builder
	scanner := bufio.NewScanner(script)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			statements = append(statements, strings.TrimSpace(builder.String()))
			builder.Reset()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	if rest := strings.TrimSpace(builder.String()); rest != "" {
		statements = append(statements, rest)
	}
	return statements, nil
}

// Migrate executes the statements of the script one after the other and returns how many were
// executed. It stops at the first failing statement.
func Migrate(ctx context.Context, db *sqlx.DB, script io.Reader, log *zap.Logger) (int, error) {
	statements, err := Statements(script)
	if err != nil {
		return 0, err
	}
	for i, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return i, fmt.Errorf("statement %d: %w", i+1, err)
		}
		log.Debug("statement executed", zap.Int("statement", i+1))
	}
	log.Info("script executed", zap.Int("statements", len(statements)))
	return len(statements), nil
}
