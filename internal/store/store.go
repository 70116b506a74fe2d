// Package store archives exported pseudo-code scripts.
package store

import (
	"context"
	"errors"
	"strings"
)

var ErrNotFound = errors.New("export not found")

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	SaveExport(ctx context.Context, in ExportInput) (*Export, error)
	ListExports(ctx context.Context, session string) ([]ExportSummary, error)
	GetExport(ctx context.Context, id string) (*Export, error)
}

// CountStatements counts the generated statements in an export, skipping the
// comment header and blank lines.
func CountStatements(content string) int {
	n := 0
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		n++
	}
	return n
}
