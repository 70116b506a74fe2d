package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"replayrec/internal/store"
)

func (c *Client) SaveExport(ctx context.Context, in store.ExportInput) (*store.Export, error) {
	e := &store.Export{
		ID:         uuid.NewString(),
		Session:    in.Session,
		Filename:   in.Filename,
		Content:    in.Content,
		Statements: store.CountStatements(in.Content),
		CreatedAt:  c.now().UTC(),
	}

	query := `
INSERT INTO exports (id, session, filename, content, statements, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	if _, err := c.pool.Exec(ctx, query, e.ID, e.Session, e.Filename, e.Content, e.Statements, e.CreatedAt); err != nil {
		return nil, fmt.Errorf("saving export: %w", err)
	}
	return e, nil
}

func (c *Client) ListExports(ctx context.Context, session string) ([]store.ExportSummary, error) {
	query := `
SELECT id::text, session, filename, statements, created_at
FROM exports
WHERE ($1 = '' OR session = $1)
ORDER BY seq
`
	rows, err := c.pool.Query(ctx, query, session)
	if err != nil {
		return nil, fmt.Errorf("listing exports: %w", err)
	}
	defer rows.Close()

	var results []store.ExportSummary
	for rows.Next() {
		var s store.ExportSummary
		if err := rows.Scan(&s.ID, &s.Session, &s.Filename, &s.Statements, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning export: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exports: %w", err)
	}
	return results, nil
}

func (c *Client) GetExport(ctx context.Context, id string) (*store.Export, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}

	query := `
SELECT id::text, session, filename, content, statements, created_at
FROM exports
WHERE id = $1
`
	var e store.Export
	err := c.pool.QueryRow(ctx, query, id).Scan(&e.ID, &e.Session, &e.Filename, &e.Content, &e.Statements, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting export: %w", err)
	}
	return &e, nil
}
