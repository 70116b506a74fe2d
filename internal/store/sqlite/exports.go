package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

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
	VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := c.db.ExecContext(ctx, query,
		e.ID,
		e.Session,
		e.Filename,
		e.Content,
		e.Statements,
		e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("saving export: %w", err)
	}
	return e, nil
}

func (c *Client) ListExports(ctx context.Context, session string) ([]store.ExportSummary, error) {
	query := `
	SELECT id, session, filename, statements, created_at
	FROM exports
	WHERE (? = '' OR session = ?)
	ORDER BY seq
	`
	rows, err := c.db.QueryContext(ctx, query, session, session)
	if err != nil {
		return nil, fmt.Errorf("listing exports: %w", err)
	}
	defer rows.Close()

	var results []store.ExportSummary
	for rows.Next() {
		var s store.ExportSummary
		var createdAt string
		if err := rows.Scan(&s.ID, &s.Session, &s.Filename, &s.Statements, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning export: %w", err)
		}
		s.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exports: %w", err)
	}
	return results, nil
}

func (c *Client) GetExport(ctx context.Context, id string) (*store.Export, error) {
	query := `
	SELECT id, session, filename, content, statements, created_at
	FROM exports
	WHERE id = ?
	`
	var e store.Export
	var createdAt string
	err := c.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Session, &e.Filename, &e.Content, &e.Statements, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting export: %w", err)
	}
	e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &e, nil
}
