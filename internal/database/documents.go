package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/jaskfin/internal/database/repository"
)

// Documents stores whole documents as rows of the documents table.
type Documents struct {
	db *sql.DB
}

func NewDocuments(db *sql.DB) *Documents { return &Documents{db: db} }

func (d *Documents) Load(ctx context.Context, dir, name string) ([]byte, error) {
	var body []byte
	err := d.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE dir = ? AND name = ?`, dir, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select document %s/%s: %w", dir, name, err)
	}
	return body, nil
}

func (d *Documents) Save(ctx context.Context, dir, name string, data []byte) error {
	_, err := d.db.ExecContext(ctx, `
	INSERT INTO documents(dir, name, body, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(dir, name) DO UPDATE SET
	 body=excluded.body,
	 updated_at=excluded.updated_at;
	`, dir, name, data, Now())
	if err != nil {
		return fmt.Errorf("upsert document %s/%s: %w", dir, name, err)
	}
	return nil
}
