package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// list is a JSON array document.
type list[T any] struct {
	docs Documents
	dir  string
	name string
	log  zerolog.Logger
}

// load returns the stored items. A missing, empty or malformed document
// reads as an empty list; only storage failures are returned.
func (l list[T]) load(ctx context.Context) ([]T, error) {
	data, err := l.docs.Load(ctx, l.dir, l.name)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", l.name, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		l.log.Error().Err(err).Str("document", l.name).Msg("malformed document, reading as empty")
		return []T{}, nil
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (l list[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", l.name, err)
	}
	if err := l.docs.Save(ctx, l.dir, l.name, data); err != nil {
		return fmt.Errorf("save %s: %w", l.name, err)
	}
	return nil
}
