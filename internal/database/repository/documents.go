package repository

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when a document or an entity is absent.
var ErrNotFound = errors.New("not found")

// Document names inside the data directory.
const (
	BanksDoc       = "bancos.json"
	CategoriesDoc  = "categorias.json"
	RulesDoc       = "regras.json"
	PendingDoc     = "nao-cat.json"
	CategorizedDoc = "lancamentos.json"
	SettingsDoc    = "config.json"
)

// Documents is a whole-document store keyed by directory and name. Load
// returns ErrNotFound when nothing was saved under the key.
type Documents interface {
	Load(ctx context.Context, dir, name string) ([]byte, error)
	Save(ctx context.Context, dir, name string, data []byte) error
}

// MemDocuments keeps documents in memory.
type MemDocuments struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemDocuments() *MemDocuments {
	return &MemDocuments{docs: map[string][]byte{}}
}

func memKey(dir, name string) string { return dir + "/" + name }

func (m *MemDocuments) Load(_ context.Context, dir, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[memKey(dir, name)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MemDocuments) Save(_ context.Context, dir, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[memKey(dir, name)] = append([]byte(nil), data...)
	return nil
}
