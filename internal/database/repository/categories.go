package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jask/jaskfin/internal/model"
)

// CategoryRepo handles categories.
type CategoryRepo struct {
	doc list[model.Category]
}

func NewCategoryRepo(docs Documents, dir string, log zerolog.Logger) *CategoryRepo {
	return &CategoryRepo{doc: list[model.Category]{docs: docs, dir: dir, name: CategoriesDoc, log: log}}
}

func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	return r.doc.load(ctx)
}

func (r *CategoryRepo) Save(ctx context.Context, cats []model.Category) error {
	return r.doc.save(ctx, cats)
}

// Index returns the categories keyed by id.
func (r *CategoryRepo) Index(ctx context.Context) (model.Index[model.Category], error) {
	cats, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.IndexOf(cats), nil
}

// Upsert replaces the category with the same id or appends it.
func (r *CategoryRepo) Upsert(ctx context.Context, c model.Category) error {
	cats, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range cats {
		if cats[i].ID == c.ID {
			cats[i] = c
			return r.Save(ctx, cats)
		}
	}
	return r.Save(ctx, append(cats, c))
}

// Delete removes the category with id, returning ErrNotFound when absent.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	cats, err := r.List(ctx)
	if err != nil {
		return err
	}
	out := cats[:0]
	found := false
	for _, c := range cats {
		if c.ID == id {
			found = true
			continue
		}
		out = append(out, c)
	}
	if !found {
		return ErrNotFound
	}
	return r.Save(ctx, out)
}
