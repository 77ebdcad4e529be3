package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/jaskfin/internal/model"
	"github.com/jask/jaskfin/internal/statement"
)

// IngestService picks up statement exports from the incoming directory.
type IngestService struct {
	Incoming    string
	Processed   string
	Reconciler  *Reconciler
	Categorizer *Categorizer
	Log         zerolog.Logger
}

type IngestResult struct {
	RunID    string
	Files    int
	Parsed   int
	Enqueued int
	Skipped  int
	Errors   []error
}

// ImportDir parses every export in the incoming directory, reconciles banks,
// enqueues the transactions and only then moves the consumed files to the
// processed directory. When persisting fails no file is moved, so the next
// run reads them again; ids keep that re-read harmless. A file that cannot be
// moved after a successful commit stays in incoming for the same reason. A
// missing incoming directory is an empty import.
func (s *IngestService) ImportDir(ctx context.Context) (IngestResult, error) {
	res := IngestResult{RunID: uuid.NewString()}
	log := s.Log.With().Str("run", res.RunID).Logger()

	files, err := statement.List(s.Incoming)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("dir", s.Incoming).Msg("incoming dir missing")
		return res, nil
	}
	if err != nil {
		return res, err
	}

	var (
		consumed []string
		txs      []model.Transaction
		banks    []model.Bank
	)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		parsed, err := s.read(log, path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("statement not imported")
			res.Errors = append(res.Errors, err)
			continue
		}
		consumed = append(consumed, path)
		res.Files++
		res.Parsed += len(parsed.Transactions)
		res.Skipped += parsed.Skipped
		txs = append(txs, parsed.Transactions...)
		banks = append(banks, parsed.Banks...)
	}
	res, err = s.commit(ctx, log, res, txs, banks)
	if err != nil {
		return res, err
	}
	s.archive(log, &res, consumed)
	return res, nil
}

// ImportFile imports a single export, wherever it lives.
func (s *IngestService) ImportFile(ctx context.Context, path string) (IngestResult, error) {
	res := IngestResult{RunID: uuid.NewString()}
	log := s.Log.With().Str("run", res.RunID).Logger()
	parsed, err := s.read(log, path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("statement not imported")
		return res, err
	}
	res.Files = 1
	res.Parsed = len(parsed.Transactions)
	res.Skipped = parsed.Skipped
	res, err = s.commit(ctx, log, res, parsed.Transactions, parsed.Banks)
	if err != nil {
		return res, err
	}
	s.archive(log, &res, []string{path})
	return res, nil
}

func (s *IngestService) read(log zerolog.Logger, path string) (statement.Result, error) {
	lines, enc, err := statement.ReadFile(path)
	if err != nil {
		return statement.Result{}, err
	}
	parsed := statement.Parse(lines)
	log.Info().
		Str("file", path).
		Str("encoding", enc).
		Int("transactions", len(parsed.Transactions)).
		Int("banks", len(parsed.Banks)).
		Msg("statement parsed")
	return parsed, nil
}

func (s *IngestService) commit(ctx context.Context, log zerolog.Logger, res IngestResult, txs []model.Transaction, banks []model.Bank) (IngestResult, error) {
	if len(banks) > 0 {
		if _, err := s.Reconciler.Merge(ctx, banks); err != nil {
			log.Error().Err(err).Msg("import abandoned, statements left in place")
			return res, fmt.Errorf("reconcile banks: %w", err)
		}
	}
	n, err := s.Categorizer.Enqueue(ctx, txs)
	if err != nil {
		log.Error().Err(err).Msg("import abandoned, statements left in place")
		return res, fmt.Errorf("enqueue: %w", err)
	}
	res.Enqueued = n
	log.Info().Int("files", res.Files).Int("parsed", res.Parsed).Int("enqueued", n).Msg("import done")
	return res, nil
}

// archive moves committed files to the processed directory. Move failures
// are recorded but do not undo the import.
func (s *IngestService) archive(log zerolog.Logger, res *IngestResult, paths []string) {
	for _, path := range paths {
		target, err := statement.Move(path, s.Incoming, s.Processed)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("statement imported but not moved")
			res.Errors = append(res.Errors, err)
			continue
		}
		log.Debug().Str("file", path).Str("moved_to", target).Msg("statement archived")
	}
}
