package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jask/jaskfin/internal/config"
	"github.com/jask/jaskfin/internal/database"
	"github.com/jask/jaskfin/internal/database/repository"
	"github.com/jask/jaskfin/internal/filestore"
	"github.com/jask/jaskfin/internal/logger"
	"github.com/jask/jaskfin/internal/service"
	"github.com/jask/jaskfin/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Prepare(); err != nil {
		log.Fatalf("prepare dirs: %v", err)
	}

	lg, closer, err := logger.New(cfg.LogDir(), cfg.Log.Level, time.Now())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer closer.Close()

	docs, db, err := openDocuments(cfg)
	if err != nil {
		lg.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("open storage")
	}
	if db != nil {
		defer db.Close()
	}

	repos := repository.New(docs, cfg.Dirs.Data, logger.Component(lg, "repository"))
	if err := database.SeedDefaults(ctx, repos); err != nil {
		lg.Fatal().Err(err).Msg("seed defaults")
	}

	app := wire(cfg, repos, lg)

	args := os.Args[1:]
	if len(args) > 0 {
		if err := app.command(ctx, args); err != nil {
			lg.Error().Err(err).Strs("args", args).Msg("command failed")
			fmt.Fprintf(os.Stderr, "error: %v\n%s", err, usage)
			if db != nil {
				db.Close()
			}
			closer.Close()
			os.Exit(1)
		}
		return
	}

	res, err := app.ingest.ImportDir(ctx)
	if err != nil {
		lg.Error().Err(err).Msg("import")
	}
	if len(res.Errors) > 0 {
		fmt.Printf("%d statement(s) could not be imported, see %s\n", len(res.Errors), cfg.LogDir())
	}

	matches, err := app.categorizer.Match(ctx)
	if err != nil {
		lg.Fatal().Err(err).Msg("match")
	}
	if len(matches.Matched) == 0 {
		fmt.Printf("%d new transaction(s), %d pending, nothing matched\n", res.Enqueued, len(matches.Unmatched))
		return
	}

	cats, err := app.catalog.List(ctx)
	if err != nil {
		lg.Fatal().Err(err).Msg("categories")
	}
	screen := tui.New(ctx, cfg, app.categorizer, matches, cats)
	if _, err := tea.NewProgram(screen, tea.WithAltScreen()).Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	if screen.Done() {
		fmt.Printf("%d transaction(s) categorized\n", screen.Confirmed())
	}
}

type services struct {
	ingest      *service.IngestService
	categorizer *service.Categorizer
	rules       *service.RuleBook
	catalog     *service.Catalog
	payroll     *service.Payroll
	maintenance *service.MaintenanceService
}

func wire(cfg config.Config, repos repository.Repos, lg zerolog.Logger) services {
	rules := &service.RuleBook{
		Rules:      repos.Rules,
		Categories: repos.Categories,
		Ledger:     repos.Ledger,
		Log:        logger.Component(lg, "rules"),
	}
	categorizer := &service.Categorizer{
		Pending:    repos.Pending,
		Ledger:     repos.Ledger,
		Categories: repos.Categories,
		Rules:      rules,
		Log:        logger.Component(lg, "categorizer"),
	}
	reconciler := &service.Reconciler{Banks: repos.Banks, Log: logger.Component(lg, "reconciler")}
	payroll := &service.Payroll{
		Reconciler:  reconciler,
		Categorizer: categorizer,
		Settings:    repos.Settings,
		Currency:    cfg.UI.Currency,
		Log:         logger.Component(lg, "payroll"),
	}
	return services{
		ingest: &service.IngestService{
			Incoming:    cfg.IncomingDir(),
			Processed:   cfg.ProcessedDir(),
			Reconciler:  reconciler,
			Categorizer: categorizer,
			Log:         logger.Component(lg, "ingest"),
		},
		categorizer: categorizer,
		rules:       rules,
		catalog: &service.Catalog{
			Categories:  repos.Categories,
			Categorizer: categorizer,
			Rules:       rules,
			Log:         logger.Component(lg, "catalog"),
		},
		payroll:     payroll,
		maintenance: &service.MaintenanceService{Repos: repos, Log: logger.Component(lg, "maintenance")},
	}
}

// openDocuments returns the configured document backend. The database is
// returned so the caller can close it; it is nil for the file backend.
func openDocuments(cfg config.Config) (repository.Documents, *sql.DB, error) {
	if cfg.Storage.Backend != config.BackendSQLite {
		return filestore.New(cfg.Home), nil, nil
	}
	db, err := database.OpenMigrated(cfg.SQLitePath())
	if err != nil {
		return nil, nil, err
	}
	return database.NewDocuments(db), db, nil
}
