package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jask/jaskfin/internal/model"
	"github.com/jask/jaskfin/internal/service"
)

const usage = `usage:
  jaskfin                              import, match and confirm
  jaskfin import FILE...               import the given exports
  jaskfin payslip FILE.toml            record a payslip
  jaskfin expurgo                      clean up the rule catalog
  jaskfin categories                   list categories
  jaskfin category rename REF NAME     rename a category
  jaskfin category delete REF          delete a category
  jaskfin rule add debit|credit REF PATTERN
                                       author a rule for a category
  jaskfin reset --yes                  forget transactions and banks
`

var errUsage = errors.New("bad arguments")

// command runs one subcommand, writing its report to stdout.
func (s services) command(ctx context.Context, args []string) error {
	return s.run(ctx, os.Stdout, args, time.Now())
}

func (s services) run(ctx context.Context, out io.Writer, args []string, now time.Time) error {
	switch args[0] {
	case "expurgo":
		rep, err := s.rules.Expurgo(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "rules: %d -> %d (%d duplicates, %d orphans, %d unused)\n",
			rep.Before, rep.After, rep.Duplicates, rep.Orphans, rep.Unused)
	case "import":
		if len(args) < 2 {
			return errUsage
		}
		for _, path := range args[1:] {
			res, err := s.ingest.ImportFile(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(out, "%s: %d parsed, %d new\n", path, res.Parsed, res.Enqueued)
		}
	case "payslip":
		if len(args) != 2 {
			return errUsage
		}
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		slip, err := readPayslip(f, now)
		if err != nil {
			return err
		}
		res, err := s.payroll.Record(ctx, slip)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "gross %s, deductions %s, net %s, %d new transaction(s)\n",
			res.Gross, res.Deductions, res.Net, res.Enqueued)
	case "categories":
		cats, err := s.catalog.List(ctx)
		if err != nil {
			return err
		}
		for _, c := range cats {
			fmt.Fprintf(out, "%s  %s\n", c.ID[:8], c.Label())
		}
	case "category":
		return s.category(ctx, out, args[1:])
	case "rule":
		return s.rule(ctx, out, args[1:])
	case "reset":
		if len(args) != 2 || args[1] != "--yes" {
			return fmt.Errorf("%w: reset needs --yes", errUsage)
		}
		if err := s.maintenance.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "transactions and banks removed")
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return nil
}

func (s services) category(ctx context.Context, out io.Writer, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	cat, err := s.catalog.Find(ctx, args[1])
	if err != nil {
		return fmt.Errorf("category %q: %w", args[1], err)
	}
	switch args[0] {
	case "rename":
		if len(args) < 3 {
			return errUsage
		}
		renamed, err := s.catalog.Rename(ctx, cat.ID, strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s -> %s\n", cat.Label(), renamed.Label())
	case "delete":
		rep, err := s.catalog.Delete(ctx, cat.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s deleted: %d transaction(s) back to pending, %d rule(s) removed\n",
			cat.Label(), rep.Recategorized, rep.RulesRemoved)
	default:
		return fmt.Errorf("%w: unknown category action %q", errUsage, args[0])
	}
	return nil
}

func (s services) rule(ctx context.Context, out io.Writer, args []string) error {
	if len(args) < 4 || args[0] != "add" {
		return errUsage
	}
	flow := model.Flow(strings.ToLower(args[1]))
	if flow != model.FlowDebit && flow != model.FlowCredit {
		return fmt.Errorf("%w: flow must be debit or credit", errUsage)
	}
	cat, err := s.catalog.Find(ctx, args[2])
	if err != nil {
		return fmt.Errorf("category %q: %w", args[2], err)
	}
	if !cat.Kind.Allows(flow) {
		return service.ErrFlowMismatch
	}
	r, err := s.rules.Add(ctx, model.NewRule(strings.Join(args[3:], " "), flow, model.RefTo(cat)))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%q (%s) -> %s\n", r.Pattern, r.Flow, cat.Label())
	return nil
}
