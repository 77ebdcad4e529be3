// Package tui is the confirmation screen shown after rules are applied to
// the pending queue.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/jaskfin/internal/config"
	"github.com/jask/jaskfin/internal/model"
	"github.com/jask/jaskfin/internal/service"
)

// App lists every pending transaction, matched ones first, and lets the user
// fix categories before confirming the batch.
type App struct {
	ctx        context.Context
	svc        *service.Categorizer
	cfg        config.Config
	rows       model.Transactions
	categories []model.Category
	cursor     int
	modal      modalState
	options    []model.Category
	pickCursor int
	input      textinput.Model
	keys       keyMap
	status     string
	confirmed  int
	done       bool
}

type modalState string

const (
	modalNone           modalState = ""
	modalCategoryPicker modalState = "categoryPicker"
)

type (
	overrideMsg struct {
		row int
		tx  model.Transaction
	}
	confirmedMsg int
	errMsg       struct{ err error }
)

const descriptionWidth = 40

func New(ctx context.Context, cfg config.Config, svc *service.Categorizer, res service.MatchResult, cats []model.Category) *App {
	inp := textinput.New()
	inp.Prompt = "Rule pattern: "
	inp.Placeholder = "substring"
	return &App{
		ctx:        ctx,
		svc:        svc,
		cfg:        cfg,
		rows:       res.All(),
		categories: cats,
		input:      inp,
		keys:       defaultKeys(),
	}
}

// Confirmed reports how many transactions were written to the ledger.
func (a *App) Confirmed() int { return a.confirmed }

// Done reports whether the batch was confirmed.
func (a *App) Done() bool { return a.done }

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch {
		case key.Matches(m, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(m, a.keys.Up):
			if a.cursor > 0 {
				a.cursor--
			}
		case key.Matches(m, a.keys.Down):
			if a.cursor < len(a.rows)-1 {
				a.cursor++
			}
		case key.Matches(m, a.keys.Open):
			a.openPicker()
		case key.Matches(m, a.keys.Confirm):
			return a, a.confirmCmd()
		}
	case overrideMsg:
		if m.row < len(a.rows) {
			a.rows[m.row] = m.tx
		}
		a.status = "categorized: " + m.tx.Description
	case confirmedMsg:
		a.confirmed = int(m)
		a.done = true
		return a, tea.Quit
	case errMsg:
		a.status = "error: " + m.err.Error()
	}
	return a, nil
}

func (a *App) openPicker() {
	if len(a.rows) == 0 {
		return
	}
	row := a.rows[a.cursor]
	a.options = service.ForFlow(a.categories, row.Flow())
	a.pickCursor = 0
	for i, c := range a.options {
		if c.ID == row.Category.ID() {
			a.pickCursor = i
		}
	}
	a.input.SetValue(row.Description)
	a.input.CursorEnd()
	a.input.Focus()
	a.modal = modalCategoryPicker
}

// handleModalKey drives the picker: arrows choose a category, everything
// else edits the rule pattern.
func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyUp:
		if a.pickCursor > 0 {
			a.pickCursor--
		}
		return a, nil
	case tea.KeyDown:
		if a.pickCursor < len(a.options)-1 {
			a.pickCursor++
		}
		return a, nil
	}
	switch {
	case key.Matches(m, a.keys.Cancel):
		a.closePicker()
		return a, nil
	case key.Matches(m, a.keys.Apply):
		pattern := a.input.Value()
		a.closePicker()
		if len(a.options) == 0 {
			return a, nil
		}
		return a, a.overrideCmd(a.cursor, a.options[a.pickCursor], pattern)
	}
	// cursor blink commands are dropped; the cursor stays visible
	a.input, _ = a.input.Update(m)
	return a, nil
}

func (a *App) closePicker() {
	a.modal = modalNone
	a.input.Blur()
}

func (a *App) overrideCmd(row int, cat model.Category, pattern string) tea.Cmd {
	tx := a.rows[row]
	return func() tea.Msg {
		got, err := a.svc.Override(a.ctx, tx, cat, pattern)
		if err != nil {
			return errMsg{err}
		}
		return overrideMsg{row: row, tx: got}
	}
}

func (a *App) confirmCmd() tea.Cmd {
	var confirmed, remaining []model.Transaction
	for _, t := range a.rows {
		if t.Category.IsZero() {
			remaining = append(remaining, t)
		} else {
			confirmed = append(confirmed, t)
		}
	}
	return func() tea.Msg {
		n, err := a.svc.Confirm(a.ctx, confirmed, remaining)
		if err != nil {
			return errMsg{err}
		}
		return confirmedMsg(n)
	}
}

func (a *App) View() string {
	if a.modal == modalCategoryPicker {
		return a.renderPicker()
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Confirm categories (%d)", len(a.rows))))
	b.WriteString("\n")
	for i, t := range a.rows {
		marker := "  "
		if i == a.cursor {
			marker = cursorStyle.Render("▶ ")
		}
		b.WriteString(marker + a.renderRow(t) + "\n")
	}
	b.WriteString(help(a.keys.Up, a.keys.Open, a.keys.Confirm, a.keys.Quit))
	if a.status != "" {
		b.WriteString("\n" + statusStyle.Render(a.status))
	}
	return b.String()
}

func (a *App) renderRow(t model.Transaction) string {
	amount := fmt.Sprintf("%s %10s", a.cfg.UI.Currency, t.Amount.String())
	if t.Flow() == model.FlowCredit {
		amount = creditStyle.Render(amount)
	} else {
		amount = debitStyle.Render(amount)
	}
	category := pendingStyle.Render("(uncategorized)")
	if c, ok := t.Category.Value(); ok {
		category = c.Label()
	}
	desc := ansi.Truncate(t.Description, descriptionWidth, "…")
	if pad := descriptionWidth - ansi.StringWidth(desc); pad > 0 {
		desc += strings.Repeat(" ", pad)
	}
	return fmt.Sprintf("%s  %s  %s  %s", t.Date.Format(a.dateFormat()), amount, desc, category)
}

func (a *App) dateFormat() string {
	if a.cfg.UI.DateFormat == "" {
		return "02/01/2006"
	}
	return a.cfg.UI.DateFormat
}

func (a *App) renderPicker() string {
	row := a.rows[a.cursor]
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select category") + "\n")
	b.WriteString(row.Description + "\n")
	b.WriteString(a.input.View() + "\n\n")
	if len(a.options) == 0 {
		b.WriteString(pendingStyle.Render("no category accepts this movement") + "\n")
	}
	for i, c := range a.options {
		marker := "  "
		if i == a.pickCursor {
			marker = cursorStyle.Render("▶ ")
		}
		b.WriteString(marker + c.Label() + "\n")
	}
	b.WriteString("[↑/↓] choose  [type] edit pattern  " + help(a.keys.Apply, a.keys.Cancel))
	return modalBoxStyle.Render(b.String())
}
