// Package statement reads OFX-style bank statement exports into raw
// transactions and bank/account declarations.
package statement

import (
	"strings"
	"time"

	"github.com/govalues/decimal"

	"github.com/jask/jaskfin/internal/model"
)

// Tags and block terminators the parser reacts to.
const (
	tagMemo      = "MEMO"
	tagAmount    = "TRNAMT"
	tagPosted    = "DTPOSTED"
	tagBankID    = "BANKID"
	tagAccountID = "ACCTID"

	closeTransaction = "/STMTTRN"
	closeAccount     = "/BANKACCTFROM"
)

// Result is everything recognized in one export.
type Result struct {
	Transactions []model.Transaction
	Banks        []model.Bank
	// Skipped counts tag values that could not be interpreted.
	Skipped int
}

type draft struct {
	description string
	amount      decimal.Decimal
	date        time.Time
}

// Parser is the line state machine. The zero value is ready to use; feed it
// one file's lines and collect Result.
type Parser struct {
	tx      draft
	bank    string
	account string
	res     Result
}

// Parse runs a fresh Parser over lines.
func Parse(lines []string) Result {
	var p Parser
	for _, l := range lines {
		p.Line(l)
	}
	return p.Result()
}

// Result returns what has been emitted so far.
func (p *Parser) Result() Result { return p.res }

// Line consumes one line. Lines that are not shaped like <TAG>value or a
// known block terminator are ignored.
func (p *Parser) Line(line string) {
	tag, value, ok := split(line)
	if !ok {
		return
	}
	if value == "" {
		switch tag {
		case closeTransaction:
			p.emitTransaction()
		case closeAccount:
			p.emitBank()
		}
		return
	}
	switch tag {
	case tagMemo:
		p.tx.description = strings.ToLower(value)
	case tagAmount:
		amount, err := parseAmount(value)
		if err != nil {
			p.res.Skipped++
			return
		}
		p.tx.amount = amount
	case tagPosted:
		date, err := parseDate(value)
		if err != nil {
			p.res.Skipped++
			return
		}
		p.tx.date = date
	case tagBankID:
		p.bank = strings.ToUpper(value)
	case tagAccountID:
		p.account = strings.ToLower(value)
	}
}

func (p *Parser) emitTransaction() {
	var account *string
	if p.account != "" {
		a := p.account
		account = &a
	}
	tx := model.NewTransaction(p.tx.description, p.tx.amount, p.tx.date, account)
	p.res.Transactions = append(p.res.Transactions, tx)
	p.tx = draft{}
}

func (p *Parser) emitBank() {
	if p.bank == "" {
		return
	}
	b := model.NewBank(p.bank)
	if p.account != "" {
		b.Accounts = append(b.Accounts, model.Account{ID: p.account, Name: p.account})
	}
	p.res.Banks = append(p.res.Banks, b)
}

// split breaks "<TAG>value" or "</TAG>" into tag and value. Any trailing
// closing tag on the same line is dropped from value.
func split(line string) (tag, value string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "<") {
		return "", "", false
	}
	body := line[1:]
	end := strings.IndexByte(body, '>')
	if end <= 0 {
		return "", "", false
	}
	tag, value = body[:end], body[end+1:]
	if i := strings.IndexByte(value, '<'); i >= 0 {
		value = value[:i]
	}
	return tag, strings.TrimSpace(value), true
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.Parse(s)
	if err == nil {
		return d, nil
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		return decimal.Parse(strings.ReplaceAll(s, ",", "."))
	}
	return decimal.Decimal{}, err
}

func parseDate(s string) (time.Time, error) {
	if len(s) < 8 {
		return time.Time{}, &time.ParseError{Layout: model.DateLayout, Value: s, Message: ": too short"}
	}
	return time.Parse(model.DateLayout, s[:8])
}
