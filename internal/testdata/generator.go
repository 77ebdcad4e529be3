// Package testdata renders synthetic bank statement exports.
package testdata

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/govalues/decimal"
)

// Entry is one movement to render.
type Entry struct {
	Memo   string
	Amount decimal.Decimal
	Date   time.Time
}

// Account is one account block with its movements.
type Account struct {
	BankID    string
	AccountID string
	Entries   []Entry
}

var memos = []struct {
	memo   string
	credit bool
}{
	{"UBER EATS* SUSHI", false},
	{"UBER *TRIP", false},
	{"SUPERMERCADO EXTRA", false},
	{"SPOTIFY", false},
	{"NETFLIX.COM", false},
	{"DROGARIA SAO PAULO", false},
	{"TARIFA PACOTE SERVICOS", false},
	{"SALARIO ACME LTDA", true},
	{"PIX RECEBIDO", true},
}

// Random returns n entries dated within the days before now, drawn from a
// fixed set of memos. The same seed gives the same entries.
func Random(seed int64, n int, now time.Time) []Entry {
	r := rand.New(rand.NewSource(seed))
	out := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		m := memos[r.Intn(len(memos))]
		cents := int64(r.Intn(20000) + 500)
		if !m.credit {
			cents = -cents
		}
		out = append(out, Entry{
			Memo:   m.memo,
			Amount: decimal.MustNew(cents, 2),
			Date:   now.AddDate(0, 0, -r.Intn(30)),
		})
	}
	return out
}

// OFX renders the accounts as one SGML export.
func OFX(accounts ...Account) string {
	var b strings.Builder
	b.WriteString("OFXHEADER:100\nDATA:OFXSGML\n<OFX>\n<BANKMSGSRSV1>\n")
	for _, a := range accounts {
		b.WriteString("<STMTTRNRS>\n<STMTRS>\n<CURDEF>BRL\n")
		fmt.Fprintf(&b, "<BANKACCTFROM>\n<BANKID>%s\n<ACCTID>%s\n</BANKACCTFROM>\n", a.BankID, a.AccountID)
		b.WriteString("<BANKTRANLIST>\n")
		for i, e := range a.Entries {
			kind := "DEBIT"
			if e.Amount.Sign() > 0 {
				kind = "CREDIT"
			}
			fmt.Fprintf(&b, "<STMTTRN>\n<TRNTYPE>%s\n<DTPOSTED>%s120000[-03:EST]\n<TRNAMT>%s\n<FITID>%04d\n<MEMO>%s\n</STMTTRN>\n",
				kind, e.Date.Format("20060102"), e.Amount.String(), i+1, e.Memo)
		}
		b.WriteString("</BANKTRANLIST>\n</STMTRS>\n</STMTTRNRS>\n")
	}
	b.WriteString("</BANKMSGSRSV1>\n</OFX>\n")
	return b.String()
}
