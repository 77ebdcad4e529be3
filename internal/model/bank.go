package model

// Account is one account held at a bank.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Bank groups accounts under an upstream bank identifier.
type Bank struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Accounts []Account `json:"accounts"`
}

// NewBank returns a bank named after its id, holding the given accounts.
func NewBank(id string, accounts ...Account) Bank {
	return Bank{ID: id, Name: id, Accounts: append([]Account(nil), accounts...)}
}

// HasAccount reports whether an account with id is held.
func (b Bank) HasAccount(id string) bool {
	for _, a := range b.Accounts {
		if a.ID == id {
			return true
		}
	}
	return false
}

// MergeBanks unions incoming into current. Banks are matched by id; accounts
// are matched by id within their bank. Unknown banks are appended whole, minus
// any account repeated inside the incoming bank itself. The inputs are not
// modified.
func MergeBanks(current, incoming []Bank) []Bank {
	out := make([]Bank, 0, len(current)+len(incoming))
	pos := make(map[string]int, len(current)+len(incoming))
	add := func(b Bank) {
		i, ok := pos[b.ID]
		if !ok {
			pos[b.ID] = len(out)
			out = append(out, Bank{ID: b.ID, Name: b.Name})
			i = len(out) - 1
		}
		for _, a := range b.Accounts {
			if !out[i].HasAccount(a.ID) {
				out[i].Accounts = append(out[i].Accounts, a)
			}
		}
	}
	for _, b := range current {
		add(b)
	}
	for _, b := range incoming {
		add(b)
	}
	return out
}
