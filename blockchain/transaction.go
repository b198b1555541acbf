package blockchain

import (
	"fmt"
)

// Transfer is the payload carried by simulated blocks. Nothing about it is
// checked: no signatures, balances or amounts.
type Transfer struct {
	From string
	To   string
}

func (t Transfer) String() string {
	return fmt.Sprintf("%s sent to %s", t.From, t.To)
}
