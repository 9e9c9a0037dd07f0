package cycle

import "fmt"

// Kind tags a sub-cycle with the line actions it performs.
type Kind int

// Sub-cycle kinds in transaction order. Init runs once per scan.
const (
	Init Kind = iota
	AddrLow
	AddrHigh
	ChipSelect
	DataHigh
	DataLow
	Trail1
	Trail2
	Trail3
)

var kindNames = [...]string{
	"Init", "AddrLow", "AddrHigh", "ChipSelect",
	"DataHigh", "DataLow", "Trail1", "Trail2", "Trail3",
}

func (k Kind) String() string {
	if k < Init || k > Trail3 {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// WordKinds lists the sub-cycles of one word read transaction.
var WordKinds = [...]Kind{AddrLow, AddrHigh, ChipSelect, DataHigh, DataLow, Trail1, Trail2, Trail3}
