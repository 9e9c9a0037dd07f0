// Package scan reads a complete ROM image one word at a time.
package scan

import (
	"time"

	"github.com/retroenv/read4001/internal/irq"
)

// Size is the number of words of the ROM.
const Size = 256

// WordReader runs read transactions against the ROM.
type WordReader interface {
	Init()
	ReadWord(chipSelect, address uint8) byte
}

// Result is the outcome of a scan.
type Result struct {
	Data       []byte        // Size words in ascending address order
	ChipSelect uint8         // chip select the scan was run for
	Elapsed    time.Duration // time spent in the word reads, excluding the init sub-cycle
}

// PerWord returns the average duration of one word read.
func (r Result) PerWord() time.Duration {
	return r.Elapsed / Size
}

// Driver sequences the word reads of a scan.
type Driver struct {
	reader WordReader
	mask   irq.Mask
}

// New returns a scan driver. A nil mask leaves interrupts enabled.
func New(reader WordReader, mask irq.Mask) *Driver {
	if mask == nil {
		mask = irq.Nop{}
	}
	return &Driver{
		reader: reader,
		mask:   mask,
	}
}

// Scan runs the init sub-cycle and reads addresses 0 to 255 in order.
// It can not be cancelled once started, an interrupted scan has no
// usable result.
func (d *Driver) Scan(chipSelect uint8) Result {
	data := make([]byte, Size)

	token := d.mask.Suppress()
	d.reader.Init()

	start := time.Now()
	for address := 0; address < Size; address++ {
		data[address] = d.reader.ReadWord(chipSelect, uint8(address))
	}
	elapsed := time.Since(start)

	d.mask.Restore(token)

	return Result{
		Data:       data,
		ChipSelect: chipSelect,
		Elapsed:    elapsed,
	}
}
