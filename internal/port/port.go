// Package port defines the digital signal lines of the ROM reader and the
// interface the protocol engine uses to drive and sample them.
package port

import (
	"errors"
	"fmt"
)

// ErrUnknownLine is returned when a pin map does not assign a pin to a line.
var ErrUnknownLine = errors.New("line has no pin assigned")

// Line is one named single-bit signal line.
type Line int

// Output lines first, then input lines.
const (
	DataOut0 Line = iota
	DataOut1
	DataOut2
	DataOut3
	Clk1
	Clk2
	Sync
	ChipMatrixEnable
	DataIn0
	DataIn1
	DataIn2
	DataIn3

	LineCount = int(DataIn3) + 1
)

var lineNames = [LineCount]string{
	"DOUT0", "DOUT1", "DOUT2", "DOUT3",
	"CLK1", "CLK2", "SYNC", "CM",
	"DIN0", "DIN1", "DIN2", "DIN3",
}

// Lines lists all lines in declaration order.
var Lines = [LineCount]Line{
	DataOut0, DataOut1, DataOut2, DataOut3,
	Clk1, Clk2, Sync, ChipMatrixEnable,
	DataIn0, DataIn1, DataIn2, DataIn3,
}

// DataOut holds the output data lines, index is the bit number.
var DataOut = [4]Line{DataOut0, DataOut1, DataOut2, DataOut3}

// DataIn holds the input data lines, index is the bit number.
var DataIn = [4]Line{DataIn0, DataIn1, DataIn2, DataIn3}

func (l Line) String() string {
	if l < 0 || int(l) >= LineCount {
		return fmt.Sprintf("Line(%d)", int(l))
	}
	return lineNames[l]
}

// IsOutput returns whether the line is driven by the host.
func (l Line) IsOutput() bool {
	return l >= DataOut0 && l <= ChipMatrixEnable
}

// Port drives output lines and samples input lines.
// Implementations are accessed by a single goroutine only.
type Port interface {
	// SetLine drives an output line, true asserts it.
	SetLine(line Line, high bool)
	// ReadLine samples an input line.
	ReadLine(line Line) bool
}

// WriteNibble drives DataOut0..3 from the low 4 bits of value.
func WriteNibble(p Port, value byte) {
	for bit, line := range DataOut {
		p.SetLine(line, value&(1<<bit) != 0)
	}
}

// ReadNibble samples DataIn0..3 into a 4 bit value, bit 0 is DataIn0.
func ReadNibble(p Port) byte {
	var value byte
	for bit, line := range DataIn {
		if p.ReadLine(line) {
			value |= 1 << bit
		}
	}
	return value
}

// Reset negates the clock, sync and chip matrix enable lines.
func Reset(p Port) {
	p.SetLine(Clk1, false)
	p.SetLine(Clk2, false)
	p.SetLine(Sync, false)
	p.SetLine(ChipMatrixEnable, false)
}
