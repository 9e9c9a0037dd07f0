// Package cycle implements the phase clocked read transaction of the 4001
// ROM: a sequencer for single 7 phase sub-cycles and an engine composing
// them into word reads.
package cycle

import (
	"time"

	"github.com/retroenv/read4001/internal/port"
	"github.com/retroenv/read4001/internal/timer"
)

const (
	chipSelectMask = 0x07

	cmAssertPhase = 3
	cmNegatePhase = 0
	samplePhase   = 5
)

// Engine reads single words from the ROM. There is no checksum and no
// retry, every transaction returns whatever the input lines show.
type Engine struct {
	port port.Port
	seq  *Sequencer
}

// New returns an engine driving p and holding each phase for unit.
func New(p port.Port, waiter timer.Waiter, unit time.Duration, opts ...Option) *Engine {
	return &Engine{
		port: p,
		seq:  NewSequencer(p, waiter, unit, opts...),
	}
}

// Init runs the sync sub-cycle that opens the frame. It has to run once
// before the first ReadWord of a scan.
func (e *Engine) Init() {
	e.seq.Begin(Init)
	e.port.SetLine(port.Sync, true)
	e.seq.RunSubCycle(Init, nil)
}

// ReadWord runs the 8 sub-cycles of one transaction and returns the byte
// stored at address. Only the low 3 bits of chipSelect are serialized.
func (e *Engine) ReadWord(chipSelect, address uint8) byte {
	var data byte

	e.seq.Begin(AddrLow)
	e.port.SetLine(port.Sync, false)
	port.WriteNibble(e.port, address)
	e.seq.RunSubCycle(AddrLow, nil)

	e.seq.Begin(AddrHigh)
	port.WriteNibble(e.port, address>>4)
	e.seq.RunSubCycle(AddrHigh, nil)

	e.seq.Begin(ChipSelect)
	port.WriteNibble(e.port, chipSelect&chipSelectMask)
	e.seq.RunSubCycle(ChipSelect, func(index int) {
		if index == cmAssertPhase {
			e.port.SetLine(port.ChipMatrixEnable, true)
		}
	})

	e.seq.Begin(DataHigh)
	e.seq.RunSubCycle(DataHigh, func(index int) {
		switch index {
		case cmNegatePhase:
			port.WriteNibble(e.port, 0)
			e.port.SetLine(port.ChipMatrixEnable, false)
		case samplePhase:
			data = port.ReadNibble(e.port) << 4
		}
	})

	e.seq.Begin(DataLow)
	e.seq.RunSubCycle(DataLow, func(index int) {
		if index == samplePhase {
			data |= port.ReadNibble(e.port)
		}
	})

	e.seq.Begin(Trail1)
	e.seq.RunSubCycle(Trail1, nil)
	e.seq.Begin(Trail2)
	e.seq.RunSubCycle(Trail2, nil)

	e.seq.Begin(Trail3)
	e.port.SetLine(port.Sync, true)
	e.seq.RunSubCycle(Trail3, nil)

	return data
}
