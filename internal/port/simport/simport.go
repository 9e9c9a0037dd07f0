// Package simport provides a simulated ROM reader port. It latches the
// address and chip select driven by the engine, answers data reads from a
// ROM image or a fixed nibble and can record every line change tagged with
// the sub-cycle and phase it happened in.
package simport

import (
	"github.com/retroenv/read4001/internal/cycle"
	"github.com/retroenv/read4001/internal/port"
)

// SetupPhase tags line changes made before phase 0 of a sub-cycle.
const SetupPhase = -1

const latchPhase = cycle.Phases - 1

// Event is one recorded SetLine call.
type Event struct {
	Kind  cycle.Kind
	Phase int
	Line  port.Line
	High  bool
}

// Read is one recorded data nibble read.
type Read struct {
	Kind   cycle.Kind
	Phase  int
	Nibble byte
}

// Port is a simulated port. It implements port.Port and cycle.Tracer.
type Port struct {
	levels [port.LineCount]bool

	kind  cycle.Kind
	phase int

	fixed    byte
	image    []byte
	chip     uint8
	useImage bool

	addrLow    byte
	addrHigh   byte
	chipSelect byte

	record bool
	events []Event
	reads  []Read
}

// Option configures a simulated port.
type Option func(*Port)

// WithNibble makes every input line sample return the bits of value.
func WithNibble(value byte) Option {
	return func(p *Port) {
		p.fixed = value & 0x0f
		p.useImage = false
	}
}

// WithImage answers reads addressed to chip from image. Reads addressed to
// another chip return zero, addresses beyond the image return zero.
func WithImage(chip uint8, image []byte) Option {
	return func(p *Port) {
		p.image = image
		p.chip = chip & 0x07
		p.useImage = true
	}
}

// WithRecording enables the event and read log.
func WithRecording() Option {
	return func(p *Port) {
		p.record = true
	}
}

// New returns a simulated port.
func New(opts ...Option) *Port {
	p := &Port{
		phase: SetupPhase,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetLine implements port.Port.
func (p *Port) SetLine(line port.Line, high bool) {
	p.levels[line] = high
	if p.record {
		p.events = append(p.events, Event{Kind: p.kind, Phase: p.phase, Line: line, High: high})
	}
}

// ReadLine implements port.Port.
func (p *Port) ReadLine(line port.Line) bool {
	if line.IsOutput() {
		return p.levels[line]
	}
	nibble := p.inputNibble()
	bit := int(line - port.DataIn0)
	if p.record && bit == 0 {
		p.reads = append(p.reads, Read{Kind: p.kind, Phase: p.phase, Nibble: nibble})
	}
	return nibble&(1<<bit) != 0
}

// BeginSubCycle implements cycle.Tracer.
func (p *Port) BeginSubCycle(kind cycle.Kind) {
	p.kind = kind
	p.phase = SetupPhase
}

// BeginPhase implements cycle.Tracer. The driven nibble is latched at the
// last phase of the address and chip select sub-cycles.
func (p *Port) BeginPhase(kind cycle.Kind, index int) {
	p.kind = kind
	p.phase = index
	if index != latchPhase {
		return
	}

	switch kind {
	case cycle.AddrLow:
		p.addrLow = p.outputNibble()
	case cycle.AddrHigh:
		p.addrHigh = p.outputNibble()
	case cycle.ChipSelect:
		p.chipSelect = p.outputNibble()
	}
}

// Level returns the current level of a line.
func (p *Port) Level(line port.Line) bool {
	return p.levels[line]
}

// Events returns the recorded line changes.
func (p *Port) Events() []Event {
	return p.events
}

// Reads returns the recorded data nibble reads.
func (p *Port) Reads() []Read {
	return p.reads
}

// ClearLog drops recorded events and reads.
func (p *Port) ClearLog() {
	p.events = p.events[:0]
	p.reads = p.reads[:0]
}

// Close implements io.Closer, a simulated port holds no resources.
func (p *Port) Close() error {
	return nil
}

func (p *Port) outputNibble() byte {
	var value byte
	for bit, line := range port.DataOut {
		if p.levels[line] {
			value |= 1 << bit
		}
	}
	return value
}

func (p *Port) inputNibble() byte {
	if !p.useImage {
		return p.fixed
	}
	if p.chipSelect != p.chip {
		return 0
	}
	address := int(p.addrHigh)<<4 | int(p.addrLow)
	if address >= len(p.image) {
		return 0
	}
	value := p.image[address]
	if p.kind == cycle.DataHigh {
		return value >> 4
	}
	return value & 0x0f
}
