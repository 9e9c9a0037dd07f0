// Package gpiocdev drives the reader lines through the Linux GPIO character
// device. It does not need root privileges but every line access is a
// system call, so the clock rate achievable is lower than with gpiomem.
package gpiocdev

import (
	"fmt"

	"github.com/retroenv/read4001/internal/port"
	"github.com/retroenv/retrogolib/log"
	"github.com/warthog618/go-gpiocdev"
)

// DefaultChip is the GPIO chip carrying the header pins.
const DefaultChip = "gpiochip0"

const consumer = "read4001"

// Port is a port.Port backed by requested character device lines.
// Line access errors do not interrupt the protocol, the first one is
// kept and returned by Err.
type Port struct {
	chip  *gpiocdev.Chip
	lines [port.LineCount]*gpiocdev.Line
	err   error
}

var _ port.Port = (*Port)(nil)

// Open requests all lines of pins from chipName.
// Clock, sync and chip matrix enable lines start negated.
func Open(logger *log.Logger, chipName string, pins port.PinMap) (*Port, error) {
	if err := pins.Validate(); err != nil {
		return nil, fmt.Errorf("validating pin map: %w", err)
	}

	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("opening gpio chip '%s': %w", chipName, err)
	}

	p := &Port{chip: chip}
	for _, line := range port.Lines {
		var option gpiocdev.LineReqOption = gpiocdev.AsInput
		if line.IsOutput() {
			option = gpiocdev.AsOutput(0)
		}

		l, err := chip.RequestLine(pins[line], option)
		if err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("requesting line %s on pin %d: %w", line, pins[line], err)
		}
		p.lines[line] = l
		logger.Debug("Requested line",
			log.Stringer("line", line),
			log.Int("offset", pins[line]))
	}

	port.Reset(p)
	return p, nil
}

// SetLine implements port.Port.
func (p *Port) SetLine(line port.Line, high bool) {
	value := 0
	if high {
		value = 1
	}
	if err := p.lines[line].SetValue(value); err != nil {
		p.keep(fmt.Errorf("setting line %s: %w", line, err))
	}
}

// ReadLine implements port.Port.
func (p *Port) ReadLine(line port.Line) bool {
	value, err := p.lines[line].Value()
	if err != nil {
		p.keep(fmt.Errorf("reading line %s: %w", line, err))
		return false
	}
	return value != 0
}

// Err returns the first line access error.
func (p *Port) Err() error {
	return p.err
}

// Close releases all requested lines and the chip.
func (p *Port) Close() error {
	var firstErr error
	for i, l := range p.lines {
		if l == nil {
			continue
		}
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing line %s: %w", port.Line(i), err)
		}
		p.lines[i] = nil
	}
	if p.chip != nil {
		if err := p.chip.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing gpio chip: %w", err)
		}
		p.chip = nil
	}
	return firstErr
}

func (p *Port) keep(err error) {
	if p.err == nil {
		p.err = err
	}
}
