// Package gpiomem drives the reader lines through the memory mapped GPIO
// registers of the Raspberry Pi. Register access is fast enough to meet the
// sub microsecond phase windows.
package gpiomem

import (
	"fmt"

	"github.com/retroenv/read4001/internal/port"
	"github.com/retroenv/retrogolib/log"
	"github.com/warthog618/gpio"
)

// Port is a port.Port backed by /dev/gpiomem.
type Port struct {
	pins [port.LineCount]*gpio.Pin
}

var _ port.Port = (*Port)(nil)

// Open maps the GPIO registers and configures the line directions.
// Clock, sync and chip matrix enable lines start negated.
func Open(logger *log.Logger, pins port.PinMap) (*Port, error) {
	if err := pins.Validate(); err != nil {
		return nil, fmt.Errorf("validating pin map: %w", err)
	}
	if err := gpio.Open(); err != nil {
		return nil, fmt.Errorf("opening gpio memory: %w", err)
	}

	p := &Port{}
	for _, line := range port.Lines {
		pin := gpio.NewPin(pins[line])
		if line.IsOutput() {
			pin.Output()
		} else {
			pin.Input()
		}
		p.pins[line] = pin
		logger.Debug("Configured line",
			log.Stringer("line", line),
			log.Int("pin", pins[line]))
	}

	port.Reset(p)
	return p, nil
}

// SetLine implements port.Port.
func (p *Port) SetLine(line port.Line, high bool) {
	p.pins[line].Write(gpio.Level(high))
}

// ReadLine implements port.Port.
func (p *Port) ReadLine(line port.Line) bool {
	return bool(p.pins[line].Read())
}

// Close unmaps the GPIO registers. Line levels are left as they are.
func (p *Port) Close() error {
	if err := gpio.Close(); err != nil {
		return fmt.Errorf("closing gpio memory: %w", err)
	}
	return nil
}
