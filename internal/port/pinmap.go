package port

import "fmt"

// PinMap assigns a BCM GPIO number to every line.
type PinMap map[Line]int

// DefaultPinMap returns the wiring of the Raspberry Pi Zero reader board.
func DefaultPinMap() PinMap {
	return PinMap{
		DataOut0:         14,
		DataOut1:         15,
		DataOut2:         18,
		DataOut3:         23,
		Clk1:             24,
		Clk2:             25,
		Sync:             8,
		ChipMatrixEnable: 7,
		DataIn0:          12,
		DataIn1:          16,
		DataIn2:          20,
		DataIn3:          21,
	}
}

// Validate checks that every line has a pin and that no pin is shared.
func (m PinMap) Validate() error {
	used := make(map[int]Line, len(m))
	for _, line := range Lines {
		pin, ok := m[line]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownLine, line)
		}
		if pin < 0 {
			return fmt.Errorf("invalid pin %d for line %s", pin, line)
		}
		if other, ok := used[pin]; ok {
			return fmt.Errorf("pin %d assigned to both %s and %s", pin, other, line)
		}
		used[pin] = line
	}
	return nil
}
