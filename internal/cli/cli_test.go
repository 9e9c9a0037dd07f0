package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/read4001/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseChipSelect(t *testing.T) {
	tests := []struct {
		input string
		want  uint8
	}{
		{input: "0", want: 0},
		{input: "5", want: 5},
		{input: "0x7", want: 7},
		{input: "0X06", want: 6},
		{input: "0b101", want: 5},
		{input: "0B11", want: 3},
		{input: "12", want: 12},
		{input: "0x1ff", want: 0xff},
		{input: "300", want: 44},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseChipSelect(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChipSelectInvalid(t *testing.T) {
	for _, input := range []string{"", "0x", "0b", "0b102", "seven", "0xzz", "1.5"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseChipSelect(input)
			assert.Error(t, err)
		})
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "defaults",
			args: []string{"prog"},
			want: options.Program{
				Parameters: options.Parameters{Backend: options.BackendGPIOMem, GPIOChip: "gpiochip0"},
				Flags:      options.Flags{ClockKHz: 740},
			},
		},
		{
			name: "hex chip select",
			args: []string{"prog", "0x3"},
			want: options.Program{
				Positional: options.Positional{ChipSelectArg: "0x3"},
				Parameters: options.Parameters{Backend: options.BackendGPIOMem, GPIOChip: "gpiochip0"},
				Flags:      options.Flags{ClockKHz: 740},
				ChipSelect: 3,
			},
		},
		{
			name: "all flags",
			args: []string{"prog", "-o", "rom.bin", "-backend", "SIM", "-sim-value", "10",
				"-clock", "570", "-irq", "-debug", "0b110"},
			want: options.Program{
				Positional: options.Positional{ChipSelectArg: "0b110"},
				Parameters: options.Parameters{Output: "rom.bin", Backend: options.BackendSim, GPIOChip: "gpiochip0"},
				Flags:      options.Flags{ClockKHz: 570, Interrupts: true, SimValue: 10, Debug: true},
				ChipSelect: 6,
			},
		},
		{
			name: "gpiocdev backend",
			args: []string{"prog", "-backend", "gpiocdev", "-gpiochip", "gpiochip4", "-q"},
			want: options.Program{
				Parameters: options.Parameters{Backend: options.BackendGPIOCdev, GPIOChip: "gpiochip4"},
				Flags:      options.Flags{ClockKHz: 740, Quiet: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"prog", "-x"}},
		{name: "help", args: []string{"prog", "-h"}},
		{name: "clock too slow", args: []string{"prog", "-clock", "499"}},
		{name: "clock too fast", args: []string{"prog", "-clock", "741"}},
		{name: "unknown backend", args: []string{"prog", "-backend", "spi"}},
		{name: "sim value too large", args: []string{"prog", "-sim-value", "16"}},
		{name: "invalid chip select", args: []string{"prog", "chip"}},
		{name: "too many arguments", args: []string{"prog", "1", "2"}},
		{name: "flag after chip select", args: []string{"prog", "1", "-q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, err := ParseFlags()
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}
