// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/read4001/internal/config"
	"github.com/retroenv/read4001/internal/options"
	"github.com/retroenv/read4001/internal/port/gpiocdev"
)

// ParseFlags parses the command line flags in os.Args and returns the
// program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)

	if err := flags.Parse(os.Args[1:]); err != nil {
		usage := &UsageError{flags: flags}
		if !errors.Is(err, flag.ErrHelp) {
			usage.msg = err.Error()
		}
		return opts, usage
	}

	args := flags.Args()
	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	if len(args) == 1 {
		opts.ChipSelectArg = args[0]
		chipSelect, err := ParseChipSelect(args[0])
		if err != nil {
			return opts, &UsageError{flags: flags, msg: err.Error()}
		}
		opts.ChipSelect = chipSelect
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage to stderr, stdout carries the ROM image.
func (e *UsageError) ShowUsage() {
	e.flags.SetOutput(os.Stderr)
	if e.msg != "" {
		fmt.Fprintf(os.Stderr, "%s\n\n", e.msg)
	}
	fmt.Fprintf(os.Stderr, "usage: read4001 [options] [chip select]\n\n")
	e.flags.PrintDefaults()
	fmt.Fprintln(os.Stderr)
}

// ParseChipSelect parses a chip select given in decimal, 0x prefixed hex or
// 0b prefixed binary. The value is not range checked, it is truncated to a
// byte and the protocol serializes only its low 3 bits.
func ParseChipSelect(s string) (uint8, error) {
	base := 10
	digits := s
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base, digits = 16, s[2:]
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		base, digits = 2, s[2:]
	}

	value, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chip select '%s'", s)
	}
	return uint8(value), nil
}

// validateArgs checks that at most one positional argument is given and
// that no flag follows it.
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after chip select, please pass the chip select as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("too many arguments: %s", strings.Join(args, " ")),
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	if _, err := config.NewTiming(opts.ClockKHz); err != nil {
		return err
	}
	if opts.SimValue > 0x0f {
		return fmt.Errorf("sim value %d does not fit in a nibble", opts.SimValue)
	}

	opts.Backend = strings.ToLower(opts.Backend)
	validBackends := []string{options.BackendGPIOMem, options.BackendGPIOCdev, options.BackendSim}
	for _, valid := range validBackends {
		if opts.Backend == valid {
			return nil
		}
	}

	return fmt.Errorf("unsupported backend: %s. Valid options: %s",
		opts.Backend, strings.Join(validBackends, ", "))
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output ROM image file, written to stdout if no name given")
	flags.StringVar(&opts.Backend, "backend", options.BackendGPIOMem, "line driver (gpiomem/gpiocdev/sim)")
	flags.StringVar(&opts.GPIOChip, "gpiochip", gpiocdev.DefaultChip, "gpio character device used by the gpiocdev backend")
	flags.StringVar(&opts.SimImage, "sim-image", "", "ROM image file answered by the sim backend")
	flags.IntVar(&opts.ClockKHz, "clock", config.DefaultClockKHz, "protocol clock in kHz (500-740)")
	flags.BoolVar(&opts.Interrupts, "irq", false, "suppress host interrupts during the scan, requires root")
	flags.UintVar(&opts.SimValue, "sim-value", 0, "input nibble answered by the sim backend when no image is given")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
