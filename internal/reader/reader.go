// Package reader runs a complete ROM read: it acquires the lines and the
// optional interrupt mask, scans the chip and writes the image.
package reader

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/read4001/internal/config"
	"github.com/retroenv/read4001/internal/cycle"
	"github.com/retroenv/read4001/internal/irq"
	"github.com/retroenv/read4001/internal/irq/bcm2835"
	"github.com/retroenv/read4001/internal/options"
	"github.com/retroenv/read4001/internal/port"
	"github.com/retroenv/read4001/internal/port/gpiocdev"
	"github.com/retroenv/read4001/internal/port/gpiomem"
	"github.com/retroenv/read4001/internal/port/simport"
	"github.com/retroenv/read4001/internal/scan"
	"github.com/retroenv/read4001/internal/timer"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// device is a port that holds acquired resources.
type device interface {
	port.Port
	io.Closer
}

// errorReporter is implemented by ports that collect line access errors.
type errorReporter interface {
	Err() error
}

// Run reads the ROM selected by opts and writes the image to the output
// file, or to stdout if no output file is set. Nothing is written unless
// all 256 words have been read.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, stdout io.Writer) error {
	timing, err := config.NewTiming(opts.ClockKHz)
	if err != nil {
		return fmt.Errorf("configuring clock: %w", err)
	}
	printTiming(logger, timing, opts)

	dev, err := openPort(logger, opts)
	if err != nil {
		return fmt.Errorf("initializing gpio: %w", err)
	}
	defer func() { _ = dev.Close() }()

	mask, closeMask, err := openMask(opts)
	if err != nil {
		return fmt.Errorf("initializing interrupt mask, try running as root: %w", err)
	}
	defer closeMask()

	if err := ctx.Err(); err != nil {
		return err
	}

	var engineOpts []cycle.Option
	if tracer, ok := dev.(cycle.Tracer); ok {
		engineOpts = append(engineOpts, cycle.WithTracer(tracer))
	}
	engine := cycle.New(dev, timer.Spin{}, timing.Unit, engineOpts...)
	result := scan.New(engine, mask).Scan(opts.ChipSelect)

	if reporter, ok := dev.(errorReporter); ok {
		if err := reporter.Err(); err != nil {
			return fmt.Errorf("accessing gpio lines: %w", err)
		}
	}

	logger.Info("Scan finished",
		log.Int("total_us", int(result.Elapsed.Microseconds())),
		log.String("us_per_word", formatMicroseconds(result.Elapsed.Nanoseconds(), scan.Size)))

	if err := ctx.Err(); err != nil {
		return err
	}
	return writeImage(opts, stdout, result.Data)
}

// PrintBanner logs the program version.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("read4001", log.String("version", buildinfo.Version(version, commit, date)))
}

func printTiming(logger *log.Logger, timing config.Timing, opts options.Program) {
	logger.Info("Clock",
		log.Int("clock_khz", timing.ClockKHz),
		log.Int("cycle_ns", int(timing.Cycle.Nanoseconds())),
		log.Int("unit_ns", int(timing.Unit.Nanoseconds())),
		log.String("us_per_word", formatMicroseconds(timing.PerWord().Nanoseconds(), 1)))
	logger.Info("Chip select",
		log.Uint8("chip_select", opts.ChipSelect),
		log.String("backend", opts.Backend))
}

func formatMicroseconds(ns int64, count int64) string {
	return fmt.Sprintf("%.2f", float64(ns)/float64(count)/1000)
}

func openPort(logger *log.Logger, opts options.Program) (device, error) {
	switch opts.Backend {
	case options.BackendGPIOMem, "":
		p, err := gpiomem.Open(logger, port.DefaultPinMap())
		if err != nil {
			return nil, err
		}
		return p, nil
	case options.BackendGPIOCdev:
		p, err := gpiocdev.Open(logger, opts.GPIOChip, port.DefaultPinMap())
		if err != nil {
			return nil, err
		}
		return p, nil
	case options.BackendSim:
		return openSim(opts)
	default:
		return nil, fmt.Errorf("unsupported backend: %s", opts.Backend)
	}
}

// openSim returns a simulated chip wired at the selected chip select.
func openSim(opts options.Program) (device, error) {
	if opts.SimImage == "" {
		return simport.New(simport.WithNibble(byte(opts.SimValue))), nil
	}

	image, err := os.ReadFile(opts.SimImage)
	if err != nil {
		return nil, fmt.Errorf("reading sim image '%s': %w", opts.SimImage, err)
	}
	return simport.New(simport.WithImage(opts.ChipSelect, image)), nil
}

func openMask(opts options.Program) (irq.Mask, func(), error) {
	if !opts.Interrupts || opts.Backend == options.BackendSim {
		return irq.Nop{}, func() {}, nil
	}

	controller, err := bcm2835.Open(bcm2835.PiZeroPeripheralBase)
	if err != nil {
		return nil, nil, err
	}
	return controller, func() { _ = controller.Close() }, nil
}

func writeImage(opts options.Program, stdout io.Writer, data []byte) error {
	if opts.Output == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("writing image: %w", err)
		}
		return nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing output file %s: %w", opts.Output, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing output file %s: %w", opts.Output, err)
	}
	return nil
}
