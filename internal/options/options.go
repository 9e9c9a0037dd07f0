// Package options contains the program options.
package options

// Backend names of the supported line drivers.
const (
	BackendGPIOMem  = "gpiomem"
	BackendGPIOCdev = "gpiocdev"
	BackendSim      = "sim"
)

// Positional contains positional arguments.
type Positional struct {
	ChipSelectArg string `arg:"positional" usage:"chip select 0-7, decimal, 0x hex or 0b binary"`
}

// Parameters contains device and file path options.
type Parameters struct {
	Output   string `flag:"o" usage:"output ROM image file (default: stdout)"`
	Backend  string `flag:"backend" usage:"line driver: gpiomem, gpiocdev, sim" default:"gpiomem"`
	GPIOChip string `flag:"gpiochip" usage:"gpio character device for the gpiocdev backend" default:"gpiochip0"`
	SimImage string `flag:"sim-image" usage:"ROM image answered by the sim backend"`
}

// Flags contains behavior options.
type Flags struct {
	ClockKHz   int  `flag:"clock" usage:"protocol clock in kHz (500-740)" default:"740"`
	Interrupts bool `flag:"irq" usage:"suppress host interrupts during the scan (needs root)"`
	SimValue   uint `flag:"sim-value" usage:"input nibble answered by the sim backend"`
	Debug      bool `flag:"debug" usage:"enable debug logging"`
	Quiet      bool `flag:"q" usage:"quiet mode"`
}

// Program options of the reader.
type Program struct {
	Positional
	Parameters
	Flags

	ChipSelect uint8 // parsed chip select, only the low 3 bits are serialized
}
