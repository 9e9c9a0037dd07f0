// Package bcm2835 masks interrupts through the ARM interrupt controller
// registers of the BCM2835, mapped from /dev/mem. All raw register access
// of the reader is confined to this package.
package bcm2835

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"github.com/retroenv/read4001/internal/irq"
	"golang.org/x/sys/unix"
)

// PiZeroPeripheralBase is the physical peripheral base of the Pi Zero and Pi 1.
const PiZeroPeripheralBase = 0x20000000

const (
	memDevice        = "/dev/mem"
	blockSize        = 4 * 1024
	controllerOffset = 0xb000

	// word indexes into the mapped block
	enableRegister  = 0x210 / 4
	disableRegister = 0x21c / 4

	disableAll = 0xffffffff
)

// Controller is an irq.Mask backed by the interrupt controller registers.
type Controller struct {
	mem  []byte
	regs []uint32
}

var _ irq.Mask = (*Controller)(nil)

// Open maps the interrupt controller block located at peripheralBase.
// It requires root privileges.
func Open(peripheralBase int64) (*Controller, error) {
	file, err := os.OpenFile(memDevice, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", memDevice, err)
	}
	defer func() { _ = file.Close() }()

	mem, err := unix.Mmap(int(file.Fd()), peripheralBase+controllerOffset, blockSize,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mapping interrupt registers: %w", err)
	}

	regs := unsafe.Slice((*uint32)(unsafe.Pointer(&mem[0])), len(mem)/4)
	c := newController(regs)
	c.mem = mem
	return c, nil
}

func newController(regs []uint32) *Controller {
	return &Controller{regs: regs}
}

// Suppress saves the enabled interrupt sources and disables all of them.
func (c *Controller) Suppress() irq.Token {
	var token irq.Token
	for i := range token.Enabled {
		token.Enabled[i] = atomic.LoadUint32(&c.regs[enableRegister+i])
	}
	for i := 0; i < irq.Banks; i++ {
		atomic.StoreUint32(&c.regs[disableRegister+i], disableAll)
	}
	return token
}

// Restore re-enables the interrupt sources saved in token.
func (c *Controller) Restore(token irq.Token) {
	for i, enabled := range token.Enabled {
		atomic.StoreUint32(&c.regs[enableRegister+i], enabled)
	}
}

// Close unmaps the register block.
func (c *Controller) Close() error {
	if c.mem == nil {
		return nil
	}
	mem := c.mem
	c.mem = nil
	c.regs = nil
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("unmapping interrupt registers: %w", err)
	}
	return nil
}
