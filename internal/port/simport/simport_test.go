package simport

import (
	"testing"

	"github.com/retroenv/read4001/internal/cycle"
	"github.com/retroenv/read4001/internal/port"
	"github.com/retroenv/retrogolib/assert"
)

// drive sets the data out nibble and runs the latch phase of kind.
func drive(p *Port, kind cycle.Kind, nibble byte) {
	p.BeginSubCycle(kind)
	port.WriteNibble(p, nibble)
	p.BeginPhase(kind, latchPhase)
}

func TestImageAnswer(t *testing.T) {
	image := make([]byte, 256)
	image[0x3C] = 0x9E

	p := New(WithImage(2, image), WithRecording())
	drive(p, cycle.AddrLow, 0xC)
	drive(p, cycle.AddrHigh, 0x3)
	drive(p, cycle.ChipSelect, 0x2)

	p.BeginPhase(cycle.DataHigh, 5)
	assert.Equal(t, byte(0x9), port.ReadNibble(p))
	p.BeginPhase(cycle.DataLow, 5)
	assert.Equal(t, byte(0xE), port.ReadNibble(p))

	want := []Read{
		{Kind: cycle.DataHigh, Phase: 5, Nibble: 0x9},
		{Kind: cycle.DataLow, Phase: 5, Nibble: 0xE},
	}
	assert.Equal(t, want, p.Reads())
}

func TestImageOtherChip(t *testing.T) {
	image := []byte{0xff}

	p := New(WithImage(1, image))
	drive(p, cycle.AddrLow, 0)
	drive(p, cycle.AddrHigh, 0)
	drive(p, cycle.ChipSelect, 3)

	p.BeginPhase(cycle.DataHigh, 5)
	assert.Equal(t, byte(0), port.ReadNibble(p))
}

func TestImageShort(t *testing.T) {
	p := New(WithImage(0, []byte{0x12}))
	drive(p, cycle.AddrLow, 1)
	drive(p, cycle.AddrHigh, 0)
	drive(p, cycle.ChipSelect, 0)

	p.BeginPhase(cycle.DataLow, 5)
	assert.Equal(t, byte(0), port.ReadNibble(p))
}

func TestFixedNibble(t *testing.T) {
	p := New(WithNibble(0x1A))
	assert.Equal(t, byte(0xA), port.ReadNibble(p))
}

func TestRecording(t *testing.T) {
	p := New()
	p.SetLine(port.Sync, true)
	assert.Empty(t, p.Events())
	assert.True(t, p.Level(port.Sync))

	p = New(WithRecording())
	p.SetLine(port.Clk1, true)
	assert.Equal(t, []Event{{Kind: cycle.Init, Phase: SetupPhase, Line: port.Clk1, High: true}}, p.Events())

	p.ClearLog()
	assert.Empty(t, p.Events())
	assert.NoError(t, p.Close())
}
