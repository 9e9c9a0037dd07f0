package reader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/read4001/internal/options"
	"github.com/retroenv/read4001/internal/scan"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func simOptions() options.Program {
	return options.Program{
		Parameters: options.Parameters{Backend: options.BackendSim},
		Flags:      options.Flags{ClockKHz: 740},
	}
}

func TestRunFixedNibble(t *testing.T) {
	opts := simOptions()
	opts.SimValue = 0xA

	var out bytes.Buffer
	err := Run(context.Background(), log.NewTestLogger(t), opts, &out)
	assert.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xAA}, scan.Size), out.Bytes())
}

func TestRunImageToFile(t *testing.T) {
	dir := t.TempDir()
	image := make([]byte, scan.Size)
	for i := range image {
		image[i] = byte(255 - i)
	}
	imageFile := filepath.Join(dir, "rom.bin")
	assert.NoError(t, os.WriteFile(imageFile, image, 0o600))

	opts := simOptions()
	opts.SimImage = imageFile
	opts.ChipSelect = 4
	opts.Interrupts = true
	opts.Output = filepath.Join(dir, "dump.bin")

	var out bytes.Buffer
	err := Run(context.Background(), log.NewTestLogger(t), opts, &out)
	assert.NoError(t, err)
	assert.Equal(t, 0, out.Len())

	dump, err := os.ReadFile(opts.Output)
	assert.NoError(t, err)
	assert.Equal(t, image, dump)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := Run(ctx, log.NewTestLogger(t), simOptions(), &out)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, out.Len())
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*options.Program)
	}{
		{name: "clock out of range", modify: func(o *options.Program) { o.ClockKHz = 100 }},
		{name: "unsupported backend", modify: func(o *options.Program) { o.Backend = "spi" }},
		{name: "missing sim image", modify: func(o *options.Program) { o.SimImage = filepath.Join(t.TempDir(), "missing.bin") }},
		{name: "unwritable output", modify: func(o *options.Program) { o.Output = filepath.Join(t.TempDir(), "missing", "dump.bin") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := simOptions()
			tt.modify(&opts)

			var out bytes.Buffer
			err := Run(context.Background(), log.NewTestLogger(t), opts, &out)
			assert.Error(t, err)
			assert.Equal(t, 0, out.Len())
		})
	}
}

func TestFormatMicroseconds(t *testing.T) {
	assert.Equal(t, "10.81", formatMicroseconds(10808, 1))
	assert.Equal(t, "11.00", formatMicroseconds(256*11000, 256))
}
