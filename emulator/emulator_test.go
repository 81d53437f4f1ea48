package emulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trincot/lmc/cpu"
)

func TestNewEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.NotNil(emu.Cpu)
	assert.Equal(cpu.STATE_EMPTY, emu.Cpu.State)
	assert.Same(&emu.Queue, emu.Cpu.In)
	assert.Same(&emu.Buffer, emu.Cpu.Out)
	assert.Nil(emu.Program)
}

func TestEmulatorAddTwo(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"\tINP",
		"\tSTA first",
		"\tINP",
		"\tADD first",
		"\tOUT",
		"\tHLT",
		"first\tDAT",
	}

	emu := NewEmulator()
	require.NoError(t, emu.Load(strings.Join(program, "\n")))

	emu.Queue.Push(19, 23)

	steps, err := emu.Run(0)
	assert.NoError(err)
	assert.Equal(6, steps)
	assert.Equal(cpu.STATE_HALTED, emu.Cpu.State)
	assert.Equal([]int{42}, emu.Buffer.Values)
}

func TestEmulatorCountdown(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"\tLDA three",
		"loop\tOUT",
		"\tSUB one",
		"\tBRZ done",
		"\tBRA loop",
		"done\tHLT",
		"three\tDAT 3",
		"one\tDAT 1",
	}

	emu := NewEmulator()
	require.NoError(t, emu.Load(strings.Join(program, "\n")))

	_, err := emu.Run(0)
	assert.NoError(err)
	assert.Equal([]int{3, 2, 1}, emu.Buffer.Values)
}

func TestEmulatorOtc(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"\tLDA h",
		"\tOTC",
		"\tLDA i",
		"\tOTC",
		"\tHLT",
		"h\tDAT 72",
		"i\tDAT 105",
	}

	emu := NewEmulator()
	require.NoError(t, emu.Load(strings.Join(program, "\n")))

	_, err := emu.Run(0)
	assert.NoError(err)
	assert.Equal("Hi", emu.Buffer.Text())
}

func TestEmulatorStallResume(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	require.NoError(t, emu.Load("INP\nOUT\nHLT\n"))

	steps, err := emu.Run(0)
	assert.NoError(err)
	assert.Equal(1, steps)
	assert.Equal(cpu.STATE_STALLED, emu.Cpu.State)

	emu.Queue.Push(5)

	_, err = emu.Run(0)
	assert.NoError(err)
	assert.Equal(cpu.STATE_HALTED, emu.Cpu.State)
	assert.Equal([]int{5}, emu.Buffer.Values)
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	require.NoError(t, emu.Load("450\nHLT\n"))

	_, err := emu.Run(0)
	assert.Error(err)
	assert.ErrorIs(err, cpu.ErrCode(450))

	var re *ErrRuntime
	assert.True(errors.As(err, &re))
	if re != nil {
		assert.Equal(1, re.LineNo)
	}
}

func TestEmulatorLoadError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	err := emu.Load("FOO\nBAR baz\n")
	assert.Error(err)

	var se *cpu.ErrSyntax
	assert.True(errors.As(err, &se))
	if se != nil {
		assert.Equal(2, se.LineNo)
	}

	// Nothing is loaded; the listing echoes the raw source.
	assert.Nil(emu.Program)
	assert.Equal(cpu.STATE_EMPTY, emu.Cpu.State)
	assert.Equal([]string{"FOO", "BAR baz", ""}, emu.Listing())
}

func TestEmulatorListing(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	require.NoError(t, emu.Load("INP\nSTA count\nHLT\ncount DAT\n"))

	assert.Equal([]string{
		"\tINP",
		"\tSTA count",
		"\tHLT",
		"count\tDAT 0",
	}, emu.Listing())
}

func TestEmulatorDump(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	require.NoError(t, emu.Load("INP\nHLT\n"))

	lines := emu.Dump()
	assert.Len(lines, 100)
	assert.Equal("00: 901\tINP", lines[0])
}

func TestEmulatorLoadRewinds(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	require.NoError(t, emu.Load("INP\nOUT\nHLT\n"))

	emu.Queue.Push(5)
	_, err := emu.Run(0)
	assert.NoError(err)
	assert.Equal([]int{5}, emu.Buffer.Values)

	// Reloading rewinds both ports: output is discarded, input replays.
	require.NoError(t, emu.Load("INP\nOUT\nHLT\n"))
	assert.Empty(emu.Buffer.Values)

	_, err = emu.Run(0)
	assert.NoError(err)
	assert.Equal([]int{5}, emu.Buffer.Values)
}

func TestEmulatorLineNo(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	require.NoError(t, emu.Load("; header\nINP\n\nHLT\n"))

	assert.Equal(2, emu.LineNo())

	emu.Queue.Push(1)
	done, err := emu.Step()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(4, emu.LineNo())
}
