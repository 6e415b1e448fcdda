package plic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rvkernel/internal/plic"
	"rvkernel/internal/plic/plictest"
)

func TestEnableSetsBitAtCorrectedOffset(t *testing.T) {
	regs := plictest.NewRegisters()
	d := plic.New(regs, 64)

	require.NoError(t, d.Enable(3))
	require.Equal(t, uint32(1<<3), regs.Raw()[0x2000])

	require.NoError(t, d.Enable(35))
	require.Equal(t, uint32(1<<3), regs.Raw()[0x2004])

	require.NotContains(t, regs.Raw(), uintptr(0x1000))
}

func TestDisableClearsBit(t *testing.T) {
	regs := plictest.NewRegisters()
	d := plic.New(regs, 64)

	require.NoError(t, d.Enable(3))
	require.NoError(t, d.Enable(4))
	require.NoError(t, d.Disable(3))
	require.Equal(t, uint32(1<<4), regs.Raw()[0x2000])
}

func TestSetAndGetPriorityRoundtrips(t *testing.T) {
	regs := plictest.NewRegisters()
	d := plic.New(regs, 8)

	require.NoError(t, d.SetPriority(5, 3))
	p, err := d.GetPriority(5)
	require.NoError(t, err)
	require.Equal(t, uint32(3), p)
}

func TestSetPriorityRejectsAboveMax(t *testing.T) {
	regs := plictest.NewRegisters()
	d := plic.New(regs, 8)

	require.ErrorIs(t, d.SetPriority(5, 99), plic.ErrInvalidPriority)
}

func TestIDValidationRejectsZeroAndOutOfRange(t *testing.T) {
	regs := plictest.NewRegisters()
	d := plic.New(regs, 4)

	require.ErrorIs(t, d.Enable(0), plic.ErrInvalidID)
	require.ErrorIs(t, d.Enable(5), plic.ErrInvalidID)
	require.NoError(t, d.Enable(4))
}

func TestClaimReturnsZeroWhenNothingPending(t *testing.T) {
	regs := plictest.NewRegisters()
	d := plic.New(regs, 8)

	require.Zero(t, d.Claim())
}

func TestClaimDispatchCompleteRoundtrip(t *testing.T) {
	regs := plictest.NewRegisters()
	d := plic.New(regs, 8)

	fired := false
	require.NoError(t, d.SetHandler(6, func() { fired = true }))

	regs.Raw()[0x200004] = 6 // simulate the controller offering source 6

	id := d.Claim()
	require.Equal(t, uint32(6), id)

	d.Dispatch(id)
	require.True(t, fired)

	d.Complete(id)
	require.Equal(t, uint32(6), regs.Raw()[0x200004])
}

func TestSetThresholdRoundtrips(t *testing.T) {
	regs := plictest.NewRegisters()
	d := plic.New(regs, 8)

	require.NoError(t, d.SetThreshold(4))
	require.Equal(t, uint32(4), regs.Raw()[0x200000])
}

func TestSetThresholdRejectsAboveMax(t *testing.T) {
	regs := plictest.NewRegisters()
	d := plic.New(regs, 8)

	require.ErrorIs(t, d.SetThreshold(99), plic.ErrInvalidThreshold)
}
