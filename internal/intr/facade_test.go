package intr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rvkernel/internal/intr"
)

type fakeController struct {
	enabled    map[uint32]bool
	priorities map[uint32]uint32
	handlers   map[uint32]func()
}

func newFakeController() *fakeController {
	return &fakeController{
		enabled:    make(map[uint32]bool),
		priorities: make(map[uint32]uint32),
		handlers:   make(map[uint32]func()),
	}
}

func (f *fakeController) Enable(id uint32) error  { f.enabled[id] = true; return nil }
func (f *fakeController) Disable(id uint32) error { f.enabled[id] = false; return nil }
func (f *fakeController) SetPriority(id, priority uint32) error {
	f.priorities[id] = priority
	return nil
}
func (f *fakeController) GetPriority(id uint32) (uint32, error) { return f.priorities[id], nil }
func (f *fakeController) SetHandler(id uint32, handler func()) error {
	f.handlers[id] = handler
	return nil
}

func TestFacadeOpsFailBeforeRegistration(t *testing.T) {
	var f intr.Facade

	require.ErrorIs(t, f.Enable(1), intr.ErrNoController)
	require.ErrorIs(t, f.Disable(1), intr.ErrNoController)
	require.ErrorIs(t, f.SetPriority(1, 5), intr.ErrNoController)
	_, err := f.GetPriority(1)
	require.ErrorIs(t, err, intr.ErrNoController)
	require.ErrorIs(t, f.SetHandler(1, func() {}), intr.ErrNoController)
	require.False(t, f.Registered())
}

func TestFacadeSecondRegisterFails(t *testing.T) {
	var f intr.Facade
	require.NoError(t, f.Register(newFakeController()))
	require.True(t, f.Registered())

	err := f.Register(newFakeController())
	require.ErrorIs(t, err, intr.ErrAlreadyRegistered)
}

func TestFacadeDelegatesAfterRegistration(t *testing.T) {
	var f intr.Facade
	c := newFakeController()
	require.NoError(t, f.Register(c))

	require.NoError(t, f.Enable(7))
	require.True(t, c.enabled[7])

	require.NoError(t, f.SetPriority(7, 3))
	p, err := f.GetPriority(7)
	require.NoError(t, err)
	require.Equal(t, uint32(3), p)

	called := false
	require.NoError(t, f.SetHandler(7, func() { called = true }))
	c.handlers[7]()
	require.True(t, called)

	require.NoError(t, f.Disable(7))
	require.False(t, c.enabled[7])
}
