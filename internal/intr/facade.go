// Package intr is the Interrupt Core: a generic interrupt-controller
// façade of five operations, plus the portable half of trap dispatch.
// The concrete controller — the PLIC driver in internal/plic — is bound
// in at boot via Register.
package intr

// Controller is the façade every interrupt-controller driver implements.
// At most one Controller is registered at a time.
type Controller interface {
	Enable(id uint32) error
	Disable(id uint32) error
	SetPriority(id uint32, priority uint32) error
	GetPriority(id uint32) (uint32, error)
	SetHandler(id uint32, handler func()) error
}

// Facade is the single registered-controller slot. It is embedded in the
// kernel's global Kernel value (see kernel/kernel.go) rather than kept as
// a package-level global, so tests can construct an independent Facade
// instead of sharing hidden global state.
type Facade struct {
	controller Controller
}

// Register installs c as the active controller. It fails if a controller
// is already registered.
func (f *Facade) Register(c Controller) error {
	if f.controller != nil {
		return ErrAlreadyRegistered
	}
	f.controller = c
	return nil
}

// Registered reports whether a controller has been registered.
func (f *Facade) Registered() bool { return f.controller != nil }

func (f *Facade) Enable(id uint32) error {
	if f.controller == nil {
		return ErrNoController
	}
	return f.controller.Enable(id)
}

func (f *Facade) Disable(id uint32) error {
	if f.controller == nil {
		return ErrNoController
	}
	return f.controller.Disable(id)
}

func (f *Facade) SetPriority(id uint32, priority uint32) error {
	if f.controller == nil {
		return ErrNoController
	}
	return f.controller.SetPriority(id, priority)
}

func (f *Facade) GetPriority(id uint32) (uint32, error) {
	if f.controller == nil {
		return 0, ErrNoController
	}
	return f.controller.GetPriority(id)
}

func (f *Facade) SetHandler(id uint32, handler func()) error {
	if f.controller == nil {
		return ErrNoController
	}
	return f.controller.SetHandler(id, handler)
}
