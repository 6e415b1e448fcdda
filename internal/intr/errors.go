package intr

import "errors"

var (
	// ErrNoController is returned by every façade operation before a
	// controller has been registered.
	ErrNoController = errors.New("intr: no controller registered")
	// ErrAlreadyRegistered is returned by a second call to Register.
	ErrAlreadyRegistered = errors.New("intr: controller already registered")
)
