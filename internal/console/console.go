// Package console implements the kernel console's backend registry:
// backends register with add_backend({name, priority, write_bytes}), and
// the highest-priority backend drains each write. The concrete UART
// backend lives in kernel/, wired in over a uart_putc extern; this
// package only owns the registry and selection policy.
package console

// Backend is one sink a write can be drained to: a serial UART, an early
// boot log ring, a future virtio-console device.
type Backend struct {
	Name       string
	Priority   int
	WriteBytes func(p []byte)
}

// Registry holds every registered backend and selects the highest-priority
// one to drain each write.
type Registry struct {
	backends []Backend
}

// AddBackend registers b. Backends are re-sorted by descending priority so
// Write always drains to the current highest.
func (r *Registry) AddBackend(b Backend) {
	r.backends = append(r.backends, b)
	for i := len(r.backends) - 1; i > 0 && r.backends[i].Priority > r.backends[i-1].Priority; i-- {
		r.backends[i], r.backends[i-1] = r.backends[i-1], r.backends[i]
	}
}

// Write drains p to the highest-priority registered backend. It is a
// no-op if no backend has been registered yet, which happens for the
// small window between boot and UART init.
func (r *Registry) Write(p []byte) {
	if len(r.backends) == 0 {
		return
	}
	r.backends[0].WriteBytes(p)
}

// Backends returns the registered backends, highest priority first, for
// tests and diagnostics.
func (r *Registry) Backends() []Backend {
	out := make([]Backend, len(r.backends))
	copy(out, r.backends)
	return out
}
