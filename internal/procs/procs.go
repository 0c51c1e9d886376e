// Package procs tracks spawned detached processes and reaps them without
// blocking the main loop.
package procs

// Handle is a spawned external process plus its originating command
// description. Exit status must be pollable without blocking.
type Handle interface {
	Pid() int
	Describe() string
	// TryWait reports whether the process has exited and, if so, the exit
	// error (nil on success). It never blocks.
	TryWait() (done bool, err error)
}

// Completion is one reaped process.
type Completion struct {
	Pid  int
	Desc string
	Err  error
}

// Registry owns tracked handles until they are reaped. Not safe for
// concurrent use; the update engine is its only caller.
type Registry struct {
	handles []Handle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Track takes ownership of a handle until Sweep reaps it.
func (r *Registry) Track(h Handle) {
	r.handles = append(r.handles, h)
}

// Len reports how many handles are still tracked.
func (r *Registry) Len() int {
	return len(r.handles)
}

// Sweep polls every tracked handle once. Completed handles are removed and
// returned; incomplete handles stay tracked for the next sweep.
func (r *Registry) Sweep() []Completion {
	var done []Completion
	keep := r.handles[:0]
	for _, h := range r.handles {
		if exited, err := h.TryWait(); exited {
			done = append(done, Completion{Pid: h.Pid(), Desc: h.Describe(), Err: err})
		} else {
			keep = append(keep, h)
		}
	}
	r.handles = keep
	return done
}
