package tray

import "context"

const (
	Title   = "Time-Based Background"
	Tooltip = "Time-Based Background Changer"
)

// Actions are invoked from the tray menu.
type Actions struct {
	Reconfigure func()
}

// Stopper is the part of the runtime state the tray waits on.
type Stopper interface {
	Done() <-chan struct{}
	RequestStop()
}

// Run blocks until ctx is cancelled, a stop is requested or Exit is chosen.
func Run(ctx context.Context, stop Stopper, actions Actions) {
	run(ctx, stop, actions)
}
