// Package state holds the process-lifetime runtime state shared by the
// background poller, the tray surface and the shutdown path.
//
// Runtime is safe for concurrent use and its zero value is ready to use.
// The poller is the only writer of the applied asset; any goroutine may
// request a stop. Snapshot returns a copy that callers may keep.
package state
