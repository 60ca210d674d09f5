package scan

import "github.com/google/uuid"

// Listener receives incremental scan events. Implementations are called
// synchronously from the scan goroutine and should return quickly.
//
// This replaces UI-framework signal coupling: the core emits discovery,
// progress, and completion events; the presentation layer subscribes.
type Listener interface {
	// OnScanStart is emitted once, before any file is processed.
	OnScanStart(id uuid.UUID, root, ecosystem string)

	// OnFile is emitted before each manifest or source file is processed.
	OnFile(path string)

	// OnDependency is emitted exactly once per newly accepted name.
	// Redundant discoveries of the same name do not re-notify.
	OnDependency(name string)

	// OnScanFinish is emitted once with the finalized result, for both
	// natural completion and cancellation.
	OnScanFinish(res *Result)

	// OnScanError is emitted for fatal scan errors (invalid root).
	OnScanError(err error)
}

// NoopListener discards all events. It is the default when no consumer
// is attached.
type NoopListener struct{}

func (NoopListener) OnScanStart(uuid.UUID, string, string) {}
func (NoopListener) OnFile(string)                         {}
func (NoopListener) OnDependency(string)                   {}
func (NoopListener) OnScanFinish(*Result)                  {}
func (NoopListener) OnScanError(error)                     {}

var _ Listener = NoopListener{}
