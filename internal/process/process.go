// Package process acquires flat snapshots of operating-system processes.
package process

import (
	"context"
)

// Record is one process as reported by a snapshot source.
// ParentPID may name a process that is not part of the same snapshot.
type Record struct {
	PID       int32  `json:"pid"`
	ParentPID int32  `json:"ppid"`
	Owner     string `json:"owner"`
	Cmdline   string `json:"cmdline"`
}

// Snapshot is a single, immutable reading of the process table together with
// the identity of the user that took it.
type Snapshot struct {
	CurrentUser string   `json:"current_user"`
	Records     []Record `json:"records"`
}

// Source produces snapshots. Implementations must fail as a whole when the
// process table cannot be enumerated at all; unreadable individual processes
// are skipped.
type Source interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(ctx context.Context) (*Snapshot, error)

// Snapshot calls f(ctx).
func (f SourceFunc) Snapshot(ctx context.Context) (*Snapshot, error) {
	return f(ctx)
}
