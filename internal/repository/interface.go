// File: internal/repository/interface.go
package repository

import (
	"context"
)

// SnapshotRepository persists client state between runs.
type SnapshotRepository interface {
	Save(ctx context.Context, s *Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
}
