package i

import "github.com/beka-birhanu/mazesolver/domain"

// SnapshotEncoder converts solution snapshots to and from bytes.
type SnapshotEncoder interface {
	MarshalSnapshot(*domain.Snapshot) ([]byte, error)
	UnmarshalSnapshot([]byte) (*domain.Snapshot, error)
}
