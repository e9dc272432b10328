package reconcile

//go:generate mockgen -destination=mock_remote.go -package=reconcile github.com/agentstation/dupap/pkg/reconcile Remote,Clock

import (
	"context"
	"time"

	"github.com/agentstation/dupap/pkg/inventory"
)

// Remote is the subset of the XIQ API the engine drives.
type Remote interface {
	// ListDevices returns the complete device inventory.
	ListDevices(ctx context.Context) ([]inventory.Device, error)

	// FindGroupByName returns the first group with the given name.
	FindGroupByName(ctx context.Context, name string) (*inventory.Group, bool, error)

	UnmanageDevices(ctx context.Context, ids []int64) error
	DeleteDevices(ctx context.Context, ids []int64) error

	CreateGroup(ctx context.Context, spec inventory.GroupSpec) (int64, error)
	UpdateGroup(ctx context.Context, group inventory.Group) error
	DeleteGroup(ctx context.Context, id int64) error
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}
