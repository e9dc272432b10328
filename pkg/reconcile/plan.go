// Package reconcile decides how duplicate-named access points are
// quarantined and retired, and applies those decisions against XIQ.
//
// A run has two halves. NewPlan is a pure function from an inventory
// snapshot, the quarantine group and the stored records to a Plan. The
// Engine gathers those inputs, executes the plan in a fixed order and
// persists the store once at the end.
package reconcile

import (
	"slices"
	"time"

	"github.com/agentstation/dupap/pkg/expiry"
	"github.com/agentstation/dupap/pkg/inventory"
)

// Input is everything a plan is computed from.
type Input struct {
	Devices []inventory.Device
	Group   *inventory.Group
	Records expiry.Records
	Now     time.Time
	Config  Config
}

// Plan is the full set of decisions for one run.
type Plan struct {
	Now time.Time

	// Expired are tracked devices past their grace period, still in the inventory.
	Expired []int64

	// Vanished are tracked devices no longer in the inventory.
	Vanished []int64

	// Duplicates are the hostnames shared by two or more devices.
	Duplicates []inventory.Duplicate

	// Candidates are the offline managed duplicates to unmanage.
	Candidates []int64

	// Group is the group state after expired members are removed, nil when absent.
	Group *inventory.Group

	// GroupAction is the single mutation applied to the group.
	GroupAction GroupAction

	// Untracked are group members that have no store record.
	Untracked []int64

	// NewRecords are the records started for candidates not tracked yet.
	NewRecords expiry.Records

	// Records is the store contents after the run.
	Records expiry.Records

	// Collapsed counts loaded records dropped because their device id was
	// already tracked by an earlier record.
	Collapsed int

	// StoreChanged reports whether Records differs from the loaded store.
	StoreChanged bool

	devices int
}

// DeviceCount returns the size of the snapshot the plan was built from.
func (p *Plan) DeviceCount() int {
	return p.devices
}

// Mutates reports whether applying the plan issues any remote write.
func (p *Plan) Mutates() bool {
	return len(p.Expired) > 0 || len(p.Candidates) > 0 || p.GroupAction.Kind != GroupNone
}

// NewPlan computes the decisions for one run. It performs no I/O.
//
// Expiry is judged against in.Now as given. New records start at in.Now
// truncated to whole seconds.
func NewPlan(in Input) *Plan {
	p := &Plan{Now: in.Now, devices: len(in.Devices)}
	idx := inventory.NewIndex(in.Devices)

	records := in.Records.Unique()
	p.Collapsed = len(in.Records) - len(records)

	// Expiry pass.
	kept := make(expiry.Records, 0, len(records))
	for _, r := range records {
		switch {
		case !idx.Has(r.DeviceID):
			p.Vanished = append(p.Vanished, r.DeviceID)
		case r.Expired(in.Now):
			p.Expired = append(p.Expired, r.DeviceID)
		default:
			kept = append(kept, r)
		}
	}

	pruned := false
	if in.Group != nil {
		p.Group = in.Group.Clone()
		if p.Group.DeviceIDs == nil {
			p.Group.DeviceIDs = []int64{}
		}
		before := len(p.Group.DeviceIDs)
		p.Group.DeviceIDs = slices.DeleteFunc(p.Group.DeviceIDs, func(id int64) bool {
			return slices.Contains(p.Expired, id)
		})
		pruned = len(p.Group.DeviceIDs) != before
	}

	// Duplicate detection. Devices being deleted this run are never quarantined again.
	p.Duplicates = inventory.FindDuplicates(in.Devices)
	for _, dup := range p.Duplicates {
		for _, d := range dup.Candidates() {
			if slices.Contains(p.Expired, d.ID) || slices.Contains(p.Candidates, d.ID) {
				continue
			}
			p.Candidates = append(p.Candidates, d.ID)
		}
	}

	p.GroupAction = planGroup(p.Group, pruned, p.Candidates)

	if len(p.Candidates) == 0 && p.Group != nil {
		for _, id := range p.Group.DeviceIDs {
			if !kept.Has(id) {
				p.Untracked = append(p.Untracked, id)
			}
		}
	}

	started := in.Now.Truncate(time.Second)
	for _, id := range p.Candidates {
		if !kept.Has(id) {
			p.NewRecords = append(p.NewRecords, expiry.NewRecord(id, started, in.Config.GracePeriod))
		}
	}

	p.Records = append(kept, p.NewRecords...)
	p.StoreChanged = p.Collapsed > 0 || len(p.Expired) > 0 || len(p.Vanished) > 0 || len(p.NewRecords) > 0
	return p
}
