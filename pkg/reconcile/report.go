package reconcile

import "time"

// Report summarizes a run for display.
type Report struct {
	RunID       string      `json:"run_id" yaml:"run_id"`
	StartedAt   time.Time   `json:"started_at" yaml:"started_at"`
	DryRun      bool        `json:"dry_run" yaml:"dry_run"`
	Devices     int         `json:"devices" yaml:"devices"`
	Duplicates  int         `json:"duplicates" yaml:"duplicates"`
	Expired     []int64     `json:"expired" yaml:"expired"`
	Vanished    []int64     `json:"vanished" yaml:"vanished"`
	Quarantined []int64     `json:"quarantined" yaml:"quarantined"`
	Tracked     []int64     `json:"newly_tracked" yaml:"newly_tracked"`
	Untracked   []int64     `json:"untracked" yaml:"untracked"`
	Group       GroupAction `json:"group" yaml:"group"`
	StoreSaved  bool        `json:"store_saved" yaml:"store_saved"`
}

func newReport(runID string, p *Plan, dryRun bool) *Report {
	r := &Report{
		RunID:       runID,
		StartedAt:   p.Now,
		DryRun:      dryRun,
		Devices:     p.DeviceCount(),
		Duplicates:  len(p.Duplicates),
		Expired:     orEmpty(p.Expired),
		Vanished:    orEmpty(p.Vanished),
		Quarantined: orEmpty(p.Candidates),
		Tracked:     orEmpty(p.NewRecords.IDs()),
		Untracked:   orEmpty(p.Untracked),
		Group:       p.GroupAction,
	}
	return r
}

// Summary returns the report as ordered label/value rows.
func (r *Report) Summary() [][]string {
	storeSaved := "no"
	if r.StoreSaved {
		storeSaved = "yes"
	}
	return [][]string{
		{"run id", r.RunID},
		{"devices", itoa(r.Devices)},
		{"duplicate hostnames", itoa(r.Duplicates)},
		{"deleted (expired)", itoa(len(r.Expired))},
		{"dropped (vanished)", itoa(len(r.Vanished))},
		{"unmanaged", itoa(len(r.Quarantined))},
		{"newly tracked", itoa(len(r.Tracked))},
		{"untracked group members", itoa(len(r.Untracked))},
		{"group action", string(r.Group.Kind)},
		{"store saved", storeSaved},
	}
}

func orEmpty(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
