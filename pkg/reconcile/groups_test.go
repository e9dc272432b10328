package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/dupap/pkg/inventory"
)

func TestPlanGroup(t *testing.T) {
	group := func(ids ...int64) *inventory.Group {
		return &inventory.Group{ID: 50, Name: "MarkedAsReplaced", DeviceIDs: ids}
	}

	tests := []struct {
		name       string
		group      *inventory.Group
		pruned     bool
		candidates []int64
		want       GroupAction
	}{
		{
			name: "absent group, no candidates",
			want: GroupAction{Kind: GroupNone},
		},
		{
			name:       "absent group, candidates",
			candidates: []int64{1, 2},
			want:       GroupAction{Kind: GroupCreate, Members: []int64{1, 2}},
		},
		{
			name:  "empty group, no candidates",
			group: group(),
			want:  GroupAction{Kind: GroupDelete, GroupID: 50},
		},
		{
			name:   "group emptied by expiry",
			group:  group(),
			pruned: true,
			want:   GroupAction{Kind: GroupDelete, GroupID: 50},
		},
		{
			name:   "group pruned by expiry, members left",
			group:  group(4),
			pruned: true,
			want:   GroupAction{Kind: GroupUpdate, GroupID: 50, Members: []int64{4}},
		},
		{
			name:  "non-empty group, nothing to do",
			group: group(4),
			want:  GroupAction{Kind: GroupNone, GroupID: 50, Members: []int64{4}},
		},
		{
			name:       "existing group gains candidates",
			group:      group(4),
			candidates: []int64{4, 5},
			want:       GroupAction{Kind: GroupUpdate, GroupID: 50, Members: []int64{4, 5}, AlreadyPresent: []int64{4}},
		},
		{
			name:       "every candidate already present",
			group:      group(4, 5),
			candidates: []int64{5},
			want:       GroupAction{Kind: GroupNone, GroupID: 50, Members: []int64{4, 5}, AlreadyPresent: []int64{5}},
		},
		{
			name:       "candidates present but group pruned",
			group:      group(5),
			pruned:     true,
			candidates: []int64{5},
			want:       GroupAction{Kind: GroupUpdate, GroupID: 50, Members: []int64{5}, AlreadyPresent: []int64{5}},
		},
		{
			name:       "empty group gains candidates",
			group:      group(),
			candidates: []int64{7},
			want:       GroupAction{Kind: GroupUpdate, GroupID: 50, Members: []int64{7}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := planGroup(tt.group, tt.pruned, tt.candidates)
			assert.Equal(t, tt.want, got)
		})
	}
}
