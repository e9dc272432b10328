package reconcile

import (
	"slices"

	"github.com/agentstation/dupap/pkg/inventory"
)

// GroupActionKind is the single remote mutation applied to the quarantine group.
type GroupActionKind string

// Group action kinds.
const (
	GroupNone   GroupActionKind = "none"
	GroupCreate GroupActionKind = "create"
	GroupUpdate GroupActionKind = "update"
	GroupDelete GroupActionKind = "delete"
)

// GroupAction describes what happens to the quarantine group in a run.
type GroupAction struct {
	Kind GroupActionKind `json:"kind" yaml:"kind"`

	// GroupID is the existing group, zero for a create.
	GroupID int64 `json:"group_id,omitempty" yaml:"group_id,omitempty"`

	// Members is the membership after the action.
	Members []int64 `json:"members,omitempty" yaml:"members,omitempty"`

	// AlreadyPresent lists candidates that were already members.
	AlreadyPresent []int64 `json:"already_present,omitempty" yaml:"already_present,omitempty"`
}

// planGroup compares the group after the expiry pass with the quarantine
// candidates and picks at most one mutation.
//
// group is nil when the group does not exist. pruned reports whether the
// expiry pass removed members from it.
func planGroup(group *inventory.Group, pruned bool, candidates []int64) GroupAction {
	if group == nil {
		if len(candidates) == 0 {
			return GroupAction{Kind: GroupNone}
		}
		return GroupAction{Kind: GroupCreate, Members: slices.Clone(candidates)}
	}

	if len(candidates) == 0 {
		switch {
		case len(group.DeviceIDs) == 0:
			return GroupAction{Kind: GroupDelete, GroupID: group.ID}
		case pruned:
			return GroupAction{Kind: GroupUpdate, GroupID: group.ID, Members: slices.Clone(group.DeviceIDs)}
		default:
			return GroupAction{Kind: GroupNone, GroupID: group.ID, Members: slices.Clone(group.DeviceIDs)}
		}
	}

	members := slices.Clone(group.DeviceIDs)
	var present []int64
	for _, id := range candidates {
		if group.Contains(id) {
			present = append(present, id)
			continue
		}
		members = append(members, id)
	}

	action := GroupAction{
		Kind:           GroupUpdate,
		GroupID:        group.ID,
		Members:        members,
		AlreadyPresent: present,
	}
	if len(present) == len(candidates) && !pruned {
		action.Kind = GroupNone
	}
	return action
}
