// Package inventory defines the device and group records read from the
// cloud management platform, and the hostname grouping used to find
// duplicate access points.
package inventory

import (
	"slices"
	"sort"
)

// AdminState is the administrative state of a device.
type AdminState string

// Admin states reported by the platform. Values not listed here are kept
// verbatim.
const (
	AdminStateManaged   AdminState = "MANAGED"
	AdminStateUnmanaged AdminState = "UNMANAGED"
	AdminStateNew       AdminState = "NEW"
)

// Device is one entry of the device inventory.
type Device struct {
	ID           int64      `json:"id"`
	Hostname     string     `json:"hostname"`
	Connected    bool       `json:"connected"`
	AdminState   AdminState `json:"device_admin_state"`
	SerialNumber string     `json:"serial_number,omitempty"`
	MACAddress   string     `json:"mac_address,omitempty"`
	ProductType  string     `json:"product_type,omitempty"`
}

// IsManaged reports whether the device is actively managed.
func (d Device) IsManaged() bool {
	return d.AdminState == AdminStateManaged
}

// IsQuarantineCandidate reports whether the device is offline and still
// managed. Only such devices are touched when they share a hostname.
func (d Device) IsQuarantineCandidate() bool {
	return !d.Connected && d.IsManaged()
}

// Group is a cloud config group (CCG). DeviceIDs has set semantics.
type Group struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	DeviceIDs   []int64 `json:"device_ids"`
}

// Contains reports whether id is a member of the group.
func (g *Group) Contains(id int64) bool {
	return slices.Contains(g.DeviceIDs, id)
}

// Clone returns a deep copy of the group.
func (g *Group) Clone() *Group {
	if g == nil {
		return nil
	}
	c := *g
	c.DeviceIDs = slices.Clone(g.DeviceIDs)
	return &c
}

// GroupSpec describes a group to create.
type GroupSpec struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DeviceIDs   []int64 `json:"device_ids"`
}

// Index maps device ids to devices.
type Index map[int64]Device

// NewIndex indexes a snapshot by device id.
func NewIndex(devices []Device) Index {
	idx := make(Index, len(devices))
	for _, d := range devices {
		idx[d.ID] = d
	}
	return idx
}

// Has reports whether the snapshot contains id.
func (idx Index) Has(id int64) bool {
	_, ok := idx[id]
	return ok
}

// Duplicate is a hostname shared by two or more devices.
type Duplicate struct {
	Hostname string   `json:"hostname"`
	Devices  []Device `json:"devices"`
}

// Candidates returns the members of the duplicate that are offline and
// managed, in snapshot order.
func (d Duplicate) Candidates() []Device {
	var out []Device
	for _, dev := range d.Devices {
		if dev.IsQuarantineCandidate() {
			out = append(out, dev)
		}
	}
	return out
}

// GroupByHostname buckets devices by hostname, preserving snapshot order
// within each bucket.
func GroupByHostname(devices []Device) map[string][]Device {
	byName := make(map[string][]Device)
	for _, d := range devices {
		byName[d.Hostname] = append(byName[d.Hostname], d)
	}
	return byName
}

// FindDuplicates returns every hostname that occurs at least twice, sorted
// by hostname.
func FindDuplicates(devices []Device) []Duplicate {
	byName := GroupByHostname(devices)

	dups := make([]Duplicate, 0)
	for name, members := range byName {
		if len(members) < 2 {
			continue
		}
		dups = append(dups, Duplicate{Hostname: name, Devices: members})
	}

	sort.Slice(dups, func(i, j int) bool {
		return dups[i].Hostname < dups[j].Hostname
	})
	return dups
}
