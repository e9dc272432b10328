package reconcile_test

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/agentstation/dupap/pkg/errors"
	"github.com/agentstation/dupap/pkg/inventory"
	"github.com/agentstation/dupap/pkg/reconcile"
)

// fakeXIQ is an in-memory XIQ that applies mutations to its own state.
type fakeXIQ struct {
	devices []inventory.Device
	groups  []*inventory.Group
	nextID  int64

	calls  []string
	failOn string
}

func newFakeXIQ(devices ...inventory.Device) *fakeXIQ {
	return &fakeXIQ{devices: devices, nextID: 500}
}

func (f *fakeXIQ) withGroup(id int64, name string, members ...int64) *fakeXIQ {
	f.groups = append(f.groups, &inventory.Group{ID: id, Name: name, DeviceIDs: append([]int64{}, members...)})
	return f
}

func (f *fakeXIQ) call(name string, args ...any) error {
	f.calls = append(f.calls, strings.TrimSpace(fmt.Sprintln(append([]any{name}, args...)...)))
	if f.failOn == name {
		return errors.NewAPIError("xiq", name, 500, "injected failure")
	}
	return nil
}

// mutations returns every recorded call that changes remote state.
func (f *fakeXIQ) mutations() []string {
	var out []string
	for _, c := range f.calls {
		if !startsWithAny(c, "ListDevices", "FindGroupByName") {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeXIQ) group(name string) *inventory.Group {
	for _, g := range f.groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (f *fakeXIQ) device(id int64) (inventory.Device, bool) {
	for _, d := range f.devices {
		if d.ID == id {
			return d, true
		}
	}
	return inventory.Device{}, false
}

func (f *fakeXIQ) ListDevices(context.Context) ([]inventory.Device, error) {
	if err := f.call("ListDevices"); err != nil {
		return nil, err
	}
	return slices.Clone(f.devices), nil
}

func (f *fakeXIQ) FindGroupByName(_ context.Context, name string) (*inventory.Group, bool, error) {
	if err := f.call("FindGroupByName"); err != nil {
		return nil, false, err
	}
	if g := f.group(name); g != nil {
		return g.Clone(), true, nil
	}
	return nil, false, nil
}

func (f *fakeXIQ) UnmanageDevices(_ context.Context, ids []int64) error {
	if err := f.call("UnmanageDevices", ids); err != nil {
		return err
	}
	for i := range f.devices {
		if slices.Contains(ids, f.devices[i].ID) {
			f.devices[i].AdminState = inventory.AdminStateUnmanaged
		}
	}
	return nil
}

func (f *fakeXIQ) DeleteDevices(_ context.Context, ids []int64) error {
	if err := f.call("DeleteDevices", ids); err != nil {
		return err
	}
	f.devices = slices.DeleteFunc(f.devices, func(d inventory.Device) bool {
		return slices.Contains(ids, d.ID)
	})
	return nil
}

func (f *fakeXIQ) CreateGroup(_ context.Context, spec inventory.GroupSpec) (int64, error) {
	if err := f.call("CreateGroup", spec.DeviceIDs); err != nil {
		return 0, err
	}
	f.nextID++
	f.groups = append(f.groups, &inventory.Group{
		ID:          f.nextID,
		Name:        spec.Name,
		Description: spec.Description,
		DeviceIDs:   slices.Clone(spec.DeviceIDs),
	})
	return f.nextID, nil
}

func (f *fakeXIQ) UpdateGroup(_ context.Context, group inventory.Group) error {
	if err := f.call("UpdateGroup", group.ID, group.DeviceIDs); err != nil {
		return err
	}
	for _, g := range f.groups {
		if g.ID == group.ID {
			g.DeviceIDs = slices.Clone(group.DeviceIDs)
			return nil
		}
	}
	return errors.NewAPIError("xiq", "UpdateGroup", 404, "no such group")
}

func (f *fakeXIQ) DeleteGroup(_ context.Context, id int64) error {
	if err := f.call("DeleteGroup", id); err != nil {
		return err
	}
	f.groups = slices.DeleteFunc(f.groups, func(g *inventory.Group) bool { return g.ID == id })
	return nil
}

var _ reconcile.Remote = (*fakeXIQ)(nil)

// fixedClock is a Clock whose time only moves when told to.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func startsWithAny(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func offline(id int64, hostname string) inventory.Device {
	return inventory.Device{ID: id, Hostname: hostname, Connected: false, AdminState: inventory.AdminStateManaged}
}

func online(id int64, hostname string) inventory.Device {
	return inventory.Device{ID: id, Hostname: hostname, Connected: true, AdminState: inventory.AdminStateManaged}
}

func unmanaged(id int64, hostname string) inventory.Device {
	return inventory.Device{ID: id, Hostname: hostname, Connected: false, AdminState: inventory.AdminStateUnmanaged}
}
