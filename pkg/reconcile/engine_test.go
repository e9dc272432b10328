package reconcile_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dupap/pkg/errors"
	"github.com/agentstation/dupap/pkg/expiry"
	"github.com/agentstation/dupap/pkg/logging"
	"github.com/agentstation/dupap/pkg/reconcile"
)

const groupName = "MarkedAsReplaced"

type harness struct {
	remote *fakeXIQ
	store  *expiry.MemoryStore
	clock  *fixedClock
	logs   *logging.TestLogger
	engine *reconcile.Engine
}

func newHarness(t *testing.T, remote *fakeXIQ, records ...expiry.Record) *harness {
	t.Helper()
	h := &harness{
		remote: remote,
		store:  &expiry.MemoryStore{Records: records},
		clock:  &fixedClock{now: planNow},
		logs:   logging.NewTestLogger(t),
	}
	engine, err := reconcile.NewEngine(h.remote, h.store, reconcile.DefaultConfig(),
		reconcile.WithClock(h.clock),
		reconcile.WithLogger(h.logs.Logger),
	)
	require.NoError(t, err)
	h.engine = engine
	return h
}

func TestNewEngineValidation(t *testing.T) {
	_, err := reconcile.NewEngine(nil, &expiry.MemoryStore{}, reconcile.DefaultConfig())
	assert.True(t, errors.IsValidationError(err))

	_, err = reconcile.NewEngine(newFakeXIQ(), nil, reconcile.DefaultConfig())
	assert.True(t, errors.IsValidationError(err))

	_, err = reconcile.NewEngine(newFakeXIQ(), &expiry.MemoryStore{}, reconcile.Config{GracePeriod: -time.Hour})
	assert.True(t, errors.IsValidationError(err))

	e, err := reconcile.NewEngine(newFakeXIQ(), &expiry.MemoryStore{}, reconcile.Config{})
	require.NoError(t, err)
	assert.NotNil(t, e)
}

func TestRunQuarantinesNewDuplicate(t *testing.T) {
	h := newHarness(t, newFakeXIQ(offline(1, "X"), online(2, "X")))

	report, err := h.engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"UnmanageDevices [1]", "CreateGroup [1]"}, h.remote.mutations())

	g := h.remote.group(groupName)
	require.NotNil(t, g)
	assert.Equal(t, []int64{1}, g.DeviceIDs)
	assert.Equal(t, "CCG for Unmanaged Duplicate APs", g.Description)

	require.Len(t, h.store.Records, 1)
	assert.Equal(t, int64(1), h.store.Records[0].DeviceID)
	assert.True(t, h.store.Records[0].ExpireAt.Equal(planNow.Add(30*24*time.Hour)))
	assert.Equal(t, 1, h.store.Saves)

	assert.Equal(t, []int64{1}, report.Quarantined)
	assert.Equal(t, reconcile.GroupCreate, report.Group.Kind)
	assert.Equal(t, g.ID, report.Group.GroupID)
	assert.True(t, report.StoreSaved)
	assert.NotEmpty(t, report.RunID)
	h.logs.AssertContains(t, "Quarantining offline duplicate")
}

func TestRunIsIdempotent(t *testing.T) {
	h := newHarness(t, newFakeXIQ(offline(1, "X"), online(2, "X"), offline(3, "Y"), online(4, "Y")))

	_, err := h.engine.Run(context.Background())
	require.NoError(t, err)
	first := len(h.remote.mutations())
	records := len(h.store.Records)

	report, err := h.engine.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, h.remote.mutations(), first, "second run must not mutate remote state")
	assert.Len(t, h.store.Records, records)
	assert.Equal(t, 1, h.store.Saves)
	assert.False(t, report.StoreSaved)
	assert.Equal(t, reconcile.GroupNone, report.Group.Kind)
}

func TestRunDeletesExpiredDevice(t *testing.T) {
	rec := expiry.Record{
		DeviceID: 3,
		AddedAt:  expiry.At(planNow.Add(-30 * 24 * time.Hour)),
		ExpireAt: expiry.At(planNow.Add(-time.Second)),
	}
	remote := newFakeXIQ(online(3, "C"), unmanaged(4, "D"), online(5, "D")).withGroup(50, groupName, 3, 4)
	h := newHarness(t, remote, rec, expiry.NewRecord(4, planNow, time.Hour))

	report, err := h.engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"DeleteDevices [3]", "UpdateGroup 50 [4]"}, h.remote.mutations())
	_, present := h.remote.device(3)
	assert.False(t, present)
	assert.Equal(t, []int64{4}, h.remote.group(groupName).DeviceIDs)
	assert.Equal(t, []int64{4}, h.store.Records.IDs())
	assert.Equal(t, []int64{3}, report.Expired)
}

func TestRunExpiryRetiresGroup(t *testing.T) {
	rec := expiry.Record{DeviceID: 3, AddedAt: expiry.At(planNow.Add(-31 * 24 * time.Hour)), ExpireAt: expiry.At(planNow.Add(-time.Hour))}
	h := newHarness(t, newFakeXIQ(unmanaged(3, "C")).withGroup(50, groupName, 3), rec)

	_, err := h.engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"DeleteDevices [3]", "DeleteGroup 50"}, h.remote.mutations())
	assert.Nil(t, h.remote.group(groupName))
	assert.Empty(t, h.store.Records)
}

func TestRunNoDuplicatesDeletesEmptyGroup(t *testing.T) {
	h := newHarness(t, newFakeXIQ(online(1, "A"), online(2, "B")).withGroup(50, groupName))

	report, err := h.engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"DeleteGroup 50"}, h.remote.mutations())
	assert.Zero(t, h.store.Saves, "store must stay unchanged")
	assert.False(t, report.StoreSaved)
	h.logs.AssertContains(t, "No duplicate hostnames found")
}

func TestRunVanishedRecordCleanup(t *testing.T) {
	gone := expiry.Record{DeviceID: 77, AddedAt: expiry.At(planNow.Add(-40 * 24 * time.Hour)), ExpireAt: expiry.At(planNow.Add(-10 * 24 * time.Hour))}
	h := newHarness(t, newFakeXIQ(online(1, "A")), gone)

	report, err := h.engine.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, h.remote.mutations(), "no delete call for a vanished device")
	assert.Empty(t, h.store.Records)
	assert.Equal(t, 1, h.store.Saves)
	assert.Equal(t, []int64{77}, report.Vanished)
}

func TestRunWarnsAboutUntrackedMembers(t *testing.T) {
	h := newHarness(t, newFakeXIQ(unmanaged(8, "A"), unmanaged(9, "B")).withGroup(50, groupName, 8, 9),
		expiry.NewRecord(8, planNow, time.Hour))

	report, err := h.engine.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, h.remote.mutations())
	assert.Equal(t, []int64{9}, report.Untracked)

	warnings := h.logs.EntriesAt(zerolog.WarnLevel)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Cloud config group holds devices that are not tracked in the store", warnings[0]["message"])
}

func TestRunMergesIntoExistingGroup(t *testing.T) {
	remote := newFakeXIQ(offline(1, "X"), online(2, "X"), unmanaged(8, "Z")).withGroup(50, groupName, 8)
	h := newHarness(t, remote, expiry.NewRecord(8, planNow.Add(-time.Hour), 30*24*time.Hour))

	_, err := h.engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"UnmanageDevices [1]", "UpdateGroup 50 [8 1]"}, h.remote.mutations())
	assert.Equal(t, []int64{8, 1}, h.store.Records.IDs())
}

func TestRunFullLifecycle(t *testing.T) {
	h := newHarness(t, newFakeXIQ(offline(1, "X"), online(2, "X")))
	ctx := context.Background()

	_, err := h.engine.Run(ctx)
	require.NoError(t, err)
	require.NotNil(t, h.remote.group(groupName))

	h.clock.advance(29 * 24 * time.Hour)
	_, err = h.engine.Run(ctx)
	require.NoError(t, err)
	_, present := h.remote.device(1)
	assert.True(t, present, "device kept during the grace period")

	h.clock.advance(24 * time.Hour)
	report, err := h.engine.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, report.Expired)
	assert.Equal(t, reconcile.GroupDelete, report.Group.Kind)

	_, present = h.remote.device(1)
	assert.False(t, present)
	assert.Nil(t, h.remote.group(groupName))
	assert.Empty(t, h.store.Records)
}

func TestRunAbortsOnRemoteFailure(t *testing.T) {
	tests := []struct {
		name      string
		failOn    string
		mutations []string
	}{
		{name: "delete", failOn: "DeleteDevices", mutations: []string{"DeleteDevices [3]"}},
		{name: "unmanage", failOn: "UnmanageDevices", mutations: []string{"DeleteDevices [3]", "UnmanageDevices [1]"}},
		{name: "group", failOn: "UpdateGroup", mutations: []string{"DeleteDevices [3]", "UnmanageDevices [1]", "UpdateGroup 50 [1]"}},
		{name: "inventory", failOn: "ListDevices"},
		{name: "group lookup", failOn: "FindGroupByName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := expiry.Record{DeviceID: 3, AddedAt: expiry.At(planNow.Add(-31 * 24 * time.Hour)), ExpireAt: expiry.At(planNow.Add(-time.Hour))}
			remote := newFakeXIQ(offline(1, "X"), online(2, "X"), unmanaged(3, "C")).withGroup(50, groupName, 3)
			remote.failOn = tt.failOn
			h := newHarness(t, remote, rec)

			_, err := h.engine.Run(context.Background())
			require.Error(t, err)
			assert.True(t, errors.IsRemoteCall(err))
			assert.Equal(t, tt.mutations, h.remote.mutations())
			assert.Zero(t, h.store.Saves, "nothing persisted after a failure")
			assert.Equal(t, []int64{3}, h.store.Records.IDs())
		})
	}
}

func TestPreviewDoesNotMutate(t *testing.T) {
	h := newHarness(t, newFakeXIQ(offline(1, "X"), online(2, "X")).withGroup(50, groupName))

	plan, report, err := h.engine.Preview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, plan.Candidates)
	assert.Equal(t, reconcile.GroupUpdate, plan.GroupAction.Kind)
	assert.True(t, report.DryRun)
	assert.False(t, report.StoreSaved)
	assert.Empty(t, h.remote.mutations())
	assert.Zero(t, h.store.Saves)
}

func TestRunUsesContextRunID(t *testing.T) {
	h := newHarness(t, newFakeXIQ())
	ctx := logging.WithRunID(logging.WithLogger(context.Background(), h.logs.Logger), "run-123")

	report, err := h.engine.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-123", report.RunID)

	for _, entry := range h.logs.Entries() {
		assert.Equal(t, "run-123", entry["run_id"])
	}
}

func TestRunLogsOnlyPlannedCandidates(t *testing.T) {
	rec := expiry.Record{DeviceID: 1, AddedAt: expiry.At(planNow.Add(-31 * 24 * time.Hour)), ExpireAt: expiry.At(planNow.Add(-time.Hour))}
	h := newHarness(t, newFakeXIQ(offline(1, "X"), online(2, "X")), rec)

	_, err := h.engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"DeleteDevices [1]"}, h.remote.mutations())
	h.logs.AssertNotContains(t, "Quarantining offline duplicate")
	h.logs.AssertContains(t, "No managed offline duplicates to quarantine")
}

func TestPreviewLogsProspectiveQuarantine(t *testing.T) {
	h := newHarness(t, newFakeXIQ(offline(1, "X"), online(2, "X")))

	_, _, err := h.engine.Preview(context.Background())
	require.NoError(t, err)

	h.logs.AssertContains(t, "Offline duplicate would be quarantined")
	h.logs.AssertNotContains(t, "Quarantining offline duplicate")
}

func TestRunRewritesRepeatedRecords(t *testing.T) {
	first := expiry.NewRecord(8, planNow.Add(-time.Hour), 30*24*time.Hour)
	repeat := expiry.NewRecord(8, planNow, 30*24*time.Hour)
	h := newHarness(t, newFakeXIQ(unmanaged(8, "Z")).withGroup(50, groupName, 8), first, repeat)

	report, err := h.engine.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, h.remote.mutations())
	assert.True(t, report.StoreSaved)
	assert.Equal(t, 1, h.store.Saves)
	assert.Equal(t, []int64{8}, h.store.Records.IDs())
	h.logs.AssertContains(t, "Store holds repeated device ids, keeping the first record of each")
}

func TestRunFailureLogNamesOperation(t *testing.T) {
	remote := newFakeXIQ(offline(1, "X"), online(2, "X"))
	remote.failOn = "UnmanageDevices"
	h := newHarness(t, remote)

	_, err := h.engine.Run(context.Background())
	require.Error(t, err)

	failures := h.logs.EntriesAt(zerolog.ErrorLevel)
	require.Len(t, failures, 1)
	assert.Equal(t, "Failed to unmanage devices", failures[0]["message"])
	assert.Equal(t, "unmanage", failures[0]["operation"])
}
