package reconcile

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/dupap/pkg/errors"
	"github.com/agentstation/dupap/pkg/expiry"
	"github.com/agentstation/dupap/pkg/inventory"
	"github.com/agentstation/dupap/pkg/logging"
)

// Engine runs the reconciliation against a Remote and a Store.
type Engine struct {
	remote Remote
	store  expiry.Store
	config Config
	clock  Clock
	logger *zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine validates cfg and returns an engine.
func NewEngine(remote Remote, store expiry.Store, cfg Config, opts ...Option) (*Engine, error) {
	if remote == nil {
		return nil, errors.NewValidationError("remote", nil, "is required")
	}
	if store == nil {
		return nil, errors.NewValidationError("store", nil, "is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		remote: remote,
		store:  store,
		config: cfg,
		clock:  realClock{},
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Preview builds the plan for the current state without changing anything.
func (e *Engine) Preview(ctx context.Context) (*Plan, *Report, error) {
	ctx, runID := e.runContext(ctx)
	plan, err := e.prepare(ctx)
	if err != nil {
		return nil, nil, err
	}
	e.logPlan(ctx, plan, true)
	return plan, newReport(runID, plan, true), nil
}

// Run performs one full reconciliation pass.
//
// The order is fixed: delete expired devices, unmanage candidates, apply the
// group action, then save the store. A failing remote call stops the run and
// leaves the store untouched.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	ctx, runID := e.runContext(ctx)
	logger := logging.FromContext(ctx)
	logger.Info().Msg("Starting reconciliation")

	plan, err := e.prepare(ctx)
	if err != nil {
		return nil, err
	}
	e.logPlan(ctx, plan, false)

	report := newReport(runID, plan, false)
	err = e.apply(ctx, plan)
	report.Group = plan.GroupAction
	if err != nil {
		return report, err
	}

	if plan.StoreChanged {
		if err := e.store.Save(plan.Records); err != nil {
			return report, err
		}
		report.StoreSaved = true
		logger.Info().Int("records", len(plan.Records)).Msg("Store updated")
	} else {
		logger.Debug().Msg("Store unchanged")
	}

	logger.Info().
		Int("deleted", len(plan.Expired)).
		Int("unmanaged", len(plan.Candidates)).
		Str("group_action", string(plan.GroupAction.Kind)).
		Msg("Reconciliation complete")
	return report, nil
}

// runContext tags ctx with a run id. A context that already carries one is
// used as is, logger included.
func (e *Engine) runContext(ctx context.Context) (context.Context, string) {
	if runID := logging.RunID(ctx); runID != "" {
		return ctx, runID
	}
	runID := uuid.NewString()
	ctx = logging.WithRunID(logging.WithLogger(ctx, e.logger), runID)
	return ctx, runID
}

// prepare loads every input and computes the plan.
func (e *Engine) prepare(ctx context.Context) (*Plan, error) {
	logger := logging.FromContext(ctx)

	records, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	devices, err := e.remote.ListDevices(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch device inventory")
		return nil, err
	}

	group, found, err := e.remote.FindGroupByName(ctx, e.config.GroupName)
	if err != nil {
		logger.Error().Err(err).Str("group", e.config.GroupName).Msg("Failed to look up cloud config group")
		return nil, err
	}
	if !found {
		group = nil
	}

	return NewPlan(Input{
		Devices: devices,
		Group:   group,
		Records: records,
		Now:     e.clock.Now(),
		Config:  e.config,
	}), nil
}

func (e *Engine) logPlan(ctx context.Context, p *Plan, preview bool) {
	logger := logging.FromContext(ctx)

	if p.Collapsed > 0 {
		logger.Warn().Int("records", p.Collapsed).Msg("Store holds repeated device ids, keeping the first record of each")
	}
	for _, id := range p.Vanished {
		logger.Info().Int64("device_id", id).Msg("Tracked device no longer in inventory, dropping record")
	}
	for _, id := range p.Expired {
		logger.Info().Int64("device_id", id).Msg("Grace period elapsed, device will be deleted")
	}

	switch {
	case len(p.Duplicates) == 0:
		logger.Info().Msg("No duplicate hostnames found")
	case len(p.Candidates) == 0:
		logger.Info().Int("hostnames", len(p.Duplicates)).Msg("No managed offline duplicates to quarantine")
	default:
		msg := "Quarantining offline duplicate"
		if preview {
			msg = "Offline duplicate would be quarantined"
		}
		hostnames := make(map[int64]string, len(p.Candidates))
		for _, dup := range p.Duplicates {
			for _, d := range dup.Devices {
				hostnames[d.ID] = dup.Hostname
			}
		}
		for _, id := range p.Candidates {
			logger.Info().Str("hostname", hostnames[id]).Int64("device_id", id).Msg(msg)
		}
	}

	for _, id := range p.GroupAction.AlreadyPresent {
		logger.Info().Int64("device_id", id).Str("group", e.config.GroupName).Msg("Device already in cloud config group")
	}
	if len(p.Untracked) > 0 {
		logger.Warn().
			Ints64("device_ids", p.Untracked).
			Str("group", e.config.GroupName).
			Msg("Cloud config group holds devices that are not tracked in the store")
	}
	if !p.Mutates() {
		logger.Debug().Msg("Nothing to change in XIQ")
	}
}

// apply executes the remote half of the plan.
func (e *Engine) apply(ctx context.Context, p *Plan) error {
	if len(p.Expired) > 0 {
		ctx := logging.WithOperation(ctx, "delete")
		if err := e.remote.DeleteDevices(ctx, p.Expired); err != nil {
			logging.FromContext(ctx).Error().Err(err).Ints64("device_ids", p.Expired).Msg("Failed to delete expired devices")
			return err
		}
	}

	if len(p.Candidates) > 0 {
		ctx := logging.WithOperation(ctx, "unmanage")
		if err := e.remote.UnmanageDevices(ctx, p.Candidates); err != nil {
			logging.FromContext(ctx).Error().Err(err).Ints64("device_ids", p.Candidates).Msg("Failed to unmanage devices")
			return err
		}
	}

	return e.applyGroup(logging.WithOperation(ctx, "group"), p)
}

func (e *Engine) applyGroup(ctx context.Context, p *Plan) error {
	logger := logging.FromContext(ctx)
	action := &p.GroupAction

	var err error
	switch action.Kind {
	case GroupCreate:
		var id int64
		id, err = e.remote.CreateGroup(ctx, inventory.GroupSpec{
			Name:        e.config.GroupName,
			Description: e.config.GroupDescription,
			DeviceIDs:   action.Members,
		})
		action.GroupID = id
	case GroupUpdate:
		err = e.remote.UpdateGroup(ctx, inventory.Group{
			ID:          p.Group.ID,
			Name:        p.Group.Name,
			Description: p.Group.Description,
			DeviceIDs:   action.Members,
		})
	case GroupDelete:
		logger.Info().Int64("group_id", action.GroupID).Msg("Cloud config group is empty, deleting it")
		err = e.remote.DeleteGroup(ctx, action.GroupID)
	case GroupNone:
		return nil
	}

	if err != nil {
		logger.Error().Err(err).
			Str("action", string(action.Kind)).
			Str("group", e.config.GroupName).
			Msg("Failed to change cloud config group")
	}
	return err
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
