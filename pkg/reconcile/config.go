package reconcile

import (
	"time"

	"github.com/agentstation/dupap/pkg/constants"
	"github.com/agentstation/dupap/pkg/errors"
)

// Config controls the quarantine workflow.
type Config struct {
	// GroupName is the cloud config group that collects quarantined devices.
	GroupName string `mapstructure:"group_name" yaml:"group_name"`

	// GroupDescription is set when the group is created.
	GroupDescription string `mapstructure:"group_description" yaml:"group_description"`

	// GracePeriod is how long a quarantined device is kept before deletion.
	GracePeriod time.Duration `mapstructure:"grace_period" yaml:"grace_period"`
}

// DefaultConfig returns the stock workflow settings.
func DefaultConfig() Config {
	return Config{
		GroupName:        constants.DefaultGroupName,
		GroupDescription: constants.DefaultGroupDescription,
		GracePeriod:      constants.DefaultGracePeriod,
	}
}

// Validate fills empty fields with defaults and rejects unusable values.
func (c *Config) Validate() error {
	if c.GroupName == "" {
		c.GroupName = constants.DefaultGroupName
	}
	if c.GroupDescription == "" {
		c.GroupDescription = constants.DefaultGroupDescription
	}
	if c.GracePeriod == 0 {
		c.GracePeriod = constants.DefaultGracePeriod
	}
	if c.GracePeriod < 0 {
		return errors.NewValidationError("grace_period", c.GracePeriod, "must be positive")
	}
	return nil
}
