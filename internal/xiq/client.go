// Package xiq is the ExtremeCloud IQ client used by the reconciler: a
// paginated device listing, CCG lookup and the batch lifecycle calls.
package xiq

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/dupap/internal/transport"
	"github.com/agentstation/dupap/pkg/constants"
	"github.com/agentstation/dupap/pkg/errors"
	"github.com/agentstation/dupap/pkg/logging"
)

// ServiceName identifies XIQ in returned errors.
const ServiceName = "xiq"

// Config holds connection settings for the XIQ API.
type Config struct {
	Token       string
	BaseURL     string
	PageSize    int
	InsecureTLS bool
	Timeout     time.Duration
	UserAgent   string
}

// Validate checks the config and fills defaults.
func (c *Config) Validate() error {
	if c.Token == "" {
		return errors.NewConfigError("xiq", "API token is required (set XIQ_TOKEN)", errors.ErrTokenRequired)
	}
	if c.BaseURL == "" {
		c.BaseURL = constants.DefaultBaseURL
	}
	if c.PageSize <= 0 {
		c.PageSize = constants.DefaultPageSize
	}
	if c.PageSize > constants.MaxPageSize {
		return errors.NewValidationError("page_size", c.PageSize, "exceeds the API maximum")
	}
	if c.Timeout <= 0 {
		c.Timeout = constants.DefaultHTTPTimeout
	}
	return nil
}

// Client talks to the XIQ REST API.
type Client struct {
	transport *transport.Client
	pageSize  int
	logger    *zerolog.Logger
}

// New validates cfg and returns a client.
func New(cfg Config, logger *zerolog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Default()
	}

	opts := []transport.Option{
		transport.WithService(ServiceName),
		transport.WithTimeout(cfg.Timeout),
		transport.WithInsecureTLS(cfg.InsecureTLS),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, transport.WithUserAgent(cfg.UserAgent))
	}

	return &Client{
		transport: transport.New(cfg.BaseURL, cfg.Token, &transport.BearerAuth{}, opts...),
		pageSize:  cfg.PageSize,
		logger:    logger,
	}, nil
}
