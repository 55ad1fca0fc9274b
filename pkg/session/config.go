package session

import (
	"errors"
	"log/slog"
	"time"

	"github.com/vss-go/vss-go/pkg/broker"
	"github.com/vss-go/vss-go/pkg/catalog"
	"github.com/vss-go/vss-go/pkg/identifier"
	"github.com/vss-go/vss-go/pkg/log"
)

// Session errors.
var (
	ErrClosed        = errors.New("session closed")
	ErrNoCatalog     = errors.New("no catalog configured")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Defaults.
const (
	DefaultRecentCapacity = 32
	DefaultBrokerTimeout  = 5 * time.Second
)

// Config configures Open.
type Config struct {
	// CatalogPath is the catalog file to load. The format follows the
	// extension. Ignored when CatalogData is set.
	CatalogPath string

	// CatalogData is an in-memory catalog in CatalogFormat.
	CatalogData []byte

	// CatalogFormat is the encoding of CatalogData.
	CatalogFormat catalog.Format

	// Policy decides how invalid catalog records are handled.
	Policy catalog.Policy

	// Identifiers derives node identifiers.
	Identifiers identifier.Generator

	// Client is the broker to use. If nil, an in-process broker.Memory
	// bound to the compiled forest is created.
	Client broker.Client

	// RecentCapacity bounds the set of recently updated paths.
	RecentCapacity int

	// BrokerTimeout bounds broker calls made when a subscription group is
	// attached or detached.
	BrokerTimeout time.Duration

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// EventLogger receives catalog, tree, dispatch and session events.
	// Optional.
	EventLogger log.Logger
}

// DefaultConfig returns a configuration using an in-process broker.
func DefaultConfig() Config {
	return Config{
		Policy:         catalog.PolicyStrict,
		RecentCapacity: DefaultRecentCapacity,
		BrokerTimeout:  DefaultBrokerTimeout,
	}
}

func (c *Config) applyDefaults() {
	if c.RecentCapacity == 0 {
		c.RecentCapacity = DefaultRecentCapacity
	}
	if c.BrokerTimeout <= 0 {
		c.BrokerTimeout = DefaultBrokerTimeout
	}
}
