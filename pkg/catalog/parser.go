package catalog

import (
	"errors"
	"log/slog"
	"time"

	"github.com/vss-go/vss-go/pkg/log"
)

// Policy decides how invalid records are handled.
type Policy uint8

const (
	// PolicyStrict aborts the parse at the first invalid record.
	PolicyStrict Policy = iota

	// PolicySkip drops invalid records and reports them in Catalog.Skipped.
	PolicySkip
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicySkip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParsePolicy parses "strict" or "skip".
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "strict", "":
		return PolicyStrict, true
	case "skip":
		return PolicySkip, true
	default:
		return PolicyStrict, false
	}
}

// Format identifies the encoding a catalog was read from.
type Format uint8

const (
	FormatText Format = iota
	FormatYAML
	FormatCBOR
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatYAML:
		return "yaml"
	case FormatCBOR:
		return "cbor"
	default:
		return "unknown"
	}
}

// Options configures parsing.
type Options struct {
	// Policy decides how invalid records are handled.
	Policy Policy

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// EventLogger receives one RecordEvent per record. Optional.
	EventLogger log.Logger
}

// DefaultOptions returns strict parsing without logging.
func DefaultOptions() Options {
	return Options{Policy: PolicyStrict}
}

// Catalog is the result of a successful parse.
type Catalog struct {
	// Records holds the accepted records in declaration order.
	Records []Record

	// Skipped lists invalid records dropped under PolicySkip.
	Skipped []*RecordError

	// Format is the encoding the catalog was read from.
	Format Format
}

// Len returns the number of accepted records.
func (c *Catalog) Len() int {
	return len(c.Records)
}

// collector accumulates records according to the configured policy.
type collector struct {
	opts    Options
	events  log.Logger
	catalog *Catalog
}

func newCollector(opts Options, format Format) *collector {
	return &collector{
		opts:    opts,
		events:  log.OrNoop(opts.EventLogger),
		catalog: &Catalog{Format: format},
	}
}

// add records the outcome of building one record. It returns a non-nil
// error only when the parse must abort.
func (c *collector) add(rec Record, err error, kindText string) error {
	if err == nil {
		c.catalog.Records = append(c.catalog.Records, rec)
		c.debugLog("record accepted", "path", rec.Path, "line", rec.Line, "kind", rec.Kind.String())
		c.events.Log(log.Event{
			Timestamp: time.Now(),
			Layer:     log.LayerCatalog,
			Category:  log.CategoryRecord,
			Path:      rec.Path,
			Record:    &log.RecordEvent{Line: rec.Line, Kind: rec.Kind.String(), Accepted: true},
		})
		return nil
	}

	var recErr *RecordError
	if !errors.As(err, &recErr) {
		return err
	}

	c.events.Log(log.Event{
		Timestamp: time.Now(),
		Layer:     log.LayerCatalog,
		Category:  log.CategoryRecord,
		Path:      recErr.Path,
		Record:    &log.RecordEvent{Line: recErr.Line, Kind: kindText, Reason: recErr.Error()},
	})

	if c.opts.Policy == PolicyStrict || errors.Is(err, ErrMalformedCatalog) {
		c.debugLog("record rejected, aborting", "error", err)
		return err
	}

	c.debugLog("record skipped", "error", err)
	c.catalog.Skipped = append(c.catalog.Skipped, recErr)
	return nil
}

func (c *collector) debugLog(msg string, args ...any) {
	if c.opts.Logger != nil {
		c.opts.Logger.Debug(msg, args...)
	}
}

func (c *collector) result() *Catalog {
	c.debugLog("catalog parsed",
		"format", c.catalog.Format.String(),
		"records", len(c.catalog.Records),
		"skipped", len(c.catalog.Skipped),
	)
	return c.catalog
}
