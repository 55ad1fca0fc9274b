// Package log provides structured event capture for catalog compilation and
// change dispatch.
//
// This package defines the Logger interface and Event types for recording
// what happened while a catalog was parsed, compiled into a tree, and while
// updates were dispatched to subscribers. It is separate from operational
// logging (slog) - event capture provides a machine-readable trace that can
// be replayed and filtered after the fact.
//
// # Basic Usage
//
// Applications configure event capture by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.EventLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.EventLogger, _ = log.NewFileLogger("/var/log/vss/session.vlog")
//
//	// Both: use MultiLogger
//	cfg.EventLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Catalog: per-record parse outcome (RecordEvent)
//   - Tree: compile summary (CompileEvent)
//   - Dispatch: update fan-out (DeliveryEvent)
//   - Broker/Session: lifecycle (StateChangeEvent)
//
// Errors at any layer have a dedicated event type.
//
// # File Format
//
// Log files are a stream of CBOR-encoded events using integer keys.
// Reader iterates such a file, optionally applying a Filter.
package log
