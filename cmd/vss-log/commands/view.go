// Package commands implements the vss-log CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vss-go/vss-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer    *log.Layer
	Category *log.Category
	Path     string
}

func (f ViewFilter) toFilter() log.Filter {
	return log.Filter{Layer: f.Layer, Category: f.Category, PathPrefix: f.Path}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	session := shortenID(event.SessionID)
	if session == "" {
		session = "-"
	}

	fmt.Fprintf(w, "%s [session:%s] %-8s %s", ts, session, event.Layer, eventType(event))
	if event.Path != "" {
		fmt.Fprintf(w, " %s", event.Path)
	}
	fmt.Fprintln(w)

	switch {
	case event.Record != nil:
		formatRecordDetails(w, event.Record)
	case event.Compile != nil:
		formatCompileDetails(w, event.Compile)
	case event.Delivery != nil:
		fmt.Fprintf(w, "  Fields: %s  Matched: %d  Failed: %d\n",
			event.Delivery.Fields, event.Delivery.Matched, event.Delivery.Failed)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// eventType returns a short label for the event payload.
func eventType(event log.Event) string {
	switch {
	case event.Record != nil:
		return "Record"
	case event.Compile != nil:
		return "Compile"
	case event.Delivery != nil:
		return "Delivery"
	case event.StateChange != nil:
		return "State"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatRecordDetails(w io.Writer, rec *log.RecordEvent) {
	status := "accepted"
	if !rec.Accepted {
		status = "skipped"
	}
	fmt.Fprintf(w, "  Line: %d  Kind: %s  %s\n", rec.Line, rec.Kind, status)
	if rec.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", rec.Reason)
	}
}

func formatCompileDetails(w io.Writer, c *log.CompileEvent) {
	fmt.Fprintf(w, "  Nodes: %d  Roots: %d\n", c.Nodes, c.Roots)
	if len(c.Detached) > 0 {
		fmt.Fprintf(w, "  Detached: %s\n", strings.Join(c.Detached, ", "))
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity)
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer)
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// ParseLayerFlag parses a layer name (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "catalog":
		return log.LayerCatalog, nil
	case "tree":
		return log.LayerTree, nil
	case "dispatch":
		return log.LayerDispatch, nil
	case "broker":
		return log.LayerBroker, nil
	case "session":
		return log.LayerSession, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be catalog, tree, dispatch, broker, or session)", s)
	}
}

// ParseCategoryFlag parses a category name (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "record":
		return log.CategoryRecord, nil
	case "compile":
		return log.CategoryCompile, nil
	case "delivery":
		return log.CategoryDelivery, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be record, compile, delivery, state, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.toFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	return each(reader, func(event log.Event) error {
		formatEvent(output, event)
		return nil
	})
}

// each calls fn for every remaining event of reader.
func each(reader *log.Reader, fn func(log.Event) error) error {
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := fn(event); err != nil {
			return err
		}
	}
}
