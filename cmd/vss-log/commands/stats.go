package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/vss-go/vss-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByLayer    map[log.Layer]int
	EventsByCategory map[log.Category]int
	Sessions         map[string]int
	Errors           int
	SkippedRecords   int
	Deliveries       int
	FailedDeliveries int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// collectStats aggregates every event of reader.
func collectStats(reader *log.Reader) (*Stats, error) {
	stats := &Stats{
		EventsByLayer:    make(map[log.Layer]int),
		EventsByCategory: make(map[log.Category]int),
		Sessions:         make(map[string]int),
	}

	err := each(reader, func(event log.Event) error {
		stats.TotalEvents++
		stats.EventsByLayer[event.Layer]++
		stats.EventsByCategory[event.Category]++
		if event.SessionID != "" {
			stats.Sessions[event.SessionID]++
		}

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		switch {
		case event.Error != nil:
			stats.Errors++
		case event.Record != nil && !event.Record.Accepted:
			stats.SkippedRecords++
		case event.Delivery != nil:
			stats.Deliveries += event.Delivery.Matched
			stats.FailedDeliveries += event.Delivery.Failed
		}
		return nil
	})
	return stats, err
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats, err := collectStats(reader)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintf(w, "Total events: %d\n", stats.TotalEvents)
	if stats.TotalEvents == 0 {
		return
	}
	fmt.Fprintf(w, "Time range:   %s - %s (%s)\n",
		stats.TimeRange.Start.UTC().Format(time.RFC3339),
		stats.TimeRange.End.UTC().Format(time.RFC3339),
		stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))

	fmt.Fprintln(w, "\nBy layer:")
	for _, l := range slices.Sorted(maps.Keys(stats.EventsByLayer)) {
		fmt.Fprintf(w, "  %-10s %d\n", l, stats.EventsByLayer[l])
	}

	fmt.Fprintln(w, "\nBy category:")
	for _, c := range slices.Sorted(maps.Keys(stats.EventsByCategory)) {
		fmt.Fprintf(w, "  %-10s %d\n", c, stats.EventsByCategory[c])
	}

	fmt.Fprintf(w, "\nSessions:          %d\n", len(stats.Sessions))
	fmt.Fprintf(w, "Skipped records:   %d\n", stats.SkippedRecords)
	fmt.Fprintf(w, "Deliveries:        %d (%d failed)\n", stats.Deliveries, stats.FailedDeliveries)
	fmt.Fprintf(w, "Errors:            %d\n", stats.Errors)
}
