package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.vlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func TestReaderIteratesEvents(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), SessionID: "s-1", Layer: LayerCatalog, Category: CategoryRecord},
		{Timestamp: time.Now(), SessionID: "s-2", Layer: LayerTree, Category: CategoryCompile},
		{Timestamp: time.Now(), SessionID: "s-3", Layer: LayerDispatch, Category: CategoryDelivery},
	}
	path := createTestLogFile(t, events)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	if read[0].SessionID != "s-1" || read[2].SessionID != "s-3" {
		t.Errorf("events out of order: %q .. %q", read[0].SessionID, read[2].SessionID)
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("Next on empty file = %v, want io.EOF", err)
	}
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base, Layer: LayerDispatch, Category: CategoryDelivery, Path: "Vehicle.Body"},
		{Timestamp: base.Add(time.Second), Layer: LayerDispatch, Category: CategoryDelivery, Path: "Vehicle.Body.Door"},
		{Timestamp: base.Add(2 * time.Second), Layer: LayerDispatch, Category: CategoryError, Path: "Vehicle.BodyStyle"},
		{Timestamp: base.Add(3 * time.Second), Layer: LayerCatalog, Category: CategoryRecord, Path: "Vehicle.Cabin"},
	}
	path := createTestLogFile(t, events)

	dispatch := LayerDispatch
	errCat := CategoryError
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"layer", Filter{Layer: &dispatch}, 3},
		{"category", Filter{Category: &errCat}, 1},
		{"path prefix is segment bounded", Filter{PathPrefix: "Vehicle.Body"}, 2},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer reader.Close()

			got, err := reader.ReadAll()
			if err != nil {
				t.Fatalf("ReadAll failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestNewReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.vlog")); err == nil {
		t.Error("expected error for missing file")
	}
}
