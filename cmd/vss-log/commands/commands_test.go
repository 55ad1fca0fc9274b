package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vss-go/vss-go/pkg/log"
)

var baseTime = time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.vlog")

	logger, err := log.NewFileLogger(path)
	require.NoError(t, err)
	for _, e := range events {
		logger.Log(e)
	}
	require.NoError(t, logger.Close())
	return path
}

func sampleEvents() []log.Event {
	return []log.Event{
		{
			Timestamp: baseTime,
			Layer:     log.LayerCatalog,
			Category:  log.CategoryRecord,
			Path:      "Vehicle.Speed",
			Record:    &log.RecordEvent{Line: 8, Kind: "sensor", Accepted: true},
		},
		{
			Timestamp: baseTime.Add(time.Millisecond),
			Layer:     log.LayerCatalog,
			Category:  log.CategoryRecord,
			Path:      "Vehicle.Broken",
			Record:    &log.RecordEvent{Line: 20, Kind: "", Reason: "missing required field: type"},
		},
		{
			Timestamp: baseTime.Add(2 * time.Millisecond),
			Layer:     log.LayerTree,
			Category:  log.CategoryCompile,
			Compile:   &log.CompileEvent{Nodes: 10, Roots: 2, Detached: []string{"Other.Thing"}},
		},
		{
			Timestamp: baseTime.Add(3 * time.Millisecond),
			SessionID: "5f1c2d3e-aaaa-bbbb-cccc-000000000000",
			Layer:     log.LayerSession,
			Category:  log.CategoryState,
			StateChange: &log.StateChangeEvent{
				Entity:   log.StateEntitySession,
				NewState: "OPEN",
			},
		},
		{
			Timestamp: baseTime.Add(4 * time.Millisecond),
			Layer:     log.LayerDispatch,
			Category:  log.CategoryDelivery,
			Path:      "Vehicle.Body.Trunk.IsOpen",
			Delivery:  &log.DeliveryEvent{Fields: "ACTUATOR_TARGET", Matched: 3, Failed: 1},
		},
		{
			Timestamp: baseTime.Add(5 * time.Millisecond),
			Layer:     log.LayerBroker,
			Category:  log.CategoryError,
			Path:      "Vehicle.Body",
			Error:     &log.ErrorEventData{Layer: log.LayerBroker, Message: "path does not carry a value", Context: "update"},
		},
	}
}

func TestRunViewFormatsEveryPayload(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunView(path, ViewFilter{}, &buf))
	out := buf.String()

	assert.Contains(t, out, "2026-01-28T10:15:32.123456Z [session:-] CATALOG  Record Vehicle.Speed")
	assert.Contains(t, out, "Line: 8  Kind: sensor  accepted")
	assert.Contains(t, out, "Reason: missing required field: type")
	assert.Contains(t, out, "Detached: Other.Thing")
	assert.Contains(t, out, "[session:5f1c2d3e] SESSION  State")
	assert.Contains(t, out, "  -> OPEN")
	assert.Contains(t, out, "Fields: ACTUATOR_TARGET  Matched: 3  Failed: 1")
	assert.Contains(t, out, "Context: update")
}

func TestRunViewFilters(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	layer := log.LayerCatalog
	var buf bytes.Buffer
	require.NoError(t, RunView(path, ViewFilter{Layer: &layer}, &buf))
	assert.Equal(t, 2, strings.Count(buf.String(), "CATALOG"))

	buf.Reset()
	require.NoError(t, RunView(path, ViewFilter{Path: "Vehicle.Body"}, &buf))
	out := buf.String()
	assert.Contains(t, out, "Vehicle.Body.Trunk.IsOpen")
	assert.NotContains(t, out, "Vehicle.Speed")

	cat := log.CategoryError
	buf.Reset()
	require.NoError(t, RunView(path, ViewFilter{Category: &cat}, &buf))
	assert.Equal(t, 1, strings.Count(buf.String(), "Error"))
}

func TestExportJSONL(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "out.jsonl")

	require.NoError(t, RunExport(path, "jsonl", out))

	reader, err := log.NewReader(path)
	require.NoError(t, err)
	defer reader.Close()

	var buf bytes.Buffer
	require.NoError(t, export(reader, "jsonl", &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, len(sampleEvents()))

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "Vehicle.Speed", first["Path"])
}

func TestExportCSV(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	reader, err := log.NewReader(path)
	require.NoError(t, err)
	defer reader.Close()

	var buf bytes.Buffer
	require.NoError(t, export(reader, "csv", &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(sampleEvents())+1)
	assert.Equal(t, "session_id", rows[0][1])
	assert.Equal(t, []string{"DISPATCH", "DELIVERY", "Vehicle.Body.Trunk.IsOpen", "Delivery", "ACTUATOR_TARGET matched=3 failed=1"}, rows[5][2:])
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	err := RunExport(path, "xml", "")
	assert.ErrorContains(t, err, "unknown format")
}

func TestRunFilter(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.vlog")

	var msg bytes.Buffer
	err := RunFilter(path, FilterOptions{Output: out, Layer: "catalog"}, &msg)
	require.NoError(t, err)
	assert.Contains(t, msg.String(), "Filtered 2 events")

	reader, err := log.NewReader(out)
	require.NoError(t, err)
	defer reader.Close()
	events, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Vehicle.Broken", events[1].Path)
}

func TestBuildFilterErrors(t *testing.T) {
	tests := []FilterOptions{
		{Layer: "wire"},
		{Category: "message"},
		{TimeStart: "yesterday"},
		{TimeEnd: "2026-13-01"},
	}
	for _, opts := range tests {
		_, err := buildFilter(opts)
		assert.Error(t, err, "%+v", opts)
	}

	f, err := buildFilter(FilterOptions{
		SessionID: "s",
		TimeStart: "2026-01-28T10:00:00Z",
		Layer:     "Broker",
		Category:  "ERROR",
	})
	require.NoError(t, err)
	assert.Equal(t, log.LayerBroker, *f.Layer)
	assert.Equal(t, log.CategoryError, *f.Category)
	assert.Equal(t, "s", f.SessionID)
}

func TestRunStats(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	require.NoError(t, RunStats(path, &buf))
	out := buf.String()

	assert.Contains(t, out, "Total events: 6")
	assert.Contains(t, out, "CATALOG    2")
	assert.Contains(t, out, "DELIVERY   1")
	assert.Contains(t, out, "Skipped records:   1")
	assert.Contains(t, out, "Deliveries:        3 (1 failed)")
	assert.Contains(t, out, "Errors:            1")
	assert.Contains(t, out, "Sessions:          1")
}

func TestRunStatsEmpty(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	require.NoError(t, RunStats(path, &buf))
	assert.Equal(t, "Total events: 0\n", buf.String())
}
