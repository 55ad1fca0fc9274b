package catalog

import (
	"fmt"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// snapshotRecord is the CBOR form of a Record.
type snapshotRecord struct {
	Path        string `cbor:"1,keyasint"`
	Kind        Kind   `cbor:"2,keyasint"`
	UUID        string `cbor:"3,keyasint"`
	Description string `cbor:"4,keyasint,omitempty"`
	Comment     string `cbor:"5,keyasint,omitempty"`
	Datatype    string `cbor:"6,keyasint,omitempty"`
	Unit        string `cbor:"7,keyasint,omitempty"`
	Min         any    `cbor:"8,keyasint"`
	Max         any    `cbor:"9,keyasint"`
	Line        int    `cbor:"10,keyasint,omitempty"`
}

var (
	snapshotOnce sync.Once
	snapshotEnc  cbor.EncMode
	snapshotDec  cbor.DecMode
	snapshotErr  error
)

func snapshotModes() (cbor.EncMode, cbor.DecMode, error) {
	snapshotOnce.Do(func() {
		snapshotEnc, snapshotErr = cbor.CoreDetEncOptions().EncMode()
		if snapshotErr != nil {
			return
		}
		snapshotDec, snapshotErr = cbor.DecOptions{
			DupMapKey: cbor.DupMapKeyEnforcedAPF,
		}.DecMode()
	})
	return snapshotEnc, snapshotDec, snapshotErr
}

// EncodeCBOR encodes records in declaration order. The encoding is
// deterministic.
func EncodeCBOR(records []Record) ([]byte, error) {
	enc, _, err := snapshotModes()
	if err != nil {
		return nil, err
	}

	out := make([]snapshotRecord, len(records))
	for i, r := range records {
		out[i] = snapshotRecord{
			Path:        r.Path,
			Kind:        r.Kind,
			UUID:        r.UUID,
			Description: r.Description,
			Comment:     r.Comment,
			Datatype:    string(r.Datatype),
			Unit:        r.Unit,
			Min:         r.Min,
			Max:         r.Max,
			Line:        r.Line,
		}
	}

	data, err := enc.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding catalog snapshot: %w", err)
	}
	return data, nil
}

// ParseCBOR decodes a snapshot written by EncodeCBOR. Records go through
// the same validation and policy as the other formats.
func ParseCBOR(data []byte, opts Options) (*Catalog, error) {
	_, dec, err := snapshotModes()
	if err != nil {
		return nil, err
	}

	var in []snapshotRecord
	if err := dec.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCatalog, err)
	}

	c := newCollector(opts, FormatCBOR)
	for i, s := range in {
		line := s.Line
		if line == 0 {
			line = i + 1
		}
		if err := ValidatePath(s.Path); err != nil {
			return nil, &RecordError{Line: line, Err: fmt.Errorf("%w: %w", ErrMalformedCatalog, err)}
		}

		kind := s.Kind.String()
		get := func(key string) (string, bool) {
			switch key {
			case "uuid":
				return s.UUID, s.UUID != ""
			case "type":
				return kind, true
			case "description":
				return s.Description, s.Description != ""
			case "comment":
				return s.Comment, s.Comment != ""
			case "datatype":
				return s.Datatype, s.Datatype != ""
			case "unit":
				return s.Unit, s.Unit != ""
			}
			return "", false
		}

		rec, err := buildRecord(s.Path, line, get)
		if err == nil {
			rec.Min = rec.Datatype.coerceBound(s.Min)
			rec.Max = rec.Datatype.coerceBound(s.Max)
		}
		if err := c.add(rec, err, kind); err != nil {
			return nil, err
		}
	}

	return c.result(), nil
}
