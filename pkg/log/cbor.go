package log

import (
	"fmt"
	"io"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

var (
	modesOnce sync.Once
	encMode   cbor.EncMode
	decMode   cbor.DecMode
	modesErr  error
)

// modes lazily builds the encoder and decoder modes shared by every
// log writer and reader. Timestamps keep nanosecond precision and map keys
// are sorted canonically so identical events encode identically.
func modes() (cbor.EncMode, cbor.DecMode, error) {
	modesOnce.Do(func() {
		encMode, modesErr = cbor.EncOptions{
			Sort:          cbor.SortCanonical,
			IndefLength:   cbor.IndefLengthForbidden,
			NilContainers: cbor.NilContainerAsNull,
			Time:          cbor.TimeRFC3339Nano,
		}.EncMode()
		if modesErr != nil {
			modesErr = fmt.Errorf("event encoder mode: %w", modesErr)
			return
		}
		decMode, modesErr = cbor.DecOptions{
			DupMapKey:   cbor.DupMapKeyQuiet,
			IndefLength: cbor.IndefLengthAllowed,
		}.DecMode()
		if modesErr != nil {
			modesErr = fmt.Errorf("event decoder mode: %w", modesErr)
		}
	})
	return encMode, decMode, modesErr
}

// EncodeEvent encodes an Event to CBOR bytes.
func EncodeEvent(event Event) ([]byte, error) {
	enc, _, err := modes()
	if err != nil {
		return nil, err
	}
	return enc.Marshal(event)
}

// DecodeEvent decodes CBOR bytes into an Event.
func DecodeEvent(data []byte) (Event, error) {
	_, dec, err := modes()
	if err != nil {
		return Event{}, err
	}
	var event Event
	if err := dec.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("decoding event: %w", err)
	}
	return event, nil
}

func newEncoder(w io.Writer) (*cbor.Encoder, error) {
	enc, _, err := modes()
	if err != nil {
		return nil, err
	}
	return enc.NewEncoder(w), nil
}

func newDecoder(r io.Reader) (*cbor.Decoder, error) {
	_, dec, err := modes()
	if err != nil {
		return nil, err
	}
	return dec.NewDecoder(r), nil
}
