package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownFormat is returned for a manifest format name that is not
// supported.
var ErrUnknownFormat = errors.New("swig: unknown manifest format")

// Format is a manifest serialization.
type Format string

const (
	JSON    Format = "json"
	Msgpack Format = "msgpack"
	CBOR    Format = "cbor"
)

// Formats lists the supported formats.
var Formats = []Format{JSON, Msgpack, CBOR}

// ParseFormat returns the format named s. The empty string is JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return JSON, nil
	case JSON, Msgpack, CBOR:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext returns the file extension for the format, without a dot.
func (f Format) Ext() string {
	if f == Msgpack {
		return "msgpack"
	}
	return string(f)
}

var cborEnc cbor.EncMode

func init() {
	var err error
	cborEnc, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// Encode serializes m. JSON output is indented and newline-terminated.
func Encode(m *Manifest, f Format) ([]byte, error) {
	switch f {
	case JSON, "":
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case Msgpack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		enc.SetSortMapKeys(true)
		if err := enc.Encode(m); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CBOR:
		return cborEnc.Marshal(m)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Decode parses a manifest written by Encode.
func Decode(data []byte, f Format) (*Manifest, error) {
	m := &Manifest{}
	var err error
	switch f {
	case JSON, "":
		err = json.Unmarshal(data, m)
	case Msgpack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.SetCustomStructTag("json")
		err = dec.Decode(m)
	case CBOR:
		err = cbor.Unmarshal(data, m)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s manifest: %w", f, err)
	}
	m.restoreKeys()
	return m, nil
}
