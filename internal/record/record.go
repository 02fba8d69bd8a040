package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/confluentinc/data-tools/pkg/datatools"
)

// Field is a single key-value pair of a Record.
type Field struct {
	Key   string
	Value interface{}
}

// Record is a JSON object that preserves field order.
//
// encoding/json decodes objects into map[string]interface{}, which loses the
// order keys appear in on disk and re-serializes them sorted. Downstream
// consumers of transformed files diff them against the originals, so the
// codec here keeps fields in input order: a record round-trips with every
// retained key in its original position.
//
// Nested objects decode to *Record, arrays to []interface{}, numbers to
// json.Number (no float coercion), strings/bools/null to their Go
// equivalents.
type Record struct {
	fields []Field
	index  map[string]int
}

// New creates an empty Record.
func New() *Record {
	return &Record{index: make(map[string]int)}
}

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.fields) }

// Fields returns the fields in order. The returned slice is shared with the
// Record and must not be mutated.
func (r *Record) Fields() []Field { return r.fields }

// Get returns the value for key and whether the key is present.
func (r *Record) Get(key string) (interface{}, bool) {
	i, ok := r.index[key]
	if !ok {
		return nil, false
	}
	return r.fields[i].Value, true
}

// Set stores value under key. An existing key keeps its position and gets
// the new value (last write wins); a new key is appended.
func (r *Record) Set(key string, value interface{}) {
	if i, ok := r.index[key]; ok {
		r.fields[i].Value = value
		return
	}
	r.index[key] = len(r.fields)
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

// Delete removes key and reports whether it was present.
func (r *Record) Delete(key string) bool {
	i, ok := r.index[key]
	if !ok {
		return false
	}
	r.fields = append(r.fields[:i], r.fields[i+1:]...)
	delete(r.index, key)
	for k, j := range r.index {
		if j > i {
			r.index[k] = j - 1
		}
	}
	return true
}

// Parse decodes a single JSON object, failing with ErrMalformedRecord when
// the input is not a JSON object.
func Parse(data []byte) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	rec, err := decodeObject(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", datatools.ErrMalformedRecord, err)
	}

	// Reject trailing garbage after the object.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after record", datatools.ErrMalformedRecord)
	}

	return rec, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	rec, err := Parse(data)
	if err != nil {
		return err
	}
	*r = *rec
	return nil
}

// decodeObject consumes one JSON object from dec, recursing into nested
// objects and arrays.
func decodeObject(dec *json.Decoder) (*Record, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	return decodeObjectBody(dec)
}

// decodeObjectBody decodes the fields of an object whose opening '{' has
// already been consumed, including the closing '}'.
func decodeObjectBody(dec *json.Decoder) (*Record, error) {
	rec := New()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}

		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		rec.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return rec, nil
}

func decodeArray(dec *json.Decoder) ([]interface{}, error) {
	values := []interface{}{}
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return values, nil
}

func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if delim, ok := tok.(json.Delim); ok {
		switch delim {
		case '{':
			return decodeObjectBody(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", delim)
		}
	}

	// Scalar: string, json.Number, bool, or nil.
	return tok, nil
}

// MarshalJSON implements json.Marshaler, writing fields in order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
