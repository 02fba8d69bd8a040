package record

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confluentinc/data-tools/pkg/datatools"
)

func TestParse_PreservesFieldOrder(t *testing.T) {
	input := `{"zebra":1,"apple":2,"mango":3,"banana":4}`

	rec, err := Parse([]byte(input))
	require.NoError(t, err)

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, input, string(out), "field order must survive a round trip")
}

func TestParse_NestedObjectsAndArrays(t *testing.T) {
	input := `{"metric":{"b":1,"a":{"y":true,"x":null}},"tags":["one",2,{"k":"v"}]}`

	rec, err := Parse([]byte(input))
	require.NoError(t, err)

	metric, ok := rec.Get("metric")
	require.True(t, ok)
	require.IsType(t, &Record{}, metric)

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

func TestParse_NumbersNotCoerced(t *testing.T) {
	// Large ints and high-precision floats must survive untouched;
	// float64 round-tripping would corrupt both.
	input := `{"big":9007199254740993,"precise":0.1234567890123456789,"exp":1e100}`

	rec, err := Parse([]byte(input))
	require.NoError(t, err)

	big, ok := rec.Get("big")
	require.True(t, ok)
	assert.Equal(t, json.Number("9007199254740993"), big)

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "not json at all"},
		{"array", `[1,2,3]`},
		{"scalar", `42`},
		{"truncated object", `{"a":`},
		{"trailing garbage", `{"a":1} extra`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, datatools.ErrMalformedRecord),
				"expected ErrMalformedRecord, got %v", err)
		})
	}
}

func TestRecord_SetReplacesInPlace(t *testing.T) {
	rec := New()
	rec.Set("a", 1)
	rec.Set("b", 2)
	rec.Set("a", 3)

	require.Equal(t, 2, rec.Len())
	fields := rec.Fields()
	assert.Equal(t, "a", fields[0].Key)
	assert.Equal(t, 3, fields[0].Value, "last write wins")
	assert.Equal(t, "b", fields[1].Key)
}

func TestRecord_Delete(t *testing.T) {
	rec, err := Parse([]byte(`{"a":1,"b":2,"c":3}`))
	require.NoError(t, err)

	assert.True(t, rec.Delete("b"))
	assert.False(t, rec.Delete("b"))
	assert.Equal(t, 2, rec.Len())

	// Index must stay consistent after deletion.
	c, ok := rec.Get("c")
	require.True(t, ok)
	assert.Equal(t, json.Number("3"), c)

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"c":3}`, string(out))
}

func TestRecord_UnmarshalJSON(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"x":"y"}`), &rec))

	v, ok := rec.Get("x")
	require.True(t, ok)
	assert.Equal(t, "y", v)
}

func TestParse_DuplicateKeysLastWriteWins(t *testing.T) {
	rec, err := Parse([]byte(`{"a":1,"b":2,"a":3}`))
	require.NoError(t, err)

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"a":3,"b":2}`, string(out))
}
