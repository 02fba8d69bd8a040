package transform

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confluentinc/data-tools/internal/files/filesystem"
	"github.com/confluentinc/data-tools/internal/record"
	"github.com/confluentinc/data-tools/internal/sanitize"
	"github.com/confluentinc/data-tools/pkg/datatools"
)

// cleanOnly is a RecordFunc that sanitizes keys without metric shaping,
// keeping file-level tests independent of the usage-metrics schema.
func cleanOnly(rec *record.Record, policy *sanitize.Policy) (*record.Record, error) {
	return CleanKeys(rec, policy), nil
}

func gzipContent(t *testing.T, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func gunzipContent(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer zr.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(zr)
	require.NoError(t, err)
	return buf.String()
}

func TestFile_PlainJSONL(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")
	mfs.AddFile("data/events.json", []byte(`{"user-id":"u1","n":1}`+"\n"+`{"user-id":"u2","n":2}`+"\n"))

	records, err := File(mfs, "/work/data/events.json", "/work/out/events.json", nil, cleanOnly)
	require.NoError(t, err)
	assert.Equal(t, 2, records)

	out, err := mfs.ReadFile("/work/out/events.json")
	require.NoError(t, err)
	assert.Equal(t, `{"user_id":"u1","n":1}`+"\n"+`{"user_id":"u2","n":2}`+"\n", string(out))
}

func TestFile_GzipRoundTrip(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")
	mfs.AddFile("data/events.json.gz", gzipContent(t, `{"event.type":"login"}`+"\n"))

	records, err := File(mfs, "/work/data/events.json.gz", "/work/out/events.json.gz", nil, cleanOnly)
	require.NoError(t, err)
	assert.Equal(t, 1, records)

	out, err := mfs.ReadFile("/work/out/events.json.gz")
	require.NoError(t, err)
	assert.Equal(t, `{"event_type":"login"}`+"\n", gunzipContent(t, out))
}

func TestFile_SkipsBlankLines(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")
	mfs.AddFile("data/sparse.json", []byte(`{"a":1}`+"\n\n   \n"+`{"b":2}`+"\n"))

	records, err := File(mfs, "/work/data/sparse.json", "/work/out/sparse.json", nil, cleanOnly)
	require.NoError(t, err)
	assert.Equal(t, 2, records)
}

func TestFile_MalformedRecordPublishesNothing(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")
	mfs.AddFile("data/bad.json", []byte(`{"a":1}`+"\n"+`not a record`+"\n"))

	_, err := File(mfs, "/work/data/bad.json", "/work/out/bad.json", nil, cleanOnly)
	require.Error(t, err)
	assert.True(t, errors.Is(err, datatools.ErrMalformedRecord))
	assert.Contains(t, err.Error(), "line 2")

	_, statErr := mfs.Stat("/work/out/bad.json")
	assert.True(t, errors.Is(statErr, fs.ErrNotExist), "no partial output may be published")
}

func TestFile_MissingInput(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")

	_, err := File(mfs, "/work/data/nope.json", "/work/out/nope.json", nil, cleanOnly)
	require.Error(t, err)
}

func TestFile_OverwritesExistingOutput(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")
	mfs.AddFile("data/events.json", []byte(`{"a":1}`+"\n"))
	mfs.AddFile("out/events.json", []byte("stale\n"))

	_, err := File(mfs, "/work/data/events.json", "/work/out/events.json", nil, cleanOnly)
	require.NoError(t, err)

	out, err := mfs.ReadFile("/work/out/events.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`+"\n", string(out))
}

func TestFile_PolicyApplied(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")
	mfs.AddFile("data/events.json", []byte(`{"keep":1,"_internal_debug":"x"}`+"\n"))

	policy := sanitize.NewPolicy([]string{"-_internal_debug"})
	_, err := File(mfs, "/work/data/events.json", "/work/out/events.json", policy, cleanOnly)
	require.NoError(t, err)

	out, err := mfs.ReadFile("/work/out/events.json")
	require.NoError(t, err)
	assert.Equal(t, `{"keep":1}`+"\n", string(out))
}
