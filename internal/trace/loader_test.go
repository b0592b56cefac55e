package trace

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrace() *Trace {
	return &Trace{Planes: []Plane{{
		ID:   1,
		Name: "gpu0",
		Lines: []Line{{
			ID: 0,
			Events: []Event{{
				Kind:       2,
				Name:       "matmul",
				StartNs:    100,
				DurationNs: 50,
				Attrs:      []Attr{{Kind: 1, Value: Int64Value(7)}},
			}},
		}},
	}}}
}

func TestCodecRoundTrip(t *testing.T) {
	data, err := Marshal(sampleTrace())
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, sampleTrace(), got)
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	_, err := Unmarshal([]byte("not json"))
	assert.Error(t, err)
}

func TestLoadPlainFile(t *testing.T) {
	data, err := Marshal(sampleTrace())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "plain.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, sampleTrace(), got)
}

func TestLoadGzipFile(t *testing.T) {
	data, err := Marshal(sampleTrace())
	require.NoError(t, err)

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "trace.json.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, sampleTrace(), got)
}

func TestLoadZstdFile(t *testing.T) {
	data, err := Marshal(sampleTrace())
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "trace.json.zst")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, sampleTrace(), got)
}

func TestDecompressPassthrough(t *testing.T) {
	data := []byte(`{"planes":[]}`)
	out, err := Decompress(data)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestFindFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "run1"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "run2", "sub"), 0o755))

	files := []string{
		"run1/a.trace.json",
		"run2/sub/b.trace.json",
		"run2/notes.txt",
		"top.trace.json",
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("{}"), 0o644))
	}

	got, err := FindFiles(dir, "**/*.trace.json")
	require.NoError(t, err)

	var rel []string
	for _, p := range got {
		r, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{"run1/a.trace.json", "run2/sub/b.trace.json", "top.trace.json"}, rel)
}
