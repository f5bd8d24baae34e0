package gather

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/hayeah/gather/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_RecordFormat(t *testing.T) {
	dir := createTestDirectory(t, map[string]string{"a.txt": "hello\nworld"})

	var buf bytes.Buffer
	agg := NewAggregator(&buf, nil)
	require.NoError(t, agg.Write(OutputRecord{Heading: "a.txt", Path: filepath.Join(dir, "a.txt")}))

	assert.Equal(t, "=== a.txt ===\n\nhello\nworld\n\n\f\n\n", buf.String())
	assert.Equal(t, 1, agg.Count())
}

func TestAggregator_OneHeadingAndBreakPerRecord(t *testing.T) {
	assert := assert.New(t)
	dir := createTestDirectory(t, map[string]string{
		"one.cpp":       "int one;",
		"two/two.h":     "",
		"three/three.c": "three\n",
	})

	records := []OutputRecord{
		{Heading: "one.cpp", Path: filepath.Join(dir, "one.cpp")},
		{Heading: "two/two.h", Path: filepath.Join(dir, "two", "two.h")},
		{Heading: "three.c", Path: filepath.Join(dir, "three", "three.c")},
	}

	var buf bytes.Buffer
	agg := NewAggregator(&buf, nil)
	for _, rec := range records {
		assert.NoError(agg.Write(rec))
	}
	out := buf.String()

	assert.Equal(len(records), strings.Count(out, "\f"))
	headings := regexp.MustCompile(`(?m)^=== (.*) ===$`).FindAllStringSubmatch(out, -1)
	if assert.Len(headings, len(records)) {
		for i, rec := range records {
			assert.Equal(rec.Heading, headings[i][1])
		}
	}
}

func TestAggregator_DropsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mixed.txt")
	content := append([]byte{'a', 0xff, 'b', 0xe2, 0x82, 'c', 0xc0}, []byte("é日本\n")...)
	require.NoError(t, os.WriteFile(path, content, 0644))

	var buf bytes.Buffer
	require.NoError(t, NewAggregator(&buf, nil).Write(OutputRecord{Heading: "mixed", Path: path}))
	assert.Equal(t, "=== mixed ===\n\nabcé日本\n"+pageBreak, buf.String())
}

func TestAggregator_LargeMultibyteContent(t *testing.T) {
	// longer than the transform buffer so runes straddle read boundaries
	text := strings.Repeat("日本語のテキスト", 2000)
	dir := createTestDirectory(t, map[string]string{"big.txt": text})

	var buf bytes.Buffer
	require.NoError(t, NewAggregator(&buf, nil).Write(OutputRecord{Heading: "big", Path: filepath.Join(dir, "big.txt")}))
	assert.Equal(t, "=== big ===\n\n"+text+pageBreak, buf.String())
}

func TestAggregator_ReadFailureWritesNothing(t *testing.T) {
	assert := assert.New(t)
	missing := filepath.Join(t.TempDir(), "gone.txt")

	var buf bytes.Buffer
	agg := NewAggregator(&buf, nil)
	err := agg.Write(OutputRecord{Heading: "gone.txt", Path: missing})

	var readErr *ReadError
	if assert.True(errors.As(err, &readErr)) {
		assert.Equal(missing, readErr.Path)
	}
	assert.True(errors.Is(err, fs.ErrNotExist))
	assert.Zero(buf.Len())
	assert.Zero(agg.Count())
}

func TestAggregator_RecordsMetrics(t *testing.T) {
	assert := assert.New(t)
	dir := createTestDirectory(t, map[string]string{"a.txt": "12345678", "b.txt": "1234"})

	m := metrics.NewOutputMetrics(metrics.SimpleCounter{}, 2)
	agg := NewAggregator(&bytes.Buffer{}, m)
	assert.NoError(agg.Write(OutputRecord{Heading: "first", Path: filepath.Join(dir, "a.txt")}))
	assert.NoError(agg.Write(OutputRecord{Heading: "second", Path: filepath.Join(dir, "b.txt")}))
	m.Wait()

	items := m.Items()
	if assert.Len(items, 2) {
		assert.Equal("first", items[0].Key)
		assert.Equal(8, items[0].Bytes)
		assert.Equal("second", items[1].Key)
		assert.Equal(1, items[1].Tokens)
	}
}
