package cat

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConcatenateNumbersAcrossSources(t *testing.T) {
	lines := make([]string, 9)
	for i := range lines {
		lines[i] = "line"
	}
	path := writeTemp(t, "a.txt", strings.Join(lines, "\n")+"\n")

	var out bytes.Buffer
	err := Concatenate(Request{
		Sources: []string{path, StdinName, path},
		Stdin:   strings.NewReader("test\n"),
		Writer:  &out,
		Options: Options{Number: true},
	})
	require.NoError(t, err)

	var want strings.Builder
	for i := 1; i <= 19; i++ {
		text := "line"
		if i == 10 {
			text = "test"
		}
		want.WriteString(strconv.Itoa(i) + " " + text + "\n")
	}
	assert.Equal(t, want.String(), out.String())
}

func TestConcatenateDefaultsToStdin(t *testing.T) {
	var out bytes.Buffer
	err := Concatenate(Request{
		Stdin:   strings.NewReader("a\n\n\nb"),
		Writer:  &out,
		Options: Options{SqueezeBlank: true, ShowEnds: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "a$\n$\nb", out.String())
}

func TestConcatenatePassthroughIsByteExact(t *testing.T) {
	data := []byte{0x00, 0xff, '\t', '\n', '\n', 0x7f, 0x8a, 'z'}
	path := writeTemp(t, "bin", string(data))
	var out bytes.Buffer
	err := Concatenate(Request{
		Sources: []string{path, StdinName},
		Stdin:   bytes.NewReader(data),
		Writer:  &out,
	})
	require.NoError(t, err)
	assert.Equal(t, append(append([]byte{}, data...), data...), out.Bytes())
}

func TestConcatenateRepeatedStdinReadsOnce(t *testing.T) {
	var out bytes.Buffer
	err := Concatenate(Request{
		Sources: []string{StdinName, StdinName},
		Stdin:   strings.NewReader("x\n"),
		Writer:  &out,
		Options: Options{Number: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "1 x\n", out.String())
}

func TestConcatenateLongLines(t *testing.T) {
	long := strings.Repeat("abcdefgh\t", 40)
	in := long + "\n" + long

	var formatted bytes.Buffer
	err := Concatenate(Request{
		Stdin:   strings.NewReader(in),
		Writer:  &formatted,
		Options: Options{Number: true, ShowEnds: true, ShowTabs: true},
		Config:  []Option{WithBufferSize(16)},
	})
	require.NoError(t, err)
	esc := strings.ReplaceAll(long, "\t", "^I")
	assert.Equal(t, "1 "+esc+"$\n2 "+esc, formatted.String())

	var raw bytes.Buffer
	err = Concatenate(Request{
		Stdin:  strings.NewReader(in),
		Writer: &raw,
		Config: []Option{WithBufferSize(16)},
	})
	require.NoError(t, err)
	assert.Equal(t, in, raw.String())
}

func TestConcatenateContinuesCallerState(t *testing.T) {
	st := &State{LineNumber: 10}
	var out bytes.Buffer
	err := Concatenate(Request{
		Stdin:   strings.NewReader("a\nb\n"),
		Writer:  &out,
		Options: Options{Number: true},
		State:   st,
	})
	require.NoError(t, err)
	assert.Equal(t, "10 a\n11 b\n", out.String())
	assert.Equal(t, int64(12), st.LineNumber)
}

func TestConcatenateOpenErrorStopsRun(t *testing.T) {
	path := writeTemp(t, "a.txt", "one\n")
	missing := filepath.Join(t.TempDir(), "missing.txt")

	var out bytes.Buffer
	err := Concatenate(Request{
		Sources: []string{path, missing, path},
		Writer:  &out,
		Options: Options{Number: true},
	})
	require.Error(t, err)

	var openErr *SourceOpenError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, missing, openErr.Source)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, missing+": no such file or directory", err.Error())
	assert.Equal(t, "1 one\n", out.String())
}

var errBoom = errors.New("boom")

type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) > 0 {
		n := copy(p, r.data)
		r.data = r.data[n:]
		return n, nil
	}
	return 0, r.err
}

func TestConcatenateReadErrorStopsRun(t *testing.T) {
	path := writeTemp(t, "after.txt", "after\n")
	var out bytes.Buffer
	err := Concatenate(Request{
		Sources: []string{StdinName, path},
		Stdin:   &failingReader{data: []byte("abc\nde"), err: errBoom},
		Writer:  &out,
		Options: Options{ShowEnds: true},
	})
	var readErr *SourceReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, StdinName, readErr.Source)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, "-: boom", err.Error())
	assert.Equal(t, "abc$\nde", out.String())
}

func TestConcatenateDirectoryIsReadError(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	err := Concatenate(Request{Sources: []string{dir}, Writer: &out})
	var readErr *SourceReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, dir, readErr.Source)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errBoom }

func TestConcatenateFlushFailureJoinsSourceError(t *testing.T) {
	err := Concatenate(Request{
		Stdin:  &failingReader{data: []byte("abc"), err: errBoom},
		Writer: failingWriter{},
	})
	var readErr *SourceReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, StdinName, readErr.Source)
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.ErrorIs(t, writeErr, errBoom)
	assert.Equal(t, "-: boom\nwrite error: boom", err.Error())
}

func openDescriptors(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skipf("cannot list open descriptors: %v", err)
	}
	return len(entries)
}

func TestConcatenateClosesSourcesOnError(t *testing.T) {
	path := writeTemp(t, "a.txt", "one\ntwo\n")
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")

	before := openDescriptors(t)
	for i := 0; i < 50; i++ {
		err := Concatenate(Request{Sources: []string{path, dir}, Writer: io.Discard, Options: Options{Number: true}})
		var readErr *SourceReadError
		require.ErrorAs(t, err, &readErr)

		err = Concatenate(Request{Sources: []string{path, missing}, Writer: io.Discard})
		var openErr *SourceOpenError
		require.ErrorAs(t, err, &openErr)

		err = Concatenate(Request{Sources: []string{path, path}, Writer: failingWriter{}})
		var writeErr *WriteError
		require.ErrorAs(t, err, &writeErr)
	}
	assert.Equal(t, before, openDescriptors(t), "descriptors leaked")
}

func TestConcatenateWriteError(t *testing.T) {
	err := Concatenate(Request{
		Stdin:  strings.NewReader("a\nb\n"),
		Writer: failingWriter{},
	})
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, "write error: boom", err.Error())
}

func TestConcatenateValidatesRequest(t *testing.T) {
	err := Concatenate(Request{Stdin: strings.NewReader("")})
	assert.ErrorIs(t, err, ErrNilWriter)

	err = Concatenate(Request{Writer: io.Discard})
	assert.ErrorIs(t, err, ErrNilStdin)

	path := writeTemp(t, "a.txt", "a\n")
	err = Concatenate(Request{Sources: []string{path}, Writer: io.Discard})
	assert.NoError(t, err)
}

type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

func TestConcatenateLineFlush(t *testing.T) {
	var buffered countingWriter
	err := Concatenate(Request{
		Stdin:   strings.NewReader("a\nb\nc\n"),
		Writer:  &buffered,
		Options: Options{Number: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, buffered.writes)

	var flushed countingWriter
	err = Concatenate(Request{
		Stdin:   strings.NewReader("a\nb\nc\n"),
		Writer:  &flushed,
		Options: Options{Number: true},
		Config:  []Option{WithLineFlush(true)},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, flushed.writes)
	assert.Equal(t, buffered.String(), flushed.String())
}

func TestConcatenateLogsSources(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	err := Concatenate(Request{
		Stdin:  strings.NewReader("a\nb\n"),
		Writer: io.Discard,
		Config: []Option{WithLogger(logger)},
	})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `msg="source opened" source=-`)
	assert.Contains(t, logs.String(), "bytes_in=4 bytes_out=4 lines=2")
}

func TestOpenSource(t *testing.T) {
	stdin := strings.NewReader("in")
	r, closer, err := OpenSource(StdinName, stdin)
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.Same(t, stdin, r)

	_, _, err = OpenSource(StdinName, nil)
	assert.ErrorIs(t, err, ErrNilStdin)

	path := writeTemp(t, "f.txt", "file")
	r, closer, err = OpenSource(path, nil)
	require.NoError(t, err)
	require.NotNil(t, closer)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "file", string(data))
	require.NoError(t, closer.Close())
}
