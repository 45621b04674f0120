package cat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
)

// Request configures Concatenate.
type Request struct {
	// Sources are read in order. An empty list reads StdinName once.
	Sources []string
	// Stdin backs every StdinName source.
	Stdin  io.Reader
	Writer io.Writer
	// Options selects the transformations. The zero value copies input as is.
	Options Options
	// State continues numbering from an earlier run. Nil starts a new run.
	State  *State
	Config []Option
}

var (
	readerPool = sync.Pool{New: func() any { return bufio.NewReaderSize(nil, defaultBufferSize) }}
	writerPool = sync.Pool{New: func() any { return bufio.NewWriterSize(nil, defaultBufferSize) }}
	linePool   = sync.Pool{New: func() any { return &lineBuffers{} }}
)

type lineBuffers struct {
	line []byte
	out  []byte
}

// Concatenate copies every source to req.Writer in order, formatting lines
// according to req.Options. It stops at the first source that cannot be opened
// or read and returns a *SourceOpenError or *SourceReadError. Output produced
// before the failure is flushed; if that flush fails the *WriteError is joined
// to the source error.
func Concatenate(req Request) error {
	if req.Writer == nil {
		return fmt.Errorf("concatenate: %w", ErrNilWriter)
	}
	sources := req.Sources
	if len(sources) == 0 {
		sources = []string{StdinName}
	}
	if req.Stdin == nil && slices.Contains(sources, StdinName) {
		return fmt.Errorf("concatenate: %w", ErrNilStdin)
	}
	cfg := newConfig(req.Config)
	st := req.State
	if st == nil {
		st = NewState()
	}

	w := getWriter(req.Writer, cfg.bufferSize)
	bufs := linePool.Get().(*lineBuffers)
	d := &driver{
		cfg:       cfg,
		w:         w,
		active:    req.Options.Active(),
		formatter: NewFormatter(req.Options, st),
		bufs:      bufs,
	}

	var retErr error
	for _, name := range sources {
		if err := d.copySource(name, req.Stdin); err != nil {
			retErr = err
			goto done
		}
	}
	if err := w.Flush(); err != nil {
		retErr = &WriteError{Err: err}
	}
done:
	if retErr != nil {
		var we *WriteError
		if !errors.As(retErr, &we) {
			if ferr := w.Flush(); ferr != nil {
				retErr = errors.Join(retErr, &WriteError{Err: ferr})
			}
		}
	}
	putWriter(w, cfg.bufferSize)
	bufs.line = bufs.line[:0]
	bufs.out = bufs.out[:0]
	linePool.Put(bufs)
	return retErr
}

type driver struct {
	cfg       config
	w         *bufio.Writer
	active    bool
	formatter *Formatter
	bufs      *lineBuffers

	bytesIn  int64
	bytesOut int64
	lines    int64
}

func (d *driver) copySource(name string, stdin io.Reader) error {
	r, closer, err := OpenSource(name, stdin)
	if err != nil {
		return &SourceOpenError{Source: name, Err: err}
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	log := d.cfg.logger.With(slog.String("source", name))
	log.Debug("source opened")

	d.bytesIn, d.bytesOut, d.lines = 0, 0, 0
	br := getReader(r, d.cfg.bufferSize)
	defer putReader(br, d.cfg.bufferSize)

	if err := d.readLines(name, br); err != nil {
		log.Debug("source failed", slog.Any("error", err))
		return err
	}
	if err := d.w.Flush(); err != nil {
		return &WriteError{Err: err}
	}
	log.Debug("source done",
		slog.Int64("bytes_in", d.bytesIn),
		slog.Int64("bytes_out", d.bytesOut),
		slog.Int64("lines", d.lines),
	)
	return nil
}

// readLines splits br on line feeds, keeping the terminator. Raw copies pass
// buffer-sized pieces of an overlong line straight through; formatted copies
// join them so each line reaches the formatter whole.
func (d *driver) readLines(name string, br *bufio.Reader) error {
	line := d.bufs.line[:0]
	defer func() { d.bufs.line = line[:0] }()
	for {
		chunk, err := br.ReadSlice('\n')
		d.bytesIn += int64(len(chunk))
		if err == bufio.ErrBufferFull {
			if !d.active {
				if werr := d.write(chunk); werr != nil {
					return werr
				}
				continue
			}
			line = append(line, chunk...)
			continue
		}
		data := chunk
		if len(line) > 0 {
			line = append(line, chunk...)
			data = line
		}
		if len(data) > 0 {
			if werr := d.emit(data); werr != nil {
				return werr
			}
		}
		line = line[:0]
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return &SourceReadError{Source: name, Err: err}
		}
		// Flush before a read that may block so interactive input is echoed
		// promptly.
		if br.Buffered() == 0 {
			if ferr := d.w.Flush(); ferr != nil {
				return &WriteError{Err: ferr}
			}
		}
	}
}

func (d *driver) emit(line []byte) error {
	d.lines++
	out := line
	if d.active {
		d.bufs.out = d.formatter.Format(d.bufs.out[:0], line)
		out = d.bufs.out
	}
	if len(out) == 0 {
		return nil
	}
	if err := d.write(out); err != nil {
		return err
	}
	if d.cfg.lineFlush {
		if err := d.w.Flush(); err != nil {
			return &WriteError{Err: err}
		}
	}
	return nil
}

func (d *driver) write(p []byte) error {
	n, err := d.w.Write(p)
	d.bytesOut += int64(n)
	if err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

func getReader(r io.Reader, size int) *bufio.Reader {
	if size != defaultBufferSize {
		return bufio.NewReaderSize(r, size)
	}
	br := readerPool.Get().(*bufio.Reader)
	br.Reset(r)
	return br
}

func putReader(br *bufio.Reader, size int) {
	br.Reset(nil)
	if size == defaultBufferSize {
		readerPool.Put(br)
	}
}

func getWriter(w io.Writer, size int) *bufio.Writer {
	if size != defaultBufferSize {
		return bufio.NewWriterSize(w, size)
	}
	bw := writerPool.Get().(*bufio.Writer)
	bw.Reset(w)
	return bw
}

func putWriter(bw *bufio.Writer, size int) {
	bw.Reset(nil)
	if size == defaultBufferSize {
		writerPool.Put(bw)
	}
}
