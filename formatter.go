package cat

import "strconv"

// State is the formatting state carried from line to line and from source to
// source within one run.
type State struct {
	// LineNumber is the number given to the next numbered line.
	LineNumber int64
	// ConsecutiveBlanks counts the blank lines seen since the last non-blank
	// line. Only maintained while squeezing.
	ConsecutiveBlanks int
}

// NewState returns the state for the start of a run.
func NewState() *State {
	return &State{LineNumber: 1}
}

// FormatLine appends the formatted form of line to dst and advances st.
// A line dropped by blank squeezing leaves dst unchanged.
func FormatLine(dst, line []byte, opts Options, st *State) []byte {
	f := Formatter{opts: opts, state: st}
	return f.Format(dst, line)
}

// Formatter applies Options to lines using reusable scratch buffers. The zero
// value is not usable; construct with NewFormatter.
type Formatter struct {
	opts    Options
	state   *State
	scratch [2][]byte
}

// NewFormatter returns a Formatter that advances st. A nil st starts a new run.
func NewFormatter(opts Options, st *State) *Formatter {
	if st == nil {
		st = NewState()
	}
	return &Formatter{opts: opts, state: st}
}

// Options returns the options the formatter applies.
func (f *Formatter) Options() Options { return f.opts }

// State returns the state the formatter advances.
func (f *Formatter) State() *State { return f.state }

// Format appends the formatted form of line to dst. The steps run in a fixed
// order: squeeze, end marker, non-printing escape, tab escape, number. The
// end marker goes in before escaping so it stays next to the terminator, and
// the number goes on last so it is never escaped.
func (f *Formatter) Format(dst, line []byte) []byte {
	opts := f.opts
	st := f.state
	blank := len(line) == 1 && line[0] == '\n'

	if opts.SqueezeBlank {
		if blank {
			st.ConsecutiveBlanks++
			if st.ConsecutiveBlanks > 1 {
				return dst
			}
		} else {
			st.ConsecutiveBlanks = 0
		}
	}

	cur := line
	next := 0
	if opts.ShowEnds {
		f.scratch[next] = AppendShowEnds(f.scratch[next][:0], cur)
		cur = f.scratch[next]
		next ^= 1
	}
	if opts.ShowNonPrinting {
		f.scratch[next] = AppendNonPrinting(f.scratch[next][:0], cur)
		cur = f.scratch[next]
		next ^= 1
	}
	if opts.ShowTabs {
		f.scratch[next] = AppendTabs(f.scratch[next][:0], cur)
		cur = f.scratch[next]
	}

	if opts.Number || (opts.NumberNonblank && !blank) {
		dst = strconv.AppendInt(dst, st.LineNumber, 10)
		dst = append(dst, ' ')
		st.LineNumber++
	}
	return append(dst, cur...)
}
