package cat

import "fmt"

// Flags holds the raw command-line booleans before alias resolution.
type Flags struct {
	ShowAll         bool // -A
	NumberNonblank  bool // -b
	E               bool // -e
	ShowEnds        bool // -E
	Number          bool // -n
	SqueezeBlank    bool // -s
	T               bool // -t
	ShowTabs        bool // -T
	Unbuffered      bool // -u, accepted and ignored
	ShowNonPrinting bool // -v
}

// Options is the canonical set of transformations for one run.
type Options struct {
	NumberNonblank  bool
	Number          bool
	ShowEnds        bool
	SqueezeBlank    bool
	ShowTabs        bool
	ShowNonPrinting bool
}

// Resolve folds the alias flags into their effects. Rules are applied in a
// fixed order so the result does not depend on the order flags were given.
func Resolve(f Flags) Options {
	opts := Options{
		NumberNonblank:  f.NumberNonblank,
		Number:          f.Number,
		ShowEnds:        f.ShowEnds,
		SqueezeBlank:    f.SqueezeBlank,
		ShowTabs:        f.ShowTabs,
		ShowNonPrinting: f.ShowNonPrinting,
	}
	if f.E {
		opts.ShowEnds = true
		opts.ShowNonPrinting = true
	}
	if f.T {
		opts.ShowNonPrinting = true
		opts.ShowTabs = true
	}
	if f.ShowAll {
		opts.ShowEnds = true
		opts.ShowNonPrinting = true
		opts.ShowTabs = true
	}
	if opts.NumberNonblank {
		opts.Number = false
	}
	return opts
}

// Active reports whether any transformation is enabled. When it is false the
// driver copies input to output untouched.
func (o Options) Active() bool {
	return o.NumberNonblank || o.Number || o.ShowEnds || o.SqueezeBlank || o.ShowTabs || o.ShowNonPrinting
}

// FlagsFromShort builds Flags from a run of short option letters such as
// "Asn". The word "none" yields the zero value.
func FlagsFromShort(letters string) (Flags, error) {
	var f Flags
	if letters == "none" {
		return f, nil
	}
	for i := 0; i < len(letters); i++ {
		switch letters[i] {
		case 'A':
			f.ShowAll = true
		case 'b':
			f.NumberNonblank = true
		case 'e':
			f.E = true
		case 'E':
			f.ShowEnds = true
		case 'n':
			f.Number = true
		case 's':
			f.SqueezeBlank = true
		case 't':
			f.T = true
		case 'T':
			f.ShowTabs = true
		case 'u':
			f.Unbuffered = true
		case 'v':
			f.ShowNonPrinting = true
		default:
			return Flags{}, fmt.Errorf("unknown option letter %q", letters[i])
		}
	}
	return f, nil
}
