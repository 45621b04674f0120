// Package cat concatenates byte streams and optionally formats them for display.
//
// The package is a byte-exact rendition of the classic cat utility. Sources are
// read one line at a time and written to a single output, either untouched or
// through a line formatter that can number lines, squeeze repeated blank lines,
// mark line ends and render control bytes in caret and meta notation.
//
// Core properties:
//   - Streaming line-at-a-time processing from io.Reader sources
//   - Formatting state (line number, blank run) carried across sources
//   - Pure, allocation-free byte transforms usable on their own
//   - Raw passthrough when no formatting is requested
//
// Example:
//
//	opts := cat.Resolve(cat.Flags{Number: true, ShowEnds: true})
//	err := cat.Concatenate(cat.Request{
//		Sources: []string{"a.txt", "-", "b.txt"},
//		Stdin:   os.Stdin,
//		Writer:  os.Stdout,
//		Options: opts,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// The driver can be customized using Options such as WithLogger and
// WithLineFlush.
package cat
