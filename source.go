package cat

import (
	"io"
	"os"
)

// StdinName is the source name that denotes standard input.
const StdinName = "-"

// OpenSource opens the named source. StdinName binds to stdin, which is
// returned without a closer so repeated occurrences keep reading the same
// stream. Any other name is opened as a file.
func OpenSource(name string, stdin io.Reader) (io.Reader, io.Closer, error) {
	if name == StdinName {
		if stdin == nil {
			return nil, nil, ErrNilStdin
		}
		return stdin, nil, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}
