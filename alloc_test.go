package cat

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcatenateAllocations(t *testing.T) {
	data := benchInput()
	opts := Resolve(Flags{ShowAll: true, Number: true, SqueezeBlank: true})
	reader := bytes.NewReader(data)
	allocs := testing.AllocsPerRun(50, func() {
		reader.Reset(data)
		_ = Concatenate(Request{Stdin: reader, Writer: io.Discard, Options: opts})
	})
	// Per-call setup only; nothing may allocate per line.
	assert.LessOrEqual(t, allocs, float64(40), "too many allocations per Concatenate")
}
