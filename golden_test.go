package cat_test

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pkt.systems/cat/internal/golden"
)

func TestGoldenOutputs(t *testing.T) {
	cases, err := golden.Collect("testdata")
	require.NoError(t, err, "collect goldens")
	require.NotEmpty(t, cases, "no golden files found under testdata")
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			want, err := os.ReadFile(c.Golden)
			require.NoError(t, err, "read golden %s", c.Golden)
			got, err := golden.Render(c)
			require.NoError(t, err, "render %s", c.Name)
			assert.Empty(t, cmp.Diff(string(want), string(got)), "golden mismatch %s (-want +got)", c.Name)
		})
	}
}
