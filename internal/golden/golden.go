package golden

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pkt.systems/cat"
)

// Case is one golden output: a set of inputs rendered with a run of short
// option letters. Golden files are named <base>.<letters>.golden.
type Case struct {
	Name    string
	Letters string
	Golden  string
	Sources []string
	Stdin   []byte
}

// Collect finds every golden file under root and resolves its inputs. A base
// reads <base>.sources (one source per line, "-" for stdin) when present and
// <base>.txt otherwise; <base>.stdin, when present, feeds standard input.
func Collect(root string) ([]Case, error) {
	paths, err := filepath.Glob(filepath.Join(root, "*.golden"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	cases := make([]Case, 0, len(paths))
	for _, path := range paths {
		c, err := load(root, path)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func load(root, goldenPath string) (Case, error) {
	name := strings.TrimSuffix(filepath.Base(goldenPath), ".golden")
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return Case{}, fmt.Errorf("golden %s: expected <base>.<letters>.golden", goldenPath)
	}
	base, letters := name[:idx], name[idx+1:]
	c := Case{Name: name, Letters: letters, Golden: goldenPath}

	list, err := os.ReadFile(filepath.Join(root, base+".sources"))
	switch {
	case err == nil:
		for _, line := range strings.Split(string(list), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if line != cat.StdinName {
				line = filepath.Join(root, line)
			}
			c.Sources = append(c.Sources, line)
		}
	case errors.Is(err, fs.ErrNotExist):
		c.Sources = []string{filepath.Join(root, base+".txt")}
	default:
		return Case{}, fmt.Errorf("golden %s: %w", goldenPath, err)
	}

	stdin, err := os.ReadFile(filepath.Join(root, base+".stdin"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Case{}, fmt.Errorf("golden %s: %w", goldenPath, err)
	}
	c.Stdin = stdin
	return c, nil
}

// Render produces the output for c.
func Render(c Case) ([]byte, error) {
	flags, err := cat.FlagsFromShort(c.Letters)
	if err != nil {
		return nil, fmt.Errorf("golden %s: %w", c.Name, err)
	}
	var out bytes.Buffer
	err = cat.Concatenate(cat.Request{
		Sources: c.Sources,
		Stdin:   bytes.NewReader(c.Stdin),
		Writer:  &out,
		Options: cat.Resolve(flags),
	})
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
