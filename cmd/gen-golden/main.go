package main

import (
	"fmt"
	"os"

	"pkt.systems/cat/internal/golden"
)

func main() {
	root := "testdata"
	cases, err := golden.Collect(root)
	if err != nil {
		fatalf("collect %s: %v", root, err)
	}
	if len(cases) == 0 {
		fatalf("no golden files found under %s", root)
	}
	for _, c := range cases {
		out, err := golden.Render(c)
		if err != nil {
			fatalf("render %s: %v", c.Name, err)
		}
		if err := os.WriteFile(c.Golden, out, 0o644); err != nil {
			fatalf("write %s: %v", c.Golden, err)
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", c.Golden)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
