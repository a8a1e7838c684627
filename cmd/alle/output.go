package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// printer renders command results either as aligned columns or as YAML.
type printer struct {
	w    io.Writer
	yaml bool
}

func newPrinter(w io.Writer, format string) (*printer, error) {
	switch format {
	case "", "table":
		return &printer{w: w}, nil
	case "yaml":
		return &printer{w: w, yaml: true}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (use table or yaml)", format)
}

// print writes v as YAML, or calls table with a tab separated writer.
func (p *printer) print(v interface{}, table func(w io.Writer)) error {
	if p.yaml {
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

func (p *printer) line(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format+"\n", args...)
}
