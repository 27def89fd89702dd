package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"math"
	"os"
	"path/filepath"
)

func main() {
	var (
		out      string
		tickRate float64
		size     int
		steps    int
		tuning   float64
	)
	flag.StringVar(&out, "out", filepath.Join("squarebox", "table", "periods.go"), "Path of the generated Go file")
	flag.Float64Var(&tickRate, "tick-rate", 100000, "Scheduler tick rate in Hz")
	flag.IntVar(&size, "size", 512, "Number of table entries")
	flag.IntVar(&steps, "steps", 4, "Consecutive entries sharing one MIDI note")
	flag.Float64Var(&tuning, "a4", 440, "Reference pitch of MIDI note 69 in Hz")
	flag.Parse()

	if steps <= 0 || size <= 0 {
		fmt.Fprintln(os.Stderr, "error: size and steps must be positive")
		os.Exit(1)
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by cmd/gen_period_table; DO NOT EDIT.\n\n")
	buf.WriteString("package table\n\n")
	fmt.Fprintf(&buf, "// TickRate is the scheduler tick rate the periods are expressed in.\n")
	fmt.Fprintf(&buf, "const TickRate = %d\n\n", int(tickRate))
	fmt.Fprintf(&buf, "// NoteSteps is the number of consecutive entries that share one MIDI note.\n")
	fmt.Fprintf(&buf, "const NoteSteps = %d\n\n", steps)
	fmt.Fprintf(&buf, "// Periods maps a note index to a period in ticks; entry i is MIDI note i/%d.\n", steps)
	fmt.Fprintf(&buf, "var Periods = [%d]uint16{\n", size)
	for i := 0; i < size; i++ {
		note := float64(i / steps)
		freq := tuning * math.Pow(2, (note-69)/12)
		period := math.Round(tickRate / freq)
		if period < 1 {
			period = 1
		}
		if period > math.MaxUint16 {
			fmt.Fprintf(os.Stderr, "error: period for note %v exceeds 16 bits\n", note)
			os.Exit(1)
		}
		if i%8 == 0 {
			buf.WriteString("\t")
		}
		fmt.Fprintf(&buf, "%d,", int(period))
		if i%8 == 7 || i == size-1 {
			buf.WriteString("\n")
		} else {
			buf.WriteString(" ")
		}
	}
	buf.WriteString("}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: formatting output: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(out, src, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "error: writing %s: %v\n", out, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d periods to %s\n", size, out)
}
