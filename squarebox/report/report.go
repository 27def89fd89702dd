package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/valerio/go-squarebox/squarebox/debug"
	"github.com/valerio/go-squarebox/squarebox/table"
)

// PeriodTable writes one row per entry of t. With notesOnly set, only the
// entries that land exactly on a note of the default table are listed.
func PeriodTable(w io.Writer, t table.Table, notesOnly bool) error {
	st := newStyles()
	var sb strings.Builder

	sb.WriteString(st.header.Render(fmt.Sprintf("%5s  %6s  %10s  %-4s", "index", "period", "hz", "note")))
	sb.WriteByte('\n')

	step := 1
	if notesOnly {
		step = table.NoteSteps
	}
	for i := 0; i < t.Len(); i += step {
		p := t.At(i)
		note := ""
		if i%table.NoteSteps == 0 {
			note = st.note.Render(table.NoteAt(i))
		}
		fmt.Fprintf(&sb, "%5d  %6d  %10.2f  %s\n", i, p, float64(table.TickRate)/float64(p), note)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Summary writes a boxed overview of a finished run.
func Summary(w io.Writer, snap *debug.Snapshot) error {
	st := newStyles()
	row := func(label string, value any) string {
		return st.label.Render(fmt.Sprintf("%-14s", label)) + st.value.Render(fmt.Sprint(value))
	}

	adc := "gated"
	if !snap.Gated {
		adc = "ungated"
	}
	lost := row("lost ticks", snap.LostTicks)
	if snap.LostTicks > 0 {
		lost = st.label.Render(fmt.Sprintf("%-14s", "lost ticks")) + st.warn.Render(fmt.Sprint(snap.LostTicks))
	}

	lines := []string{
		st.header.Render("squarebox run"),
		row("ticks", snap.Ticks),
		row("seconds", fmt.Sprintf("%.3f", float64(snap.Ticks)/table.TickRate)),
		row("cycles", snap.Cycles),
		lost,
		row("adc", fmt.Sprintf("%s, %d samples, %d restarts", adc, snap.Samples, snap.Restarts)),
		row("audio samples", snap.AudioSamples),
		"",
	}
	for k, v := range snap.Voices {
		line := fmt.Sprintf("v%d %-4s %8.1f Hz  period %5d  width %5d  duty %5.1f%%  retunes %d",
			k, v.Note(), v.Frequency(), v.Period, v.PulseWidth, v.Duty(), v.Retunes)
		if v.Muted {
			line = st.muted.Render(line + "  muted")
		}
		lines = append(lines, line)
	}
	if len(snap.Serial) > 0 {
		lines = append(lines, "", st.header.Render("serial"))
		for _, l := range snap.Serial {
			lines = append(lines, "  "+l)
		}
	}

	_, err := fmt.Fprintln(w, st.box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	return err
}
