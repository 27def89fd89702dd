package table

import "fmt"

//go:generate go run ../../cmd/gen_period_table -out periods.go

// Table is a read-only sequence of periods indexed by note index.
type Table struct {
	periods []uint16
}

// Default returns the generated chromatic table.
func Default() Table {
	return Table{periods: Periods[:]}
}

// New wraps a caller-supplied table. The slice must not be modified
// afterwards; an empty table or a zero period panics.
func New(periods []uint16) Table {
	if len(periods) == 0 {
		panic("table: empty period table")
	}
	for i, p := range periods {
		if p == 0 {
			panic(fmt.Sprintf("table: zero period at index %d", i))
		}
	}
	return Table{periods: periods}
}

func (t Table) Len() int {
	return len(t.periods)
}

// At returns the period for index, clamping to the last entry when index is
// past the end.
func (t Table) At(index int) uint16 {
	if index >= len(t.periods) {
		index = len(t.periods) - 1
	}
	if index < 0 {
		index = 0
	}
	return t.periods[index]
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the scientific pitch name of a MIDI note, e.g. 69 -> "A4".
func NoteName(midi int) string {
	if midi < 0 {
		return "?"
	}
	return fmt.Sprintf("%s%d", noteNames[midi%12], midi/12-1)
}

// NoteAt names the note that the default table holds at index.
func NoteAt(index int) string {
	if index < 0 || index >= len(Periods) {
		return "?"
	}
	return NoteName(index / NoteSteps)
}

// NearestNote names the default-table note whose period is closest to
// period. Used for display only.
func NearestNote(period uint16) string {
	best, bestDiff := 0, -1
	for i := 0; i < len(Periods); i += NoteSteps {
		d := int(Periods[i]) - int(period)
		if d < 0 {
			d = -d
		}
		if bestDiff < 0 || d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return NoteAt(best)
}
