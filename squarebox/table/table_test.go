package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTable(t *testing.T) {
	tbl := Default()
	assert.Equal(t, 512, tbl.Len())

	for i := 0; i < tbl.Len(); i++ {
		assert.NotZero(t, tbl.At(i), "period at %d must be positive", i)
	}

	// A4 at 100kHz
	assert.Equal(t, uint16(227), tbl.At(69*NoteSteps))
	// entries sharing a note are equal, notes descend in period
	assert.Equal(t, tbl.At(60*NoteSteps), tbl.At(60*NoteSteps+3))
	assert.Greater(t, tbl.At(60*NoteSteps), tbl.At(61*NoteSteps))
}

func TestTable_AtClamps(t *testing.T) {
	tbl := New([]uint16{440, 523, 659})

	assert.Equal(t, uint16(440), tbl.At(0))
	assert.Equal(t, uint16(659), tbl.At(2))
	assert.Equal(t, uint16(659), tbl.At(3))
	assert.Equal(t, uint16(659), tbl.At(1000))
	assert.Equal(t, uint16(440), tbl.At(-1))
}

func TestTable_NewRejectsBadInput(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
	assert.Panics(t, func() { New([]uint16{10, 0, 5}) })
}

func TestNoteNames(t *testing.T) {
	tests := []struct {
		midi int
		want string
	}{
		{69, "A4"},
		{60, "C4"},
		{0, "C-1"},
		{127, "G9"},
		{-3, "?"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NoteName(tt.midi))
	}

	assert.Equal(t, "A4", NoteAt(69*NoteSteps+2))
	assert.Equal(t, "A4", NearestNote(227))
	assert.Equal(t, "A4", NearestNote(226))
	assert.Equal(t, "?", NoteAt(len(Periods)))
}
