// Package terminal is an interactive monitor for the synth built on tcell.
// It shows the voices, the analog inputs and recent logs, and lets the
// user turn the simulated pots from the keyboard.
package terminal

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-squarebox/squarebox/backend"
	"github.com/valerio/go-squarebox/squarebox/debug"
)

const (
	minTermWidth  = 64
	minTermHeight = 22

	potMax     = 1023
	fineStep   = 16
	coarseStep = 128
	barWidth   = 20
	logEntries = 200
)

var (
	titleStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	textStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	selectedStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorTeal)
	mutedStyle    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	errorStyle    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Backend implements backend.Backend on a tcell screen.
type Backend struct {
	screen   tcell.Screen
	config   backend.Config
	logs     *LogBuffer
	logLevel slog.Level
	// prevLogger is the default logger Init displaced.
	prevLogger *slog.Logger

	selected int
	pots     [debug.Channels]int
	quit     bool
}

type Option func(*Backend)

// WithScreen uses s instead of the process terminal, e.g. a
// tcell.SimulationScreen in tests.
func WithScreen(s tcell.Screen) Option { return func(t *Backend) { t.screen = s } }

func New(opts ...Option) *Backend {
	t := &Backend{logLevel: slog.LevelInfo}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Backend) Init(config backend.Config) error {
	t.config = config

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	t.logs = NewLogBuffer(logEntries)
	t.prevLogger = slog.Default()
	slog.SetDefault(slog.New(NewLogHandler(t.logs, slog.LevelDebug)))
	slog.Info("Terminal backend initialized")

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()
	return nil
}

// Update handles pending key presses, then redraws.
func (t *Backend) Update(snap *debug.Snapshot) error {
	for i, p := range snap.Pots {
		t.pots[i] = int(p)
	}

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.handleKey(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	if t.quit {
		return nil
	}
	t.render(snap)
	return nil
}

func (t *Backend) Cleanup() error {
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
		t.screen = nil
	}
	if t.prevLogger != nil {
		slog.SetDefault(t.prevLogger)
		t.prevLogger = nil
	}
	return nil
}

// Selected is the input channel the arrow keys turn.
func (t *Backend) Selected() int {
	return t.selected
}

func (t *Backend) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.requestQuit()
	case tcell.KeyUp:
		t.selected = (t.selected + debug.Channels - 1) % debug.Channels
	case tcell.KeyDown, tcell.KeyTab:
		t.selected = (t.selected + 1) % debug.Channels
	case tcell.KeyRight:
		t.turn(fineStep)
	case tcell.KeyLeft:
		t.turn(-fineStep)
	case tcell.KeyPgUp:
		t.turn(coarseStep)
	case tcell.KeyPgDn:
		t.turn(-coarseStep)
	case tcell.KeyRune:
		t.handleRune(ev.Rune())
	}
}

func (t *Backend) handleRune(r rune) {
	switch {
	case r == 'q':
		t.requestQuit()
	case r >= '0' && r < '0'+debug.Channels:
		t.selected = int(r - '0')
	case r == '+' || r == '=':
		t.turn(1)
	case r == '-':
		t.turn(-1)
	case r == 'm':
		if v := debug.PotVoice(t.selected); v >= 0 {
			t.config.Callbacks.ToggleMute(v)
		}
	case r == '[':
		t.changeLogLevel(4)
	case r == ']':
		t.changeLogLevel(-4)
	}
}

func (t *Backend) requestQuit() {
	if t.quit {
		return
	}
	t.quit = true
	t.config.Callbacks.Quit()
}

func (t *Backend) turn(delta int) {
	level := max(0, min(potMax, t.pots[t.selected]+delta))
	if level == t.pots[t.selected] {
		return
	}
	t.pots[t.selected] = level
	t.config.Callbacks.PotChange(t.selected, level)
}

func (t *Backend) changeLogLevel(delta slog.Level) {
	level := max(slog.LevelDebug, min(slog.LevelError, t.logLevel+delta))
	if level != t.logLevel {
		slog.Info("Log filter changed", "from", t.logLevel, "to", level)
		t.logLevel = level
	}
}

func (t *Backend) render(snap *debug.Snapshot) {
	t.screen.Clear()
	w, h := t.screen.Size()
	if w < minTermWidth || h < minTermHeight {
		t.drawText(0, h/2, w, errorStyle,
			fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight))
		t.screen.Show()
		return
	}

	title := t.config.Title
	if title == "" {
		title = "squarebox"
	}
	adc := "gated"
	if !snap.Gated {
		adc = "ungated"
	}
	t.drawText(0, 0, w, titleStyle, fmt.Sprintf("%s  ticks %d  phase %2d  out %03b  lost %d  adc %s",
		title, snap.Ticks, snap.Phase, snap.Output&0x07, snap.LostTicks, adc))

	y := 2
	for k, v := range snap.Voices {
		style := textStyle
		line := fmt.Sprintf("v%d  %-4s %7.1f Hz  period %5d  width %5d  duty %5.1f%%",
			k, v.Note(), v.Frequency(), v.Period, v.PulseWidth, v.Duty())
		if v.Muted {
			style = mutedStyle
			line += "  muted"
		}
		t.drawText(1, y, w-1, style, line)
		y++
	}

	y++
	for ch := range debug.Channels {
		style := textStyle
		marker := " "
		if ch == t.selected {
			style = selectedStyle
			marker = ">"
		}
		fill := snap.Pots[ch] * barWidth / (potMax + 1)
		bar := strings.Repeat("#", int(fill)) + strings.Repeat(".", barWidth-int(fill))
		t.drawText(1, y, w-1, style, fmt.Sprintf("%s %d %-13s %4d [%s] read %4d",
			marker, ch, debug.PotLabel(ch), snap.Pots[ch], bar, snap.Slots[ch]))
		y++
	}

	y++
	serial := ""
	if n := len(snap.Serial); n > 0 {
		serial = snap.Serial[n-1]
	}
	t.drawText(1, y, w-1, dimStyle, fmt.Sprintf("serial: %s   adc samples %d  restarts %d  audio %d",
		serial, snap.Samples, snap.Restarts, snap.AudioSamples))
	y++
	t.drawText(1, y, w-1, dimStyle, "0-7/up/down select  left/right +-16  pgup/pgdn +-128  m mute  [ ] logs  q quit")
	y += 2

	t.drawLogs(1, y, w-1, h-y)
	t.screen.Show()
}

func (t *Backend) drawLogs(x, y, width, height int) {
	if height <= 0 {
		return
	}
	for i, entry := range t.logs.Recent(height, t.logLevel) {
		style := dimStyle
		switch {
		case entry.Level >= slog.LevelError:
			style = errorStyle
		case entry.Level >= slog.LevelWarn:
			style = titleStyle
		case entry.Level >= slog.LevelInfo:
			style = textStyle
		}
		t.drawText(x, y+i, width, style, entry.String())
	}
}

func (t *Backend) drawText(x, y, width int, style tcell.Style, s string) {
	col := 0
	for _, r := range s {
		if col >= width {
			return
		}
		t.screen.SetContent(x+col, y, r, nil, style)
		col++
	}
}
