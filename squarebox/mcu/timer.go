package mcu

import (
	"github.com/valerio/go-squarebox/squarebox/addr"
	"github.com/valerio/go-squarebox/squarebox/bit"
)

// prescalers maps the TCCR1B clock select field to the number of system
// cycles per timer count. 0 stops the timer; external clock sources (6, 7)
// are not wired and also stop it.
var prescalers = [8]int{0, 1, 8, 64, 256, 1024, 0, 0}

// Timer is the 16 bit timer/counter 1. Only normal and CTC (clear on OCR1A
// match) modes are modelled.
type Timer struct {
	tcnt   uint16
	ocr1a  uint16
	tccr1a byte
	tccr1b byte
	tifr1  byte

	// shared high-byte latch for 16 bit register access
	temp byte

	prescaleCount int

	matches  uint64
	overruns uint64 // matches that found OCF1A still set
}

func (t *Timer) Tick(cycles int) {
	div := prescalers[t.tccr1b&0x07]
	if div == 0 {
		return
	}
	for range cycles {
		t.prescaleCount++
		if t.prescaleCount < div {
			continue
		}
		t.prescaleCount = 0
		t.count()
	}
}

func (t *Timer) count() {
	if bit.IsSet(addr.WGM12, t.tccr1b) && t.tcnt == t.ocr1a {
		t.tcnt = 0
		t.matches++
		if bit.IsSet(addr.OCF1A, t.tifr1) {
			t.overruns++
		}
		t.tifr1 = bit.Set(addr.OCF1A, t.tifr1)
		return
	}
	t.tcnt++
	if t.tcnt == 0 {
		t.tifr1 = bit.Set(addr.TOV1, t.tifr1)
	}
}

func (t *Timer) Read(address uint16) byte {
	switch address {
	case addr.TIFR1:
		return t.tifr1
	case addr.TCCR1A:
		return t.tccr1a
	case addr.TCCR1B:
		return t.tccr1b
	case addr.TCNT1L:
		t.temp = bit.High(t.tcnt)
		return bit.Low(t.tcnt)
	case addr.TCNT1H:
		return t.temp
	case addr.OCR1AL:
		return bit.Low(t.ocr1a)
	case addr.OCR1AH:
		return bit.High(t.ocr1a)
	default:
		panic("mcu.Timer: invalid read address")
	}
}

// Write follows the AVR conventions: flag bits clear when written with 1,
// 16 bit registers take the high byte first and commit on the low byte.
func (t *Timer) Write(address uint16, value byte) {
	switch address {
	case addr.TIFR1:
		t.tifr1 &^= value
	case addr.TCCR1A:
		t.tccr1a = value
	case addr.TCCR1B:
		t.tccr1b = value
		t.prescaleCount = 0
	case addr.TCNT1H, addr.OCR1AH:
		t.temp = value
	case addr.TCNT1L:
		t.tcnt = bit.Combine(t.temp, value)
	case addr.OCR1AL:
		t.ocr1a = bit.Combine(t.temp, value)
	default:
		panic("mcu.Timer: invalid write address")
	}
}

// Matches counts compare matches since reset.
func (t *Timer) Matches() uint64 {
	return t.matches
}

// Overruns counts compare matches that happened while the previous one was
// still unacknowledged, i.e. ticks the firmware never saw.
func (t *Timer) Overruns() uint64 {
	return t.overruns
}

func (t *Timer) Reset() {
	*t = Timer{}
}
