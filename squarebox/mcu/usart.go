package mcu

import (
	"log/slog"

	"github.com/valerio/go-squarebox/squarebox/addr"
	"github.com/valerio/go-squarebox/squarebox/bit"
)

// bitsPerFrame is one start bit, 8 data bits and one stop bit.
const bitsPerFrame = 10

// USART is a transmit-only serial port whose output is logged as text, one
// log record per line. It carries the firmware's diagnostic prints.
type USART struct {
	ucsr0a, ucsr0b, ucsr0c byte
	ubrr                   uint16

	transmitting bool
	countdown    int
	logger       *slog.Logger

	// settings
	immediate bool

	line  []byte
	lines []string
}

type USARTOption func(*USART)

// WithFrameTiming makes each byte occupy the line for the time it would take
// at the configured baud rate instead of completing immediately.
func WithFrameTiming() USARTOption { return func(u *USART) { u.immediate = false } }

// WithLogger routes serial lines to logger instead of whatever slog.Default
// is when the line completes.
func WithLogger(logger *slog.Logger) USARTOption { return func(u *USART) { u.logger = logger } }

func NewUSART(opts ...USARTOption) *USART {
	u := &USART{immediate: true}
	for _, opt := range opts {
		opt(u)
	}
	u.Reset()
	return u
}

func (u *USART) Reset() {
	u.ucsr0a = 1 << addr.UDRE0
	u.ucsr0b = 0
	u.ucsr0c = 3 << addr.UCSZ00
	u.ubrr = 0
	u.transmitting = false
	u.countdown = 0
	u.line = u.line[:0]
}

func (u *USART) Read(address uint16) byte {
	switch address {
	case addr.UCSR0A:
		return u.ucsr0a
	case addr.UCSR0B:
		return u.ucsr0b
	case addr.UCSR0C:
		return u.ucsr0c
	case addr.UBRR0L:
		return bit.Low(u.ubrr)
	case addr.UBRR0H:
		return bit.High(u.ubrr)
	case addr.UDR0:
		return 0
	default:
		panic("mcu.USART: invalid read address")
	}
}

func (u *USART) Write(address uint16, value byte) {
	switch address {
	case addr.UCSR0A:
		// TXC0 clears when written with 1
		if bit.IsSet(addr.TXC0, value) {
			u.ucsr0a = bit.Clear(addr.TXC0, u.ucsr0a)
		}
	case addr.UCSR0B:
		u.ucsr0b = value
	case addr.UCSR0C:
		u.ucsr0c = value
	case addr.UBRR0H:
		u.ubrr = bit.Combine(value&0x0F, bit.Low(u.ubrr))
	case addr.UBRR0L:
		u.ubrr = bit.Combine(bit.High(u.ubrr), value)
	case addr.UDR0:
		u.transmit(value)
	default:
		panic("mcu.USART: invalid write address")
	}
}

func (u *USART) Tick(cycles int) {
	if u.immediate || !u.transmitting {
		return
	}
	u.countdown -= cycles
	if u.countdown <= 0 {
		u.finish()
	}
}

// FrameCycles is the number of system cycles one byte takes on the line.
func (u *USART) FrameCycles() int {
	return bitsPerFrame * 16 * (int(u.ubrr) + 1)
}

// Baud is the configured baud rate for a given system clock.
func (u *USART) Baud(clockHz int) int {
	return clockHz / (16 * (int(u.ubrr) + 1))
}

func (u *USART) transmit(b byte) {
	if !bit.IsSet(addr.TXEN0, u.ucsr0b) || u.transmitting {
		// transmitter off or data register busy: the byte is lost
		return
	}

	if b == '\n' || b == '\r' || b == 0 {
		if len(u.line) > 0 {
			line := string(u.line)
			logger := u.logger
			if logger == nil {
				logger = slog.Default()
			}
			logger.Info("serial", "line", line)
			u.lines = append(u.lines, line)
			u.line = u.line[:0]
		}
	} else {
		u.line = append(u.line, b)
	}

	if u.immediate {
		u.ucsr0a = bit.Set(addr.TXC0, u.ucsr0a)
		return
	}
	u.transmitting = true
	u.countdown = u.FrameCycles()
	u.ucsr0a = bit.Clear(addr.UDRE0, u.ucsr0a)
}

func (u *USART) finish() {
	u.transmitting = false
	u.countdown = 0
	u.ucsr0a = bit.Set(addr.UDRE0, u.ucsr0a)
	u.ucsr0a = bit.Set(addr.TXC0, u.ucsr0a)
}

// Lines returns every completed line sent so far.
func (u *USART) Lines() []string {
	return u.lines
}
