// Package board brings up the simulated microcontroller and exposes it to
// the synth core as a hal.Hardware. Every capability is implemented through
// register accesses, the same way the firmware's C helpers drive the part.
package board

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-squarebox/squarebox/addr"
	"github.com/valerio/go-squarebox/squarebox/bit"
	"github.com/valerio/go-squarebox/squarebox/hal"
	"github.com/valerio/go-squarebox/squarebox/mcu"
)

const (
	// BaudRate of the diagnostic serial port.
	BaudRate = 9600
	// AccessCycles is the cost of one register access, polling included.
	AccessCycles = 2
	// ADCPrescale selects clk/128, a 125 kHz ADC clock at 16 MHz.
	ADCPrescale = 7
	// Banner is printed on the serial port once the peripherals are up.
	Banner = "Hello, World!"
)

var _ hal.Hardware = (*Board)(nil)

// Board drives a simulated MCU. Each register access advances simulated time
// by AccessCycles, so busy-wait loops in the core make progress.
type Board struct {
	mcu          *mcu.MCU
	accessCycles int
	elapsed      uint64
}

type Option func(*Board)

// WithAccessCycles overrides the simulated cost of a register access.
func WithAccessCycles(n int) Option { return func(b *Board) { b.accessCycles = n } }

func New(m *mcu.MCU, opts ...Option) *Board {
	b := &Board{mcu: m, accessCycles: AccessCycles}
	for _, opt := range opts {
		opt(b)
	}
	if b.accessCycles <= 0 {
		b.accessCycles = 1
	}
	return b
}

func (b *Board) read(address uint16) byte {
	b.mcu.Tick(b.accessCycles)
	return b.mcu.Read(address)
}

func (b *Board) write(address uint16, value byte) {
	b.mcu.Tick(b.accessCycles)
	b.mcu.Write(address, value)
}

// Init configures the serial port, the ADC and the output pins, then prints
// the banner.
func (b *Board) Init() {
	b.initUSART()
	b.initADC()
	b.write(addr.DDRB, 0xFF)
	b.Println(Banner)
	slog.Info("board initialised",
		"clock_hz", mcu.ClockHz,
		"baud", b.mcu.USART.Baud(mcu.ClockHz),
		"adc_conversion_cycles", b.mcu.ADC.ConversionCycles())
}

func (b *Board) initUSART() {
	ubrr := uint16(mcu.ClockHz/(16*BaudRate) - 1)
	b.write(addr.UBRR0H, bit.High(ubrr)&0x0F)
	b.write(addr.UBRR0L, bit.Low(ubrr))
	b.write(addr.UCSR0B, 1<<addr.TXEN0)
	b.write(addr.UCSR0C, 3<<addr.UCSZ00) // 8-bit characters
}

func (b *Board) initADC() {
	b.write(addr.PRR, bit.Clear(addr.PRADC, b.read(addr.PRR)))
	b.write(addr.ADMUX, 0) // AREF, right adjusted, channel 0
	b.write(addr.ADCSRA, 1<<addr.ADEN|ADCPrescale)
	b.write(addr.DIDR0, 0xFF)

	// the first conversion after enabling is slow; throw it away here so the
	// scheduler only ever waits for regular conversions
	b.StartConversion(0)
	hal.Await(b.PollComplete)
	b.ReadResult()
}

// Println sends s and a CRLF on the serial port, waiting for the data
// register before each byte.
func (b *Board) Println(s string) {
	for _, c := range []byte(s + "\r\n") {
		hal.Await(func() bool { return bit.IsSet(addr.UDRE0, b.read(addr.UCSR0A)) })
		b.write(addr.UDR0, c)
	}
}

// Printf formats and sends one line on the serial port.
func (b *Board) Printf(format string, args ...any) {
	b.Println(fmt.Sprintf(format, args...))
}

// StartCycle runs timer 1 in CTC mode with a period of counts system cycles.
func (b *Board) StartCycle(counts uint16) {
	top := counts - 1
	b.write(addr.TCCR1B, 0)
	b.write(addr.TCCR1A, 0)
	b.write(addr.OCR1AH, bit.High(top))
	b.write(addr.OCR1AL, bit.Low(top))
	b.write(addr.TCNT1H, 0)
	b.write(addr.TCNT1L, 0)
	b.write(addr.TIFR1, 1<<addr.OCF1A)
	b.write(addr.TCCR1B, 1<<addr.WGM12|1<<addr.CS10)
}

func (b *Board) PollAndClearElapsed() bool {
	if !bit.IsSet(addr.OCF1A, b.read(addr.TIFR1)) {
		return false
	}
	b.write(addr.TIFR1, 1<<addr.OCF1A)
	b.elapsed++
	return true
}

func (b *Board) StartConversion(channel uint8) {
	mux := b.read(addr.ADMUX)
	b.write(addr.ADMUX, mux&0xF0|channel&0x0F)
	b.write(addr.ADCSRA, b.read(addr.ADCSRA)|1<<addr.ADSC)
}

func (b *Board) PollComplete() bool {
	return !bit.IsSet(addr.ADSC, b.read(addr.ADCSRA))
}

// ReadResult reads ADCL before ADCH, as the data sheet requires.
func (b *Board) ReadResult() uint16 {
	lo := b.read(addr.ADCL)
	hi := b.read(addr.ADCH)
	return bit.Combine(hi, lo) & mcu.MaxLevel
}

func (b *Board) WriteOutput(bits uint8) {
	b.write(addr.PORTB, bits)
}

// Elapsed counts tick boundaries the firmware has acknowledged.
func (b *Board) Elapsed() uint64 {
	return b.elapsed
}

// LostTicks counts tick boundaries that passed unacknowledged because the
// firmware was still busy.
func (b *Board) LostTicks() uint64 {
	return b.mcu.Timer.Overruns()
}

func (b *Board) MCU() *mcu.MCU {
	return b.mcu
}
