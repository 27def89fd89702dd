// Package mcu simulates the parts of an 8-bit AVR microcontroller the synth
// firmware touches: timer 1, the ADC, port B and USART0, all reachable
// through a data-space register bus and clocked in system cycles.
package mcu

import (
	"fmt"

	"github.com/valerio/go-squarebox/squarebox/addr"
	"github.com/valerio/go-squarebox/squarebox/bit"
)

// ClockHz is the system clock of the simulated part.
const ClockHz = 16_000_000

type MCU struct {
	Timer *Timer
	ADC   *ADC
	Port  *Port
	USART *USART

	prr      byte
	cycles   uint64
	listener OutputListener
}

type Option func(*MCU)

// WithOutputListener registers a listener for port B writes.
func WithOutputListener(l OutputListener) Option { return func(m *MCU) { m.listener = l } }

// WithADC replaces the default converter, e.g. one built WithNoise.
func WithADC(a *ADC) Option { return func(m *MCU) { m.ADC = a } }

// WithUSART replaces the default serial port.
func WithUSART(u *USART) Option { return func(m *MCU) { m.USART = u } }

func New(opts ...Option) *MCU {
	m := &MCU{
		Timer: &Timer{},
		ADC:   NewADC(),
		Port:  &Port{},
		USART: NewUSART(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Tick advances every peripheral by cycles system cycles.
func (m *MCU) Tick(cycles int) {
	m.cycles += uint64(cycles)
	m.Timer.Tick(cycles)
	m.ADC.Tick(cycles)
	m.USART.Tick(cycles)
}

// Cycles is the number of system cycles elapsed since power on.
func (m *MCU) Cycles() uint64 {
	return m.cycles
}

func (m *MCU) Read(address uint16) byte {
	switch address {
	case addr.PINB, addr.DDRB, addr.PORTB:
		return m.Port.Read(address)
	case addr.TIFR1, addr.TCCR1A, addr.TCCR1B, addr.TCNT1L, addr.TCNT1H, addr.OCR1AL, addr.OCR1AH:
		return m.Timer.Read(address)
	case addr.ADCL, addr.ADCH, addr.ADCSRA, addr.ADCSRB, addr.ADMUX, addr.DIDR0:
		return m.ADC.Read(address)
	case addr.UCSR0A, addr.UCSR0B, addr.UCSR0C, addr.UBRR0L, addr.UBRR0H, addr.UDR0:
		return m.USART.Read(address)
	case addr.PRR:
		return m.prr
	default:
		panic(fmt.Sprintf("mcu: read from unmapped address 0x%02X", address))
	}
}

func (m *MCU) Write(address uint16, value byte) {
	switch address {
	case addr.PINB, addr.DDRB, addr.PORTB:
		m.Port.Write(address, value)
		if address != addr.DDRB && m.listener != nil {
			m.listener.PortWrite(m.cycles, m.Port.Pins())
		}
	case addr.TIFR1, addr.TCCR1A, addr.TCCR1B, addr.TCNT1L, addr.TCNT1H, addr.OCR1AL, addr.OCR1AH:
		m.Timer.Write(address, value)
	case addr.ADCL, addr.ADCH, addr.ADCSRA, addr.ADCSRB, addr.ADMUX, addr.DIDR0:
		m.ADC.Write(address, value)
	case addr.UCSR0A, addr.UCSR0B, addr.UCSR0C, addr.UBRR0L, addr.UBRR0H, addr.UDR0:
		m.USART.Write(address, value)
	case addr.PRR:
		m.prr = value
		m.ADC.setPowered(!bit.IsSet(addr.PRADC, value))
	default:
		panic(fmt.Sprintf("mcu: write to unmapped address 0x%02X", address))
	}
}
