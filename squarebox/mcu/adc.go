package mcu

import (
	"math/rand/v2"
	"sync/atomic"

	"github.com/valerio/go-squarebox/squarebox/addr"
	"github.com/valerio/go-squarebox/squarebox/bit"
)

const (
	// AnalogInputs is the number of multiplexer channels.
	AnalogInputs = 16
	// MaxLevel is the full-scale 10 bit reading.
	MaxLevel = 1023

	conversionClocks      = 13
	firstConversionClocks = 25
)

// adcPrescalers maps ADPS2:0 to system cycles per ADC clock.
var adcPrescalers = [8]int{2, 2, 4, 8, 16, 32, 64, 128}

// ADC is the successive approximation converter behind the analog
// multiplexer. Input levels may be changed from another goroutine (a UI
// turning a pot) while the simulation runs.
type ADC struct {
	inputs [AnalogInputs]atomic.Uint32

	admux  byte
	adcsra byte
	adcsrb byte
	didr0  byte
	adcl   byte
	adch   byte

	powered    bool
	converting bool
	channel    uint8
	remaining  int
	first      bool

	noise int
	rng   *rand.Rand

	conversions uint64
	aborted     uint64
}

type ADCOption func(*ADC)

// WithNoise adds uniform jitter of +/- amplitude LSB to every conversion.
func WithNoise(amplitude int, seed uint64) ADCOption {
	return func(a *ADC) {
		a.noise = amplitude
		a.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

func NewADC(opts ...ADCOption) *ADC {
	a := &ADC{powered: true}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetInput sets the analog level of a channel, clamped to 0..MaxLevel.
func (a *ADC) SetInput(channel int, level int) {
	if level < 0 {
		level = 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	a.inputs[channel%AnalogInputs].Store(uint32(level))
}

func (a *ADC) Input(channel int) uint16 {
	return uint16(a.inputs[channel%AnalogInputs].Load())
}

func (a *ADC) setPowered(on bool) {
	a.powered = on
	if !on {
		a.converting = false
	}
}

func (a *ADC) Tick(cycles int) {
	if !a.converting {
		return
	}
	a.remaining -= cycles
	if a.remaining > 0 {
		return
	}
	a.complete()
}

func (a *ADC) start() {
	if !a.powered || !bit.IsSet(addr.ADEN, a.adcsra) {
		return
	}
	if a.converting {
		// restarting throws away the running conversion
		a.aborted++
	}
	clocks := conversionClocks
	if a.first {
		clocks = firstConversionClocks
		a.first = false
	}
	a.channel = bit.Field(a.admux, addr.MUX0, 4)
	a.remaining = clocks * adcPrescalers[bit.Field(a.adcsra, addr.ADPS0, 3)]
	a.converting = true
}

func (a *ADC) complete() {
	level := int(a.inputs[a.channel].Load())
	if a.noise > 0 {
		level += a.rng.IntN(2*a.noise+1) - a.noise
		level = max(0, min(MaxLevel, level))
	}
	result := uint16(level)
	if bit.IsSet(addr.ADLAR, a.admux) {
		result <<= 6
	}
	a.adcl = bit.Low(result)
	a.adch = bit.High(result)
	a.converting = false
	a.adcsra = bit.Set(addr.ADIF, a.adcsra)
	a.conversions++
}

// ConversionCycles is the length of a regular conversion at the current
// prescaler setting, in system cycles.
func (a *ADC) ConversionCycles() int {
	return conversionClocks * adcPrescalers[bit.Field(a.adcsra, addr.ADPS0, 3)]
}

func (a *ADC) Read(address uint16) byte {
	switch address {
	case addr.ADMUX:
		return a.admux
	case addr.ADCSRA:
		v := bit.Clear(addr.ADSC, a.adcsra)
		if a.converting {
			v = bit.Set(addr.ADSC, v)
		}
		return v
	case addr.ADCSRB:
		return a.adcsrb
	case addr.ADCL:
		return a.adcl
	case addr.ADCH:
		return a.adch
	case addr.DIDR0:
		return a.didr0
	default:
		panic("mcu.ADC: invalid read address")
	}
}

func (a *ADC) Write(address uint16, value byte) {
	switch address {
	case addr.ADMUX:
		a.admux = value
	case addr.ADCSRA:
		if !bit.IsSet(addr.ADEN, a.adcsra) && bit.IsSet(addr.ADEN, value) {
			a.first = true
		}
		if !bit.IsSet(addr.ADEN, value) {
			a.converting = false
		}
		// ADIF clears when written with 1, ADSC is never stored
		flags := a.adcsra & (1 << addr.ADIF) &^ value
		a.adcsra = value&^(1<<addr.ADIF|1<<addr.ADSC) | flags
		if bit.IsSet(addr.ADSC, value) {
			a.start()
		}
	case addr.ADCSRB:
		a.adcsrb = value
	case addr.DIDR0:
		a.didr0 = value
	case addr.ADCL, addr.ADCH:
		// read only
	default:
		panic("mcu.ADC: invalid write address")
	}
}

func (a *ADC) Conversions() uint64 {
	return a.conversions
}

// Aborted counts conversions discarded by a restart.
func (a *ADC) Aborted() uint64 {
	return a.aborted
}
