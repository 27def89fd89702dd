package mcu

import "github.com/valerio/go-squarebox/squarebox/addr"

// OutputListener observes every write to the port data register. cycle is
// the system cycle at which the pins changed.
type OutputListener interface {
	PortWrite(cycle uint64, pins uint8)
}

// Port is GPIO port B. Only pins configured as outputs in DDRB drive a level.
type Port struct {
	ddr    byte
	data   byte
	writes uint64
}

// Pins is the level currently driven on the output pins.
func (p *Port) Pins() uint8 {
	return p.data & p.ddr
}

func (p *Port) Read(address uint16) byte {
	switch address {
	case addr.PINB:
		return p.Pins()
	case addr.DDRB:
		return p.ddr
	case addr.PORTB:
		return p.data
	default:
		panic("mcu.Port: invalid read address")
	}
}

func (p *Port) Write(address uint16, value byte) {
	switch address {
	case addr.DDRB:
		p.ddr = value
	case addr.PORTB:
		p.data = value
		p.writes++
	case addr.PINB:
		// writing PINB toggles the data bits
		p.data ^= value
		p.writes++
	default:
		panic("mcu.Port: invalid write address")
	}
}

func (p *Port) Writes() uint64 {
	return p.writes
}
