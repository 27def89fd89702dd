// Package bit has the register bit helpers shared by the simulated
// peripherals.
package bit

// IsSet reports whether bit index of value is 1. Indices past 7 are never set.
func IsSet(index, value uint8) bool {
	return (value>>index)&1 == 1
}

// Set returns value with bit index forced to 1.
func Set(index, value uint8) uint8 {
	return value | (1 << index)
}

// Clear returns value with bit index forced to 0.
func Clear(index, value uint8) uint8 {
	return value &^ (1 << index)
}

// Field extracts width bits of value starting at lowBit.
// Example: Field(0b0110_0111, 0, 3) -> 0b111 (ADC prescaler select)
func Field(value, lowBit, width uint8) uint8 {
	return (value >> lowBit) & (1<<width - 1)
}

// Combine joins a register pair into a 16 bit value.
func Combine(high, low uint8) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// Low is the low byte of a 16 bit value.
func Low(value uint16) uint8 {
	return uint8(value)
}

// High is the high byte of a 16 bit value.
func High(value uint16) uint8 {
	return uint8(value >> 8)
}

// Pack folds a slice of levels into a bit pattern, element i on bit i.
func Pack(levels []bool) uint8 {
	var out uint8
	for i, l := range levels {
		if l && i < 8 {
			out |= 1 << i
		}
	}
	return out
}
