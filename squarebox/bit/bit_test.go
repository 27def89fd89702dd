package bit

import "testing"

func TestIsSet(t *testing.T) {
	tests := []struct {
		value    uint8
		index    uint8
		expected bool
	}{
		{0b1100_0000, 6, true},
		{0b1100_0000, 7, true},
		{0b1100_0000, 5, false},
		{0b0000_0001, 0, true},
		{0b1111_1111, 8, false},
	}

	for _, tt := range tests {
		if got := IsSet(tt.index, tt.value); got != tt.expected {
			t.Errorf("IsSet(%d, %08b) = %v; want %v", tt.index, tt.value, got, tt.expected)
		}
	}
}

func TestSetClear(t *testing.T) {
	tests := []struct {
		value      uint8
		index      uint8
		set, clear uint8
	}{
		{0b1000_0000, 6, 0b1100_0000, 0b1000_0000},
		{0b1100_0000, 6, 0b1100_0000, 0b1000_0000},
		{0b0000_0000, 0, 0b0000_0001, 0b0000_0000},
		{0b1010_1010, 8, 0b1010_1010, 0b1010_1010},
	}

	for _, tt := range tests {
		if got := Set(tt.index, tt.value); got != tt.set {
			t.Errorf("Set(%d, %08b) = %08b; want %08b", tt.index, tt.value, got, tt.set)
		}
		if got := Clear(tt.index, tt.value); got != tt.clear {
			t.Errorf("Clear(%d, %08b) = %08b; want %08b", tt.index, tt.value, got, tt.clear)
		}
	}
}

func TestField(t *testing.T) {
	tests := []struct {
		value, low, width uint8
		expected          uint8
	}{
		{0b1000_0111, 0, 3, 0b111},
		{0b0100_0101, 0, 4, 0b0101},
		{0b0100_0101, 6, 2, 0b01},
		{0b1111_1111, 7, 1, 1},
	}

	for _, tt := range tests {
		if got := Field(tt.value, tt.low, tt.width); got != tt.expected {
			t.Errorf("Field(%08b, %d, %d) = %b; want %b", tt.value, tt.low, tt.width, got, tt.expected)
		}
	}
}

func TestCombineSplit(t *testing.T) {
	tests := []struct {
		high, low uint8
		expected  uint16
	}{
		{0x03, 0xFF, 1023},
		{0x00, 0x00, 0},
		{0x01, 0x00, 256},
	}

	for _, tt := range tests {
		got := Combine(tt.high, tt.low)
		if got != tt.expected {
			t.Errorf("Combine(%X, %X) = %d; want %d", tt.high, tt.low, got, tt.expected)
		}
		if High(got) != tt.high || Low(got) != tt.low {
			t.Errorf("High/Low(%d) = %X/%X; want %X/%X", got, High(got), Low(got), tt.high, tt.low)
		}
	}
}

func TestPack(t *testing.T) {
	tests := []struct {
		levels   []bool
		expected uint8
	}{
		{nil, 0},
		{[]bool{true, false, true}, 0b101},
		{[]bool{false, true, true}, 0b110},
		{[]bool{true, true, true, true, true, true, true, true, true}, 0xFF},
	}

	for _, tt := range tests {
		if got := Pack(tt.levels); got != tt.expected {
			t.Errorf("Pack(%v) = %08b; want %08b", tt.levels, got, tt.expected)
		}
	}
}
