package rv1805

import (
	"strconv"
	"testing"
)

func TestBCDRoundTrip(t *testing.T) {
	for d := 0; d <= 99; d++ {
		if got := BCDToDecimal(DecimalToBCD(d)); got != d {
			t.Errorf("BCDToDecimal(DecimalToBCD(%d)) = %d", d, got)
		}
	}
}

func TestBCDValidBytes(t *testing.T) {
	for hi := 0; hi <= 9; hi++ {
		for lo := 0; lo <= 9; lo++ {
			b := byte(hi<<4 | lo)
			if got := DecimalToBCD(BCDToDecimal(b)); got != b {
				t.Errorf("DecimalToBCD(BCDToDecimal(%#02x)) = %#02x", b, got)
			}
		}
	}
}

func TestBCD(t *testing.T) {
	testCases := []struct {
		dec int
		bcd byte
	}{
		{0, 0x00},
		{5, 0x05},
		{9, 0x09},
		{10, 0x10},
		{18, 0x18},
		{59, 0x59},
		{99, 0x99},
	}

	for _, tc := range testCases {
		t.Run(strconv.Itoa(tc.dec), func(t *testing.T) {
			if got := DecimalToBCD(tc.dec); got != tc.bcd {
				t.Errorf("got %#02x want %#02x", got, tc.bcd)
			}
			if got := BCDToDecimal(tc.bcd); got != tc.dec {
				t.Errorf("got %d want %d", got, tc.dec)
			}
		})
	}
}

func TestBCDToDecimalMalformed(t *testing.T) {
	// nibbles above 9 are decoded as is
	if got := BCDToDecimal(0x1f); got != 25 {
		t.Errorf("got %d want 25", got)
	}
	if got := BCDToDecimal(0xa0); got != 100 {
		t.Errorf("got %d want 100", got)
	}
}
