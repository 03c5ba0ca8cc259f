package rv1805

// DecimalToBCD encodes d as two BCD digits.
//
// d must be in the range 0-99. Other values are not rejected and produce a
// wrapped encoding.
func DecimalToBCD(d int) byte {
	return byte((d/10)<<4 + d%10)
}

// BCDToDecimal decodes a two digit BCD byte.
//
// A nibble above 9 is not rejected; it contributes its binary value to the
// digit.
func BCDToDecimal(b byte) int {
	return int(b>>4)*10 + int(b&0x0f)
}
