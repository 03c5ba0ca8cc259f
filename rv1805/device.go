package rv1805

import "strconv"

// DeviceType represents a physical device type.
type DeviceType int

const (
	DeviceUnknown DeviceType = iota
	DeviceRV1805
	DeviceAB0805
)

func (dt DeviceType) String() string {
	switch dt {
	case DeviceRV1805:
		return "RV1805"
	case DeviceAB0805:
		return "AB0805"
	default:
		return "unknown"
	}
}

// DeviceTypeFromID returns the device type for the value of the ID0
// register.
//
// The RV-1805 shares its die with the Abracon AB1805, which reports the same
// part number.
func DeviceTypeFromID(id byte) DeviceType {
	switch id {
	case 0x18:
		return DeviceRV1805
	case 0x08:
		return DeviceAB0805
	default:
		return DeviceUnknown
	}
}

// PartName returns a printable name for the part number in id.
func PartName(id byte) string {
	if dt := DeviceTypeFromID(id); dt != DeviceUnknown {
		return dt.String()
	}
	return "unknown (0x" + strconv.FormatUint(uint64(id), 16) + ")"
}
