package rv1805

import (
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

type IfaceType int

const (
	IfaceI2C IfaceType = iota
	IfaceHID
)

func (t IfaceType) String() string {
	switch t {
	case IfaceI2C:
		return "i2c"
	case IfaceHID:
		return "hid"
	default:
		return "unknown"
	}
}

// IfaceConfig is the configuration object for a device.
type IfaceConfig struct {
	// IfaceType selects the transport used to reach the device.
	IfaceType IfaceType
	// I2C contains I²C specific configuration.
	I2C I2CConfig
	// HID contains configuration for the USB-to-I²C bridge.
	HID HIDConfig
	// RxRetries is the number of status polls the bridge transport makes
	// before giving up on a transfer.
	RxRetries int
	// Debug is used for debug output.
	Debug Logger
}

type I2CConfig struct {
	Address uint16
	Bus     i2c.Bus
}

type HIDConfig struct {
	// DevIndex is the HID enumeration index to use.
	DevIndex int

	// VendorID of the bridge.
	VendorID uint16

	// ProductID of the bridge.
	ProductID uint16

	// PacketSize is the size of the USB report.
	PacketSize int

	// Speed is the I²C clock the bridge drives.
	Speed physic.Frequency
}

// ConfigRV1805_I2CDefault returns a default config for a device on bus.
//
// The caller owns bus and closes it when done with the device.
func ConfigRV1805_I2CDefault(bus i2c.Bus) IfaceConfig {
	return IfaceConfig{
		IfaceType: IfaceI2C,
		I2C: I2CConfig{
			Address: DefaultAddress,
			Bus:     bus,
		},
	}
}

const (
	vendorMicrochip = 0x04d8

	productMCP2221 = 0x00dd
)

// ConfigRV1805_MCP2221Default returns a configuration for a device behind a
// Microchip MCP2221A USB-to-I²C bridge.
func ConfigRV1805_MCP2221Default() IfaceConfig {
	return IfaceConfig{
		IfaceType: IfaceHID,
		RxRetries: 20,
		I2C: I2CConfig{
			Address: DefaultAddress,
		},
		HID: HIDConfig{
			DevIndex:   0,
			VendorID:   vendorMicrochip,
			ProductID:  productMCP2221,
			PacketSize: 64,
			Speed:      100 * physic.KiloHertz,
		},
	}
}
