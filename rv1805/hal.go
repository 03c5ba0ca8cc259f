package rv1805

// HAL is a byte oriented transport bound to a single device address.
//
// Every call is one bus transaction. An unacknowledged transfer is reported
// as an error.
type HAL interface {
	// Read reads len(p) bytes from the device into p.
	Read(p []byte) (int, error)
	// Write writes len(p) bytes from p to the device.
	Write(p []byte) (int, error)
}
