package rv1805

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/karalabe/usb"
	"periph.io/x/conn/v3/physic"
)

// ErrUSBNotSupported is returned when the USB support is missing.
//
// When building, CGO is required for USB support. If CGO is not enabled, the
// HID interface will not be available.
var ErrUSBNotSupported = errors.New("rv1805: usb support is missing")

var (
	errBridgeBusy    = errors.New("rv1805: bridge i2c engine busy")
	errBridgeTimeout = errors.New("rv1805: bridge i2c transfer timed out")
	errTransferSize  = errors.New("rv1805: transfer too large for bridge")
)

// NewHIDDev returns a device behind an MCP2221A USB-to-I²C bridge.
//
// The returned closer releases the USB device.
func NewHIDDev(ctx context.Context, cfg IfaceConfig) (*Dev, io.Closer, error) {
	if !usb.Supported() {
		return nil, nil, ErrUSBNotSupported
	}

	deviceInfos, err := usb.EnumerateHid(cfg.HID.VendorID, cfg.HID.ProductID)
	if err != nil {
		return nil, nil, fmt.Errorf("rv1805: failed to get hid devices: %w", err)
	}
	if cfg.HID.DevIndex < 0 || cfg.HID.DevIndex >= len(deviceInfos) {
		return nil, nil, errNoDevice
	}

	hid, err := deviceInfos[cfg.HID.DevIndex].Open()
	if err != nil {
		return nil, nil, fmt.Errorf("rv1805: %w", err)
	}
	d, err := newHIDDev(ctx, hid, cfg)
	if err != nil {
		_ = hid.Close()
		return nil, nil, err
	}
	return d, hid, nil
}

func newHIDDev(ctx context.Context, rw io.ReadWriter, cfg IfaceConfig) (*Dev, error) {
	hal, err := newHALHID(rw, cfg)
	if err != nil {
		return nil, err
	}
	return New(ctx, hal, cfg)
}

// MCP2221A commands. The command byte is echoed as the first byte of the
// response report.
const (
	mcpStatus      = 0x10
	mcpI2CWrite    = 0x90
	mcpI2CRead     = 0x91
	mcpI2CReadData = 0x40
)

const (
	mcpReportSize  = 64
	mcpMaxTransfer = 60
	mcpClock       = 12 * physic.MegaHertz

	mcpCancel      = 0x10
	mcpSetSpeed    = 0x20
	mcpSpeedBusy   = 0x21
	mcpReadFailure = 0x7f

	mcpPollDelay = 300 * time.Microsecond
)

// I²C engine states, reported at offset 8 of the status response and
// offset 2 of the read data response.
const (
	mcpStateIdle            = 0x00
	mcpStateStartTimeout    = 0x12
	mcpStateRepStartTimeout = 0x17
	mcpStateAddrTimeout     = 0x23
	mcpStateAddrNACK        = 0x25
	mcpStateWriteTimeout    = 0x44
	mcpStateReadTimeout     = 0x52
	mcpStateStopTimeout     = 0x62
)

func mcpStateTimeout(state byte) bool {
	switch state {
	case mcpStateStartTimeout, mcpStateRepStartTimeout, mcpStateAddrTimeout,
		mcpStateWriteTimeout, mcpStateReadTimeout, mcpStateStopTimeout:
		return true
	default:
		return false
	}
}

// halHID drives I²C transfers through an MCP2221A.
type halHID struct {
	phy     HAL
	buf     []byte
	addr    byte
	retries int
	delay   time.Duration
}

func newHALHID(phy io.ReadWriter, cfg IfaceConfig) (*halHID, error) {
	if cfg.HID.PacketSize < mcpReportSize {
		return nil, fmt.Errorf("rv1805: hid packet size %d too small", cfg.HID.PacketSize)
	}
	h := &halHID{
		phy:     &halDebug{"usb", getLogger(cfg), phy},
		buf:     make([]byte, cfg.HID.PacketSize),
		addr:    byte(cfg.I2C.Address),
		retries: cfg.RxRetries,
		delay:   mcpPollDelay,
	}
	return h, h.setSpeed(cfg.HID.Speed)
}

// setSpeed programs the I²C clock divider of the bridge.
func (h *halHID) setSpeed(speed physic.Frequency) error {
	if speed <= 0 || speed > mcpClock/3 || speed < mcpClock/258 {
		return fmt.Errorf("rv1805: invalid i2c speed %s", speed)
	}
	div := byte(mcpClock/speed - 3)

	for i := 0; i < 2; i++ {
		rsp, err := h.command(mcpStatus, []byte{0x00, 0x00, mcpSetSpeed, div})
		if err != nil {
			return err
		}
		if rsp[3] != mcpSpeedBusy {
			return nil
		}
		// a transfer is still pending from an earlier session
		if err := h.cancel(nil); err != nil {
			return err
		}
	}
	return errBridgeBusy
}

func (h *halHID) Write(p []byte) (int, error) {
	if len(p) > mcpMaxTransfer {
		return 0, errTransferSize
	}

	req := append([]byte{byte(len(p)), byte(len(p) >> 8), h.addr << 1}, p...)
	rsp, err := h.command(mcpI2CWrite, req)
	if err != nil {
		return 0, err
	}
	if rsp[1] != 0 {
		return 0, h.cancel(errBridgeBusy)
	}

	if err := h.waitIdle(); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (h *halHID) Read(p []byte) (int, error) {
	if len(p) > mcpMaxTransfer {
		return 0, errTransferSize
	}

	req := []byte{byte(len(p)), byte(len(p) >> 8), h.addr<<1 | 1}
	rsp, err := h.command(mcpI2CRead, req)
	if err != nil {
		return 0, err
	}
	if rsp[1] != 0 {
		return 0, h.cancel(errBridgeBusy)
	}

	for i := 0; i <= h.retries; i++ {
		rsp, err := h.command(mcpI2CReadData, nil)
		if err != nil {
			return 0, err
		}
		if rsp[2] == mcpStateAddrNACK {
			return 0, h.cancel(ErrNACK)
		}
		if rsp[1] == 0 && rsp[3] != mcpReadFailure {
			n := copy(p, rsp[4:4+min(int(rsp[3]), mcpMaxTransfer)])
			return n, nil
		}
		time.Sleep(h.delay)
	}
	return 0, h.cancel(errBridgeTimeout)
}

// waitIdle polls the bridge until the current transfer has completed.
func (h *halHID) waitIdle() error {
	for i := 0; i <= h.retries; i++ {
		rsp, err := h.command(mcpStatus, nil)
		if err != nil {
			return err
		}
		switch state := rsp[8]; {
		case state == mcpStateIdle:
			return nil
		case state == mcpStateAddrNACK:
			return h.cancel(ErrNACK)
		case mcpStateTimeout(state):
			return h.cancel(errBridgeTimeout)
		}
		time.Sleep(h.delay)
	}
	return h.cancel(errBridgeTimeout)
}

// cancel aborts the transfer in progress and returns err, or the error of
// the cancel request when err is nil.
func (h *halHID) cancel(err error) error {
	_, cerr := h.command(mcpStatus, []byte{0x00, mcpCancel})
	if err != nil {
		return err
	}
	return cerr
}

// command sends one report and returns the response report.
func (h *halHID) command(cmd byte, payload []byte) ([]byte, error) {
	for i := range h.buf {
		h.buf[i] = 0
	}
	h.buf[0] = cmd
	copy(h.buf[1:], payload)
	if _, err := h.phy.Write(h.buf); err != nil {
		return nil, err
	}

	rsp := make([]byte, len(h.buf))
	n, err := h.phy.Read(rsp)
	if err != nil {
		return nil, err
	}
	if n < mcpReportSize {
		return nil, errShortRead
	}
	if rsp[0] != cmd {
		return nil, fmt.Errorf("rv1805: bridge answered %#02x to command %#02x", rsp[0], cmd)
	}
	return rsp, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
