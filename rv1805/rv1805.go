package rv1805

import (
	"context"
	"sync"
)

type Dev struct {
	// mu serializes register sequences and access to the time block cache.
	mu  sync.Mutex
	hal HAL
	cfg IfaceConfig
	log Logger

	cache   timeBlock
	partsNo byte
}

// New returns a new RV-1805 device using the supplied HAL for communication.
//
// The device is initialized before New returns. On error the device is
// still returned; it may be partially configured.
func New(ctx context.Context, hal HAL, cfg IfaceConfig) (*Dev, error) {
	d := &Dev{
		hal: hal,
		cfg: cfg,
		log: getLogger(cfg),
	}
	d.hal = &halDebug{"rtc", d.log, d.hal}
	return d, d.Init(ctx)
}

// Init runs the initialization sequence.
//
// It reads the part number, enables the trickle charger, configures low
// power operation, sets auto reset and write enable in Control1 and finally
// switches the device to 24 hour mode. A bus error aborts the sequence; the
// registers written so far are not rolled back.
func (d *Dev) Init(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	id, err := d.readRegister(ctx, regID0)
	if err != nil {
		return err
	}
	d.partsNo = id
	d.log.Printf("rv1805: part %s", PartName(id))

	if err := d.enableTrickleCharge(ctx); err != nil {
		return err
	}
	if err := d.enableLowPower(ctx); err != nil {
		return err
	}

	ctrl, err := d.readRegister(ctx, regControl1)
	if err != nil {
		return err
	}
	ctrl |= ctrl1ARST | ctrl1WRTC
	if err := d.writeRegister(ctx, regControl1, ctrl); err != nil {
		return err
	}

	return d.set24Hour(ctx)
}

// PartsNumber returns the ID0 register value read by Init.
func (d *Dev) PartsNumber() byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.partsNo
}

// DeviceType returns the device type derived from PartsNumber.
func (d *Dev) DeviceType() DeviceType {
	return DeviceTypeFromID(d.PartsNumber())
}

// EnableTrickleCharge enables the backup supply trickle charger with a
// standard diode and a 3 kΩ series resistor.
func (d *Dev) EnableTrickleCharge(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enableTrickleCharge(ctx)
}

func (d *Dev) enableTrickleCharge(ctx context.Context) error {
	return d.writeProtected(ctx, configKeyRegisters, regTrickle, trickleConfig)
}

// EnableLowPower configures the device for the lowest power consumption
// while running from the backup supply.
func (d *Dev) EnableLowPower(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enableLowPower(ctx)
}

func (d *Dev) enableLowPower(ctx context.Context) error {
	seq := []struct {
		key, reg, value byte
	}{
		{configKeyRegisters, regIOBatMode, ioBatDisable},
		{configKeyRegisters, regOutControl, outControlLowPower},
		{configKeyOscillator, regOscControl, oscControlLowPower},
	}
	for _, s := range seq {
		if err := d.writeProtected(ctx, s.key, s.reg, s.value); err != nil {
			return err
		}
	}
	return nil
}

// writeProtected unlocks the configuration key and writes one protected
// register. The key is consumed by the write that follows it.
func (d *Dev) writeProtected(ctx context.Context, key, reg, value byte) error {
	if err := d.writeRegister(ctx, regConfigKey, key); err != nil {
		return err
	}
	return d.writeRegister(ctx, reg, value)
}

// Is12Hour returns true if the device keeps hours in 12 hour mode.
func (d *Dev) Is12Hour(ctx context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.is12Hour(ctx)
}

func (d *Dev) is12Hour(ctx context.Context) (bool, error) {
	ctrl, err := d.readRegister(ctx, regControl1)
	if err != nil {
		return false, err
	}
	return ctrl&ctrl1Mode12 != 0, nil
}

// Set24Hour switches the device to 24 hour mode and rewrites the hours
// register in the new format.
//
// It does nothing if the device already is in 24 hour mode.
func (d *Dev) Set24Hour(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.set24Hour(ctx)
}

func (d *Dev) set24Hour(ctx context.Context) error {
	if is12, err := d.is12Hour(ctx); err != nil || !is12 {
		return err
	}

	hour, err := d.readRegister(ctx, regHours)
	if err != nil {
		return err
	}
	pm := hour&hoursPM != 0

	ctrl, err := d.readRegister(ctx, regControl1)
	if err != nil {
		return err
	}
	ctrl &^= ctrl1Mode12
	if err := d.writeRegister(ctx, regControl1, ctrl); err != nil {
		return err
	}

	h := to24Hour(BCDToDecimal(hour&hours12Mask), pm)
	return d.writeRegister(ctx, regHours, DecimalToBCD(h))
}

// to24Hour converts a 12 hour clock value. 12 PM would become 24 and is
// folded back to 12.
func to24Hour(hour int, pm bool) int {
	if pm {
		hour += 12
	} else if hour == 12 {
		hour = 0
	}
	if hour == 24 {
		hour = 12
	}
	return hour
}

// readRegister selects reg and reads back one byte.
func (d *Dev) readRegister(ctx context.Context, reg byte) (byte, error) {
	var buf [1]byte
	if err := d.readBlock(ctx, reg, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// writeRegister writes value to reg in a single transaction.
func (d *Dev) writeRegister(ctx context.Context, reg, value byte) error {
	return d.write(ctx, []byte{reg, value})
}

// readBlock selects reg and fills each of bufs with its own read
// transaction. The register pointer auto increments between reads.
func (d *Dev) readBlock(ctx context.Context, reg byte, bufs ...[]byte) error {
	if err := d.write(ctx, []byte{reg}); err != nil {
		return err
	}
	for _, b := range bufs {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := d.hal.Read(b)
		if err != nil {
			return err
		}
		if n != len(b) {
			return errShortRead
		}
	}
	return nil
}

func (d *Dev) write(ctx context.Context, b []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := d.hal.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return errShortWrite
	}
	return nil
}
