package rv1805

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/cryptobyte"
)

// timeBlock holds the BCD encoded time and date registers 0x00-0x07:
// hundredths, seconds, minutes, hours, date, month, year and weekday.
type timeBlock [timeBlockSize]byte

// load fills the block from big-endian 32-bit words as read from the device.
func (tb *timeBlock) load(raw []byte) error {
	s := cryptobyte.String(raw)
	for i := 0; i < len(tb); i += 4 {
		var w uint32
		if !s.ReadUint32(&w) {
			return errShortRead
		}
		tb[i] = byte(w >> 24)
		tb[i+1] = byte(w >> 16)
		tb[i+2] = byte(w >> 8)
		tb[i+3] = byte(w)
	}
	return nil
}

// field decodes the register at offset reg.
func (tb *timeBlock) field(reg int) int {
	return BCDToDecimal(tb[reg])
}

// marshalBlock returns a register tagged write of fields, starting at reg.
func marshalBlock(reg byte, fields []byte) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddUint8(reg)
	b.AddBytes(fields)
	return b.Bytes()
}

// UpdateTime reads the time and date registers into the cache.
//
// The getters never read the device; call UpdateTime first.
func (d *Dev) UpdateTime(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var raw [timeBlockSize]byte
	if err := d.readBlock(ctx, regHundredths, raw[:4], raw[4:]); err != nil {
		return err
	}
	return d.cache.load(raw[:])
}

// SetTime writes seconds, minutes and hours (24 hour format) to the device.
//
// The hundredths register is cleared in the cache. Values outside the
// register range are rejected with a *RangeError before the bus is used.
func (d *Dev) SetTime(ctx context.Context, sec, min, hour int) error {
	if err := validateTime(sec, min, hour); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setTime(ctx, sec, min, hour)
}

func (d *Dev) setTime(ctx context.Context, sec, min, hour int) error {
	d.cache[regHundredths] = DecimalToBCD(0)
	d.cache[regSeconds] = DecimalToBCD(sec)
	d.cache[regMinutes] = DecimalToBCD(min)
	d.cache[regHours] = DecimalToBCD(hour)

	b, err := marshalBlock(regSeconds, d.cache[regSeconds:regHours+1])
	if err != nil {
		return err
	}
	return d.write(ctx, b)
}

// SetDate writes the day of month, month and two digit year to the device.
func (d *Dev) SetDate(ctx context.Context, date, month, year int) error {
	if err := validateDate(date, month, year); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setDate(ctx, date, month, year)
}

func (d *Dev) setDate(ctx context.Context, date, month, year int) error {
	d.cache[regDate] = DecimalToBCD(date)
	d.cache[regMonths] = DecimalToBCD(month)
	d.cache[regYears] = DecimalToBCD(year)

	b, err := marshalBlock(regDate, d.cache[regDate:regYears+1])
	if err != nil {
		return err
	}
	return d.write(ctx, b)
}

// SetClock writes both time and date from t, converted to UTC.
//
// The year must be within 2000-2099.
func (d *Dev) SetClock(ctx context.Context, t time.Time) error {
	t = t.UTC()
	if err := checkRange("year", t.Year(), century, century+99); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.setTime(ctx, t.Second(), t.Minute(), t.Hour()); err != nil {
		return err
	}
	return d.setDate(ctx, t.Day(), int(t.Month()), t.Year()-century)
}

func validateTime(sec, min, hour int) error {
	if err := checkRange("second", sec, 0, 59); err != nil {
		return err
	}
	if err := checkRange("minute", min, 0, 59); err != nil {
		return err
	}
	return checkRange("hour", hour, 0, 23)
}

func validateDate(date, month, year int) error {
	if err := checkRange("date", date, 1, 31); err != nil {
		return err
	}
	if err := checkRange("month", month, 1, 12); err != nil {
		return err
	}
	return checkRange("year", year, 0, 99)
}

// century is added to the two digit year register.
const century = 2000

func (d *Dev) cached(reg int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cache.field(reg)
}

// Hour returns the cached hour.
func (d *Dev) Hour() int { return d.cached(regHours) }

// Minute returns the cached minute.
func (d *Dev) Minute() int { return d.cached(regMinutes) }

// Second returns the cached second.
func (d *Dev) Second() int { return d.cached(regSeconds) }

// Date returns the cached day of month.
func (d *Dev) Date() int { return d.cached(regDate) }

// Month returns the cached month.
func (d *Dev) Month() int { return d.cached(regMonths) }

// Year returns the cached two digit year.
func (d *Dev) Year() int { return d.cached(regYears) }

// StringDate formats the cached date as yy/mm/dd.
func (d *Dev) StringDate() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := &d.cache
	return fmt.Sprintf("%02d/%02d/%02d", c.field(regYears), c.field(regMonths), c.field(regDate))
}

// StringTime formats the cached time as hh:mm:ss.
func (d *Dev) StringTime() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := &d.cache
	return fmt.Sprintf("%02d:%02d:%02d", c.field(regHours), c.field(regMinutes), c.field(regSeconds))
}

// Time returns the cached time and date in UTC.
//
// The device does not store the century; years are in 2000-2099. A cache
// that was never filled yields a time that normalizes to 1999-11-30.
func (d *Dev) Time() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := &d.cache
	return time.Date(
		century+c.field(regYears),
		time.Month(c.field(regMonths)),
		c.field(regDate),
		c.field(regHours),
		c.field(regMinutes),
		c.field(regSeconds),
		c.field(regHundredths)*int(10*time.Millisecond),
		time.UTC,
	)
}
