package rv1805

import (
	"context"
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

func updateOps(block [8]byte) []i2ctest.IO {
	return []i2ctest.IO{
		{Addr: DefaultAddress, W: []byte{regHundredths}},
		{Addr: DefaultAddress, R: block[:4]},
		{Addr: DefaultAddress, R: block[4:]},
	}
}

func TestUpdateTime(t *testing.T) {
	block := [8]byte{0x42, 0x05, 0x30, 0x09, 0x24, 0x12, 0x23, 0x02}
	d, bus := newPlaybackDev(t, initOps(0x18, 0x00), updateOps(block))

	if err := d.UpdateTime(context.Background()); err != nil {
		t.Fatal(err)
	}
	closePlayback(t, bus)

	if d.Hour() != 9 || d.Minute() != 30 || d.Second() != 5 {
		t.Errorf("got %d:%d:%d want 9:30:5", d.Hour(), d.Minute(), d.Second())
	}
	if d.Year() != 23 || d.Month() != 12 || d.Date() != 24 {
		t.Errorf("got %d/%d/%d want 23/12/24", d.Year(), d.Month(), d.Date())
	}
	if got, want := d.StringTime(), "09:30:05"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if got, want := d.StringDate(), "23/12/24"; got != want {
		t.Errorf("got %q want %q", got, want)
	}

	want := time.Date(2023, time.December, 24, 9, 30, 5, 420*int(time.Millisecond), time.UTC)
	if got := d.Time(); !got.Equal(want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestUpdateTimeReplacesSetTime(t *testing.T) {
	block := [8]byte{0x00, 0x59, 0x01, 0x23, 0x01, 0x01, 0x18, 0x01}
	d, bus := newPlaybackDev(t,
		initOps(0x18, 0x00),
		[]i2ctest.IO{{Addr: DefaultAddress, W: []byte{regSeconds, 0x05, 0x30, 0x09}}},
		updateOps(block),
	)

	ctx := context.Background()
	if err := d.SetTime(ctx, 5, 30, 9); err != nil {
		t.Fatal(err)
	}
	if err := d.UpdateTime(ctx); err != nil {
		t.Fatal(err)
	}
	closePlayback(t, bus)

	if d.Hour() != 23 || d.Minute() != 1 || d.Second() != 59 {
		t.Errorf("got %d:%d:%d want 23:1:59", d.Hour(), d.Minute(), d.Second())
	}
}

func TestSetTime(t *testing.T) {
	d, bus := newPlaybackDev(t,
		initOps(0x18, 0x00),
		[]i2ctest.IO{{Addr: DefaultAddress, W: []byte{regSeconds, 0x05, 0x30, 0x09}}},
	)

	if err := d.SetTime(context.Background(), 5, 30, 9); err != nil {
		t.Fatal(err)
	}
	closePlayback(t, bus)

	if got, want := d.StringTime(), "09:30:05"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestSetDate(t *testing.T) {
	d, bus := newPlaybackDev(t,
		initOps(0x18, 0x00),
		[]i2ctest.IO{{Addr: DefaultAddress, W: []byte{regDate, 0x01, 0x01, 0x18}}},
	)

	if err := d.SetDate(context.Background(), 1, 1, 18); err != nil {
		t.Fatal(err)
	}
	closePlayback(t, bus)

	if got, want := d.StringDate(), "18/01/01"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestSetClock(t *testing.T) {
	f := newFakeRTC()
	d, err := New(context.Background(), f, IfaceConfig{})
	if err != nil {
		t.Fatal(err)
	}

	in := time.Date(2031, time.July, 4, 18, 7, 3, 0, time.FixedZone("CEST", 2*60*60))
	if err := d.SetClock(context.Background(), in); err != nil {
		t.Fatal(err)
	}
	if err := d.UpdateTime(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := d.Time(); !got.Equal(in) {
		t.Errorf("got %v want %v", got, in)
	}
	if got, want := f.regs[regHours], byte(0x16); got != want {
		t.Errorf("hours register %#02x want %#02x", got, want)
	}

	err = d.SetClock(context.Background(), time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrRange) {
		t.Errorf("got %v want %v", err, ErrRange)
	}
}

func TestSetRange(t *testing.T) {
	testCases := []struct {
		name  string
		set   func(d *Dev) error
		field string
		value int
	}{
		{"second", func(d *Dev) error { return d.SetTime(context.Background(), 60, 0, 0) }, "second", 60},
		{"minute", func(d *Dev) error { return d.SetTime(context.Background(), 0, -1, 0) }, "minute", -1},
		{"hour", func(d *Dev) error { return d.SetTime(context.Background(), 0, 0, 24) }, "hour", 24},
		{"date", func(d *Dev) error { return d.SetDate(context.Background(), 0, 1, 0) }, "date", 0},
		{"month", func(d *Dev) error { return d.SetDate(context.Background(), 1, 13, 0) }, "month", 13},
		{"year", func(d *Dev) error { return d.SetDate(context.Background(), 1, 1, 100) }, "year", 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// no transactions are expected after init
			d, bus := newPlaybackDev(t, initOps(0x18, 0x00))

			err := tc.set(d)
			if !errors.Is(err, ErrRange) {
				t.Fatalf("got %v want %v", err, ErrRange)
			}
			var rerr *RangeError
			if !errors.As(err, &rerr) {
				t.Fatalf("%T is not a *RangeError", err)
			}
			if rerr.Field != tc.field || rerr.Value != tc.value {
				t.Errorf("got %s=%d want %s=%d", rerr.Field, rerr.Value, tc.field, tc.value)
			}
			closePlayback(t, bus)
		})
	}
}

func TestUpdateTimeBusError(t *testing.T) {
	f := newFakeRTC()
	d, err := New(context.Background(), f, IfaceConfig{})
	if err != nil {
		t.Fatal(err)
	}
	f.regs[regSeconds] = 0x42
	if err := d.UpdateTime(context.Background()); err != nil {
		t.Fatal(err)
	}

	// the second read of the block fails; the cache keeps the last values
	f.failAt = f.ops + 2
	if err := d.UpdateTime(context.Background()); !errors.Is(err, f.err) {
		t.Errorf("got %v want %v", err, f.err)
	}
	if d.Second() != 42 {
		t.Errorf("second %d want 42", d.Second())
	}
}

func TestTimeBlockLoad(t *testing.T) {
	var tb timeBlock
	if err := tb.load([]byte{1, 2, 3, 4, 5, 6, 7}); err != errShortRead {
		t.Errorf("got %v want %v", err, errShortRead)
	}
	if err := tb.load([]byte{1, 2, 3, 4, 5, 6, 7, 8}); err != nil {
		t.Fatal(err)
	}
	if tb != (timeBlock{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("got % x", tb[:])
	}
}

func TestRangeErrorMessage(t *testing.T) {
	err := checkRange("month", 13, 1, 12)
	if got, want := err.Error(), "rv1805: month 13 out of range [1, 12]"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if checkRange("month", 12, 1, 12) != nil {
		t.Error("12 is a valid month")
	}
}
