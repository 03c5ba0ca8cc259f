package rv1805

import (
	"context"

	"periph.io/x/conn/v3/i2c"
)

// NewI2CDev returns a device on the I²C bus in cfg.
func NewI2CDev(ctx context.Context, cfg IfaceConfig) (*Dev, error) {
	return New(ctx, newHALI2C(cfg), cfg)
}

type halI2C struct {
	dev *i2c.Dev
}

func newHALI2C(cfg IfaceConfig) *halI2C {
	return &halI2C{
		dev: &i2c.Dev{Bus: cfg.I2C.Bus, Addr: cfg.I2C.Address},
	}
}

func (h *halI2C) Write(p []byte) (int, error) {
	return h.dev.Write(p)
}

func (h *halI2C) Read(p []byte) (int, error) {
	if err := h.dev.Tx(nil, p); err != nil {
		return 0, err
	}
	return len(p), nil
}
