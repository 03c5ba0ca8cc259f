package rv1805

// DefaultAddress is the fixed 7-bit I²C address of the RV-1805.
const DefaultAddress = 0x69

// Time and date registers. The layout matches the time block cache.
const (
	regHundredths = 0x00
	regSeconds    = 0x01
	regMinutes    = 0x02
	regHours      = 0x03
	regDate       = 0x04
	regMonths     = 0x05
	regYears      = 0x06
	regWeekdays   = 0x07
)

// Configuration registers.
const (
	regControl1   = 0x10
	regOscControl = 0x1C
	regConfigKey  = 0x1F
	regTrickle    = 0x20
	regIOBatMode  = 0x27
	regID0        = 0x28
	regOutControl = 0x30
)

// Control1 bits.
const (
	// ctrl1Mode12 selects 12 hour mode when set.
	ctrl1Mode12 = 0x40
	// ctrl1ARST clears interrupt flags when the status register is read.
	ctrl1ARST = 0x04
	// ctrl1WRTC enables writes to the time and date registers.
	ctrl1WRTC = 0x01
)

// Hours register bits in 12 hour mode.
const (
	hoursPM     = 0x20
	hours12Mask = 0x1F
)

// Configuration key values. A key write unlocks exactly one write to a
// protected register.
const (
	// configKeyRegisters unlocks Trickle, BREF, AFCTRL, IOBatMode and OutControl.
	configKeyRegisters = 0x9D
	// configKeyOscillator unlocks the oscillator control register.
	configKeyOscillator = 0xA1
)

// Trickle charge register fields.
const (
	trickleEnable        = 0b1010 << 4
	trickleDiodeStandard = 0b01 << 2
	trickleResistor3k    = 0b01

	trickleConfig = trickleEnable | trickleDiodeStandard | trickleResistor3k
)

// Low power register values.
const (
	// ioBatDisable disables the I/O interface while running from backup power.
	ioBatDisable = 0x00
	// outControlLowPower disables the unused output drivers.
	outControlLowPower = 0x30
	// oscControlLowPower selects the RC oscillator on backup power with
	// autocalibration and automatic switchover on oscillator failure.
	oscControlLowPower = 0b1111_1100
)

// timeBlockSize is the number of registers read by UpdateTime.
const timeBlockSize = regWeekdays + 1
