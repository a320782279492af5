package ds7505

// Resolution selects the conversion resolution. Higher resolutions take
// longer per conversion but do not change the register wire format.
type Resolution int

const (
	Res9Bit Resolution = iota
	Res10Bit
	Res11Bit
	Res12Bit
)

// step returns the temperature step for the resolution in degrees Celsius.
func (r Resolution) step() float64 {
	return 0.5 / float64(uint(1)<<uint(r))
}

// FaultTolerance sets how many consecutive out-of-limit conversions must
// occur before the thermostat output triggers.
type FaultTolerance int

const (
	Fault1 FaultTolerance = iota
	Fault2
	Fault4
	Fault6
)

// Register selects one of the four device registers.
type Register uint8

const (
	RegTemp Register = iota // current temperature, read-only
	RegConfig
	RegHyst // thermostat hysteresis setpoint
	RegTrip // thermostat trip setpoint (O.S.)
)

// Command codes for the device maintenance operations. They carry no
// operand and no register pointer.
type Command uint8

const (
	CmdRecallData   Command = 0xB8 // reload config and setpoints from NV memory
	CmdCopyData     Command = 0x48 // copy config and setpoints to NV memory
	CmdPowerOnReset Command = 0x54 // software power-on reset
)

// The upper nibble of the bus address is the fixed 1001 family code, the
// low three bits come from the A2/A1/A0 strap pins.
const baseAddr uint16 = 0x48

// Configuration register layout, MSB to LSB: [NVB R1 R0 F1 F0 POL TM SD].
const (
	configNVB        uint8 = 0x80
	configResMask    uint8 = 0x60
	configResShift         = 5
	configFaultMask  uint8 = 0x18
	configFaultShift       = 3
	configPol        uint8 = 0x04
	configTM         uint8 = 0x02
	configSD         uint8 = 0x01
)

// Sensor operating range in degrees Celsius.
const (
	minTemp = -55.0
	maxTemp = 125.0
)
