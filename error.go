package ds7505

import "fmt"

// ThermostatError reports a rejected thermostat request. The device is not
// touched: trip must not be below hysteresis and both setpoints must lie
// within the -55..+125 C operating range.
type ThermostatError struct {
	// Rejected setpoints in degrees Celsius, after any unit conversion.
	Trip       float64
	Hysteresis float64
}

func (e *ThermostatError) Error() string {
	return fmt.Sprintf("invalid thermostat setpoints: trip=%g hysteresis=%g", e.Trip, e.Hysteresis)
}

// RegisterError reports a temperature read from a register that does not
// hold a temperature.
type RegisterError struct {
	Reg Register
}

func (e *RegisterError) Error() string {
	return fmt.Sprintf("register %#02x does not hold a temperature", uint8(e.Reg))
}
