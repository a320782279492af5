// Package ds7505 controls a Maxim DS7505 digital thermometer and
// thermostat over I²C.
//
// The device exposes the current temperature and two thermostat setpoint
// registers (trip and hysteresis) in a two-byte sign-magnitude fixed-point
// format, plus a configuration register selecting conversion resolution,
// thermostat fault tolerance, output polarity, operating mode and
// shutdown. Setpoints and configuration can be persisted to NV memory
// through pass-through commands.
//
// The ds7505.Dev type implements the physic.SenseEnv interface.
//
// Datasheet: https://www.analog.com/media/en/technical-documentation/data-sheets/DS7505.pdf
package ds7505
