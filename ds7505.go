package ds7505

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Opts holds the hardware configuration of the sensor.
type Opts struct {
	// A2, A1 and A0 mirror the address strap pins. Only the lowest bit of
	// each is used.
	A2, A1, A0 uint8
	Resolution Resolution
}

func DefaultOpts() *Opts {
	return &Opts{Resolution: Res12Bit}
}

// Addr returns the 7-bit bus address selected by the three strap pins.
func Addr(a2, a1, a0 uint8) uint16 {
	return baseAddr | uint16(a2&1)<<2 | uint16(a1&1)<<1 | uint16(a0&1)
}

// Maximum conversion time per resolution, indexed by Resolution.
var convTimes = [4]time.Duration{
	25 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	200 * time.Millisecond,
}

// New returns a DS7505 on the given bus, addressed by the strap pins in
// opts, and writes the initial configuration register. Besides selecting
// the resolution this resets fault tolerance to a single conversion,
// non-inverted polarity, comparator mode and shutdown off.
func New(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = DefaultOpts()
	}
	if opts.Resolution < Res9Bit || opts.Resolution > Res12Bit {
		return nil, fmt.Errorf("ds7505: invalid resolution: %d", opts.Resolution)
	}

	d := &Dev{
		d:      &i2c.Dev{Bus: b, Addr: Addr(opts.A2, opts.A1, opts.A0)},
		config: Config{Resolution: opts.Resolution},
	}
	if err := d.writeConfig(); err != nil {
		return nil, err
	}
	return d, nil
}

// Dev is a handle to a DS7505. The configuration register is cached on
// every write and partial updates modify the cached value, never a fresh
// device read, so fields set earlier survive later updates.
type Dev struct {
	d *i2c.Dev

	mu     sync.Mutex
	config Config
	stop   chan struct{}
	wg     sync.WaitGroup
}

func (d *Dev) String() string {
	return fmt.Sprintf("ds7505{%s}", d.d)
}

// Temperature reads one of the temperature registers: RegTemp, RegHyst or
// RegTrip. RegConfig is rejected with a RegisterError before any bus
// access.
func (d *Dev) Temperature(reg Register) (physic.Temperature, error) {
	if reg == RegConfig || reg > RegTrip {
		return 0, d.wrap(&RegisterError{Reg: reg})
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	h, l, err := d.readReg(reg)
	if err != nil {
		return 0, err
	}
	return celsiusToTemp(decodeTemp(h, l)), nil
}

// Celsius reads a temperature register in degrees Celsius.
func (d *Dev) Celsius(reg Register) (float64, error) {
	t, err := d.Temperature(reg)
	if err != nil {
		return 0, err
	}
	return t.Celsius(), nil
}

// Fahrenheit reads a temperature register in degrees Fahrenheit.
func (d *Dev) Fahrenheit(reg Register) (float64, error) {
	t, err := d.Temperature(reg)
	if err != nil {
		return 0, err
	}
	return t.Fahrenheit(), nil
}

// Unit tags the measurement unit of a Thermostat's setpoints.
type Unit int

const (
	Celsius Unit = iota
	Fahrenheit
)

// Thermostat describes a thermostat request. The zero Unit is Celsius.
type Thermostat struct {
	// Trip point and hysteresis setpoints, in Unit. The O.S. output
	// triggers above Trip and releases below Hysteresis.
	Trip       float64
	Hysteresis float64
	Fault      FaultTolerance
	Unit       Unit
}

// ThermostatCelsius returns a thermostat request with the hysteresis 5
// degrees below the trip point and a fault tolerance of one conversion.
func ThermostatCelsius(trip float64) Thermostat {
	return Thermostat{Trip: trip, Hysteresis: trip - 5}
}

// ThermostatFahrenheit is ThermostatCelsius with both setpoints in
// degrees Fahrenheit.
func ThermostatFahrenheit(trip float64) Thermostat {
	return Thermostat{Trip: trip, Hysteresis: trip - 5, Unit: Fahrenheit}
}

func fahrenheitToCelsius(f float64) float64 {
	return (f - 32.0) * 5.0 / 9.0
}

// SetThermostat writes the trip and hysteresis setpoint registers and the
// fault tolerance. Setpoints are converted to Celsius once on entry. A
// trip below the hysteresis or a setpoint outside the operating range
// returns a ThermostatError without touching the device. The two setpoint
// writes are independent transactions; a failure in between leaves the
// device with the old hysteresis and the new trip point.
func (d *Dev) SetThermostat(t Thermostat) error {
	trip, hyst := t.Trip, t.Hysteresis
	if t.Unit == Fahrenheit {
		trip = fahrenheitToCelsius(trip)
		hyst = fahrenheitToCelsius(hyst)
	}
	if trip < hyst || trip < minTemp || trip > maxTemp || hyst < minTemp || hyst > maxTemp {
		return d.wrap(&ThermostatError{Trip: trip, Hysteresis: hyst})
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	th, tl := encodeTemp(trip)
	if err := d.d.Tx([]byte{byte(RegTrip), th, tl}, nil); err != nil {
		return d.wrap(err)
	}
	hh, hl := encodeTemp(hyst)
	if err := d.d.Tx([]byte{byte(RegHyst), hh, hl}, nil); err != nil {
		return d.wrap(err)
	}
	d.config.Fault = t.Fault
	return d.writeConfig()
}

// SetConfig writes the full configuration register and replaces the cached
// copy. No validation is performed; the NVBusy field is read-only and
// never written.
func (d *Dev) SetConfig(c Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.config = c
	return d.writeConfig()
}

// Config returns the cached configuration as last written.
func (d *Dev) Config() Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.config
}

// ReadConfig reads the configuration register from the device, including
// the NVBusy status bit. The cached copy is not updated; after CmdCopyData
// this is the way to poll for the NV write to finish.
func (d *Dev) ReadConfig() (Config, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [1]byte
	if err := d.d.Tx([]byte{byte(RegConfig)}, buf[:]); err != nil {
		return Config{}, d.wrap(err)
	}
	return unpackConfig(buf[0]), nil
}

// Shutdown stops or restarts conversions through the SD configuration bit.
// The device keeps responding on the bus while shut down.
func (d *Dev) Shutdown(stop bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.config.Shutdown = stop
	return d.writeConfig()
}

// SendCommand transmits one of the maintenance command codes: a single
// byte with no register pointer and no operand. The codes are opaque to
// the driver and pass through unvalidated.
func (d *Dev) SendCommand(cmd Command) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.d.Tx([]byte{byte(cmd)}, nil); err != nil {
		return d.wrap(err)
	}
	return nil
}

// Sense reads the current temperature. Implements physic.SenseEnv.
func (d *Dev) Sense(e *physic.Env) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return d.wrap(errors.New("already sensing continuously"))
	}
	return d.sense(e)
}

func (d *Dev) sense(e *physic.Env) error {
	h, l, err := d.readReg(RegTemp)
	if err != nil {
		return err
	}
	e.Temperature = celsiusToTemp(decodeTemp(h, l))
	return nil
}

// SenseContinuous reads the temperature on the given interval until Halt
// is called. The interval is floored to the conversion time of the
// configured resolution.
//
// It's the responsibility of the caller to drain the channel fast enough,
// otherwise the interval may not be respected.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	// Stop a previous reader first; Halt waits with the lock released so
	// the reader can finish a sense in flight.
	if err := d.Halt(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	sensing := make(chan physic.Env)
	d.stop = make(chan struct{})
	d.wg.Add(1)
	go func(stop chan struct{}) {
		defer d.wg.Done()
		defer close(sensing)
		d.sensingContinuous(interval, sensing, stop)
	}(d.stop)
	return sensing, nil
}

func (d *Dev) sensingContinuous(interval time.Duration, sensing chan<- physic.Env, stop <-chan struct{}) {
	d.mu.Lock()
	floor := convTimes[d.config.Resolution]
	d.mu.Unlock()
	if interval < floor {
		interval = floor
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		e := physic.Env{}
		d.mu.Lock()
		err := d.sense(&e)
		d.mu.Unlock()
		if err != nil {
			return
		}
		select {
		case sensing <- e:
		case <-stop:
			return
		}
		select {
		case <-stop:
			return
		case <-t.C:
		}
	}
}

// Precision reports the temperature step of the configured resolution.
// Implements physic.SenseEnv.
func (d *Dev) Precision(e *physic.Env) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e.Temperature = physic.Temperature(d.config.Resolution.step() * float64(physic.Celsius))
}

// Halt stops a SenseContinuous reader. Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	if d.stop == nil {
		d.mu.Unlock()
		return nil
	}
	close(d.stop)
	d.stop = nil
	// Wait with the lock released. The reader takes it for each sense.
	d.mu.Unlock()
	d.wg.Wait()
	return nil
}

// readReg selects reg and reads the two-byte register value. mu must be
// held.
func (d *Dev) readReg(reg Register) (uint8, uint8, error) {
	var buf [2]byte
	if err := d.d.Tx([]byte{byte(reg)}, buf[:]); err != nil {
		return 0, 0, d.wrap(err)
	}
	return buf[0], buf[1], nil
}

// writeConfig writes the cached configuration register. mu must be held.
func (d *Dev) writeConfig() error {
	if err := d.d.Tx([]byte{byte(RegConfig), d.config.pack()}, nil); err != nil {
		return d.wrap(err)
	}
	return nil
}

func celsiusToTemp(c float64) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(c*float64(physic.Celsius))
}

func (d *Dev) wrap(err error) error {
	return fmt.Errorf("ds7505: %w", err)
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
