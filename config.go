package ds7505

// Config mirrors the device configuration register as named fields so that
// partial updates always go through unpack, modify and pack instead of raw
// bit twiddling on a byte.
type Config struct {
	// NVBusy reports an NV memory write in progress. The bit is read-only;
	// pack never sets it and the driver never caches it.
	NVBusy     bool
	Resolution Resolution
	Fault      FaultTolerance
	// InvertPolarity makes the O.S. output active-high.
	InvertPolarity bool
	// InterruptMode switches the thermostat from comparator to interrupt
	// operating mode (the TM bit).
	InterruptMode bool
	// Shutdown stops conversions. The device still responds on the bus.
	Shutdown bool
}

// pack serializes the configuration to the register wire format. Resolution
// and fault tolerance are masked to their two-bit fields.
func (c Config) pack() uint8 {
	b := uint8(c.Resolution)<<configResShift&configResMask |
		uint8(c.Fault)<<configFaultShift&configFaultMask
	if c.InvertPolarity {
		b |= configPol
	}
	if c.InterruptMode {
		b |= configTM
	}
	if c.Shutdown {
		b |= configSD
	}
	return b
}

func unpackConfig(b uint8) Config {
	return Config{
		NVBusy:         b&configNVB != 0,
		Resolution:     Resolution(b & configResMask >> configResShift),
		Fault:          FaultTolerance(b & configFaultMask >> configFaultShift),
		InvertPolarity: b&configPol != 0,
		InterruptMode:  b&configTM != 0,
		Shutdown:       b&configSD != 0,
	}
}
