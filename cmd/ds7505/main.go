package main

import (
	"flag"
	"log"
	"time"

	"github.com/pix/ds7505"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

func main() {
	bus := flag.String("bus", "", "Name of the I2C bus")
	a2 := flag.Uint("a2", 0, "A2 address strap pin (0 or 1)")
	a1 := flag.Uint("a1", 0, "A1 address strap pin (0 or 1)")
	a0 := flag.Uint("a0", 0, "A0 address strap pin (0 or 1)")
	resFlag := flag.Uint("res", 12, "Conversion resolution in bits (9-12)")
	flag.Parse()

	_, err := host.Init()
	if err != nil {
		log.Fatal(err)
	}

	b, err := i2creg.Open(*bus)
	if err != nil {
		log.Fatal(err)
	}

	var res ds7505.Resolution
	switch *resFlag {
	case 9:
		res = ds7505.Res9Bit
	case 10:
		res = ds7505.Res10Bit
	case 11:
		res = ds7505.Res11Bit
	case 12:
		res = ds7505.Res12Bit
	default:
		log.Fatal("Invalid resolution")
	}

	opts := &ds7505.Opts{
		A2:         uint8(*a2),
		A1:         uint8(*a1),
		A0:         uint8(*a0),
		Resolution: res,
	}
	dev, err := ds7505.New(b, opts)
	if err != nil {
		log.Fatal(err)
	}

	ticker := time.NewTicker(1 * time.Second)

	for {
		var e physic.Env
		err = dev.Sense(&e)
		if err != nil {
			log.Print(err)
		}
		log.Printf("Temperature: %f", e.Temperature.Celsius())

		<-ticker.C
	}
}
