// Command saned-client connects to a SANE network daemon, lists its
// devices, and (unless -list is given) acquires one image from a named
// device, writing it out as a raw PNM file.
package main

import (
	"flag"
	"log"
	"os"

	sane "sane-client/pkg/sane"
)

func main() {
	var cfgPath string
	var listOnly bool
	var deviceOverride string
	var outputOverride string

	flag.StringVar(&cfgPath, "c", "config.yaml", "config path")
	flag.BoolVar(&listOnly, "list", false, "list devices and exit")
	flag.StringVar(&deviceOverride, "device", "", "device name (overrides config)")
	flag.StringVar(&outputOverride, "o", "", "output PNM path (overrides config)")
	flag.Parse()

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if deviceOverride != "" {
		cfg.Device = deviceOverride
	}
	if outputOverride != "" {
		cfg.Output.Path = outputOverride
	}

	dial := newDialer(cfg.DialTimeout, cfg.Fwmark)

	sess, err := sane.Connect(cfg.Daemon.Address, sane.WithDialFunc(dial))
	if err != nil {
		log.Fatalf("connect %s: %v", cfg.Daemon.Address, err)
	}
	defer sess.Close()

	devices, err := sess.ListDevices()
	if err != nil {
		log.Fatalf("list devices: %v", err)
	}
	for _, d := range devices {
		log.Printf("device: name=%q vendor=%q model=%q type=%q", d.Name, d.Vendor, d.Model, d.Type)
	}
	if listOnly {
		return
	}

	if cfg.Device == "" {
		if len(devices) == 0 {
			log.Fatalf("no devices reported by %s and none configured", cfg.Daemon.Address)
		}
		cfg.Device = devices[0].Name
	}

	handle, err := sess.OpenDevice(cfg.Device)
	if err != nil {
		log.Fatalf("open device %s: %v", cfg.Device, err)
	}
	defer sess.CloseDevice(handle)

	img, err := sess.AcquireImage(handle)
	if err != nil {
		log.Fatalf("acquire image: %v", err)
	}

	raster, err := sane.NewRaster(img)
	if err != nil {
		log.Fatalf("materialize raster: %v", err)
	}

	out, err := os.Create(cfg.Output.Path)
	if err != nil {
		log.Fatalf("create output %s: %v", cfg.Output.Path, err)
	}
	defer out.Close()

	if err := writePNM(out, raster); err != nil {
		log.Fatalf("write %s: %v", cfg.Output.Path, err)
	}
	log.Printf("wrote %s (%dx%d, depth %d, %s)", cfg.Output.Path, raster.Width, raster.Height, raster.Depth, raster.ColorModel)
}
