/*
NAME
  main.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

// Command colormunkictl is a thin, one-shot wiring demo for the
// instrument façade: open the device, optionally calibrate, take one
// measurement per requested mode, and print the results. It is not the
// interactive menu described in spec.md §1/§6 — no prompt loop, just
// flag-selected actions, matching the teacher's single-purpose
// cmd/audio-netsender-style binaries.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/xrite/colormunki-core/calibration"
	"github.com/xrite/colormunki-core/eeprom"
	"github.com/xrite/colormunki-core/instrument"
	"github.com/xrite/colormunki-core/protocol"
	"github.com/xrite/colormunki-core/spectrum"
	"github.com/xrite/colormunki-core/transport"
)

// Logging configuration, following the teacher's cmd/speaker lumberjack setup.
const (
	logPath      = "colormunkictl.log"
	logMaxSize   = 10 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
)

func main() {
	var (
		logLevel    = flag.Int("loglevel", int(logging.Info), "log level (0=Debug .. 4=Fatal)")
		calDir      = flag.String("caldir", "./calibration-data", "directory holding persisted calibration records")
		eepromAddr  = flag.Uint("eeprom-addr", 0, "calibration EEPROM start address")
		doCalibrate = flag.Bool("calibrate", false, "run white calibration before measuring (dial must be at Calibration)")
		modesFlag   = flag.String("modes", "emissive", "comma-separated measurement modes to take: reflective,emissive,ambient")
	)
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(int8(*logLevel), fileLog, true)

	t, err := transport.OpenUSB()
	if err != nil {
		log.Fatal("could not open ColorMunki over USB", "error", err.Error())
	}
	defer t.Close()

	profile, err := readProfile(t, log, uint32(*eepromAddr))
	if err != nil {
		log.Fatal("could not read calibration EEPROM", "error", err.Error())
	}

	store, err := calibration.NewFileStore(*calDir, log)
	if err != nil {
		log.Fatal("could not open calibration store", "error", err.Error())
	}

	inst, err := instrument.Open(t, profile, store, log)
	if err != nil {
		log.Fatal("could not open instrument", "error", err.Error())
	}

	info := inst.Info()
	log.Info("instrument ready", "model", info.Model, "serial", info.Serial, "firmware", info.FirmwareVersion)

	if *doCalibrate {
		log.Info("calibrating, dial must be at Calibration")
		if err := inst.Calibrate(); err != nil {
			log.Fatal("calibrate failed", "error", err.Error())
		}
		log.Info("calibration complete")
	}

	for _, name := range strings.Split(*modesFlag, ",") {
		mode, err := parseMode(name)
		if err != nil {
			log.Error("skipping unknown mode", "mode", name)
			continue
		}
		s, err := inst.Measure(mode)
		if err != nil {
			log.Error("measurement failed", "mode", mode.String(), "error", err.Error())
			continue
		}
		printSpectrum(mode, s)
	}
}

// readProfile pulls the full calibration EEPROM over the device's vendor
// command set and decodes it into a CalibrationProfile.
func readProfile(t transport.Transport, l logging.Logger, addr uint32) (eeprom.CalibrationProfile, error) {
	engine := protocol.NewEngine(t, l)
	data, err := engine.ReadEEPROM(addr, eeprom.MinLength)
	if err != nil {
		return eeprom.CalibrationProfile{}, fmt.Errorf("read eeprom: %w", err)
	}
	return eeprom.Decode(data)
}

func parseMode(s string) (spectrum.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reflective":
		return spectrum.Reflective, nil
	case "emissive":
		return spectrum.Emissive, nil
	case "ambient":
		return spectrum.Ambient, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

func printSpectrum(mode spectrum.Mode, s spectrum.Spectrum) {
	bands := make(map[string]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		wl, v := s.At(i)
		bands[fmt.Sprintf("%.0f", wl)] = v
	}
	out := struct {
		Mode  string             `json:"mode"`
		Bands map[string]float64 `json:"bands"`
	}{Mode: mode.String(), Bands: bands}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}
