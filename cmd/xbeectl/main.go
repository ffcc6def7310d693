// Command xbeectl exercises an XBee radio over a real serial port: it
// loads a Config, opens the serial transport, optionally pulses a
// GPIO reset line, runs bring-up, and then offers a couple of small
// subcommands. It is the thin main-wraps-library shape the teacher's
// own cmd/direwolf and cmd/decode_aprs use, generalized from a single
// monolithic TNC into one driver library with a config/flag layer.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/kg7xbee/xbeelink"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "xbeectl:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var configPath string

	fs := pflag.NewFlagSet("xbeectl", pflag.ContinueOnError)
	fs.StringVar(&configPath, "config", "", "path to a YAML config file")

	cfg := xbee.DefaultConfig()
	cfg.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}

	if configPath != "" {
		fileCfg, err := xbee.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = fileCfg
		// Flags parsed above were applied to the DefaultConfig copy;
		// re-apply them now so a flag always wins over the file, per
		// SPEC_FULL's layering (defaults, then file, then flags).
		fs2 := pflag.NewFlagSet("xbeectl", pflag.ContinueOnError)
		fs2.StringVar(&configPath, "config", configPath, "path to a YAML config file")
		cfg.RegisterFlags(fs2)
		if err := fs2.Parse(args); err != nil {
			return err
		}
	}

	log := xbee.NewLogger(cfg.LogLevel)

	transport, err := xbee.OpenSerial(cfg.Device, cfg.Baud)
	if err != nil {
		return fmt.Errorf("opening serial port: %w", err)
	}
	defer transport.Close()

	var opts []xbee.OpenOption
	opts = append(opts, xbee.WithLogger(log))

	var resetLine *xbee.ResetLine
	if cfg.ResetChip != "" {
		resetLine, err = xbee.NewResetLine(cfg.ResetChip, cfg.ResetLine)
		if err != nil {
			return fmt.Errorf("requesting reset line: %w", err)
		}
		defer resetLine.Close()
		opts = append(opts, xbee.WithResetLine(resetLine))
	}

	driver, err := xbee.Open(transport, make([]byte, cfg.RingCapacity), opts...)
	if err != nil {
		return fmt.Errorf("bring-up failed: %w", err)
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return fmt.Errorf("expected a subcommand: at, listen")
	}

	switch remaining[0] {
	case "at":
		return runAT(driver, remaining[1:])
	case "listen":
		return runListen(driver, cfg.OutCapacity)
	default:
		return fmt.Errorf("unknown subcommand %q", remaining[0])
	}
}

func runAT(driver *xbee.Driver, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: xbeectl at <CMD> [param]")
	}

	var param []byte
	if len(args) > 1 {
		param = []byte(args[1])
	}

	if err := driver.ATCommand(0x01, args[0], param); err != nil {
		return err
	}

	out := make([]byte, 512)
	for i := 0; i < 40; i++ {
		length, err := driver.RecvFrame(out)
		if err != nil {
			return err
		}
		if length == 0 {
			time.Sleep(50 * time.Millisecond)
			continue
		}

		parsed, err := xbee.ParseFrame(out[:length])
		if err != nil {
			return err
		}

		fmt.Printf("%+v\n", parsed)
		return nil
	}

	return fmt.Errorf("no response")
}

func runListen(driver *xbee.Driver, outCapacity int) error {
	out := make([]byte, outCapacity)

	for {
		length, err := driver.RecvFrame(out)
		if err != nil {
			return err
		}
		if length == 0 {
			time.Sleep(20 * time.Millisecond)
			continue
		}

		parsed, err := xbee.ParseFrame(out[:length])
		if err != nil {
			fmt.Fprintln(os.Stderr, "xbeectl: parse error:", err)
			continue
		}

		fmt.Printf("%+v\n", parsed)
	}
}
