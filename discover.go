package xbee

import (
	"github.com/jochenvg/go-udev"
)

// Candidate is one serial device discovery considers a plausible
// XBee explorer/adapter board.
type Candidate struct {
	Devnode string
	Vendor  string // USB vendor ID, e.g. "0403" for FTDI
	Product string // USB product ID
	Chip    string // human-readable guess at the USB-serial chip
}

// knownChips maps (vendor, product) USB IDs of common USB-serial
// chips found on XBee explorer/adapter boards to a human-readable
// name. It is advisory only; DiscoverSerialDevices never opens a
// device, and an unmatched device is simply omitted, not flagged.
var knownChips = map[[2]string]string{
	{"0403", "6001"}: "FTDI FT232R",
	{"0403", "6015"}: "FTDI FT231X",
	{"10c4", "ea60"}: "Silicon Labs CP2102",
	{"067b", "2303"}: "Prolific PL2303",
}

// DiscoverSerialDevices enumerates tty-subsystem devices via udev and
// returns the ones whose USB vendor/product IDs match a known
// USB-serial chip. It never opens a device itself; callers (typically
// the CLI) decide what, if anything, to do with the result.
func DiscoverSerialDevices() ([]Candidate, error) {
	u := udev.Udev{}
	enum := u.NewEnumerate()
	if err := enum.AddMatchSubsystem("tty"); err != nil {
		return nil, err
	}

	devices, err := enum.Devices()
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	for _, d := range devices {
		vendor := d.PropertyValue("ID_VENDOR_ID")
		product := d.PropertyValue("ID_MODEL_ID")
		if vendor == "" || product == "" {
			continue
		}

		chip, known := knownChips[[2]string{vendor, product}]
		if !known {
			continue
		}

		candidates = append(candidates, Candidate{
			Devnode: d.Devnode(),
			Vendor:  vendor,
			Product: product,
			Chip:    chip,
		})
	}

	return candidates, nil
}
