package xbee

import "errors"

// Outbound API IDs this driver knows how to build.
const (
	apiIDTransmit64     = 0x00
	apiIDTransmit16     = 0x01
	apiIDATCommand      = 0x08
	apiIDATQueueParam   = 0x09
	apiIDRemoteATCmd    = 0x17
)

// ErrInvalidATCommand is returned when an AT command name is not
// exactly the 2 characters the protocol requires.
var ErrInvalidATCommand = errors.New("xbee: AT command must be exactly 2 characters")

// emitAPIFrame is the common shape every request builder in this file
// follows: start a frame declaring declaredLen, write a fixed header,
// write the variable parameter region, finish. A short write at any
// point surfaces the phase-tagged *EmitError from frame.go.
func emitAPIFrame(t Transport, declaredLen int, header, param []byte) error {
	fw, err := startFrame(t, declaredLen)
	if err != nil {
		return err
	}
	if err := fw.writePayload(header); err != nil {
		return err
	}
	if err := fw.writePayload(param); err != nil {
		return err
	}
	return fw.finishFrame()
}

func checkATCommand(cmd string) error {
	if len(cmd) != 2 {
		return ErrInvalidATCommand
	}
	return nil
}

// ATCommand emits an AT command frame (API ID 0x08): query or set a
// local configuration parameter. frameID 0x00 suppresses the response
// status per XBee convention and is passed through unchanged.
func ATCommand(t Transport, frameID byte, cmd string, param []byte) error {
	if err := checkATCommand(cmd); err != nil {
		return err
	}
	header := []byte{apiIDATCommand, frameID, cmd[0], cmd[1]}
	return emitAPIFrame(t, 4+len(param), header, param)
}

// ATQueueParameter emits a queued AT parameter frame (API ID 0x09):
// identical layout to ATCommand, but the radio queues the change
// rather than applying it immediately.
func ATQueueParameter(t Transport, frameID byte, cmd string, param []byte) error {
	if err := checkATCommand(cmd); err != nil {
		return err
	}
	header := []byte{apiIDATQueueParam, frameID, cmd[0], cmd[1]}
	return emitAPIFrame(t, 4+len(param), header, param)
}

// RemoteATCommand emits a remote AT command frame (API ID 0x17)
// addressed to another radio.
func RemoteATCommand(t Transport, addr Address, options byte, frameID byte, cmd string, param []byte) error {
	if err := checkATCommand(cmd); err != nil {
		return err
	}

	addr64, addr16, err := addr.remoteATFields()
	if err != nil {
		return err
	}

	header := make([]byte, 0, 13)
	header = append(header, apiIDRemoteATCmd, frameID)
	header = append(header, addr64[:]...)
	header = append(header, addr16[:]...)
	header = append(header, options, cmd[0], cmd[1])

	return emitAPIFrame(t, 15+len(param), header, param)
}

// Transmit emits a data frame (API ID 0x00 for a 64-bit address, 0x01
// for a 16-bit one), chosen by addr's kind.
func Transmit(t Transport, frameID byte, addr Address, options byte, data []byte) error {
	use16, addr64, addr16 := addr.transmitFields()

	if use16 {
		header := []byte{apiIDTransmit16, frameID, addr16[0], addr16[1], options}
		return emitAPIFrame(t, 5+len(data), header, data)
	}

	header := make([]byte, 0, 11)
	header = append(header, apiIDTransmit64, frameID)
	header = append(header, addr64[:]...)
	header = append(header, options)
	return emitAPIFrame(t, 11+len(data), header, data)
}
