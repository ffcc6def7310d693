package xbee

import (
	"fmt"
	"time"
)

// BringUpStage identifies which step of the API-mode bring-up dance
// failed, so the caller can tell "wrong baud" from "device absent"
// from "settings not applied".
type BringUpStage int

const (
	BringUpStageDrain BringUpStage = iota
	BringUpStageEscape
	BringUpStageEscapeAck
	BringUpStageATAP
	BringUpStageATD7
	BringUpStageATD6
	BringUpStageATCN
	BringUpStageVerifyAP
	BringUpStageVerifyD7
	BringUpStageVerifyD6
)

func (s BringUpStage) String() string {
	switch s {
	case BringUpStageDrain:
		return "drain"
	case BringUpStageEscape:
		return "send +++"
	case BringUpStageEscapeAck:
		return "await OK after +++"
	case BringUpStageATAP:
		return "ATAP 2"
	case BringUpStageATD7:
		return "ATD7 1"
	case BringUpStageATD6:
		return "ATD6 1"
	case BringUpStageATCN:
		return "ATCN"
	case BringUpStageVerifyAP:
		return "verify AP"
	case BringUpStageVerifyD7:
		return "verify D7"
	case BringUpStageVerifyD6:
		return "verify D6"
	default:
		return "unknown"
	}
}

// BringUpError reports exactly which stage of bring-up failed and why.
type BringUpError struct {
	Stage  BringUpStage
	Detail string
}

func (e *BringUpError) Error() string {
	return fmt.Sprintf("xbee: bring-up failed at stage %q: %s", e.Stage, e.Detail)
}

const (
	bringUpGuardTime    = 1.0  // seconds of silence required around the +++ escape, the XBee default GT.
	bringUpPollInterval = 0.05 // seconds between poll attempts while awaiting a response.
	bringUpMaxPolls     = 40   // ~2s total budget per awaited response, at the poll interval above.
)

// BringUp drives the radio from its power-on transparent mode into
// API-mode-with-escapes, with hardware flow control enabled on D6/D7:
// drain, guard time, "+++", guard time, expect "OK\r", then
// "ATAP 2\rATD7 1\rATD6 1\rATCN\r" each acknowledged with "OK\r", then
// a verification query of AP/D7/D6 over the now-API-mode link.
//
// If reset is non-nil it is pulsed before the drain step, the way a
// board with a dedicated reset header would be power-cycled first;
// bring-up with reset == nil behaves exactly as a board with no reset
// line wired up.
func BringUp(t Transport, reset *ResetLine, log Logger) error {
	if log == nil {
		log = noopLogger{}
	}

	if reset != nil {
		log.Debug("pulsing reset line before bring-up")
		reset.Pulse(50 * time.Millisecond)
	}

	if err := drain(t); err != nil {
		log.Warn("bring-up drain failed", "err", err)
		return &BringUpError{Stage: BringUpStageDrain, Detail: err.Error()}
	}

	t.Sleep(bringUpGuardTime)

	if n, err := t.Write([]byte("+++")); err != nil || n != 3 {
		return &BringUpError{Stage: BringUpStageEscape, Detail: "short write sending +++"}
	}

	t.Sleep(bringUpGuardTime)

	if !expectLiteral(t, "OK\r") {
		log.Warn("no OK after +++; wrong baud or device absent")
		return &BringUpError{Stage: BringUpStageEscapeAck, Detail: "OK\\r not observed"}
	}

	commands := []struct {
		stage BringUpStage
		line  string
	}{
		{BringUpStageATAP, "ATAP 2\r"},
		{BringUpStageATD7, "ATD7 1\r"},
		{BringUpStageATD6, "ATD6 1\r"},
		{BringUpStageATCN, "ATCN\r"},
	}
	for _, c := range commands {
		if _, err := t.Write([]byte(c.line)); err != nil {
			return &BringUpError{Stage: c.stage, Detail: "write rejected: " + err.Error()}
		}
		if !expectLiteral(t, "OK\r") {
			return &BringUpError{Stage: c.stage, Detail: "OK\\r not observed"}
		}
	}

	checks := []struct {
		stage BringUpStage
		cmd   string
		want  byte
	}{
		{BringUpStageVerifyAP, "AP", 2},
		{BringUpStageVerifyD7, "D7", 1},
		{BringUpStageVerifyD6, "D6", 1},
	}
	for _, c := range checks {
		if err := verifyATQuery(t, c.cmd, c.want); err != nil {
			log.Warn("bring-up verification failed", "cmd", c.cmd, "err", err)
			return &BringUpError{Stage: c.stage, Detail: err.Error()}
		}
	}

	log.Info("bring-up complete: API mode with escapes, D6/D7 flow control enabled")
	return nil
}

// drain reads and discards whatever is immediately available, without
// blocking for new data to arrive.
func drain(t Transport) error {
	buf := make([]byte, 64)
	for i := 0; i < 8; i++ {
		n, err := t.Read(buf)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
	return nil
}

// expectLiteral polls Read until want has been seen as a contiguous
// suffix of the input stream, or the poll budget is exhausted.
func expectLiteral(t Transport, want string) bool {
	buf := make([]byte, 1)
	matched := 0

	for attempt := 0; attempt < bringUpMaxPolls; attempt++ {
		n, err := t.Read(buf)
		if err != nil {
			return false
		}
		if n == 0 {
			t.Sleep(bringUpPollInterval)
			continue
		}

		if buf[0] == want[matched] {
			matched++
			if matched == len(want) {
				return true
			}
		} else if buf[0] == want[0] {
			matched = 1
		} else {
			matched = 0
		}
	}

	return false
}

// verifyATQueryFrameID is the frame ID verifyATQuery sends its AT
// queries with; responses are checked against it to reject a stray or
// stale AT response frame that happens to match on command/status/value.
const verifyATQueryFrameID = 0x01

// verifyATQuery issues an AT query (no parameter) and polls for its
// framed response, checking frame ID, command, status and the single
// returned value byte. This is the one place BringUp uses the frame
// codec: by this point the radio is in API mode, so the query/response
// are ordinary ATCommand/ParseFrame traffic.
func verifyATQuery(t Transport, cmd string, want byte) error {
	if err := ATCommand(t, verifyATQueryFrameID, cmd, nil); err != nil {
		return err
	}

	ring := NewRing(make([]byte, 64))
	out := make([]byte, 64)

	for attempt := 0; attempt < bringUpMaxPolls; attempt++ {
		n, err := ring.Fill(t)
		if n < 0 {
			return err
		}

		length, err := DecodeFrame(ring, out)
		if err != nil {
			return err
		}
		if length == 0 {
			t.Sleep(bringUpPollInterval)
			continue
		}

		parsed, err := ParseFrame(out[:length])
		if err != nil {
			return err
		}

		resp, ok := parsed.(ATResponse)
		if !ok {
			return fmt.Errorf("xbee: bring-up expected AT response, got %T", parsed)
		}
		if resp.FrameID != verifyATQueryFrameID {
			return fmt.Errorf("xbee: bring-up query %q expected frame ID %#x, got %#x", cmd, verifyATQueryFrameID, resp.FrameID)
		}
		if string(resp.Command[:]) != cmd {
			return fmt.Errorf("xbee: bring-up expected command %q, got %q", cmd, resp.Command[:])
		}
		if resp.Status != 0 {
			return fmt.Errorf("xbee: bring-up query %q returned status %d", cmd, resp.Status)
		}
		if len(resp.Data) == 0 || resp.Data[len(resp.Data)-1] != want {
			return fmt.Errorf("xbee: bring-up query %q expected value %d, got %v", cmd, want, resp.Data)
		}
		return nil
	}

	return fmt.Errorf("xbee: bring-up query %q timed out", cmd)
}
