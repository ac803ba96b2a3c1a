package tuya

import (
	"bytes"
	"errors"
	"testing"
)

func TestFrame_RoundTrip(t *testing.T) {
	payload := []byte(`{"dps":{"3":1}}`)
	raw := encodeFrame(7, cmdControl, payload)

	f, err := decodeFrame(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}

	if f.Seq != 7 {
		t.Errorf("seq = %d, want 7", f.Seq)
	}
	if f.Cmd != cmdControl {
		t.Errorf("cmd = %#02x, want %#02x", f.Cmd, cmdControl)
	}
	if !bytes.Equal(f.Payload, payload) {
		t.Errorf("payload = %q, want %q", f.Payload, payload)
	}
}

func TestFrame_EmptyPayload(t *testing.T) {
	raw := encodeFrame(1, cmdHeartbeat, nil)

	f, err := decodeFrame(bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Payload) != 0 {
		t.Errorf("payload length = %d, want 0", len(f.Payload))
	}
}

func TestFrame_CorruptCRC(t *testing.T) {
	raw := encodeFrame(1, cmdDPQuery, []byte("abc"))
	raw[len(raw)-6] ^= 0xFF // flip a CRC byte

	_, err := decodeFrame(bytes.NewReader(raw))
	if !errors.Is(err, ErrBadFrame) {
		t.Fatalf("err = %v, want ErrBadFrame", err)
	}
}

func TestFrame_BadPrefix(t *testing.T) {
	raw := encodeFrame(1, cmdDPQuery, []byte("abc"))
	raw[0] = 0xDE

	_, err := decodeFrame(bytes.NewReader(raw))
	if !errors.Is(err, ErrBadFrame) {
		t.Fatalf("err = %v, want ErrBadFrame", err)
	}
}

func TestFrame_BadSuffix(t *testing.T) {
	raw := encodeFrame(1, cmdDPQuery, []byte("abc"))
	raw[len(raw)-1] = 0x00

	_, err := decodeFrame(bytes.NewReader(raw))
	if !errors.Is(err, ErrBadFrame) {
		t.Fatalf("err = %v, want ErrBadFrame", err)
	}
}

func TestFrame_OversizedLength(t *testing.T) {
	raw := encodeFrame(1, cmdDPQuery, []byte("abc"))
	raw[12] = 0xFF // length field high byte

	_, err := decodeFrame(bytes.NewReader(raw))
	if !errors.Is(err, ErrBadFrame) {
		t.Fatalf("err = %v, want ErrBadFrame", err)
	}
}

func TestFrame_Truncated(t *testing.T) {
	raw := encodeFrame(1, cmdDPQuery, []byte("abcdef"))

	_, err := decodeFrame(bytes.NewReader(raw[:len(raw)-3]))
	if err == nil {
		t.Fatal("expected error for truncated frame")
	}
}
