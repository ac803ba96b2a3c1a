package tuya

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/tmarsden/feedbox/pkg/feeder"
)

// fakeDevice runs a scripted feeder on a local TCP listener. It answers
// DP_QUERY with the given dps map and acknowledges CONTROL frames,
// recording the dps values written to it.
type fakeDevice struct {
	listener net.Listener
	cipher   *payloadCipher
	dps      map[string]any
	retcode  uint32

	written chan map[string]any
}

func newFakeDevice(t *testing.T, dps map[string]any) *fakeDevice {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })

	c, err := newPayloadCipher(testKey)
	if err != nil {
		t.Fatal(err)
	}

	d := &fakeDevice{
		listener: ln,
		cipher:   c,
		dps:      dps,
		written:  make(chan map[string]any, 8),
	}
	go d.serve()
	return d
}

func (d *fakeDevice) serve() {
	for {
		conn, err := d.listener.Accept()
		if err != nil {
			return
		}
		go d.session(conn)
	}
}

func (d *fakeDevice) session(conn net.Conn) {
	defer conn.Close()
	for {
		f, err := decodeFrame(conn)
		if err != nil {
			return
		}

		retcode := make([]byte, 4)
		binary.BigEndian.PutUint32(retcode, d.retcode)

		switch f.Cmd {
		case cmdDPQuery:
			body, _ := json.Marshal(map[string]any{"dps": d.dps})
			payload := append(retcode, d.cipher.encrypt(body)...)
			conn.Write(encodeFrame(f.Seq, cmdDPQuery, payload))
		case cmdControl:
			d.recordControl(f.Payload)
			conn.Write(encodeFrame(f.Seq, cmdControl, retcode))
		}
	}
}

func (d *fakeDevice) recordControl(payload []byte) {
	if len(payload) <= versionHeaderSize {
		return
	}
	body, err := d.cipher.decrypt(payload[versionHeaderSize:])
	if err != nil {
		return
	}
	var req struct {
		DPs map[string]any `json:"dps"`
	}
	if json.Unmarshal(body, &req) == nil {
		d.written <- req.DPs
	}
}

func (d *fakeDevice) clientConfig() Config {
	addr := d.listener.Addr().(*net.TCPAddr)
	return Config{
		DeviceID: "bfb1de061f3a1f7c",
		LocalKey: testKey,
		Addr:     "127.0.0.1",
		Port:     addr.Port,
		Version:  "3.3",
	}
}

func dialFake(t *testing.T, d *fakeDevice) *Client {
	t.Helper()

	client, err := NewClient(d.clientConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := client.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { client.Disconnect() })
	return client
}

func TestClient_Get(t *testing.T) {
	d := newFakeDevice(t, map[string]any{"3": float64(0), "104": "R:0  C:2  T:1758445204"})
	client := dialFake(t, d)

	value, err := client.Get(context.Background(), 104)
	if err != nil {
		t.Fatal(err)
	}
	if value != "R:0  C:2  T:1758445204" {
		t.Errorf("dp 104 = %v, want status string", value)
	}
}

func TestClient_GetUnknownDP(t *testing.T) {
	d := newFakeDevice(t, map[string]any{"3": float64(0)})
	client := dialFake(t, d)

	_, err := client.Get(context.Background(), 42)
	if !errors.Is(err, feeder.ErrDPNotFound) {
		t.Fatalf("err = %v, want ErrDPNotFound", err)
	}
}

func TestClient_Set(t *testing.T) {
	d := newFakeDevice(t, nil)
	client := dialFake(t, d)

	if err := client.Set(context.Background(), feeder.DPManualFeed, 1); err != nil {
		t.Fatal(err)
	}

	select {
	case dps := <-d.written:
		if dps["3"] != float64(1) {
			t.Errorf("device received dps = %v, want {\"3\": 1}", dps)
		}
	case <-time.After(time.Second):
		t.Fatal("device never received the control frame")
	}
}

func TestClient_DeviceNAK(t *testing.T) {
	d := newFakeDevice(t, nil)
	d.retcode = 1
	client := dialFake(t, d)

	err := client.Set(context.Background(), feeder.DPManualFeed, 1)
	if !errors.Is(err, ErrDeviceNAK) {
		t.Fatalf("err = %v, want ErrDeviceNAK", err)
	}
}

func TestClient_NotConnected(t *testing.T) {
	client, err := NewClient(Config{
		DeviceID: "bfb1de061f3a1f7c",
		LocalKey: testKey,
		Addr:     "127.0.0.1",
		Port:     1,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.roundTrip(context.Background(), cmdDPQuery, nil); !errors.Is(err, feeder.ErrNotConnected) {
		t.Fatalf("err = %v, want ErrNotConnected", err)
	}
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient(Config{LocalKey: testKey, Addr: "127.0.0.1"}); !errors.Is(err, feeder.ErrNotConfigured) {
		t.Errorf("missing device id: err = %v, want ErrNotConfigured", err)
	}
	if _, err := NewClient(Config{DeviceID: "x", LocalKey: "short", Addr: "127.0.0.1"}); err == nil {
		t.Error("expected error for bad key length")
	}
	if _, err := NewClient(Config{DeviceID: "x", LocalKey: testKey, Addr: "127.0.0.1", Version: "3.1"}); err == nil {
		t.Error("expected error for unsupported protocol version")
	}
}
