package tuya

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmarsden/feedbox/pkg/feeder"
)

// versionHeaderSize is the length of the "3.3" version banner prepended to
// CONTROL payloads: 3 version bytes plus 12 reserved bytes.
const versionHeaderSize = 15

// defaultTimeout bounds a single request/response exchange when the caller
// supplies no deadline.
const defaultTimeout = 5 * time.Second

// Config holds the device credentials for a local protocol session.
type Config struct {
	DeviceID string // device identifier from the vendor app
	LocalKey string // 16-byte payload encryption key
	Addr     string // device IP on the local network
	Port     int    // TCP port, 6668 unless remapped
	Version  string // protocol version, "3.3" is the only one supported
}

// Client implements feeder.Client over the device's local TCP protocol.
// The protocol allows one in-flight request per session, so all operations
// on a Client must be externally serialized (see feeder.Guard).
type Client struct {
	cfg    Config
	cipher *payloadCipher

	conn net.Conn
	seq  uint32
}

// NewClient validates the credentials and returns an unconnected client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.DeviceID == "" || cfg.Addr == "" {
		return nil, feeder.ErrNotConfigured
	}
	if cfg.Version != "" && cfg.Version != "3.3" {
		return nil, fmt.Errorf("unsupported protocol version %q", cfg.Version)
	}
	if cfg.Port == 0 {
		cfg.Port = 6668
	}

	c, err := newPayloadCipher(cfg.LocalKey)
	if err != nil {
		return nil, err
	}

	return &Client{cfg: cfg, cipher: c}, nil
}

// Connect opens the TCP session to the device.
func (c *Client) Connect(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}

	addr := net.JoinHostPort(c.cfg.Addr, strconv.Itoa(c.cfg.Port))
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return wrapNetErr(fmt.Errorf("dial %s: %w", addr, err))
	}

	c.conn = conn
	c.seq = 0
	log.Debug().Str("addr", addr).Str("device", c.cfg.DeviceID).Msg("Feeder session opened")
	return nil
}

// Disconnect closes the session. Safe to call when not connected.
func (c *Client) Disconnect() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	log.Debug().Str("device", c.cfg.DeviceID).Msg("Feeder session closed")
	return err
}

// IsConnected reports whether a TCP session is open.
func (c *Client) IsConnected() bool {
	return c.conn != nil
}

// Get reads one data point via a DP_QUERY exchange.
func (c *Client) Get(ctx context.Context, dp int) (any, error) {
	dps, err := c.queryDPs(ctx)
	if err != nil {
		return nil, err
	}

	value, ok := dps[strconv.Itoa(dp)]
	if !ok {
		return nil, fmt.Errorf("%w: dp %d", feeder.ErrDPNotFound, dp)
	}
	return value, nil
}

// Set writes one data point via a CONTROL exchange.
func (c *Client) Set(ctx context.Context, dp int, value any) error {
	body, err := json.Marshal(map[string]any{
		"devId": c.cfg.DeviceID,
		"uid":   c.cfg.DeviceID,
		"t":     strconv.FormatInt(time.Now().Unix(), 10),
		"dps":   map[string]any{strconv.Itoa(dp): value},
	})
	if err != nil {
		return fmt.Errorf("encode control payload: %w", err)
	}

	// CONTROL payloads carry the version banner ahead of the ciphertext.
	payload := make([]byte, 0, versionHeaderSize)
	payload = append(payload, []byte("3.3")...)
	payload = append(payload, make([]byte, versionHeaderSize-3)...)
	payload = append(payload, c.cipher.encrypt(body)...)

	_, err = c.roundTrip(ctx, cmdControl, payload)
	return err
}

// queryDPs performs a DP_QUERY and returns the reported data-point map.
func (c *Client) queryDPs(ctx context.Context) (map[string]any, error) {
	body, err := json.Marshal(map[string]any{
		"gwId":  c.cfg.DeviceID,
		"devId": c.cfg.DeviceID,
	})
	if err != nil {
		return nil, fmt.Errorf("encode query payload: %w", err)
	}

	// DP_QUERY payloads are encrypted without the version banner.
	resp, err := c.roundTrip(ctx, cmdDPQuery, c.cipher.encrypt(body))
	if err != nil {
		return nil, err
	}

	var report struct {
		DPs map[string]any `json:"dps"`
	}
	if err := json.Unmarshal(resp, &report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}
	return report.DPs, nil
}

// roundTrip sends one framed command and waits for its response, skipping
// unsolicited status pushes and heartbeats. Returns the decrypted response
// body, which may be empty for acknowledgement-only responses.
func (c *Client) roundTrip(ctx context.Context, cmd uint32, payload []byte) ([]byte, error) {
	if c.conn == nil {
		return nil, feeder.ErrNotConnected
	}

	deadline := time.Now().Add(defaultTimeout)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	c.seq++
	if _, err := c.conn.Write(encodeFrame(c.seq, cmd, payload)); err != nil {
		return nil, wrapNetErr(fmt.Errorf("write frame: %w", err))
	}

	for {
		f, err := decodeFrame(c.conn)
		if err != nil {
			return nil, wrapNetErr(err)
		}

		switch f.Cmd {
		case cmd:
			return c.decodeResponse(f.Payload)
		case cmdStatus, cmdHeartbeat:
			// Unsolicited push; not ours, keep waiting.
			log.Debug().Uint32("cmd", f.Cmd).Msg("Skipping unsolicited frame")
		default:
			return nil, fmt.Errorf("%w: unexpected response cmd %#02x", ErrBadFrame, f.Cmd)
		}
	}
}

// decodeResponse strips the return code and version banner from a response
// payload and decrypts the remainder.
func (c *Client) decodeResponse(payload []byte) ([]byte, error) {
	// Responses open with a 4-byte big-endian return code.
	if len(payload) >= 4 {
		if code := binary.BigEndian.Uint32(payload[:4]); code != 0 {
			return nil, fmt.Errorf("%w: return code %d", ErrDeviceNAK, code)
		}
		payload = payload[4:]
	}

	if len(payload) == 0 {
		return nil, nil
	}

	if bytes.HasPrefix(payload, []byte("3.3")) && len(payload) > versionHeaderSize {
		payload = payload[versionHeaderSize:]
	}

	return c.cipher.decrypt(payload)
}

// wrapNetErr maps socket deadline expiry onto the feeder timeout sentinel.
func wrapNetErr(err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", feeder.ErrTimeout, err)
	}
	return err
}
