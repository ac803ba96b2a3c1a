package tuya

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

// Wire framing for the local 0x55AA protocol. Every message is:
//
//	prefix(4) seq(4) cmd(4) length(4) payload(length-8) crc(4) suffix(4)
//
// where length counts the payload plus the trailing CRC and suffix, and the
// CRC covers everything from the prefix through the payload.
const (
	framePrefix uint32 = 0x000055AA
	frameSuffix uint32 = 0x0000AA55

	frameHeaderSize  = 16
	frameTrailerSize = 8

	// maxFrameBody caps the accepted length field to keep a corrupt
	// header from forcing a huge allocation.
	maxFrameBody = 64 * 1024
)

// Protocol commands.
const (
	cmdControl   uint32 = 0x07
	cmdStatus    uint32 = 0x08
	cmdHeartbeat uint32 = 0x09
	cmdDPQuery   uint32 = 0x0A
)

// frame is a single decoded protocol message.
type frame struct {
	Seq     uint32
	Cmd     uint32
	Payload []byte
}

// encodeFrame serializes a frame for transmission.
func encodeFrame(seq, cmd uint32, payload []byte) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, frameHeaderSize+len(payload)+frameTrailerSize))

	binary.Write(buf, binary.BigEndian, framePrefix)
	binary.Write(buf, binary.BigEndian, seq)
	binary.Write(buf, binary.BigEndian, cmd)
	binary.Write(buf, binary.BigEndian, uint32(len(payload)+frameTrailerSize))
	buf.Write(payload)

	crc := crc32.ChecksumIEEE(buf.Bytes())
	binary.Write(buf, binary.BigEndian, crc)
	binary.Write(buf, binary.BigEndian, frameSuffix)

	return buf.Bytes()
}

// decodeFrame reads and validates one frame from r.
func decodeFrame(r io.Reader) (*frame, error) {
	header := make([]byte, frameHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	prefix := binary.BigEndian.Uint32(header[0:4])
	if prefix != framePrefix {
		return nil, fmt.Errorf("%w: bad prefix %#08x", ErrBadFrame, prefix)
	}

	seq := binary.BigEndian.Uint32(header[4:8])
	cmd := binary.BigEndian.Uint32(header[8:12])
	length := binary.BigEndian.Uint32(header[12:16])

	if length < frameTrailerSize || length > maxFrameBody {
		return nil, fmt.Errorf("%w: bad length %d", ErrBadFrame, length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	payload := body[:length-frameTrailerSize]
	gotCRC := binary.BigEndian.Uint32(body[length-8 : length-4])
	suffix := binary.BigEndian.Uint32(body[length-4:])

	if suffix != frameSuffix {
		return nil, fmt.Errorf("%w: bad suffix %#08x", ErrBadFrame, suffix)
	}

	wantCRC := crc32.ChecksumIEEE(append(header, payload...))
	if gotCRC != wantCRC {
		return nil, fmt.Errorf("%w: crc mismatch (got %#08x, want %#08x)", ErrBadFrame, gotCRC, wantCRC)
	}

	return &frame{Seq: seq, Cmd: cmd, Payload: payload}, nil
}
