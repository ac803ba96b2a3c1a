package feeder

import (
	"strconv"
	"strings"
	"time"
)

// History is the decoded form of the feeder's status report string,
// e.g. "R:0  C:2  T:1758445204". Token values are kept verbatim as
// strings; fields for absent tokens marshal as JSON null. Field names
// match the wire contract consumed by the dashboard.
type History struct {
	Remaining         *string `json:"remaining"`
	Count             *string `json:"count"`
	Timestamp         *string `json:"timestamp"`
	TimestampReadable *string `json:"timestampReadable,omitempty"`
	Raw               any     `json:"raw,omitempty"`
}

// IsRaw reports whether the device returned something other than a status
// string, in which case only Raw is populated.
func (h History) IsRaw() bool {
	return h.Raw != nil
}

// msThreshold distinguishes epoch-seconds from epoch-milliseconds
// timestamps. Values above it are assumed to be milliseconds. This is a
// heuristic with no device-side guarantee; firmware observed so far
// reports seconds.
const msThreshold = int64(1_000_000_000_000)

// DecodeHistory parses a raw feed-history value read from the device.
// It never fails: malformed or missing tokens decode to nil fields, and a
// non-string value is passed through unmodified in the Raw field.
func DecodeHistory(v any) History {
	s, ok := v.(string)
	if !ok {
		return History{Raw: v}
	}

	var h History
	for _, token := range strings.Fields(s) {
		if val, found := strings.CutPrefix(token, "R:"); found {
			h.Remaining = &val
		} else if val, found := strings.CutPrefix(token, "C:"); found {
			h.Count = &val
		} else if val, found := strings.CutPrefix(token, "T:"); found {
			h.Timestamp = &val
			if readable, ok := formatEpoch(val); ok {
				h.TimestampReadable = &readable
			}
		}
	}

	return h
}

// formatEpoch renders an epoch timestamp token as RFC 3339. Returns false
// if the token is not an integer; the readable field is then omitted
// rather than failing the decode.
func formatEpoch(token string) (string, bool) {
	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return "", false
	}

	var t time.Time
	if n > msThreshold {
		t = time.UnixMilli(n)
	} else {
		t = time.Unix(n, 0)
	}

	return t.UTC().Format(time.RFC3339), true
}
