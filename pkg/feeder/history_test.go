package feeder

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDecodeHistory_FullReport(t *testing.T) {
	h := DecodeHistory("R:0  C:2  T:1758445204")

	if h.Remaining == nil || *h.Remaining != "0" {
		t.Errorf("remaining = %v, want %q", h.Remaining, "0")
	}
	if h.Count == nil || *h.Count != "2" {
		t.Errorf("count = %v, want %q", h.Count, "2")
	}
	if h.Timestamp == nil || *h.Timestamp != "1758445204" {
		t.Errorf("timestamp = %v, want %q", h.Timestamp, "1758445204")
	}

	want := time.Unix(1758445204, 0).UTC().Format(time.RFC3339)
	if h.TimestampReadable == nil || *h.TimestampReadable != want {
		t.Errorf("timestampReadable = %v, want %q", h.TimestampReadable, want)
	}
}

func TestDecodeHistory_MillisecondTimestamp(t *testing.T) {
	h := DecodeHistory("R:1  C:5  T:1758445204000")

	want := time.UnixMilli(1758445204000).UTC().Format(time.RFC3339)
	if h.TimestampReadable == nil || *h.TimestampReadable != want {
		t.Errorf("timestampReadable = %v, want %q", h.TimestampReadable, want)
	}
}

func TestDecodeHistory_MissingCount(t *testing.T) {
	h := DecodeHistory("R:3  T:1758445204")

	if h.Count != nil {
		t.Errorf("count = %q, want nil", *h.Count)
	}
	if h.Remaining == nil || *h.Remaining != "3" {
		t.Errorf("remaining = %v, want %q", h.Remaining, "3")
	}
	if h.Timestamp == nil || *h.Timestamp != "1758445204" {
		t.Errorf("timestamp = %v, want %q", h.Timestamp, "1758445204")
	}
}

func TestDecodeHistory_NonIntegerTimestamp(t *testing.T) {
	h := DecodeHistory("R:0  C:2  T:soon")

	if h.Timestamp == nil || *h.Timestamp != "soon" {
		t.Errorf("timestamp = %v, want %q", h.Timestamp, "soon")
	}
	if h.TimestampReadable != nil {
		t.Errorf("timestampReadable = %q, want omitted", *h.TimestampReadable)
	}
}

func TestDecodeHistory_NonStringValue(t *testing.T) {
	raw := map[string]any{"code": float64(7)}
	h := DecodeHistory(raw)

	if !h.IsRaw() {
		t.Fatal("expected raw pass-through for non-string value")
	}
	if got, ok := h.Raw.(map[string]any); !ok || got["code"] != float64(7) {
		t.Errorf("raw = %v, want original value", h.Raw)
	}
	if h.Remaining != nil || h.Count != nil || h.Timestamp != nil {
		t.Error("expected nil token fields for raw pass-through")
	}
}

func TestDecodeHistory_EmptyString(t *testing.T) {
	h := DecodeHistory("")

	if h.Remaining != nil || h.Count != nil || h.Timestamp != nil {
		t.Error("expected all fields nil for empty input")
	}
	if h.IsRaw() {
		t.Error("empty string is still a string, not a raw pass-through")
	}
}

func TestDecodeHistory_GarbageTokens(t *testing.T) {
	h := DecodeHistory("X:9  hello  R:4")

	if h.Remaining == nil || *h.Remaining != "4" {
		t.Errorf("remaining = %v, want %q", h.Remaining, "4")
	}
	if h.Count != nil || h.Timestamp != nil {
		t.Error("unrecognized tokens must decode to nil fields")
	}
}

func TestDecodeHistory_NilValue(t *testing.T) {
	h := DecodeHistory(nil)

	if h.IsRaw() {
		t.Error("nil value should not be treated as raw pass-through")
	}
}

func TestDecodeHistory_JSONNullFields(t *testing.T) {
	h := DecodeHistory("R:0")

	data, err := json.Marshal(h)
	if err != nil {
		t.Fatal(err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}

	if _, present := out["count"]; !present {
		t.Error("count must marshal as explicit null, not be omitted")
	}
	if out["count"] != nil {
		t.Errorf("count = %v, want null", out["count"])
	}
	if _, present := out["timestampReadable"]; present {
		t.Error("timestampReadable must be omitted when unparsable or absent")
	}
}
