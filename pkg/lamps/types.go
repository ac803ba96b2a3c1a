package lamps

import "encoding/json"

// Lamp represents a light known to the vendor bridge.
type Lamp struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Model string    `json:"model,omitempty"`
	State LampState `json:"state"`
}

// LampState is the settable portion of a lamp's state, mirroring the
// bridge's wire format. Pointer fields distinguish "leave unchanged" from
// an explicit value when writing.
type LampState struct {
	On         *bool `json:"on,omitempty"`
	Brightness *int  `json:"bri,omitempty"`
	Hue        *int  `json:"hue,omitempty"`
	Saturation *int  `json:"sat,omitempty"`
	Reachable  bool  `json:"reachable,omitempty"`
}

// StateSchema constrains lamp state payloads accepted from API and tool
// callers before they are forwarded to the bridge.
var StateSchema = json.RawMessage(`{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"on": {"type": "boolean"},
		"bri": {"type": "integer", "minimum": 0, "maximum": 254},
		"hue": {"type": "integer", "minimum": 0, "maximum": 65535},
		"sat": {"type": "integer", "minimum": 0, "maximum": 254}
	},
	"additionalProperties": false
}`)
