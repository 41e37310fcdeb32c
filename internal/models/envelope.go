package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the uniform response shape of the legacy backend:
// {"code": 200, "response": ...}. code 200 signals success; anything else is
// a backend-reported failure.
type Envelope struct {
	Code     int             `json:"code"`
	Response json.RawMessage `json:"response"`
}

// OK reports whether the backend accepted the operation.
func (e *Envelope) OK() bool {
	return e != nil && e.Code == 200
}

// IsEmpty recognizes the backend's "no data" idioms: a null/absent response,
// a bare false, an empty array, or the [false] single-element array. All of
// these must normalize to empty collections, never to errors.
func (e *Envelope) IsEmpty() bool {
	if e == nil {
		return true
	}
	raw := bytes.TrimSpace(e.Response)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("false")) {
		return true
	}
	if raw[0] != '[' {
		return false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return false
	}
	if len(items) == 0 {
		return true
	}
	if len(items) == 1 && bytes.Equal(bytes.TrimSpace(items[0]), []byte("false")) {
		return true
	}
	return false
}

// Decode unmarshals the response payload into v.
func (e *Envelope) Decode(v interface{}) error {
	if e == nil || len(e.Response) == 0 {
		return fmt.Errorf("empty envelope")
	}
	return json.Unmarshal(e.Response, v)
}

// FlexString tolerates the backend's habit of emitting identifiers as either
// JSON strings or bare numbers depending on the PHP serialization path.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*f = ""
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return string(f)
}
