package firebaseauth

import (
	"encoding/json"
)

// decoder extracts fields one by one and keeps the first failure.
type decoder struct {
	raw map[string]json.RawMessage
	err error
}

func (d *decoder) str(key string) string {
	if d.err != nil {
		return ""
	}
	v, err := requireString(d.raw, key)
	if err != nil {
		d.err = err
	}
	return v
}

func (d *decoder) optStr(key string) string {
	if d.err != nil {
		return ""
	}
	if _, ok := d.raw[key]; !ok {
		return ""
	}
	return d.str(key)
}

func (d *decoder) boolean(key string) bool {
	if d.err != nil {
		return false
	}
	body, ok := d.raw[key]
	if !ok {
		d.err = &MalformedResponseError{Field: key, Reason: "is missing"}
		return false
	}
	var v bool
	if err := json.Unmarshal(body, &v); err != nil || string(body) == "null" {
		d.err = &MalformedResponseError{Field: key, Reason: "is not a boolean"}
		return false
	}
	return v
}

func requireString(raw map[string]json.RawMessage, key string) (string, error) {
	body, ok := raw[key]
	if !ok {
		return "", &MalformedResponseError{Field: key, Reason: "is missing"}
	}
	var v string
	if err := json.Unmarshal(body, &v); err != nil || string(body) == "null" {
		return "", &MalformedResponseError{Field: key, Reason: "is not a string"}
	}
	return v, nil
}

func requireInt(raw map[string]json.RawMessage, key string) (int, error) {
	body, ok := raw[key]
	if !ok {
		return 0, &MalformedResponseError{Field: key, Reason: "is missing"}
	}
	var v int
	if err := json.Unmarshal(body, &v); err != nil || string(body) == "null" {
		return 0, &MalformedResponseError{Field: key, Reason: "is not an integer"}
	}
	return v, nil
}

func object(body json.RawMessage, key string) (map[string]json.RawMessage, error) {
	var v map[string]json.RawMessage
	if err := json.Unmarshal(body, &v); err != nil || v == nil {
		return nil, &MalformedResponseError{Field: key, Reason: "is not an object"}
	}
	return v, nil
}
