package shared

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// DecodeJSONFields decodes the request body twice: once into the given
// struct and once into a raw key set, so callers can enforce field
// allow-lists on PATCH bodies. Any key outside allowed fails the whole
// request before a single field is applied.
func DecodeJSONFields(r *http.Request, v interface{}, allowed map[string]bool) error {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return err
	}

	for key := range raw {
		if !allowed[key] {
			return fmt.Errorf("field %q is not allowed in updates", key)
		}
	}

	merged, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, v)
}
