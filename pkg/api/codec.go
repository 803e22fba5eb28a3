// Package api defines the wire messages of the budgetbuddy.v1 services.
//
// Messages travel as JSON. Field names are camelCase and unknown fields are
// rejected on decode.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CodecName is the Connect codec name, which selects the application/json and
// application/connect+json content types.
const CodecName = "json"

// JSONCodec is the Connect codec for plain Go structs.
type JSONCodec struct{}

func (JSONCodec) Name() string { return CodecName }

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	return nil
}
