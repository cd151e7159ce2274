package planner

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeRequest converts loosely typed tool arguments (JSON numbers arrive as float64)
// into a Request. "duration" is accepted as an alias for "duration_minutes".
func DecodeRequest(args map[string]any) (Request, error) {
	in := make(map[string]any, len(args))
	for k, v := range args {
		in[k] = v
	}
	if d, ok := in["duration"]; ok {
		if _, set := in["duration_minutes"]; !set {
			in["duration_minutes"] = d
		}
		delete(in, "duration")
	}

	var req Request
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &req,
	})
	if err != nil {
		return Request{}, err
	}
	if err := dec.Decode(in); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}
