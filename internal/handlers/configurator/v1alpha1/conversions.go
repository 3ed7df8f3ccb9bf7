package v1alpha1

import (
	"encoding/json"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/configurator-api/internal/errors"
)

func optionalString(req *structpb.Struct, field string) string {
	return req.GetFields()[field].GetStringValue()
}

func requiredString(req *structpb.Struct, field string) (string, error) {
	v := optionalString(req, field)
	if v == "" {
		return "", errors.InvalidArgumentf("%s is required", field)
	}
	return v, nil
}

// intField reads a whole number, returning def when the field is absent
func intField(req *structpb.Struct, field string, def int) (int, error) {
	v, ok := req.GetFields()[field]
	if !ok {
		return def, nil
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, errors.InvalidArgumentf("%s must be a whole number", field)
	}
	if n.NumberValue > math.MaxInt32 || n.NumberValue < math.MinInt32 {
		return 0, errors.InvalidArgumentf("%s is out of range", field)
	}
	return int(n.NumberValue), nil
}

// toValue converts a JSON-tagged value into a generic structure structpb accepts
func toValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to build response"))
	}
	return s, nil
}
