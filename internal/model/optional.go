package model

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// OptFloat is a numeric reference-data field that may be unknown. The source
// datasets are inconsistent about absence (missing key vs. null); both decode
// to the zero OptFloat so downstream code only ever checks Valid.
type OptFloat struct {
	Value float64
	Valid bool
}

// Float returns a known OptFloat.
func Float(v float64) OptFloat {
	return OptFloat{Value: v, Valid: true}
}

// Or returns the value, or def when unknown.
func (o OptFloat) Or(def float64) float64 {
	if !o.Valid {
		return def
	}
	return o.Value
}

func (o OptFloat) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *OptFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = OptFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return eris.Wrap(err, "model: unmarshal optional float")
	}
	*o = OptFloat{Value: v, Valid: true}
	return nil
}

func (o OptFloat) MarshalYAML() (any, error) {
	if !o.Valid {
		return nil, nil
	}
	return o.Value, nil
}

func (o *OptFloat) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*o = OptFloat{}
		return nil
	}
	v, err := strconv.ParseFloat(node.Value, 64)
	if err != nil {
		return eris.Wrapf(err, "model: parse optional float %q", node.Value)
	}
	*o = OptFloat{Value: v, Valid: true}
	return nil
}

// OptInt is the integer counterpart of OptFloat.
type OptInt struct {
	Value int
	Valid bool
}

// Int returns a known OptInt.
func Int(v int) OptInt {
	return OptInt{Value: v, Valid: true}
}

// Or returns the value, or def when unknown.
func (o OptInt) Or(def int) int {
	if !o.Valid {
		return def
	}
	return o.Value
}

func (o OptInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *OptInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = OptInt{}
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return eris.Wrap(err, "model: unmarshal optional int")
	}
	*o = OptInt{Value: v, Valid: true}
	return nil
}

func (o OptInt) MarshalYAML() (any, error) {
	if !o.Valid {
		return nil, nil
	}
	return o.Value, nil
}

func (o *OptInt) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*o = OptInt{}
		return nil
	}
	v, err := strconv.Atoi(node.Value)
	if err != nil {
		return eris.Wrapf(err, "model: parse optional int %q", node.Value)
	}
	*o = OptInt{Value: v, Valid: true}
	return nil
}
