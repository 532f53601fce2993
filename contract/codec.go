// Package contract is the runtime support imported by code that contractgen
// generates. Generated payload types delegate their JSON and CBOR encodings
// and their equality to this package, and use it to build watermill messages.
package contract

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	binaryEncoder = mustEncMode()
	binaryDecoder = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("contract: invalid CBOR encoding options: %v", err))
	}
	return em
}

func mustDecMode() cbor.DecMode {
	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("contract: invalid CBOR decoding options: %v", err))
	}
	return dm
}

// Payload is implemented by every generated payload type.
type Payload interface {
	ToJSON() ([]byte, error)
	ToBinary() ([]byte, error)
}

// MarshalJSON encodes v as JSON. Struct fields are written in declaration
// order, so the output is deterministic.
func MarshalJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T as JSON: %w", v, err)
	}
	return data, nil
}

// UnmarshalJSON decodes JSON data into v.
func UnmarshalJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %T from JSON: %w", v, err)
	}
	return nil
}

// MarshalBinary encodes v as canonical CBOR.
func MarshalBinary(v any) ([]byte, error) {
	data, err := binaryEncoder.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T as CBOR: %w", v, err)
	}
	return data, nil
}

// UnmarshalBinary decodes CBOR data into v.
func UnmarshalBinary(data []byte, v any) error {
	if err := binaryDecoder.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %T from CBOR: %w", v, err)
	}
	return nil
}

// Equal reports whether two payload values are deeply equal.
func Equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
