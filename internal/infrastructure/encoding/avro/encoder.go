package avro

import (
	"fmt"

	"github.com/linkedin/goavro/v2"

	"customer_extract/internal/domain/dataset"
)

// Encoder wraps a goavro codec. goavro codecs are safe for concurrent use.
type Encoder struct {
	codec *goavro.Codec
}

// NewEncoder creates a new encoder from an Avro schema string
func NewEncoder(schema string) (*Encoder, error) {
	codec, err := goavro.NewCodec(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create avro codec: %w", err)
	}
	return &Encoder{codec: codec}, nil
}

// NewRowEncoder creates an encoder for FlatOrderItemSchema.
func NewRowEncoder() (*Encoder, error) {
	return NewEncoder(FlatOrderItemSchema)
}

// EncodeRow converts a row to Avro binary format.
func (e *Encoder) EncodeRow(row dataset.Row) ([]byte, error) {
	return e.EncodeNative(ToFlatOrderItemNative(row))
}

// EncodeNative converts a Go native map to Avro binary format
func (e *Encoder) EncodeNative(native interface{}) ([]byte, error) {
	binary, err := e.codec.BinaryFromNative(nil, native)
	if err != nil {
		return nil, fmt.Errorf("failed to encode to avro binary: %w", err)
	}
	return binary, nil
}

// DecodeNative converts Avro binary back to the goavro native form.
func (e *Encoder) DecodeNative(binary []byte) (interface{}, error) {
	native, _, err := e.codec.NativeFromBinary(binary)
	if err != nil {
		return nil, fmt.Errorf("failed to decode avro binary: %w", err)
	}
	return native, nil
}
