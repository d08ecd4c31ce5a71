package order

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackContentType is the media type of the binary order encoding
const MsgpackContentType = "application/x-msgpack"

// EncodeMsgpack encodes the order for binary clients
func EncodeMsgpack(o Order) ([]byte, error) {
	data, err := msgpack.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order: %w", err)
	}
	return data, nil
}

// DecodeMsgpack decodes an order written by EncodeMsgpack
func DecodeMsgpack(data []byte) (Order, error) {
	var o Order
	if err := msgpack.Unmarshal(data, &o); err != nil {
		return Order{}, fmt.Errorf("failed to decode order: %w", err)
	}
	return o, nil
}
