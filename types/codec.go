package types

import (
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"
)

var (
	// VaultValue encodes the vault singleton in state.
	VaultValue collcodec.ValueCodec[Vault] = NewJSONValueCodec[Vault]("mtvault.Vault")
	// PendingWithdrawalValue encodes pending withdrawal records in state.
	PendingWithdrawalValue collcodec.ValueCodec[PendingWithdrawal] = NewJSONValueCodec[PendingWithdrawal]("mtvault.PendingWithdrawal")
)

// JSONValueCodec is a collections value codec storing T as canonical JSON.
type JSONValueCodec[T any] struct {
	typeName string
}

// NewJSONValueCodec returns a value codec for T reported under typeName.
func NewJSONValueCodec[T any](typeName string) JSONValueCodec[T] {
	return JSONValueCodec[T]{typeName: typeName}
}

func (c JSONValueCodec[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (c JSONValueCodec[T]) Decode(b []byte) (T, error) {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("failed to decode %s: %w", c.typeName, err)
	}
	return v, nil
}

func (c JSONValueCodec[T]) EncodeJSON(value T) ([]byte, error) {
	return c.Encode(value)
}

func (c JSONValueCodec[T]) DecodeJSON(b []byte) (T, error) {
	return c.Decode(b)
}

func (c JSONValueCodec[T]) Stringify(value T) string {
	bz, err := c.Encode(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(bz)
}

func (c JSONValueCodec[T]) ValueType() string {
	return c.typeName
}
