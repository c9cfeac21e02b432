package models

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// UnmarshalBlock decodes a JSON block tree.
func UnmarshalBlock(data []byte) (Block, error) {
	return Decoder{}.Unmarshal(data)
}

// Unmarshal decodes a JSON block tree with the decoder's depth limit.
func (d Decoder) Unmarshal(data []byte) (Block, error) {
	var s Structure
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &SchemaError{Reason: "malformed JSON", Err: err}
	}
	if s == nil {
		return nil, &SchemaError{Reason: "expected block object, got null"}
	}
	return d.Decode(s)
}

// UnmarshalStructure decodes a JSON object without interpreting it.
func UnmarshalStructure(data []byte) (Structure, error) {
	var s Structure
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &SchemaError{Reason: "malformed JSON", Err: err}
	}
	return s, nil
}

// MarshalBlock encodes b and its subtree as JSON.
func MarshalBlock(b Block) ([]byte, error) {
	data, err := json.Marshal(b.ToStructure())
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s block: %w", b.Metadata().Type(), err)
	}
	return data, nil
}

// MarshalPartialUpdate encodes the partial update body of b as JSON.
func MarshalPartialUpdate(b Block) ([]byte, error) {
	data, err := json.Marshal(b.ToPartialUpdateStructure())
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s update: %w", b.Metadata().Type(), err)
	}
	return data, nil
}
