package trace

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// Marshal encodes a trace as JSON.
func Marshal(t *Trace) ([]byte, error) {
	data, err := sonic.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode trace: %w", err)
	}
	return data, nil
}

// MarshalIndent encodes a trace as human-readable JSON.
func MarshalIndent(t *Trace) ([]byte, error) {
	data, err := sonic.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode trace: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a JSON trace document.
func Unmarshal(data []byte) (*Trace, error) {
	var t Trace
	if err := sonic.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}
	return &t, nil
}
