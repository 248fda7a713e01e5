// Package yamlutil wraps YAML serialization to isolate the external
// dependency. This allows swapping the underlying YAML library without
// modifying callers.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

var ErrNilValue = errors.New("yamlutil: nil value")

// Marshal serializes v to YAML.
func Marshal(v any) ([]byte, error) {
	if v == nil {
		return nil, ErrNilValue
	}
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}
