package main

import (
	"errors"
	"fmt"
)

// ErrMissingRequirement reports an external tool absent from PATH.
var ErrMissingRequirement = errors.New("required tool not found on PATH")

// checkRequirements verifies the external tools for a run before any work is
// done. Pandoc is always needed; xelatex only for plain PDF output, since
// slide decks are printed through the browser instead.
func checkRequirements(env *Environment, presentation bool) error {
	required := []string{"pandoc"}
	if !presentation {
		required = append(required, "xelatex")
	}

	for _, tool := range required {
		if _, err := env.LookPath(tool); err != nil {
			return fmt.Errorf("%w: %s (install it and retry)", ErrMissingRequirement, tool)
		}
	}
	return nil
}
