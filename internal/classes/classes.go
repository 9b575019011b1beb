// Package classes links every built-in class into the default registry and
// can register them into other registries.
package classes

import (
	"github.com/born-ml/shogun/internal/classes/features"
	"github.com/born-ml/shogun/internal/classes/kernel"
	"github.com/born-ml/shogun/internal/classes/labels"
	"github.com/born-ml/shogun/internal/classes/machine"
	"github.com/born-ml/shogun/internal/classes/tokenizer"
	"github.com/born-ml/shogun/internal/object"
)

// RegisterAll adds every built-in class to r.
func RegisterAll(r *object.Registry) error {
	for _, register := range []func(*object.Registry) error{
		features.Register,
		labels.Register,
		kernel.Register,
		machine.Register,
		tokenizer.Register,
	} {
		if err := register(r); err != nil {
			return err
		}
	}
	return nil
}
