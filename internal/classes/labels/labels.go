// Package labels provides label containers for supervised machines.
package labels

import (
	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/object"
	"github.com/born-ml/shogun/internal/sg"
)

// Registered class names.
const (
	RegressionName = "RegressionLabels"
	BinaryName     = "BinaryLabels"
)

type vectorLabels struct {
	object.Base

	values *sg.Vector[float64]
}

func (l *vectorLabels) init(self object.Object, name string) {
	l.Init(self, name)
	object.Register(&l.Base, "labels", &l.values, "one label per vector", object.Model)
}

// NumLabels returns the number of labels.
func (l *vectorLabels) NumLabels() int {
	if l.values == nil {
		return 0
	}
	return l.values.Len()
}

// Values borrows the label vector. It may be nil.
func (l *vectorLabels) Values() *sg.Vector[float64] { return l.values }

// Regression holds real-valued targets.
type Regression struct {
	vectorLabels
}

// NewRegression returns empty regression labels.
func NewRegression() *Regression {
	r := &Regression{}
	r.init(r, RegressionName)
	return r
}

// NewRegressionFrom returns regression labels holding an alias of v.
func NewRegressionFrom(v *sg.Vector[float64]) *Regression {
	r := NewRegression()
	if err := object.Put(r, "labels", v); err != nil {
		panic(err)
	}
	return r
}

// Binary holds labels in {-1, +1}.
type Binary struct {
	vectorLabels
}

// NewBinary returns empty binary labels.
func NewBinary() *Binary {
	b := &Binary{}
	b.init(b, BinaryName)
	return b
}

// NewBinaryFrom validates v and returns binary labels holding an alias of it.
func NewBinaryFrom(v *sg.Vector[float64]) (*Binary, error) {
	if err := checkBinary(v); err != nil {
		return nil, err
	}
	b := NewBinary()
	if err := object.Put(b, "labels", v); err != nil {
		b.Unref()
		return nil, err
	}
	return b, nil
}

// Validate reports an error if any label is not -1 or +1.
func (b *Binary) Validate() error {
	return checkBinary(b.values)
}

func checkBinary(v *sg.Vector[float64]) error {
	if v == nil {
		return nil
	}
	for i, x := range v.Data() {
		if x != 1 && x != -1 {
			return errors.Invalidf("labels: binary label %d is %g, want -1 or +1", i, x)
		}
	}
	return nil
}

// Register adds the label classes to r.
func Register(r *object.Registry) error {
	if err := r.Register(RegressionName, func() object.Object { return NewRegression() }); err != nil {
		return err
	}
	return r.Register(BinaryName, func() object.Object { return NewBinary() })
}

func init() {
	if err := Register(object.DefaultRegistry()); err != nil {
		panic(err)
	}
}
