// Package features provides feature containers for kernels and machines.
package features

import (
	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/linalg"
	"github.com/born-ml/shogun/internal/object"
	"github.com/born-ml/shogun/internal/sg"
)

// DenseName is the registered class name of Dense.
const DenseName = "DenseFeatures"

// Dense stores float64 feature vectors as the columns of a matrix.
type Dense struct {
	object.Base

	matrix *sg.Matrix[float64]
}

// NewDense returns empty dense features.
func NewDense() *Dense {
	d := &Dense{}
	d.Init(d, DenseName)
	object.Register(&d.Base, "feature_matrix", &d.matrix, "feature vectors, one per column", object.Model)
	return d
}

// NewDenseFrom returns dense features holding an alias of m.
func NewDenseFrom(m *sg.Matrix[float64]) *Dense {
	d := NewDense()
	d.SetFeatureMatrix(m)
	return d
}

// SetFeatureMatrix replaces the feature matrix with an alias of m.
func (d *Dense) SetFeatureMatrix(m *sg.Matrix[float64]) {
	if err := object.Put(d, "feature_matrix", m); err != nil {
		panic(err)
	}
}

// FeatureMatrix borrows the feature matrix. It may be nil.
func (d *Dense) FeatureMatrix() *sg.Matrix[float64] { return d.matrix }

// NumVectors returns the number of columns.
func (d *Dense) NumVectors() int {
	if d.matrix == nil {
		return 0
	}
	return d.matrix.Cols()
}

// NumFeatures returns the number of rows.
func (d *Dense) NumFeatures() int {
	if d.matrix == nil {
		return 0
	}
	return d.matrix.Rows()
}

// FeatureType is always float64.
func (d *Dense) FeatureType() sg.PType { return sg.Float64 }

// Vector returns feature vector i as a view of the matrix. The caller
// releases it.
func (d *Dense) Vector(i int) (*sg.Vector[float64], error) {
	return column(d.matrix, i)
}

// Dot returns the inner product of vector i with vector j of other.
func (d *Dense) Dot(i int, other object.DotFeatures, j int) (float64, error) {
	if other == nil {
		return 0, errors.Wrap(errors.ErrInvalidArgument, "features: dot with nil features")
	}
	if other.NumFeatures() != d.NumFeatures() {
		return 0, errors.NewShapeError("dot", []int{d.NumFeatures()}, []int{other.NumFeatures()})
	}
	x, err := d.Vector(i)
	if err != nil {
		return 0, err
	}
	defer x.Release()

	y, err := column(other.FeatureMatrix(), j)
	if err != nil {
		return 0, err
	}
	defer y.Release()
	return linalg.Dot[float64](nil, x, y)
}

func column(m *sg.Matrix[float64], j int) (*sg.Vector[float64], error) {
	if m == nil {
		return nil, errors.NewIndexError([]int{j}, []int{0})
	}
	return m.Column(j)
}

// Register adds the feature classes to r.
func Register(r *object.Registry) error {
	return r.Register(DenseName, func() object.Object { return NewDense() })
}

func init() {
	if err := Register(object.DefaultRegistry()); err != nil {
		panic(err)
	}
}
