package object

import "github.com/born-ml/shogun/internal/sg"

// Features is a collection of feature vectors.
type Features interface {
	Object
	NumVectors() int
	NumFeatures() int
	FeatureType() sg.PType
}

// DotFeatures are features backed by a dense matrix with one vector per
// column.
type DotFeatures interface {
	Features
	// FeatureMatrix borrows the feature matrix.
	FeatureMatrix() *sg.Matrix[float64]
	// Dot returns the inner product of vector i with vector j of other.
	Dot(i int, other DotFeatures, j int) (float64, error)
}

// Labels holds one target value per vector.
type Labels interface {
	Object
	NumLabels() int
	// Values borrows the label vector.
	Values() *sg.Vector[float64]
}

// Kernel computes similarities between two feature sets.
type Kernel interface {
	Object
	// Setup binds the left and right feature sets.
	Setup(lhs, rhs Features) error
	// Compute returns k(lhs_i, rhs_j).
	Compute(i, j int) (float64, error)
	// Matrix returns the full kernel matrix, lhs vectors by rhs vectors.
	Matrix() (*sg.Matrix[float64], error)
	// Cleanup unbinds the feature sets.
	Cleanup()
}

// HasKernel is implemented by objects parameterized by a kernel.
type HasKernel interface {
	Object
	Kernel() Kernel
	SetKernel(k Kernel)
}

// Machine learns a mapping from features to labels.
type Machine interface {
	Object
	Train(data Features, labels Labels) error
	Apply(data Features) (Labels, error)
}

// Tokenizer converts text to token ids and back.
type Tokenizer interface {
	Object
	Encode(text string) (*sg.Vector[int32], error)
	Decode(tokens *sg.Vector[int32]) (string, error)
}
