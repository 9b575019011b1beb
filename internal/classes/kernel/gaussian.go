package kernel

import (
	"math"

	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/object"
	"github.com/born-ml/shogun/internal/sg"
)

// GaussianName is the registered class name of Gaussian.
const GaussianName = "GaussianKernel"

// Gaussian computes k(x, y) = exp(-‖x-y‖² / width). The width is stored in
// log space as log_width, with width = 2·exp(2·log_width).
type Gaussian struct {
	dotKernel

	logWidth float64
}

// NewGaussian returns an unbound Gaussian kernel of width 1.
func NewGaussian() *Gaussian {
	return NewGaussianWidth(1)
}

// NewGaussianWidth returns an unbound Gaussian kernel of the given width.
func NewGaussianWidth(width float64) *Gaussian {
	k := &Gaussian{}
	k.init(k, GaussianName)
	k.logWidth = logWidth(width)
	object.Register(&k.Base, "log_width", &k.logWidth, "kernel width in log space", object.Hyperparameter|object.Gradient)
	object.RegisterFunc(&k.Base, "width", k.Width, "kernel width")
	return k
}

func logWidth(width float64) float64 {
	return math.Log(width/2) / 2
}

// Width returns 2·exp(2·log_width).
func (k *Gaussian) Width() float64 {
	return math.Exp(2*k.logWidth) * 2
}

// SetWidth sets the width. It must be positive.
func (k *Gaussian) SetWidth(width float64) error {
	if !(width > 0) {
		return errors.Invalidf("%s: width must be positive, got %g", GaussianName, width)
	}
	return object.Put(k, "log_width", logWidth(width))
}

// Distance returns ‖lhs_i - rhs_j‖².
func (k *Gaussian) Distance(i, j int) (float64, error) {
	l, r, err := k.operands()
	if err != nil {
		return 0, err
	}
	xx, err := l.Dot(i, l, i)
	if err != nil {
		return 0, err
	}
	yy, err := r.Dot(j, r, j)
	if err != nil {
		return 0, err
	}
	xy, err := l.Dot(i, r, j)
	if err != nil {
		return 0, err
	}
	return max(xx+yy-2*xy, 0), nil
}

// Compute returns exp(-‖lhs_i - rhs_j‖² / width).
func (k *Gaussian) Compute(i, j int) (float64, error) {
	d, err := k.Distance(i, j)
	if err != nil {
		return 0, err
	}
	return math.Exp(-d / k.Width()), nil
}

// Matrix returns the full kernel matrix. Squared distances are expanded as
// ‖x‖² + ‖y‖² - 2x·y so the cross term is a single matrix product.
func (k *Gaussian) Matrix() (*sg.Matrix[float64], error) {
	l, r, err := k.operands()
	if err != nil {
		return nil, err
	}
	g, err := gram(l, r)
	if err != nil {
		return nil, err
	}
	ln, err := norms(l)
	if err != nil {
		g.Release()
		return nil, err
	}
	rn, err := norms(r)
	if err != nil {
		g.Release()
		return nil, err
	}

	width := k.Width()
	data := g.Data()
	rows := g.Rows()
	for j := range rn {
		for i := range ln {
			d := max(ln[i]+rn[j]-2*data[i+j*rows], 0)
			data[i+j*rows] = math.Exp(-d / width)
		}
	}
	return g, nil
}
