package psf

import (
	"fmt"

	"github.com/skypix/srcmeas/core/kernel"
	"github.com/skypix/srcmeas/core/measure"
)

// Factory builds PSFs under one of two construction protocols. Concrete
// factories embed UnimplementedFactory and override the protocol they
// support, so asking a factory for the other protocol fails with
// measure.ErrUnsupported instead of compiling into silence.
type Factory interface {
	CreateParametric(width, height int, p0, p1, p2 float64) (*PSF, error)
	CreateFromKernel(k kernel.Kernel) (*PSF, error)
}

// UnimplementedFactory fails both protocols naming the missing signature.
type UnimplementedFactory struct{}

func (UnimplementedFactory) CreateParametric(int, int, float64, float64, float64) (*PSF, error) {
	return nil, fmt.Errorf("%w: this PSF cannot be created with signature (width, height, p0, p1, p2)", measure.ErrUnsupported)
}

func (UnimplementedFactory) CreateFromKernel(kernel.Kernel) (*PSF, error) {
	return nil, fmt.Errorf("%w: this PSF cannot be created with signature (kernel)", measure.ErrUnsupported)
}

// Factories is the process-wide PSF factory registry. Builtins register on
// package init; registration is idempotent.
var Factories = measure.NewRegistry[Factory]()

// RegisterFactory adds f under name and returns its tag.
func RegisterFactory(name string, f Factory) int {
	return Factories.Register(name, f)
}

// New builds a parametric PSF through the named factory.
func New(name string, width, height int, p0, p1, p2 float64) (*PSF, error) {
	f, err := Factories.GetByName(name)
	if err != nil {
		return nil, err
	}
	return f.CreateParametric(width, height, p0, p1, p2)
}

// NewFromKernel builds a kernel-backed PSF through the named factory.
func NewFromKernel(name string, k kernel.Kernel) (*PSF, error) {
	f, err := Factories.GetByName(name)
	if err != nil {
		return nil, err
	}
	return f.CreateFromKernel(k)
}

type dgaussFactory struct{ UnimplementedFactory }

func (dgaussFactory) CreateParametric(width, height int, sigma1, sigma2, b float64) (*PSF, error) {
	return NewDoubleGaussian(width, height, sigma1, sigma2, b)
}

type kernelFactory struct{ UnimplementedFactory }

func (kernelFactory) CreateFromKernel(k kernel.Kernel) (*PSF, error) {
	return NewKernelBacked(k)
}

func init() {
	RegisterFactory("psf.dgauss", dgaussFactory{})
	RegisterFactory("psf.kernel", kernelFactory{})
}
