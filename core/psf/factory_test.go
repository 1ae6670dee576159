package psf

import (
	"errors"
	"testing"

	"github.com/skypix/srcmeas/core/kernel"
	"github.com/skypix/srcmeas/core/measure"
)

func TestFactory_ParametricProtocol(t *testing.T) {
	p, err := New("psf.dgauss", 15, 15, 2.0, 4.0, 0.1)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if p.Kernel() == nil {
		t.Fatal("parametric construction should realise a kernel")
	}

	k, _ := kernel.NewFixedKernel(3, 3, []float64{0, 0, 0, 0, 1, 0, 0, 0, 0})
	if _, err := NewFromKernel("psf.dgauss", k); !errors.Is(err, measure.ErrUnsupported) {
		t.Fatalf("dgauss from kernel: expected ErrUnsupported, got %v", err)
	}
}

func TestFactory_KernelProtocol(t *testing.T) {
	k, _ := kernel.NewFixedKernel(3, 3, []float64{0, 0, 0, 0, 1, 0, 0, 0, 0})
	p, err := NewFromKernel("psf.kernel", k)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if p.Kernel() != k {
		t.Fatal("kernel-backed PSF should keep the supplied kernel")
	}

	if _, err := New("psf.kernel", 15, 15, 2.0, 0, 0); !errors.Is(err, measure.ErrUnsupported) {
		t.Fatalf("kernel psf parametric: expected ErrUnsupported, got %v", err)
	}
}

func TestFactory_UnknownName(t *testing.T) {
	if _, err := New("psf.missing", 15, 15, 2.0, 0, 0); !errors.Is(err, measure.ErrNotRegistered) {
		t.Fatalf("parametric: expected ErrNotRegistered, got %v", err)
	}
	k, _ := kernel.NewFixedKernel(1, 1, []float64{1})
	if _, err := NewFromKernel("psf.missing", k); !errors.Is(err, measure.ErrNotRegistered) {
		t.Fatalf("from kernel: expected ErrNotRegistered, got %v", err)
	}
}

func TestFactory_RegistrationIsIdempotent(t *testing.T) {
	tag := RegisterFactory("psf.dgauss", kernelFactory{})
	again, err := Factories.Lookup("psf.dgauss")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if tag != again {
		t.Fatalf("tags diverge: %d vs %d", tag, again)
	}
	// The original factory must survive the duplicate registration.
	if _, err := New("psf.dgauss", 11, 11, 1.5, 0, 0); err != nil {
		t.Fatalf("dgauss should still build parametrically: %v", err)
	}
}
