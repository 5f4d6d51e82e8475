// Package transform applies what-if edits to simulation requests, so that a
// request can be re-run with one parameter changed (break-even search,
// CLI --what-if).
package transform

import (
	"fmt"

	"github.com/fiscalite/taxsim/internal/domain"
)

// RequestTransform defines the interface for all request transformations.
// Transforms never modify their input; Apply returns an edited copy.
type RequestTransform interface {
	// Apply returns a modified copy of base.
	Apply(base *domain.SimulationRequest) (*domain.SimulationRequest, error)

	// Name returns a short identifier for this transform (e.g., "set_turnover").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks that the transform can be applied to base.
	Validate(base *domain.SimulationRequest) error
}

// ApplyTransforms applies transforms in order, each receiving the output of
// the previous one.
func ApplyTransforms(base *domain.SimulationRequest, transforms []RequestTransform) (*domain.SimulationRequest, error) {
	if base == nil {
		return nil, fmt.Errorf("base request cannot be nil")
	}

	current := Clone(base)
	for i, t := range transforms {
		if t == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// Clone copies a request and its input block. Decimal values are immutable,
// so copying the structs is enough.
func Clone(req *domain.SimulationRequest) *domain.SimulationRequest {
	c := *req
	if req.IncomeTax != nil {
		v := *req.IncomeTax
		c.IncomeTax = &v
	}
	if req.RealEstateGain != nil {
		v := *req.RealEstateGain
		c.RealEstateGain = &v
	}
	if req.SecuritiesGain != nil {
		v := *req.SecuritiesGain
		c.SecuritiesGain = &v
	}
	if req.Regime != nil {
		v := *req.Regime
		c.Regime = &v
	}
	if req.Acquisition != nil {
		v := *req.Acquisition
		c.Acquisition = &v
	}
	if req.Donation != nil {
		v := *req.Donation
		c.Donation = &v
	}
	if req.Freelance != nil {
		v := *req.Freelance
		c.Freelance = &v
	}
	return &c
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error { return e.Err }
