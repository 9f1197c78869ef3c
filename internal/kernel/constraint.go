package kernel

import "fmt"

// Constraint bounds the admissible values of a single hyperparameter.
type Constraint interface {
	// Check returns an error if v violates the constraint.
	Check(v float64) error
	String() string
}

type greaterThan struct {
	bound float64
}

// GreaterThan returns a strict lower-bound constraint.
func GreaterThan(bound float64) Constraint {
	return greaterThan{bound: bound}
}

func (c greaterThan) Check(v float64) error {
	if v <= c.bound {
		return fmt.Errorf("value %v violates constraint %s", v, c)
	}
	return nil
}

func (c greaterThan) String() string {
	return fmt.Sprintf("GreaterThan(%v)", c.bound)
}

type lessThan struct {
	bound float64
}

// LessThan returns a strict upper-bound constraint.
func LessThan(bound float64) Constraint {
	return lessThan{bound: bound}
}

func (c lessThan) Check(v float64) error {
	if v >= c.bound {
		return fmt.Errorf("value %v violates constraint %s", v, c)
	}
	return nil
}

func (c lessThan) String() string {
	return fmt.Sprintf("LessThan(%v)", c.bound)
}

// Unconstrained admits any value.
func Unconstrained() Constraint {
	return unconstrained{}
}

type unconstrained struct{}

func (unconstrained) Check(float64) error { return nil }
func (unconstrained) String() string      { return "Unconstrained" }
