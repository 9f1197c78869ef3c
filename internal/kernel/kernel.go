package kernel

// Kernel is a covariance function over full input rows.
//
// Implementations are parameterized by named hyperparameters so that a
// trained state dictionary can be loaded into a composed kernel by dotted
// key (e.g. "time.lengthscale", "outputscale").
type Kernel interface {
	// Cov evaluates the covariance between two input rows.
	Cov(xa, xb []float64) float64

	// Params returns the current hyperparameters keyed by dotted name.
	Params() map[string]float64

	// SetParam sets the hyperparameter with the given dotted name.
	// Setting an unknown name or a value that violates the parameter's
	// constraint is an error.
	SetParam(name string, value float64) error
}
