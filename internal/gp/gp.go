package gp

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/heron-ml/heron/internal/kernel"
)

// ErrNotPrepared is returned by query methods before Prepare has
// factorized the training covariance.
var ErrNotPrepared = errors.New("gp: model not prepared")

// Jitter added to the covariance diagonal when a Cholesky factorization
// fails numerically. Escalates by powers of ten up to maxJitter.
const (
	initialJitter = 1e-10
	maxJitter     = 1e-4
)

// ExactGP is an exact Gaussian process regressor with a zero prior mean.
//
// The regressor is immutable after Prepare: training data, kernel
// hyperparameters and likelihood noise are fixed, and every query is an
// independent read against the factorized training covariance.
type ExactGP struct {
	x    *mat.Dense    // training inputs, n×d
	y    *mat.VecDense // training targets, n
	kern kernel.Kernel
	lik  *GaussianLikelihood

	chol  *mat.Cholesky // factorization of K(X,X) + noise*I
	alpha *mat.VecDense // (K + noise*I)^-1 y
}

// NewExactGP creates a regressor over n training rows. The model is not
// usable until Prepare is called (after any trained state is loaded).
func NewExactGP(x *mat.Dense, y []float64, k kernel.Kernel, lik *GaussianLikelihood) (*ExactGP, error) {
	n, _ := x.Dims()
	if n == 0 {
		return nil, errors.New("gp: empty training set")
	}
	if n != len(y) {
		return nil, fmt.Errorf("gp: %d training rows but %d targets", n, len(y))
	}
	return &ExactGP{
		x:    x,
		y:    mat.NewVecDense(n, y),
		kern: k,
		lik:  lik,
	}, nil
}

// Kernel returns the model's covariance function.
func (g *ExactGP) Kernel() kernel.Kernel {
	return g.kern
}

// Likelihood returns the model's observation-noise model.
func (g *ExactGP) Likelihood() *GaussianLikelihood {
	return g.lik
}

// Prepare factorizes the training covariance. It must be called once,
// after the kernel and likelihood carry their final hyperparameters.
func (g *ExactGP) Prepare() error {
	n, _ := g.x.Dims()
	k := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		xi := g.x.RawRowView(i)
		for j := i; j < n; j++ {
			k.SetSym(i, j, g.kern.Cov(xi, g.x.RawRowView(j)))
		}
	}
	for i := 0; i < n; i++ {
		k.SetSym(i, i, k.At(i, i)+g.lik.Noise())
	}

	chol, err := factorize(k)
	if err != nil {
		return err
	}
	g.chol = chol

	alpha := mat.NewVecDense(n, nil)
	if err := g.chol.SolveVecTo(alpha, g.y); err != nil {
		return fmt.Errorf("failed to solve for alpha: %w", err)
	}
	g.alpha = alpha
	return nil
}

// factorize attempts a Cholesky factorization, escalating a diagonal
// jitter when the matrix is not numerically positive definite.
func factorize(k *mat.SymDense) (*mat.Cholesky, error) {
	var chol mat.Cholesky
	if chol.Factorize(k) {
		return &chol, nil
	}
	n := k.SymmetricDim()
	for jitter := initialJitter; jitter <= maxJitter; jitter *= 10 {
		jittered := mat.NewSymDense(n, nil)
		jittered.CopySym(k)
		for i := 0; i < n; i++ {
			jittered.SetSym(i, i, jittered.At(i, i)+jitter)
		}
		if chol.Factorize(jittered) {
			return &chol, nil
		}
	}
	return nil, errors.New("gp: covariance matrix is not positive definite")
}

// Posterior holds the predictive distribution at a set of query rows.
type Posterior struct {
	Mean *mat.VecDense
	Cov  *mat.SymDense
}

// Variance returns the diagonal of the predictive covariance.
func (p *Posterior) Variance() []float64 {
	n := p.Mean.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = p.Cov.At(i, i)
	}
	return out
}

// Posterior evaluates the predictive mean and covariance at m query
// rows:
//
//	mean = Kzx (Kxx + noise*I)^-1 y
//	cov  = Kzz - Kzx (Kxx + noise*I)^-1 Kxz
func (g *ExactGP) Posterior(points *mat.Dense) (*Posterior, error) {
	if g.chol == nil {
		return nil, ErrNotPrepared
	}
	n, d := g.x.Dims()
	m, qd := points.Dims()
	if qd != d {
		return nil, fmt.Errorf("gp: query has %d columns, training inputs have %d", qd, d)
	}

	// Cross-covariance Kxz between training and query rows.
	kxz := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		xi := g.x.RawRowView(i)
		for j := 0; j < m; j++ {
			kxz.Set(i, j, g.kern.Cov(xi, points.RawRowView(j)))
		}
	}

	mean := mat.NewVecDense(m, nil)
	mean.MulVec(kxz.T(), g.alpha)

	// v = (Kxx + noise*I)^-1 Kxz, so cov = Kzz - Kzx v.
	v := mat.NewDense(n, m, nil)
	if err := g.chol.SolveTo(v, kxz); err != nil {
		return nil, fmt.Errorf("failed to solve predictive system: %w", err)
	}
	reduction := mat.NewDense(m, m, nil)
	reduction.Mul(kxz.T(), v)

	cov := mat.NewSymDense(m, nil)
	for i := 0; i < m; i++ {
		zi := points.RawRowView(i)
		for j := i; j < m; j++ {
			prior := g.kern.Cov(zi, points.RawRowView(j))
			// Average the off-diagonal pair to keep the matrix exactly
			// symmetric under floating-point error.
			red := 0.5 * (reduction.At(i, j) + reduction.At(j, i))
			cov.SetSym(i, j, prior-red)
		}
	}

	return &Posterior{Mean: mean, Cov: cov}, nil
}

// Sample draws n paths from the posterior predictive distribution, with
// the likelihood's observation noise added to the covariance diagonal.
// n = 0 returns an empty sample set.
func (g *ExactGP) Sample(points *mat.Dense, n int, src rand.Source) ([][]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("gp: negative sample count %d", n)
	}
	if n == 0 {
		return [][]float64{}, nil
	}
	post, err := g.Posterior(points)
	if err != nil {
		return nil, err
	}

	m := post.Mean.Len()
	noisy := mat.NewSymDense(m, nil)
	noisy.CopySym(post.Cov)
	for i := 0; i < m; i++ {
		noisy.SetSym(i, i, noisy.At(i, i)+g.lik.Noise())
	}

	dist, ok := distmv.NewNormal(post.Mean.RawVector().Data, noisy, src)
	if !ok {
		// The noise-free covariance can be rank deficient; retry with
		// jitter on the diagonal.
		for i := 0; i < m; i++ {
			noisy.SetSym(i, i, noisy.At(i, i)+maxJitter)
		}
		dist, ok = distmv.NewNormal(post.Mean.RawVector().Data, noisy, src)
		if !ok {
			return nil, errors.New("gp: posterior covariance is not positive definite")
		}
	}

	samples := make([][]float64, n)
	for i := range samples {
		samples[i] = dist.Rand(nil)
	}
	return samples, nil
}
