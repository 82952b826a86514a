// Package expfit fits the exponential growth model y = c·e^(αx) by
// nonlinear least squares.
package expfit

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNonConvergence is matched by NonConvergenceError.
	ErrNonConvergence = errors.New("expfit: optimizer did not converge")

	// ErrInvalidInput reports data the fitter cannot start from.
	ErrInvalidInput = errors.New("expfit: invalid input")
)

// minDamping keeps the damping factor from collapsing to zero after a long
// run of accepted steps.
const minDamping = 1e-15

// Params are the model coefficients: y = Scale·exp(Rate·x).
type Params struct {
	Scale float64 // c
	Rate  float64 // α
}

// Eval evaluates the model at x.
func (p Params) Eval(x float64) float64 {
	return p.Scale * math.Exp(p.Rate*x)
}

// Options controls the Levenberg-Marquardt iteration.
type Options struct {
	MaxIterations      int     // Outer iterations before giving up
	StepTolerance      float64 // Converged when |step| <= tol·(|p| + tol)
	ReductionTolerance float64 // Converged when an accepted step lowers SSE by less than tol·SSE
	InitialDamping     float64
	MaxDamping         float64 // Give up when no step is accepted below this damping
	Logger             *zap.Logger
}

// DefaultOptions returns default fitting options.
func DefaultOptions() *Options {
	return &Options{
		MaxIterations:      200,
		StepTolerance:      1e-10,
		ReductionTolerance: 1e-14,
		InitialDamping:     1e-3,
		MaxDamping:         1e16,
	}
}

// NonConvergenceError is returned when the optimizer stops without meeting
// a convergence test. Last holds the final iterate for inspection only.
type NonConvergenceError struct {
	Iterations int
	Last       Params
	SSE        float64
	Reason     string
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("expfit: no convergence after %d iterations (%s): scale=%g rate=%g sse=%g",
		e.Iterations, e.Reason, e.Last.Scale, e.Last.Rate, e.SSE)
}

func (e *NonConvergenceError) Is(target error) bool { return target == ErrNonConvergence }

// Result is a converged fit.
type Result struct {
	Params
	Converged  bool
	Iterations int
	SSE        float64 // Sum of squared residuals

	X         []float64
	Y         []float64
	Fitted    []float64
	Residuals []float64 // Y - Fitted
}

// Fit minimises Σ(y - c·e^(αx))² starting from guess. It uses
// Levenberg-Marquardt with Marquardt's diagonal scaling and the analytic
// Jacobian ∂/∂c = e^(αx), ∂/∂α = c·x·e^(αx).
//
// Non-positive y values are accepted as they are; they tend to show up as a
// poor fit or a NonConvergenceError rather than an input error.
func Fit(x, y []float64, guess Params, opts *Options) (*Result, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d x values, %d y values", ErrInvalidInput, len(x), len(y))
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidInput, len(x))
	}
	for i := range x {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			return nil, fmt.Errorf("%w: non-finite point at index %d", ErrInvalidInput, i)
		}
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	p := guess
	r := make([]float64, len(x))
	trial := make([]float64, len(x))
	sse := residuals(x, y, p, r)
	if !isFinite(sse) {
		return nil, fmt.Errorf("%w: initial guess %+v overflows", ErrInvalidInput, guess)
	}

	lambda := opts.InitialDamping
	for iter := 1; iter <= opts.MaxIterations; iter++ {
		if sse == 0 {
			return newResult(x, y, p, r, sse, iter), nil
		}

		// Normal equations JᵀJ·δ = Jᵀr for the model Jacobian J.
		var a11, a12, a22, g1, g2 float64
		for i, xi := range x {
			e := math.Exp(p.Rate * xi)
			j1, j2 := e, p.Scale*xi*e
			a11 += j1 * j1
			a12 += j1 * j2
			a22 += j2 * j2
			g1 += j1 * r[i]
			g2 += j2 * r[i]
		}
		d1 := math.Max(a11, math.SmallestNonzeroFloat64)
		d2 := math.Max(a22, math.SmallestNonzeroFloat64)
		grad := mat.NewVecDense(2, []float64{g1, g2})

		for {
			step, ok := solve(mat.NewSymDense(2, []float64{
				a11 + lambda*d1, a12,
				a12, a22 + lambda*d2,
			}), grad)

			if ok {
				if math.Hypot(step[0], step[1]) <= opts.StepTolerance*(math.Hypot(p.Scale, p.Rate)+opts.StepTolerance) {
					log.Debug("step below tolerance", zap.Int("iteration", iter), zap.Float64("sse", sse))
					return newResult(x, y, p, r, sse, iter), nil
				}

				next := Params{Scale: p.Scale + step[0], Rate: p.Rate + step[1]}
				nextSSE := residuals(x, y, next, trial)
				if isFinite(nextSSE) && nextSSE < sse {
					reduction := sse - nextSSE
					prev := sse
					p, sse = next, nextSSE
					r, trial = trial, r
					lambda = math.Max(lambda/10, minDamping)

					log.Debug("accepted step",
						zap.Int("iteration", iter),
						zap.Float64("scale", p.Scale),
						zap.Float64("rate", p.Rate),
						zap.Float64("sse", sse),
						zap.Float64("damping", lambda))

					if reduction <= opts.ReductionTolerance*prev {
						return newResult(x, y, p, r, sse, iter), nil
					}
					break
				}
			}

			lambda *= 10
			if lambda > opts.MaxDamping {
				return nil, &NonConvergenceError{Iterations: iter, Last: p, SSE: sse, Reason: "damping limit reached"}
			}
		}
	}

	return nil, &NonConvergenceError{Iterations: opts.MaxIterations, Last: p, SSE: sse, Reason: "iteration limit reached"}
}

// solve returns the solution of a·δ = b, or false when a is not numerically
// positive definite.
func solve(a *mat.SymDense, b *mat.VecDense) ([]float64, bool) {
	var chol mat.Cholesky
	if !chol.Factorize(a) {
		return nil, false
	}

	var delta mat.VecDense
	if err := chol.SolveVecTo(&delta, b); err != nil {
		// An ill-conditioned system still yields a usable step.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, false
		}
	}

	step := []float64{delta.AtVec(0), delta.AtVec(1)}
	if !isFinite(step[0]) || !isFinite(step[1]) {
		return nil, false
	}
	return step, true
}

// residuals fills r with y - model and returns the sum of squares.
func residuals(x, y []float64, p Params, r []float64) float64 {
	sse := 0.0
	for i, xi := range x {
		r[i] = y[i] - p.Eval(xi)
		sse += r[i] * r[i]
	}
	return sse
}

func newResult(x, y []float64, p Params, r []float64, sse float64, iter int) *Result {
	res := &Result{
		Params:     p,
		Converged:  true,
		Iterations: iter,
		SSE:        sse,
		X:          append([]float64(nil), x...),
		Y:          append([]float64(nil), y...),
		Residuals:  append([]float64(nil), r...),
		Fitted:     make([]float64, len(x)),
	}
	for i, xi := range x {
		res.Fitted[i] = p.Eval(xi)
	}
	return res
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
