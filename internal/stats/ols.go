package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Fit is an ordinary least squares model with intercept.
type Fit struct {
	Coefficients []float64
	Intercept    float64
	R2           float64
	N            int
}

var ErrSingular = errors.New("ols: factorization failed")

// OLS fits y = intercept + X·beta. X is row-major, one row per sample.
// Rank-deficient designs get the minimum-norm coefficients.
func OLS(x [][]float64, y []float64) (Fit, error) {
	n := len(y)
	if n == 0 || len(x) != n {
		return Fit{}, fmt.Errorf("ols: %d rows for %d targets", len(x), n)
	}
	p := len(x[0])
	if p == 0 {
		return Fit{}, errors.New("ols: no predictors")
	}

	means := make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		for i := 0; i < n; i++ {
			if len(x[i]) != p {
				return Fit{}, fmt.Errorf("ols: row %d has %d columns, want %d", i, len(x[i]), p)
			}
			col[i] = x[i][j]
		}
		means[j] = stat.Mean(col, nil)
	}
	yMean := stat.Mean(y, nil)

	a := mat.NewDense(n, p, nil)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			a.Set(i, j, x[i][j]-means[j])
		}
		b.SetVec(i, y[i]-yMean)
	}

	beta := mat.NewVecDense(p, nil)
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return Fit{}, ErrSingular
	}
	rcond := math.Nextafter(1, 2) - 1
	rcond *= float64(max(n, p))
	if rank := svd.Rank(rcond); rank > 0 {
		svd.SolveVecTo(beta, b, rank)
	}

	fit := Fit{
		Coefficients: make([]float64, p),
		Intercept:    yMean,
		N:            n,
	}
	for j := 0; j < p; j++ {
		fit.Coefficients[j] = beta.AtVec(j)
		fit.Intercept -= means[j] * fit.Coefficients[j]
	}

	predicted := make([]float64, n)
	for i := 0; i < n; i++ {
		predicted[i] = fit.Intercept
		for j := 0; j < p; j++ {
			predicted[i] += fit.Coefficients[j] * x[i][j]
		}
	}
	fit.R2 = R2(y, predicted)
	return fit, nil
}

// R2 is the coefficient of determination clamped to [0,1]. A constant target
// scores 1 when predicted exactly and 0 otherwise.
func R2(y, predicted []float64) float64 {
	yMean := stat.Mean(y, nil)
	var ssRes, ssTot float64
	for i := range y {
		ssRes += (y[i] - predicted[i]) * (y[i] - predicted[i])
		ssTot += (y[i] - yMean) * (y[i] - yMean)
	}
	if ssTot == 0 {
		if ssRes <= 1e-12 {
			return 1
		}
		return 0
	}
	return math.Max(0, math.Min(1, 1-ssRes/ssTot))
}
