package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Correlation is a coefficient with its two-sided p-value.
type Correlation struct {
	R float64
	P float64
}

// Pearson returns the linear correlation of x and y. The p-value uses a
// Student t with n-2 degrees of freedom. A constant side, or input that makes
// the coefficient undefined, yields r=0, p=1.
func Pearson(x, y []float64) (Correlation, error) {
	if len(x) != len(y) {
		return Correlation{}, fmt.Errorf("pearson: length mismatch %d != %d", len(x), len(y))
	}
	if len(x) < 3 {
		return Correlation{}, fmt.Errorf("pearson: need at least 3 samples, got %d", len(x))
	}
	if constant(x) || constant(y) {
		return Correlation{R: 0, P: 1}, nil
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return Correlation{R: 0, P: 1}, nil
	}
	r = math.Max(-1, math.Min(1, r))
	return Correlation{R: r, P: pValue(r, len(x))}, nil
}

// Spearman is Pearson over average-tie ranks.
func Spearman(x, y []float64) (Correlation, error) {
	if len(x) != len(y) {
		return Correlation{}, fmt.Errorf("spearman: length mismatch %d != %d", len(x), len(y))
	}
	return Pearson(Rank(x), Rank(y))
}

func pValue(r float64, n int) float64 {
	df := float64(n - 2)
	if math.Abs(r) >= 1 {
		return 0
	}
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(t))
	return math.Max(0, math.Min(1, p))
}

func constant(v []float64) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}
	return true
}
