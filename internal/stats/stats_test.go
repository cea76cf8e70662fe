package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPearson(t *testing.T) {
	c, err := Pearson([]float64{1, 2, 3, 4, 5}, []float64{2, 4, 5, 4, 5})
	require.NoError(t, err)
	assert.InDelta(t, 0.7745966692, c.R, 1e-9)
	assert.InDelta(t, 0.1240270627, c.P, 1e-6)
}

func TestPearsonPerfectAndConstant(t *testing.T) {
	c, err := Pearson([]float64{1, 2, 3, 4, 5, 6}, []float64{6, 5, 4, 3, 2, 1})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, c.R, 1e-12)
	assert.Equal(t, 0.0, c.P)

	c, err = Pearson([]float64{1, 2, 3}, []float64{7, 7, 7})
	require.NoError(t, err)
	assert.Equal(t, Correlation{R: 0, P: 1}, c)
}

func TestPearsonUndefinedIsNeutral(t *testing.T) {
	c, err := Pearson([]float64{1, 2, math.Inf(1)}, []float64{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, Correlation{R: 0, P: 1}, c)
}

func TestPearsonRejectsShortInput(t *testing.T) {
	_, err := Pearson([]float64{1, 2}, []float64{1, 2})
	assert.Error(t, err)

	_, err = Pearson([]float64{1, 2, 3}, []float64{1, 2})
	assert.Error(t, err)
}

func TestSpearmanWithTies(t *testing.T) {
	c, err := Spearman([]float64{1, 2, 3, 4, 5}, []float64{5, 6, 7, 8, 7})
	require.NoError(t, err)
	assert.InDelta(t, 0.8207826817, c.R, 1e-9)
	assert.InDelta(t, 0.0885870053, c.P, 1e-6)
}

func TestRank(t *testing.T) {
	assert.Equal(t, []float64{2, 3.5, 3.5, 5, 1}, Rank([]float64{10, 20, 20, 30, 5}))
	assert.Empty(t, Rank(nil))
}

func TestOLSExactFit(t *testing.T) {
	x1 := []float64{1, 2, 3, 4, 5, 6}
	x2 := []float64{2, 1, 4, 3, 6, 5}
	var x [][]float64
	var y []float64
	for i := range x1 {
		x = append(x, []float64{x1[i], x2[i]})
		y = append(y, 2+3*x1[i]-x2[i])
	}

	fit, err := OLS(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, fit.Coefficients[0], 1e-9)
	assert.InDelta(t, -1.0, fit.Coefficients[1], 1e-9)
	assert.InDelta(t, 2.0, fit.Intercept, 1e-9)
	assert.InDelta(t, 1.0, fit.R2, 1e-9)
	assert.Equal(t, 6, fit.N)
}

func TestOLSCollinearDesignUsesMinimumNorm(t *testing.T) {
	x1 := []float64{1, 2, 3, 4, 5, 6}
	x2 := []float64{2, 1, 4, 3, 6, 5}
	var x [][]float64
	var y []float64
	for i := range x1 {
		x = append(x, []float64{x1[i], x2[i], 2 * x1[i]})
		y = append(y, 2+3*x1[i]-x2[i])
	}

	fit, err := OLS(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, fit.Coefficients[0], 1e-8)
	assert.InDelta(t, -1.0, fit.Coefficients[1], 1e-8)
	assert.InDelta(t, 1.2, fit.Coefficients[2], 1e-8)
	assert.InDelta(t, 2.0, fit.Intercept, 1e-8)
	assert.InDelta(t, 1.0, fit.R2, 1e-9)
}

func TestOLSConstantPredictor(t *testing.T) {
	x := [][]float64{{1}, {1}, {1}, {1}}
	y := []float64{1, 2, 3, 4}

	fit, err := OLS(x, y)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fit.Coefficients[0])
	assert.InDelta(t, 2.5, fit.Intercept, 1e-12)
	assert.Equal(t, 0.0, fit.R2)
}

func TestR2Bounds(t *testing.T) {
	assert.Equal(t, 1.0, R2([]float64{3, 3, 3}, []float64{3, 3, 3}))
	assert.Equal(t, 0.0, R2([]float64{3, 3, 3}, []float64{1, 2, 3}))
	assert.Equal(t, 0.0, R2([]float64{1, 2, 3}, []float64{3, 2, 1}))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.12, Round(0.125, 2))
	assert.Equal(t, 0.14, Round(0.135, 2))
	assert.Equal(t, 0.7746, Round(0.7745966692, 4))
	assert.Equal(t, 50.0, Round(50, 2))
}
