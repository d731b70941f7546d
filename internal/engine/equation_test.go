package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/tripgen-cli/internal/model"
)

func TestEvaluateEquation(t *testing.T) {
	tests := []struct {
		name string
		eq   *model.Equation
		size float64
		want float64
	}{
		{"linear", &model.Equation{Type: model.EquationLinear, A: 8.07, B: 265.45}, 100, 1072.45},
		{"linear negative slope", &model.Equation{Type: model.EquationLinear, A: -5, B: 10}, 10, -40},
		{"log", &model.Equation{Type: model.EquationLog, A: 0.8, B: 1.55}, 5, 17.07},
		{"log at size one", &model.Equation{Type: model.EquationLog, A: 0.8, B: 0}, 1, 1},
		{"log guards non-positive size", &model.Equation{Type: model.EquationLog, A: 0.8, B: 1.55}, 0, 0},
		{"polynomial", &model.Equation{Type: model.EquationPolynomial, A: 2, B: 3, C: 4}, 10, 234},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluateEquation(tt.eq, tt.size)
			require.True(t, got.Valid)
			assert.InDelta(t, tt.want, got.Value, 0.01)
		})
	}

	t.Run("nil equation", func(t *testing.T) {
		assert.False(t, evaluateEquation(nil, 10).Valid)
	})

	t.Run("unknown type", func(t *testing.T) {
		got := evaluateEquation(&model.Equation{Type: "exponential", A: 1, B: 1}, 10)
		assert.False(t, got.Valid)
	})
}

func TestFormatEquation(t *testing.T) {
	tests := []struct {
		name string
		eq   *model.Equation
		want string
	}{
		{
			"linear",
			&model.Equation{Type: model.EquationLinear, A: 8.07, B: 265.45},
			"T = 8.07(X) + 265.45; X = 100 → 1072 trips",
		},
		{
			"log",
			&model.Equation{Type: model.EquationLog, A: 0.8, B: 1.55},
			"ln(T) = 0.80 ln(X) + 1.55; X = 100 → 1072 trips",
		},
		{
			"polynomial",
			&model.Equation{Type: model.EquationPolynomial, A: -0.41, B: 24.9, C: 0},
			"T = -0.4100(X²) + 24.90(X) + 0.00; X = 100 → 1072 trips",
		},
		{
			"unknown type",
			&model.Equation{Type: "exponential"},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatEquation(tt.eq, 100, 1072))
		})
	}
}

func TestFormatAverageRate(t *testing.T) {
	assert.Equal(t, "T = 9.43 × 100 = 943 trips", formatAverageRate(9.43, 100, 943))
}
