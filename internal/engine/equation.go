package engine

import (
	"fmt"
	"math"

	"github.com/sells-group/tripgen-cli/internal/model"
)

// evaluateEquation computes the fitted-curve trip estimate for a development
// size. Unknown equation types evaluate to unknown, which callers treat as
// "no equation available".
func evaluateEquation(eq *model.Equation, size float64) model.OptFloat {
	if eq == nil {
		return model.OptFloat{}
	}

	switch eq.Type {
	case model.EquationLinear:
		return model.Float(eq.A*size + eq.B)
	case model.EquationLog:
		// Size is pre-validated > 0 by the caller; this is a guard only.
		if size <= 0 {
			return model.Float(0)
		}
		return model.Float(math.Exp(eq.A*math.Log(size) + eq.B))
	case model.EquationPolynomial:
		return model.Float(eq.A*size*size + eq.B*size + eq.C)
	}
	return model.OptFloat{}
}

// formatEquation renders the fitted-curve derivation for display.
func formatEquation(eq *model.Equation, size float64, trips int) string {
	switch eq.Type {
	case model.EquationLinear:
		return fmt.Sprintf("T = %.2f(X) + %.2f; X = %.4g → %d trips", eq.A, eq.B, size, trips)
	case model.EquationLog:
		return fmt.Sprintf("ln(T) = %.2f ln(X) + %.2f; X = %.4g → %d trips", eq.A, eq.B, size, trips)
	case model.EquationPolynomial:
		return fmt.Sprintf("T = %.4f(X²) + %.2f(X) + %.2f; X = %.4g → %d trips", eq.A, eq.B, eq.C, size, trips)
	}
	return ""
}

// formatAverageRate renders the average-rate derivation for display.
func formatAverageRate(rate, size float64, trips int) string {
	return fmt.Sprintf("T = %.2f × %.4g = %d trips", rate, size, trips)
}
