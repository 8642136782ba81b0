package stat

// Regressor is the capability the predictive modeler trains against.
// Isolating it lets the gradient-descent model be swapped for a closed-form
// normal-equation solver without touching any caller.
type Regressor interface {
	// Fit trains the model on feature rows and their targets. Rows must all
	// share the same width; mismatched or empty input leaves the model zeroed.
	Fit(features [][]float64, targets []float64)

	// Predict returns the model output for one feature row.
	Predict(features []float64) float64

	// Weights returns the learned coefficients, excluding the intercept.
	Weights() []float64
}

// Gradient descent training constants.
const (
	gdIterations   = 1000
	gdLearningRate = 0.01
)

// GradientDescent is a multivariate linear regression model trained by batch
// gradient descent minimizing squared error. It is intentionally lightweight
// numerics with no external solver.
type GradientDescent struct {
	weights   []float64
	intercept float64
}

var _ Regressor = (*GradientDescent)(nil) // Compile-time check

// NewGradientDescent returns an untrained model.
func NewGradientDescent() *GradientDescent {
	return &GradientDescent{}
}

// Fit runs a fixed number of batch gradient descent iterations over the
// training rows. The intercept is the residual between the target mean and
// the uncentered prediction mean after the weights settle.
func (g *GradientDescent) Fit(features [][]float64, targets []float64) {
	n := len(features)
	if n == 0 || n != len(targets) {
		g.weights = nil
		g.intercept = 0
		return
	}
	width := len(features[0])
	for _, row := range features {
		if len(row) != width {
			g.weights = nil
			g.intercept = 0
			return
		}
	}

	weights := make([]float64, width)
	grad := make([]float64, width)

	for range gdIterations {
		for j := range grad {
			grad[j] = 0
		}
		for i, row := range features {
			var pred float64
			for j, w := range weights {
				pred += w * row[j]
			}
			err := pred - targets[i]
			for j, x := range row {
				grad[j] += err * x
			}
		}
		for j := range weights {
			weights[j] -= gdLearningRate * grad[j] / float64(n)
		}
	}

	var targetSum, predSum float64
	for i, row := range features {
		targetSum += targets[i]
		for j, w := range weights {
			predSum += w * row[j]
		}
	}
	g.weights = weights
	g.intercept = targetSum/float64(n) - predSum/float64(n)
}

// Predict returns the linear combination of the trained weights plus the
// intercept. Extra feature values beyond the trained width are ignored.
func (g *GradientDescent) Predict(features []float64) float64 {
	out := g.intercept
	for j, w := range g.weights {
		if j >= len(features) {
			break
		}
		out += w * features[j]
	}
	return out
}

// Weights returns the learned coefficients.
func (g *GradientDescent) Weights() []float64 {
	return g.weights
}
