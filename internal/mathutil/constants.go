package mathutil

// Root-finding limits
const (
	// BisectTolerance is the absolute error on f(x) at which bisection stops.
	BisectTolerance = 1e-5

	// BisectMaxIterations caps bisection on degenerate inputs. Sixty halvings
	// of [0, 1] reach below float64 resolution.
	BisectMaxIterations = 60
)

// Easing solver limits
const (
	newtonIterations = 8
	newtonEpsilon    = 1e-7
)
