package calculator

// Epsilon is the tolerance for currency comparisons, in absolute currency
// units. Two amounts closer than this are considered equal.
const Epsilon = 0.01

// DistributeProportionally splits total across len(weights) recipients in
// proportion to their weights. If all weights are zero the total is split
// equally, so callers never divide by zero on an empty pool.
//
// The result always sums to exactly total: any floating-point residual is
// assigned to the last element, which keeps downstream conservation checks
// deterministic.
func DistributeProportionally(total float64, weights []float64) []float64 {
	n := len(weights)
	if n == 0 {
		return nil
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}

	shares := make([]float64, n)
	if sum == 0 {
		equal := total / float64(n)
		for i := range shares {
			shares[i] = equal
		}
	} else {
		for i, w := range weights {
			shares[i] = total * w / sum
		}
	}

	var distributed float64
	for _, s := range shares {
		distributed += s
	}
	shares[n-1] += total - distributed

	return shares
}

// SafeDivide returns a/b, or fallback when b is zero.
func SafeDivide(a, b, fallback float64) float64 {
	if b == 0 {
		return fallback
	}
	return a / b
}
