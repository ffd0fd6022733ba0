package sampler

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/qlab-algos/oraclelab/oracle"
)

// Uniformity runs a chi-squared goodness-of-fit test of h against the
// uniform distribution over a support of the given size, returning the
// p-value. Small p-values indicate the sampler is not drawing uniformly
// from its outcome space. This is a sanity check on sample sources, not a
// decoding step.
func Uniformity(h oracle.Histogram, support int) (float64, error) {
	if support <= 1 {
		return 0, fmt.Errorf("uniformity test over support of size %d", support)
	}
	if len(h) > support {
		return 0, fmt.Errorf("histogram has %d outcomes but support only %d", len(h), support)
	}
	total := h.Shots()
	if total == 0 {
		return 0, fmt.Errorf("uniformity test on empty histogram")
	}
	obs := make([]float64, 0, support)
	for _, count := range h {
		obs = append(obs, float64(count))
	}
	for len(obs) < support {
		obs = append(obs, 0)
	}
	exp := make([]float64, support)
	for i := range exp {
		exp[i] = float64(total) / float64(support)
	}
	x2 := stat.ChiSquare(obs, exp)
	chi2 := distuv.ChiSquared{K: float64(support - 1)}
	return chi2.Survival(x2), nil
}
