package segment

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// ModelConfig groups the K-Means settings shared by selection and the final fit.
type ModelConfig struct {
	Seed      int64
	NInit     int
	MaxIter   int
	Tolerance float64
	MaxK      int // upper bound of the candidate range, before the n-1 cap
}

// kmeansConfig returns the per-fit settings for k clusters.
func (c ModelConfig) kmeansConfig(k int) KMeansConfig {
	return KMeansConfig{K: k, NInit: c.NInit, MaxIter: c.MaxIter, Tolerance: c.Tolerance}
}

// Candidate is the score of one k in the selection sweep.
type Candidate struct {
	K          int
	Inertia    float64
	Silhouette float64
}

// Selection is the outcome of model-order selection.
type Selection struct {
	Candidates []Candidate // ascending k
	BestK      int         // highest silhouette, smallest k on ties
	ElbowK     int         // knee of the inertia curve; informational only
}

// Best returns the candidate for BestK.
func (s *Selection) Best() Candidate {
	for _, c := range s.Candidates {
		if c.K == s.BestK {
			return c
		}
	}
	return Candidate{}
}

// KRange returns the inclusive candidate range [2, min(maxK, n-1)].
func KRange(n, maxK int) (lo, hi int, err error) {
	if n < 3 {
		return 0, 0, fmt.Errorf("%w: got %d", ErrTooFewStates, n)
	}
	if maxK < 2 {
		return 0, 0, fmt.Errorf("max_k must be at least 2, got %d", maxK)
	}
	return 2, min(maxK, n-1), nil
}

// SelectK fits K-Means for every candidate k and picks the k with the
// highest mean silhouette. Every k uses its own RNG stream, see
// SubsystemKMeans.
func SelectK(m *FeatureMatrix, cfg ModelConfig) (*Selection, error) {
	lo, hi, err := KRange(m.Rows(), cfg.MaxK)
	if err != nil {
		return nil, err
	}

	points := m.Points()
	rng := NewPartitionedRNG(NewRunKey(cfg.Seed))
	sel := &Selection{}
	for k := lo; k <= hi; k++ {
		fit, err := FitKMeans(points, cfg.kmeansConfig(k), rng.ForSubsystem(SubsystemKMeans(k)))
		if err != nil {
			return nil, fmt.Errorf("fitting k=%d: %w", k, err)
		}
		score, err := SilhouetteScore(points, fit.Labels, k)
		if err != nil {
			return nil, fmt.Errorf("scoring k=%d: %w", k, err)
		}
		logrus.Debugf("k=%d inertia=%.4f silhouette=%.4f iterations=%d", k, fit.Inertia, score, fit.Iterations)
		sel.Candidates = append(sel.Candidates, Candidate{K: k, Inertia: fit.Inertia, Silhouette: score})
	}

	sel.BestK = bestK(sel.Candidates)
	sel.ElbowK = elbow(sel.Candidates)
	logrus.Infof("Selected k=%d (silhouette %.4f); elbow suggests k=%d", sel.BestK, sel.Best().Silhouette, sel.ElbowK)
	return sel, nil
}

// bestK returns the k with the highest silhouette; the first (smallest) k
// wins ties.
func bestK(cands []Candidate) int {
	scores := make([]float64, len(cands))
	for i, c := range cands {
		scores[i] = c.Silhouette
	}
	return cands[floats.MaxIdx(scores)].K
}

// elbow returns the k whose point on the normalized inertia curve lies
// farthest from the chord joining the first and last candidates.
func elbow(cands []Candidate) int {
	if len(cands) < 3 {
		return cands[0].K
	}
	first, last := cands[0], cands[len(cands)-1]
	dx := float64(last.K - first.K)
	dy := first.Inertia - last.Inertia
	if dy <= 0 {
		return first.K
	}

	bestK, bestD := first.K, -1.0
	for _, c := range cands {
		x := float64(c.K-first.K) / dx
		y := (first.Inertia - c.Inertia) / dy
		// height above the chord y = x, proportional to the distance from it
		if d := y - x; d > bestD {
			bestK, bestD = c.K, d
		}
	}
	return bestK
}
