package segment

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// KMeansConfig parameterizes a single K-Means fit.
type KMeansConfig struct {
	K         int
	NInit     int     // number of k-means++ restarts; the lowest-inertia run wins
	MaxIter   int     // Lloyd iterations per restart
	Tolerance float64 // convergence threshold, relative to the mean feature variance
}

// KMeansResult is the best fit found across restarts.
type KMeansResult struct {
	K          int
	Labels     []int
	Centroids  [][]float64
	Inertia    float64 // sum of squared distances to the assigned centroid
	Iterations int     // Lloyd iterations used by the winning restart
}

// FitKMeans clusters points into cfg.K groups. All randomness is drawn from
// rng; the same rng state always produces the same result.
func FitKMeans(points [][]float64, cfg KMeansConfig, rng *rand.Rand) (*KMeansResult, error) {
	n := len(points)
	if cfg.K < 1 {
		return nil, fmt.Errorf("k must be positive, got %d", cfg.K)
	}
	if n < cfg.K {
		return nil, fmt.Errorf("cannot form %d clusters from %d points", cfg.K, n)
	}
	if cfg.NInit < 1 {
		return nil, fmt.Errorf("n_init must be positive, got %d", cfg.NInit)
	}
	if cfg.MaxIter < 1 {
		return nil, fmt.Errorf("max_iter must be positive, got %d", cfg.MaxIter)
	}
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("point %d has %d dimensions, want %d", i, len(p), dim)
		}
	}

	tol := cfg.Tolerance * meanVariance(points)

	var best *KMeansResult
	for run := 0; run < cfg.NInit; run++ {
		res := lloyd(points, initPlusPlus(points, cfg.K, rng), cfg.MaxIter, tol)
		if best == nil || res.Inertia < best.Inertia {
			best = res
		}
	}
	return best, nil
}

// initPlusPlus picks k initial centroids by k-means++ seeding: the first
// uniformly, each next one with probability proportional to its squared
// distance from the nearest centroid chosen so far.
func initPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(points)
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(points[rng.Intn(n)]))

	closest := make([]float64, n)
	for i, p := range points {
		closest[i] = sqDist(p, centroids[0])
	}

	for len(centroids) < k {
		total := floats.Sum(closest)
		next := -1
		if total > 0 {
			target := rng.Float64() * total
			acc := 0.0
			for i, d := range closest {
				if d == 0 {
					continue
				}
				acc += d
				next = i
				if acc >= target {
					break
				}
			}
		} else {
			// Every point coincides with a centroid already.
			next = rng.Intn(n)
		}
		c := clone(points[next])
		centroids = append(centroids, c)
		for i, p := range points {
			if d := sqDist(p, c); d < closest[i] {
				closest[i] = d
			}
		}
	}
	return centroids
}

// lloyd runs assignment/update iterations until the total squared centroid
// shift drops to tol or maxIter is reached.
func lloyd(points [][]float64, centroids [][]float64, maxIter int, tol float64) *KMeansResult {
	k := len(centroids)
	labels := make([]int, len(points))

	iter := 0
	for iter < maxIter {
		iter++
		assign(points, centroids, labels)
		reseedEmpty(points, centroids, labels)

		updated := means(points, labels, k, centroids)
		shift := 0.0
		for c := range centroids {
			shift += sqDist(centroids[c], updated[c])
		}
		centroids = updated
		if shift <= tol {
			break
		}
	}

	assign(points, centroids, labels)
	reseedEmpty(points, centroids, labels)

	inertia := 0.0
	for i, p := range points {
		inertia += sqDist(p, centroids[labels[i]])
	}
	return &KMeansResult{K: k, Labels: labels, Centroids: centroids, Inertia: inertia, Iterations: iter}
}

// assign sets labels[i] to the nearest centroid; ties go to the lower index.
func assign(points [][]float64, centroids [][]float64, labels []int) {
	for i, p := range points {
		bestC, bestD := 0, math.Inf(1)
		for c, centroid := range centroids {
			if d := sqDist(p, centroid); d < bestD {
				bestC, bestD = c, d
			}
		}
		labels[i] = bestC
	}
}

// reseedEmpty moves, for every empty cluster, the point farthest from its
// own centroid into that cluster and places the centroid on it. Only points
// from clusters with more than one member are eligible.
func reseedEmpty(points [][]float64, centroids [][]float64, labels []int) {
	counts := make([]int, len(centroids))
	for _, l := range labels {
		counts[l]++
	}
	for c := range centroids {
		if counts[c] > 0 {
			continue
		}
		far, farD := -1, -1.0
		for i, p := range points {
			if counts[labels[i]] < 2 {
				continue
			}
			if d := sqDist(p, centroids[labels[i]]); d > farD {
				far, farD = i, d
			}
		}
		if far < 0 {
			return
		}
		counts[labels[far]]--
		labels[far] = c
		counts[c] = 1
		centroids[c] = clone(points[far])
	}
}

// means returns the centroid of each cluster; a cluster without members
// keeps its previous centroid.
func means(points [][]float64, labels []int, k int, prev [][]float64) [][]float64 {
	dim := len(points[0])
	sums := make([][]float64, k)
	counts := make([]int, k)
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	for i, p := range points {
		floats.Add(sums[labels[i]], p)
		counts[labels[i]]++
	}
	for c := range sums {
		if counts[c] == 0 {
			copy(sums[c], prev[c])
			continue
		}
		floats.Scale(1/float64(counts[c]), sums[c])
	}
	return sums
}

// meanVariance is the mean of the per-dimension population variances.
func meanVariance(points [][]float64) float64 {
	dim := len(points[0])
	col := make([]float64, len(points))
	total := 0.0
	for j := 0; j < dim; j++ {
		for i, p := range points {
			col[i] = p[j]
		}
		_, v := stat.PopMeanVariance(col, nil)
		total += v
	}
	return total / float64(dim)
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
