package detect

import "math"

// maxClusterIterations bounds the 2-means refinement; assignments on a
// one-dimensional circle settle long before this.
const maxClusterIterations = 32

// EstimateRotation infers the dominant building orientation from the
// detected wall segments.
//
// Wall angles are clustered into two groups by length-weighted 2-means
// so long, prominent walls dominate over short, noisy ones. Angles are
// doubled onto the full circle first (axial statistics), which keeps
// 179 degrees and 1 degree in the same cluster. The cluster with the
// larger total weighted length wins; its circular mean is the estimate
// and its angular spread decides the confidence tier.
//
// Fewer than two wall angles is a legitimate outcome, not an error:
// the estimate degrades to confidence "none" with no angle.
func EstimateRotation(walls []WallSegment, spreadMaxDeg float64) RotationEstimate {
	if len(walls) < 2 {
		return RotationEstimate{Confidence: ConfidenceNone}
	}

	// Doubled angles in radians plus length weights.
	phi := make([]float64, len(walls))
	weight := make([]float64, len(walls))
	for i, w := range walls {
		phi[i] = 2 * w.Angle * math.Pi / 180
		weight[i] = w.Length
		if weight[i] <= 0 {
			weight[i] = 1
		}
	}

	// Seed the two centers with the axially most-separated pair so
	// initialization is a pure function of the input.
	c0, c1 := phi[0], phi[0]
	bestSep := -1.0
	for i := 0; i < len(phi); i++ {
		for j := i + 1; j < len(phi); j++ {
			if sep := angularDist(phi[i], phi[j]); sep > bestSep {
				bestSep = sep
				c0, c1 = phi[i], phi[j]
			}
		}
	}

	assign := make([]int, len(phi))
	if bestSep > 1e-9 {
		for iter := 0; iter < maxClusterIterations; iter++ {
			changed := false
			for i := range phi {
				cluster := 0
				if angularDist(phi[i], c1) < angularDist(phi[i], c0) {
					cluster = 1
				}
				if assign[i] != cluster {
					assign[i] = cluster
					changed = true
				}
			}

			n0, ok0 := weightedCircularMean(phi, weight, assign, 0)
			n1, ok1 := weightedCircularMean(phi, weight, assign, 1)
			if ok0 {
				c0 = n0
			}
			if ok1 {
				c1 = n1
			}
			if !changed && iter > 0 {
				break
			}
		}
	}

	// Pick the heavier cluster; ties resolve to the lower mean angle.
	w0, w1 := 0.0, 0.0
	for i := range phi {
		if assign[i] == 0 {
			w0 += weight[i]
		} else {
			w1 += weight[i]
		}
	}
	dominant := 0
	if w1 > w0 || (w1 == w0 && halvedAngle(c1) < halvedAngle(c0)) {
		dominant = 1
	}

	mean, spread, ok := clusterStats(phi, weight, assign, dominant)
	if !ok {
		// Numerically degenerate cluster; report what little is
		// known rather than failing.
		return RotationEstimate{Confidence: ConfidenceNone}
	}

	confidence := ConfidenceMedium
	if spread < spreadMaxDeg {
		confidence = ConfidenceHigh
	}

	return RotationEstimate{
		Angle:      float64Ptr(mean),
		Confidence: confidence,
		ClusterStd: float64Ptr(spread),
	}
}

// angularDist is the distance between two angles on the doubled
// circle, in [0,pi].
func angularDist(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// weightedCircularMean averages the members of one cluster on the
// doubled circle. Returns false for an empty or fully-cancelling
// cluster.
func weightedCircularMean(phi, weight []float64, assign []int, cluster int) (float64, bool) {
	var s, c float64
	for i := range phi {
		if assign[i] != cluster {
			continue
		}
		s += weight[i] * math.Sin(phi[i])
		c += weight[i] * math.Cos(phi[i])
	}
	if math.Hypot(s, c) < 1e-9 {
		return 0, false
	}
	return math.Atan2(s, c), true
}

// clusterStats returns the mean angle (degrees, [0,180)) and circular
// standard deviation (degrees, halved back from the doubled circle) of
// one cluster.
func clusterStats(phi, weight []float64, assign []int, cluster int) (float64, float64, bool) {
	var s, c, total float64
	for i := range phi {
		if assign[i] != cluster {
			continue
		}
		s += weight[i] * math.Sin(phi[i])
		c += weight[i] * math.Cos(phi[i])
		total += weight[i]
	}
	if total <= 0 {
		return 0, 0, false
	}

	r := math.Hypot(s, c) / total
	mean := halvedAngle(math.Atan2(s, c))

	if r >= 1 {
		return mean, 0, true
	}
	if r < 1e-9 {
		return mean, 0, false
	}
	// Circular std on the doubled circle, halved back to axial.
	spread := math.Sqrt(-2*math.Log(r)) * 180 / math.Pi / 2
	return mean, spread, true
}

// halvedAngle maps a doubled-circle angle back to [0,180) degrees.
func halvedAngle(phi float64) float64 {
	deg := phi * 180 / math.Pi / 2
	return normalizeAxial(deg)
}
