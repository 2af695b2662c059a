package solver

import "math"

const (
	setUnwantedWeight = 1000
	setAverageWeight  = 50
	setDesiredWeight  = 60
	setLonelyWeight   = 310
	setEmptyWeight    = 2000
	setNonEmptyWeight = 3000
)

// Summary holds the partition metrics used to rank attempts.
type Summary struct {
	Placed        int
	Wanted        int
	Unwanted      int
	AverageWanted float64
	WithoutWanted int
}

func (s *solverState) wantedPerUser(groups []Group) []int {
	var out []int
	for _, g := range groups {
		for _, u := range g.Members {
			p := s.prefs[u]
			n := 0
			for _, other := range g.Members {
				if other != u && p.wants(other) {
					n++
				}
			}
			out = append(out, n)
		}
	}
	return out
}

func (s *solverState) unwantedAmount(groups []Group) int {
	n := 0
	for _, g := range groups {
		for _, u := range g.Members {
			p := s.prefs[u]
			for _, other := range g.Members {
				if other != u && p.dislikes(other) {
					n++
					break
				}
			}
		}
	}
	return n
}

func (s *solverState) summarize(groups []Group) Summary {
	perUser := s.wantedPerUser(groups)
	sum := Summary{
		Placed:        len(perUser),
		Unwanted:      s.unwantedAmount(groups),
		AverageWanted: AverageOrZero(perUser),
	}
	for _, n := range perUser {
		if n > 0 {
			sum.Wanted++
		} else {
			sum.WithoutWanted++
		}
	}
	return sum
}

// WantedAmount counts users sharing a group with at least one user they want.
func WantedAmount(groups []Group, opts Options) int {
	return newSolverState(opts).summarize(groups).Wanted
}

// UnwantedAmount counts users sharing a group with at least one user they do not want.
func UnwantedAmount(groups []Group, opts Options) int {
	return newSolverState(opts).unwantedAmount(groups)
}

// WantedPerUser returns, for each placed user in group order, how many of their group
// mates they want.
func WantedPerUser(groups []Group, opts Options) []int {
	return newSolverState(opts).wantedPerUser(groups)
}

// AverageOrZero is the arithmetic mean of values, or 0 for an empty slice.
func AverageOrZero(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, v := range values {
		total += v
	}
	return float64(total) / float64(len(values))
}

func Summarize(groups []Group, opts Options) Summary {
	return newSolverState(opts).summarize(groups)
}

// ladder returns -weight when better holds, weight when worse holds, else 0.
func ladder(better, worse bool, weight int) int {
	switch {
	case better:
		return -weight
	case worse:
		return weight
	}
	return 0
}

// compareSummaries is negative when a is the better partition.
func compareSummaries(a, b Summary, desired int) int {
	score := ladder(a.Unwanted < b.Unwanted, a.Unwanted > b.Unwanted, setUnwantedWeight)
	// Equal averages score 0 so compareSummaries(a, b) == -compareSummaries(b, a).
	score += ladder(a.AverageWanted > b.AverageWanted, a.AverageWanted < b.AverageWanted, setAverageWeight)

	da := math.Abs(float64(desired) - a.AverageWanted)
	db := math.Abs(float64(desired) - b.AverageWanted)
	score += ladder(da < db, da > db, setDesiredWeight)

	score += ladder(a.WithoutWanted < b.WithoutWanted, a.WithoutWanted > b.WithoutWanted, setLonelyWeight)

	aEmpty, bEmpty := a.Placed == 0, b.Placed == 0
	if aEmpty {
		score += setEmptyWeight
	}
	if bEmpty {
		score -= setEmptyWeight
	}
	score += ladder(!aEmpty && bEmpty, aEmpty && !bEmpty, setNonEmptyWeight)
	return score
}

// CompareSets ranks two partitions. Negative means a is better.
func CompareSets(a, b []Group, opts Options) int {
	st := newSolverState(opts)
	return compareSummaries(st.summarize(a), st.summarize(b), opts.DesiredWantedAmount)
}

// selectBest returns the first candidate no other candidate beats, and its index.
func (s *solverState) selectBest(candidates [][]Group) ([]Group, int) {
	if len(candidates) == 0 {
		return nil, -1
	}
	best := 0
	bestSum := s.summarize(candidates[0])
	for i := 1; i < len(candidates); i++ {
		sum := s.summarize(candidates[i])
		if compareSummaries(sum, bestSum, s.desired) < 0 {
			best, bestSum = i, sum
		}
	}
	return candidates[best], best
}

// SelectBest returns the best of candidates, keeping the earliest on ties.
func SelectBest(candidates [][]Group, opts Options) []Group {
	best, _ := newSolverState(opts).selectBest(candidates)
	return best
}
