package solver

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"
)

const (
	unwantedWeight    = 2000
	surplusWeight     = 2
	anyWantedWeight   = 3
	exactWantedWeight = 6
)

type prefs struct {
	gender   Gender
	wanted   map[string]bool
	unwanted map[string]bool
}

func newPrefs(u User) *prefs {
	p := &prefs{
		gender:   u.Gender,
		wanted:   make(map[string]bool, len(u.Wanted)),
		unwanted: make(map[string]bool, len(u.Unwanted)),
	}
	for _, id := range u.Wanted {
		p.wanted[id] = true
	}
	for _, id := range u.Unwanted {
		p.unwanted[id] = true
	}
	return p
}

func (p *prefs) wants(id string) bool {
	return p != nil && p.wanted[id]
}

func (p *prefs) dislikes(id string) bool {
	return p != nil && p.unwanted[id]
}

// cost is the observer's side of the comparator: compare(a, b) == cost(a) - cost(b).
func (p *prefs) cost(members []string, desired int) int {
	wanted, unwanted := 0, 0
	for _, m := range members {
		if p.wants(m) {
			wanted++
		}
		if p.dislikes(m) {
			unwanted++
		}
	}
	c := unwanted * unwantedWeight
	if wanted > desired+1 {
		c += surplusWeight
	}
	if wanted > 0 {
		c -= anyWantedWeight
	} else {
		c += anyWantedWeight
	}
	if wanted == desired {
		c -= exactWantedWeight
	} else {
		c += exactWantedWeight
	}
	return c
}

// compare is negative when a is preferred over b.
func (p *prefs) compare(a, b []string, desired int) int {
	return p.cost(a, desired) - p.cost(b, desired)
}

type solverState struct {
	groupSize int
	desired   int

	prefs map[string]*prefs
	order []string
}

func newSolverState(opts Options) *solverState {
	s := &solverState{
		groupSize: opts.GroupSize,
		desired:   opts.DesiredWantedAmount,
		prefs:     make(map[string]*prefs, len(opts.Users)),
		order:     make([]string, 0, len(opts.Users)),
	}
	for _, u := range opts.Users {
		if _, ok := s.prefs[u.ID]; ok {
			continue
		}
		s.prefs[u.ID] = newPrefs(u)
		s.order = append(s.order, u.ID)
	}
	return s
}

func (s *solverState) genderOf(id string) Gender {
	if p := s.prefs[id]; p != nil {
		return p.gender
	}
	return ""
}

func (s *solverState) countGender(members []string, gender Gender) int {
	n := 0
	for _, m := range members {
		if s.genderOf(m) == gender {
			n++
		}
	}
	return n
}

// dislikedBy reports whether any of members lists id as unwanted.
func (s *solverState) dislikedBy(members []string, id string) bool {
	return slices.ContainsFunc(members, func(m string) bool { return s.prefs[m].dislikes(id) })
}

// dislikesAny reports whether id lists any of members as unwanted.
func (s *solverState) dislikesAny(id string, members []string) bool {
	p := s.prefs[id]
	return slices.ContainsFunc(members, p.dislikes)
}

type partition struct {
	groups  []Group
	groupOf map[string]int
}

func newPartition(initial []Group) *partition {
	p := &partition{
		groups:  cloneGroups(initial),
		groupOf: map[string]int{},
	}
	for gi, g := range p.groups {
		for _, m := range g.Members {
			p.groupOf[m] = gi
		}
	}
	return p
}

func (p *partition) has(id string) bool {
	_, ok := p.groupOf[id]
	return ok
}

func (p *partition) add(gi int, id string) {
	p.groups[gi].Members = append(p.groups[gi].Members, id)
	p.groupOf[id] = gi
}

func (p *partition) set(gi int, members []string) {
	for _, m := range p.groups[gi].Members {
		delete(p.groupOf, m)
	}
	p.groups[gi].Members = members
	for _, m := range members {
		p.groupOf[m] = gi
	}
}

// targets returns the indices of non-empty groups, smallest first with ties in group
// order. Empty groups are only returned when every group is empty.
func (p *partition) targets() []int {
	var idx []int
	for i, g := range p.groups {
		if len(g.Members) > 0 {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		for i := range p.groups {
			idx = append(idx, i)
		}
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return len(p.groups[a].Members) - len(p.groups[b].Members)
	})
	return idx
}

func (s *solverState) unused(p *partition) []string {
	var out []string
	for _, id := range s.order {
		if !p.has(id) {
			out = append(out, id)
		}
	}
	return out
}

func (s *solverState) shuffled(rng *rand.Rand) []string {
	perm := rng.Perm(len(s.order))
	out := make([]string, len(perm))
	for i, pi := range perm {
		out[i] = s.order[pi]
	}
	return out
}

func (s *solverState) attempt(initial []Group, rng *rand.Rand) ([]Group, error) {
	p := newPartition(initial)
	s.place(p, s.shuffled(rng))
	if err := s.resolve(p); err != nil {
		return nil, err
	}
	return p.groups, nil
}

// Attempt runs one greedy pass followed by relaxation.
func Attempt(opts Options, rng *rand.Rand) ([]Group, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return newSolverState(opts).attempt(opts.InitialGroups, rng)
}

// Attempts runs params.Iterations independent attempts, each from a fresh copy of the
// initial groups.
func Attempts(opts Options, params Params, rng *rand.Rand) ([][]Group, error) {
	if params.Iterations <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIterations, params.Iterations)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	st := newSolverState(opts)
	results := make([][]Group, 0, params.Iterations)
	for i := range params.Iterations {
		groups, err := st.attempt(opts.InitialGroups, rng)
		if err != nil {
			return nil, fmt.Errorf("attempt %d: %w", i, err)
		}
		sum := st.summarize(groups)
		params.Logger.Debug().
			Int("attempt", i).
			Int("unwanted", sum.Unwanted).
			Float64("avg_wanted", sum.AverageWanted).
			Int("without_wanted", sum.WithoutWanted).
			Msg("attempt finished")
		results = append(results, groups)
	}
	return results, nil
}

// BestOf keeps the best of params.Iterations attempts.
func BestOf(opts Options, params Params, rng *rand.Rand) ([]Group, error) {
	candidates, err := Attempts(opts, params, rng)
	if err != nil {
		return nil, err
	}
	best, idx := newSolverState(opts).selectBest(candidates)
	params.Logger.Debug().Int("attempt", idx).Int("of", len(candidates)).Msg("attempt selected")
	return best, nil
}

func unplacedError(ids []string) error {
	return fmt.Errorf("%w: %s", ErrUnplaced, strings.Join(ids, ", "))
}
