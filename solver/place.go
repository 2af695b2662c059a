package solver

import (
	"math/rand"
	"slices"
)

// rankGroups orders group indices from most to least preferred by the user.
func (s *solverState) rankGroups(user *prefs, groups []Group) []int {
	costs := make([]int, len(groups))
	idx := make([]int, len(groups))
	for i, g := range groups {
		costs[i] = user.cost(g.Members, s.desired)
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int { return costs[a] - costs[b] })
	return idx
}

// place sweeps the users in order, joining each to the first group in their preference
// order that has room and no member against them, or that would rather swap a member out.
// Users evicted on the way are left for resolve.
func (s *solverState) place(p *partition, order []string) {
	for _, id := range order {
		user := s.prefs[id]
		for _, gi := range s.rankGroups(user, p.groups) {
			// Balancing can drop the newcomer again, so check on every candidate.
			if p.has(id) {
				break
			}
			members := p.groups[gi].Members
			if len(members) < s.groupSize && !s.dislikedBy(members, id) {
				p.set(gi, s.balanceGender(append(slices.Clone(members), id), user.gender))
				continue
			}
			if evict, ok := s.leastWantedMember(members, id); ok {
				p.set(gi, s.balanceGender(append(without(members, evict), id), user.gender))
			}
		}
	}
}

// Place runs one shuffled greedy pass without relaxation. Users it could not keep in a
// group are absent from the result.
func Place(opts Options, rng *rand.Rand) ([]Group, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	st := newSolverState(opts)
	p := newPartition(opts.InitialGroups)
	st.place(p, st.shuffled(rng))
	return p.groups, nil
}
