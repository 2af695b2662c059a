package solver

// tier decides whether id may join a group with the given members.
type tier func(members []string, id string) bool

// tiers lists the relaxation rules from strictest to unconditional.
func (s *solverState) tiers() []tier {
	noConflict := func(members []string, id string) bool {
		return !s.dislikedBy(members, id) && !s.dislikesAny(id, members)
	}
	return []tier{
		func(members []string, id string) bool {
			return len(members) < s.groupSize &&
				noConflict(members, id) &&
				s.countGender(members, s.genderOf(id)) < s.groupSize/2
		},
		func(members []string, id string) bool {
			return len(members) < s.groupSize && noConflict(members, id)
		},
		noConflict,
		// Only the newcomer's own list counts from here on.
		func(members []string, id string) bool {
			return !s.dislikesAny(id, members)
		},
		func([]string, string) bool { return true },
	}
}

func (s *solverState) resolve(p *partition) error {
	for _, fits := range s.tiers() {
		for _, id := range s.unused(p) {
			for _, gi := range p.targets() {
				if fits(p.groups[gi].Members, id) {
					p.add(gi, id)
					break
				}
			}
		}
	}
	if rest := s.unused(p); len(rest) > 0 {
		return unplacedError(rest)
	}
	return nil
}

// ResolveUnplaced places every user missing from groups, relaxing constraints tier by
// tier. Users join groups that already have members, smallest first.
func ResolveUnplaced(groups []Group, opts Options) ([]Group, error) {
	if opts.GroupSize <= 0 {
		return nil, ErrInvalidGroupSize
	}
	st := newSolverState(opts)
	p := newPartition(groups)
	if err := st.resolve(p); err != nil {
		return nil, err
	}
	return p.groups, nil
}
