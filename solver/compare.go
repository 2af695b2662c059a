package solver

import "slices"

// Compare scores group a against group b from the viewpoint of the user whose
// preferences are given. Negative means a is preferred, positive means b is.
//
// Terms, summed:
//   - 2000 per disliked member more in a than in b
//   - +2 when a holds more than desired+1 wanted members, -2 for the same in b
//   - -3 when a holds any wanted member, +3 otherwise; mirrored for b
//   - -6 when a holds exactly desired wanted members, +6 otherwise; mirrored for b
func Compare(user User, a, b Group, desired int) int {
	return newPrefs(user).compare(a.Members, b.Members, desired)
}

// groupScore sums how much the other members prefer the group without member.
// Higher means member is more wanted.
func (s *solverState) groupScore(members []string, member string) int {
	rest := without(members, member)
	score := 0
	for _, other := range rest {
		score += s.prefs[other].compare(rest, members, s.desired)
	}
	return score
}

func GroupScore(group Group, member string, opts Options) int {
	return newSolverState(opts).groupScore(group.Members, member)
}

func (s *solverState) balanceGender(members []string, gender Gender) []string {
	limit := s.groupSize / 2
	for s.countGender(members, gender) > limit {
		worst, worstScore := -1, 0
		for i, m := range members {
			if s.genderOf(m) != gender {
				continue
			}
			score := s.groupScore(members, m)
			if worst < 0 || score < worstScore {
				worst, worstScore = i, score
			}
		}
		members = without(members, members[worst])
	}
	return members
}

// BalanceGender removes the least wanted members of gender until at most half the
// group size remain.
func BalanceGender(group Group, gender Gender, opts Options) Group {
	return Group{
		ID:      group.ID,
		Members: newSolverState(opts).balanceGender(slices.Clone(group.Members), gender),
	}
}

// replacementScore is the net preference of the group for replacing member with newUser.
// Negative means the replacement is preferred.
func (s *solverState) replacementScore(members []string, member, newUser string) int {
	replaced := append(without(members, member), newUser)
	score := 0
	for _, x := range members {
		score += s.prefs[x].compare(replaced, members, s.desired)
	}
	return score
}

func (s *solverState) leastWantedMember(members []string, newUser string) (string, bool) {
	best, bestScore := -1, 0
	for i, m := range members {
		score := s.replacementScore(members, m, newUser)
		if score >= 0 {
			continue
		}
		if best < 0 || score < bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return "", false
	}
	return members[best], true
}

// GroupWantsUser reports whether replacing some member with newUser is preferred by the group.
func GroupWantsUser(newUser string, group Group, opts Options) bool {
	_, ok := newSolverState(opts).leastWantedMember(group.Members, newUser)
	return ok
}

// LeastWantedMember returns the member whose replacement by newUser the group prefers most.
func LeastWantedMember(newUser string, group Group, opts Options) (string, bool) {
	return newSolverState(opts).leastWantedMember(group.Members, newUser)
}
