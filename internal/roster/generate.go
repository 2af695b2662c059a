package roster

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"github.com/jaswdr/faker"

	"groups/solver"
)

type GenerateOptions struct {
	Users     int
	Wanted    int
	Unwanted  int
	GroupSize int
	Seed      int64
}

// Generate builds a fake class. The same options always give the same roster.
// Preference lists are drawn with replacement, so they may repeat an id or name the
// user themselves.
func Generate(opts GenerateOptions) *Roster {
	fake := faker.NewWithSeed(rand.NewSource(opts.Seed))

	users := make([]solver.User, opts.Users)
	for i := range users {
		gender := solver.Male
		first := fake.Person().FirstNameMale()
		if fake.IntBetween(0, 1) == 1 {
			gender = solver.Female
			first = fake.Person().FirstNameFemale()
		}
		users[i] = solver.User{
			ID:     userName(first, fake.Person().LastName(), i+1),
			Gender: gender,
		}
	}

	pick := func(n int) []string {
		out := make([]string, n)
		for j := range out {
			out[j] = users[fake.IntBetween(0, len(users)-1)].ID
		}
		return out
	}
	if len(users) > 0 {
		for i := range users {
			users[i].Wanted = pick(opts.Wanted)
			users[i].Unwanted = pick(opts.Unwanted)
		}
	}

	return &Roster{GroupSize: opts.GroupSize, Users: users}
}

// userName renders first.last<n> in lower case, dropping anything but letters.
func userName(first, last string, n int) string {
	clean := func(s string) string {
		return strings.Map(func(r rune) rune {
			if !unicode.IsLetter(r) {
				return -1
			}
			return unicode.ToLower(r)
		}, s)
	}
	return fmt.Sprintf("%s.%s%d", clean(first), clean(last), n)
}
