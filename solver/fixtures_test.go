package solver

func u(id string, gender Gender, wanted, unwanted []string) User {
	return User{ID: id, Gender: gender, Wanted: wanted, Unwanted: unwanted}
}

func list(ids ...string) []string { return ids }

// classOptions is a 26 person class, 12 male and 14 female, with six wanted and two
// unwanted each. Several lists repeat an id or name the user themselves.
func classOptions() Options {
	return Options{
		GroupSize:           4,
		DesiredWantedAmount: 1,
		InitialGroups:       EmptyGroups(13),
		Users: []User{
			u("a", Male, list("b", "c", "d", "z", "q", "w"), list("e", "j")),
			u("b", Male, list("a", "e", "d", "r", "w", "e"), list("c", "f")),
			u("c", Male, list("f", "e", "d", "y", "e", "t"), list("b", "a")),
			u("d", Male, list("f", "b", "c", "u", "r", "y"), list("a", "g")),
			u("e", Male, list("c", "b", "a", "i", "t", "h"), list("g", "w")),
			u("f", Male, list("b", "d", "e", "o", "y", "i"), list("h", "x")),
			u("g", Male, list("a", "c", "e", "p", "u", "o"), list("b", "q")),
			u("h", Male, list("e", "d", "f", "m", "i", "n"), list("d", "o")),
			u("i", Male, list("j", "h", "a", "b", "o", "v"), list("f", "l")),
			u("j", Male, list("d", "c", "e", "c", "p", "x"), list("b", "v")),
			u("k", Male, list("b", "j", "c", "x", "l", "z"), list("a", "n")),
			u("l", Male, list("n", "k", "z", "s", "k", "a"), list("g", "m")),
			u("m", Female, list("j", "t", "w", "a", "h", "r"), list("z", "e")),
			u("n", Female, list("q", "k", "i", "w", "g", "y"), list("s", "t")),
			u("o", Female, list("k", "o", "m", "r", "f", "u"), list("h", "j")),
			u("p", Female, list("u", "c", "j", "y", "s", "i"), list("m", "o")),
			u("q", Female, list("x", "w", "y", "u", "z", "e"), list("l", "b")),
			u("r", Female, list("m", "m", "e", "i", "a", "t"), list("g", "n")),
			u("s", Female, list("c", "u", "a", "o", "q", "y"), list("i", "r")),
			u("t", Female, list("p", "l", "m", "e", "w", "u"), list("g", "q")),
			u("u", Female, list("n", "d", "v", "a", "t", "x"), list("c", "o")),
			u("v", Female, list("y", "g", "x", "b", "u", "s"), list("a", "k")),
			u("w", Female, list("p", "f", "g", "z", "i", "v"), list("x", "m")),
			u("x", Female, list("b", "l", "i", "a", "o", "x"), list("n", "v")),
			u("y", Female, list("q", "l", "o", "b", "r", "r"), list("k", "z")),
			u("z", Female, list("t", "n", "q", "m", "a", "b"), list("l", "o")),
		},
	}
}

func members(groups []Group) map[string][]string {
	out := map[string][]string{}
	for _, g := range groups {
		out[g.ID] = g.Members
	}
	return out
}

func flatten(groups []Group) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g.Members...)
	}
	return out
}

func userIDs(opts Options) []string {
	out := make([]string, len(opts.Users))
	for i, u := range opts.Users {
		out[i] = u.ID
	}
	return out
}
