package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	observer := u("test", Male, list("a", "b", "c"), list("d", "e", "f"))

	tests := []struct {
		name    string
		a, b    []string
		desired int
		want    int
	}{
		{name: "same unwanted count, same wanted", a: list("a", "b", "d"), b: list("a", "b", "e"), desired: 1, want: 0},
		{name: "one unwanted against none", a: list("a", "b", "d"), b: list("a", "b", "c"), desired: 1, want: 1998},
		{name: "fewer unwanted wins", a: list("a", "b", "d"), b: list("a", "e", "d"), desired: 1, want: -1988},
		{name: "surplus of wanted", a: list("a", "b", "c"), b: list("a"), desired: 0, want: 2},
		{name: "empty groups", a: list(), b: list(), desired: 2, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(observer, Group{Members: tt.a}, Group{Members: tt.b}, tt.desired)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare_SingleWanted(t *testing.T) {
	a := u("a", Male, list("b"), nil)
	withB := Group{ID: "1", Members: list("a", "b")}
	alone := Group{ID: "2", Members: list("a")}

	// With no wanted target, being alone earns the exact match bonus.
	assert.Equal(t, 6, Compare(a, withB, alone, 0))
	assert.Equal(t, -18, Compare(a, withB, alone, 1))
}

func TestCompare_Antisymmetric(t *testing.T) {
	opts := classOptions()
	groups := [][]string{
		list("a", "b", "c"),
		list("e", "g", "w"),
		list("m", "j", "t", "h"),
		list(),
		list("q", "q"),
	}
	for _, user := range opts.Users {
		for _, a := range groups {
			assert.Zero(t, Compare(user, Group{Members: a}, Group{Members: a}, 1))
			for _, b := range groups {
				ab := Compare(user, Group{Members: a}, Group{Members: b}, 1)
				ba := Compare(user, Group{Members: b}, Group{Members: a}, 1)
				assert.Equal(t, -ab, ba, "user %s %v vs %v", user.ID, a, b)
			}
		}
	}
}

func TestCompare_DuplicatesCountOnce(t *testing.T) {
	once := u("x", Female, list("a"), list("b"))
	twice := u("x", Female, list("a", "a", "a"), list("b", "b"))
	a := Group{Members: list("a", "c")}
	b := Group{Members: list("b", "c")}
	assert.Equal(t, Compare(once, a, b, 1), Compare(twice, a, b, 1))
}

func TestGroupScore(t *testing.T) {
	opts := classOptions()
	group := Group{ID: "a", Members: list("a", "b", "c")}

	assert.Equal(t, -2012, GroupScore(group, "b", opts))
	assert.Equal(t, -1982, GroupScore(group, "a", opts))
	assert.Equal(t, -2012, GroupScore(group, "c", opts))
}

func TestGroupWantsUser(t *testing.T) {
	opts := classOptions()
	group := Group{ID: "a", Members: list("a", "b", "c")}

	tests := []struct {
		newUser string
		evict   string
	}{
		{newUser: "f", evict: "b"},
		{newUser: "d", evict: "a"},
		{newUser: "e", evict: "a"},
	}
	for _, tt := range tests {
		t.Run(tt.newUser, func(t *testing.T) {
			assert.True(t, GroupWantsUser(tt.newUser, group, opts))
			got, ok := LeastWantedMember(tt.newUser, group, opts)
			assert.True(t, ok)
			assert.Equal(t, tt.evict, got)
		})
	}
}

func TestGroupWantsUser_ContentGroup(t *testing.T) {
	opts := Options{
		GroupSize:           2,
		DesiredWantedAmount: 1,
		Users: []User{
			u("a", Male, list("b"), nil),
			u("b", Female, list("a"), nil),
			u("c", Male, nil, list("a", "b")),
		},
	}
	group := Group{ID: "1", Members: list("a", "b")}

	assert.False(t, GroupWantsUser("c", group, opts))
	_, ok := LeastWantedMember("c", group, opts)
	assert.False(t, ok)
}
