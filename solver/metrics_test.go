package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWantedAmount(t *testing.T) {
	opts := classOptions()
	groups := []Group{{ID: "a", Members: list("a", "b", "c")}}

	assert.Equal(t, 2, WantedAmount(groups, opts))
	assert.Equal(t, 2, UnwantedAmount(groups, opts))
	assert.Equal(t, []int{2, 1, 0}, WantedPerUser(groups, opts))
}

func TestWantedPerUser_IgnoresSelf(t *testing.T) {
	opts := Options{Users: []User{
		u("o", Female, list("o", "k"), nil),
		u("k", Male, nil, nil),
	}}
	groups := []Group{{ID: "1", Members: list("o", "k")}}

	assert.Equal(t, []int{1, 0}, WantedPerUser(groups, opts))
	assert.Equal(t, 1, WantedAmount(groups, opts))
}

func TestAverageOrZero(t *testing.T) {
	assert.Zero(t, AverageOrZero(nil))
	assert.InDelta(t, 1.5, AverageOrZero([]int{1, 2}), 1e-9)
}

func TestSummarize(t *testing.T) {
	opts := classOptions()
	got := Summarize([]Group{
		{ID: "1", Members: list("a", "b", "c")},
		{ID: "2", Members: list("m", "j")},
		{ID: "3"},
	}, opts)

	assert.Equal(t, Summary{
		Placed:        5,
		Wanted:        3,
		Unwanted:      2,
		AverageWanted: 4.0 / 5.0,
		WithoutWanted: 2,
	}, got)
}

func TestCompareSets(t *testing.T) {
	opts := Options{
		DesiredWantedAmount: 1,
		Users: []User{
			u("a", Male, list("b"), list("c")),
			u("b", Female, list("a"), nil),
			u("c", Male, nil, nil),
			u("d", Female, nil, nil),
		},
	}
	paired := []Group{{ID: "1", Members: list("a", "b")}, {ID: "2", Members: list("c", "d")}}
	conflict := []Group{{ID: "1", Members: list("a", "c")}, {ID: "2", Members: list("b", "d")}}
	empty := []Group{{ID: "1"}, {ID: "2"}}

	assert.Zero(t, CompareSets(paired, paired, opts))
	assert.Negative(t, CompareSets(paired, conflict, opts))
	assert.Positive(t, CompareSets(conflict, paired, opts))
	assert.Negative(t, CompareSets(conflict, empty, opts))
	assert.Positive(t, CompareSets(empty, paired, opts))
	assert.Zero(t, CompareSets(empty, empty, opts))
}

func TestCompareSets_Ladder(t *testing.T) {
	tests := []struct {
		name string
		a, b Summary
		want int
	}{
		{
			name: "fewer unwanted outweighs everything below it",
			a:    Summary{Placed: 4, Unwanted: 0, AverageWanted: 0, WithoutWanted: 4},
			b:    Summary{Placed: 4, Unwanted: 1, AverageWanted: 1, WithoutWanted: 0},
			want: -1000 + 50 + 60 + 310,
		},
		{
			name: "closer to target beats higher average",
			a:    Summary{Placed: 4, AverageWanted: 1, WithoutWanted: 1},
			b:    Summary{Placed: 4, AverageWanted: 2, WithoutWanted: 1},
			want: 50 - 60,
		},
		{
			name: "empty loses",
			a:    Summary{},
			b:    Summary{Placed: 1, WithoutWanted: 1},
			want: 2000 + 3000 - 310,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareSummaries(tt.a, tt.b, 1))
			assert.Equal(t, -tt.want, compareSummaries(tt.b, tt.a, 1))
		})
	}
}

func TestKey(t *testing.T) {
	a := []Group{{ID: "1", Members: list("b", "a")}, {ID: "2", Members: list("c")}, {ID: "3"}}
	b := []Group{{ID: "x", Members: list("c")}, {ID: "y", Members: list("a", "b")}}

	assert.Equal(t, "a,b;c;", Key(a))
	assert.Equal(t, Key(a), Key(b))
}
