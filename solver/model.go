// Package solver splits a population of users into fixed-size groups from their
// wanted and unwanted lists, keeping genders roughly balanced.
package solver

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

type User struct {
	ID       string   `json:"id"`
	Wanted   []string `json:"wanted"`
	Unwanted []string `json:"unwanted"`
	Gender   Gender   `json:"gender"`
}

type Group struct {
	ID      string   `json:"id"`
	Members []string `json:"members"`
}

type Options struct {
	GroupSize           int
	DesiredWantedAmount int
	InitialGroups       []Group
	Users               []User

	// Strict rejects wanted and unwanted references to users missing from Users.
	Strict bool
}

type Params struct {
	Iterations int
	Logger     zerolog.Logger
}

var DefaultParams = Params{
	Iterations: 10,
	Logger:     zerolog.Nop(),
}

var (
	ErrInvalidGroupSize  = errors.New("group size must be positive")
	ErrInvalidDesired    = errors.New("desired wanted amount must not be negative")
	ErrNoGroups          = errors.New("at least one initial group is required")
	ErrInvalidIterations = errors.New("iterations must be positive")
	ErrEmptyID           = errors.New("empty id")
	ErrDuplicateUser     = errors.New("duplicate user id")
	ErrDuplicateGroup    = errors.New("duplicate group id")
	ErrInvalidGender     = errors.New("invalid gender")
	ErrUnknownUser       = errors.New("unknown user id")
	ErrSeededTwice       = errors.New("user seeded into more than one group")
	ErrUnplaced          = errors.New("users left unplaced")
)

// Validate reports configuration errors. It does not look at iterations.
func (o Options) Validate() error {
	if o.GroupSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidGroupSize, o.GroupSize)
	}
	if o.DesiredWantedAmount < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDesired, o.DesiredWantedAmount)
	}
	if len(o.InitialGroups) == 0 {
		return ErrNoGroups
	}

	known := make(map[string]bool, len(o.Users))
	for _, u := range o.Users {
		if u.ID == "" {
			return fmt.Errorf("user: %w", ErrEmptyID)
		}
		if known[u.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateUser, u.ID)
		}
		if u.Gender != Male && u.Gender != Female {
			return fmt.Errorf("%w %q for user %s", ErrInvalidGender, u.Gender, u.ID)
		}
		known[u.ID] = true
	}

	if o.Strict {
		for _, u := range o.Users {
			for _, ref := range slices.Concat(u.Wanted, u.Unwanted) {
				if !known[ref] {
					return fmt.Errorf("%w: %s referenced by %s", ErrUnknownUser, ref, u.ID)
				}
			}
		}
	}

	groupIDs := map[string]bool{}
	seeded := map[string]string{}
	for _, g := range o.InitialGroups {
		if g.ID == "" {
			return fmt.Errorf("group: %w", ErrEmptyID)
		}
		if groupIDs[g.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateGroup, g.ID)
		}
		groupIDs[g.ID] = true
		for _, m := range g.Members {
			if !known[m] {
				return fmt.Errorf("%w: %s seeded into group %s", ErrUnknownUser, m, g.ID)
			}
			if other, ok := seeded[m]; ok {
				return fmt.Errorf("%w: %s in %s and %s", ErrSeededTwice, m, other, g.ID)
			}
			seeded[m] = g.ID
		}
	}
	return nil
}

// EmptyGroups returns n empty groups with ids "1" through n.
func EmptyGroups(n int) []Group {
	groups := make([]Group, n)
	for i := range groups {
		groups[i] = Group{ID: strconv.Itoa(i + 1), Members: []string{}}
	}
	return groups
}

// Key renders a partition independent of group ids and member order.
func Key(groups []Group) string {
	var gs [][]string
	for _, g := range groups {
		if len(g.Members) == 0 {
			continue
		}
		members := slices.Clone(g.Members)
		slices.Sort(members)
		gs = append(gs, members)
	}
	slices.SortFunc(gs, func(a, b []string) int { return strings.Compare(a[0], b[0]) })
	var buf strings.Builder
	for _, g := range gs {
		for i, m := range g {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(m)
		}
		buf.WriteByte(';')
	}
	return buf.String()
}

func cloneGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{ID: g.ID, Members: slices.Clone(g.Members)}
		if out[i].Members == nil {
			out[i].Members = []string{}
		}
	}
	return out
}

func without(members []string, id string) []string {
	return slices.DeleteFunc(slices.Clone(members), func(m string) bool { return m == id })
}
