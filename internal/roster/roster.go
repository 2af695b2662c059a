// Package roster reads and writes the population handed to the solver: JSON roster
// files, rounds stored in Postgres, and generated fake classes.
package roster

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"groups/solver"
)

// Roster is the on-disk form of one grouping round. Zero GroupSize and a nil
// DesiredWantedAmount leave those settings to the run configuration.
type Roster struct {
	GroupSize           int            `json:"group_size,omitempty"`
	DesiredWantedAmount *int           `json:"desired_wanted_amount,omitempty"`
	Groups              []solver.Group `json:"groups,omitempty"`
	Users               []solver.User  `json:"users"`
}

func Decode(r io.Reader) (*Roster, error) {
	var ros Roster
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ros); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return &ros, nil
}

func Load(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func (r *Roster) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (r *Roster) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create roster: %w", err)
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encode roster: %w", err)
	}
	return f.Close()
}

// GroupCount is groups when positive, otherwise enough groups of size to seat users.
func GroupCount(users, size, groups int) int {
	if groups > 0 {
		return groups
	}
	if size <= 0 {
		return 0
	}
	return max(1, (users+size-1)/size)
}

// Settings are the run values a roster may be combined with.
type Settings struct {
	GroupSize           int
	DesiredWantedAmount int
	Groups              int
	Strict              bool
}

// Options builds solver input. Seeded groups in the roster are kept as-is; otherwise
// GroupCount empty groups are created.
func (r *Roster) Options(s Settings) solver.Options {
	initial := r.Groups
	if len(initial) == 0 {
		initial = solver.EmptyGroups(GroupCount(len(r.Users), s.GroupSize, s.Groups))
	}
	return solver.Options{
		GroupSize:           s.GroupSize,
		DesiredWantedAmount: s.DesiredWantedAmount,
		InitialGroups:       initial,
		Users:               r.Users,
		Strict:              s.Strict,
	}
}
