package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"groups/internal/config"
	"groups/internal/roster"
	"groups/solver"
)

var errNoRoster = errors.New("no roster: set --input, or --dsn with --round")

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Split a roster into groups",
		Long: `Split a roster into groups.

The roster comes from a JSON file (--input) or a round stored in Postgres
(--dsn and --round). Group size and desired wanted amount stored with the
roster apply unless the matching flag is given.`,
		Args: cobra.NoArgs,
		RunE: runSolve,
	}

	f := cmd.Flags()
	f.StringP("input", "i", "", "Roster JSON file")
	f.String("dsn", "", "Postgres connection string")
	f.String("round", "", "Round id to load from Postgres")
	f.Int("group-size", 4, "Members per group")
	f.Int("desired", 1, "Wanted group mates each user should ideally get")
	f.IntP("iterations", "n", 10, "Independent attempts to pick the best from")
	f.Int("groups", 0, "Groups to create when the roster has none (0 derives from group size)")
	f.Int64("seed", 0, "Random seed (0 picks one from the clock)")
	f.Bool("strict", false, "Reject wanted and unwanted ids missing from the roster")
	return cmd
}

func runSolve(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log = log.With().Str("run_id", uuid.NewString()).Logger()

	ros, err := loadRoster(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	settings := roster.Settings{
		GroupSize:           cfg.GroupSize,
		DesiredWantedAmount: cfg.DesiredWanted,
		Groups:              cfg.Groups,
		Strict:              cfg.Strict,
	}
	if ros.GroupSize > 0 && !cmd.Flags().Changed("group-size") {
		settings.GroupSize = ros.GroupSize
	}
	if ros.DesiredWantedAmount != nil && !cmd.Flags().Changed("desired") {
		settings.DesiredWantedAmount = *ros.DesiredWantedAmount
	}
	opts := ros.Options(settings)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info().
		Int("users", len(opts.Users)).
		Int("groups", len(opts.InitialGroups)).
		Int("group_size", opts.GroupSize).
		Int("iterations", cfg.Iterations).
		Int64("seed", seed).
		Msg("solving")

	start := time.Now()
	groups, err := solver.BestOf(opts, solver.Params{Iterations: cfg.Iterations, Logger: log}, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	summary := solver.Summarize(groups, opts)
	log.Info().
		Int("unwanted", summary.Unwanted).
		Float64("avg_wanted", summary.AverageWanted).
		Dur("elapsed", time.Since(start)).
		Msg("solved")

	res := newResult(seed, groups, opts, summary)
	if cfg.Output == "json" {
		return printJSON(cmd.OutOrStdout(), res)
	}
	return res.writeText(cmd.OutOrStdout())
}

func loadRoster(ctx context.Context, cfg *config.Config) (*roster.Roster, error) {
	switch {
	case cfg.Input != "":
		return roster.Load(cfg.Input)
	case cfg.Database.DSN != "":
		db, err := roster.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return roster.LoadRound(ctx, db, cfg.Database.Round)
	}
	return nil, errNoRoster
}

type groupResult struct {
	ID      string   `json:"id"`
	Members []string `json:"members"`
	Male    int      `json:"male"`
	Female  int      `json:"female"`
}

type summaryResult struct {
	Placed        int     `json:"placed"`
	Wanted        int     `json:"wanted"`
	Unwanted      int     `json:"unwanted"`
	AverageWanted float64 `json:"average_wanted"`
	WithoutWanted int     `json:"without_wanted"`
}

type result struct {
	Seed    int64         `json:"seed"`
	Groups  []groupResult `json:"groups"`
	Summary summaryResult `json:"summary"`
}

func newResult(seed int64, groups []solver.Group, opts solver.Options, sum solver.Summary) result {
	gender := make(map[string]solver.Gender, len(opts.Users))
	for _, u := range opts.Users {
		gender[u.ID] = u.Gender
	}

	res := result{
		Seed:   seed,
		Groups: make([]groupResult, len(groups)),
		Summary: summaryResult{
			Placed:        sum.Placed,
			Wanted:        sum.Wanted,
			Unwanted:      sum.Unwanted,
			AverageWanted: sum.AverageWanted,
			WithoutWanted: sum.WithoutWanted,
		},
	}
	for i, g := range groups {
		gr := groupResult{ID: g.ID, Members: g.Members}
		for _, m := range g.Members {
			switch gender[m] {
			case solver.Male:
				gr.Male++
			case solver.Female:
				gr.Female++
			}
		}
		res.Groups[i] = gr
	}
	return res
}

func (r result) writeText(w io.Writer) error {
	for _, g := range r.Groups {
		if _, err := fmt.Fprintf(w, "%s (%dm/%df): %s\n", g.ID, g.Male, g.Female, strings.Join(g.Members, ", ")); err != nil {
			return err
		}
	}
	s := r.Summary
	_, err := fmt.Fprintf(w, "\nplaced %d, unwanted %d, with wanted %d, without wanted %d, average wanted %.2f (seed %d)\n",
		s.Placed, s.Unwanted, s.Wanted, s.WithoutWanted, s.AverageWanted, r.Seed)
	return err
}
