package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"runtime"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"groups/internal/roster"
	"groups/solver"
)

type runResult struct {
	unwanted     int
	avgWanted    float64
	withoutCount int
	genderSpread float64
	key          string
	elapsed      time.Duration
}

// genderSpread is the mean over non-empty groups of |groupSize/2 - males|.
func genderSpread(groups []solver.Group, opts solver.Options) float64 {
	male := map[string]bool{}
	for _, u := range opts.Users {
		male[u.ID] = u.Gender == solver.Male
	}
	var total float64
	n := 0
	for _, g := range groups {
		if len(g.Members) == 0 {
			continue
		}
		m := 0
		for _, id := range g.Members {
			if male[id] {
				m++
			}
		}
		total += math.Abs(float64(opts.GroupSize)/2 - float64(m))
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

func printStats(label string, results []runResult) {
	runs := len(results)
	unwanted := map[int]int{}
	solutionSets := map[string]int{}
	var totalTime time.Duration
	var totalWanted, totalSpread float64
	var totalWithout int

	for _, r := range results {
		totalTime += r.elapsed
		unwanted[r.unwanted]++
		solutionSets[r.key]++
		totalWanted += r.avgWanted
		totalSpread += r.genderSpread
		totalWithout += r.withoutCount
	}

	fmt.Printf("--- %s ---\n", label)
	fmt.Printf("  avg time: %v\n", totalTime/time.Duration(runs))
	fmt.Printf("  avg wanted per user: %.2f\n", totalWanted/float64(runs))
	fmt.Printf("  avg users without wanted: %.1f\n", float64(totalWithout)/float64(runs))
	fmt.Printf("  avg gender spread: %.2f\n", totalSpread/float64(runs))

	counts := make([]int, 0, len(unwanted))
	for u := range unwanted {
		counts = append(counts, u)
	}
	slices.Sort(counts)
	fmt.Printf("  unwanted distribution:\n")
	for _, u := range counts {
		c := unwanted[u]
		fmt.Printf("    unwanted %d: %d/%d runs (%.0f%%)\n", u, c, runs, float64(c)/float64(runs)*100)
	}

	fmt.Printf("  unique solutions seen: %d\n", len(solutionSets))

	var solFreqs []struct {
		key   string
		count int
	}
	for k, c := range solutionSets {
		solFreqs = append(solFreqs, struct {
			key   string
			count int
		}{k, c})
	}
	sort.Slice(solFreqs, func(i, j int) bool { return solFreqs[i].count > solFreqs[j].count })

	stableCount := 0
	for _, sf := range solFreqs {
		if sf.count == runs {
			stableCount++
		}
	}
	fmt.Printf("  solutions found in all runs: %d\n", stableCount)
	if len(solFreqs) > 0 {
		topN := min(5, len(solFreqs))
		fmt.Printf("  top %d solution frequencies: ", topN)
		for i := range topN {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Printf("%d/%d", solFreqs[i].count, runs)
		}
		fmt.Println()
	}
	fmt.Println()
}

func runAll(opts solver.Options, iterations, runs, parallel int) ([]runResult, error) {
	results := make([]runResult, runs)
	var g errgroup.Group
	g.SetLimit(parallel)
	for run := range runs {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(int64(run * 31337)))
			start := time.Now()
			groups, err := solver.BestOf(opts, solver.Params{Iterations: iterations}, rng)
			if err != nil {
				return fmt.Errorf("run %d: %w", run, err)
			}
			sum := solver.Summarize(groups, opts)
			results[run] = runResult{
				unwanted:     sum.Unwanted,
				avgWanted:    sum.AverageWanted,
				withoutCount: sum.WithoutWanted,
				genderSpread: genderSpread(groups, opts),
				key:          solver.Key(groups),
				elapsed:      time.Since(start),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func main() {
	input := pflag.StringP("input", "i", "", "roster JSON file (default: a generated class)")
	users := pflag.Int("users", 26, "users in the generated class")
	seed := pflag.Int64("seed", 1, "seed for the generated class")
	groupSize := pflag.Int("group-size", 4, "members per group, unless the roster sets one")
	desired := pflag.Int("desired", 1, "desired wanted amount, unless the roster sets one")
	runs := pflag.Int("runs", 20, "number of solver runs per iteration count")
	iterations := pflag.String("iterations", "1,5,10,20", "comma-separated iteration counts")
	parallel := pflag.Int("parallel", runtime.GOMAXPROCS(0), "runs in flight at once")
	pflag.Parse()

	if *runs <= 0 {
		fmt.Fprintln(os.Stderr, "runs must be positive")
		os.Exit(1)
	}

	var ros *roster.Roster
	if *input != "" {
		var err error
		ros, err = roster.Load(*input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reading roster: %v\n", err)
			os.Exit(1)
		}
	} else {
		ros = roster.Generate(roster.GenerateOptions{Users: *users, Wanted: 6, Unwanted: 2, Seed: *seed})
	}

	settings := roster.Settings{GroupSize: *groupSize, DesiredWantedAmount: *desired}
	if ros.GroupSize > 0 {
		settings.GroupSize = ros.GroupSize
	}
	if ros.DesiredWantedAmount != nil {
		settings.DesiredWantedAmount = *ros.DesiredWantedAmount
	}
	opts := ros.Options(settings)

	fmt.Printf("Users: %d, Group size: %d, Groups: %d\n", len(opts.Users), opts.GroupSize, len(opts.InitialGroups))
	fmt.Printf("Desired wanted amount: %d\n", opts.DesiredWantedAmount)
	fmt.Printf("Runs per config: %d\n\n", *runs)

	for _, n := range parseIntList(*iterations) {
		results, err := runAll(opts, n, *runs, *parallel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "iterations=%d: %v\n", n, err)
			os.Exit(1)
		}
		printStats(fmt.Sprintf("iterations=%d", n), results)
	}
}

func parseIntList(s string) []int {
	parts := strings.Split(s, ",")
	var result []int
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err == nil {
			result = append(result, v)
		}
	}
	return result
}
