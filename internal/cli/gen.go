package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"groups/internal/roster"
)

func newGenCmd() *cobra.Command {
	var (
		users, wanted, unwanted int
		file                    string
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a fake roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if users < 0 || wanted < 0 || unwanted < 0 {
				return errors.New("counts must not be negative")
			}
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			seed := cfg.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			ros := roster.Generate(roster.GenerateOptions{
				Users:     users,
				Wanted:    wanted,
				Unwanted:  unwanted,
				GroupSize: cfg.GroupSize,
				Seed:      seed,
			})
			log.Info().Int("users", users).Int64("seed", seed).Msg("generated roster")

			if file == "" {
				return ros.Encode(cmd.OutOrStdout())
			}
			return ros.Save(file)
		},
	}

	f := cmd.Flags()
	f.IntVar(&users, "users", 26, "Number of users")
	f.IntVar(&wanted, "wanted", 6, "Wanted entries per user")
	f.IntVar(&unwanted, "unwanted", 2, "Unwanted entries per user")
	f.Int("group-size", 4, "Group size recorded in the roster")
	f.Int64("seed", 0, "Random seed (0 picks one from the clock)")
	f.StringVarP(&file, "file", "f", "", "Write to this file instead of stdout")
	return cmd
}
