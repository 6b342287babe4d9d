package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/resume-lab/vitae/pkg/cli/config"
	"github.com/resume-lab/vitae/pkg/service/history"
	"github.com/resume-lab/vitae/pkg/service/tracker"
	"github.com/resume-lab/vitae/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdPrune() *cli.Command {
	var days int
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "days",
			Usage:       "Delete conversation turns and change records older than this many days",
			Value:       90,
			Sources:     cli.EnvVars("VITAE_PRUNE_DAYS"),
			Destination: &days,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "prune",
		Usage: "Delete old conversation turns and change records",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if days <= 0 {
				return goerr.New("days must be positive", goerr.V("days", days))
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			turns, err := history.New(repo.Turn()).PruneOlderThan(ctx, days)
			if err != nil {
				return goerr.Wrap(err, "failed to prune conversation turns")
			}

			changes, err := tracker.New(repo.Change()).Cleanup(ctx, days)
			if err != nil {
				return goerr.Wrap(err, "failed to prune change records")
			}

			logging.Default().Info("Prune completed",
				"days", days,
				"deleted_turns", turns,
				"deleted_changes", changes,
			)
			return nil
		},
	}
}
