package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/reaper"
)

func newSweepCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove draft sessions older than the retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath, false)
			if err != nil {
				return err
			}
			if e.cfg.Retention() <= 0 {
				return fmt.Errorf("imports.retention_days is not configured")
			}

			n, err := reaper.New(e.st, e.log).Sweep(e.cfg.Retention())
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d stale draft session(s)\n", n)
			return nil
		},
	}
}
