package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/config"
)

func newInitCommand() *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default bankfeed.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir, dsn)
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "postgres://localhost:5432/bankfeed?sslmode=disable", "database connection string")

	return cmd
}

func runInit(dir, dsn string) error {
	path := filepath.Join(dir, "bankfeed.yaml")
	if err := config.Save(path, config.Default(dsn)); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
