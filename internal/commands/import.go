package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/importing"
	"github.com/bankfeed-dev/bankfeed/internal/parser"
)

func newImportCommand(configPath *string) *cobra.Command {
	var banks []string

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Parse statement files into a new draft import session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath, true)
			if err != nil {
				return err
			}

			svc := importing.NewService(e.st, parser.DefaultRegistry(), e.log)
			sessionID, n, err := svc.Stage(args, banks)
			if err != nil {
				return err
			}

			fmt.Printf("Staged %d rows in session %s\n", n, sessionID)
			if n == 0 {
				fmt.Println("No rows were parsed; check the bank identifiers.")
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&banks, "bank", nil, "bank identifier per file, in file order (required)")
	_ = cmd.MarkFlagRequired("bank")

	return cmd
}
