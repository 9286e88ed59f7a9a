package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/importing"
	"github.com/bankfeed-dev/bankfeed/internal/parser"
)

func newCommitCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "commit <session-id>",
		Short: "Validate a draft session and promote its rows to the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath, true)
			if err != nil {
				return err
			}

			svc := importing.NewService(e.st, parser.DefaultRegistry(), e.log)
			err = svc.Commit(args[0])

			var verr *importing.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintln(os.Stderr, "Cannot commit; fix these rows and retry:")
				for _, re := range verr.Rows {
					fmt.Fprintf(os.Stderr, "  %s\n", re.Error())
				}
				return fmt.Errorf("%d validation problem(s)", len(verr.Rows))
			}
			if err != nil {
				return err
			}

			fmt.Printf("Committed session %s\n", args[0])
			return nil
		},
	}
}
