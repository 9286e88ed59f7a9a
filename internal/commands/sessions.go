package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/importing"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/parser"
)

func newSessionsCommand(configPath *string) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Import session operations",
	}
	sessionsCmd.AddCommand(newSessionsListCommand(configPath))
	sessionsCmd.AddCommand(newSessionsDeleteCommand(configPath))
	return sessionsCmd
}

func newSessionsListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List draft import sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath, true)
			if err != nil {
				return err
			}

			drafts, err := e.st.ListSessions(model.StatusDraft)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SESSION\tCREATED\tROWS")
			for _, sess := range drafts {
				n, err := e.st.CountStagingRows(sess.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%d\n", sess.ID, sess.CreatedAt.Format("2006-01-02 15:04"), n)
			}
			return w.Flush()
		},
	}
}

func newSessionsDeleteCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a draft session and all of its staged rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath, true)
			if err != nil {
				return err
			}

			svc := importing.NewService(e.st, parser.DefaultRegistry(), e.log)
			if err := svc.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted session %s\n", args[0])
			return nil
		},
	}
}
