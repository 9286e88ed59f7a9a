package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/advisor"
)

func newSuggestCommand(configPath *string) *cobra.Command {
	var skipIDs []string

	cmd := &cobra.Command{
		Use:   "suggest <session-id>",
		Short: "Ask the advisor for category suggestions on staged rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skip := make(map[uint]bool, len(skipIDs))
			if len(skipIDs) > 0 {
				ids, err := parseRowIDs(skipIDs)
				if err != nil {
					return err
				}
				for _, id := range ids {
					skip[id] = true
				}
			}

			e, err := openEnv(*configPath, true)
			if err != nil {
				return err
			}

			rows, err := e.st.ListStagingRows(args[0])
			if err != nil {
				return err
			}

			svc := advisor.New(e.cfg.Advisor.Enabled, e.cfg.Advisor.Model, os.Getenv("GEMINI_API_KEY"))
			suggestions := svc.SuggestForRows(cmd.Context(), rows, e.cfg.Categories, skip)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ROW\tCATEGORY\tCONFIDENCE\tREASON")
			for _, row := range rows {
				sg, ok := suggestions[row.ID]
				if !ok {
					continue
				}
				category := sg.Category
				if category == "" {
					category = "-"
				}
				fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\n", row.ID, category, sg.Confidence, sg.Reason)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringArrayVar(&skipIDs, "skip", nil, "row id to skip, repeatable")

	return cmd
}
