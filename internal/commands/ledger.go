package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLedgerCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ledger",
		Short: "List committed ledger entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath, true)
			if err != nil {
				return err
			}

			entries, err := e.st.ListLedger()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tDESCRIPTION\tAMOUNT\tEUR\tCCY\tACCOUNT\tCATEGORY")
			for _, tx := range entries {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					tx.ID,
					tx.Date.Format("2006-01-02"),
					tx.Description,
					tx.AmountOriginal.StringFixed(2),
					tx.AmountEUR.StringFixed(2),
					tx.CurrencyOriginal,
					tx.AccountName,
					tx.Category,
				)
			}
			return w.Flush()
		},
	}
}
