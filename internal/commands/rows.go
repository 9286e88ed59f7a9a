package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

func newRowsCommand(configPath *string) *cobra.Command {
	rowsCmd := &cobra.Command{
		Use:   "rows",
		Short: "Staged row operations",
	}
	rowsCmd.AddCommand(newRowsListCommand(configPath))
	rowsCmd.AddCommand(newRowsAddCommand(configPath))
	rowsCmd.AddCommand(newRowsEditCommand(configPath))
	rowsCmd.AddCommand(newRowsDeleteCommand(configPath))
	return rowsCmd
}

func newRowsListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list <session-id>",
		Short: "List staged rows for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath, true)
			if err != nil {
				return err
			}

			rows, err := e.st.ListStagingRows(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tDESCRIPTION\tAMOUNT\tEUR\tCCY\tACCOUNT\tCATEGORY")
			for _, row := range rows {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					row.ID,
					formatDate(row),
					row.Description,
					formatAmount(row.AmountOriginal),
					formatAmount(row.AmountEUR),
					row.CurrencyOriginal,
					row.AccountName,
					row.Category,
				)
			}
			return w.Flush()
		},
	}
}

func newRowsAddCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <session-id>",
		Short: "Append an empty staged row to a draft session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath, true)
			if err != nil {
				return err
			}

			row, err := e.st.AddEmptyStagingRow(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Added row %d\n", row.ID)
			return nil
		},
	}
}

func newRowsEditCommand(configPath *string) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "edit <session-id> <row-id>",
		Short: "Patch fields on a staged row",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rowID, err := parseRowID(args[1])
			if err != nil {
				return err
			}
			patch, err := parsePatch(sets)
			if err != nil {
				return err
			}

			e, err := openEnv(*configPath, true)
			if err != nil {
				return err
			}

			if err := e.st.UpdateStagingFields(args[0], rowID, patch); err != nil {
				return err
			}
			fmt.Printf("Updated row %d\n", rowID)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value pair, repeatable (required)")
	_ = cmd.MarkFlagRequired("set")

	return cmd
}

func newRowsDeleteCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id> <row-id>...",
		Short: "Delete staged rows by id",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseRowIDs(args[1:])
			if err != nil {
				return err
			}

			e, err := openEnv(*configPath, true)
			if err != nil {
				return err
			}

			if len(ids) == 1 {
				err = e.st.DeleteStagingRow(args[0], ids[0])
			} else {
				err = e.st.DeleteStagingRows(args[0], ids)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d row(s)\n", len(ids))
			return nil
		},
	}
}

// parsePatch converts repeated field=value flags into a staging patch.
func parsePatch(sets []string) (map[string]string, error) {
	patch := make(map[string]string, len(sets))
	for _, set := range sets {
		field, value, ok := strings.Cut(set, "=")
		if !ok || strings.TrimSpace(field) == "" {
			return nil, fmt.Errorf("invalid --set %q: expected field=value", set)
		}
		patch[strings.TrimSpace(field)] = value
	}
	return patch, nil
}

func parseRowID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid row id %q", s)
	}
	return uint(id), nil
}

func parseRowIDs(args []string) ([]uint, error) {
	ids := make([]uint, 0, len(args))
	for _, arg := range args {
		id, err := parseRowID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func formatDate(row model.StagingTransaction) string {
	if row.Date == nil {
		return "-"
	}
	return row.Date.Format("2006-01-02")
}

func formatAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.StringFixed(2)
}
