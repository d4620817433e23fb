package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emberwallet/ember/internal/output"
	"github.com/emberwallet/ember/internal/service/history"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var historyAccount uint32

// historyCmd lists classified transactions for a wallet account or address.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var historyCmd = &cobra.Command{
	Use:   "history <wallet|address>",
	Short: "Show transaction history",
	Long: `Show the transaction history of a wallet account or raw address,
classified as sends, receives, airdrops, and NFT activity. Entries are
ordered newest first.

Example:
  ember history main
  ember history main -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Uint32Var(&historyAccount, "account", 0, "account index within the wallet")
}

func runHistory(cmd *cobra.Command, args []string) error {
	address, err := resolveAddress(args[0], historyAccount)
	if err != nil {
		return err
	}

	classifier := history.NewClassifier(newNodeClient())
	entries, err := classifier.Classify(cmdContext(cmd), address)
	if err != nil {
		return err
	}

	if formatter.Format() == output.FormatJSON {
		if entries == nil {
			entries = []history.Entry{}
		}
		return writeJSON(cmd.OutOrStdout(), entries)
	}

	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		outln(w, "No transactions found.")
		return nil
	}

	table := output.NewTable("DATE", "TYPE", "CHANGE", "DIGEST")
	for _, e := range entries {
		change := strconv.FormatInt(e.TotalBalanceChange, 10) + e.Classification.Suffix
		table.AddRow(e.Date, e.Classification.Label, change, e.Digest)
	}
	return table.Render(w)
}
