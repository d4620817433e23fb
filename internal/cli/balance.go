package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emberwallet/ember/internal/chain"
	"github.com/emberwallet/ember/internal/output"
	"github.com/emberwallet/ember/internal/service/coin"
	"github.com/emberwallet/ember/internal/wallet"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var balanceAccount uint32

// balanceCmd shows coin balances for a wallet account or raw address.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var balanceCmd = &cobra.Command{
	Use:   "balance <wallet|address>",
	Short: "Show coin balances",
	Long: `Show all coins owned by a wallet account or a raw address.

Example:
  ember balance main
  ember balance main --account 1
  ember balance 0x1f72fe36dc6ff7fc9b6b4f58a0317e92c7e99109`,
	Args: cobra.ExactArgs(1),
	RunE: runBalance,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().Uint32Var(&balanceAccount, "account", 0, "account index within the wallet")
}

// resolveAddress interprets the argument as a raw address or a wallet name.
func resolveAddress(arg string, account uint32) (string, error) {
	if normalized := wallet.NormalizeAddress(arg); wallet.IsValidAddress(normalized) {
		return normalized, nil
	}

	w, err := loadWalletMetadata(arg)
	if err != nil {
		return "", err
	}
	return accountAddress(w, account)
}

// balanceView is the JSON projection of a balance query.
type balanceView struct {
	Address string          `json:"address"`
	Total   uint64          `json:"total"`
	Coins   []coin.CoinView `json:"coins"`
}

func runBalance(cmd *cobra.Command, args []string) error {
	address, err := resolveAddress(args[0], balanceAccount)
	if err != nil {
		return err
	}

	selector := coin.NewSelector(newNodeClient())
	coins, err := selector.ListCoins(cmdContext(cmd), address)
	if err != nil {
		return err
	}

	var total uint64
	for _, c := range coins {
		if c.CoinType == chain.NativeCoinType {
			total += c.Balance
		}
	}

	if formatter.Format() == output.FormatJSON {
		if coins == nil {
			coins = []coin.CoinView{}
		}
		return writeJSON(cmd.OutOrStdout(), balanceView{
			Address: address,
			Total:   total,
			Coins:   coins,
		})
	}

	w := cmd.OutOrStdout()
	out(w, "Address: %s\n", address)
	out(w, "SUI balance: %s\n", strconv.FormatUint(total, 10))

	if len(coins) == 0 {
		outln(w)
		outln(w, "No coins owned. Request devnet funds with: ember airdrop "+args[0])
		return nil
	}

	outln(w)
	table := output.NewTable("OBJECT ID", "SYMBOL", "BALANCE")
	for _, c := range coins {
		table.AddRow(c.ObjectID, c.Symbol, strconv.FormatUint(c.Balance, 10))
	}
	return table.Render(w)
}
