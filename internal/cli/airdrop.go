package cli

import (
	"github.com/spf13/cobra"

	"github.com/emberwallet/ember/internal/output"
	"github.com/emberwallet/ember/internal/service/transaction"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var airdropAccount uint32

// airdropCmd requests devnet funds from the faucet.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var airdropCmd = &cobra.Command{
	Use:   "airdrop <wallet|address>",
	Short: "Request devnet funds from the faucet",
	Long: `Ask the devnet faucet to fund a wallet account or raw address.

Example:
  ember airdrop main
  ember airdrop 0x1f72fe36dc6ff7fc9b6b4f58a0317e92c7e99109`,
	Args: cobra.ExactArgs(1),
	RunE: runAirdrop,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(airdropCmd)
	airdropCmd.Flags().Uint32Var(&airdropAccount, "account", 0, "account index within the wallet")
}

func runAirdrop(cmd *cobra.Command, args []string) error {
	address, err := resolveAddress(args[0], airdropAccount)
	if err != nil {
		return err
	}

	client := newNodeClient()
	svc := transaction.NewService(client, client, cfg.Gas.TransferBudget)
	if err := svc.Airdrop(cmdContext(cmd), address); err != nil {
		return err
	}

	return output.FormatSuccess(cmd.OutOrStdout(),
		"Airdrop requested for "+address, formatter.Format())
}
