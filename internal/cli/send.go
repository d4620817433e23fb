package cli

import (
	"github.com/spf13/cobra"

	"github.com/emberwallet/ember/internal/output"
	"github.com/emberwallet/ember/internal/service/transaction"
	"github.com/emberwallet/ember/internal/wallet"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	sendTo       string
	sendAmount   uint64
	sendCoinType string
	sendAccount  uint32
	sendDryRun   bool
)

// sendCmd transfers coins from a wallet account.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var sendCmd = &cobra.Command{
	Use:   "send <wallet>",
	Short: "Send coins to an address",
	Long: `Send SUI or a custom coin from a wallet account to an address.

Amounts are in the smallest coin unit. You will be prompted for the
wallet password to sign the transaction.

Example:
  ember send main --to 0x... --amount 1000
  ember send main --to 0x... --amount 500 --coin-type 0xa5e6dbcf::managed::MANAGED
  ember send main --to 0x... --amount 1000 --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVar(&sendTo, "to", "", "recipient address")
	sendCmd.Flags().Uint64Var(&sendAmount, "amount", 0, "amount in the smallest coin unit")
	sendCmd.Flags().StringVar(&sendCoinType, "coin-type", "", "coin type to send (default: SUI)")
	sendCmd.Flags().Uint32Var(&sendAccount, "account", 0, "account index within the wallet")
	sendCmd.Flags().BoolVar(&sendDryRun, "dry-run", false, "simulate the transfer without submitting")
	_ = sendCmd.MarkFlagRequired("to")
	_ = sendCmd.MarkFlagRequired("amount")
}

func runSend(cmd *cobra.Command, args []string) error {
	if !wallet.IsValidAddress(wallet.NormalizeAddress(sendTo)) {
		return emberr.WithSuggestion(emberr.ErrInvalidAddress,
			"recipient must be a 0x-prefixed hex address")
	}
	if sendAmount == 0 {
		return emberr.WithSuggestion(emberr.ErrInvalidAmount,
			"amount must be greater than zero")
	}

	w, err := unlockWallet(args[0])
	if err != nil {
		return err
	}

	kp, err := accountKeypair(w, sendAccount)
	if err != nil {
		return err
	}
	defer kp.Zero()

	client := newNodeClient()
	svc := transaction.NewService(client, client, cfg.Gas.TransferBudget)
	recipient := wallet.NormalizeAddress(sendTo)
	ctx := cmdContext(cmd)

	logger.Debug("sending %d from %s to %s", sendAmount, kp.Address(), recipient)

	if sendDryRun {
		tx, err := svc.Builder().BuildTransfer(ctx, sendAmount, kp.Address(), recipient, sendCoinType)
		if err != nil {
			return err
		}

		effects, err := svc.DryRun(ctx, kp.Address(), tx)
		if err != nil {
			return err
		}

		if formatter.Format() == output.FormatJSON {
			return writeJSON(cmd.OutOrStdout(), effects)
		}
		out(cmd.OutOrStdout(), "Dry run status: %s\n", effects.Status.Status)
		return nil
	}

	resp, err := svc.Transfer(ctx, sendAmount, kp, recipient, sendCoinType)
	if err != nil {
		return err
	}

	if formatter.Format() == output.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), resp)
	}

	out(cmd.OutOrStdout(), "Transfer submitted.\n")
	out(cmd.OutOrStdout(), "Digest: %s\n", resp.Digest())
	return nil
}
