package cli

import (
	"github.com/spf13/cobra"

	"github.com/emberwallet/ember/internal/nft"
	"github.com/emberwallet/ember/internal/output"
	"github.com/emberwallet/ember/internal/signer"
	"github.com/emberwallet/ember/internal/wallet"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	nftAccount     uint32
	mintName       string
	mintDesc       string
	mintURL        string
	nftSendTo      string
	nftSendID      string
	nftSignAccount uint32
)

// nftCmd is the parent command for NFT operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var nftCmd = &cobra.Command{
	Use:   "nft",
	Short: "Manage NFTs",
	Long:  `List, mint, and transfer NFTs on the devnet.`,
}

// nftListCmd lists NFTs owned by a wallet account or address.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var nftListCmd = &cobra.Command{
	Use:   "list <wallet|address>",
	Short: "List owned NFTs",
	Long: `List the NFT-like objects owned by a wallet account or raw address.

Example:
  ember nft list main
  ember nft list main -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runNFTList,
}

// nftMintCmd mints an example NFT.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var nftMintCmd = &cobra.Command{
	Use:   "mint <wallet>",
	Short: "Mint an example NFT",
	Long: `Mint a devnet example NFT owned by the wallet account.

Name, description, and image URL default to the standard example values
when omitted.

Example:
  ember nft mint main
  ember nft mint main --name "My NFT" --url ipfs://...`,
	Args: cobra.ExactArgs(1),
	RunE: runNFTMint,
}

// nftSendCmd transfers an NFT to another address.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var nftSendCmd = &cobra.Command{
	Use:   "send <wallet>",
	Short: "Send an NFT to an address",
	Long: `Transfer an NFT object owned by the wallet account to an address.

Example:
  ember nft send main --nft 0x... --to 0x...`,
	Args: cobra.ExactArgs(1),
	RunE: runNFTSend,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(nftCmd)
	nftCmd.AddCommand(nftListCmd)
	nftCmd.AddCommand(nftMintCmd)
	nftCmd.AddCommand(nftSendCmd)

	nftListCmd.Flags().Uint32Var(&nftAccount, "account", 0, "account index within the wallet")

	nftMintCmd.Flags().StringVar(&mintName, "name", "", "NFT name")
	nftMintCmd.Flags().StringVar(&mintDesc, "description", "", "NFT description")
	nftMintCmd.Flags().StringVar(&mintURL, "url", "", "NFT image URL")
	nftMintCmd.Flags().Uint32Var(&nftSignAccount, "account", 0, "account index within the wallet")

	nftSendCmd.Flags().StringVar(&nftSendID, "nft", "", "NFT object ID")
	nftSendCmd.Flags().StringVar(&nftSendTo, "to", "", "recipient address")
	nftSendCmd.Flags().Uint32Var(&nftSignAccount, "account", 0, "account index within the wallet")
	_ = nftSendCmd.MarkFlagRequired("nft")
	_ = nftSendCmd.MarkFlagRequired("to")
}

// nftView is the display projection of an owned NFT object.
type nftView struct {
	ObjectID string `json:"objectId"`
	Type     string `json:"type"`
	Name     string `json:"name,omitempty"`
	URL      string `json:"url,omitempty"`
}

func runNFTList(cmd *cobra.Command, args []string) error {
	address, err := resolveAddress(args[0], nftAccount)
	if err != nil {
		return err
	}

	client := nft.NewClient(newNodeClient())
	objects, err := client.ListOwned(cmdContext(cmd), address)
	if err != nil {
		return err
	}

	views := make([]nftView, 0, len(objects))
	for _, obj := range objects {
		fields := obj.Details.Data.Fields
		view := nftView{
			ObjectID: obj.Details.Reference.ObjectID,
			Type:     obj.Details.Data.Type,
		}
		if name, ok := fields["name"].(string); ok {
			view.Name = name
		}
		if url, ok := fields["url"].(string); ok {
			view.URL = url
		}
		views = append(views, view)
	}

	if formatter.Format() == output.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), views)
	}

	w := cmd.OutOrStdout()
	if len(views) == 0 {
		outln(w, "No NFTs found.")
		return nil
	}

	table := output.NewTable("OBJECT ID", "NAME", "URL")
	for _, v := range views {
		table.AddRow(v.ObjectID, v.Name, v.URL)
	}
	return table.Render(w)
}

// nftSigner unlocks the wallet and returns a signer for NFT submissions.
func nftSigner(name string, account uint32) (*signer.RawSigner, error) {
	w, err := unlockWallet(name)
	if err != nil {
		return nil, err
	}

	kp, err := accountKeypair(w, account)
	if err != nil {
		return nil, err
	}

	client := newNodeClient()
	return signer.New(kp, client, client), nil
}

func runNFTMint(cmd *cobra.Command, args []string) error {
	sgn, err := nftSigner(args[0], nftSignAccount)
	if err != nil {
		return err
	}

	client := nft.NewClient(newNodeClient())
	resp, err := client.MintExample(cmdContext(cmd), sgn, mintName, mintDesc, mintURL)
	if err != nil {
		return err
	}

	if formatter.Format() == output.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), resp)
	}

	out(cmd.OutOrStdout(), "NFT minted.\n")
	out(cmd.OutOrStdout(), "Digest: %s\n", resp.Digest())
	return nil
}

func runNFTSend(cmd *cobra.Command, args []string) error {
	if !wallet.IsValidAddress(wallet.NormalizeAddress(nftSendTo)) {
		return emberr.WithSuggestion(emberr.ErrInvalidAddress,
			"recipient must be a 0x-prefixed hex address")
	}

	sgn, err := nftSigner(args[0], nftSignAccount)
	if err != nil {
		return err
	}

	client := nft.NewClient(newNodeClient())
	resp, err := client.Transfer(cmdContext(cmd), sgn, nftSendID,
		wallet.NormalizeAddress(nftSendTo), cfg.Gas.NFTBudget)
	if err != nil {
		return err
	}

	if formatter.Format() == output.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), resp)
	}

	out(cmd.OutOrStdout(), "NFT transfer submitted.\n")
	out(cmd.OutOrStdout(), "Digest: %s\n", resp.Digest())
	return nil
}
