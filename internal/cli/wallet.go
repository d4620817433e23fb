package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emberwallet/ember/internal/output"
	walletsvc "github.com/emberwallet/ember/internal/service/wallet"
	"github.com/emberwallet/ember/internal/wallet"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// createMnemonic is an optional mnemonic for wallet creation.
	createMnemonic string
	// importMnemonic is the mnemonic for wallet import.
	importMnemonic string
)

// walletCmd is the parent command for wallet operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage wallets",
	Long:  `Create, import, list, and inspect HD wallets.`,
}

// walletCreateCmd creates a new wallet.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new HD wallet",
	Long: `Create a new HD wallet with a BIP39 mnemonic phrase.

The mnemonic will be displayed once - write it down and store it securely.
You will be prompted for a password to encrypt the wallet file.

Example:
  ember wallet create main`,
	Args: cobra.ExactArgs(1),
	RunE: runWalletCreate,
}

// walletImportCmd imports a wallet from a mnemonic and discovers its
// active accounts on the network.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletImportCmd = &cobra.Command{
	Use:   "import <name>",
	Short: "Import a wallet from a mnemonic",
	Long: `Import a wallet from a BIP39 mnemonic phrase.

Accounts are discovered by checking the network for owned objects at
each derivation index, stopping at the first inactive index.

Example:
  ember wallet import backup --mnemonic "abandon abandon ... about"
  ember wallet import backup  # Interactive mode`,
	Args: cobra.ExactArgs(1),
	RunE: runWalletImport,
}

// walletListCmd lists all wallets.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all wallets",
	Long: `List all wallets in the ember data directory.

Example:
  ember wallet list
  ember wallet list -o json`,
	Aliases: []string{"ls"},
	RunE:    runWalletList,
}

// walletShowCmd shows wallet details.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show wallet details",
	Long: `Show details for a specific wallet including all derived accounts.

Account metadata is stored in the clear, so no password is required.

Example:
  ember wallet show main`,
	Args: cobra.ExactArgs(1),
	RunE: runWalletShow,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletCreateCmd)
	walletCmd.AddCommand(walletImportCmd)
	walletCmd.AddCommand(walletListCmd)
	walletCmd.AddCommand(walletShowCmd)

	walletCreateCmd.Flags().StringVar(&createMnemonic, "mnemonic", "", "use an existing mnemonic instead of generating one")
	walletImportCmd.Flags().StringVar(&importMnemonic, "mnemonic", "", "BIP39 mnemonic phrase (prompted if omitted)")
}

// validateNewWalletName checks the name and that no wallet exists under it.
func validateNewWalletName(name string, storage *wallet.FileStorage) error {
	if err := wallet.ValidateWalletName(name); err != nil {
		return err
	}

	exists, err := storage.Exists(name)
	if err != nil {
		return err
	}
	if exists {
		return emberr.WithSuggestion(
			wallet.ErrWalletExists,
			fmt.Sprintf("wallet '%s' already exists. Choose a different name or delete the existing wallet.", name),
		)
	}
	return nil
}

// saveWalletWithPassword prompts for an encryption password and persists
// the wallet.
func saveWalletWithPassword(w *wallet.Wallet, storage *wallet.FileStorage) error {
	password, err := promptNewPasswordFn()
	if err != nil {
		return err
	}
	defer wallet.ZeroBytes(password)

	return storage.Save(w, password)
}

func runWalletCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	storage := walletStorage()

	if err := validateNewWalletName(name, storage); err != nil {
		return err
	}

	svc := walletsvc.NewService(nil, maxAccounts())
	w, err := svc.CreateWallet(cmdContext(cmd), createMnemonic)
	if err != nil {
		return err
	}
	w.Name = name

	if err := saveWalletWithPassword(w, storage); err != nil {
		return err
	}

	displayMnemonic(w.Mnemonic, cmd)
	displayWalletAccounts(w, cmd)

	outln(cmd.OutOrStdout())
	out(cmd.OutOrStdout(), "Wallet '%s' created successfully.\n", name)

	return nil
}

func runWalletImport(cmd *cobra.Command, args []string) error {
	name := args[0]
	storage := walletStorage()

	if err := validateNewWalletName(name, storage); err != nil {
		return err
	}

	mnemonic := importMnemonic
	if mnemonic == "" {
		var err error
		mnemonic, err = promptMnemonicFn()
		if err != nil {
			return err
		}
	}

	displayDetectedTypos(mnemonic, cmd)

	svc := walletsvc.NewService(newNodeClient(), maxAccounts())
	w, err := svc.ImportWallet(cmdContext(cmd), mnemonic)
	if err != nil {
		return err
	}
	w.Name = name

	if err := saveWalletWithPassword(w, storage); err != nil {
		return err
	}

	displayWalletAccounts(w, cmd)

	outln(cmd.OutOrStdout())
	out(cmd.OutOrStdout(), "Wallet '%s' imported with %d account(s).\n", name, len(w.Accounts))

	return nil
}

func runWalletList(cmd *cobra.Command, _ []string) error {
	names, err := walletStorage().List()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if formatter.Format() == output.FormatJSON {
		if names == nil {
			names = []string{}
		}
		return writeJSON(w, names)
	}

	if len(names) == 0 {
		outln(w, "No wallets found.")
		outln(w, "Create one with: ember wallet create <name>")
		return nil
	}

	outln(w, "Wallets:")
	for _, name := range names {
		out(w, "  %s\n", name)
	}
	return nil
}

func runWalletShow(cmd *cobra.Command, args []string) error {
	w, err := loadWalletMetadata(args[0])
	if err != nil {
		return err
	}

	if formatter.Format() == output.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), w)
	}

	displayWalletText(w, cmd)
	return nil
}

// displayMnemonic shows the mnemonic phrase with formatting.
func displayMnemonic(mnemonic string, cmd *cobra.Command) {
	w := cmd.OutOrStdout()
	outln(w)
	outln(w, "═══════════════════════════════════════════════════════════════")
	outln(w, "                    RECOVERY PHRASE")
	outln(w, "═══════════════════════════════════════════════════════════════")
	outln(w)
	outln(w, "Write down these words in order and store them securely.")
	outln(w, "This is the ONLY way to recover your wallet.")
	outln(w)

	words := strings.Fields(mnemonic)
	for i, word := range words {
		out(w, "%2d. %s\n", i+1, word)
	}

	outln(w)
	outln(w, "═══════════════════════════════════════════════════════════════")
	outln(w)
}

// displayWalletAccounts shows the derived account addresses.
func displayWalletAccounts(wlt *wallet.Wallet, cmd *cobra.Command) {
	w := cmd.OutOrStdout()
	outln(w, "Accounts:")
	for i, acct := range wlt.Accounts {
		out(w, "  [%d] %s\n", i, acct.Address)
	}
}

// displayWalletText shows wallet details in text format.
func displayWalletText(wlt *wallet.Wallet, cmd *cobra.Command) {
	w := cmd.OutOrStdout()
	out(w, "Wallet: %s\n", wlt.Name)
	out(w, "Created: %s\n", wlt.CreatedAt.Format("2006-01-02 15:04:05"))
	out(w, "Version: %d\n", wlt.Version)
	outln(w)
	outln(w, "Accounts:")
	for i, acct := range wlt.Accounts {
		out(w, "  [%d] %s\n", i, acct.Address)
		out(w, "      Path: %s\n", acct.DerivationPath)
	}
}

// displayDetectedTypos shows any typos found in the mnemonic.
func displayDetectedTypos(mnemonic string, cmd *cobra.Command) {
	typos := wallet.DetectTypos(mnemonic)
	if len(typos) == 0 {
		return
	}

	w := cmd.OutOrStdout()
	outln(w, "\nPossible typos detected:")
	for _, typo := range typos {
		if typo.Suggestion != "" {
			out(w, "  Word %d: '%s' - did you mean '%s'?\n", typo.Index+1, typo.Word, typo.Suggestion)
		} else {
			out(w, "  Word %d: '%s' is not a valid BIP39 word\n", typo.Index+1, typo.Word)
		}
	}
	outln(w)
}
