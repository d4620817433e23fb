package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/emberwallet/ember/internal/chain"
	"github.com/emberwallet/ember/internal/chain/sui"
	"github.com/emberwallet/ember/internal/wallet"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

// newNodeClient builds a fullnode client from the loaded configuration.
func newNodeClient() *sui.Client {
	retryCfg := chain.RetryConfig{
		MaxAttempts: cfg.Transport.RetryAttempts,
		BaseDelay:   time.Duration(cfg.Transport.RetryBaseMs) * time.Millisecond,
		MaxDelay:    time.Duration(cfg.Transport.RetryMaxMs) * time.Millisecond,
	}

	return sui.NewClient(cfg.Network.NodeURL, &sui.ClientOptions{
		FaucetURL: cfg.Network.FaucetURL,
		HTTPClient: &http.Client{
			Timeout: time.Duration(cfg.Transport.TimeoutSeconds) * time.Second,
		},
		RetryConfig: &retryCfg,
		RateLimiter: chain.NewRateLimiter(cfg.Transport.RatePerSecond, cfg.Transport.RateBurst),
	})
}

// maxAccounts returns the configured derivation bound; non-positive
// values select the platform default.
func maxAccounts() uint32 {
	if cfg.Derivation.MaxAccounts <= 0 {
		return 0
	}
	return uint32(cfg.Derivation.MaxAccounts)
}

// walletStorage returns the wallet store rooted at the configured home.
func walletStorage() *wallet.FileStorage {
	return wallet.NewFileStorage(cfg.WalletDir())
}

// loadWalletMetadata reads cleartext wallet metadata, mapping a missing
// wallet to a suggestion.
func loadWalletMetadata(name string) (*wallet.Wallet, error) {
	w, err := walletStorage().LoadMetadata(name)
	if emberr.Is(err, wallet.ErrWalletNotFound) {
		return nil, emberr.WithSuggestion(err,
			fmt.Sprintf("wallet '%s' not found. List wallets with: ember wallet list", name))
	}
	return w, err
}

// unlockWallet prompts for the wallet password and decrypts the wallet.
func unlockWallet(name string) (*wallet.Wallet, error) {
	exists, err := walletStorage().Exists(name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, emberr.WithSuggestion(
			wallet.ErrWalletNotFound,
			fmt.Sprintf("wallet '%s' not found. List wallets with: ember wallet list", name),
		)
	}

	password, err := promptPasswordFn("Enter wallet password: ")
	if err != nil {
		return nil, err
	}
	defer wallet.ZeroBytes(password)

	return walletStorage().Load(name, password)
}

// accountKeypair derives the signing keypair for the wallet account at
// the given index.
func accountKeypair(w *wallet.Wallet, index uint32) (*wallet.Keypair, error) {
	if int(index) >= len(w.Accounts) {
		return nil, emberr.WithDetails(emberr.ErrInvalidInput, map[string]string{
			"account":  fmt.Sprintf("%d", index),
			"accounts": fmt.Sprintf("%d", len(w.Accounts)),
		})
	}
	return wallet.DeriveKeypair(w.Mnemonic, w.Accounts[index].DerivationPath)
}

// accountAddress returns the address of the wallet account at the given
// index without needing the mnemonic.
func accountAddress(w *wallet.Wallet, index uint32) (string, error) {
	if int(index) >= len(w.Accounts) {
		return "", emberr.WithDetails(emberr.ErrInvalidInput, map[string]string{
			"account":  fmt.Sprintf("%d", index),
			"accounts": fmt.Sprintf("%d", len(w.Accounts)),
		})
	}
	return w.Accounts[index].Address, nil
}

// cmdContext returns the command's context for provider calls.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
