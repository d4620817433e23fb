package config

import "github.com/emberwallet/ember/internal/chain"

// Default devnet endpoints.
const (
	DefaultNodeURL   = "https://fullnode.devnet.sui.io"
	DefaultFaucetURL = "https://faucet.devnet.sui.io/gas"
)

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.ember",
		Network: NetworkConfig{
			Name:      "devnet",
			NodeURL:   DefaultNodeURL,
			FaucetURL: DefaultFaucetURL,
		},
		Gas: GasConfig{
			TransferBudget: chain.DefaultGasBudget,
			NFTBudget:      chain.DefaultNFTGasBudget,
		},
		Derivation: DerivationConfig{
			MaxAccounts: chain.MaxAccounts,
		},
		Transport: TransportConfig{
			RetryAttempts:  4,
			RetryBaseMs:    1000,
			RetryMaxMs:     4000,
			RatePerSecond:  10,
			RateBurst:      20,
			TimeoutSeconds: 30,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.ember/ember.log",
		},
	}
}
