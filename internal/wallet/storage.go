package wallet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/emberwallet/ember/internal/embercrypto"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

const (
	// walletFileExtension is the extension for wallet files.
	walletFileExtension = ".wallet"

	// walletFilePermissions is the permission mode for wallet files.
	walletFilePermissions = 0o600

	// walletDirPermissions is the permission mode for the wallets directory.
	walletDirPermissions = 0o750
)

// ErrDecryptionFailed indicates decryption failed (wrong password or corrupted file).
var ErrDecryptionFailed = emberr.ErrDecryptionFailed

// Storage defines the interface for wallet persistence.
type Storage interface {
	// Save encrypts and writes a wallet to storage.
	// The password should be zeroed by the caller after this call returns.
	Save(wallet *Wallet, password []byte) error

	// Load reads and decrypts a wallet from storage, mnemonic included.
	Load(name string, password []byte) (*Wallet, error)

	// LoadMetadata reads the cleartext wallet metadata without decrypting
	// the mnemonic.
	LoadMetadata(name string) (*Wallet, error)

	// Exists checks if a wallet exists.
	Exists(name string) (bool, error)

	// List returns all wallet names.
	List() ([]string, error)

	// Delete removes a wallet file.
	Delete(name string) error
}

// walletFile is the on-disk wallet structure. Account metadata is stored
// in the clear; the mnemonic only inside the age ciphertext.
type walletFile struct {
	Wallet            *Wallet `json:"wallet"`
	EncryptedMnemonic []byte  `json:"encrypted_mnemonic"`
}

// FileStorage implements Storage using the filesystem.
type FileStorage struct {
	basePath string
}

// NewFileStorage creates a new file-based storage rooted at basePath.
func NewFileStorage(basePath string) *FileStorage {
	return &FileStorage{basePath: basePath}
}

// Save encrypts and writes a wallet to storage.
func (s *FileStorage) Save(wallet *Wallet, password []byte) error {
	if err := ValidateWalletName(wallet.Name); err != nil {
		return err
	}

	exists, err := s.Exists(wallet.Name)
	if err != nil {
		return fmt.Errorf("checking wallet existence: %w", err)
	}
	if exists {
		return ErrWalletExists
	}

	if err := os.MkdirAll(s.basePath, walletDirPermissions); err != nil {
		return fmt.Errorf("creating wallet directory: %w", err)
	}

	encrypted, err := embercrypto.Encrypt([]byte(wallet.Mnemonic), string(password))
	if err != nil {
		return fmt.Errorf("encrypting mnemonic: %w", err)
	}

	wf := walletFile{
		Wallet:            wallet,
		EncryptedMnemonic: encrypted,
	}

	data, err := json.MarshalIndent(wf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling wallet: %w", err)
	}

	if err := os.WriteFile(s.walletPath(wallet.Name), data, walletFilePermissions); err != nil {
		return fmt.Errorf("writing wallet file: %w", err)
	}

	return nil
}

// Load reads and decrypts a wallet from storage.
func (s *FileStorage) Load(name string, password []byte) (*Wallet, error) {
	if err := ValidateWalletName(name); err != nil {
		return nil, err
	}

	walletPath := s.walletPath(name)
	if _, err := os.Stat(walletPath); os.IsNotExist(err) {
		return nil, ErrWalletNotFound
	}

	// Path is restricted by ValidateWalletName to [a-zA-Z0-9_-]{1,64}
	// plus a fixed extension under basePath.
	//nolint:gosec // G304
	data, err := os.ReadFile(walletPath)
	if err != nil {
		return nil, fmt.Errorf("reading wallet file: %w", err)
	}

	var wf walletFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parsing wallet file: %w", err)
	}
	if wf.Wallet == nil {
		return nil, fmt.Errorf("parsing wallet file: missing wallet metadata")
	}

	mnemonic, err := embercrypto.Decrypt(wf.EncryptedMnemonic, string(password))
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	wallet := wf.Wallet
	wallet.Mnemonic = string(mnemonic)
	ZeroBytes(mnemonic)
	return wallet, nil
}

// LoadMetadata reads the cleartext wallet metadata without decrypting the
// mnemonic. The returned wallet has no mnemonic set and cannot sign.
func (s *FileStorage) LoadMetadata(name string) (*Wallet, error) {
	if err := ValidateWalletName(name); err != nil {
		return nil, err
	}

	walletPath := s.walletPath(name)
	if _, err := os.Stat(walletPath); os.IsNotExist(err) {
		return nil, ErrWalletNotFound
	}

	//nolint:gosec // G304: path restricted by ValidateWalletName
	data, err := os.ReadFile(walletPath)
	if err != nil {
		return nil, fmt.Errorf("reading wallet file: %w", err)
	}

	var wf walletFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parsing wallet file: %w", err)
	}
	if wf.Wallet == nil {
		return nil, fmt.Errorf("parsing wallet file: missing wallet metadata")
	}

	return wf.Wallet, nil
}

// Exists checks if a wallet exists.
func (s *FileStorage) Exists(name string) (bool, error) {
	if err := ValidateWalletName(name); err != nil {
		return false, err
	}

	_, err := os.Stat(s.walletPath(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns all wallet names.
func (s *FileStorage) List() ([]string, error) {
	if err := os.MkdirAll(s.basePath, walletDirPermissions); err != nil {
		return nil, fmt.Errorf("creating wallet directory: %w", err)
	}

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("reading wallet directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), walletFileExtension); ok {
			names = append(names, name)
		}
	}

	return names, nil
}

// Delete removes a wallet file.
func (s *FileStorage) Delete(name string) error {
	if err := ValidateWalletName(name); err != nil {
		return err
	}

	walletPath := s.walletPath(name)
	if _, err := os.Stat(walletPath); os.IsNotExist(err) {
		return ErrWalletNotFound
	}

	if err := os.Remove(walletPath); err != nil {
		return fmt.Errorf("removing wallet file: %w", err)
	}

	return nil
}

// walletPath returns the file path for a wallet name.
func (s *FileStorage) walletPath(name string) string {
	return filepath.Join(s.basePath, name+walletFileExtension)
}
