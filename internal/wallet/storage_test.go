package wallet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwallet/ember/internal/embercrypto"
)

func TestMain(m *testing.M) {
	embercrypto.SetScryptWorkFactor(10) // Fast for tests
	m.Run()
}

func newTestWallet(t *testing.T, name string) *Wallet {
	t.Helper()
	w, err := NewWallet(name, testMnemonic)
	require.NoError(t, err)
	acct, err := DeriveAccount(testMnemonic, 0)
	require.NoError(t, err)
	w.Accounts = append(w.Accounts, *acct)
	return w
}

func TestFileStorageRoundTrip(t *testing.T) {
	t.Parallel()
	store := NewFileStorage(t.TempDir())
	w := newTestWallet(t, "main")

	require.NoError(t, store.Save(w, []byte("hunter2")))

	loaded, err := store.Load("main", []byte("hunter2"))
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, loaded.Mnemonic)
	assert.Equal(t, w.Accounts, loaded.Accounts)
	assert.Equal(t, CurrentVersion, loaded.Version)
}

func TestFileStorageWrongPassword(t *testing.T) {
	t.Parallel()
	store := NewFileStorage(t.TempDir())
	require.NoError(t, store.Save(newTestWallet(t, "main"), []byte("hunter2")))

	_, err := store.Load("main", []byte("wrong"))
	require.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestFileStorageDuplicateSave(t *testing.T) {
	t.Parallel()
	store := NewFileStorage(t.TempDir())
	require.NoError(t, store.Save(newTestWallet(t, "main"), []byte("pw")))
	require.ErrorIs(t, store.Save(newTestWallet(t, "main"), []byte("pw")), ErrWalletExists)
}

func TestFileStorageListAndDelete(t *testing.T) {
	t.Parallel()
	store := NewFileStorage(t.TempDir())

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, store.Save(newTestWallet(t, "alpha"), []byte("pw")))
	require.NoError(t, store.Save(newTestWallet(t, "beta"), []byte("pw")))

	names, err = store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "beta"}, names)

	require.NoError(t, store.Delete("alpha"))
	exists, err := store.Exists("alpha")
	require.NoError(t, err)
	assert.False(t, exists)

	require.ErrorIs(t, store.Delete("alpha"), ErrWalletNotFound)
}

func TestFileStorageLoadMetadata(t *testing.T) {
	t.Parallel()
	store := NewFileStorage(t.TempDir())
	w := newTestWallet(t, "main")
	require.NoError(t, store.Save(w, []byte("hunter2")))

	meta, err := store.LoadMetadata("main")
	require.NoError(t, err)
	assert.Empty(t, meta.Mnemonic)
	assert.Equal(t, w.Accounts, meta.Accounts)

	_, err = store.LoadMetadata("nope")
	require.ErrorIs(t, err, ErrWalletNotFound)
}

func TestFileStorageMissingWalletKey(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := NewFileStorage(dir)

	// A wallet file without the "wallet" key must error, not return nil.
	path := filepath.Join(dir, "broken"+walletFileExtension)
	require.NoError(t, os.WriteFile(path, []byte(`{}`), walletFilePermissions))

	_, err := store.Load("broken", []byte("pw"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing wallet file")

	_, err = store.LoadMetadata("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing wallet file")
}

func TestFileStorageLoadMissing(t *testing.T) {
	t.Parallel()
	store := NewFileStorage(t.TempDir())
	_, err := store.Load("missing", []byte("pw"))
	require.ErrorIs(t, err, ErrWalletNotFound)
}

func TestFileStorageInvalidName(t *testing.T) {
	t.Parallel()
	store := NewFileStorage(t.TempDir())
	_, err := store.Load("../escape", []byte("pw"))
	require.ErrorIs(t, err, ErrInvalidWalletName)
}

func TestValidateWalletName(t *testing.T) {
	t.Parallel()
	require.NoError(t, ValidateWalletName("main-wallet_01"))
	require.Error(t, ValidateWalletName(""))
	require.Error(t, ValidateWalletName("has space"))
	require.Error(t, ValidateWalletName("path/traversal"))
}

func TestWalletHelpers(t *testing.T) {
	t.Parallel()
	w := newTestWallet(t, "main")
	require.NotNil(t, w.PrimaryAccount())
	assert.Equal(t, w.Accounts[0].Address, w.PrimaryAccount().Address)
	assert.Equal(t, []string{w.Accounts[0].Address}, w.Addresses())

	empty := &Wallet{}
	assert.Nil(t, empty.PrimaryAccount())
}
