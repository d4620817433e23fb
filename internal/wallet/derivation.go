package wallet

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/emberwallet/ember/internal/chain"
	emberr "github.com/emberwallet/ember/pkg/errors"
)

const (
	// hardenedOffset marks a hardened child index.
	hardenedOffset uint32 = 0x80000000

	// masterKeySalt is the SLIP-0010 HMAC key for the ed25519 curve.
	masterKeySalt = "ed25519 seed"

	// addressLength is the byte length of a derived address.
	addressLength = 20

	// SignatureSchemeFlag is the scheme byte prepended to the public key
	// when hashing it into an address.
	SignatureSchemeFlag byte = 0x00
)

var (
	// ErrInvalidPath indicates a malformed derivation path.
	ErrInvalidPath = errors.New("invalid derivation path")

	// ErrNotHardened indicates a path segment without hardening. The
	// ed25519 scheme only supports hardened derivation.
	ErrNotHardened = errors.New("derivation path segment must be hardened")
)

// Keypair is a derived ed25519 signing key with its public half.
type Keypair struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// PublicKey returns the 32-byte public key.
func (k *Keypair) PublicKey() []byte {
	out := make([]byte, len(k.pub))
	copy(out, k.pub)
	return out
}

// PublicKeyHex returns the public key as 0x-prefixed hex.
func (k *Keypair) PublicKeyHex() string {
	return "0x" + hex.EncodeToString(k.pub)
}

// Sign signs arbitrary bytes with the private key.
func (k *Keypair) Sign(data []byte) []byte {
	return ed25519.Sign(k.priv, data)
}

// Address returns the canonical prefixed-hex address of the key pair.
func (k *Keypair) Address() string {
	return AccountAddress(k.pub)
}

// Zero wipes the private key material.
func (k *Keypair) Zero() {
	ZeroBytes(k.priv)
}

// DerivationPath returns the fixed path template for an account index.
// Coin-type and change/address-index segments are constants; only the
// account segment varies.
func DerivationPath(index uint32) string {
	return fmt.Sprintf("m/44'/%d'/%d'/0'/0'", chain.BIP44CoinType, index)
}

// DeriveKeypair derives an ed25519 key pair from a mnemonic and a
// derivation path using SLIP-0010. All path segments must be hardened.
func DeriveKeypair(mnemonic, path string) (*Keypair, error) {
	seed, err := MnemonicToSeed(mnemonic, "")
	if err != nil {
		return nil, err
	}
	defer ZeroBytes(seed)

	indices, err := parsePath(path)
	if err != nil {
		return nil, err
	}

	key, chainCode := masterKeyFromSeed(seed)
	for _, index := range indices {
		key, chainCode = deriveChild(key, chainCode, index)
	}
	defer ZeroBytes(chainCode)

	priv := ed25519.NewKeyFromSeed(key)
	ZeroBytes(key)

	pub, ok := priv.Public().(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected public key type", ErrInvalidPath)
	}

	return &Keypair{priv: priv, pub: pub}, nil
}

// KeypairFromSeed builds a key pair directly from a raw 32-byte ed25519
// seed, bypassing mnemonic derivation. The caller keeps ownership of seed.
func KeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, emberr.WithDetails(emberr.ErrInvalidInput, map[string]string{
			"expected_bytes": strconv.Itoa(ed25519.SeedSize),
			"got_bytes":      strconv.Itoa(len(seed)),
		})
	}

	priv := ed25519.NewKeyFromSeed(seed)
	pub, ok := priv.Public().(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("unexpected public key type %T", priv.Public())
	}
	return &Keypair{priv: priv, pub: pub}, nil
}

// DeriveAccount derives the account record at the given index.
func DeriveAccount(mnemonic string, index uint32) (*Account, error) {
	path := DerivationPath(index)
	kp, err := DeriveKeypair(mnemonic, path)
	if err != nil {
		return nil, fmt.Errorf("deriving account %d: %w", index, err)
	}
	defer kp.Zero()

	return &Account{
		DerivationPath: path,
		Address:        kp.Address(),
		PublicKey:      kp.PublicKeyHex(),
	}, nil
}

// AccountAddress derives the canonical prefixed-hex address from a public
// key: SHA3-256 over the scheme flag and key bytes, truncated to 20 bytes.
// The hex form is fixed-width, so leading zero bytes are preserved.
func AccountAddress(publicKey []byte) string {
	buf := make([]byte, 0, 1+len(publicKey))
	buf = append(buf, SignatureSchemeFlag)
	buf = append(buf, publicKey...)

	digest := sha3.Sum256(buf)
	return "0x" + hex.EncodeToString(digest[:addressLength])
}

// NormalizeAddress ensures an address carries the 0x prefix.
func NormalizeAddress(address string) string {
	if strings.HasPrefix(address, "0x") {
		return address
	}
	return "0x" + address
}

// IsValidAddress checks the canonical address form: 0x followed by 40 hex
// characters.
func IsValidAddress(address string) bool {
	if len(address) != 2+addressLength*2 || !strings.HasPrefix(address, "0x") {
		return false
	}
	_, err := hex.DecodeString(address[2:])
	return err == nil
}

// masterKeyFromSeed computes the SLIP-0010 master key and chain code.
func masterKeyFromSeed(seed []byte) (key, chainCode []byte) {
	mac := hmac.New(sha512.New, []byte(masterKeySalt))
	mac.Write(seed)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}

// deriveChild computes a hardened SLIP-0010 child key.
func deriveChild(key, chainCode []byte, index uint32) (childKey, childChain []byte) {
	data := make([]byte, 0, 1+len(key)+4)
	data = append(data, 0x00)
	data = append(data, key...)
	data = binary.BigEndian.AppendUint32(data, index)

	mac := hmac.New(sha512.New, chainCode)
	mac.Write(data)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}

// parsePath parses a path like m/44'/784'/0'/0'/0' into hardened indices.
func parsePath(path string) ([]uint32, error) {
	segments := strings.Split(path, "/")
	if len(segments) < 2 || segments[0] != "m" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	indices := make([]uint32, 0, len(segments)-1)
	for _, seg := range segments[1:] {
		if !strings.HasSuffix(seg, "'") {
			return nil, fmt.Errorf("%w: %q", ErrNotHardened, seg)
		}
		n, err := strconv.ParseUint(strings.TrimSuffix(seg, "'"), 10, 31)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, seg)
		}
		indices = append(indices, uint32(n)+hardenedOffset)
	}
	return indices, nil
}

// ZeroBytes zeros out a byte slice.
func ZeroBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}
