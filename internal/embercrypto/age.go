// Package embercrypto wraps the age encryption primitives used for wallet
// files.
package embercrypto

import (
	"bytes"
	"io"
	"sync/atomic"

	"filippo.io/age"
)

var workFactor atomic.Int32

// SetScryptWorkFactor overrides the scrypt work factor. Tests lower it to
// keep encryption fast; zero restores the default.
func SetScryptWorkFactor(factor int) {
	workFactor.Store(int32(factor))
}

// Encrypt encrypts plaintext using age with a password-based recipient.
func Encrypt(plaintext []byte, password string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(password)
	if err != nil {
		return nil, err
	}
	if f := workFactor.Load(); f > 0 {
		recipient.SetWorkFactor(int(f))
	}

	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(plaintext); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decrypt decrypts ciphertext using age with a password-based identity.
func Decrypt(ciphertext []byte, password string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return nil, err
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, err
	}

	return io.ReadAll(r)
}
