package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMnemonic is the standard BIP39 test vector phrase.
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestGenerateMnemonic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		wordCount int
		wantErr   bool
	}{
		{"12 words", 12, false},
		{"24 words", 24, false},
		{"invalid 15", 15, true},
		{"invalid 0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mnemonic, err := GenerateMnemonic(tt.wordCount)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, strings.Fields(mnemonic), tt.wordCount)
			require.NoError(t, ValidateMnemonic(mnemonic))
		})
	}
}

func TestGenerateMnemonicUnique(t *testing.T) {
	t.Parallel()
	a, err := GenerateMnemonic(12)
	require.NoError(t, err)
	b, err := GenerateMnemonic(12)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestValidateMnemonic(t *testing.T) {
	t.Parallel()
	require.NoError(t, ValidateMnemonic(testMnemonic))

	// Bad checksum: last word changed
	bad := strings.Replace(testMnemonic, "about", "abandon", 1)
	require.Error(t, ValidateMnemonic(bad))

	require.Error(t, ValidateMnemonic(""))
	require.Error(t, ValidateMnemonic("one two three"))
}

func TestNormalizeMnemonicInput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "alpha beta", "alpha beta"},
		{"uppercase", "ALPHA Beta", "alpha beta"},
		{"extra spaces", "  alpha   beta\t", "alpha beta"},
		{"commas", "alpha,beta", "alpha beta"},
		{"numbered list", "1. alpha\n2) beta", "alpha beta"},
		{"bullets", "- alpha\n* beta", "alpha beta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, NormalizeMnemonicInput(tt.input))
		})
	}
}

func TestMnemonicToSeed(t *testing.T) {
	t.Parallel()
	seed, err := MnemonicToSeed(testMnemonic, "")
	require.NoError(t, err)
	assert.Len(t, seed, 64)

	// A passphrase changes the seed.
	withPass, err := MnemonicToSeed(testMnemonic, "extra")
	require.NoError(t, err)
	assert.NotEqual(t, seed, withPass)

	_, err = MnemonicToSeed("not a mnemonic", "")
	require.Error(t, err)
}

func TestSuggestWord(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abandon", SuggestWord("abandom"))
	assert.Equal(t, "about", SuggestWord("ABOUT"))
	assert.Empty(t, SuggestWord("zzzzzzzzzz"))
}

func TestDetectTypos(t *testing.T) {
	t.Parallel()
	assert.Nil(t, DetectTypos(""))
	assert.Empty(t, DetectTypos(testMnemonic))

	typos := DetectTypos("abandon abandom about")
	require.Len(t, typos, 1)
	assert.Equal(t, 1, typos[0].Index)
	assert.Equal(t, "abandom", typos[0].Word)
	assert.Equal(t, "abandon", typos[0].Suggestion)
	assert.Equal(t, 1, typos[0].Distance)
}
