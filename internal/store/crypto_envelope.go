package store

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const (
	// The current supported version of the encrypted vault format stored on disk.
	vaultFormatVersion = 1
	saltSize           = 16
)

// ScryptParams are the key-derivation tunables persisted alongside the salt.
type ScryptParams struct {
	N int `yaml:"n"`
	R int `yaml:"r"`
	P int `yaml:"p"`
}

// DefaultScryptParams returns the interactive-login scrypt parameters.
func DefaultScryptParams() ScryptParams { return ScryptParams{N: 1 << 15, R: 8, P: 1} }

// sealedVault is the on-disk JSON structure holding the ciphertext and KDF parameters.
type sealedVault struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

func newSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// deriveKey stretches passphrase into an XChaCha20-Poly1305 key.
func deriveKey(passphrase string, salt []byte, p ScryptParams) ([]byte, error) {
	return scrypt.Key([]byte(passphrase), salt, p.N, p.R, p.P, chacha20poly1305.KeySize)
}

// seal encrypts raw under key with a fresh random nonce; the salt is bound as
// associated data.
func seal(key, salt []byte, p ScryptParams, raw []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	ct := aead.Seal(nil, nonce, raw, salt)

	return json.Marshal(sealedVault{
		V:      vaultFormatVersion,
		Salt:   salt,
		N:      p.N,
		R:      p.R,
		P:      p.P,
		Nonce:  nonce,
		Cipher: ct,
	})
}

// parseSealed decodes the envelope without decrypting it.
func parseSealed(b []byte) (sealedVault, error) {
	var sv sealedVault
	if err := json.Unmarshal(b, &sv); err != nil {
		return sealedVault{}, err
	}
	if sv.V > vaultFormatVersion {
		return sealedVault{}, fmt.Errorf("unsupported vault version %d", sv.V)
	}
	return sv, nil
}

// unseal opens the envelope with key.
func unseal(key []byte, sv sealedVault) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, sv.Nonce, sv.Cipher, sv.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}
