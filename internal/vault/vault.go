// Package vault implements the credential encryption scheme: PBKDF2 key
// derivation from the master secret and AES-256-CBC encryption of stored
// credentials. The master secret itself is never persisted, only the
// verification hash and the per-user salt.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"

	"github.com/mzaytsev/passguard/internal/common"
)

const (
	iterations = 100_000
	hashLen    = 64
	keyLen     = 32
	saltBytes  = 32
	ivLen      = aes.BlockSize
)

// GenerateSalt returns a fresh per-user salt, hex-encoded.
func GenerateSalt() string {
	return hex.EncodeToString(common.GenerateRandByteArray(saltBytes))
}

// HashMaster derives the verification hash of the master secret:
// PBKDF2-HMAC-SHA256, 100000 iterations, 64 bytes, hex-encoded. The salt is
// consumed as its hex string, matching the stored representation.
func HashMaster(secret, salt string) string {
	dk := pbkdf2.Key([]byte(secret), []byte(salt), iterations, hashLen, sha256.New)
	return hex.EncodeToString(dk)
}

// DeriveKey derives the 32-byte AES-256 key from the master secret. Same
// KDF parameters as HashMaster except the output length, so the stored hash
// never reveals the encryption key.
func DeriveKey(secret, salt string) []byte {
	return pbkdf2.Key([]byte(secret), []byte(salt), iterations, keyLen, sha256.New)
}

// Verify checks a master secret against the stored hash in constant time.
func Verify(secret, salt, storedHash string) bool {
	computed := HashMaster(secret, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

// Encrypt encrypts a credential under the key derived from the master
// secret and returns base64(IV || ciphertext) with a fresh random IV.
func Encrypt(plain, master, salt string) (string, error) {
	if master == "" {
		return "", common.ErrorSecretUnavailable
	}

	block, err := aes.NewCipher(DeriveKey(master, salt))
	if err != nil {
		return "", err
	}

	iv := common.GenerateRandByteArray(ivLen)
	padded := pad([]byte(plain))

	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)

	return base64.StdEncoding.EncodeToString(append(iv, ct...)), nil
}

// Decrypt reverses Encrypt. Any malformed input, wrong key or bad padding
// yields ErrorDecryptionFailed; callers treat it as a recoverable per-item
// failure, not a fatal one.
func Decrypt(encrypted, master, salt string) (string, error) {
	if master == "" {
		return "", common.ErrorSecretUnavailable
	}

	data, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", common.ErrorDecryptionFailed
	}
	if len(data) < ivLen || (len(data)-ivLen)%aes.BlockSize != 0 || len(data) == ivLen {
		return "", common.ErrorDecryptionFailed
	}

	block, err := aes.NewCipher(DeriveKey(master, salt))
	if err != nil {
		return "", common.ErrorDecryptionFailed
	}

	iv, ct := data[:ivLen], data[ivLen:]
	plain := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ct)

	unpadded, ok := unpad(plain)
	if !ok {
		return "", common.ErrorDecryptionFailed
	}
	return string(unpadded), nil
}

// pad applies PKCS#7 padding to a whole number of AES blocks.
func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	padded := make([]byte, len(b)+n)
	copy(padded, b)
	for i := len(b); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func unpad(b []byte) ([]byte, bool) {
	if len(b) == 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, false
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, false
		}
	}
	return b[:len(b)-n], true
}
