package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"receh48/src/config"
)

func EncryptMessage(key []byte, message string) (string, error) {
	plaintext := []byte(message)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	cipherText := gcm.Seal(nonce, nonce, plaintext, nil)
	encodedString := hex.EncodeToString(cipherText)

	return encodedString, nil
}

func DecryptMessage(key []byte, message string) (*string, error) {
	cipherText, err := hex.DecodeString(message)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(cipherText) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	decryptedData, err := gcm.Open(nil, cipherText[:gcm.NonceSize()], cipherText[gcm.NonceSize():], nil)
	if err != nil {
		return nil, err
	}
	decodedString := string(decryptedData)

	return &decodedString, nil
}

// SealSecret encrypts value with API_SECRET and reports whether it did.
// Without a configured key the value is returned unchanged.
func SealSecret(value string) (string, bool, error) {
	if config.API_SECRET == "" {
		return value, false, nil
	}
	keyBytes, err := hex.DecodeString(config.API_SECRET)
	if err != nil {
		return "", false, err
	}
	enc, err := EncryptMessage(keyBytes, value)
	if err != nil {
		return "", false, err
	}
	return enc, true, nil
}

// OpenSecret reverses SealSecret. A value stored unsealed is returned as is.
func OpenSecret(value string, sealed bool) (string, error) {
	if !sealed {
		return value, nil
	}
	if config.API_SECRET == "" {
		return "", errors.New("API_SECRET is not configured")
	}
	keyBytes, err := hex.DecodeString(config.API_SECRET)
	if err != nil {
		return "", err
	}
	dec, err := DecryptMessage(keyBytes, value)
	if err != nil {
		return "", err
	}
	return *dec, nil
}
