package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
)

// LoadOrGenerateKey loads the signing key from path, or generates an
// ephemeral 2048-bit key when no path is configured. Ephemeral keys are
// for development only: tokens do not survive a restart.
func LoadOrGenerateKey(path string) (*rsa.PrivateKey, error) {
	if path == "" {
		return rsa.GenerateKey(rand.Reader, 2048)
	}
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadRSAPrivateKeyFromPEM(pemBytes)
}

// LoadRSAPrivateKeyFromPEM decodes a PEM block and returns an RSA private key.
func LoadRSAPrivateKeyFromPEM(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("failed to decode PEM block")
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		key2, err2 := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err2 != nil {
			return nil, err
		}
		var ok bool
		key, ok = key2.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("PEM is not an RSA private key")
		}
	}
	return key, nil
}
