package crypto

import (
	stdcrypto "crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/pkcs12"
)

var (
	ErrMissing     = errors.New("signing material missing")
	ErrInvalidKey  = errors.New("unsupported private key")
	ErrKeyMismatch = errors.New("private key does not match certificate")
)

// SigningIdentity — сертификат Pass Type ID, ключ и промежуточный WWDR
type SigningIdentity struct {
	Certificate   *x509.Certificate
	PrivateKey    stdcrypto.Signer
	Intermediates []*x509.Certificate
}

// Complete — все ли части на месте для подписи
func (id *SigningIdentity) Complete() bool {
	return id != nil && id.Certificate != nil && id.PrivateKey != nil && len(id.Intermediates) > 0
}

// TLSCertificate — та же пара для клиентской TLS-аутентификации в APNs
func (id *SigningIdentity) TLSCertificate() tls.Certificate {
	chain := [][]byte{id.Certificate.Raw}
	for _, c := range id.Intermediates {
		chain = append(chain, c.Raw)
	}
	return tls.Certificate{Certificate: chain, PrivateKey: id.PrivateKey, Leaf: id.Certificate}
}

// DecodeSecret разбирает значение переменной окружения: "@/path" читает файл,
// PEM-текст возвращается как есть, иначе ожидается base64.
func DecodeSecret(v string) ([]byte, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return nil, nil
	case strings.HasPrefix(v, "@"):
		return os.ReadFile(strings.TrimPrefix(v, "@"))
	case strings.Contains(v, "-----BEGIN"):
		// env files often carry literal \n
		return []byte(strings.ReplaceAll(v, `\n`, "\n")), nil
	}
	b, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("decode base64 secret: %w", err)
	}
	return b, nil
}

// LoadPEM собирает SigningIdentity из PEM сертификата, ключа (возможно зашифрованного) и WWDR
func LoadPEM(certPEM, keyPEM []byte, passphrase string, wwdrPEM []byte) (*SigningIdentity, error) {
	if len(certPEM) == 0 || len(keyPEM) == 0 || len(wwdrPEM) == 0 {
		return nil, ErrMissing
	}
	certs, err := parseCertificates(certPEM)
	if err != nil {
		return nil, fmt.Errorf("pass certificate: %w", err)
	}
	key, err := parsePrivateKey(keyPEM, passphrase)
	if err != nil {
		return nil, fmt.Errorf("pass key: %w", err)
	}
	wwdr, err := parseCertificates(wwdrPEM)
	if err != nil {
		return nil, fmt.Errorf("wwdr certificate: %w", err)
	}
	return newIdentity(certs[0], key, wwdr)
}

// LoadPKCS12 разбирает .p12, экспортированный из Keychain (один сертификат + ключ)
func LoadPKCS12(p12 []byte, passphrase string, wwdrPEM []byte) (*SigningIdentity, error) {
	if len(p12) == 0 || len(wwdrPEM) == 0 {
		return nil, ErrMissing
	}
	priv, cert, err := pkcs12.Decode(p12, passphrase)
	if err != nil {
		return nil, fmt.Errorf("decode p12: %w", err)
	}
	signer, ok := priv.(stdcrypto.Signer)
	if !ok {
		return nil, ErrInvalidKey
	}
	wwdr, err := parseCertificates(wwdrPEM)
	if err != nil {
		return nil, fmt.Errorf("wwdr certificate: %w", err)
	}
	return newIdentity(cert, signer, wwdr)
}

func newIdentity(cert *x509.Certificate, key stdcrypto.Signer, intermediates []*x509.Certificate) (*SigningIdentity, error) {
	if !publicKeysEqual(cert.PublicKey, key.Public()) {
		return nil, ErrKeyMismatch
	}
	return &SigningIdentity{Certificate: cert, PrivateKey: key, Intermediates: intermediates}, nil
}

func parseCertificates(data []byte) ([]*x509.Certificate, error) {
	var out []*x509.Certificate
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		c, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, errors.New("no CERTIFICATE block")
	}
	return out, nil
}

func parsePrivateKey(data []byte, passphrase string) (stdcrypto.Signer, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("no PEM block")
	}
	der := block.Bytes
	//nolint:staticcheck // legacy encrypted PEM is what openssl emits for pass keys
	if x509.IsEncryptedPEMBlock(block) {
		if passphrase == "" {
			return nil, errors.New("encrypted key requires passphrase")
		}
		var err error
		//nolint:staticcheck
		der, err = x509.DecryptPEMBlock(block, []byte(passphrase))
		if err != nil {
			return nil, fmt.Errorf("decrypt key: %w", err)
		}
	}
	if k, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return k, nil
	}
	if k, err := x509.ParseECPrivateKey(der); err == nil {
		return k, nil
	}
	k, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, ErrInvalidKey
	}
	signer, ok := k.(stdcrypto.Signer)
	if !ok {
		return nil, ErrInvalidKey
	}
	return signer, nil
}

func publicKeysEqual(a, b stdcrypto.PublicKey) bool {
	switch ka := a.(type) {
	case *rsa.PublicKey:
		return ka.Equal(b)
	case *ecdsa.PublicKey:
		return ka.Equal(b)
	}
	return false
}
