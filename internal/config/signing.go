package config

import (
	"fmt"

	"github.com/vbncursed/vkr/wallet-service/internal/crypto"
)

// Identity собирает подписывающий сертификат: PASS_P12 имеет приоритет над PEM-парой.
// Отсутствие материалов — crypto.ErrMissing.
func (s SigningConfig) Identity() (*crypto.SigningIdentity, error) {
	wwdr, err := crypto.DecodeSecret(s.WWDRPEM)
	if err != nil {
		return nil, fmt.Errorf("WWDR_CERT_PEM: %w", err)
	}
	if s.P12 != "" {
		p12, err := crypto.DecodeSecret(s.P12)
		if err != nil {
			return nil, fmt.Errorf("PASS_P12: %w", err)
		}
		return crypto.LoadPKCS12(p12, s.Passphrase, wwdr)
	}
	cert, err := crypto.DecodeSecret(s.CertPEM)
	if err != nil {
		return nil, fmt.Errorf("PASS_CERT_PEM: %w", err)
	}
	key, err := crypto.DecodeSecret(s.KeyPEM)
	if err != nil {
		return nil, fmt.Errorf("PASS_KEY_PEM: %w", err)
	}
	return crypto.LoadPEM(cert, key, s.Passphrase, wwdr)
}
