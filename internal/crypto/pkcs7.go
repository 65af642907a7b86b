package crypto

import (
	"fmt"

	"github.com/smallstep/pkcs7"
)

// SignDetached создаёт PKCS#7 detached подпись content (DER), включая цепочку WWDR
func SignDetached(id *SigningIdentity, content []byte) ([]byte, error) {
	if !id.Complete() {
		return nil, ErrMissing
	}
	sd, err := pkcs7.NewSignedData(content)
	if err != nil {
		return nil, fmt.Errorf("pkcs7 init: %w", err)
	}
	sd.SetDigestAlgorithm(pkcs7.OIDDigestAlgorithmSHA256)
	if err := sd.AddSignerChain(id.Certificate, id.PrivateKey, id.Intermediates, pkcs7.SignerInfoConfig{}); err != nil {
		return nil, fmt.Errorf("pkcs7 add signer: %w", err)
	}
	sd.Detach()
	der, err := sd.Finish()
	if err != nil {
		return nil, fmt.Errorf("pkcs7 finish: %w", err)
	}
	return der, nil
}

// VerifyDetached проверяет подпись против content без проверки доверия к цепочке
func VerifyDetached(signature, content []byte) error {
	p7, err := pkcs7.Parse(signature)
	if err != nil {
		return err
	}
	p7.Content = content
	return p7.Verify()
}
