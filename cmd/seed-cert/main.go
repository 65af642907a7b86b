package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/vbncursed/vkr/wallet-service/internal/crypto"
)

// seed-cert пишет самоподписанные PEM для PASS_CERT_PEM/PASS_KEY_PEM/WWDR_CERT_PEM (формат @path)
func main() {
	var (
		out        string
		passTypeID string
		teamID     string
	)
	flag.StringVar(&out, "out", "./certs", "output directory")
	flag.StringVar(&passTypeID, "pass-type", "pass.com.example.coupon", "pass type identifier")
	flag.StringVar(&teamID, "team", "TEAM123456", "team identifier")
	flag.Parse()

	bundle, err := crypto.GenerateDevBundle(passTypeID, teamID)
	if err != nil {
		log.Fatalf("keygen: %v", err)
	}
	if err := os.MkdirAll(out, 0o700); err != nil {
		log.Fatalf("mkdir: %v", err)
	}
	files := map[string][]byte{
		"pass.pem": bundle.CertPEM,
		"key.pem":  bundle.KeyPEM,
		"wwdr.pem": bundle.WWDRPEM,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(out, name), data, 0o600); err != nil {
			log.Fatalf("write %s: %v", name, err)
		}
	}
	log.Printf("wrote dev certificates to %s", out)
	log.Printf("PASS_CERT_PEM=@%s PASS_KEY_PEM=@%s WWDR_CERT_PEM=@%s",
		filepath.Join(out, "pass.pem"), filepath.Join(out, "key.pem"), filepath.Join(out, "wwdr.pem"))
}
