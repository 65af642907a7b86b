package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vbncursed/vkr/wallet-service/internal/crypto"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/passkit"
)

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [file.pkpass]",
		Short: "Check manifest digests and the detached signature of a .pkpass",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			files, err := readArchive(data)
			if err != nil {
				return err
			}
			manifest, ok := files["manifest.json"]
			if !ok {
				return fmt.Errorf("manifest.json missing")
			}
			signature, ok := files["signature"]
			if !ok {
				return fmt.Errorf("signature missing")
			}

			content := make(map[string][]byte, len(files))
			for name, b := range files {
				if name != "manifest.json" && name != "signature" {
					content[name] = b
				}
			}
			expected, err := passkit.Manifest(content)
			if err != nil {
				return err
			}
			if !bytes.Equal(canonical(expected), canonical(manifest)) {
				return fmt.Errorf("manifest digests do not match archive contents")
			}
			if err := crypto.VerifyDetached(signature, manifest); err != nil {
				return fmt.Errorf("signature: %w", err)
			}

			var p models.Pass
			if err := json.Unmarshal(files["pass.json"], &p); err != nil {
				return fmt.Errorf("pass.json: %w", err)
			}
			fmt.Printf("OK  %s / %s  (%d files)\n", p.PassTypeIdentifier, p.SerialNumber, len(files))
			if msg := p.WalletMessage(); msg != "" {
				fmt.Printf("    message: %s\n", msg)
			}
			return nil
		},
	}
}

func readArchive(data []byte) (map[string][]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		out[f.Name] = b
	}
	return out, nil
}

// canonical перекодирует JSON, чтобы сравнение не зависело от форматирования
func canonical(b []byte) []byte {
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return b
	}
	out, _ := json.Marshal(m)
	return out
}
