package passkit

import (
	"archive/zip"
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vbncursed/vkr/wallet-service/internal/crypto"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

const (
	passFile      = "pass.json"
	manifestFile  = "manifest.json"
	signatureFile = "signature"

	ContentType = "application/vnd.apple.pkpass"
)

// ErrSigningConfigMissing — нет сертификата/ключа/WWDR; неподписанный архив не выпускаем
var ErrSigningConfigMissing = errors.New("pass signing configuration missing")

type zipEntry struct {
	name string
	data []byte
}

// Builder собирает .pkpass; состояния между вызовами не хранит
type Builder struct {
	identity *crypto.SigningIdentity
	assets   Assets
}

func NewBuilder(identity *crypto.SigningIdentity, assets Assets) (*Builder, error) {
	if !identity.Complete() {
		return nil, ErrSigningConfigMissing
	}
	if err := assets.Validate(); err != nil {
		return nil, err
	}
	return &Builder{identity: identity, assets: assets}, nil
}

// Build сериализует пасс, считает manifest, подписывает и упаковывает в zip
func (b *Builder) Build(p *models.Pass) ([]byte, error) {
	if b == nil || !b.identity.Complete() {
		return nil, ErrSigningConfigMissing
	}
	passJSON, err := MarshalPass(p)
	if err != nil {
		return nil, err
	}

	files := make(map[string][]byte, len(b.assets)+1)
	for name, data := range b.assets {
		files[name] = data
	}
	files[passFile] = passJSON

	manifest, err := Manifest(files)
	if err != nil {
		return nil, err
	}
	signature, err := crypto.SignDetached(b.identity, manifest)
	if err != nil {
		if errors.Is(err, crypto.ErrMissing) {
			return nil, ErrSigningConfigMissing
		}
		return nil, fmt.Errorf("sign manifest: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []zipEntry{
		{passFile, passJSON},
		{manifestFile, manifest},
		{signatureFile, signature},
	}
	for _, name := range b.assets.Names() {
		entries = append(entries, zipEntry{name, b.assets[name]})
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return nil, fmt.Errorf("zip %s: %w", e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			return nil, fmt.Errorf("zip %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip close: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalPass — каноничный pass.json: порядок полей структуры, без HTML-экранирования и отступов
func MarshalPass(p *models.Pass) ([]byte, error) {
	if p == nil {
		return nil, errors.New("nil pass")
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("marshal pass: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Manifest — JSON {имя: sha1 hex}; ключи сортируются кодировщиком, байты стабильны
func Manifest(files map[string][]byte) ([]byte, error) {
	m := make(map[string]string, len(files))
	for name, data := range files {
		sum := sha1.Sum(data)
		m[name] = hex.EncodeToString(sum[:])
	}
	return json.Marshal(m)
}
