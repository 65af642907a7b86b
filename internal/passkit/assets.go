package passkit

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Имена статических картинок пасса
var AssetNames = []string{
	"icon.png", "icon@2x.png", "icon@3x.png",
	"logo.png", "logo@2x.png", "logo@3x.png",
}

const requiredAsset = "icon.png"

var ErrAssetMissing = errors.New("required pass asset missing")

// Assets — имя файла в архиве -> содержимое
type Assets map[string][]byte

// LoadAssets читает известные картинки из каталога; отсутствующие необязательные пропускаются
func LoadAssets(dir string) (Assets, error) {
	out := Assets{}
	for _, name := range AssetNames {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read asset %s: %w", name, err)
		}
		out[name] = b
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate проверяет, что набор можно положить в архив как есть
func (a Assets) Validate() error {
	if len(a[requiredAsset]) == 0 {
		return fmt.Errorf("%w: %s", ErrAssetMissing, requiredAsset)
	}
	for name := range a {
		if name == "" || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("asset name %q must be flat", name)
		}
		switch name {
		case passFile, manifestFile, signatureFile:
			return fmt.Errorf("asset name %q is reserved", name)
		}
	}
	return nil
}

// Names — имена в стабильном порядке
func (a Assets) Names() []string {
	names := make([]string, 0, len(a))
	for n := range a {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PlaceholderAssets — однотонная иконка для локального запуска без дизайнерских картинок
func PlaceholderAssets() (Assets, error) {
	img := image.NewRGBA(image.Rect(0, 0, 29, 29))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 220, G: 38, B: 38, A: 255}}, image.Point{}, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return Assets{requiredAsset: buf.Bytes()}, nil
}
