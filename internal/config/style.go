package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

// LoadStyle читает YAML с оформлением пассов; пустой путь — пустой стиль (сработают дефолты маппера)
func LoadStyle(path string) (models.PassStyle, error) {
	var st models.PassStyle
	if path == "" {
		return st, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return st, fmt.Errorf("read pass style: %w", err)
	}
	if err := yaml.Unmarshal(b, &st); err != nil {
		return st, fmt.Errorf("parse pass style: %w", err)
	}
	return st, nil
}
