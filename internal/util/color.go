package util

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeColor приводит "#RRGGBB", "#RGB" или "rgb(r,g,b)" к форме rgb(r,g,b), понятной Wallet.
// ok=false, если строку разобрать нельзя.
func NormalizeColor(s string) (string, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return "", false
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return "", false
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("rgb(%d,%d,%d)", v>>16&0xff, v>>8&0xff, v&0xff), true
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return "", false
		}
		var rgb [3]int
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return "", false
			}
			rgb[i] = n
		}
		return fmt.Sprintf("rgb(%d,%d,%d)", rgb[0], rgb[1], rgb[2]), true
	}
	return "", false
}
