package dataprocessing

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// toFloat reads a cell as a plain decimal number. Blank text is an error
// rather than zero, and Go literal forms (digit separators, hex) are rejected.
func toFloat(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("empty value")
	}
	if strings.Contains(text, "_") || hasHexPrefix(text) {
		return 0, fmt.Errorf("not a decimal number: %q", text)
	}
	return cast.ToFloat64E(text)
}

func hasHexPrefix(text string) bool {
	text = strings.TrimLeft(text, "+-")
	return len(text) > 1 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X')
}
