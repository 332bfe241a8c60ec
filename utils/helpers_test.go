package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestUniqueStrings(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, UniqueStrings([]string{"b", "a", "b", "c", "a"}))
	assert.Empty(t, UniqueStrings(nil))
}

func TestSanitizeFilename(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain", "Widget", "Widget"},
		{"Slashes", "UniFi AP/U6 Pro", "UniFi AP_U6 Pro"},
		{"Reserved", `a<b>c:d"e|f?g*h\i`, "a_b_c_d_e_f_g_h_i"},
		{"Whitespace", "  Dream   Machine \t", "Dream Machine"},
		{"Line breaks", "Dream\nMachine\r\nPro", "Dream Machine Pro"},
		{"Control char", "Dream\x07Machine", "Dream_Machine"},
		{"Trailing dots", "Gateway...", "Gateway"},
		{"Empty", "   ", "unnamed"},
		{"Only dots", "..", "unnamed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeFilename(tc.input))
		})
	}
}

func TestSanitizeFilenameTruncates(t *testing.T) {
	got := SanitizeFilename(strings.Repeat("ü", 150))
	assert.Equal(t, maxFilenameRunes, utf8.RuneCountInString(got))
}
