package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Input pencarian user tidak boleh berfungsi sebagai pola wildcard:
// "%" sendirian harus dicari sebagai karakter "%", bukan cocok-semua.
func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"BR-00", "BR-00"},
		{"%", `\%`},
		{"_", `\_`},
		{"100%", `100\%`},
		{"a_b%c", `a\_b\%c`},
		{`back\slash`, `back\\slash`},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, escapeLike(tc.in), "input=%q", tc.in)
	}
}
