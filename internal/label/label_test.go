// internal/label/label_test.go
package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel_String(t *testing.T) {
	assert.Equal(t, "//ios/app:main", New("ios/app", "main").String())
	assert.Equal(t, "//:tools", New("", "tools").String())
}

func TestLabel_RoundTrip(t *testing.T) {
	for _, raw := range []string{"//a/b:c", "//:root", "//x/y/z:z"} {
		t.Run(raw, func(t *testing.T) {
			l, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, l.String())

			again, err := Parse(l.String())
			require.NoError(t, err)
			assert.True(t, l.Equal(again))
		})
	}
}

func TestLabel_Equal(t *testing.T) {
	a := MustParse("//lib:a")
	assert.True(t, a.Equal(MustParse("//lib:a")))
	assert.False(t, a.Equal(MustParse("//lib:b")))
	assert.False(t, a.Equal(MustParse("//lib2:a")))
	assert.True(t, Label{}.IsZero())
	assert.False(t, a.IsZero())
}
