package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripSoftHyphens(t *testing.T) {
	require.Equal(t, "переменная", StripSoftHyphens("пере­мен­ная"))
	require.Equal(t, "plain", StripSoftHyphens("plain"))
	require.Equal(t, "", StripSoftHyphens("­"))
}

func TestJoinNonEmpty(t *testing.T) {
	cases := []struct {
		parts  []string
		expect string
	}{
		{parts: []string{"a", "b", "c"}, expect: "a b c"},
		{parts: []string{"a", "", "c"}, expect: "a c"},
		{parts: []string{"", "", ""}, expect: ""},
		{parts: []string{"only"}, expect: "only"},
		{parts: nil, expect: ""},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, JoinNonEmpty(test.parts...))
	}
}

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "a b c", CollapseWhitespace("  a \t b \n c "))
	require.Equal(t, "", CollapseWhitespace("   "))
}
