package answers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLatexToUnicode(t *testing.T) {
	cases := []struct {
		in     string
		expect string
	}{
		{in: `\alpha`, expect: "α"},
		{in: `\Omega`, expect: "Ω"},
		{in: `x^2`, expect: "x²"},
		{in: `x^{10}`, expect: "x¹⁰"},
		{in: `a_1`, expect: "a₁"},
		{in: `a_{12}`, expect: "a₁₂"},
		{in: `\frac{1}{2}`, expect: "1/2"},
		{in: `\frac{x+1}{2}`, expect: "(x+1)/2"},
		{in: `\sqrt{2}`, expect: "√2"},
		{in: `\sqrt{x+1}`, expect: "√(x+1)"},
		{in: `2 \cdot 3`, expect: "2 · 3"},
		{in: `a \times b`, expect: "a × b"},
		{in: `x \leq 5`, expect: "x ≤ 5"},
		{in: `\pi r^2`, expect: "π r²"},
		{in: `$x \neq 0$`, expect: "x ≠ 0"},
		{in: `90\degree`, expect: "90°"},
		{in: `x^j`, expect: "x^j"},
		{in: `x^{ab}`, expect: "x^(ab)"},
		{in: `\unknowncmd`, expect: "unknowncmd"},
		{in: `{a}{b}`, expect: "ab"},
		{in: `50\%`, expect: "50%"},
		{in: `e^{i\pi}`, expect: "e^(iπ)"},
		{in: ``, expect: ""},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, LatexToUnicode(test.in), "input: %s", test.in)
	}
}
