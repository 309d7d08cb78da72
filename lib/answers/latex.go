package answers

import (
	"strings"
)

// best-effort latex-to-unicode rendering for the math fragments the
// test player embeds into option text. The goal is a readable plain
// text approximation, not a full typesetter: commands without a
// unicode counterpart are kept verbatim.

var latexSymbols = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
	"epsilon": "ε", "varepsilon": "ε", "zeta": "ζ", "eta": "η",
	"theta": "θ", "vartheta": "ϑ", "iota": "ι", "kappa": "κ",
	"lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ",
	"pi": "π", "rho": "ρ", "sigma": "σ", "tau": "τ",
	"upsilon": "υ", "phi": "φ", "varphi": "φ", "chi": "χ",
	"psi": "ψ", "omega": "ω",
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ",
	"Xi": "Ξ", "Pi": "Π", "Sigma": "Σ", "Upsilon": "Υ",
	"Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",

	"times": "×", "cdot": "·", "div": "÷", "pm": "±", "mp": "∓",
	"leq": "≤", "le": "≤", "geq": "≥", "ge": "≥",
	"neq": "≠", "ne": "≠", "approx": "≈", "sim": "∼", "equiv": "≡",
	"infty": "∞", "degree": "°", "circ": "∘",
	"to": "→", "rightarrow": "→", "leftarrow": "←",
	"Rightarrow": "⇒", "Leftarrow": "⇐", "Leftrightarrow": "⇔",
	"in": "∈", "notin": "∉", "subset": "⊂", "supset": "⊃",
	"cup": "∪", "cap": "∩", "emptyset": "∅", "varnothing": "∅",
	"forall": "∀", "exists": "∃", "neg": "¬", "wedge": "∧", "vee": "∨",
	"angle": "∠", "triangle": "△", "perp": "⊥", "parallel": "∥",
	"sum": "∑", "prod": "∏", "int": "∫", "partial": "∂",
	"ldots": "…", "dots": "…", "cdots": "⋯", "prime": "′",
	"%": "%", "{": "{", "}": "}", "_": "_", "&": "&", "#": "#",
	"$": "$", ",": " ", ";": " ", " ": " ", "quad": "  ", "qquad": "    ",
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', '=': '⁼', '(': '⁽', ')': '⁾',
	'n': 'ⁿ', 'i': 'ⁱ',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'+': '₊', '-': '₋', '=': '₌', '(': '₍', ')': '₎',
	'a': 'ₐ', 'e': 'ₑ', 'x': 'ₓ', 'n': 'ₙ', 'm': 'ₘ', 'k': 'ₖ',
}

// LatexToUnicode renders latex source to a unicode approximation.
func LatexToUnicode(src string) string {
	src = strings.Trim(src, "$")
	return renderLatex([]rune(src))
}

func renderLatex(src []rune) string {
	var out strings.Builder
	i := 0
	for i < len(src) {
		switch src[i] {
		case '\\':
			name, rest := readCommand(src[i+1:])
			i = len(src) - len(rest)
			switch name {
			case "frac", "dfrac", "tfrac":
				num, rest := readGroup(src[i:])
				den, rest2 := readGroup(rest)
				i = len(src) - len(rest2)
				out.WriteString(renderFraction(num, den))
			case "sqrt":
				arg, rest := readGroup(src[i:])
				i = len(src) - len(rest)
				out.WriteString("√" + parenthesize(renderLatex(arg)))
			case "text", "mathrm", "mathit", "mathbf", "operatorname":
				arg, rest := readGroup(src[i:])
				i = len(src) - len(rest)
				out.WriteString(renderLatex(arg))
			case "left", "right":
				// delimiter sizing only, the delimiter itself follows
			default:
				if sym, ok := latexSymbols[name]; ok {
					out.WriteString(sym)
				} else {
					// no unicode counterpart, keep the command readable
					out.WriteString(name)
				}
			}
		case '^':
			arg, rest := readGroupOrRune(src[i+1:])
			i = len(src) - len(rest)
			out.WriteString(renderScript(renderLatex(arg), superscripts, "^"))
		case '_':
			arg, rest := readGroupOrRune(src[i+1:])
			i = len(src) - len(rest)
			out.WriteString(renderScript(renderLatex(arg), subscripts, "_"))
		case '{', '}':
			i++
		case '~':
			out.WriteRune(' ')
			i++
		default:
			out.WriteRune(src[i])
			i++
		}
	}
	return out.String()
}

// readCommand consumes a command name after a backslash. Single
// non-letter characters are escapes like `\%`.
func readCommand(src []rune) (string, []rune) {
	if len(src) == 0 {
		return "", src
	}
	if !isLatexLetter(src[0]) {
		return string(src[0]), src[1:]
	}
	end := 0
	for end < len(src) && isLatexLetter(src[end]) {
		end++
	}
	return string(src[:end]), src[end:]
}

func isLatexLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// readGroup consumes a brace-delimited group, or a single token when
// no brace follows. Returns the group body and the remainder.
func readGroup(src []rune) ([]rune, []rune) {
	i := 0
	for i < len(src) && src[i] == ' ' {
		i++
	}
	if i >= len(src) {
		return nil, src[i:]
	}
	if src[i] != '{' {
		return readGroupOrRune(src[i:])
	}
	depth := 0
	for j := i; j < len(src); j++ {
		switch src[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[i+1 : j], src[j+1:]
			}
		}
	}
	// unbalanced group, consume to the end
	return src[i+1:], nil
}

// readGroupOrRune consumes either a braced group, a command, or one
// rune, following the operand rules for ^ and _.
func readGroupOrRune(src []rune) ([]rune, []rune) {
	if len(src) == 0 {
		return nil, src
	}
	if src[0] == '{' {
		return readGroup(src)
	}
	if src[0] == '\\' {
		_, rest := readCommand(src[1:])
		return src[:len(src)-len(rest)], rest
	}
	return src[:1], src[1:]
}

func renderFraction(num, den []rune) string {
	return parenthesize(renderLatex(num)) + "/" + parenthesize(renderLatex(den))
}

// parenthesize wraps multi-rune operands so fractions and roots stay
// unambiguous in plain text.
func parenthesize(s string) string {
	if len([]rune(s)) <= 1 {
		return s
	}
	return "(" + s + ")"
}

// renderScript converts the operand to superscript/subscript glyphs;
// when any rune has no glyph it falls back to the ascii marker form.
func renderScript(s string, glyphs map[rune]rune, marker string) string {
	var out strings.Builder
	for _, r := range s {
		g, ok := glyphs[r]
		if !ok {
			return marker + parenthesize(s)
		}
		out.WriteRune(g)
	}
	return out.String()
}
