// Package highlight renders generated C# for terminals via Chroma and
// derives a small color palette from the same theme for CLI chrome.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
)

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "github-dark"

// Language is the Chroma lexer used for generated code.
const Language = "csharp"

// Highlight returns an ANSI-highlighted version of C# text using the given
// Chroma theme. On any lexer or formatter failure the text is returned
// unchanged. The output ends in a newline exactly when text does.
func Highlight(text, theme string) string {
	lex := lexers.Get(Language)
	if lex == nil {
		return text
	}
	lex = chroma.Coalesce(lex)
	sty := styles.Get(theme)
	fmtr := formatters.Get("terminal16m")
	if fmtr == nil {
		fmtr = formatters.Fallback
	}
	it, err := lex.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var buf strings.Builder
	if err := fmtr.Format(&buf, sty, it); err != nil {
		return text
	}
	out := buf.String()
	// Lexers may append a final newline; drop it, and only it, when the
	// input had none.
	if !strings.HasSuffix(text, "\n") {
		if i := strings.LastIndexByte(out, '\n'); i >= 0 && ansi.Strip(out[i+1:]) == "" {
			out = out[:i] + out[i+1:]
		}
	}
	return out
}

// Palette holds CLI colors derived from a Chroma theme.
type Palette struct {
	Fg     string // theme foreground
	Dim    string // 45% bg→fg, secondary text
	Accent string // most saturated token color
	Error  string // Error token, lerped toward fg
}

// ThemePalette derives a palette from a Chroma theme name. Deterministic:
// same theme, same output.
func ThemePalette(theme string) Palette {
	sty := styles.Get(theme)
	if sty == nil {
		return defaultPalette()
	}
	entry := sty.Get(chroma.Background)
	bg := "#000000"
	fg := "#c8c8c8"
	if entry.Background.IsSet() {
		bg = entry.Background.String()
	}
	if entry.Colour.IsSet() {
		fg = entry.Colour.String()
	}

	return Palette{
		Fg:     fg,
		Dim:    lerpHex(bg, fg, 0.45),
		Accent: pickAccent(sty, fg),
		Error:  pickError(sty, bg, fg),
	}
}

func defaultPalette() Palette {
	return Palette{Fg: "#c8c8c8", Dim: "#5a5a5a", Accent: "#00dfff", Error: "#932e2e"}
}

// pickAccent returns the most saturated foreground color across all tokens.
func pickAccent(sty *chroma.Style, fallback string) string {
	best := fallback
	bestSat := 0.0
	for tt := chroma.TokenType(0); tt < 2000; tt++ {
		e := sty.Get(tt)
		if !e.Colour.IsSet() {
			continue
		}
		hex := e.Colour.String()
		r, g, b := hexToRGBf(hex)
		mx := max(r, g, b)
		mn := min(r, g, b)
		if mx == 0 {
			continue
		}
		sat := (mx - mn) / mx
		if sat > bestSat {
			bestSat = sat
			best = hex
		}
	}
	return best
}

// pickError extracts the Error token color and lerps it 45% toward fg.
func pickError(sty *chroma.Style, bg, fg string) string {
	e := sty.Get(chroma.Error)
	if !e.Colour.IsSet() {
		return lerpHex(bg, fg, 0.45)
	}
	return lerpHex(bg, e.Colour.String(), 0.45)
}

// lerpHex linearly interpolates between two hex colors at fraction t.
func lerpHex(a, b string, t float64) string {
	ar, ag, ab := hexToRGBf(a)
	br, bg, bb := hexToRGBf(b)
	return fmt.Sprintf("#%02x%02x%02x",
		clampByte(ar+(br-ar)*t),
		clampByte(ag+(bg-ag)*t),
		clampByte(ab+(bb-ab)*t),
	)
}

func hexToRGBf(hex string) (float64, float64, float64) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	return float64(hexByte(hex[1], hex[2])),
		float64(hexByte(hex[3], hex[4])),
		float64(hexByte(hex[5], hex[6]))
}

func hexByte(hi, lo byte) int {
	return hexNibble(hi)<<4 | hexNibble(lo)
}

func hexNibble(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}

func clampByte(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v + 0.5)
}
