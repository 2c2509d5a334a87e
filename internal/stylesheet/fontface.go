package stylesheet

import (
	"regexp"
	"strings"

	"github.com/fontfetch/fontfetch/internal/domain"
)

var (
	fontFaceRe = regexp.MustCompile(`@font-face\s*\{([^}]*)\}`)
	familyRe   = regexp.MustCompile(`font-family:\s*(?:'([^']+)'|"([^"]+)")`)
	styleRe    = regexp.MustCompile(`font-style:\s*(\w+)`)
	weightRe   = regexp.MustCompile(`font-weight:\s*(\w+)`)
	srcRe      = regexp.MustCompile(`src:\s*url\(([^)]+)\)`)
)

// ParseResult holds the actionable faces of a stylesheet and the raw bodies
// of the blocks that could not be turned into one.
type ParseResult struct {
	Faces     []domain.FontFace
	Malformed []string
}

// ParseFontFaces extracts every @font-face block from body. Blocks lacking
// family, style, weight or src are collected in Malformed and parsing carries
// on with the next block.
func ParseFontFaces(body string) ParseResult {
	var res ParseResult
	for _, m := range fontFaceRe.FindAllStringSubmatch(body, -1) {
		block := m[1]
		face, ok := parseBlock(block)
		if !ok {
			res.Malformed = append(res.Malformed, strings.TrimSpace(block))
			continue
		}
		res.Faces = append(res.Faces, face)
	}
	return res
}

func parseBlock(block string) (domain.FontFace, bool) {
	face := domain.FontFace{
		Family:    extract(familyRe, block),
		Style:     extract(styleRe, block),
		Weight:    extract(weightRe, block),
		SourceURL: strings.Trim(extract(srcRe, block), `'" `),
	}
	return face, face.Actionable()
}

// extract returns the first non-empty capture group of the first match, or
// "" when the descriptor is absent.
func extract(re *regexp.Regexp, block string) string {
	m := re.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	for _, g := range m[1:] {
		if v := strings.TrimSpace(g); v != "" {
			return v
		}
	}
	return ""
}
