package stylesheet

import (
	"strings"
	"unicode"

	"github.com/fontfetch/fontfetch/internal/domain"
)

const (
	nameDelimiter = "_"
	fontExt       = ".ttf"

	// characters rejected by at least one common filesystem
	reservedChars = `/\:*?"<>|`
)

// AssetName derives the file name a font face is stored under:
// <family>_<style>_<weight>.ttf with whitespace, control characters and
// filesystem-reserved characters replaced by underscores.
func AssetName(face domain.FontFace) string {
	name := face.Family + nameDelimiter + face.Style + nameDelimiter + face.Weight + fontExt
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune(reservedChars, r) {
			return '_'
		}
		return r
	}, name)
}
