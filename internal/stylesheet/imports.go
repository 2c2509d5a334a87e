package stylesheet

import "regexp"

var importRe = regexp.MustCompile(`@import\s+url\(\s*['"](https://[^'"]+)['"]\s*\)\s*;`)

// ExtractImports returns the URL argument of every @import url('...')
// directive in document order. A document without imports yields an empty slice.
func ExtractImports(document string) []string {
	matches := importRe.FindAllStringSubmatch(document, -1)
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	return refs
}
