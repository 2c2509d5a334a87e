package domain

// FontFace describes one downloadable font variant declared by an
// @font-face rule.
type FontFace struct {
	Family    string `json:"family"`
	Style     string `json:"style"`
	Weight    string `json:"weight"`
	SourceURL string `json:"source_url"`
}

// Actionable reports whether every required field is present.
func (f FontFace) Actionable() bool {
	return f.Family != "" && f.Style != "" && f.Weight != "" && f.SourceURL != ""
}
