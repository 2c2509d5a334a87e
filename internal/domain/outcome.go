package domain

import "fmt"

// OutcomeKind is the terminal category of one unit of fetch work.
type OutcomeKind string

const (
	OutcomeSaved                 OutcomeKind = "saved"
	OutcomeStylesheetFetchFailed OutcomeKind = "stylesheet_fetch_failed"
	OutcomeFontFetchFailed       OutcomeKind = "font_fetch_failed"
	OutcomeParseFailed           OutcomeKind = "parse_failed"
	OutcomeIOError               OutcomeKind = "io_error"
)

// Outcome is the reported result of fetching a stylesheet or one of its font faces.
// StatusCode is zero when the request never produced a response.
type Outcome struct {
	Kind       OutcomeKind `json:"kind"`
	Stylesheet string      `json:"stylesheet"`
	URL        string      `json:"url,omitempty"`
	StatusCode int         `json:"status_code,omitempty"`
	FileName   string      `json:"file_name,omitempty"`
	Face       *FontFace   `json:"face,omitempty"`
	RawBlock   string      `json:"raw_block,omitempty"`
	Reason     string      `json:"reason,omitempty"`
	Bytes      int64       `json:"bytes,omitempty"`
	// Replaced is set when a saved font overwrote an existing file of the same name.
	Replaced   bool        `json:"replaced,omitempty"`
}

// Failed reports whether the outcome is anything other than a saved font.
func (o Outcome) Failed() bool {
	return o.Kind != OutcomeSaved
}

// String renders the outcome as a single human-readable line.
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeSaved:
		return fmt.Sprintf("downloaded %s (%d bytes)", o.FileName, o.Bytes)
	case OutcomeStylesheetFetchFailed:
		return fmt.Sprintf("failed to fetch stylesheet %s: %s", o.URL, o.describeFailure())
	case OutcomeFontFetchFailed:
		return fmt.Sprintf("failed to fetch font %s: %s", o.URL, o.describeFailure())
	case OutcomeParseFailed:
		return fmt.Sprintf("failed to parse font-face in %s: %s", o.Stylesheet, o.Reason)
	case OutcomeIOError:
		return fmt.Sprintf("failed to write %s: %s", o.FileName, o.Reason)
	default:
		return fmt.Sprintf("unknown outcome %q for %s", o.Kind, o.Stylesheet)
	}
}

func (o Outcome) describeFailure() string {
	if o.StatusCode != 0 {
		return fmt.Sprintf("status %d", o.StatusCode)
	}
	return o.Reason
}

// StylesheetResult groups the outcomes produced for one stylesheet reference.
type StylesheetResult struct {
	Reference string    `json:"reference"`
	Outcomes  []Outcome `json:"outcomes"`
}

// Summary counts outcomes by kind.
type Summary struct {
	Stylesheets int                 `json:"stylesheets"`
	Saved       int                 `json:"saved"`
	Failed      int                 `json:"failed"`
	ByKind      map[OutcomeKind]int `json:"by_kind"`
}

// Summarize tallies every outcome in results.
func Summarize(results []StylesheetResult) Summary {
	s := Summary{
		Stylesheets: len(results),
		ByKind:      make(map[OutcomeKind]int),
	}
	for _, r := range results {
		for _, o := range r.Outcomes {
			s.ByKind[o.Kind]++
			if o.Failed() {
				s.Failed++
			} else {
				s.Saved++
			}
		}
	}
	return s
}

// FailedOutcomes returns every non-saved outcome in discovery order.
func FailedOutcomes(results []StylesheetResult) []Outcome {
	var failed []Outcome
	for _, r := range results {
		for _, o := range r.Outcomes {
			if o.Failed() {
				failed = append(failed, o)
			}
		}
	}
	return failed
}
