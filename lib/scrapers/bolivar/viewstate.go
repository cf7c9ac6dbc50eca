package bolivar

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// viewStateField is the hidden input the portal uses to keep its
// server-side component tree in sync. The value changes on every page
// and must be replayed on the next form submission.
const viewStateField = "javax.faces.ViewState"

// viewState tracks the latest token seen. Refreshes are monotonic: a
// page that doesn't carry the token leaves the previous value alone,
// and malformed markup is never an error. A still-empty value is the
// caller's problem to detect.
type viewState struct {
	value string
}

func (v *viewState) Value() string {
	return v.value
}

func (v *viewState) RefreshFrom(markup string) {
	// partial responses carry the token inside an update fragment
	if isPartialResponse(markup) {
		updates, err := parsePartialUpdates(markup)
		if err == nil {
			for _, u := range updates {
				if !strings.Contains(strings.ToLower(u.id), strings.ToLower(viewStateField)) {
					continue
				}
				if value := strings.TrimSpace(u.content); value != "" {
					v.value = value
					return
				}
			}
		}
		// fall through to the full-page scan when the envelope
		// yields nothing
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return
	}
	value := doc.Find(`input[name="` + viewStateField + `"]`).AttrOr("value", "")
	if value != "" {
		v.value = value
	}
}
