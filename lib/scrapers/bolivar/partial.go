package bolivar

import (
	"encoding/xml"
	"html"
	"io"
	"strings"
)

// The portal wraps AJAX-style partial page updates in an XML envelope.
// The interesting markup lives inside <update> elements, frequently
// CDATA-wrapped and sometimes entity-escaped a second time.
const partialResponseMarker = "<partial-response"

func isPartialResponse(text string) bool {
	return strings.Contains(strings.ToLower(text), partialResponseMarker)
}

type partialUpdate struct {
	id      string
	content string
}

// parsePartialUpdates pulls out every element whose tag name ends in
// "update" along with its id attribute and text content.
func parsePartialUpdates(text string) ([]partialUpdate, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = false

	var updates []partialUpdate
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(start.Name.Local), "update") {
			continue
		}

		id := ""
		for _, attr := range start.Attr {
			if strings.ToLower(attr.Name.Local) == "id" {
				id = attr.Value
				break
			}
		}

		content, err := collectElementText(dec)
		if err != nil {
			return nil, err
		}
		updates = append(updates, partialUpdate{id: id, content: content})
	}

	return updates, nil
}

// collectElementText reads tokens until the matching end element,
// concatenating all character data (CDATA included) along the way.
func collectElementText(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(t)
		}
	}
	return sb.String(), nil
}

// unwrapPartialResponse normalizes the two response shapes (full HTML
// page vs partial-update envelope) into one HTML string. Plain HTML
// passes through untouched, so the function is idempotent. Any XML
// parse failure also returns the input untouched; downstream extraction
// has its own fallbacks for unusable structure.
func unwrapPartialResponse(text string) string {
	if !isPartialResponse(text) {
		return text
	}

	updates, err := parsePartialUpdates(text)
	if err != nil {
		return text
	}

	var chunks []string
	for _, u := range updates {
		chunk := strings.TrimSpace(u.content)
		if chunk == "" {
			continue
		}
		// the embedded markup is often escaped: &lt;table&gt;...
		chunks = append(chunks, html.UnescapeString(chunk))
	}

	if len(chunks) == 0 {
		return text
	}
	return strings.Join(chunks, "\n")
}
