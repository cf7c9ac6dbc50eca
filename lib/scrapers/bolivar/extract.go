package bolivar

import (
	"regexp"
	"strings"

	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/htmlutil"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Tier identifies which extraction strategy produced a value. The
// portal's markup is neither versioned nor documented, so extraction
// degrades through progressively lower-confidence tiers instead of
// failing outright; the tier is logged for observability.
type Tier string

const (
	TierDatosSolicitud Tier = "datos_solicitud"
	TierNoResults      Tier = "no_results"
	TierInfoTable      Tier = "info_table"
	TierProximity      Tier = "proximity"
	TierKeywordRegex   Tier = "keyword_regex"
	TierExcerpt        Tier = "excerpt"
	TierNone           Tier = "none"
)

// ids come prefixed with the enclosing form (ex: FormIndex:datosSolicitud)
const requestDataTableSuffix = "datossolicitud"

const excerptMaxLen = 180

var (
	estadoLabelRegex    = regexp.MustCompile(`(?i)estado\s*siniestro`)
	aseguradoLabelRegex = regexp.MustCompile(`(?i)\b(inquilino|asegurado)\b`)
	estadoWordRegex     = regexp.MustCompile(`(?i)\bestado\b`)
	statusKeywordRegex  = regexp.MustCompile(`(?i)\b(desistid[oa]|reportad[oa]|sin\s+desistir|no\s+ha\s+pagado)\b`)
)

var noResultsMarkers = []string{
	"no se encontraron",
	"sin resultados",
	"no existen registros",
	"no existe",
	"no encontrado",
}

func findRequestDataTable(doc *goquery.Document) *goquery.Selection {
	tables := htmlutil.FindByIdSuffix(doc.Find("table"), requestDataTableSuffix)
	if tables.Length() == 0 {
		return nil
	}
	return tables.First()
}

// labelValue finds a label matching the pattern inside the table and
// returns the text of the label immediately after it. The portal
// renders each field as a caption label followed by a value label.
func labelValue(table *goquery.Selection, pattern *regexp.Regexp) string {
	labels := table.Find("label")
	value := ""
	labels.EachWithBreak(func(i int, label *goquery.Selection) bool {
		key := htmlutil.CellText(label)
		if key == "" || !pattern.MatchString(key) {
			return true
		}
		if i+1 < labels.Length() {
			value = htmlutil.CellText(labels.Eq(i + 1))
		}
		return false
	})
	return value
}

// ExtractClaimInfo recovers the raw claim status and the claimant name
// from a post-search page. The extraction is strict to the request-data
// table to avoid false positives from the other tables and dialogs that
// share the screen; when the table is absent both values come back
// empty and the caller must treat the radicado as not found.
func ExtractClaimInfo(markup string) (estadoRaw, asegurado string, tier Tier) {
	candidate := unwrapPartialResponse(markup)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(candidate))
	if err != nil {
		return "", "", TierNone
	}

	table := findRequestDataTable(doc)
	if table == nil {
		return "", "", TierNone
	}

	estadoRaw = labelValue(table, estadoLabelRegex)
	asegurado = labelValue(table, aseguradoLabelRegex)
	if estadoRaw == "" {
		return "", asegurado, TierNone
	}
	return estadoRaw, asegurado, TierDatosSolicitud
}

// SearchStatus is the standalone status-search path: a cascading chain
// of heuristics for recovering a status value when the strict
// table-based extraction is bypassed or the markup has drifted. It
// always produces something; the absolute last resort is a capped
// excerpt of the page text so data is never silently dropped.
func SearchStatus(markup string) (string, Tier) {
	candidate := unwrapPartialResponse(markup)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(candidate))
	if err != nil {
		return StatusNotFound, TierNone
	}

	fullText := textutil.CollapseSpace(doc.Text())
	fullTextLower := strings.ToLower(fullText)

	// the screen shows "No se encontraron resultados." in unrelated
	// panels (Motivos de Objeciones) even when the radicado exists, so
	// the no-results markers only count when the request-data table is
	// absent entirely
	table := findRequestDataTable(doc)
	if table != nil {
		if value := labelValue(table, estadoLabelRegex); value != "" {
			return value, TierDatosSolicitud
		}
	} else if textutil.ContainsAny(fullTextLower, noResultsMarkers) {
		return StatusNotFound, TierNoResults
	}

	if value := statusFromInfoContainers(doc); value != "" {
		return value, TierInfoTable
	}

	if value := statusFromNearbyText(doc); value != "" {
		return value, TierProximity
	}

	if match := statusKeywordRegex.FindString(fullTextLower); match != "" {
		return match, TierKeywordRegex
	}

	if compact := textutil.Excerpt(fullText, excerptMaxLen); compact != "" {
		return compact, TierExcerpt
	}

	return StatusNotFound, TierNone
}

// statusFromInfoContainers scans any table or container marked
// "informacion" for a two-cell row whose first cell mentions "estado".
func statusFromInfoContainers(doc *goquery.Document) string {
	var candidates []*goquery.Selection
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		id := strings.ToLower(table.AttrOr("id", ""))
		class := strings.ToLower(table.AttrOr("class", ""))
		if strings.Contains(id, "informacion") || strings.Contains(class, "informacion") {
			candidates = append(candidates, table)
		}
	})
	doc.Find("*").Each(func(_ int, node *goquery.Selection) {
		if goquery.NodeName(node) == "table" {
			return
		}
		id := strings.ToLower(node.AttrOr("id", ""))
		class := strings.ToLower(node.AttrOr("class", ""))
		if strings.Contains(id, "informacion") || strings.Contains(class, "informacion") {
			candidates = append(candidates, node)
		}
	})

	for _, node := range candidates {
		value := ""
		node.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
			cells := row.Find("th,td")
			if cells.Length() < 2 {
				return true
			}
			key := htmlutil.CellText(cells.Eq(0))
			val := htmlutil.CellText(cells.Eq(1))
			if key == "" || val == "" {
				return true
			}
			if strings.Contains(strings.ToLower(key), "estado") {
				value = val
				return false
			}
			return true
		})
		if value != "" {
			return value
		}
	}
	return ""
}

// statusFromNearbyText finds the first text node containing the whole
// word "estado" and takes the nearest following text node as the value,
// provided it isn't just the label again.
func statusFromNearbyText(doc *goquery.Document) string {
	var texts []string
	for _, root := range doc.Nodes {
		collectTextNodes(root, &texts)
	}

	labelIdx := -1
	for i, t := range texts {
		if estadoWordRegex.MatchString(t) {
			labelIdx = i
			break
		}
	}
	if labelIdx < 0 {
		return ""
	}

	label := textutil.CollapseSpace(texts[labelIdx])
	for _, t := range texts[labelIdx+1:] {
		candidate := textutil.CollapseSpace(t)
		if candidate == "" {
			continue
		}
		if strings.EqualFold(candidate, label) {
			continue
		}
		return candidate
	}
	return ""
}

func collectTextNodes(node *html.Node, out *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		if strings.TrimSpace(node.Data) != "" {
			*out = append(*out, node.Data)
		}
		return
	}
	if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectTextNodes(child, out)
	}
}
