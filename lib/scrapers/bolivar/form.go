package bolivar

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/htmlutil"
	"github.com/Crhistian-LAMBDA/Scrap-poc-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	// inputs belonging to the search flow carry ids/names suffixed with this
	searchFieldMarker = "busqueda"
	// the id the portal gives the real search form when it renders one
	canonicalSearchFormId = "FormIndex"
)

// language-agnostic keywords identifying the search/submit control
var submitKeywords = []string{"buscar", "busca", "consulta", "consult", "search"}

// JSF generates control names like j_idt42 when the page author didn't
// assign one; these are usually the framework's own submit buttons
var frameworkControlRegex = regexp.MustCompile(`\bj_idt\d+\b`)

// formDescriptor is everything needed to replay the portal's search
// form. Rebuilt on every query since the view state changes per request.
type formDescriptor struct {
	// absolute submission URL
	Action string
	// hidden bookkeeping fields replayed verbatim
	Hidden map[string]string
	// the real name of the search-text field
	SearchField string
	// name of the button/input included as the submitted control,
	// empty when none could be determined
	SubmitName string
}

// payload builds the form body for one radicado query. The submit
// control's value is its own name, which is the encoding the portal
// expects for a button-triggered postback.
func (f *formDescriptor) payload(radicado, viewStateValue string) url.Values {
	values := url.Values{}
	for name, value := range f.Hidden {
		values.Set(name, value)
	}
	values.Set(f.SearchField, radicado)
	values.Set(viewStateField, viewStateValue)
	if f.SubmitName != "" {
		values.Set(f.SubmitName, f.SubmitName)
	}
	return values
}

func hasSearchInput(form *goquery.Selection) bool {
	found := false
	form.Find("input,textarea").EachWithBreak(func(_ int, input *goquery.Selection) bool {
		name := strings.ToLower(input.AttrOr("name", ""))
		id := strings.ToLower(input.AttrOr("id", ""))
		if strings.HasSuffix(name, searchFieldMarker) || strings.HasSuffix(id, searchFieldMarker) {
			found = true
			return false
		}
		return true
	})
	return found
}

// resolveSearchForm picks the one form that actually performs the
// claim search. The landing page legitimately contains several forms
// (menu, dialogs, the real one), each with its own view state input;
// posting to the wrong one is accepted by the server but never runs
// the search, so the selection order below is correctness-critical.
//
// Ranked rules, first match wins:
//  1. forms containing a search-marker input, preferring
//     a. the canonical form id/name,
//     b. a form posting back to the landing page itself,
//     c. the first such form;
//  2. the first form carrying a view state input;
//  3. the first form on the page.
func resolveSearchForm(doc *goquery.Document, indexUrl *url.URL) *formDescriptor {
	forms := doc.Find("form")
	if forms.Length() == 0 {
		return nil
	}

	var searchForms []*goquery.Selection
	forms.Each(func(_ int, form *goquery.Selection) {
		if hasSearchInput(form) {
			searchForms = append(searchForms, form)
		}
	})

	if len(searchForms) > 0 {
		for _, form := range searchForms {
			id := strings.TrimSpace(form.AttrOr("id", ""))
			name := strings.TrimSpace(form.AttrOr("name", ""))
			if id == canonicalSearchFormId || name == canonicalSearchFormId {
				return describeForm(form, indexUrl)
			}
		}

		indexPath := strings.ToLower(indexUrl.Path)
		indexPage := path.Base(indexPath)
		for _, form := range searchForms {
			action := trimQuery(strings.ToLower(form.AttrOr("action", "")))
			if action != "" && (strings.HasSuffix(action, indexPath) || strings.HasSuffix(action, indexPage)) {
				return describeForm(form, indexUrl)
			}
		}

		return describeForm(searchForms[0], indexUrl)
	}

	var withViewState *goquery.Selection
	forms.EachWithBreak(func(_ int, form *goquery.Selection) bool {
		if form.Find(`input[name="`+viewStateField+`"]`).Length() > 0 {
			withViewState = form
			return false
		}
		return true
	})
	if withViewState != nil {
		return describeForm(withViewState, indexUrl)
	}

	return describeForm(forms.First(), indexUrl)
}

func trimQuery(action string) string {
	if i := strings.IndexAny(action, "?;"); i >= 0 {
		return action[:i]
	}
	return action
}

func describeForm(form *goquery.Selection, indexUrl *url.URL) *formDescriptor {
	desc := &formDescriptor{
		Action:      indexUrl.String(),
		Hidden:      map[string]string{},
		SearchField: searchFieldMarker,
	}

	if action := form.AttrOr("action", ""); action != "" {
		if resolved, err := indexUrl.Parse(action); err == nil {
			desc.Action = resolved.String()
		}
	}

	// replay every hidden input except the view state, which is
	// tracked separately and always set to the freshest value
	form.Find("input").Each(func(_ int, input *goquery.Selection) {
		name := input.AttrOr("name", "")
		if name == "" || name == viewStateField {
			return
		}
		if strings.ToLower(input.AttrOr("type", "")) == "hidden" {
			desc.Hidden[name] = input.AttrOr("value", "")
		}
	})

	form.Find("input,textarea").EachWithBreak(func(_ int, input *goquery.Selection) bool {
		name := input.AttrOr("name", "")
		id := input.AttrOr("id", "")
		haystack := strings.ToLower(name + " " + id)
		if strings.Contains(haystack, searchFieldMarker) {
			if name != "" {
				desc.SearchField = name
			} else {
				desc.SearchField = id
			}
			return false
		}
		return true
	})

	desc.SubmitName = findSubmitControl(form)
	return desc
}

type submitCandidate struct {
	name string
	text string
}

func findSubmitControl(form *goquery.Selection) string {
	var candidates []submitCandidate
	form.Find("button,input").Each(func(_ int, control *goquery.Selection) {
		controlType := strings.ToLower(control.AttrOr("type", ""))
		if goquery.NodeName(control) == "input" {
			if controlType != "" && controlType != "submit" && controlType != "image" {
				return
			}
		}
		name := control.AttrOr("name", "")
		if name == "" {
			name = control.AttrOr("id", "")
		}
		if name == "" {
			return
		}

		text := control.AttrOr("value", "")
		if text == "" {
			text = htmlutil.CellText(control)
		}
		candidates = append(candidates, submitCandidate{name: name, text: text})
	})

	for _, c := range candidates {
		if textutil.ContainsAny(c.name+" "+c.text, submitKeywords) {
			return c.name
		}
	}
	for _, c := range candidates {
		if frameworkControlRegex.MatchString(c.name) {
			return c.name
		}
	}
	if len(candidates) == 1 {
		return candidates[0].name
	}
	return ""
}
