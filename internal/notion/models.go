package notion

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UntitledPage is shown for pages whose title property is empty or missing
const UntitledPage = "Untitled"

// titlePropertyKeys are checked in order before falling back to any
// title-typed property
var titlePropertyKeys = []string{"title", "Name", "Title"}

// Page is a Notion page the integration can append to
type Page struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// String returns the page title and id for display in logs and the CLI
func (p Page) String() string {
	return fmt.Sprintf("%s (%s)", p.Title, p.ID)
}

// Entry is one fault log entry to be appended to a page
type Entry struct {
	Error    string
	Problem  string
	Solution string
	Code     string // Optional; blank means no code block
	Language string // Notion code block language; empty uses DefaultCodeLanguage
}

// HasCode reports whether the entry carries a non-blank code snippet
func (e Entry) HasCode() bool {
	return strings.TrimSpace(e.Code) != ""
}

// MissingFields returns the labels of required fields that are blank.
// Error, Problem and Solution are required; Code is optional.
func (e Entry) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(e.Error) == "" {
		missing = append(missing, "Error")
	}
	if strings.TrimSpace(e.Problem) == "" {
		missing = append(missing, "Problem")
	}
	if strings.TrimSpace(e.Solution) == "" {
		missing = append(missing, "Solution")
	}
	return missing
}

// Markdown renders the entry the way it will read on the page
func (e Entry) Markdown() string {
	var b strings.Builder

	b.WriteString("### " + EntryHeading + "\n\n")
	fmt.Fprintf(&b, "**%s** %s\n\n", strings.TrimSpace(ErrorLabel), e.Error)
	fmt.Fprintf(&b, "**%s** %s\n\n", strings.TrimSpace(ProblemLabel), e.Problem)
	fmt.Fprintf(&b, "**%s** %s\n", strings.TrimSpace(SolutionLabel), e.Solution)

	if e.HasCode() {
		lang := e.Language
		if lang == DefaultCodeLanguage {
			lang = ""
		}
		fmt.Fprintf(&b, "\n```%s\n%s\n```\n", lang, strings.TrimRight(e.Code, "\n"))
	}

	return b.String()
}

// searchRequest is the body of POST /v1/search
type searchRequest struct {
	Filter   searchFilter `json:"filter"`
	PageSize int          `json:"page_size"`
}

type searchFilter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// searchResponse is the body returned by POST /v1/search
type searchResponse struct {
	Object     string       `json:"object"`
	Results    []pageObject `json:"results"`
	NextCursor *string      `json:"next_cursor"`
	HasMore    bool         `json:"has_more"`
}

type pageObject struct {
	Object     string                     `json:"object"`
	ID         string                     `json:"id"`
	URL        string                     `json:"url"`
	Properties map[string]json.RawMessage `json:"properties"`
}

type titleProperty struct {
	Type  string `json:"type"`
	Title []struct {
		PlainText string `json:"plain_text"`
	} `json:"title"`
}

// errorResponse is Notion's error envelope
type errorResponse struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// toPage converts a search result into a Page. ok is false for results
// that carry no id.
func (o pageObject) toPage() (Page, bool) {
	if o.ID == "" {
		return Page{}, false
	}
	return Page{ID: o.ID, Title: o.title(), URL: o.URL}, true
}

func (o pageObject) title() string {
	for _, key := range titlePropertyKeys {
		if raw, ok := o.Properties[key]; ok {
			if t, ok := decodeTitle(raw); ok {
				return t
			}
		}
	}

	// Database pages name their title property freely; take any title-typed one
	for _, raw := range o.Properties {
		var prop titleProperty
		if err := json.Unmarshal(raw, &prop); err != nil || prop.Type != "title" {
			continue
		}
		if t, ok := decodeTitle(raw); ok {
			return t
		}
	}

	return UntitledPage
}

func decodeTitle(raw json.RawMessage) (string, bool) {
	var prop titleProperty
	if err := json.Unmarshal(raw, &prop); err != nil {
		return "", false
	}
	var parts []string
	for _, t := range prop.Title {
		parts = append(parts, t.PlainText)
	}
	title := strings.TrimSpace(strings.Join(parts, ""))
	if title == "" {
		return "", false
	}
	return title, true
}
