package notion

import (
	"fmt"
	"unicode/utf8"
)

// Entry block layout
const (
	EntryHeading  = "📋 Error Log Entry"
	ErrorLabel    = "🔴 Error: "
	ProblemLabel  = "🟡 Problem: "
	SolutionLabel = "🟢 Solution: "

	// DefaultCodeLanguage is used for code blocks when the entry names none
	DefaultCodeLanguage = "plain text"

	// MaxRichTextLength is Notion's limit on the content of one text object
	MaxRichTextLength = 2000

	// MaxRichTextElements is Notion's limit on the rich_text array of a block
	MaxRichTextElements = 100
)

// Block is a Notion block object as sent to PATCH /v1/blocks/{id}/children.
// Only the block types faultnote writes are modelled.
type Block struct {
	Object    string          `json:"object"`
	Type      string          `json:"type"`
	Heading3  *HeadingBlock   `json:"heading_3,omitempty"`
	Paragraph *ParagraphBlock `json:"paragraph,omitempty"`
	Code      *CodeBlock      `json:"code,omitempty"`
}

// HeadingBlock is the payload of a heading_3 block
type HeadingBlock struct {
	RichText     []RichText `json:"rich_text"`
	Color        string     `json:"color"`
	IsToggleable bool       `json:"is_toggleable"`
	Children     []Block    `json:"children,omitempty"`
}

// ParagraphBlock is the payload of a paragraph block
type ParagraphBlock struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color"`
}

// CodeBlock is the payload of a code block
type CodeBlock struct {
	Caption  []RichText `json:"caption"`
	RichText []RichText `json:"rich_text"`
	Language string     `json:"language"`
}

// RichText is a text rich-text object
type RichText struct {
	Type        string       `json:"type"`
	Text        TextContent  `json:"text"`
	Annotations *Annotations `json:"annotations,omitempty"`
}

// TextContent holds the literal text of a rich-text object
type TextContent struct {
	Content string `json:"content"`
}

// Annotations style a rich-text object
type Annotations struct {
	Bold  bool   `json:"bold,omitempty"`
	Color string `json:"color,omitempty"`
}

// appendChildrenRequest is the body of PATCH /v1/blocks/{id}/children
type appendChildrenRequest struct {
	Children []Block `json:"children"`
}

// BuildEntryBlocks serializes an entry into the blocks appended to a page:
// a single toggleable heading whose children are the labelled Error,
// Problem and Solution paragraphs, followed by a code block when the entry
// has code.
func BuildEntryBlocks(entry Entry) []Block {
	children := []Block{
		labelledParagraph(ErrorLabel, "red", entry.Error),
		labelledParagraph(ProblemLabel, "yellow", entry.Problem),
		labelledParagraph(SolutionLabel, "green", entry.Solution),
	}

	if entry.HasCode() {
		language := entry.Language
		if language == "" {
			language = DefaultCodeLanguage
		}
		children = append(children, Block{
			Object: "block",
			Type:   "code",
			Code: &CodeBlock{
				Caption:  []RichText{},
				RichText: textRuns(entry.Code, nil),
				Language: language,
			},
		})
	}

	return []Block{{
		Object: "block",
		Type:   "heading_3",
		Heading3: &HeadingBlock{
			RichText:     textRuns(EntryHeading, nil),
			Color:        "red",
			IsToggleable: true,
			Children:     children,
		},
	}}
}

// CheckLimits returns a validation error when a field needs more rich-text
// objects than one block accepts. Notion rejects the whole append otherwise.
func CheckLimits(entry Entry) error {
	fields := []struct{ name, label, content string }{
		{"Error", ErrorLabel, entry.Error},
		{"Problem", ProblemLabel, entry.Problem},
		{"Solution", SolutionLabel, entry.Solution},
	}
	if entry.HasCode() {
		fields = append(fields, struct{ name, label, content string }{"Code", "", entry.Code})
	}

	for _, f := range fields {
		available := MaxRichTextElements - runCount(f.label)
		if runCount(f.content) > available {
			return NewValidationError(fmt.Sprintf("%s is too long: %d characters, the limit is %d",
				f.name, utf8.RuneCountInString(f.content), available*MaxRichTextLength))
		}
	}
	return nil
}

// runCount is the number of rich-text objects textRuns makes for s
func runCount(s string) int {
	n := utf8.RuneCountInString(s)
	return (n + MaxRichTextLength - 1) / MaxRichTextLength
}

func labelledParagraph(label, color, content string) Block {
	runs := textRuns(label, &Annotations{Bold: true, Color: color})
	runs = append(runs, textRuns(content, nil)...)
	return Block{
		Object: "block",
		Type:   "paragraph",
		Paragraph: &ParagraphBlock{
			RichText: runs,
			Color:    "default",
		},
	}
}

// textRuns splits content into rich-text objects no longer than
// MaxRichTextLength runes each. Empty content yields no runs.
func textRuns(content string, annotations *Annotations) []RichText {
	var runs []RichText
	for _, chunk := range splitRunes(content, MaxRichTextLength) {
		runs = append(runs, RichText{
			Type:        "text",
			Text:        TextContent{Content: chunk},
			Annotations: annotations,
		})
	}
	return runs
}

func splitRunes(s string, limit int) []string {
	if s == "" {
		return nil
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return []string{s}
	}
	var chunks []string
	for len(runes) > 0 {
		n := min(limit, len(runes))
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	return chunks
}
