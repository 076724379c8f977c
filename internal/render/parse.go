// Package render parses the fixed page dialect into typed lines and emits
// ANSI-styled terminal output.
//
// The dialect is line-oriented: one leading "# " title, optional "> "
// description lines, then repeated pairs of a "- " example description and a
// backtick-wrapped example command. Inside commands, "{{...}}" delimits
// placeholder tokens; inside descriptions, "`" delimits inline code.
// Parsing is lenient: a line that fits no construct is treated as plain
// description text, never an error.
package render

import "strings"

// Role classifies a parsed line or an inline span within it.
type Role int

const (
	RoleTitle Role = iota
	RoleDescription
	RoleExampleDescription
	RoleExampleCode
	RolePlaceholder
	RoleInlineCode
)

// Span is a run of text rendered with a single style.
type Span struct {
	Text string
	Role Role
}

// Line is one parsed page line: its role plus its styled spans.
type Line struct {
	Role  Role
	Spans []Span
}

// text reassembles the line's plain text (delimiters already stripped).
func (l Line) text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// parser states. The state only influences leniency bookkeeping: line shape
// decides the role, and anything unexpected degrades to description text.
type state int

const (
	stateTitle state = iota
	stateDescription
	stateExample
)

// Parse parses page text into its typed lines. Blank lines separate blocks
// and carry no content, so they are dropped. Parse never fails; malformed
// input degrades to description lines.
func Parse(text string) []Line {
	var lines []Line
	st := stateTitle

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "# "):
			lines = append(lines, Line{
				Role:  RoleTitle,
				Spans: []Span{{Text: strings.TrimPrefix(line, "# "), Role: RoleTitle}},
			})
			st = stateDescription

		case strings.HasPrefix(line, "> "):
			lines = append(lines, Line{
				Role:  RoleDescription,
				Spans: inlineCodeSpans(strings.TrimPrefix(line, "> "), RoleDescription),
			})
			st = stateDescription

		case strings.HasPrefix(line, "- "):
			lines = append(lines, Line{
				Role:  RoleExampleDescription,
				Spans: inlineCodeSpans(strings.TrimPrefix(line, "- "), RoleExampleDescription),
			})
			st = stateExample

		case strings.HasPrefix(line, "`") && strings.HasSuffix(line, "`") && len(line) >= 2:
			lines = append(lines, Line{
				Role:  RoleExampleCode,
				Spans: placeholderSpans(strings.Trim(line, "`")),
			})
			st = stateExample

		default:
			// Catch-all: unexpected shapes are plain description text.
			lines = append(lines, Line{
				Role:  RoleDescription,
				Spans: inlineCodeSpans(line, RoleDescription),
			})
			if st == stateTitle {
				st = stateDescription
			}
		}
	}

	return lines
}

// placeholderSpans splits example command text on "{{...}}" placeholder
// tokens. Delimiters are stripped; placeholder text gets RolePlaceholder and
// everything else RoleExampleCode. An unclosed "{{" is treated literally.
func placeholderSpans(text string) []Span {
	var spans []Span
	for len(text) > 0 {
		open := strings.Index(text, "{{")
		if open < 0 {
			spans = append(spans, Span{Text: text, Role: RoleExampleCode})
			break
		}
		end := strings.Index(text[open+2:], "}}")
		if end < 0 {
			spans = append(spans, Span{Text: text, Role: RoleExampleCode})
			break
		}

		if open > 0 {
			spans = append(spans, Span{Text: text[:open], Role: RoleExampleCode})
		}
		spans = append(spans, Span{Text: text[open+2 : open+2+end], Role: RolePlaceholder})
		text = text[open+2+end+2:]
	}
	return spans
}

// inlineCodeSpans splits description text on "`" inline-code delimiters.
// Delimiters are stripped; code spans get RoleInlineCode. An unmatched
// trailing backtick is treated literally.
func inlineCodeSpans(text string, role Role) []Span {
	var spans []Span
	for len(text) > 0 {
		open := strings.IndexByte(text, '`')
		if open < 0 {
			spans = append(spans, Span{Text: text, Role: role})
			break
		}
		end := strings.IndexByte(text[open+1:], '`')
		if end < 0 {
			spans = append(spans, Span{Text: text, Role: role})
			break
		}

		if open > 0 {
			spans = append(spans, Span{Text: text[:open], Role: role})
		}
		spans = append(spans, Span{Text: text[open+1 : open+1+end], Role: RoleInlineCode})
		text = text[open+1+end+1:]
	}
	return spans
}
