package infrastructure

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// XMLFormatter pretty-prints, minifies and validates XML documents.
// Namespace prefixes are kept as written; whitespace-only text between
// elements is dropped and other text is trimmed.
type XMLFormatter struct{}

// NewXMLFormatter creates a new XMLFormatter.
func NewXMLFormatter() *XMLFormatter {
	return &XMLFormatter{}
}

// Format renders text with one node per line and indent spaces per level.
// Elements holding only text stay on a single line.
func (f *XMLFormatter) Format(text string, indent int) (string, error) {
	tokens, err := f.tokenize(text)
	if err != nil {
		return "", err
	}
	return render(tokens, strings.Repeat(" ", indent), "\n"), nil
}

// Minify renders text without any whitespace between nodes.
func (f *XMLFormatter) Minify(text string) (string, error) {
	tokens, err := f.tokenize(text)
	if err != nil {
		return "", err
	}
	return render(tokens, "", ""), nil
}

// Validate reports whether text is a well-formed XML document.
func (f *XMLFormatter) Validate(text string) ValidationReport {
	if _, err := f.tokenize(text); err != nil {
		return ValidationReport{Valid: false, Error: err.Error()}
	}
	return ValidationReport{Valid: true}
}

// tokenize reads the whole document, checks that elements nest correctly and
// that there is exactly one root element.
func (f *XMLFormatter) tokenize(text string) ([]xml.Token, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("invalid XML: input is empty")
	}

	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = true

	var (
		tokens []xml.Token
		open   []string
		roots  int
	)
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(open) == 0 {
				roots++
				if roots > 1 {
					return nil, fmt.Errorf("invalid XML: multiple root elements (second is <%s>)", qualifiedName(t.Name))
				}
			}
			open = append(open, qualifiedName(t.Name))
		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(open) == 0 || open[len(open)-1] != name {
				return nil, fmt.Errorf("invalid XML: unexpected closing tag </%s>", name)
			}
			open = open[:len(open)-1]
		case xml.CharData:
			trimmed := strings.TrimSpace(string(t))
			if trimmed == "" {
				continue
			}
			if len(open) == 0 {
				return nil, fmt.Errorf("invalid XML: text %q outside the root element", trimmed)
			}
			tok = xml.CharData(trimmed)
		}
		tokens = append(tokens, xml.CopyToken(tok))
	}

	if len(open) > 0 {
		return nil, fmt.Errorf("invalid XML: element <%s> is not closed", open[len(open)-1])
	}
	if roots == 0 {
		return nil, errors.New("invalid XML: no root element")
	}
	return tokens, nil
}

// render writes tokens with the given indent unit and line separator.
// Empty elements collapse to <name/>.
func render(tokens []xml.Token, indent, newline string) string {
	var (
		b     strings.Builder
		depth int
		first = true
	)
	line := func(s string) {
		if !first {
			b.WriteString(newline)
		}
		first = false
		b.WriteString(strings.Repeat(indent, depth))
		b.WriteString(s)
	}

	for i := 0; i < len(tokens); i++ {
		switch t := tokens[i].(type) {
		case xml.StartElement:
			open := startTag(t)
			if next, ok := tokenAt(tokens, i+1).(xml.EndElement); ok && next.Name == t.Name {
				line(open[:len(open)-1] + "/>")
				i++
				continue
			}
			if text, ok := tokenAt(tokens, i+1).(xml.CharData); ok {
				if end, ok := tokenAt(tokens, i+2).(xml.EndElement); ok && end.Name == t.Name {
					line(open + escapeText(string(text)) + "</" + qualifiedName(t.Name) + ">")
					i += 2
					continue
				}
			}
			line(open)
			depth++
		case xml.EndElement:
			depth--
			line("</" + qualifiedName(t.Name) + ">")
		case xml.CharData:
			line(escapeText(string(t)))
		case xml.Comment:
			line("<!--" + string(t) + "-->")
		case xml.ProcInst:
			if len(t.Inst) == 0 {
				line("<?" + t.Target + "?>")
			} else {
				line("<?" + t.Target + " " + string(t.Inst) + "?>")
			}
		case xml.Directive:
			line("<!" + string(t) + ">")
		}
	}
	return b.String()
}

func tokenAt(tokens []xml.Token, i int) xml.Token {
	if i < len(tokens) {
		return tokens[i]
	}
	return nil
}

func startTag(t xml.StartElement) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(qualifiedName(t.Name))
	for _, attr := range t.Attr {
		b.WriteString(" ")
		b.WriteString(qualifiedName(attr.Name))
		b.WriteString(`="`)
		b.WriteString(escapeAttr(attr.Value))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	return b.String()
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "\n", "&#xA;", "\t", "&#x9;", "\r", "&#xD;")
)

func escapeText(s string) string { return textEscaper.Replace(s) }

func escapeAttr(s string) string { return attrEscaper.Replace(s) }
