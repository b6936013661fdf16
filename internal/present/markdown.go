package present

import (
	"strings"

	"github.com/russross/blackfriday/v2"
)

// PlainExplanation flattens markdown the classifier sometimes emits into a
// single line of prose.
func PlainExplanation(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	return FlattenMarkdown(input)
}

// FlattenMarkdown keeps text and code literals and drops all markup.
func FlattenMarkdown(input string) string {
	root := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions)).Parse([]byte(input))
	var b strings.Builder
	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch node.Type {
		case blackfriday.Text, blackfriday.Code:
			b.Write(node.Literal)
		case blackfriday.CodeBlock:
			b.Write(node.Literal)
			b.WriteByte(' ')
		case blackfriday.Softbreak, blackfriday.Hardbreak:
			b.WriteByte(' ')
		case blackfriday.Paragraph, blackfriday.Heading, blackfriday.Item:
			if !entering {
				b.WriteByte(' ')
			}
		}
		return blackfriday.GoToNext
	})
	return strings.Join(strings.Fields(b.String()), " ")
}
