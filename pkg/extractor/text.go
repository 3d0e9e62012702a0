package extractor

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// collapsedText returns the concatenated text content of a selection
// with surrounding and repeated whitespace collapsed.
func collapsedText(sel *goquery.Selection) string {
	var buffer bytes.Buffer
	for _, node := range sel.Nodes {
		collectText(node, &buffer)
	}

	text := strings.TrimSpace(buffer.String())
	return innerWhitespace.ReplaceAllString(text, " ")
}

// collectText appends the text content of node and its children to buffer
func collectText(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, buffer)
	}
}
