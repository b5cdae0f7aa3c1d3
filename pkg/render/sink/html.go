package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/otelviz/pkg/widget"
)

// RenderHTML wraps body (inline SVG or widget markup) in a titled diagram
// container inside a standalone page.
func RenderHTML(title string, body widget.HTML) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
	buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	buf.WriteString("</head>\n<body style=\"font-family: system-ui, -apple-system, sans-serif; max-width: 960px; margin: 0 auto;\">\n")
	buf.WriteString(string(widget.Container(title, body)))
	buf.WriteString("\n</body>\n</html>\n")
	return buf.Bytes()
}
