// File: internal/handlers/markdown.go
package handlers

import (
	"bytes"
	"html/template"
	"log"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md renders assistant replies for the chat page. Raw HTML inside the
// model output is escaped, not passed through.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// RenderMarkdown converts assistant markdown to HTML for templates. On a
// render failure the raw text is returned escaped.
func RenderMarkdown(content string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		log.Printf("[Markdown] render error: %v", err)
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(buf.String())
}
