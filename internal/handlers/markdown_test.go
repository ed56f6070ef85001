package handlers

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	out := string(RenderMarkdown("**bold** and `code`"))
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("bold not rendered: %q", out)
	}
	if !strings.Contains(out, "<code>code</code>") {
		t.Fatalf("code not rendered: %q", out)
	}
}

func TestRenderMarkdown_EscapesRawHTML(t *testing.T) {
	out := string(RenderMarkdown(`<script>alert(1)</script>`))
	if strings.Contains(out, "<script>") {
		t.Fatalf("raw script tag leaked: %q", out)
	}
}

func TestRenderMarkdown_GFMTable(t *testing.T) {
	src := "| a | b |\n|---|---|\n| 1 | 2 |"
	out := string(RenderMarkdown(src))
	if !strings.Contains(out, "<table>") {
		t.Fatalf("table not rendered: %q", out)
	}
}
