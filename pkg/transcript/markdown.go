package transcript

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// The parser and policy never change once built and are safe for concurrent use.
var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once

	policyInstance *bluemonday.Policy
	policyOnce     sync.Once
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(
				extension.Strikethrough,
				extension.Linkify,
			),
			// Discord treats every newline as a line break.
			goldmark.WithRendererOptions(html.WithHardWraps()),
		)
	})
	return markdownInstance
}

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policyInstance = bluemonday.UGCPolicy()
		policyInstance.RequireNoFollowOnLinks(true)
		policyInstance.AddTargetBlankToFullyQualifiedLinks(true)
	})
	return policyInstance
}

// renderMarkdown converts message markdown to sanitized HTML. If the markdown cannot be rendered the escaped raw
// text is returned instead.
func renderMarkdown(content string) template.HTML {
	if content == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := getMarkdown().Convert([]byte(content), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(content))
	}

	// Goldmark omits raw HTML unless told otherwise, the policy removes anything else unsafe such as javascript links.
	return template.HTML(getPolicy().SanitizeBytes(buf.Bytes()))
}
