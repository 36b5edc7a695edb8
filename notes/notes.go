// Package notes parses speaker notes for a slide deck from a single markdown
// file and renders them for overlay views. Notes are assigned to slides with
// level-3 headings naming the 1-based slide number:
//
//	### 1
//	Opening remarks, with *markdown* and $$e = mc^2$$.
//
//	### 4
//	Skip the demo if short on time.
//
// Slides without a heading simply have no note.
package notes

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	treeblood "github.com/wyatt915/goldmark-treeblood"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
)

// Notes holds per-slide speaker notes. Slide indices are 0-based, matching
// the display controller.
type Notes struct {
	bySlide map[int]string
}

// Parse splits markdown source into per-slide notes. Content before the
// first slide heading is ignored. A heading that does not name a positive
// integer is an error.
func Parse(src []byte) (*Notes, error) {
	n := &Notes{bySlide: make(map[int]string)}

	current := -1
	var buf strings.Builder
	flush := func() {
		if current < 0 {
			return
		}
		text := strings.TrimSpace(buf.String())
		if text != "" {
			n.bySlide[current] = text
		}
		buf.Reset()
	}

	for _, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "### ") {
			num, err := strconv.Atoi(strings.TrimSpace(trimmed[4:]))
			if err != nil || num < 1 {
				return nil, fmt.Errorf("notes: bad slide heading %q", trimmed)
			}
			flush()
			current = num - 1
			continue
		}
		if current >= 0 {
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	flush()
	return n, nil
}

// HasNote reports whether the slide has a note.
func (n *Notes) HasNote(slide int) bool {
	_, ok := n.bySlide[slide]
	return ok
}

// Markdown returns the raw markdown note for the slide, or "".
func (n *Notes) Markdown(slide int) string { return n.bySlide[slide] }

// Slides returns the number of slides that carry a note.
func (n *Notes) Slides() int { return len(n.bySlide) }

// HTML renders the slide's note to HTML. Display math written as $$...$$ is
// converted to MathML. An empty note renders to "".
func (n *Notes) HTML(slide int) (string, error) {
	src, ok := n.bySlide[slide]
	if !ok {
		return "", nil
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			treeblood.MathML(),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render note for slide %d: %w", slide, err)
	}
	return buf.String(), nil
}

// PlainText renders the slide's note and strips the markup, for overlays
// that can only show text.
func (n *Notes) PlainText(slide int) (string, error) {
	rendered, err := n.HTML(slide)
	if err != nil {
		return "", err
	}
	if rendered == "" {
		return "", nil
	}

	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return "", fmt.Errorf("parse rendered note for slide %d: %w", slide, err)
	}
	return extractText(doc), nil
}

func extractText(n *html.Node) string {
	var sb strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return strings.TrimSpace(sb.String())
}
