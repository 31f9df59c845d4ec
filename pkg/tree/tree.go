// Package tree renders the scaffolded output as a compressed
// directory tree: chains of single-child directories collapse onto
// one display line, and each file is annotated with the variants that
// produced it. Rendering is purely presentational and never affects
// merge results.
package tree

import (
	"sort"
	"strings"

	"github.com/arthur-debert/stencil/pkg/style"
)

// Entry is one output path tagged with its credited variants.
type Entry struct {
	Path     string
	Variants []string
}

// Renderer builds the textual tree. With color enabled, directory and
// annotation text are styled via lipgloss; alignment is always
// computed on the plain text.
type Renderer struct {
	color bool
}

// NewRenderer creates a Renderer. Pass color=false for plain output
// (non-TTY, tests).
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

type node struct {
	label    string
	variants []string
	children []*node
}

func (n *node) isLeaf() bool {
	return len(n.children) == 0
}

func (n *node) child(label string) *node {
	for _, c := range n.children {
		if c.label == label {
			return c
		}
	}
	c := &node{label: label}
	n.children = append(n.children, c)
	return c
}

// Render produces the annotated tree for the given entries.
func (r *Renderer) Render(entries []Entry) string {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	root := &node{}
	for _, e := range sorted {
		insert(root, strings.Split(e.Path, "/"), e.Variants)
	}
	collapse(root)

	var b strings.Builder
	r.renderGroup(&b, root.children, 0)
	return b.String()
}

func insert(n *node, segments []string, variants []string) {
	current := n
	for _, segment := range segments {
		current = current.child(segment)
	}
	current.variants = variants
}

// collapse folds every chain of single-child directories into its
// child, including a final leaf, so "src/lib/index.ts" becomes a
// single node.
func collapse(n *node) {
	for _, c := range n.children {
		for len(c.children) == 1 && c.variants == nil {
			only := c.children[0]
			c.label = c.label + "/" + only.label
			c.variants = only.variants
			c.children = only.children
		}
		collapse(c)
	}
}

// renderGroup writes one sibling group. Leaf annotations are
// right-aligned against the longest rendered line in the group.
func (r *Renderer) renderGroup(b *strings.Builder, group []*node, depth int) {
	indent := strings.Repeat("  ", depth)

	width := 0
	for _, n := range group {
		if l := len(indent) + len(plainLabel(n)); l > width {
			width = l
		}
	}

	for _, n := range group {
		plain := indent + plainLabel(n)

		if n.isLeaf() {
			line := plain
			if len(n.variants) > 0 {
				padding := strings.Repeat(" ", width-len(plain))
				annotation := strings.Join(n.variants, ", ")
				if r.color {
					annotation = style.MutedStyle.Render(annotation)
				}
				line += padding + "  " + annotation
			}
			b.WriteString(line + "\n")
			continue
		}

		label := plainLabel(n)
		if r.color {
			label = style.Bold(label)
		}
		b.WriteString(indent + label + "\n")
		r.renderGroup(b, n.children, depth+1)
	}
}

func plainLabel(n *node) string {
	if n.isLeaf() {
		return n.label
	}
	return n.label + "/"
}
