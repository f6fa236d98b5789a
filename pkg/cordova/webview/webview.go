// Package webview implements the report dialog host over an HTML page, as
// rendered by a hybrid app's web view.
package webview

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/strongdm/sentry-cordova-go/pkg/cordova"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Option configures a Document.
type Option func(*Document)

// WithLoader loads every appended script with loader and fires its OnLoad
// callback when loading succeeds.
func WithLoader(loader ScriptLoader) Option {
	return func(d *Document) {
		d.loader = loader
	}
}

// WithContext sets the context script loads run under (default: background).
func WithContext(ctx context.Context) Option {
	return func(d *Document) {
		if ctx != nil {
			d.ctx = ctx
		}
	}
}

// Document is an HTML page scripts can be injected into.
// It is safe for concurrent use.
type Document struct {
	mu      sync.Mutex
	root    *html.Node
	loader  ScriptLoader
	ctx     context.Context
	pending sync.WaitGroup
}

// Parse reads a complete HTML page. The HTML parser always synthesizes head
// and body elements.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return NewDocument(root, opts...), nil
}

// NewDocument wraps an already built node tree.
func NewDocument(root *html.Node, opts ...Option) *Document {
	d := &Document{
		root: root,
		ctx:  context.Background(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Head returns the head element, or nil when the page has none.
func (d *Document) Head() cordova.Node {
	return d.element(atom.Head)
}

// Body returns the body element, or nil when the page has none.
func (d *Document) Body() cordova.Node {
	return d.element(atom.Body)
}

func (d *Document) element(a atom.Atom) cordova.Node {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := findElement(d.root, a)
	if n == nil {
		return nil
	}
	return &element{doc: d, node: n}
}

// Render writes the page as HTML.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.root)
}

// Scripts returns the src of every script element in document order.
func (d *Document) Scripts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var srcs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script {
			for _, a := range n.Attr {
				if a.Key == "src" {
					srcs = append(srcs, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return srcs
}

// Wait blocks until every started script load has finished.
func (d *Document) Wait() {
	d.pending.Wait()
}

func (d *Document) appendScript(parent *html.Node, script *cordova.ScriptElement) {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     "script",
		DataAtom: atom.Script,
	}
	if script.Async {
		n.Attr = append(n.Attr, html.Attribute{Key: "async"})
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "src", Val: script.Src})

	d.mu.Lock()
	parent.AppendChild(n)
	loader := d.loader
	d.mu.Unlock()

	if loader == nil {
		return
	}

	d.pending.Add(1)
	go func() {
		defer d.pending.Done()
		if err := loader.Load(d.ctx, script.Src); err != nil {
			return
		}
		if script.OnLoad != nil {
			script.OnLoad()
		}
	}()
}

// element adapts an *html.Node to cordova.Node.
type element struct {
	doc  *Document
	node *html.Node
}

func (e *element) AppendChild(script *cordova.ScriptElement) {
	if script == nil {
		return
	}
	e.doc.appendScript(e.node, script)
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// Host exposes a Document as a cordova.Host.
type Host struct {
	doc *Document
}

// NewHost returns a Host for doc. A nil doc yields a host without a document.
func NewHost(doc *Document) *Host {
	return &Host{doc: doc}
}

// Document returns the wrapped document.
func (h *Host) Document() (cordova.Document, bool) {
	if h == nil || h.doc == nil {
		return nil, false
	}
	return h.doc, true
}
