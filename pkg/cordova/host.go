// host.go abstracts the web view the report dialog is injected into.

package cordova

// Host is the environment the client runs in.
type Host interface {
	// Document returns the host document, or false when the environment
	// has none (for example a headless process or a native-only runtime).
	Document() (Document, bool)
}

// Document is the subset of a DOM document the client needs.
type Document interface {
	// Head returns the document's head element, or nil if absent.
	Head() Node

	// Body returns the document's body element, or nil if absent.
	Body() Node
}

// Node is an element scripts can be appended to.
type Node interface {
	AppendChild(script *ScriptElement)
}

// ScriptElement is a script tag to be loaded by the host.
type ScriptElement struct {
	Src   string
	Async bool

	// OnLoad is invoked at most once by the host when the script finished
	// loading. The client registers it and never waits for it.
	OnLoad func()
}

// NoDocumentHost is a Host without a document.
type NoDocumentHost struct{}

// Document always reports no document.
func (NoDocumentHost) Document() (Document, bool) {
	return nil, false
}
