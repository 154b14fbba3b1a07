package internal

// Handler serves the RPC namespaces under Path.
type Handler interface {
	PreHandler
	Path() string
	Namespaces() map[string]interface{}
}
