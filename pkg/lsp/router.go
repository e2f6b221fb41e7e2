package lsp

// Router dispatches LSP methods to the Server's handlers.
type Router struct {
	server *Server
}

// NewRouter creates a new Router for the given server.
func NewRouter(server *Server) *Router {
	return &Router{server: server}
}

// Route dispatches a request to the appropriate handler. handled is false
// for methods the server does not handle; those are ignored. A *Error is
// meant for the client; any other error is a failure to write to it.
func (r *Router) Route(req Request) (result any, handled bool, err error) {
	switch req.Method {
	// Lifecycle
	case "initialize":
		result, err = r.server.handleInitialize(req.Params)
	case "initialized":
		result, err = r.server.handleInitialized()
	case "shutdown":
		result, err = r.server.handleShutdown()
	case "exit":
		r.server.handleExit()

	// Document synchronization
	case "textDocument/didOpen":
		result, err = r.server.handleDidOpen(req.Params)
	case "textDocument/didChange":
		result, err = r.server.handleDidChange(req.Params)
	case "textDocument/didSave":
		result, err = r.server.handleDidSave(req.Params)

	default:
		return nil, false, nil
	}
	return result, true, err
}
