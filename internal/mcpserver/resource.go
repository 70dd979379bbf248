package mcpserver

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const bufferURIPrefix = "emacs-buffer://"

func (s *Server) registerBufferResource() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "emacs-buffer",
		URITemplate: bufferURIPrefix + "{buffer}",
		Description: "Full contents of an Emacs buffer, such as an org-mode file.",
		MIMEType:    "text/plain",
	}, s.handleBufferResource)
}

// bufferFromURI extracts the buffer name from an emacs-buffer:// URI.
func bufferFromURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, bufferURIPrefix) {
		return "", fmt.Errorf("not an emacs-buffer URI: %q", uri)
	}
	name, err := url.PathUnescape(strings.TrimPrefix(uri, bufferURIPrefix))
	if err != nil {
		return "", fmt.Errorf("bad emacs-buffer URI %q: %w", uri, err)
	}
	if name == "" {
		return "", fmt.Errorf("empty buffer name in URI %q", uri)
	}
	return name, nil
}

func (s *Server) handleBufferResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	buffer, err := bufferFromURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	text, err := s.opts.Emacs.Read(ctx, buffer)
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: req.Params.URI, MIMEType: "text/plain", Text: text},
		},
	}, nil
}
