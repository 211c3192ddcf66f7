package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	registryURI   = "pageforge://registry"
	stateURI      = "pageforge://state"
	postURIPrefix = "pageforge://post/"
)

func (s *Server) registerResources() {
	// ── pageforge://registry ───────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		registryURI,
		"Component Registry",
		mcp.WithResourceDescription("Every component type with its property schema and defaults"),
		mcp.WithMIMEType("application/json"),
	), s.handleRegistryResource)

	// ── pageforge://state ──────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		stateURI,
		"Builder State",
		mcp.WithResourceDescription("Current canvas, selection, editor panel, posts and active post"),
		mcp.WithMIMEType("application/json"),
	), s.handleStateResource)

	// ── pageforge://post/{postId} ──────────────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			postURIPrefix+"{postId}",
			"A Post",
		),
		s.handlePostResource,
	)
}

func (s *Server) handleRegistryResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(registryURI, s.builder.Registry().List())
}

func (s *Server) handleStateResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(stateURI, s.builder.GetState())
}

func (s *Server) handlePostResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	id := strings.Trim(strings.TrimPrefix(uri, postURIPrefix), "/")
	if id == "" || id == uri {
		return nil, fmt.Errorf("could not extract postId from URI: %s", uri)
	}
	for _, p := range s.builder.GetState().Posts {
		if p.ID == id {
			return jsonResource(uri, p)
		}
	}
	return nil, fmt.Errorf("post %s not found", id)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
