package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"pageforge/internal/domain"
)

func (s *Server) registerPostTools() {
	// ── list_posts ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List all posts with status, component count and last update"),
	), s.handleListPosts)

	// ── create_post ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_post",
		mcp.WithDescription("Create a draft post and make it active with an empty canvas"),
		mcp.WithString("title", mcp.Description("Title of the post")),
	), s.handleCreatePost)

	// ── select_post ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("select_post",
		mcp.WithDescription("Load a post onto the canvas. Omit postId to leave no post active."),
		mcp.WithString("postId", mcp.Description("ID of the post")),
	), s.handleSelectPost)

	// ── delete_post ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_post",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete a post and its components. Requires user approval."),
		mcp.WithString("postId", mcp.Description("ID of the post"), mcp.Required()),
	), s.handleDeletePost)

	// ── update_post ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_post",
		mcp.WithDescription("Rename a post and/or change its status"),
		mcp.WithString("postId", mcp.Description("ID of the post"), mcp.Required()),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("status",
			mcp.Description("draft or published"),
			mcp.Enum(string(domain.PostStatusDraft), string(domain.PostStatusPublished)),
		),
	), s.handleUpdatePost)
}

func (s *Server) handleListPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	posts, err := s.builder.ListPosts()
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return jsonResult(posts)
}

func (s *Server) handleCreatePost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.builder.CreatePost(req.GetString("title", ""))
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	for _, p := range state.Posts {
		if p.ID == state.ActivePostID {
			return jsonResult(p)
		}
	}
	return textResult(fmt.Sprintf("Post %s created", state.ActivePostID)), nil
}

func (s *Server) handleSelectPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.builder.SelectPost(req.GetString("postId", ""))
	if err != nil {
		return nil, fmt.Errorf("select post: %w", err)
	}
	return jsonResult(map[string]any{
		"activePostId":   state.ActivePostID,
		"pageComponents": state.PageComponents,
	})
}

func (s *Server) handleDeletePost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("postId", "")
	if id == "" {
		return nil, fmt.Errorf("postId is required")
	}
	if _, err := s.approval.Request("delete_post", fmt.Sprintf("Delete post %s", id), approvalMetadata("postId", id)); err != nil {
		return nil, err
	}
	if _, err := s.builder.DeletePostStorage(id); err != nil {
		return nil, fmt.Errorf("delete post: %w", err)
	}
	return textResult(fmt.Sprintf("Post %s deleted", id)), nil
}

func (s *Server) handleUpdatePost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("postId", "")
	if id == "" {
		return nil, fmt.Errorf("postId is required")
	}
	title := req.GetString("title", "")
	status := req.GetString("status", "")
	if title == "" && status == "" {
		return nil, fmt.Errorf("title or status is required")
	}
	state, err := s.builder.UpdatePost(id, title, domain.PostStatus(status))
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	for _, p := range state.Posts {
		if p.ID == id {
			return jsonResult(p)
		}
	}
	return textResult(fmt.Sprintf("Post %s updated", id)), nil
}
