package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"pageforge/internal/domain"
)

func (s *Server) registerComponentTools() {
	// ── list_component_types ───────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_component_types",
		mcp.WithDescription("List every component type the builder can place, with its editable properties and defaults"),
	), s.handleListComponentTypes)

	// ── get_builder_state ──────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_builder_state",
		mcp.WithDescription("Get the current canvas, selection, editor panel and active post"),
	), s.handleGetBuilderState)

	// ── add_component ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_component",
		mcp.WithDescription("Append a component to the canvas with its default properties. The new component becomes selected."),
		mcp.WithString("type",
			mcp.Description("Component type, e.g. HeaderElement (see list_component_types)"),
			mcp.Required(),
		),
		mcp.WithString("props",
			mcp.Description("Optional JSON object of properties to apply right after creation"),
		),
	), s.handleAddComponent)

	// ── update_component_props ─────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_component_props",
		mcp.WithDescription("Merge properties into a component. Values must match the property types from list_component_types."),
		mcp.WithString("componentId", mcp.Description("ID of the component"), mcp.Required()),
		mcp.WithString("props", mcp.Description("JSON object of properties to set"), mcp.Required()),
	), s.handleUpdateComponentProps)

	// ── delete_component ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_component",
		mcp.WithDescription("🛑 DESTRUCTIVE: Remove a component from the canvas. Requires user approval."),
		mcp.WithString("componentId", mcp.Description("ID of the component"), mcp.Required()),
	), s.handleDeleteComponent)

	// ── move_component ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_component",
		mcp.WithDescription("Move a component one position up or down. Moving past either end does nothing."),
		mcp.WithString("componentId", mcp.Description("ID of the component"), mcp.Required()),
		mcp.WithString("direction",
			mcp.Description("up or down"),
			mcp.Enum("up", "down"),
			mcp.Required(),
		),
	), s.handleMoveComponent)

	// ── select_component ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("select_component",
		mcp.WithDescription("Select a component and open it in the property editor. Omit componentId to deselect."),
		mcp.WithString("componentId", mcp.Description("ID of the component, empty to deselect")),
	), s.handleSelectComponent)

	// ── generate_text ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("generate_text",
		mcp.WithDescription("Run an AI action of a component: reads its prompt field and writes the generated text into its target field"),
		mcp.WithString("componentId", mcp.Description("ID of the component"), mcp.Required()),
		mcp.WithString("action",
			mcp.Description("Name of the action property (default aiActionButton)"),
		),
	), s.handleGenerateText)
}

func (s *Server) handleListComponentTypes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.builder.Registry().List())
}

func (s *Server) handleGetBuilderState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.builder.GetState())
}

func (s *Server) handleAddComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	componentType := req.GetString("type", "")
	if componentType == "" {
		return nil, fmt.Errorf("type is required")
	}
	var props domain.Props
	if raw := req.GetString("props", ""); raw != "" {
		var err error
		if props, err = parseProps(raw); err != nil {
			return nil, err
		}
	}

	state, err := s.builder.AddComponentWithProps(componentType, props)
	if err != nil {
		return nil, fmt.Errorf("add component: %w", err)
	}
	if state.EditingComponent != nil {
		return jsonResult(*state.EditingComponent)
	}
	return jsonResult(state.PageComponents[len(state.PageComponents)-1])
}

func (s *Server) handleUpdateComponentProps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("componentId", "")
	raw := req.GetString("props", "")
	if id == "" || raw == "" {
		return nil, fmt.Errorf("componentId and props are required")
	}
	props, err := parseProps(raw)
	if err != nil {
		return nil, err
	}
	state, err := s.builder.UpdateComponentProps(id, props)
	if err != nil {
		return nil, fmt.Errorf("update component: %w", err)
	}
	for _, c := range state.PageComponents {
		if c.ID == id {
			return jsonResult(c)
		}
	}
	return textResult("Component updated"), nil
}

func (s *Server) handleDeleteComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("componentId", "")
	if id == "" {
		return nil, fmt.Errorf("componentId is required")
	}
	if _, err := s.approval.Request("delete_component",
		fmt.Sprintf("Remove component %s from the canvas", id), approvalMetadata("componentId", id)); err != nil {
		return nil, err
	}
	if _, err := s.builder.DeleteComponent(id); err != nil {
		return nil, fmt.Errorf("delete component: %w", err)
	}
	return textResult(fmt.Sprintf("Component %s removed", id)), nil
}

func (s *Server) handleMoveComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("componentId", "")
	if id == "" {
		return nil, fmt.Errorf("componentId is required")
	}
	var (
		state domain.BuilderState
		err   error
	)
	switch dir := req.GetString("direction", ""); dir {
	case "up":
		state, err = s.builder.MoveComponentUp(id)
	case "down":
		state, err = s.builder.MoveComponentDown(id)
	default:
		return nil, fmt.Errorf("direction must be up or down, got %q", dir)
	}
	if err != nil {
		return nil, fmt.Errorf("move component: %w", err)
	}
	order := make([]string, len(state.PageComponents))
	for i, c := range state.PageComponents {
		order[i] = c.ID
	}
	return jsonResult(map[string]any{"order": order})
}

func (s *Server) handleSelectComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.builder.SelectComponent(req.GetString("componentId", ""))
	if err != nil {
		return nil, fmt.Errorf("select component: %w", err)
	}
	return jsonResult(map[string]any{
		"selectedComponentId":       state.SelectedComponentID,
		"isPropertyEditorPanelOpen": state.IsPropertyEditorPanelOpen,
	})
}

func (s *Server) handleGenerateText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("componentId", "")
	if id == "" {
		return nil, fmt.Errorf("componentId is required")
	}
	state, err := s.builder.GenerateText(ctx, id, req.GetString("action", "aiActionButton"))
	if err != nil {
		return nil, fmt.Errorf("generate text: %w", err)
	}
	for _, c := range state.PageComponents {
		if c.ID == id {
			return jsonResult(c)
		}
	}
	return textResult("Text generated"), nil
}
