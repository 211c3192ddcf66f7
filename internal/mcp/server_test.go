package mcpserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pageforge/internal/domain"
	"pageforge/internal/registry"
	"pageforge/internal/service"
	"pageforge/internal/storage"
)

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, prompt string) (string, error) {
	return "echo: " + prompt, nil
}

func newTestServer(t *testing.T, requireApproval bool) (*Server, *service.MockEmitter) {
	t.Helper()
	em := &service.MockEmitter{}
	b := service.NewBuilder(service.BuilderDeps{
		Registry:  registry.Default(),
		Posts:     storage.NewPostStore(),
		Emitter:   em,
		Generator: echoGenerator{},
	})
	return New(context.Background(), Deps{Emitter: em, Builder: b, RequireApproval: requireApproval}), em
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func decode[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &v))
	return v
}

func TestAddAndUpdateComponent(t *testing.T) {
	s, _ := newTestServer(t, false)
	ctx := context.Background()

	res, err := s.handleAddComponent(ctx, call(map[string]any{
		"type":  registry.TypeHeader,
		"props": `{"title":"Sale Now","level":2}`,
	}))
	require.NoError(t, err)
	c := decode[domain.Component](t, res)
	assert.Equal(t, "Sale Now", c.Props["title"])
	assert.Equal(t, 2.0, c.Props["level"])

	res, err = s.handleUpdateComponentProps(ctx, call(map[string]any{
		"componentId": c.ID,
		"props":       `{"alignment":"center"}`,
	}))
	require.NoError(t, err)
	assert.Equal(t, "center", decode[domain.Component](t, res).Props["alignment"])

	_, err = s.handleUpdateComponentProps(ctx, call(map[string]any{"componentId": c.ID, "props": `{not json`}))
	assert.Error(t, err)
	_, err = s.handleUpdateComponentProps(ctx, call(map[string]any{"componentId": c.ID, "props": `{"level":"huge"}`}))
	assert.ErrorIs(t, err, service.ErrInvalidPropertyValue)
	_, err = s.handleAddComponent(ctx, call(map[string]any{"type": "Nope"}))
	assert.ErrorIs(t, err, service.ErrUnknownComponentType)
}

func TestMoveAndDeleteComponent(t *testing.T) {
	s, _ := newTestServer(t, false)
	ctx := context.Background()

	a, _ := s.builder.AddComponent(registry.TypeHeader)
	b, _ := s.builder.AddComponent(registry.TypeText)
	aID, bID := a.PageComponents[0].ID, b.PageComponents[1].ID

	res, err := s.handleMoveComponent(ctx, call(map[string]any{"componentId": bID, "direction": "up"}))
	require.NoError(t, err)
	assert.Equal(t, []string{bID, aID}, decode[struct {
		Order []string `json:"order"`
	}](t, res).Order)

	_, err = s.handleMoveComponent(ctx, call(map[string]any{"componentId": bID, "direction": "sideways"}))
	assert.Error(t, err)

	_, err = s.handleDeleteComponent(ctx, call(map[string]any{"componentId": aID}))
	require.NoError(t, err)
	assert.Len(t, s.builder.GetState().PageComponents, 1)
}

func TestDeleteComponent_RejectedByUser(t *testing.T) {
	s, em := newTestServer(t, true)
	st, _ := s.builder.AddComponent(registry.TypeText)
	id := st.PageComponents[0].ID

	done := make(chan error, 1)
	go func() {
		_, err := s.handleDeleteComponent(context.Background(), call(map[string]any{"componentId": id}))
		done <- err
	}()

	var pending PendingAction
	require.Eventually(t, func() bool {
		for _, e := range em.Snapshot() {
			if p, ok := e.Data.(PendingAction); ok && e.Event == EventApprovalRequired {
				pending = p
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "delete_component", pending.Tool)

	s.Reject(pending.ID)
	assert.Error(t, <-done)
	assert.Len(t, s.builder.GetState().PageComponents, 1, "rejected delete keeps the component")
	assert.Equal(t, 1, em.Count(EventApprovalDismissed))
}

func TestAddComponent_RejectedPropsAddNothing(t *testing.T) {
	s, _ := newTestServer(t, false)

	_, err := s.handleAddComponent(context.Background(), call(map[string]any{
		"type":  registry.TypeImage,
		"props": `{"alt": "Logo", "src": ""}`,
	}))
	assert.ErrorIs(t, err, service.ErrInvalidPropertyValue)
	assert.Empty(t, s.builder.GetState().PageComponents)

	res, err := s.handleAddComponent(context.Background(), call(map[string]any{
		"type":  registry.TypeHeader,
		"props": `{"title": "Sale Now"}`,
	}))
	require.NoError(t, err)
	c := decode[domain.Component](t, res)
	assert.Equal(t, "Sale Now", c.Props["title"])
	assert.Equal(t, "A catchy subtitle goes here.", c.Props["subtitle"])
}

func TestUpdatePost_InvalidStatusKeepsTitle(t *testing.T) {
	s, _ := newTestServer(t, false)
	ctx := context.Background()
	st, err := s.builder.CreatePost("Landing v1")
	require.NoError(t, err)
	id := st.ActivePostID

	_, err = s.handleUpdatePost(ctx, call(map[string]any{"postId": id, "title": "Landing v2", "status": "archived"}))
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
	require.Len(t, s.builder.GetState().Posts, 1)
	assert.Equal(t, "Landing v1", s.builder.GetState().Posts[0].Title)
}

func TestDeleteComponent_ApprovalIsDismissedAfterAnswer(t *testing.T) {
	s, em := newTestServer(t, true)
	st, _ := s.builder.AddComponent(registry.TypeText)
	id := st.PageComponents[0].ID

	done := make(chan error, 1)
	go func() {
		_, err := s.handleDeleteComponent(context.Background(), call(map[string]any{"componentId": id}))
		done <- err
	}()

	var pending PendingAction
	require.Eventually(t, func() bool {
		for _, e := range em.Snapshot() {
			if p, ok := e.Data.(PendingAction); ok && e.Event == EventApprovalRequired {
				pending = p
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	s.Approve(pending.ID)
	require.NoError(t, <-done)
	assert.Empty(t, s.builder.GetState().PageComponents)
	assert.Equal(t, 1, em.Count(EventApprovalDismissed))
}

func TestApprovalQueue_DismissedOnCancel(t *testing.T) {
	em := &service.MockEmitter{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q := NewApprovalQueue(ctx, em, true)

	ok, err := q.Request("delete_post", "Delete post p1")
	assert.False(t, ok)
	assert.Error(t, err)
	assert.Equal(t, 1, em.Count(EventApprovalDismissed))
}

func TestApprovalQueue_Timeout(t *testing.T) {
	em := &service.MockEmitter{}
	q := NewApprovalQueue(context.Background(), em, true)
	q.SetTimeout(10 * time.Millisecond)

	ok, err := q.Request("delete_post", "Delete post p1")
	assert.False(t, ok)
	assert.Error(t, err)
	assert.Equal(t, 1, em.Count(EventApprovalDismissed))
}

func TestPostTools(t *testing.T) {
	s, _ := newTestServer(t, false)
	ctx := context.Background()

	res, err := s.handleCreatePost(ctx, call(map[string]any{"title": "Landing v1"}))
	require.NoError(t, err)
	p := decode[domain.Post](t, res)
	assert.Equal(t, "Landing v1", p.Title)
	assert.Equal(t, domain.PostStatusDraft, p.Status)

	res, err = s.handleUpdatePost(ctx, call(map[string]any{"postId": p.ID, "title": "Landing v2", "status": "published"}))
	require.NoError(t, err)
	p = decode[domain.Post](t, res)
	assert.Equal(t, "Landing v2", p.Title)
	assert.Equal(t, domain.PostStatusPublished, p.Status)

	res, err = s.handleListPosts(ctx, call(nil))
	require.NoError(t, err)
	rows := decode[[]domain.PostSummary](t, res)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Active)

	_, err = s.handleSelectPost(ctx, call(map[string]any{"postId": "missing"}))
	assert.ErrorIs(t, err, service.ErrPostNotFound)

	_, err = s.handleDeletePost(ctx, call(map[string]any{"postId": p.ID}))
	require.NoError(t, err)
	assert.Empty(t, s.builder.GetState().Posts)
}

func TestGenerateTextTool(t *testing.T) {
	s, _ := newTestServer(t, false)
	ctx := context.Background()
	st, _ := s.builder.AddComponent(registry.TypeAiTextGenerator)
	id := st.PageComponents[0].ID
	_, err := s.builder.UpdateComponentProps(id, domain.Props{"userProvidedPrompt": "tagline"})
	require.NoError(t, err)

	res, err := s.handleGenerateText(ctx, call(map[string]any{"componentId": id}))
	require.NoError(t, err)
	assert.Equal(t, "echo: tagline", decode[domain.Component](t, res).Props["aiGeneratedText"])
}

func TestResources(t *testing.T) {
	s, _ := newTestServer(t, false)
	ctx := context.Background()
	st, _ := s.builder.CreatePost("Docs")
	_, _ = s.builder.AddComponent(registry.TypeButton)

	var req mcp.ReadResourceRequest
	req.Params.URI = registryURI
	contents, err := s.handleRegistryResource(ctx, req)
	require.NoError(t, err)
	var defs []domain.ComponentDefinition
	require.NoError(t, json.Unmarshal([]byte(contents[0].(mcp.TextResourceContents).Text), &defs))
	assert.Len(t, defs, len(registry.Default().List()))

	req.Params.URI = stateURI
	contents, err = s.handleStateResource(ctx, req)
	require.NoError(t, err)
	var state domain.BuilderState
	require.NoError(t, json.Unmarshal([]byte(contents[0].(mcp.TextResourceContents).Text), &state))
	assert.Equal(t, st.ActivePostID, state.ActivePostID)
	assert.Len(t, state.PageComponents, 1)

	req.Params.URI = postURIPrefix + st.ActivePostID
	contents, err = s.handlePostResource(ctx, req)
	require.NoError(t, err)
	assert.Contains(t, contents[0].(mcp.TextResourceContents).Text, `"title": "Docs"`)

	req.Params.URI = postURIPrefix + "missing"
	_, err = s.handlePostResource(ctx, req)
	assert.Error(t, err)
}
