package app

import (
	"context"

	"pageforge/internal/domain"
)

// ─── Builder bindings ───────────────────────────────────────
// Every method returns the new snapshot. Failures have already been
// reported through a toast event; the error only rejects the promise.

func (a *App) GetState() domain.BuilderState {
	return a.builder.GetState()
}

func (a *App) GetComponentRegistry() []domain.ComponentDefinition {
	return a.builder.Registry().List()
}

func (a *App) GetComponentDefinition(componentType string) (domain.ComponentDefinition, error) {
	return a.builder.GetComponentDefinition(componentType)
}

func (a *App) AddComponent(componentType string) (domain.BuilderState, error) {
	return a.builder.AddComponent(componentType)
}

func (a *App) DeleteComponent(id string) (domain.BuilderState, error) {
	return a.builder.DeleteComponent(id)
}

func (a *App) MoveComponentUp(id string) (domain.BuilderState, error) {
	return a.builder.MoveComponentUp(id)
}

func (a *App) MoveComponentDown(id string) (domain.BuilderState, error) {
	return a.builder.MoveComponentDown(id)
}

// SelectComponent selects a block; an empty id is a canvas-background click.
func (a *App) SelectComponent(id string) (domain.BuilderState, error) {
	return a.builder.SelectComponent(id)
}

func (a *App) UpdateComponentProps(id string, props map[string]any) (domain.BuilderState, error) {
	return a.builder.UpdateComponentProps(id, props)
}

// SubmitPropertyForm takes the raw values of the property editor form.
func (a *App) SubmitPropertyForm(id string, values map[string]any) (domain.BuilderState, error) {
	return a.builder.SubmitPropertyForm(id, values)
}

func (a *App) ClearComponentProperty(id, name string) (domain.BuilderState, error) {
	return a.builder.ClearComponentProperty(id, name)
}

func (a *App) OpenPropertyEditor(id string) (domain.BuilderState, error) {
	return a.builder.OpenPropertyEditor(id)
}

func (a *App) ClosePropertyEditor() (domain.BuilderState, error) {
	return a.builder.ClosePropertyEditor()
}

func (a *App) TogglePropertyEditorPanel() (domain.BuilderState, error) {
	return a.builder.TogglePropertyEditorPanel()
}

func (a *App) SetCurrentViewInLeftPanel(view string) (domain.BuilderState, error) {
	return a.builder.SetCurrentViewInLeftPanel(domain.LeftPanelView(view))
}

// ─── Post bindings ──────────────────────────────────────────

func (a *App) CreatePost(title string) (domain.BuilderState, error) {
	return a.builder.CreatePost(title)
}

// SelectPost loads a post; an empty id leaves no post active.
func (a *App) SelectPost(id string) (domain.BuilderState, error) {
	return a.builder.SelectPost(id)
}

func (a *App) DeletePostStorage(id string) (domain.BuilderState, error) {
	return a.builder.DeletePostStorage(id)
}

func (a *App) UpdatePostTitle(id, title string) (domain.BuilderState, error) {
	return a.builder.UpdatePostTitle(id, title)
}

func (a *App) UpdatePostStatus(id, status string) (domain.BuilderState, error) {
	return a.builder.UpdatePostStatus(id, domain.PostStatus(status))
}

func (a *App) ListPosts() ([]domain.PostSummary, error) {
	return a.builder.ListPosts()
}

// ─── AI ─────────────────────────────────────────────────────

// GenerateText runs an AI action property of a component.
func (a *App) GenerateText(id, action string) (domain.BuilderState, error) {
	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return a.builder.GenerateText(ctx, id, action)
}
