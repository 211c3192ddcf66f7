package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pageforge/internal/coerce"
	"pageforge/internal/domain"
	"pageforge/internal/registry"
)

// ─────────────────────────────────────────────────────────────
// Builder: the single owner of page-builder state
// ─────────────────────────────────────────────────────────────

// TextGenerator produces text for an AI action property.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// BuilderDeps holds the collaborators of a Builder. Only Registry and Posts
// are required.
type BuilderDeps struct {
	Registry  *registry.Registry
	Posts     domain.PostStore
	Emitter   EventEmitter
	Generator TextGenerator
	Logger    *zerolog.Logger

	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string

	DefaultPostTitle string
}

// Builder serializes every state transition of the page builder behind one
// mutex. Each operation runs to completion and returns a fresh snapshot.
// Notifications are emitted after the lock is released, in the order the
// operations took the lock, so observers never see an older snapshot last.
type Builder struct {
	mu sync.Mutex

	registry     *registry.Registry
	posts        domain.PostStore
	emitter      EventEmitter
	generator    TextGenerator
	log          zerolog.Logger
	now          func() time.Time
	newID        func() string
	defaultTitle string

	components   []domain.Component
	selectedID   string
	editing      *domain.Component
	panelOpen    bool
	activePostID string
	leftView     domain.LeftPanelView

	fileSeq   uint64
	fileReads map[string]uint64

	version uint64
	turns   emitTurns

	generating generationGuard
}

// NewBuilder creates a Builder with an empty canvas and no active post.
func NewBuilder(deps BuilderDeps) *Builder {
	b := &Builder{
		registry:     deps.Registry,
		posts:        deps.Posts,
		emitter:      deps.Emitter,
		generator:    deps.Generator,
		log:          zerolog.Nop(),
		now:          deps.Now,
		newID:        deps.NewID,
		defaultTitle: deps.DefaultPostTitle,
		components:   []domain.Component{},
		leftView:     domain.LeftPanelComponents,
		fileReads:    make(map[string]uint64),
	}
	if deps.Logger != nil {
		b.log = deps.Logger.With().Str("component", "builder").Logger()
	}
	if b.registry == nil {
		b.registry = registry.Default()
	}
	if b.emitter == nil {
		b.emitter = noopEmitter{}
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.newID == nil {
		b.newID = func() string { return uuid.New().String() }
	}
	if b.defaultTitle == "" {
		b.defaultTitle = "Untitled Post"
	}
	return b
}

// SetGenerator replaces the AI text generator. nil disables generation.
func (b *Builder) SetGenerator(g TextGenerator) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.generator = g
}

// Registry exposes the component registry for read-only lookups.
func (b *Builder) Registry() *registry.Registry {
	return b.registry
}

// GetComponentDefinition looks up a registry entry.
func (b *Builder) GetComponentDefinition(componentType string) (domain.ComponentDefinition, error) {
	def, ok := b.registry.Lookup(componentType)
	if !ok {
		return domain.ComponentDefinition{}, fmt.Errorf("%w: %s", ErrUnknownComponentType, componentType)
	}
	return def, nil
}

// ─── Transactions ───────────────────────────────────────────

// txn collects the outcome of one operation while the lock is held.
type txn struct {
	notes   []Notification
	changed bool
}

func (t *txn) notify(title, description string) {
	t.notes = append(t.notes, Notification{Title: title, Description: description, Variant: VariantDefault})
}

// fail records a destructive notification and returns err unchanged.
func (t *txn) fail(title string, err error) error {
	t.notes = append(t.notes, Notification{Title: title, Description: err.Error(), Variant: VariantDestructive})
	return err
}

// apply runs fn under the lock, snapshots state and then emits what fn recorded.
func (b *Builder) apply(op string, fn func(tx *txn) error) (domain.BuilderState, error) {
	b.mu.Lock()
	tx := &txn{}
	err := fn(tx)
	if tx.changed {
		b.version++
	}
	state := b.stateLocked()
	emits := len(tx.notes) > 0 || tx.changed
	var ticket uint64
	if emits {
		ticket = b.turns.take()
	}
	b.mu.Unlock()

	if err != nil {
		b.log.Warn().Err(err).Str("op", op).Msg("operation aborted")
	}
	if !emits {
		return state, err
	}
	b.turns.run(ticket, func() {
		ctx := context.Background()
		for _, n := range tx.notes {
			b.emitter.Emit(ctx, EventToast, n)
		}
		if tx.changed {
			b.emitter.Emit(ctx, EventStateChanged, state)
		}
	})
	return state, err
}

// GetState returns a snapshot of the builder.
func (b *Builder) GetState() domain.BuilderState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

func (b *Builder) stateLocked() domain.BuilderState {
	st := domain.BuilderState{
		PageComponents:            domain.CloneComponents(b.components),
		SelectedComponentID:       b.selectedID,
		IsPropertyEditorPanelOpen: b.panelOpen,
		ActivePostID:              b.activePostID,
		CurrentViewInLeftPanel:    b.leftView,
		Posts:                     []domain.Post{},
		Version:                   b.version,
	}
	if b.editing != nil {
		c := b.editing.Clone()
		st.EditingComponent = &c
	}
	posts, err := b.posts.ListPosts()
	if err != nil {
		b.log.Error().Err(err).Msg("list posts for snapshot")
	} else if posts != nil {
		st.Posts = posts
	}
	return st
}

// ─── Internal helpers (lock held) ───────────────────────────

func (b *Builder) indexLocked(id string) int {
	return slices.IndexFunc(b.components, func(c domain.Component) bool { return c.ID == id })
}

func (b *Builder) bindLocked(c domain.Component) {
	b.selectedID = c.ID
	cp := c.Clone()
	b.editing = &cp
	b.panelOpen = true
}

func (b *Builder) clearSelectionLocked() {
	b.selectedID = ""
	b.editing = nil
	b.panelOpen = false
}

// tick returns a timestamp strictly after prev.
func (b *Builder) tick(prev time.Time) time.Time {
	t := b.now()
	if !t.After(prev) {
		t = prev.Add(time.Nanosecond)
	}
	return t
}

// syncLocked writes the canvas back into the active post and refreshes its
// updatedAt. Without an active post the canvas is a scratch page.
func (b *Builder) syncLocked() error {
	if b.activePostID == "" {
		return nil
	}
	p, err := b.posts.GetPost(b.activePostID)
	if err != nil {
		return fmt.Errorf("sync active post: %w", err)
	}
	p.PageComponents = domain.CloneComponents(b.components)
	p.UpdatedAt = b.tick(p.UpdatedAt)
	if err := b.posts.UpdatePost(p); err != nil {
		return fmt.Errorf("sync active post: %w", err)
	}
	return nil
}

// ─── Components ─────────────────────────────────────────────

// AddComponent appends a block of the given type with the registry defaults,
// selects it and binds it to an open editor.
func (b *Builder) AddComponent(componentType string) (domain.BuilderState, error) {
	return b.AddComponentWithProps(componentType, nil)
}

// AddComponentWithProps adds a block whose props are the registry defaults
// with props applied on top. Invalid props reject the whole call and
// nothing is added.
func (b *Builder) AddComponentWithProps(componentType string, props domain.Props) (domain.BuilderState, error) {
	return b.apply("add_component", func(tx *txn) error {
		def, ok := b.registry.Lookup(componentType)
		if !ok {
			return tx.fail("Error", fmt.Errorf("component type %s not found: %w", componentType, ErrUnknownComponentType))
		}
		clean, err := coerce.Validate(def, props)
		if err != nil {
			return tx.fail("Invalid Property", err)
		}
		c := domain.Component{ID: b.newID(), Type: def.Type, Props: coerce.Merge(def.DefaultProps, clean)}
		b.components = append(b.components, c)
		if err := b.syncLocked(); err != nil {
			b.components = b.components[:len(b.components)-1]
			return tx.fail("Error", err)
		}
		b.bindLocked(c)
		tx.changed = true
		tx.notify("Component Added", fmt.Sprintf("%s has been added to the page.", def.Name))
		b.log.Debug().Str("component_id", c.ID).Str("type", c.Type).Msg("component added")
		return nil
	})
}

// DeleteComponent removes a block. Deleting an unknown id is a no-op.
func (b *Builder) DeleteComponent(id string) (domain.BuilderState, error) {
	return b.apply("delete_component", func(tx *txn) error {
		i := b.indexLocked(id)
		if i < 0 {
			return nil
		}
		prev := b.components
		b.components = slices.Delete(slices.Clone(b.components), i, i+1)
		if err := b.syncLocked(); err != nil {
			b.components = prev
			return tx.fail("Error", err)
		}
		if b.selectedID == id || (b.editing != nil && b.editing.ID == id) {
			b.clearSelectionLocked()
		}
		tx.changed = true
		tx.notes = append(tx.notes, Notification{
			Title:       "Component Removed",
			Description: "Component has been removed.",
			Variant:     VariantDestructive,
		})
		b.log.Debug().Str("component_id", id).Msg("component removed")
		return nil
	})
}

// MoveComponentUp swaps a block with its predecessor. No-op when already first.
func (b *Builder) MoveComponentUp(id string) (domain.BuilderState, error) {
	return b.move(id, -1)
}

// MoveComponentDown swaps a block with its successor. No-op when already last.
func (b *Builder) MoveComponentDown(id string) (domain.BuilderState, error) {
	return b.move(id, 1)
}

func (b *Builder) move(id string, delta int) (domain.BuilderState, error) {
	return b.apply("move_component", func(tx *txn) error {
		i := b.indexLocked(id)
		if i < 0 {
			return tx.fail("Error", fmt.Errorf("move %s: %w", id, ErrComponentNotFound))
		}
		j := i + delta
		if j < 0 || j >= len(b.components) {
			return nil
		}
		prev := b.components
		b.components = slices.Clone(b.components)
		b.components[i], b.components[j] = b.components[j], b.components[i]
		if err := b.syncLocked(); err != nil {
			b.components = prev
			return tx.fail("Error", err)
		}
		tx.changed = true
		tx.notify("Component Moved", "Component reordered.")
		return nil
	})
}

// SelectComponent selects a block and binds it to the editor. An empty id
// deselects, which also unbinds and closes the editor.
func (b *Builder) SelectComponent(id string) (domain.BuilderState, error) {
	return b.apply("select_component", func(tx *txn) error {
		if id == "" {
			b.clearSelectionLocked()
			tx.changed = true
			return nil
		}
		i := b.indexLocked(id)
		if i < 0 {
			return tx.fail("Error", fmt.Errorf("select %s: %w", id, ErrComponentNotFound))
		}
		b.bindLocked(b.components[i])
		tx.changed = true
		return nil
	})
}

// UpdateComponentProps validates and merges props into a block. An update
// that changes nothing leaves state, timestamps and observers untouched.
func (b *Builder) UpdateComponentProps(id string, props domain.Props) (domain.BuilderState, error) {
	return b.apply("update_component_props", func(tx *txn) error {
		return b.updatePropsLocked(tx, id, props)
	})
}

func (b *Builder) updatePropsLocked(tx *txn, id string, update domain.Props) error {
	i := b.indexLocked(id)
	if i < 0 {
		return tx.fail("Update Failed", fmt.Errorf("update %s: %w", id, ErrComponentNotFound))
	}
	cur := b.components[i]
	def, ok := b.registry.Lookup(cur.Type)
	if !ok {
		return tx.fail("Update Failed", fmt.Errorf("update %s: %w: %s", id, ErrUnknownComponentType, cur.Type))
	}
	clean, err := coerce.Validate(def, update)
	if err != nil {
		return tx.fail("Invalid Property", err)
	}
	return b.commitPropsLocked(tx, i, clean)
}

// commitPropsLocked merges an already validated update into the component at i.
func (b *Builder) commitPropsLocked(tx *txn, i int, clean domain.Props) error {
	cur := b.components[i]
	id := cur.ID
	if !coerce.Changed(cur.Props, clean) {
		return nil
	}

	prevProps := cur.Props
	b.components = slices.Clone(b.components)
	b.components[i].Props = coerce.Merge(cur.Props, clean)
	if err := b.syncLocked(); err != nil {
		b.components[i].Props = prevProps
		return tx.fail("Update Failed", err)
	}
	if b.editing != nil && b.editing.ID == id && coerce.Changed(b.editing.Props, clean) {
		b.editing.Props = coerce.Merge(b.editing.Props, clean)
	}
	tx.changed = true
	tx.notify("Component Updated", "Properties saved.")
	b.log.Debug().Str("component_id", id).Int("keys", len(clean)).Msg("component updated")
	return nil
}

// SubmitPropertyForm coerces raw form values and applies the resulting diff.
func (b *Builder) SubmitPropertyForm(id string, values map[string]any) (domain.BuilderState, error) {
	return b.apply("submit_property_form", func(tx *txn) error {
		i := b.indexLocked(id)
		if i < 0 {
			return tx.fail("Update Failed", fmt.Errorf("submit %s: %w", id, ErrComponentNotFound))
		}
		cur := b.components[i]
		def, ok := b.registry.Lookup(cur.Type)
		if !ok {
			return tx.fail("Update Failed", fmt.Errorf("submit %s: %w: %s", id, ErrUnknownComponentType, cur.Type))
		}
		return b.updatePropsLocked(tx, id, coerce.Form(def, values, cur.Props))
	})
}

// ClearComponentProperty resets one stored property to its registry default.
func (b *Builder) ClearComponentProperty(id, name string) (domain.BuilderState, error) {
	return b.apply("clear_component_property", func(tx *txn) error {
		i := b.indexLocked(id)
		if i < 0 {
			return tx.fail("Update Failed", fmt.Errorf("clear %s: %w", id, ErrComponentNotFound))
		}
		def, ok := b.registry.Lookup(b.components[i].Type)
		if !ok {
			return tx.fail("Update Failed", fmt.Errorf("clear %s: %w", id, ErrUnknownComponentType))
		}
		p, ok := def.Property(name)
		if !ok || !p.Stored() {
			return tx.fail("Update Failed", fmt.Errorf("%w: %s.%s", ErrUnknownProperty, def.Type, name))
		}
		// the default may be empty, which a normal update refuses for file properties
		return b.commitPropsLocked(tx, i, domain.Props{name: def.DefaultProps[name]})
	})
}

// ─── Property editor panel ──────────────────────────────────

// OpenPropertyEditor binds the editor to a block and selects it.
func (b *Builder) OpenPropertyEditor(id string) (domain.BuilderState, error) {
	return b.apply("open_property_editor", func(tx *txn) error {
		i := b.indexLocked(id)
		if i < 0 {
			return tx.fail("Error", fmt.Errorf("open editor %s: %w", id, ErrComponentNotFound))
		}
		b.bindLocked(b.components[i])
		tx.changed = true
		return nil
	})
}

// ClosePropertyEditor closes and unbinds the editor. The canvas selection stays.
func (b *Builder) ClosePropertyEditor() (domain.BuilderState, error) {
	return b.apply("close_property_editor", func(tx *txn) error {
		if !b.panelOpen && b.editing == nil {
			return nil
		}
		b.panelOpen = false
		b.editing = nil
		tx.changed = true
		return nil
	})
}

// TogglePropertyEditorPanel closes an open panel, or opens it bound to the
// current selection (empty when nothing is selected).
func (b *Builder) TogglePropertyEditorPanel() (domain.BuilderState, error) {
	return b.apply("toggle_property_editor", func(tx *txn) error {
		tx.changed = true
		if b.panelOpen {
			b.panelOpen = false
			b.editing = nil
			return nil
		}
		b.panelOpen = true
		if i := b.indexLocked(b.selectedID); b.selectedID != "" && i >= 0 {
			c := b.components[i].Clone()
			b.editing = &c
		} else {
			b.editing = nil
		}
		return nil
	})
}

// SetCurrentViewInLeftPanel switches the left panel between the component
// library and post management.
func (b *Builder) SetCurrentViewInLeftPanel(view domain.LeftPanelView) (domain.BuilderState, error) {
	return b.apply("set_left_panel_view", func(tx *txn) error {
		if !view.Valid() {
			return tx.fail("Error", fmt.Errorf("%w: %q", ErrInvalidView, view))
		}
		if b.leftView != view {
			b.leftView = view
			tx.changed = true
		}
		return nil
	})
}
