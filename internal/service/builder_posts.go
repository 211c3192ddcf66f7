package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"pageforge/internal/domain"
	"pageforge/internal/storage"
)

// ─── Posts ──────────────────────────────────────────────────

// CreatePost creates a draft post, makes it active with an empty canvas and
// switches the left panel to the component library. A blank title falls back
// to the configured default.
func (b *Builder) CreatePost(title string) (domain.BuilderState, error) {
	return b.apply("create_post", func(tx *txn) error {
		title = strings.TrimSpace(title)
		if title == "" {
			title = b.defaultTitle
		}
		now := b.now()
		p := &domain.Post{
			ID:             b.newID(),
			Title:          title,
			Status:         domain.PostStatusDraft,
			PageComponents: []domain.Component{},
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := b.posts.CreatePost(p); err != nil {
			return tx.fail("Error", fmt.Errorf("create post: %w", err))
		}
		b.loadLocked(p)
		tx.changed = true
		tx.notify("Post Created", fmt.Sprintf("%q is ready for content.", title))
		b.log.Debug().Str("post_id", p.ID).Msg("post created")
		return nil
	})
}

// SelectPost replaces the canvas with the post's components. An empty id
// leaves no post active. An unknown id is reported and also leaves the canvas
// empty with no active post.
func (b *Builder) SelectPost(id string) (domain.BuilderState, error) {
	return b.apply("select_post", func(tx *txn) error {
		tx.changed = true
		if id == "" {
			b.loadLocked(nil)
			return nil
		}
		p, err := b.posts.GetPost(id)
		if err != nil {
			b.loadLocked(nil)
			return tx.fail("Error", postErr("select post", id, err))
		}
		b.loadLocked(p)
		tx.notify("Post Loaded", fmt.Sprintf("Now editing %q.", p.Title))
		return nil
	})
}

// DeletePostStorage removes a post. Deleting the active post empties the canvas.
func (b *Builder) DeletePostStorage(id string) (domain.BuilderState, error) {
	return b.apply("delete_post", func(tx *txn) error {
		p, err := b.posts.GetPost(id)
		if err != nil {
			return tx.fail("Error", postErr("delete post", id, err))
		}
		if err := b.posts.DeletePost(id); err != nil {
			return tx.fail("Error", postErr("delete post", id, err))
		}
		if b.activePostID == id {
			b.activePostID = ""
			b.components = []domain.Component{}
			b.clearSelectionLocked()
		}
		tx.changed = true
		tx.notes = append(tx.notes, Notification{
			Title:       "Post Deleted",
			Description: fmt.Sprintf("%q has been deleted.", p.Title),
			Variant:     VariantDestructive,
		})
		b.log.Debug().Str("post_id", id).Msg("post deleted")
		return nil
	})
}

// UpdatePostTitle renames a post.
func (b *Builder) UpdatePostTitle(id, title string) (domain.BuilderState, error) {
	return b.apply("update_post_title", func(tx *txn) error {
		title = strings.TrimSpace(title)
		if title == "" {
			return tx.fail("Error", ErrEmptyTitle)
		}
		return b.updatePostLocked(tx, id, func(p *domain.Post) bool {
			if p.Title == title {
				return false
			}
			p.Title = title
			return true
		})
	})
}

// UpdatePostStatus moves a post between draft and published.
func (b *Builder) UpdatePostStatus(id string, status domain.PostStatus) (domain.BuilderState, error) {
	return b.apply("update_post_status", func(tx *txn) error {
		if !status.Valid() {
			return tx.fail("Error", fmt.Errorf("%w: %q", ErrInvalidStatus, status))
		}
		return b.updatePostLocked(tx, id, func(p *domain.Post) bool {
			if p.Status == status {
				return false
			}
			p.Status = status
			return true
		})
	})
}

// UpdatePost changes title and status together. An empty argument leaves
// that field alone. Both are validated before either is written.
func (b *Builder) UpdatePost(id, title string, status domain.PostStatus) (domain.BuilderState, error) {
	return b.apply("update_post", func(tx *txn) error {
		title = strings.TrimSpace(title)
		if status != "" && !status.Valid() {
			return tx.fail("Error", fmt.Errorf("%w: %q", ErrInvalidStatus, status))
		}
		return b.updatePostLocked(tx, id, func(p *domain.Post) bool {
			changed := false
			if title != "" && p.Title != title {
				p.Title = title
				changed = true
			}
			if status != "" && p.Status != status {
				p.Status = status
				changed = true
			}
			return changed
		})
	})
}

func (b *Builder) updatePostLocked(tx *txn, id string, mutate func(p *domain.Post) bool) error {
	p, err := b.posts.GetPost(id)
	if err != nil {
		return tx.fail("Error", postErr("update post", id, err))
	}
	if !mutate(p) {
		return nil
	}
	p.UpdatedAt = b.tick(p.UpdatedAt)
	if err := b.posts.UpdatePost(p); err != nil {
		return tx.fail("Error", postErr("update post", id, err))
	}
	tx.changed = true
	tx.notify("Post Updated", fmt.Sprintf("%q saved.", p.Title))
	return nil
}

// ListPosts returns a summary row per post in creation order.
func (b *Builder) ListPosts() ([]domain.PostSummary, error) {
	b.mu.Lock()
	active := b.activePostID
	b.mu.Unlock()

	posts, err := b.posts.ListPosts()
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	now := b.now()
	return lo.Map(posts, func(p domain.Post, _ int) domain.PostSummary {
		return domain.PostSummary{
			ID:             p.ID,
			Title:          p.Title,
			Status:         p.Status,
			ComponentCount: len(p.PageComponents),
			UpdatedAt:      p.UpdatedAt.UTC().Format(time.RFC3339Nano),
			UpdatedLabel:   humanize.RelTime(p.UpdatedAt, now, "ago", "from now"),
			Active:         p.ID == active,
		}
	}), nil
}

// loadLocked replaces the canvas with p's components, or empties it for nil.
func (b *Builder) loadLocked(p *domain.Post) {
	b.clearSelectionLocked()
	if p == nil {
		b.activePostID = ""
		b.components = []domain.Component{}
		return
	}
	b.activePostID = p.ID
	b.components = domain.CloneComponents(p.PageComponents)
	b.leftView = domain.LeftPanelComponents
}

func postErr(op, id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", op, id, ErrPostNotFound)
	}
	return fmt.Errorf("%s %s: %w", op, id, err)
}
