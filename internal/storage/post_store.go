package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/samber/lo"

	"pageforge/internal/domain"
)

// ErrNotFound is returned when a post id is unknown.
var ErrNotFound = errors.New("not found")

// PostStore implements domain.PostStore in memory, in creation order.
// Posts live for the lifetime of the builder session.
type PostStore struct {
	mu    sync.RWMutex
	posts []domain.Post
}

func NewPostStore() *PostStore {
	return &PostStore{}
}

func (s *PostStore) CreatePost(p *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.indexOf(p.ID); ok {
		return fmt.Errorf("create post %s: duplicate id", p.ID)
	}
	s.posts = append(s.posts, p.Clone())
	return nil
}

func (s *PostStore) GetPost(id string) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.indexOf(id)
	if !ok {
		return nil, fmt.Errorf("get post %s: %w", id, ErrNotFound)
	}
	p := s.posts[i].Clone()
	return &p, nil
}

func (s *PostStore) ListPosts() ([]domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Map(s.posts, func(p domain.Post, _ int) domain.Post { return p.Clone() }), nil
}

func (s *PostStore) UpdatePost(p *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.indexOf(p.ID)
	if !ok {
		return fmt.Errorf("update post %s: %w", p.ID, ErrNotFound)
	}
	s.posts[i] = p.Clone()
	return nil
}

func (s *PostStore) DeletePost(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.indexOf(id)
	if !ok {
		return fmt.Errorf("delete post %s: %w", id, ErrNotFound)
	}
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return nil
}

func (s *PostStore) indexOf(id string) (int, bool) {
	_, i, ok := lo.FindIndexOf(s.posts, func(p domain.Post) bool { return p.ID == id })
	return i, ok
}
