package service

import (
	"errors"

	"pageforge/internal/coerce"
)

var (
	ErrUnknownComponentType = errors.New("unknown component type")
	ErrComponentNotFound    = errors.New("component not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrUnknownProperty      = coerce.ErrUnknownProperty
	ErrInvalidPropertyValue = coerce.ErrInvalidPropertyValue
	ErrInvalidStatus        = errors.New("invalid post status")
	ErrInvalidView          = errors.New("invalid left panel view")
	ErrEmptyTitle           = errors.New("post title is empty")
	ErrNotActionProperty    = errors.New("property is not an action")
	ErrNotFileProperty      = errors.New("property is not a file field")
	ErrEmptyPrompt          = errors.New("prompt is empty")
	ErrGenerationInProgress = errors.New("generation already in progress")
	ErrBuilderClosed        = errors.New("builder is shutting down")
	ErrNoGenerator          = errors.New("no text generator configured")

	// ErrStaleFileRead means a newer read for the same field was started
	// after this one. The result is discarded without a notification.
	ErrStaleFileRead = errors.New("file read superseded")
)
