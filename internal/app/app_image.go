package app

import (
	"errors"
	"fmt"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"pageforge/internal/domain"
	"pageforge/internal/service"
)

// ChooseImageFile opens a native file dialog and uploads the chosen image
// into a file property. Cancelling the dialog changes nothing.
func (a *App) ChooseImageFile(id, prop string) (domain.BuilderState, error) {
	path, err := wailsRuntime.OpenFileDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title: "Choose an image",
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "Images", Pattern: imageFilePattern},
		},
	})
	if err != nil {
		return a.builder.GetState(), fmt.Errorf("open file dialog: %w", err)
	}
	if path == "" {
		return a.builder.GetState(), nil
	}
	return a.UploadImageFile(id, prop, path)
}

// UploadImageFile reads path into a data-URI and applies it to a file
// property. If another upload for the same field starts meanwhile, only
// the later one lands.
func (a *App) UploadImageFile(id, prop, path string) (domain.BuilderState, error) {
	return uploadImage(a.builder, id, prop, path)
}

func uploadImage(b *service.Builder, id, prop, path string) (domain.BuilderState, error) {
	token, err := b.BeginFileRead(id, prop)
	if err != nil {
		return b.GetState(), err
	}

	var state domain.BuilderState
	uri, err := readImageDataURI(path)
	if err != nil {
		state, err = b.FailFileRead(token, id, prop, err)
	} else {
		state, err = b.CompleteFileRead(token, id, prop, uri)
	}
	if errors.Is(err, service.ErrStaleFileRead) {
		return state, nil
	}
	return state, err
}
