package picker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ncruces/zenity"
)

var csvFilter = zenity.FileFilter{
	Name:     "CSV files",
	Patterns: []string{"*.csv"},
	CaseFold: true,
}

// Native shows the host OS file dialogs.
type Native struct{}

// PickOpenFile shows an "open file" dialog filtered to CSV files.
func (Native) PickOpenFile(ctx context.Context) (string, error) {
	path, err := zenity.SelectFile(
		zenity.Context(ctx),
		zenity.Title("Select CSV file to normalize"),
		csvFilter,
	)
	return dialogResult(path, err)
}

// PickSaveFile shows a "save file" dialog in dir with name pre-filled.
func (Native) PickSaveFile(ctx context.Context, dir, name string) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Context(ctx),
		zenity.Title("Save normalized CSV"),
		zenity.Filename(filepath.Join(dir, name)),
		zenity.ConfirmOverwrite(),
		csvFilter,
	)
	return dialogResult(path, err)
}

func dialogResult(path string, err error) (string, error) {
	if errors.Is(err, zenity.ErrCanceled) {
		return "", ErrCanceled
	}
	if err != nil {
		return "", fmt.Errorf("file dialog: %w", err)
	}
	return absPath(path)
}
