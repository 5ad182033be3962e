// Package picker selects the input and output files for a normalization run.
//
// The normalizer only needs two paths, so the choosers sit behind the
// [Picker] interface: native OS dialogs, a terminal browser, or fixed paths.
package picker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/csvnorm/internal/config"
)

var (
	// ErrCanceled is returned when the user dismisses a chooser.
	ErrCanceled = errors.New("picker: selection canceled")

	// ErrInputCanceled and ErrOutputCanceled tell Select's two prompts apart.
	// Both match ErrCanceled with errors.Is.
	ErrInputCanceled  = fmt.Errorf("no file selected: %w", ErrCanceled)
	ErrOutputCanceled = fmt.Errorf("no output file selected: %w", ErrCanceled)

	// ErrNoFile is returned when a chooser reports success without a path.
	ErrNoFile = errors.New("picker: no file provided")
)

// Picker chooses files. Both methods return absolute paths or ErrCanceled.
type Picker interface {
	// PickOpenFile chooses an existing CSV file.
	PickOpenFile(ctx context.Context) (string, error)

	// PickSaveFile chooses a destination, starting in dir with name pre-filled.
	PickSaveFile(ctx context.Context, dir, name string) (string, error)
}

// Selection is the result of a complete Select run.
type Selection struct {
	Input  string
	Output string
}

// New returns the picker for a configured backend name.
func New(backend string) (Picker, error) {
	switch strings.ToLower(backend) {
	case config.PickerNative, "":
		return Native{}, nil
	case config.PickerTUI:
		return &TUI{}, nil
	default:
		return nil, fmt.Errorf("unknown picker backend %q", backend)
	}
}

// Select asks for the input file and then for the output file.
// The save prompt starts in the input's directory with defaultName filled in.
// No file is created.
func Select(ctx context.Context, p Picker, defaultName string) (Selection, error) {
	input, err := p.PickOpenFile(ctx)
	if err != nil {
		if errors.Is(err, ErrCanceled) {
			return Selection{}, ErrInputCanceled
		}
		return Selection{}, fmt.Errorf("select input: %w", err)
	}

	output, err := p.PickSaveFile(ctx, DefaultDir(input), defaultName)
	if err != nil {
		if errors.Is(err, ErrCanceled) {
			return Selection{}, ErrOutputCanceled
		}
		return Selection{}, fmt.Errorf("select output: %w", err)
	}

	return Selection{Input: input, Output: output}, nil
}

// DefaultDir returns the directory the save prompt should start in:
// the input's parent, or "." when the input has none.
func DefaultDir(input string) string {
	dir := filepath.Dir(input)
	if dir == "" {
		return "."
	}
	return dir
}

// absPath validates a chooser result and makes it absolute.
func absPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrNoFile
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}
	return abs, nil
}
