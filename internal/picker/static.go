package picker

import "context"

// Static returns fixed paths, typically from command-line flags.
// An empty path is delegated to Fallback, or fails with ErrNoFile without one.
type Static struct {
	Input    string
	Output   string
	Fallback Picker
}

func (s Static) PickOpenFile(ctx context.Context) (string, error) {
	if s.Input != "" {
		return absPath(s.Input)
	}
	if s.Fallback == nil {
		return "", ErrNoFile
	}
	return s.Fallback.PickOpenFile(ctx)
}

func (s Static) PickSaveFile(ctx context.Context, dir, name string) (string, error) {
	if s.Output != "" {
		return absPath(s.Output)
	}
	if s.Fallback == nil {
		return "", ErrNoFile
	}
	return s.Fallback.PickSaveFile(ctx, dir, name)
}
