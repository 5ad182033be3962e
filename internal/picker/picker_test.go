package picker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ncruces/zenity"
)

type fakePicker struct {
	input     string
	inputErr  error
	output    string
	outputErr error

	gotDir  string
	gotName string
	saves   int
}

func (f *fakePicker) PickOpenFile(ctx context.Context) (string, error) {
	return f.input, f.inputErr
}

func (f *fakePicker) PickSaveFile(ctx context.Context, dir, name string) (string, error) {
	f.saves++
	f.gotDir, f.gotName = dir, name
	return f.output, f.outputErr
}

func TestSelect(t *testing.T) {
	input := filepath.Join(string(filepath.Separator), "data", "in.csv")
	output := filepath.Join(string(filepath.Separator), "data", "out.csv")
	f := &fakePicker{input: input, output: output}

	sel, err := Select(context.Background(), f, "normalized_output.csv")
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	want := Selection{Input: input, Output: output}
	if diff := cmp.Diff(want, sel); diff != "" {
		t.Errorf("Select() mismatch (-want +got):\n%s", diff)
	}
	if f.gotDir != filepath.Dir(input) {
		t.Errorf("save dir = %q, want %q", f.gotDir, filepath.Dir(input))
	}
	if f.gotName != "normalized_output.csv" {
		t.Errorf("save name = %q, want normalized_output.csv", f.gotName)
	}
}

func TestSelect_Errors(t *testing.T) {
	boom := errors.New("dialog crashed")

	tests := []struct {
		name      string
		picker    *fakePicker
		wantErr   error
		wantSaves int
	}{
		{
			name:      "input canceled skips save prompt",
			picker:    &fakePicker{inputErr: ErrCanceled},
			wantErr:   ErrInputCanceled,
			wantSaves: 0,
		},
		{
			name:      "output canceled",
			picker:    &fakePicker{input: "/tmp/in.csv", outputErr: ErrCanceled},
			wantErr:   ErrOutputCanceled,
			wantSaves: 1,
		},
		{
			name:      "input failure is wrapped",
			picker:    &fakePicker{inputErr: boom},
			wantErr:   boom,
			wantSaves: 0,
		},
		{
			name:      "output failure is wrapped",
			picker:    &fakePicker{input: "/tmp/in.csv", outputErr: boom},
			wantErr:   boom,
			wantSaves: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Select(context.Background(), tt.picker, "out.csv")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Select() error = %v, want %v", err, tt.wantErr)
			}
			if tt.picker.saves != tt.wantSaves {
				t.Errorf("save prompts = %d, want %d", tt.picker.saves, tt.wantSaves)
			}
		})
	}
}

func TestCanceledSentinels(t *testing.T) {
	for _, err := range []error{ErrInputCanceled, ErrOutputCanceled} {
		if !errors.Is(err, ErrCanceled) {
			t.Errorf("%v should match ErrCanceled", err)
		}
	}
	if errors.Is(ErrInputCanceled, ErrOutputCanceled) {
		t.Error("input and output cancellation should be distinguishable")
	}
}

func TestDefaultDir(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "/home/user/data.csv", want: "/home/user"},
		{input: "/data.csv", want: "/"},
		{input: "data.csv", want: "."},
		{input: "", want: "."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DefaultDir(filepath.FromSlash(tt.input)); got != filepath.FromSlash(tt.want) {
				t.Errorf("DefaultDir(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		backend string
		want    string
		wantErr bool
	}{
		{backend: "native", want: "picker.Native"},
		{backend: "", want: "picker.Native"},
		{backend: "TUI", want: "*picker.TUI"},
		{backend: "gtk", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			p, err := New(tt.backend)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("New(%q) expected error", tt.backend)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q) error = %v", tt.backend, err)
			}
			if got := fmt.Sprintf("%T", p); got != tt.want {
				t.Errorf("New(%q) = %s, want %s", tt.backend, got, tt.want)
			}
		})
	}
}

func TestDialogResult(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "in.csv")

	tests := []struct {
		name    string
		path    string
		err     error
		want    string
		wantErr error
	}{
		{name: "chosen path", path: abs, want: abs},
		{name: "canceled", err: zenity.ErrCanceled, wantErr: ErrCanceled},
		{name: "empty path", path: "", wantErr: ErrNoFile},
		{name: "dialog failure", err: errors.New("no display"), wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dialogResult(tt.path, tt.err)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("dialogResult() error = %v, want %v", err, tt.wantErr)
				}
			case tt.err != nil:
				if err == nil || errors.Is(err, ErrCanceled) {
					t.Errorf("dialogResult() error = %v, want wrapped dialog failure", err)
				}
			default:
				if err != nil {
					t.Fatalf("dialogResult() error = %v", err)
				}
				if got != tt.want {
					t.Errorf("dialogResult() = %q, want %q", got, tt.want)
				}
			}
		})
	}
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	out := filepath.Join(dir, "out.csv")

	t.Run("fixed paths", func(t *testing.T) {
		sel, err := Select(context.Background(), Static{Input: in, Output: out}, "ignored.csv")
		if err != nil {
			t.Fatalf("Select() error = %v", err)
		}
		if sel.Input != in || sel.Output != out {
			t.Errorf("Select() = %+v", sel)
		}
	})

	t.Run("relative paths become absolute", func(t *testing.T) {
		got, err := Static{Input: "rel.csv"}.PickOpenFile(context.Background())
		if err != nil {
			t.Fatalf("PickOpenFile() error = %v", err)
		}
		if !filepath.IsAbs(got) {
			t.Errorf("PickOpenFile() = %q, want absolute path", got)
		}
	})

	t.Run("missing output uses fallback", func(t *testing.T) {
		f := &fakePicker{output: out}
		sel, err := Select(context.Background(), Static{Input: in, Fallback: f}, "normalized_output.csv")
		if err != nil {
			t.Fatalf("Select() error = %v", err)
		}
		if sel.Output != out {
			t.Errorf("Output = %q, want %q", sel.Output, out)
		}
		if f.gotDir != dir {
			t.Errorf("fallback dir = %q, want %q", f.gotDir, dir)
		}
	})

	t.Run("missing path without fallback", func(t *testing.T) {
		_, err := Static{}.PickOpenFile(context.Background())
		if !errors.Is(err, ErrNoFile) {
			t.Errorf("PickOpenFile() error = %v, want ErrNoFile", err)
		}
	})
}
