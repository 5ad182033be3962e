package picker

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// TUI picks files in the terminal: a directory browser for the input and
// an editable path prompt for the output.
type TUI struct {
	// StartDir is where the browser opens. Empty means the working directory.
	StartDir string

	// Input and Output override the terminal, mostly for tests.
	Input  io.Reader
	Output io.Writer
}

// PickOpenFile browses directories and returns the chosen CSV file.
func (t *TUI) PickOpenFile(ctx context.Context) (string, error) {
	start := t.StartDir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		start = wd
	}

	final, err := t.run(ctx, newBrowser(start))
	if err != nil {
		return "", err
	}
	b := final.(browserModel)
	if b.canceled {
		return "", ErrCanceled
	}
	return absPath(b.chosen)
}

// PickSaveFile prompts for the output path, pre-filled with dir/name.
func (t *TUI) PickSaveFile(ctx context.Context, dir, name string) (string, error) {
	final, err := t.run(ctx, newPrompt("Save normalized CSV as:", filepath.Join(dir, name)))
	if err != nil {
		return "", err
	}
	p := final.(promptModel)
	if p.canceled {
		return "", ErrCanceled
	}
	return absPath(p.Value())
}

func (t *TUI) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if t.Input != nil {
		opts = append(opts, tea.WithInput(t.Input))
	}
	if t.Output != nil {
		opts = append(opts, tea.WithOutput(t.Output))
	}

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("terminal picker: %w", err)
	}
	return final, nil
}

/* ----------------------------------------
	DIRECTORY BROWSER
---------------------------------------- */

type entry struct {
	name string
	dir  bool
}

type browserModel struct {
	dir      string
	entries  []entry
	cursor   int
	height   int
	chosen   string
	canceled bool
	err      error
}

func newBrowser(dir string) browserModel {
	m := browserModel{dir: filepath.Clean(dir)}
	if err := m.load(m.dir); err != nil {
		m.err = err
	}
	return m
}

// load lists dir: the parent link, subdirectories, then CSV files.
// Hidden entries are skipped. On error the current listing is kept.
func (m *browserModel) load(dir string) error {
	des, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	entries := []entry{{name: "..", dir: true}}
	var files []entry
	for _, de := range des {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		switch {
		case de.IsDir():
			entries = append(entries, entry{name: name, dir: true})
		case strings.EqualFold(filepath.Ext(name), ".csv"):
			files = append(files, entry{name: name})
		}
	}

	m.dir = dir
	m.entries = append(entries, files...)
	m.cursor = 0
	m.err = nil
	return nil
}

func (m browserModel) Init() tea.Cmd { return nil }

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.canceled = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}

		case "backspace", "left", "h":
			m.open("..")

		case "enter":
			if len(m.entries) == 0 {
				return m, nil
			}
			sel := m.entries[m.cursor]
			if sel.dir {
				m.open(sel.name)
				return m, nil
			}
			m.chosen = filepath.Join(m.dir, sel.name)
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *browserModel) open(name string) {
	target := filepath.Join(m.dir, name)
	if name == ".." {
		target = filepath.Dir(m.dir)
	}
	if err := m.load(target); err != nil {
		m.err = err
	}
}

func (m browserModel) View() string {
	var b strings.Builder
	b.WriteString("Select CSV file to normalize\n")
	b.WriteString(m.dir + "\n\n")

	start, end := m.window()
	for i := start; i < end; i++ {
		e := m.entries[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		name := e.name
		if e.dir {
			name += string(filepath.Separator)
		}
		b.WriteString(cursor + name + "\n")
	}
	if len(m.entries) == 1 {
		b.WriteString("  (no CSV files here)\n")
	}

	if m.err != nil {
		b.WriteString("\nError: " + m.err.Error() + "\n")
	}
	b.WriteString("\n↑/↓ move • enter open/select • backspace up • esc cancel\n")
	return b.String()
}

// window returns the slice of entries that fits the terminal, keeping the
// cursor visible.
func (m browserModel) window() (int, int) {
	rows := m.height - 6
	if m.height == 0 || rows >= len(m.entries) {
		return 0, len(m.entries)
	}
	if rows < 1 {
		rows = 1
	}
	start := m.cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > len(m.entries) {
		start = len(m.entries) - rows
	}
	return start, start + rows
}

/* ----------------------------------------
	PATH PROMPT
---------------------------------------- */

type promptModel struct {
	label    string
	value    []rune
	done     bool
	canceled bool
}

func newPrompt(label, initial string) promptModel {
	return promptModel{label: label, value: []rune(initial)}
}

// Value is the entered path with surrounding whitespace removed.
func (m promptModel) Value() string {
	return strings.TrimSpace(string(m.value))
}

func (m promptModel) Init() tea.Cmd { return nil }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.canceled = true
		return m, tea.Quit
	case tea.KeyEnter:
		if m.Value() == "" {
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.value) > 0 {
			m.value = m.value[:len(m.value)-1]
		}
	case tea.KeyCtrlU:
		m.value = nil
	case tea.KeySpace:
		m.value = append(m.value, ' ')
	case tea.KeyRunes:
		m.value = append(m.value, key.Runes...)
	}
	return m, nil
}

func (m promptModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s\n> %s\n\nenter save • ctrl+u clear • esc cancel\n", m.label, string(m.value))
}
