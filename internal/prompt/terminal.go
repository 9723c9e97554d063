package prompt

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todolist/internal/ui"
)

// Terminal is the Bubble Tea implementation of Prompter. Prompts render on
// Out (stderr by default) so stdout stays clean for command output.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

func (t Terminal) run(m tea.Model) (tea.Model, error) {
	out := t.Out
	if out == nil {
		out = os.Stderr
	}
	opts := []tea.ProgramOption{tea.WithOutput(out)}
	if t.In != nil {
		opts = append(opts, tea.WithInput(t.In))
	}
	return tea.NewProgram(m, opts...).Run()
}

func (t Terminal) Select(prompt string, items []string) (int, bool, error) {
	if len(items) == 0 {
		return 0, false, ErrNoItems
	}
	final, err := t.run(newSelectModel(prompt, items))
	if err != nil {
		return 0, false, fmt.Errorf("select: %w", err)
	}
	m, ok := final.(selectModel)
	if !ok || !m.picked {
		return 0, false, nil
	}
	return m.chosen, true, nil
}

func (t Terminal) Input(prompt, initial string) (string, bool, error) {
	final, err := t.run(newInputModel(prompt, initial))
	if err != nil {
		return "", false, fmt.Errorf("input: %w", err)
	}
	m, ok := final.(inputModel)
	if !ok || !m.submitted {
		return "", false, nil
	}
	return m.value, true, nil
}

func (t Terminal) Confirm(prompt string) (bool, error) {
	final, err := t.run(confirmModel{prompt: prompt})
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	m, _ := final.(confirmModel)
	return m.answer, nil
}

// ---------------- select ----------------

// choice adapts one candidate to bubbles/list.Item, remembering its position
// in the caller's slice so filtering does not change the returned index.
type choice struct {
	index int
	text  string
}

func (c choice) FilterValue() string { return c.text }

// Custom delegate to control how items render (single line)
type choiceDelegate struct{}

func (d choiceDelegate) Height() int                               { return 1 }
func (d choiceDelegate) Spacing() int                              { return 0 }
func (d choiceDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d choiceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	c, _ := item.(choice)
	prefix := "  "
	text := c.text
	if index == m.Index() {
		prefix = ui.Current().Selected.Render("> ")
		text = ui.Current().Accent.Render(text)
	}
	fmt.Fprint(w, prefix+text)
}

type selectModel struct {
	list      list.Model
	chosen    int
	picked    bool
	cancelled bool
}

func newSelectModel(prompt string, items []string) selectModel {
	li := make([]list.Item, 0, len(items))
	for i, it := range items {
		li = append(li, choice{index: i, text: it})
	}
	visible := len(items)
	if visible > 10 {
		visible = 10
	}
	l := list.New(li, choiceDelegate{}, 60, visible+6)
	l.Title = prompt
	l.Styles.Title = ui.Current().Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.FilterInput.Prompt = "/ "
	return selectModel{list: l}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return m, tea.Quit
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if c, ok := m.list.SelectedItem().(choice); ok {
				m.chosen = c.index
				m.picked = true
				return m, tea.Quit
			}
			return m, nil
		case "esc", "q":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	if m.picked || m.cancelled {
		return ""
	}
	return m.list.View()
}

// ---------------- input ----------------

type inputModel struct {
	prompt    string
	ti        textinput.Model
	value     string
	submitted bool
	cancelled bool
}

func newInputModel(prompt, initial string) inputModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0 // unlimited: SetValue would cut longer existing titles
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()
	return inputModel{prompt: prompt, ti: ti}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.value = m.ti.Value()
			m.submitted = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}
	return ui.Current().Title.Render(m.prompt) + "\n" + m.ti.View() + "\n" +
		ui.Current().Muted.Render("enter to save, esc to cancel") + "\n"
}

// ---------------- confirm ----------------

type confirmModel struct {
	prompt   string
	answer   bool
	answered bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "y", "Y":
		m.answer, m.answered = true, true
		return m, tea.Quit
	case "n", "N", "enter", "esc", "ctrl+c":
		m.answer, m.answered = false, true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.answered {
		return ""
	}
	return ui.Current().Title.Render(m.prompt) + " " + ui.Current().Muted.Render("[y/N]") + " "
}
