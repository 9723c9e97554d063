package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/prompt"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Browser runs the full-screen list editor. A Prompter that also implements
// Browser replaces the Bubble Tea screen (tests do this).
type Browser interface {
	Browse(list *model.TodoList) (changed bool, err error)
}

func runBrowse(todos *model.TodoList, p prompt.Prompter) (bool, error) {
	if b, ok := p.(Browser); ok {
		return b.Browse(todos)
	}
	final, err := tea.NewProgram(newBrowseModel(todos), tea.WithAltScreen()).Run()
	if err != nil {
		return false, fmt.Errorf("tui: %w", err)
	}
	fm, ok := final.(browseModel)
	if !ok {
		return false, nil
	}
	return fm.changed, nil
}

// taskItem adapts a task to bubbles/list.Item
type taskItem struct{ task model.Task }

func (i taskItem) Title() string       { return i.task.String() }
func (i taskItem) Description() string { return "" }
func (i taskItem) FilterValue() string { return i.task.Title }

// Custom delegate to control how items render (single line)
type taskDelegate struct{}

func (d taskDelegate) Height() int                               { return 1 }
func (d taskDelegate) Spacing() int                              { return 0 }
func (d taskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(taskItem)
	t := ui.Current()

	box, text := t.Muted.Render(t.BoxUnchecked), it.task.String()
	if it.task.Done {
		box, text = t.Success.Render(t.BoxChecked), t.DoneText.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+box+" "+text)
}

type browseModel struct {
	todos   *model.TodoList
	list    list.Model
	changed bool

	width, height int

	// Inline add / edit share one text input.
	adding  bool
	editing bool
	editID  uint64
	ti      textinput.Model
	inErr   string
}

func newBrowseModel(todos *model.TodoList) browseModel {
	l := list.New(nil, taskDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")

	// Extend help with the editing bindings
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return bindings }
	l.AdditionalFullHelpKeys = func() []key.Binding { return bindings }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0 // unlimited: SetValue would cut longer existing titles

	m := browseModel{todos: todos, list: l, ti: ti, width: 80, height: 24}
	m.refresh()
	m.resize()
	return m
}

// refresh rebuilds the visible items from the todo list, keeping the cursor.
func (m *browseModel) refresh() {
	tasks := m.todos.List(model.All)
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{task: t})
	}
	cursor := m.list.Index()
	m.list.SetItems(items)
	if cursor >= len(items) {
		cursor = len(items) - 1
	}
	if cursor >= 0 {
		m.list.Select(cursor)
	}

	th := ui.Current()
	d, p := m.todos.Stats()
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		"Todos",
		th.Success.Render(th.SymDone), d,
		th.Pending.Render(th.SymPending), p,
		th.Accent.Render("Total"), m.todos.Len(),
	)
}

func (m *browseModel) resize() {
	h := m.height - 4
	if m.adding || m.editing {
		h = m.height - 6
	}
	m.list.SetSize(m.width-2, h)
}

func (m *browseModel) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(taskItem)
	return it.task, ok
}

func (m *browseModel) closeInput() {
	m.adding, m.editing = false, false
	m.inErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.adding || m.editing {
		return m.updateInput(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch k.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			if t, ok := m.selected(); ok {
				if err := m.todos.Mark(t.ID, !t.Done); err == nil {
					m.changed = true
					m.refresh()
				}
			}
			return m, nil
		case "d":
			if t, ok := m.selected(); ok {
				if err := m.todos.Remove(t.ID); err == nil {
					m.changed = true
					m.refresh()
				}
			}
			return m, nil
		case "a":
			m.adding = true
			m.ti.SetValue("")
			m.ti.Placeholder = "New item title..."
			m.resize()
			cmd := m.ti.Focus()
			return m, cmd
		case "e":
			if t, ok := m.selected(); ok {
				m.editing = true
				m.editID = t.ID
				m.ti.SetValue(t.Title)
				m.ti.CursorEnd()
				m.ti.Placeholder = "Edit item title..."
				m.resize()
				cmd := m.ti.Focus()
				return m, cmd
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browseModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			title := strings.TrimSpace(m.ti.Value())
			if title == "" {
				m.inErr = "Title cannot be empty"
				return m, nil
			}
			if m.adding {
				m.todos.Add(title)
				m.changed = true
				m.refresh()
				m.list.Select(len(m.list.Items()) - 1)
			} else if cur, ok := m.todos.Get(m.editID); ok && cur.Title != title {
				if err := m.todos.UpdateTitle(m.editID, title); err == nil {
					m.changed = true
					m.refresh()
				}
			}
			m.closeInput()
			return m, nil
		case "esc", "ctrl+c":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	content := m.list.View()
	if m.adding || m.editing {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := "Add new item"
		if m.editing {
			title = "Edit item"
		}
		if m.inErr != "" {
			title += " · " + ui.Current().Error.Render(m.inErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Render(content)
}
