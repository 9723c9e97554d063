package cli

import (
	"fmt"
	"io"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/ui"
)

// -------------- rendering helpers --------------

func renderList(w io.Writer, list *model.TodoList, mode model.Filter) {
	t := ui.Current()
	d, p := list.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), list.Len(),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, t.Muted.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	switch mode {
	case model.Pending:
		lines = append(lines, section("# TODO", list.List(model.Pending))...)
	case model.Completed:
		lines = append(lines, section("# DONE", list.List(model.Completed))...)
	default:
		lines = append(lines, section("# TODO", list.List(model.Pending))...)
		lines = append(lines, "")
		lines = append(lines, section("# DONE", list.List(model.Completed))...)
	}
	ui.Panel(w, lines)
}

func section(title string, items []model.Task) []string {
	t := ui.Current()
	lines := []string{t.Accent.Render(title)}
	if len(items) == 0 {
		return append(lines, t.Muted.Render("(none)"))
	}
	for _, it := range items {
		box, text := t.Muted.Render(t.BoxUnchecked), it.String()
		if it.Done {
			box, text = t.Success.Render(t.BoxChecked), t.DoneText.Render(text)
		}
		lines = append(lines, box+" "+text)
	}
	return lines
}
