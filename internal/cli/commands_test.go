package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/idilsaglam/todolist/internal/model"
)

// fakePrompter answers every prompt from a script and records what it was asked.
type fakePrompter struct {
	selection *int
	input     *string
	confirm   bool
	err       error

	selectItems []string
	asked       []string
}

func ptr[T any](v T) *T { return &v }

func nothingSelected() *fakePrompter       { return &fakePrompter{} }
func selectFirstAndConfirm() *fakePrompter { return &fakePrompter{selection: ptr(0), confirm: true} }
func selectFirstNoConfirm() *fakePrompter  { return &fakePrompter{selection: ptr(0)} }
func selectFirstAndNoInput() *fakePrompter { return &fakePrompter{selection: ptr(0)} }

func selectFirstAndInput(s string) *fakePrompter {
	return &fakePrompter{selection: ptr(0), input: ptr(s)}
}

func (f *fakePrompter) Select(prompt string, items []string) (int, bool, error) {
	f.asked = append(f.asked, prompt)
	f.selectItems = items
	if f.err != nil {
		return 0, false, f.err
	}
	if f.selection == nil {
		return 0, false, nil
	}
	return *f.selection, true, nil
}

func (f *fakePrompter) Input(prompt, initial string) (string, bool, error) {
	f.asked = append(f.asked, prompt+"|"+initial)
	if f.input == nil {
		return "", false, nil
	}
	return *f.input, true, nil
}

func (f *fakePrompter) Confirm(prompt string) (bool, error) {
	f.asked = append(f.asked, prompt)
	return f.confirm, nil
}

func listWith(titles ...string) *model.TodoList {
	l := model.New()
	for _, t := range titles {
		l.Add(t)
	}
	return l
}

func run(t *testing.T, cmd Command, l *model.TodoList, p *fakePrompter) (Result, string) {
	t.Helper()
	var out bytes.Buffer
	res, err := Execute(cmd, l, p, &out)
	if err != nil {
		t.Fatalf("Execute(%s): %v", cmd.Kind, err)
	}
	return res, out.String()
}

func TestAdd(t *testing.T) {
	l := model.New()
	res, out := run(t, Command{Kind: KindAdd, Title: "First task"}, l, selectFirstAndConfirm())

	if res != Changed {
		t.Errorf("result: got %v", res)
	}
	if l.Len() != 1 {
		t.Errorf("len: got %d", l.Len())
	}
	if !strings.Contains(out, "added [1] First task") {
		t.Errorf("output: %q", out)
	}
}

func TestMarkDone(t *testing.T) {
	tests := []struct {
		name    string
		list    func() *model.TodoList
		p       *fakePrompter
		want    Result
		done    bool
		message string
	}{
		{"selected", func() *model.TodoList { return listWith("Test") }, selectFirstAndConfirm(), Changed, true, "done [1] Test"},
		{"not selected", func() *model.TodoList { return listWith("Test") }, nothingSelected(), NoChange, false, "Action cancelled"},
		{"no todo", model.New, selectFirstAndConfirm(), NoChange, false, "No todos to mark as done"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.list()
			res, out := run(t, Command{Kind: KindDone}, l, tt.p)
			if res != tt.want {
				t.Errorf("result: got %v, want %v", res, tt.want)
			}
			if got, ok := l.Get(1); ok && got.Done != tt.done {
				t.Errorf("done: got %v, want %v", got.Done, tt.done)
			}
			if !strings.Contains(out, tt.message) {
				t.Errorf("output %q does not contain %q", out, tt.message)
			}
		})
	}
}

func TestMarkDoneOffersOnlyPending(t *testing.T) {
	l := listWith("a", "b", "c")
	_ = l.Mark(1, true)
	p := selectFirstAndConfirm()

	run(t, Command{Kind: KindDone}, l, p)

	if strings.Join(p.selectItems, ",") != "[2] b,[3] c" {
		t.Errorf("candidates: got %v", p.selectItems)
	}
	if got, _ := l.Get(2); !got.Done {
		t.Errorf("first pending task should be done")
	}
}

func TestUndoDone(t *testing.T) {
	tests := []struct {
		name string
		mark bool
		p    *fakePrompter
		want Result
		done bool
	}{
		{"selected", true, selectFirstAndConfirm(), Changed, false},
		{"not selected", true, nothingSelected(), NoChange, true},
		{"no completed todo", false, selectFirstAndConfirm(), NoChange, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := listWith("Test")
			if tt.mark {
				_ = l.Mark(1, true)
			}
			res, _ := run(t, Command{Kind: KindUndo}, l, tt.p)
			if res != tt.want {
				t.Errorf("result: got %v, want %v", res, tt.want)
			}
			if got, _ := l.Get(1); got.Done != tt.done {
				t.Errorf("done: got %v, want %v", got.Done, tt.done)
			}
		})
	}
}

func TestListNeverChanges(t *testing.T) {
	l := listWith("Test1", "Test2", "Test3")
	_ = l.Mark(1, true)

	for _, mode := range []model.Filter{model.All, model.Pending, model.Completed} {
		t.Run(mode.String(), func(t *testing.T) {
			res, out := run(t, Command{Kind: KindList, Mode: mode}, l, nothingSelected())
			if res != NoChange {
				t.Errorf("result: got %v", res)
			}
			hasTodo, hasDone := strings.Contains(out, "# TODO"), strings.Contains(out, "# DONE")
			switch mode {
			case model.All:
				if !hasTodo || !hasDone || strings.Index(out, "# TODO") > strings.Index(out, "# DONE") {
					t.Errorf("all: want TODO then DONE sections: %q", out)
				}
			case model.Pending:
				if !hasTodo || hasDone || strings.Contains(out, "[1] Test1") {
					t.Errorf("todo view: %q", out)
				}
			case model.Completed:
				if hasTodo || !hasDone || strings.Contains(out, "[2] Test2") {
					t.Errorf("done view: %q", out)
				}
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name    string
		list    func() *model.TodoList
		p       *fakePrompter
		want    Result
		title   string
		message string
	}{
		{"changed", func() *model.TodoList { return listWith("Test") }, selectFirstAndInput("Changed"), Changed, "Changed", "Todo '[1] Test' updated to Changed"},
		{"trimmed", func() *model.TodoList { return listWith("Test") }, selectFirstAndInput("  Changed  "), Changed, "Changed", "updated"},
		{"unchanged", func() *model.TodoList { return listWith("Test") }, selectFirstAndInput("Test "), NoChange, "Test", "Title unchanged"},
		{"no input", func() *model.TodoList { return listWith("Test") }, selectFirstAndNoInput(), NoChange, "Test", "Action cancelled"},
		{"not selected", func() *model.TodoList { return listWith("Test") }, nothingSelected(), NoChange, "Test", "Action cancelled"},
		{"no todo", model.New, selectFirstAndInput("Changed"), NoChange, "", "No todos to update"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.list()
			res, out := run(t, Command{Kind: KindUpdate}, l, tt.p)
			if res != tt.want {
				t.Errorf("result: got %v, want %v", res, tt.want)
			}
			if got, ok := l.Get(1); ok && got.Title != tt.title {
				t.Errorf("title: got %q, want %q", got.Title, tt.title)
			}
			if !strings.Contains(out, tt.message) {
				t.Errorf("output %q does not contain %q", out, tt.message)
			}
		})
	}
}

func TestUpdateLongTitleUnchanged(t *testing.T) {
	long := strings.Repeat("x", 250)
	l := listWith(long)
	res, out := run(t, Command{Kind: KindUpdate}, l, selectFirstAndInput(long))

	if res != NoChange || !strings.Contains(out, "Title unchanged") {
		t.Errorf("got %v %q", res, out)
	}
	if got, _ := l.Get(1); got.Title != long {
		t.Errorf("title shortened to %d characters", len(got.Title))
	}
}

func TestUpdateOffersCurrentTitleAsDefault(t *testing.T) {
	p := selectFirstAndInput("x")
	run(t, Command{Kind: KindUpdate}, listWith("Buy milk"), p)

	if len(p.asked) != 2 || p.asked[1] != "Edit title|Buy milk" {
		t.Errorf("prompts: got %v", p.asked)
	}
}

func TestUpdateRejectsEmptyTitle(t *testing.T) {
	l := listWith("Test")
	_, err := Execute(Command{Kind: KindUpdate}, l, selectFirstAndInput("   "), &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got, _ := l.Get(1); got.Title != "Test" {
		t.Errorf("title changed to %q", got.Title)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		list    func() *model.TodoList
		p       *fakePrompter
		want    Result
		left    int
		message string
	}{
		{"confirmed", func() *model.TodoList { return listWith("Test") }, selectFirstAndConfirm(), Changed, 0, "Deleted '[1] Test'"},
		{"not confirmed", func() *model.TodoList { return listWith("Test") }, selectFirstNoConfirm(), NoChange, 1, "Delete cancelled"},
		{"not selected", func() *model.TodoList { return listWith("Test") }, nothingSelected(), NoChange, 1, "Action cancelled"},
		{"no todo", model.New, selectFirstAndConfirm(), NoChange, 0, "No todos to delete"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.list()
			res, out := run(t, Command{Kind: KindDelete}, l, tt.p)
			if res != tt.want {
				t.Errorf("result: got %v, want %v", res, tt.want)
			}
			if l.Len() != tt.left {
				t.Errorf("len: got %d, want %d", l.Len(), tt.left)
			}
			if !strings.Contains(out, tt.message) {
				t.Errorf("output %q does not contain %q", out, tt.message)
			}
		})
	}
}

func TestDeleteAsksWithTitle(t *testing.T) {
	p := selectFirstNoConfirm()
	run(t, Command{Kind: KindDelete}, listWith("Walk dog"), p)

	if p.asked[len(p.asked)-1] != "Are you sure you want to delete 'Walk dog'?" {
		t.Errorf("confirm prompt: got %v", p.asked)
	}
}

func TestPromptErrorPropagates(t *testing.T) {
	boom := errors.New("terminal gone")
	p := &fakePrompter{err: boom}
	_, err := Execute(Command{Kind: KindDone}, listWith("a"), p, &bytes.Buffer{})
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want %v", err, boom)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		args    []string
		want    Command
		wantErr bool
	}{
		{[]string{"add", "Buy", "milk"}, Command{Kind: KindAdd, Title: "Buy milk"}, false},
		{[]string{"add", "  "}, Command{}, true},
		{[]string{"add"}, Command{}, true},
		{[]string{"list"}, Command{Kind: KindList, Mode: model.All}, false},
		{[]string{"list", "--mode", "todo"}, Command{Kind: KindList, Mode: model.Pending}, false},
		{[]string{"list", "--mode=done"}, Command{Kind: KindList, Mode: model.Completed}, false},
		{[]string{"list", "--mode", "later"}, Command{}, true},
		{[]string{"done"}, Command{Kind: KindDone}, false},
		{[]string{"done", "2"}, Command{}, true},
		{[]string{"undo"}, Command{Kind: KindUndo}, false},
		{[]string{"update"}, Command{Kind: KindUpdate}, false},
		{[]string{"delete"}, Command{Kind: KindDelete}, false},
		{[]string{"browse"}, Command{Kind: KindBrowse}, false},
		{[]string{"--help"}, Command{Kind: KindHelp}, false},
		{[]string{"frobnicate"}, Command{}, true},
		{nil, Command{}, true},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			got, err := Parse(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err: got %v, wantErr %v", err, tt.wantErr)
			}
			var ue *UsageError
			if err != nil && !errors.As(err, &ue) {
				t.Errorf("want UsageError, got %T", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
