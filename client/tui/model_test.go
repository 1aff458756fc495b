package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"multicalc.com/server/icalc"
	"multicalc.com/server/render"
	"multicalc.com/server/shared"
)

type fakeEvaluator struct {
	got   shared.EvaluateArgs
	reply shared.EvaluateReply
	err   error
}

func (f *fakeEvaluator) Evaluate(args shared.EvaluateArgs) (shared.EvaluateReply, error) {
	f.got = args
	return f.reply, f.err
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

// openMode selects the mode at index i from the list.
func openMode(t *testing.T, m Model, i int) Model {
	t.Helper()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	for j := 0; j < i; j++ {
		m, _ = update(t, m, key(tea.KeyDown))
	}
	m, _ = update(t, m, key(tea.KeyEnter))
	if m.state != stateForm {
		t.Fatalf("state %d, want form", m.state)
	}
	return m
}

func TestSelectModeFillsDefaults(t *testing.T) {
	m := openMode(t, New(&fakeEvaluator{}, render.Infos()), 0)
	if m.current.Mode != icalc.ModeGraph || len(m.inputs) != 3 {
		t.Fatalf("mode %s with %d inputs", m.current.Mode, len(m.inputs))
	}
	args := m.Args()
	if args.Mode != "graph" || args.Expression != "x**2" || args.Params["x_min"] != "-10" || args.Params["x_max"] != "10" {
		t.Fatalf("args %+v", args)
	}
	if !strings.Contains(m.View(), "Graphing Calculator") {
		t.Fatalf("view:\n%s", m.View())
	}
}

func TestSubmitShowsResult(t *testing.T) {
	c := icalc.NewCalcWithOptions(icalc.DefaultOptions())
	d := render.FromResult(icalc.ModeArithmetic, c.Evaluate(&icalc.ArithmeticRequest{Operand1: 7, Operand2: 3, Operator: icalc.OpMul}))
	fake := &fakeEvaluator{reply: shared.EvaluateReply{Display: d}}

	m := openMode(t, New(fake, render.Infos()), 5)
	if m.current.Mode != icalc.ModeArithmetic {
		t.Fatalf("mode %s", m.current.Mode)
	}
	m, cmd := update(t, m, key(tea.KeyEnter))
	if cmd == nil || !m.busy {
		t.Fatal("submit did not start an evaluation")
	}
	m, _ = update(t, m, cmd())
	if m.busy {
		t.Fatal("still busy after result")
	}
	if fake.got.Params["operator"] != "Addition" {
		t.Fatalf("args %+v", fake.got)
	}
	if out := m.output.View(); !strings.Contains(out, "The result of 7.0 × 3.0 is 21.0") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestSubmitError(t *testing.T) {
	m := openMode(t, New(&fakeEvaluator{err: errors.New("connection refused")}, render.Infos()), 3)
	m, cmd := update(t, m, key(tea.KeyEnter))
	m, _ = update(t, m, cmd())
	if out := m.output.View(); !strings.Contains(out, "connection refused") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestTabAndEscape(t *testing.T) {
	m := openMode(t, New(&fakeEvaluator{}, render.Infos()), 0)
	m, _ = update(t, m, key(tea.KeyTab))
	if m.focus != 1 {
		t.Fatalf("focus %d", m.focus)
	}
	m, _ = update(t, m, key(tea.KeyShiftTab))
	m, _ = update(t, m, key(tea.KeyShiftTab))
	if m.focus != 2 {
		t.Fatalf("focus %d after wrapping back", m.focus)
	}
	m, _ = update(t, m, key(tea.KeyEsc))
	if m.state != stateModes {
		t.Fatal("esc did not return to the mode list")
	}
}
