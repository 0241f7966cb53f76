package notify

import (
	"bytes"
	"strings"
	"testing"
)

func TestMulti_FansOut(t *testing.T) {
	var a, b Recorder
	var calls int
	m := Multi{&a, nil, &b, Func(func(string, string) { calls++ })}
	m.Notify("t", "d")

	if len(a.Toasts()) != 1 || len(b.Toasts()) != 1 || calls != 1 {
		t.Fatalf("fan-out failed: a=%v b=%v calls=%d", a.Toasts(), b.Toasts(), calls)
	}
}

func TestRecorder_Toasts(t *testing.T) {
	var r Recorder
	r.Notify("one", "1")
	r.Notify("two", "2")

	got := r.Toasts()
	if len(got) != 2 || got[1].Title != "two" {
		t.Fatalf("toasts = %+v", got)
	}
	got[0].Title = "changed"
	if r.Toasts()[0].Title != "one" {
		t.Fatal("Toasts must return a copy")
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	Writer{W: &buf}.Notify("🎯 Congratulations!", "You found the number 50 in 10 attempts!")
	out := buf.String()
	if !strings.Contains(out, "Congratulations") || !strings.Contains(out, "50 in 10 attempts") {
		t.Fatalf("output = %q", out)
	}
}
