package runtime

import "testing"

type stubHandler struct {
	jobType string
}

func (h *stubHandler) Type() string       { return h.jobType }
func (h *stubHandler) Run(*Context) error { return nil }

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&stubHandler{jobType: "picture_rename"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(&stubHandler{jobType: "picture_rename"}); err == nil {
		t.Fatal("duplicate registration accepted")
	}
	if err := r.Register(&stubHandler{}); err == nil {
		t.Fatal("empty job type accepted")
	}
	if err := r.Register(nil); err == nil {
		t.Fatal("nil handler accepted")
	}

	if h, ok := r.Get("picture_rename"); !ok || h == nil {
		t.Fatal("registered handler not found")
	}
	if _, ok := r.Get("unknown"); ok {
		t.Fatal("unknown job type resolved")
	}
}
