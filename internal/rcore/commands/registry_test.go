package commands

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	rairlog "github.com/msto63/rair/foundation/core/log"
)

type handler struct {
	id string
}

func newTestRegistry(names ...string) *Registry[*handler] {
	r := NewRegistry[*handler](Options{Logger: rairlog.NewNop()})
	for _, name := range names {
		r.Add(name, &handler{id: name})
	}
	return r
}

func TestRegistry_AddDuplicateKeepsFirst(t *testing.T) {
	r := newTestRegistry()
	first := &handler{id: "first"}
	second := &handler{id: "second"}

	if !r.Add("seek", first) {
		t.Fatal("Add() first registration = false, want true")
	}
	if r.Add("seek", second) {
		t.Error("Add() duplicate registration = true, want false")
	}

	got, ok := r.Find("seek")
	if !ok {
		t.Fatal("Find() ok = false, want true")
	}
	if got != first {
		t.Errorf("Find() = %v, want %v", got.id, first.id)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistry_AddBlankName(t *testing.T) {
	r := newTestRegistry()

	for _, name := range []string{"", " ", "\t"} {
		if r.Add(name, &handler{}) {
			t.Errorf("Add(%q) = true, want false", name)
		}
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistry_SharedHandlerUnderTwoNames(t *testing.T) {
	r := newTestRegistry()
	h := &handler{id: "unmap"}

	if !r.Add("unmap", h) || !r.Add("um", h) {
		t.Fatal("Add() of long and short name failed")
	}

	for _, name := range []string{"unmap", "um"} {
		got, ok := r.Find(name)
		if !ok || got != h {
			t.Errorf("Find(%q) = %v, %v, want shared handler", name, got, ok)
		}
	}

	if _, ok := r.Find("unma"); ok {
		t.Error("Find() resolved a prefix, want exact match only")
	}
}

func TestRegistry_Suggest(t *testing.T) {
	tests := []struct {
		name        string
		registered  []string
		input       string
		maxDistance int
		want        []string
	}{
		{"ties keep registration order", []string{"map", "maps", "m"}, "mep", 2, []string{"map", "maps", "m"}},
		{"closest first", []string{"m", "maps", "map"}, "mep", 2, []string{"map", "m", "maps"}},
		{"only seek", []string{"map", "unmap", "um", "maps", "seek", "s", "quit"}, "seeker", 2, []string{"seek"}},
		{"nothing close", []string{"map", "seek"}, "disassemble", 2, []string{}},
		{"exact name has distance zero", []string{"maps", "map"}, "map", 1, []string{"map", "maps"}},
		{"zero distance", []string{"map", "maps"}, "mapx", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry(tt.registered...)
			got := r.Suggest(tt.input, tt.maxDistance)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Suggest(%q, %d) mismatch (-want +got):\n%s", tt.input, tt.maxDistance, diff)
			}
		})
	}
}

func TestRegistry_NamesAndComplete(t *testing.T) {
	r := newTestRegistry("map", "unmap", "um", "maps", "mode", "m")

	if diff := cmp.Diff([]string{"map", "unmap", "um", "maps", "mode", "m"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"map", "maps", "mode", "m"}, r.Complete("m")); diff != "" {
		t.Errorf("Complete(m) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"map", "maps"}, r.Complete("ma")); diff != "" {
		t.Errorf("Complete(ma) mismatch (-want +got):\n%s", diff)
	}
	if got := r.Complete("x"); len(got) != 0 {
		t.Errorf("Complete(x) = %v, want empty", got)
	}
}

func TestRegistry_Groups(t *testing.T) {
	r := newTestRegistry()
	mapCmd := &handler{id: "map"}
	unmap := &handler{id: "unmap"}
	r.Add("map", mapCmd)
	r.Add("unmap", unmap)
	r.Add("um", unmap)

	groups := r.Groups(func(a, b *handler) bool { return a == b })
	if len(groups) != 2 {
		t.Fatalf("Groups() len = %d, want 2", len(groups))
	}
	if diff := cmp.Diff([]string{"map"}, groups[0].Names); diff != "" {
		t.Errorf("Groups()[0] mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"unmap", "um"}, groups[1].Names); diff != "" {
		t.Errorf("Groups()[1] mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_ConcurrentReaders(t *testing.T) {
	r := newTestRegistry("map", "maps", "seek")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Find("map")
				r.Complete("m")
				r.Suggest("mep", 2)
			}
		}()
	}
	wg.Wait()
}
