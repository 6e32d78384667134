package history

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewStartsAtRoot(t *testing.T) {
	h := New("")
	if got := h.Current(); got != (Location{Path: "/"}) {
		t.Errorf("Current() = %+v, want /", got)
	}
	if h.Len() != 1 || h.Index() != 0 {
		t.Errorf("Len/Index = %d/%d, want 1/0", h.Len(), h.Index())
	}
	if h.Base() != "/" {
		t.Errorf("Base() = %q, want /", h.Base())
	}
}

func TestPushBackForward(t *testing.T) {
	h := New("/")
	h.Push(Location{Path: "/books"})
	h.Push(Location{Path: "/ping"})

	if got := h.Current().Path; got != "/ping" {
		t.Fatalf("Current = %q, want /ping", got)
	}

	loc, ok := h.Back()
	if !ok || loc.Path != "/books" {
		t.Fatalf("Back() = %+v, %v", loc, ok)
	}
	loc, ok = h.Back()
	if !ok || loc.Path != "/" {
		t.Fatalf("Back() = %+v, %v", loc, ok)
	}
	if _, ok := h.Back(); ok {
		t.Error("Back() at start reported ok")
	}

	loc, ok = h.Forward()
	if !ok || loc.Path != "/books" {
		t.Fatalf("Forward() = %+v, %v", loc, ok)
	}
}

func TestPushTruncatesForward(t *testing.T) {
	h := New("/")
	h.Push(Location{Path: "/books"})
	h.Push(Location{Path: "/ping"})
	h.Back()
	h.Push(Location{Path: "/photos"})

	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
	if _, ok := h.Forward(); ok {
		t.Error("Forward() after push reported ok")
	}
	if h.Current().Path != "/photos" {
		t.Errorf("Current = %q, want /photos", h.Current().Path)
	}
}

func TestReplace(t *testing.T) {
	h := New("/")
	h.Push(Location{Path: "/books"})
	h.Replace(Location{Path: "/ping", Query: "v=1"})

	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
	if got := h.Current(); got != (Location{Path: "/ping", Query: "v=1"}) {
		t.Errorf("Current() = %+v", got)
	}
}

func TestGoOutOfRange(t *testing.T) {
	h := New("/")
	h.Push(Location{Path: "/books"})

	for _, d := range []int{0, 1, -2, 5} {
		if _, ok := h.Go(d); ok {
			t.Errorf("Go(%d) reported ok", d)
		}
	}
	if h.Index() != 1 {
		t.Errorf("Index() = %d, want 1", h.Index())
	}
}

func TestPeekLeavesCursor(t *testing.T) {
	h := New("/")
	h.Push(Location{Path: "/books"})
	h.Push(Location{Path: "/ping"})

	loc, from, ok := h.Peek(-2)
	if !ok || loc.Path != "/" || from != 2 {
		t.Errorf("Peek(-2) = %v, %d, %v", loc, from, ok)
	}
	if _, _, ok := h.Peek(1); ok {
		t.Error("Peek(1) past the end reported ok")
	}
	if h.Index() != 2 {
		t.Errorf("Peek moved the cursor to %d", h.Index())
	}
}

func TestHref(t *testing.T) {
	tests := []struct {
		base string
		loc  Location
		want string
	}{
		{"/", Location{Path: "/books"}, "/books"},
		{"/console/", Location{Path: "/"}, "/console/"},
		{"/console", Location{Path: "/books", Query: "page=2"}, "/console/books?page=2"},
	}
	for _, tt := range tests {
		if got := New(tt.base).Href(tt.loc); got != tt.want {
			t.Errorf("Href(%+v) with base %q = %q, want %q", tt.loc, tt.base, got, tt.want)
		}
	}
}

func TestListen(t *testing.T) {
	type event struct {
		Path   string
		Action string
	}

	h := New("/")
	var got []event
	unlisten := h.Listen(func(loc Location, a Action) {
		got = append(got, event{loc.Path, a.String()})
	})

	h.Push(Location{Path: "/books"})
	h.Replace(Location{Path: "/ping"})
	h.Back()
	h.Go(0)
	unlisten()
	h.Push(Location{Path: "/photos"})

	want := []event{
		{"/books", "push"},
		{"/ping", "replace"},
		{"/", "pop"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestListenerMayReadHistory(t *testing.T) {
	h := New("/")
	var seen string
	h.Listen(func(Location, Action) {
		seen = h.Current().Path
	})
	h.Push(Location{Path: "/books"})
	if seen != "/books" {
		t.Errorf("listener saw %q, want /books", seen)
	}
}

func TestConcurrentPush(t *testing.T) {
	h := New("/")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Push(Location{Path: "/books"})
			h.Current()
		}()
	}
	wg.Wait()

	if h.Len() != 51 {
		t.Errorf("Len() = %d, want 51", h.Len())
	}
}

func TestLocationString(t *testing.T) {
	if s := (Location{Path: "/"}).String(); s != "/" {
		t.Errorf("String() = %q", s)
	}
	if s := (Location{Path: "/books", Query: "a=1"}).String(); s != "/books?a=1" {
		t.Errorf("String() = %q", s)
	}
	if Action(42).String() != "unknown" {
		t.Error("unknown action name")
	}
}
