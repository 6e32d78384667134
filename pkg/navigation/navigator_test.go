package navigation

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iot-manager/console/pkg/history"
	"github.com/iot-manager/console/pkg/routetable"
)

type stubView struct{ label string }

func (v *stubView) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, v.label)
	return err
}

// mounts records every entry the navigator mounts.
type mounts struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (m *mounts) Mount(_ context.Context, e routetable.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.names = append(m.names, e.Name)
	return nil
}

func (m *mounts) list() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.names...)
}

func testTable(t *testing.T) *routetable.Table {
	t.Helper()
	table, err := routetable.New(
		routetable.Entry{Path: "/", Name: "Sensor Data", View: &stubView{"sensors"}},
		routetable.Entry{Path: "/books", Name: "Books", View: &stubView{"books"}},
		routetable.Entry{Path: "/ping", Name: "ping", View: &stubView{"ping"}},
	)
	if err != nil {
		t.Fatalf("routetable.New: %v", err)
	}
	return table
}

func TestNavigatePushesAndMounts(t *testing.T) {
	m := &mounts{}
	host := history.New("/")
	nav := New(testTable(t), host, m)

	res, err := nav.Navigate(context.Background(), "/books")
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if res.Entry.Name != "Books" {
		t.Errorf("Entry.Name = %q, want Books", res.Entry.Name)
	}
	if res.Href != "/books" {
		t.Errorf("Href = %q, want /books", res.Href)
	}
	if host.Current().Path != "/books" || host.Len() != 2 {
		t.Errorf("host = %+v (len %d), want /books (len 2)", host.Current(), host.Len())
	}
	if diff := cmp.Diff([]string{"Books"}, m.list()); diff != "" {
		t.Errorf("mounts (-want +got):\n%s", diff)
	}
	if nav.State() != StateIdle {
		t.Errorf("State() = %v after navigation, want idle", nav.State())
	}
}

func TestNavigateCanonicalPathInHost(t *testing.T) {
	host := history.New("/console")
	nav := New(testTable(t), host, nil)

	res, err := nav.Navigate(context.Background(), "/ping/?verbose=1")
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	want := history.Location{Path: "/ping", Query: "verbose=1"}
	if host.Current() != want {
		t.Errorf("host = %+v, want %+v", host.Current(), want)
	}
	if res.Href != "/console/ping?verbose=1" {
		t.Errorf("Href = %q", res.Href)
	}
}

func TestNavigateAgreesWithMatch(t *testing.T) {
	table := testTable(t)
	nav := New(table, history.New("/"), nil)

	for _, p := range []string{"//books", "///books/", "books"} {
		want, err := table.Match(p)
		if err != nil {
			t.Fatalf("Match(%q): %v", p, err)
		}
		res, err := nav.Navigate(context.Background(), p)
		if err != nil {
			t.Fatalf("Navigate(%q): %v", p, err)
		}
		if res.Entry.Name != want.Name {
			t.Errorf("Navigate(%q) = %q, Match = %q", p, res.Entry.Name, want.Name)
		}
	}
}

func TestNavigateNotFoundLeavesHost(t *testing.T) {
	m := &mounts{}
	host := history.New("/")
	nav := New(testTable(t), host, m)

	for _, p := range []string{"/unknown", "/photos", "https://example.com/books", "/../x"} {
		_, err := nav.Navigate(context.Background(), p)
		if !routetable.IsNotFound(err) {
			t.Fatalf("Navigate(%q) error = %v, want not found", p, err)
		}
	}
	if host.Len() != 1 || host.Current().Path != "/" {
		t.Errorf("host changed on not-found: %+v (len %d)", host.Current(), host.Len())
	}
	if len(m.list()) != 0 {
		t.Errorf("mounted %v on not-found", m.list())
	}
}

func TestNavigateReplace(t *testing.T) {
	host := history.New("/")
	nav := New(testTable(t), host, nil)
	ctx := context.Background()

	if _, err := nav.Navigate(ctx, "/books"); err != nil {
		t.Fatal(err)
	}
	if _, err := nav.Navigate(ctx, "/ping", WithReplace()); err != nil {
		t.Fatal(err)
	}
	if host.Len() != 2 || host.Current().Path != "/ping" {
		t.Errorf("host = %+v (len %d), want /ping (len 2)", host.Current(), host.Len())
	}
}

func TestNavigateWithQuery(t *testing.T) {
	host := history.New("/")
	nav := New(testTable(t), host, nil)

	res, err := nav.Navigate(context.Background(), "/?type=soil_temp", WithQuery(map[string]any{"days": 7, "type": "air_temp"}))
	if err != nil {
		t.Fatal(err)
	}
	if res.Location.Query != "days=7&type=air_temp" {
		t.Errorf("Query = %q", res.Location.Query)
	}
}

func TestNavigateByName(t *testing.T) {
	m := &mounts{}
	nav := New(testTable(t), history.New("/"), m)

	res, err := nav.NavigateByName(context.Background(), "ping")
	if err != nil {
		t.Fatal(err)
	}
	if res.Location.Path != "/ping" {
		t.Errorf("Path = %q, want /ping", res.Location.Path)
	}

	_, err = nav.NavigateByName(context.Background(), "Photo Gallery")
	if !routetable.IsNotFound(err) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestBackForward(t *testing.T) {
	m := &mounts{}
	host := history.New("/")
	nav := New(testTable(t), host, m)
	ctx := context.Background()

	if _, err := nav.Back(ctx); !errors.Is(err, ErrNoHistory) {
		t.Fatalf("Back() at start error = %v, want ErrNoHistory", err)
	}

	nav.Navigate(ctx, "/books")
	nav.Navigate(ctx, "/ping")

	res, err := nav.Back(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Entry.Name != "Books" {
		t.Errorf("Back() mounted %q, want Books", res.Entry.Name)
	}

	res, err = nav.Forward(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if res.Entry.Name != "ping" {
		t.Errorf("Forward() mounted %q, want ping", res.Entry.Name)
	}
	if _, err := nav.Forward(ctx); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Forward() at end error = %v, want ErrNoHistory", err)
	}

	if host.Len() != 3 {
		t.Errorf("traversal changed the stack: len %d", host.Len())
	}
	want := []string{"Books", "ping", "Books", "ping"}
	if diff := cmp.Diff(want, m.list()); diff != "" {
		t.Errorf("mounts (-want +got):\n%s", diff)
	}
}

func TestGoMovesSeveralEntries(t *testing.T) {
	m := &mounts{}
	host := history.New("/")
	nav := New(testTable(t), host, m)
	ctx := context.Background()

	nav.Navigate(ctx, "/books")
	nav.Navigate(ctx, "/ping")

	res, err := nav.Go(ctx, -2)
	if err != nil {
		t.Fatal(err)
	}
	if res.Entry.Name != "Sensor Data" || host.Index() != 0 {
		t.Errorf("Go(-2) mounted %q at index %d", res.Entry.Name, host.Index())
	}
	if _, err := nav.Go(ctx, 3); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Go(3) error = %v, want ErrNoHistory", err)
	}
	if _, err := nav.Go(ctx, 0); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Go(0) error = %v, want ErrNoHistory", err)
	}
}

func TestSupersededBackLeavesHost(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	hold := MiddlewareFunc(func(req *Request, next func() error) error {
		if req.Kind == KindBack {
			close(started)
			<-release
		}
		return next()
	})

	m := &mounts{}
	host := history.New("/")
	nav := New(testTable(t), host, m, WithMiddleware(hold))
	ctx := context.Background()

	nav.Navigate(ctx, "/books")
	nav.Navigate(ctx, "/ping")

	var backErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, backErr = nav.Back(ctx)
	}()

	<-started
	if host.Current().Path != "/ping" {
		t.Errorf("host moved to %q before the traversal won", host.Current().Path)
	}
	if _, err := nav.Navigate(ctx, "/ping", WithReplace()); err != nil {
		t.Fatal(err)
	}

	close(release)
	<-done

	if !errors.Is(backErr, ErrSuperseded) {
		t.Fatalf("Back error = %v, want ErrSuperseded", backErr)
	}
	if host.Current().Path != "/ping" || host.Index() != 2 {
		t.Errorf("host = %q at %d, want /ping at 2", host.Current().Path, host.Index())
	}
	if diff := cmp.Diff([]string{"Books", "ping", "ping"}, m.list()); diff != "" {
		t.Errorf("mounts (-want +got):\n%s", diff)
	}
}

func TestStart(t *testing.T) {
	m := &mounts{}
	host := history.New("/")
	nav := New(testTable(t), host, m)

	res, err := nav.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Entry.Name != "Sensor Data" {
		t.Errorf("Start() mounted %q, want Sensor Data", res.Entry.Name)
	}
	if host.Len() != 1 {
		t.Errorf("Start() pushed onto the host")
	}
}

func TestMountErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	nav := New(testTable(t), history.New("/"), &mounts{err: boom})

	_, err := nav.Navigate(context.Background(), "/books")
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	host := history.New("/")
	nav := New(testTable(t), host, nil)
	if _, err := nav.Navigate(ctx, "/books"); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if host.Len() != 1 {
		t.Error("host changed for a canceled navigation")
	}
}

func TestLastWriterWins(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	// Hold the first navigation before it resolves.
	hold := MiddlewareFunc(func(req *Request, next func() error) error {
		if req.Seq == 1 {
			close(started)
			<-release
		}
		return next()
	})

	m := &mounts{}
	host := history.New("/")
	nav := New(testTable(t), host, m, WithMiddleware(hold))

	var firstErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, firstErr = nav.Navigate(context.Background(), "/books")
	}()

	<-started
	if nav.State() != StateResolving {
		t.Errorf("State() = %v while a navigation is held, want resolving", nav.State())
	}

	res, err := nav.Navigate(context.Background(), "/ping")
	if err != nil {
		t.Fatalf("second Navigate: %v", err)
	}
	if res.Seq != 2 {
		t.Errorf("second Seq = %d, want 2", res.Seq)
	}

	close(release)
	<-done

	if !errors.Is(firstErr, ErrSuperseded) {
		t.Fatalf("first Navigate error = %v, want ErrSuperseded", firstErr)
	}
	if host.Current().Path != "/ping" {
		t.Errorf("host = %q, want /ping", host.Current().Path)
	}
	if diff := cmp.Diff([]string{"ping"}, m.list()); diff != "" {
		t.Errorf("mounts (-want +got):\n%s", diff)
	}
	if nav.State() != StateIdle {
		t.Errorf("State() = %v, want idle", nav.State())
	}
}

func TestMiddlewareOrderAndRequest(t *testing.T) {
	var order []string
	var seen *Request

	mw := func(name string) Middleware {
		return MiddlewareFunc(func(req *Request, next func() error) error {
			order = append(order, name+":before")
			err := next()
			order = append(order, name+":after")
			seen = req
			return err
		})
	}

	nav := New(testTable(t), history.New("/"), nil, WithMiddleware(mw("a"), mw("b")))
	if _, err := nav.Navigate(context.Background(), "/books"); err != nil {
		t.Fatal(err)
	}

	want := []string{"a:before", "b:before", "b:after", "a:after"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	if seen.Entry.Name != "Books" || seen.Kind != KindNavigate || seen.Path != "/books" {
		t.Errorf("request = %+v", seen)
	}
}

func TestMiddlewareAbort(t *testing.T) {
	deny := errors.New("denied")
	host := history.New("/")

	nav := New(testTable(t), host, nil, WithMiddleware(MiddlewareFunc(func(*Request, func() error) error {
		return deny
	})))
	if _, err := nav.Navigate(context.Background(), "/books"); !errors.Is(err, deny) {
		t.Errorf("error = %v, want denied", err)
	}

	silent := New(testTable(t), host, nil, WithMiddleware(MiddlewareFunc(func(*Request, func() error) error {
		return nil
	})))
	if _, err := silent.Navigate(context.Background(), "/books"); !errors.Is(err, ErrAborted) {
		t.Errorf("error = %v, want ErrAborted", err)
	}
	if host.Len() != 1 {
		t.Error("aborted navigation changed the host")
	}
}

func TestStateString(t *testing.T) {
	if StateIdle.String() != "idle" || StateResolving.String() != "resolving" {
		t.Errorf("unexpected state names %q %q", StateIdle, StateResolving)
	}
}
