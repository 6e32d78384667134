package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/iot-manager/console/internal/routes"
	"github.com/iot-manager/console/pkg/navigation"
	"github.com/iot-manager/console/pkg/routetable"
)

func TestNewFromRegistry(t *testing.T) {
	err := New("R010")
	if err.Category != CategoryRouting || err.Message != "Route not found" {
		t.Errorf("New(R010) = %+v", err)
	}
	if err.Suggestion == "" {
		t.Error("R010 should carry a suggestion")
	}
	if err.Error() != "R010: Route not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("Z999")
	if err.Message != "Unknown error" || err.Code != "Z999" {
		t.Errorf("New(Z999) = %+v", err)
	}
}

func TestEveryCodeHasMessage(t *testing.T) {
	for _, code := range Codes() {
		tmpl, ok := Template(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("code %s has an incomplete template: %+v", code, tmpl)
		}
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := &routetable.RouteNotFoundError{Path: "/unknown"}
	err := New("R010").Wrap(cause)

	if !stderrors.Is(err, routetable.ErrRouteNotFound) {
		t.Error("wrapped error lost its sentinel")
	}
	if !strings.Contains(err.Error(), `"/unknown"`) {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&routetable.RouteNotFoundError{Path: "/x"}, "R010"},
		{fmt.Errorf("entry 1: %w", routetable.ErrDuplicatePath), "R002"},
		{fmt.Errorf("entry 1: %w", routetable.ErrDuplicateName), "R003"},
		{routetable.ErrMissingLanding, "R001"},
		{fmt.Errorf("x: %w", routetable.ErrInvalidPath), "R004"},
		{navigation.ErrSuperseded, "R007"},
		{navigation.ErrNoHistory, "R008"},
		{fmt.Errorf("read config: %w", fs.ErrNotExist), "C001"},
		{fmt.Errorf("routes: %w", routes.ErrUnknownVariant), "C003"},
		{stderrors.New("disk on fire"), "S001"},
	}
	for _, tt := range tests {
		got := Classify(tt.err, "S001")
		if got.Code != tt.want {
			t.Errorf("Classify(%v).Code = %q, want %q", tt.err, got.Code, tt.want)
		}
		if !stderrors.Is(got, tt.err) {
			t.Errorf("Classify(%v) does not wrap the original", tt.err)
		}
	}

	if Classify(nil, "S001") != nil {
		t.Error("Classify(nil) != nil")
	}

	existing := New("C002")
	if Classify(fmt.Errorf("outer: %w", existing), "S001") != existing {
		t.Error("Classify rewrapped a ConsoleError")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "C001") != nil {
		t.Error("FromError(nil) != nil")
	}
	base := stderrors.New("read config: no such file")
	got := FromError(base, "C001")
	if got.Code != "C001" || got.Wrapped != base {
		t.Errorf("FromError = %+v", got)
	}
	if FromError(got, "S001") != got {
		t.Error("FromError rewrapped a ConsoleError")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("R010").WithDetailf("no route matches %q", "/unknown")
	out := err.Format()

	for _, want := range []string{
		"ERROR R010: Route not found",
		`no route matches "/unknown"`,
		"Hint: Run `console routes`",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("colors not disabled")
	}
}

func TestFormatUsesCauseWithoutDetail(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("C001").Wrap(stderrors.New("open config.toml: permission denied")).Format()
	if !strings.Contains(out, "permission denied") {
		t.Errorf("Format() = %s", out)
	}
}

func TestFormatCompactAndJSON(t *testing.T) {
	err := New("R002").WithDetail(`"/books" registered twice`).Wrap(routetable.ErrDuplicatePath)

	if got := err.FormatCompact(); got != `R002: Duplicate route path ("/books" registered twice)` {
		t.Errorf("FormatCompact() = %q", got)
	}

	var decoded map[string]string
	if e := json.Unmarshal([]byte(err.FormatJSON()), &decoded); e != nil {
		t.Fatalf("FormatJSON not JSON: %v", e)
	}
	if decoded["code"] != "R002" || decoded["category"] != "routing" || decoded["cause"] != "duplicate path" {
		t.Errorf("FormatJSON() = %v", decoded)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "expected %d argument", 1)
	if err.Code != "" || err.Error() != "expected 1 argument" {
		t.Errorf("Newf = %+v", err)
	}
}

func TestPrint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Print(&buf, New("S001"))
	if !strings.Contains(buf.String(), "ERROR S001") {
		t.Errorf("Print(ConsoleError) = %q", buf.String())
	}

	buf.Reset()
	Print(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("Print(error) = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line too long: %q", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText of empty string")
	}
}
