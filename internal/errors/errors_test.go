package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"config error", "E020", "Invalid configuration value", CategoryConfig},
		{"protocol error", "E061", "Handler not found", CategoryProtocol},
		{"server error", "E080", "Server failed to start", CategoryServer},
		{"unknown error code", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("E020").WithDetail("counter.step must be an integer")
	want := "E020: Invalid configuration value: counter.step must be an integer"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	plain := Newf(CategoryCLI, "bad flag %q", "--x")
	if plain.Error() != `bad flag "--x"` {
		t.Errorf("Error() = %q", plain.Error())
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("open tally.yaml: no such file")
	err := New("E021").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	wrapped := fmt.Errorf("load: %w", err)
	if Code(wrapped) != "E021" {
		t.Errorf("Code() = %q, want E021", Code(wrapped))
	}
	if !stderrors.Is(wrapped, New("E021")) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(wrapped, New("E020")) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E060") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("E062")
	if got := FromError(fmt.Errorf("ctx: %w", orig), "E060"); got != orig {
		t.Error("FromError should return an existing TallyError unchanged")
	}

	got := FromError(stderrors.New("boom"), "E060")
	if got.Code != "E060" || got.Wrapped == nil {
		t.Errorf("FromError = %+v", got)
	}
	if Code(stderrors.New("plain")) != "" {
		t.Error("plain errors have no code")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E021").
		WithDetail("tally.yaml").
		Wrap(stderrors.New("permission denied"))
	out := err.Format()

	for _, want := range []string{
		"ERROR E021: Configuration file unreadable",
		"  tally.yaml",
		"Cause: permission denied",
		"Hint: Check the path",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("colors should be disabled")
	}
}

func TestPrint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Print(&buf, fmt.Errorf("wrapped: %w", New("E080")))
	if !strings.Contains(buf.String(), "ERROR E080") {
		t.Errorf("Print output = %q", buf.String())
	}

	buf.Reset()
	Print(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("Print output = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line too long: %q", l)
		}
	}
	if len(lines) < 2 {
		t.Errorf("expected wrapping, got %v", lines)
	}
}

func TestLookup(t *testing.T) {
	if _, ok := Lookup("E060"); !ok {
		t.Error("E060 should be registered")
	}
	if _, ok := Lookup("E000"); ok {
		t.Error("E000 should not be registered")
	}
}
