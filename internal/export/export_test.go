package export

import (
	"errors"
	"testing"
	"time"
)

func TestRender(t *testing.T) {
	at := time.Date(2026, time.October, 19, 14, 27, 5, 0, time.UTC)

	got, err := Render("p@ssW0rd!x", at)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	want := "PassGuard Password Export\n" +
		"Date: 10/19/2026, 2:27:05 PM\n" +
		"\n" +
		"Password: p@ssW0rd!x"
	if got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderMorning(t *testing.T) {
	at := time.Date(2026, time.January, 2, 9, 5, 0, 0, time.UTC)

	got, err := Render("abc", at)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if want := "PassGuard Password Export\nDate: 1/2/2026, 9:05:00 AM\n\nPassword: abc"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderEmptyPassword(t *testing.T) {
	out, err := Render("", time.Now())
	if !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("Render() error = %v, want %v", err, ErrNothingToExport)
	}
	if out != "" {
		t.Errorf("Render() should return empty output on error, got %q", out)
	}
}

func TestFilename(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2026, time.October, 19, 16, 27, 5, 123000000, loc)

	if got, want := Filename(at), "passguard-2026-10-19T14-27-05-123Z.txt"; got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}
