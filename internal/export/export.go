// Package export renders generated passwords in the plain-text export format.
package export

import (
	"errors"
	"strings"
	"time"
)

// DateLayout matches the en-US locale timestamp shape, e.g. "10/19/2026, 2:27:05 PM".
const DateLayout = "1/2/2006, 3:04:05 PM"

const header = "PassGuard Password Export"

var ErrNothingToExport = errors.New("no password to export")

// Render returns the export document for password. Lines are separated by a
// single newline and the document has no trailing newline.
func Render(password string, at time.Time) (string, error) {
	if password == "" {
		return "", ErrNothingToExport
	}

	return strings.Join([]string{
		header,
		"Date: " + at.Format(DateLayout),
		"",
		"Password: " + password,
	}, "\n"), nil
}

// Filename returns the attachment name for an export created at the given
// time, e.g. "passguard-2026-10-19T14-27-05-123Z.txt".
func Filename(at time.Time) string {
	stamp := at.UTC().Format("2006-01-02T15:04:05.000Z")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return "passguard-" + stamp + ".txt"
}
