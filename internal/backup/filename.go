package backup

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// Punctuation allowed to survive in file and folder names.
const filenameAllowed = "().-, =!"

const (
	filePrefixLayout = "20060102-1504"
	noDatePrefix     = "00000000-0000_"
	mailExt          = ".eml"
)

// CleanName strips characters unsafe for a path segment, keeping letters,
// digits, and a small punctuation allow-list. A subject that is entirely
// quoted and contains whitespace loses its surrounding quotes first.
func CleanName(text, allowExtra string) string {
	if strings.Contains(text, " ") && len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			text = text[1 : len(text)-1]
		}
	}

	var b strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) ||
			strings.ContainsRune(filenameAllowed, r) || strings.ContainsRune(allowExtra, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FolderDirName maps a server-side folder name to its destination
// subdirectory, preserving the folder hierarchy.
func FolderDirName(folder string) string {
	name := CleanName(folder, `/\`)
	name = strings.ReplaceAll(name, "\\", string(os.PathSeparator))
	name = strings.ReplaceAll(name, "/", string(os.PathSeparator))
	return name
}

// MessagePath derives a unique destination path for a message from its date
// and decoded subject. A zero date gets the fixed sentinel prefix. When the
// computed path already exists, a "(1)" marker is inserted before the
// extension, repeatedly, until the path is free.
func MessagePath(dir string, date time.Time, subject string) string {
	prefix := noDatePrefix
	if !date.IsZero() {
		prefix = date.Format(filePrefixLayout) + "_"
	}

	path := filepath.Join(dir, prefix+CleanName(subject, "")+mailExt)
	for pathExists(path) {
		path = strings.TrimSuffix(path, mailExt) + "(1)" + mailExt
	}
	return path
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
