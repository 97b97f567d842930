package ioutils

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidChars       = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots       = regexp.MustCompile(`\.+$`)
	repeatedWhitespace = regexp.MustCompile(`\s+`)
)

// CopyFile copies a file from source to destination.
//
// The destination file is created with mode 0644 if it doesn't exist,
// or truncated if it does. The copy is flushed to disk before returning.
//
// Parameters:
//   - ctx: Context checked before the copy starts
//   - src: Source file path (must exist)
//   - dst: Destination file path (will be created/overwritten)
//
// Example:
//
//	err := CopyFile(ctx, "data/albums_table.csv", "history/20240101_120000_add/albums_table.csv")
func CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return err
	}
	if err := destFile.Sync(); err != nil {
		destFile.Close()
		return err
	}
	return destFile.Close()
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing. Use WriteFileAtomic for files that
// other readers depend on.
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// WriteFileAtomic replaces path with data. Readers see either the old
// content or the new content, never a partial file.
//
// Example:
//
//	err := WriteFileAtomic(ctx, "data/authors_table.csv", csvBytes)
func WriteFileAtomic(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	staged, err := StageFile(path, data)
	if err != nil {
		return err
	}
	return CommitStaged([]StagedFile{staged})
}

// StagedFile is a fully written temporary file waiting to replace Target.
type StagedFile struct {
	Temp   string
	Target string
}

// StageFile writes data to a temporary file next to target and syncs it.
// The caller must pass the result to CommitStaged or DiscardStaged.
func StageFile(target string, data []byte) (StagedFile, error) {
	dir := filepath.Dir(target)
	if err := EnsureDir(dir); err != nil {
		return StagedFile{}, err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return StagedFile{}, err
	}
	staged := StagedFile{Temp: tmp.Name(), Target: target}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(staged.Temp)
		return StagedFile{}, err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(staged.Temp)
		return StagedFile{}, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(staged.Temp)
		return StagedFile{}, err
	}
	if err := os.Chmod(staged.Temp, 0644); err != nil {
		os.Remove(staged.Temp)
		return StagedFile{}, err
	}

	return staged, nil
}

// CommitError reports the staged file whose rename failed.
type CommitError struct {
	Target string
	Err    error
}

func (e *CommitError) Error() string {
	return "commit " + e.Target + ": " + e.Err.Error()
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// CommitStaged renames each staged file over its target in order. On
// failure the remaining staged files are removed, the targets already
// renamed keep their new content and a *CommitError names the failed target.
func CommitStaged(files []StagedFile) error {
	for i, f := range files {
		if err := os.Rename(f.Temp, f.Target); err != nil {
			DiscardStaged(files[i:])
			return &CommitError{Target: f.Target, Err: err}
		}
	}
	return nil
}

// DiscardStaged removes staged files that were not committed.
func DiscardStaged(files []StagedFile) {
	for _, f := range files {
		os.Remove(f.Temp)
	}
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2")     // Returns "Song_ Part 1_2"
//	SanitizeFileName("Track...")           // Returns "Track"
//	SanitizeFileName("Name   with  spaces") // Returns "Name with spaces"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedWhitespace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
