package buildscript

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Digest returns the xxHash64 of text as a hex string.
func Digest(text string) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], xxhash.Sum64String(text))
	return hex.EncodeToString(buf[:])
}

// DigestFile returns the xxHash64 of the file at path, in the same format
// as Digest.
func DigestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open build script: %w", err)
	}
	defer func() { _ = f.Close() }()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash build script: %w", err)
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], h.Sum64())
	return hex.EncodeToString(buf[:]), nil
}

// UpToDate reports whether the file at path already holds exactly the
// rendered script. A missing file is not up to date.
func (b *Builder) UpToDate(path string) (bool, error) {
	got, err := DigestFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return got == Digest(b.Render()), nil
}
