package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/albertocavalcante/ktgradle/internal/log"
)

// FileName is the Kotlin DSL settings script name.
const FileName = "settings.gradle.kts"

// Find returns the first settings script found in dirs, in order, or "".
// Empty entries are skipped.
func Find(dirs ...string) string {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Editor performs read-modify-write edits of settings scripts on disk.
type Editor struct {
	Validator Validator
}

// NewEditor returns an Editor validating with v. A nil v uses the
// structural check only.
func NewEditor(v Validator) *Editor {
	if v == nil {
		v = StructuralValidator{}
	}
	return &Editor{Validator: v}
}

func (e *Editor) locator() Locator {
	if l, ok := e.Validator.(Locator); ok {
		return l
	}
	return StructuralValidator{}
}

// AddPluginRepository adds line to pluginManagement.repositories of the
// settings script at path.
//
// A missing file or one that does not parse as Kotlin script is left alone
// and reported as (false, nil). So is a file whose pluginManagement layout
// the structural parser and the validator's Locator disagree on, or whose
// edited copy does not show exactly one pluginManagement holding line. Otherwise the edited copy is reformatted and
// written over the file; the write is skipped when the text is unchanged.
func (e *Editor) AddPluginRepository(ctx context.Context, path, line string) (bool, error) {
	logger := log.Component("settings")

	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("settings script not found", "path", path)
			return false, nil
		}
		return false, fmt.Errorf("failed to read settings script: %w", err)
	}

	if err := e.Validator.Validate(ctx, src); err != nil {
		logger.Debug("settings script not editable", "path", path, "validator", e.Validator.Name(), "error", err)
		return false, nil
	}
	script, err := Parse(src)
	if err != nil {
		logger.Debug("settings script not editable", "path", path, "error", err)
		return false, nil
	}

	locator := e.locator()
	before, err := locator.Layout(ctx, src)
	if err != nil {
		logger.Debug("settings script not editable", "path", path, "error", err)
		return false, nil
	}
	if structural := script.Layout(); !structural.Equal(before) {
		logger.Warn("settings parsers disagree on pluginManagement, leaving script alone",
			"path", path, "structural", structural.String(), e.Validator.Name(), before.String())
		return false, nil
	}

	edited := script.Clone()
	added := edited.AddPluginRepository(line)
	edited.Format()

	out := edited.String()
	if out == string(src) {
		logger.Debug("settings script unchanged", "path", path)
		return false, nil
	}

	after, err := locator.Layout(ctx, []byte(out))
	if err == nil {
		err = e.Validator.Validate(ctx, []byte(out))
	}
	if err != nil || len(after.PluginManagement) != max(1, len(before.PluginManagement)) || !after.HasRepository(line) {
		logger.Warn("edited settings script failed verification, leaving script alone",
			"path", path, "layout", after.String(), "error", err)
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat settings script: %w", err)
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write settings script: %w", err)
	}

	logger.Info("updated settings script", "path", path, "repository_added", added)
	return true, nil
}
