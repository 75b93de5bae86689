package framework

import (
	"context"

	"github.com/albertocavalcante/ktgradle/internal/log"
	"github.com/albertocavalcante/ktgradle/pkg/settings"
)

// SettingsWriter registers plugin repositories in the settings script of a
// module's build.
type SettingsWriter interface {
	AddPluginRepository(line string, m Module) error
}

// SettingsFileWriter edits settings.gradle.kts on disk.
type SettingsFileWriter struct {
	Editor *settings.Editor
}

// NewSettingsFileWriter returns a writer validating scripts with v. A nil v
// uses the structural check only.
func NewSettingsFileWriter(v settings.Validator) *SettingsFileWriter {
	return &SettingsFileWriter{Editor: settings.NewEditor(v)}
}

// AddPluginRepository adds line to pluginManagement.repositories of the
// settings script in the module content root, or in the base directory when
// the content root has none. A missing or unparseable script is left alone.
func (w *SettingsFileWriter) AddPluginRepository(line string, m Module) error {
	path := settings.Find(m.ContentRoot, m.BaseDir)
	if path == "" {
		log.Debug("no settings script, skipping plugin repository", "module", m.Name, "repository", line)
		return nil
	}

	editor := w.Editor
	if editor == nil {
		editor = settings.NewEditor(nil)
	}
	_, err := editor.AddPluginRepository(context.Background(), path, line)
	return err
}
