// Package plugincopy copies a plugin's auxiliary assets (settings, dependency
// libraries, static files) from its source tree into its compiled output.
//
// Every copy runs on a background task that is returned to the caller
// unawaited. Callers that need the files in place must wait on the tasks,
// e.g. with task.WaitAll.
package plugincopy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caioricciuti/plugin-updater/internal/logger"
	"github.com/caioricciuti/plugin-updater/internal/task"
)

// SettingsSuffix is appended to a settings folder whose name is already taken
// in the output tree, so user settings are never overwritten.
const SettingsSuffix = "_new"

// Copier holds copy options. It keeps no state between calls.
type Copier struct {
	// DescriptorExtensions are the project file extensions used to locate
	// the project root.
	DescriptorExtensions []string
	// FilterRootExtensions makes CopyRootFiles honour its extension list.
	// Off by default: all top-level files are copied.
	FilterRootExtensions bool
	// SettingsSuffix overrides SettingsSuffix for CopySettings.
	SettingsSuffix string
}

// Default is the copier used by the package-level functions.
var Default = New()

// New returns a copier with the default options.
func New() *Copier {
	return &Copier{
		DescriptorExtensions: DefaultDescriptorExtensions,
		SettingsSuffix:       SettingsSuffix,
	}
}

// FolderCopy is one planned folder copy.
type FolderCopy struct {
	Source string
	Target string
}

// CopyRootFiles copies the files directly under sourceDir into destDir in the
// background. extensions is only applied when FilterRootExtensions is set.
func (c *Copier) CopyRootFiles(sourceDir, destDir string, extensions []string) *task.Task {
	var keep func(string) bool
	if c.FilterRootExtensions {
		allowed := make(map[string]bool, len(extensions))
		for _, ext := range extensions {
			allowed[ext] = true
		}
		keep = func(name string) bool { return allowed[filepath.Ext(name)] }
	}

	return task.Run(func() error {
		n, err := copyFiles(sourceDir, destDir, keep)
		if err != nil {
			logger.Error("PluginCopyFiles -> root files %s -> %s: %v", sourceDir, destDir, err)
			return err
		}
		logger.Debug("PluginCopyFiles -> copied %d root files %s -> %s", n, sourceDir, destDir)
		return nil
	})
}

// PlanFolders resolves which category folders of sourceDir would be copied
// where. ok is false when sourceDir has no project descriptor.
func (c *Copier) PlanFolders(sourceDir, destDir string, cat Category, suffix string, flatten bool) (plan []FolderCopy, ok bool, err error) {
	root, found, err := FindProjectRoot(sourceDir, c.descriptorExtensions())
	if err != nil || !found {
		return nil, false, err
	}
	plan, err = planFolders(root, destDir, cat, suffix, flatten)
	return plan, true, err
}

func planFolders(root, destDir string, cat Category, suffix string, flatten bool) ([]FolderCopy, error) {
	sources, err := matchingDirs(root, cat)
	if err != nil {
		return nil, err
	}

	existing := map[string]bool{}
	if _, statErr := os.Stat(destDir); statErr == nil {
		names, err := matchingDirs(destDir, cat)
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			existing[n] = true
		}
	}

	plan := make([]FolderCopy, 0, len(sources))
	for _, name := range sources {
		target := filepath.Join(destDir, name)
		switch {
		case flatten:
			target = destDir
		case existing[name] && suffix != "":
			target = filepath.Join(destDir, name+suffix)
		}
		plan = append(plan, FolderCopy{Source: filepath.Join(root, name), Target: target})
	}
	return plan, nil
}

// CopyFolders copies every folder of the given category found next to the
// project descriptor into destDir, one background task per folder.
//
// The target is destDir/<name>, or destDir/<name><suffix> when suffix is set
// and destDir already has a folder of that name, or destDir itself when
// flatten is set. A nil slice and nil error mean the source has no project
// descriptor and there is nothing to do.
func (c *Copier) CopyFolders(sourceDir, destDir string, cat Category, suffix string, flatten bool) ([]*task.Task, error) {
	root, found, err := FindProjectRoot(sourceDir, c.descriptorExtensions())
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Debug("PluginCopyFiles -> no project file for %s, skipping %s", sourceDir, cat.Name)
		return nil, nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", destDir, err)
	}

	plan, err := planFolders(root, destDir, cat, suffix, flatten)
	if err != nil {
		return nil, err
	}

	tasks := make([]*task.Task, 0, len(plan))
	for _, fc := range plan {
		fc := fc
		logger.Debug("PluginCopyFiles -> %s: %s -> %s", cat.Name, fc.Source, fc.Target)
		tasks = append(tasks, task.Run(func() error {
			if err := copyTree(fc.Source, fc.Target); err != nil {
				logger.Error("PluginCopyFiles -> %s: %v", cat.Name, err)
				return err
			}
			return nil
		}))
	}
	return tasks, nil
}

// CopySettings copies settings folders, renaming with the settings suffix
// when the output already has a folder of the same name.
func (c *Copier) CopySettings(sourceDir, destDir string) ([]*task.Task, error) {
	return c.CopyFolders(sourceDir, destDir, Settings, c.SettingsSuffix, false)
}

// CopyDependencies copies the contents of all dependency folders straight
// into destDir. The folders are copied concurrently, so when two of them hold
// a file with the same relative path the last writer wins.
func (c *Copier) CopyDependencies(sourceDir, destDir string) ([]*task.Task, error) {
	return c.CopyFolders(sourceDir, destDir, Dependencies, "", true)
}

// CopyStaticFiles copies static asset folders under their own names.
func (c *Copier) CopyStaticFiles(sourceDir, destDir string) ([]*task.Task, error) {
	return c.CopyFolders(sourceDir, destDir, StaticFiles, "", false)
}

func (c *Copier) descriptorExtensions() []string {
	if len(c.DescriptorExtensions) == 0 {
		return DefaultDescriptorExtensions
	}
	return c.DescriptorExtensions
}

// CopyRootFiles calls Default.CopyRootFiles.
func CopyRootFiles(sourceDir, destDir string, extensions []string) *task.Task {
	return Default.CopyRootFiles(sourceDir, destDir, extensions)
}

// CopySettings calls Default.CopySettings.
func CopySettings(sourceDir, destDir string) ([]*task.Task, error) {
	return Default.CopySettings(sourceDir, destDir)
}

// CopyDependencies calls Default.CopyDependencies.
func CopyDependencies(sourceDir, destDir string) ([]*task.Task, error) {
	return Default.CopyDependencies(sourceDir, destDir)
}

// CopyStaticFiles calls Default.CopyStaticFiles.
func CopyStaticFiles(sourceDir, destDir string) ([]*task.Task, error) {
	return Default.CopyStaticFiles(sourceDir, destDir)
}
