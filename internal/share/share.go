// Package share provisions freshly created slots: configured
// directories are symlinked to one backing copy under the control
// directory, and template files are rendered into the slot.
package share

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/haldane/wt/internal/config"
	"github.com/haldane/wt/internal/container"
)

// Data is the template context for rendered files.
type Data struct {
	Branch string
	Slot   string
	Root   string
}

// Apply links shared directories and renders templates into slotPath.
// It returns the problems it hit; provisioning is best-effort and the
// caller reports them as warnings.
func Apply(paths container.Paths, cfg *config.Config, slotName, branch string) []error {
	slotPath := paths.SlotPath(slotName)
	var errs []error

	for _, dir := range cfg.Shared.Directories {
		if err := linkShared(paths, slotPath, dir); err != nil {
			errs = append(errs, fmt.Errorf("shared %s: %w", dir, err))
		}
	}

	data := Data{Branch: branch, Slot: slotName, Root: paths.Root}
	for _, tpl := range cfg.Templates {
		if err := render(paths, slotPath, tpl, data); err != nil {
			errs = append(errs, fmt.Errorf("template %s: %w", tpl.Source, err))
		}
	}
	return errs
}

func linkShared(paths container.Paths, slotPath, dir string) error {
	backing := filepath.Join(paths.SharedDir(), dir)
	if err := os.MkdirAll(backing, 0o755); err != nil {
		return err
	}

	link := filepath.Join(slotPath, dir)
	if err := os.MkdirAll(filepath.Dir(link), 0o755); err != nil {
		return err
	}
	// A checkout may have produced a real directory at the link path;
	// the shared copy replaces it.
	if err := os.RemoveAll(link); err != nil {
		return err
	}
	return atomicSymlink(link, backing)
}

// atomicSymlink replaces linkPath with a symlink to target via a
// temporary link and rename.
func atomicSymlink(linkPath, target string) error {
	tmp := linkPath + ".tmp"
	os.Remove(tmp)
	if err := os.Symlink(target, tmp); err != nil {
		return err
	}
	return os.Rename(tmp, linkPath)
}

func render(paths container.Paths, slotPath string, tpl config.Template, data Data) error {
	t, err := template.ParseFiles(filepath.Join(paths.TemplateDir(), tpl.Source))
	if err != nil {
		return err
	}

	target := filepath.Join(slotPath, tpl.Target)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	f, err := os.Create(target)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Execute(f, data)
}
