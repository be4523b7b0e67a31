package version

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/mbrinkhoff/pontos/errors"
	"github.com/mbrinkhoff/pontos/logger"
)

// PyprojectFile is the manifest of a Python project.
const PyprojectFile = "pyproject.toml"

const versionModuleTemplate = `# pylint: disable=invalid-name

# THIS IS AN AUTOGENERATED FILE. DO NOT TOUCH!

__version__ = "%s"
`

var versionAssignment = regexp.MustCompile(`(?m)^__version__\s*=\s*["']([^"']+)["']`)

// Project reads and bumps the version of a software project.
type Project interface {
	CurrentVersion() (string, error)
	Verify(v string) error
	Update(v string, opts UpdateOptions) (Updated, error)
}

// UpdateOptions configures Project.Update.
type UpdateOptions struct {
	// Develop appends ".dev1" unless the version already is a development
	// release.
	Develop bool
	// Force rewrites the files even if the version does not change.
	Force bool
}

// Updated reports a version change.
type Updated struct {
	Previous string `json:"previous"`
	New      string `json:"new"`
}

// Changed reports whether the version differs.
func (u Updated) Changed() bool {
	return !Equal(u.Previous, u.New)
}

type pyproject struct {
	Tool struct {
		Poetry struct {
			Version string `toml:"version"`
		} `toml:"poetry"`
		Pontos struct {
			Version *struct {
				ModuleFile string `toml:"version-module-file"`
			} `toml:"version"`
		} `toml:"pontos"`
	} `toml:"tool"`
}

// PythonProject is a Python project with its version in
// [tool.poetry].version and a generated version module named by
// [tool.pontos.version].version-module-file.
type PythonProject struct {
	// Dir is the project root. Empty means the current directory.
	Dir string
}

var _ Project = PythonProject{}

func (p PythonProject) path(name string) string {
	if filepath.IsAbs(name) || p.Dir == "" {
		return name
	}
	return filepath.Join(p.Dir, name)
}

func (p PythonProject) load() (pyproject, error) {
	var doc pyproject
	data, err := os.ReadFile(p.path(PyprojectFile))
	if os.IsNotExist(err) {
		return doc, errors.Version("%s file not found", PyprojectFile)
	}
	if err != nil {
		return doc, errors.Version("read %s", PyprojectFile).WithCause(err)
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return doc, errors.Version("parse %s", PyprojectFile).WithCause(err)
	}
	return doc, nil
}

// ModuleFile returns the path of the generated version module.
func (p PythonProject) ModuleFile() (string, error) {
	doc, err := p.load()
	if err != nil {
		return "", err
	}
	settings := doc.Tool.Pontos.Version
	if settings == nil {
		return "", errors.Version("[tool.pontos.version] section missing in %s", PyprojectFile)
	}
	if settings.ModuleFile == "" {
		return "", errors.Version("version-module-file key not set in [tool.pontos.version] section of %s", PyprojectFile)
	}
	return p.path(settings.ModuleFile), nil
}

// ManifestVersion returns [tool.poetry].version, which may be in a
// non-normalized form.
func (p PythonProject) ManifestVersion() (string, error) {
	doc, err := p.load()
	if err != nil {
		return "", err
	}
	if doc.Tool.Poetry.Version == "" {
		return "", errors.Version("version information not found in %s", PyprojectFile)
	}
	return doc.Tool.Poetry.Version, nil
}

// CurrentVersion returns the __version__ of the version module.
func (p PythonProject) CurrentVersion() (string, error) {
	file, err := p.ModuleFile()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", errors.Version("could not load version from %s", file).WithCause(err)
	}
	m := versionAssignment.FindSubmatch(data)
	if m == nil {
		return "", errors.Version("no __version__ assignment in %s", file)
	}
	return string(m[1]), nil
}

// Verify checks that the version module holds a PEP 440 version that
// matches pyproject.toml and, unless v is "current", matches v.
func (p PythonProject) Verify(v string) error {
	current, err := p.CurrentVersion()
	if err != nil {
		return err
	}
	if !PEP440Compliant(current) {
		return errors.Version("the version %s is not PEP 440 compliant", current)
	}

	manifest, err := p.ManifestVersion()
	if err != nil {
		return err
	}
	if manifest != current {
		return errors.Version("the version %s in %s doesn't match the current version %s", manifest, PyprojectFile, current)
	}

	if v != "current" {
		if provided := Strip(v); provided != current {
			return errors.Version("provided version %s does not match the current version %s", provided, current)
		}
	}
	return nil
}

// Update sets a new version in pyproject.toml and the version module.
// Without Force nothing is written when the version is unchanged.
func (p PythonProject) Update(v string, opts UpdateOptions) (Updated, error) {
	next := Safe(v)
	if opts.Develop && !CheckDevelop(next) {
		next += ".dev1"
	}
	if !PEP440Compliant(next) {
		return Updated{}, errors.Version("%s is not a valid PEP 440 version", v)
	}

	file, err := p.ModuleFile()
	if err != nil {
		return Updated{}, err
	}

	current, err := p.CurrentVersion()
	if err != nil {
		// The version module may not exist yet.
		current, err = p.ManifestVersion()
		if err != nil {
			return Updated{}, err
		}
	}

	result := Updated{Previous: current, New: next}
	if _, statErr := os.Stat(file); statErr == nil && !opts.Force && Equal(next, current) {
		return result, nil
	}

	if err := p.writeManifestVersion(next); err != nil {
		return Updated{}, err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return Updated{}, errors.Version("create directory for %s", file).WithCause(err)
	}
	if err := os.WriteFile(file, fmt.Appendf(nil, versionModuleTemplate, next), 0o644); err != nil {
		return Updated{}, errors.Version("write %s", file).WithCause(err)
	}

	logger.WithComponent("version").Info("version updated", logger.Fields(
		"previous", result.Previous,
		"new", result.New,
		"module_file", file,
	))
	return result, nil
}

// writeManifestVersion rewrites [tool.poetry].version in place, keeping
// the rest of the file (comments and key order) untouched.
func (p PythonProject) writeManifestVersion(v string) error {
	path := p.path(PyprojectFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Version("read %s", PyprojectFile).WithCause(err)
	}

	updated := setTableKey(string(data), "tool.poetry", "version", v)

	var doc pyproject
	if err := toml.Unmarshal([]byte(updated), &doc); err != nil || doc.Tool.Poetry.Version != v {
		return errors.Version("could not update version in %s", PyprojectFile).WithCause(err)
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return errors.Version("write %s", PyprojectFile).WithCause(err)
	}
	return nil
}

// setTableKey sets key = "value" in the given TOML table, adding the key or
// the table when missing.
func setTableKey(doc, table, key, value string) string {
	assignment := fmt.Sprintf("%s = %q", key, value)
	keyPattern := regexp.MustCompile(`^\s*` + regexp.QuoteMeta(key) + `\s*=`)

	var out []string
	inTable, found, written := false, false, false
	headerAt := -1
	scanner := bufio.NewScanner(strings.NewReader(doc))
	for scanner.Scan() {
		line := scanner.Text()
		if name, ok := tableHeader(line); ok || strings.HasPrefix(strings.TrimSpace(line), "[[") {
			if inTable && !written {
				out = insertAt(out, headerAt+1, assignment)
				written = true
			}
			inTable = ok && name == table
			if inTable {
				found = true
				headerAt = len(out)
			}
		}
		if inTable && !written && keyPattern.MatchString(line) {
			line = assignment
			written = true
		}
		out = append(out, line)
	}
	switch {
	case inTable && !written:
		out = insertAt(out, headerAt+1, assignment)
	case !found:
		if len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
			out = append(out, "")
		}
		out = append(out, "["+table+"]", assignment)
	}
	return strings.Join(out, "\n") + "\n"
}

var tableHeaderPattern = regexp.MustCompile(`^\s*\[\s*([A-Za-z0-9_-][A-Za-z0-9_. -]*?)\s*\]\s*(#.*)?$`)

// tableHeader returns the dotted name of a standard table header line with
// whitespace around the dots removed.
func tableHeader(line string) (string, bool) {
	m := tableHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	parts := strings.Split(m[1], ".")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return strings.Join(parts, "."), true
}

func insertAt(lines []string, i int, line string) []string {
	return append(lines[:i], append([]string{line}, lines[i:]...)...)
}
