// Package version reads, checks and bumps release versions.
//
// It covers PEP 440 version strings (Safe, PEP440Compliant, Equal,
// CheckDevelop), Python projects that keep their version in pyproject.toml
// and a generated version module (PythonProject), and the build information
// of the pontos binary itself, set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/mbrinkhoff/pontos/version.Version=1.0.0"
package version
