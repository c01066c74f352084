package config

import (
	"os"
	"path/filepath"
	"strings"
)

// runtimePath resolves a configured file or directory. Relative paths are
// taken from root, the directory of the loaded config file; configs parsed
// from memory resolve against the working directory.
func runtimePath(root, raw, fallback string) string {
	p := strings.TrimSpace(raw)
	if p == "" {
		p = fallback
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return filepath.Clean(p)
		}
		root = wd
	}
	return filepath.Join(root, p)
}

// setRoot anchors relative runtime paths at the directory of path.
func (c *AppConfig) setRoot(path string) {
	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	c.root = dir
	c.Database.root = dir
}
