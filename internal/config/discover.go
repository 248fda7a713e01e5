package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdfusion/internal/fileutil"
)

// DefaultConfigFilename is looked up in the base directory when no config
// path flag is given.
const DefaultConfigFilename = "mdfusion.toml"

// configPathFlags are the CLI tokens that carry a config file path.
var configPathFlags = []string{"-c", "--config-path"}

// DiscoverConfigPath scans args for a config path flag followed by a value
// (or joined with "="). When none is present it falls back to
// DefaultConfigFilename in baseDir, or the working directory when baseDir is
// empty. Returns "" when neither exists.
func DiscoverConfigPath(args []string, baseDir string) Path {
	for i, a := range args {
		for _, flag := range configPathFlags {
			if a == flag && i+1 < len(args) {
				return Path(args[i+1])
			}
			if strings.HasPrefix(a, flag+"=") {
				return Path(strings.TrimPrefix(a, flag+"="))
			}
		}
	}

	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		baseDir = wd
	}
	candidate := filepath.Join(baseDir, DefaultConfigFilename)
	if fileutil.FileExists(candidate) {
		return Path(candidate)
	}
	return ""
}
