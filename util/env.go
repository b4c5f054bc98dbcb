package util

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// PathPlaceholder is the literal token in a supplied PATH value that expands
// to the current process PATH. It lets callers append entries, e.g.
// "PATH:/opt/tool/bin", without clobbering the inherited lookup path.
const PathPlaceholder = "PATH"

// MergeEnv merges caller-supplied variables on top of the current process
// environment and returns the result in the key=value form expected by
// os/exec. When useLocal is false the parent environment is not inherited,
// but the PATH placeholder is still expanded so lookup paths concatenate
// rather than replace.
func MergeEnv(vars map[string]string, useLocal bool) []string {
	merged := make(map[string]string, len(vars)+8)
	if useLocal {
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok {
				merged[k] = v
			}
		}
	}
	for k, v := range vars {
		if k == "PATH" {
			v = ExpandPath(v)
		}
		merged[k] = v
	}

	env := make([]string, 0, len(merged))
	for k, v := range merged {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)
	return env
}

// ExpandPath replaces the first PATH placeholder in value with the current
// process PATH. Values without the placeholder are returned unchanged.
func ExpandPath(value string) string {
	local := os.Getenv("PATH")
	if local == "" {
		return value
	}
	return strings.Replace(value, PathPlaceholder, local, 1)
}
