// Package prompts holds the model prompt templates.
// Each embedded JSON file maps template keys to template text.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// templates parses every embedded file once, keyed by file name then template key.
var templates = sync.OnceValues(func() (map[string]map[string]string, error) {
	names, err := fs.Glob(promptFiles, "*.json")
	if err != nil {
		return nil, err
	}

	all := make(map[string]map[string]string, len(names))
	for _, name := range names {
		data, err := promptFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", name, err)
		}
		var entries map[string]string
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file %s: %w", name, err)
		}
		all[name] = entries
	}
	return all, nil
})

// Get returns the template stored under key in filename (e.g. "analysis.json").
func Get(filename, key string) (string, error) {
	all, err := templates()
	if err != nil {
		return "", err
	}

	entries, ok := all[filename]
	if !ok {
		return "", fmt.Errorf("failed to read prompt file %s: no such embedded file", filename)
	}
	template, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// MustGet is Get for templates the binary cannot run without.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// Format replaces placeholders of the form {{.Key}} with values from data.
// Replacement is a single pass, so placeholder text inside a value is left as-is.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
