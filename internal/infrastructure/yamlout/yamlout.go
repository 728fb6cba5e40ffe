package yamlout

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Extract parses structured YAML out of raw model output. Models wrap
// YAML in fenced code blocks or surround it with prose, so the fenced body
// is tried first and the whole payload second.
func Extract(raw string, out any) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("no content to parse")
	}

	if fenced, ok := fencedBlock(raw); ok {
		if err := yaml.Unmarshal([]byte(fenced), out); err == nil {
			return nil
		}
	}

	if err := yaml.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("no valid YAML content found: %w", err)
	}
	return nil
}

func fencedBlock(raw string) (string, bool) {
	start := strings.Index(raw, "```")
	if start == -1 {
		return "", false
	}
	rest := raw[start+3:]
	if nl := strings.Index(rest, "\n"); nl != -1 {
		// Drop the info string ("yaml", "yml" or empty).
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}
