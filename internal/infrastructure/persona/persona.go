package persona

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Persona is the operator-authored configuration: the objective, the seed
// agenda, and the frustration controller's bounds.
type Persona struct {
	Name        string      `yaml:"name"`
	Objective   string      `yaml:"objective"`
	Tasks       []string    `yaml:"tasks"`
	Frustration Frustration `yaml:"frustration"`
}

type Frustration struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// Parse decodes and validates a persona payload, applying defaults for
// omitted frustration bounds.
func Parse(data []byte) (Persona, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Persona{}, fmt.Errorf("persona: payload is empty")
	}
	var p Persona
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Persona{}, fmt.Errorf("persona: decode: %w", err)
	}
	if err := p.validate(); err != nil {
		return Persona{}, err
	}
	return p.normalized(), nil
}

// Load reads a persona YAML file from disk.
func Load(path string) (Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Persona{}, fmt.Errorf("persona: read %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return Persona{}, fmt.Errorf("persona: %s: %w", path, err)
	}
	return p, nil
}

func (p Persona) validate() error {
	if strings.TrimSpace(p.Objective) == "" {
		return fmt.Errorf("persona: objective is required")
	}
	if len(p.Tasks) == 0 {
		return fmt.Errorf("persona: at least one seed task is required")
	}
	f := p.Frustration
	if f.Min != 0 || f.Max != 0 {
		if f.Min < 0 || f.Max > 1 || f.Min >= f.Max {
			return fmt.Errorf("persona: frustration bounds must satisfy 0 <= min < max <= 1")
		}
	}
	if f.Step < 0 {
		return fmt.Errorf("persona: frustration step must not be negative")
	}
	return nil
}

func (p Persona) normalized() Persona {
	p.Objective = strings.TrimSpace(p.Objective)

	tasks := make([]string, 0, len(p.Tasks))
	for _, task := range p.Tasks {
		if trimmed := strings.TrimSpace(task); trimmed != "" {
			tasks = append(tasks, trimmed)
		}
	}
	p.Tasks = tasks

	if p.Frustration.Min == 0 && p.Frustration.Max == 0 {
		p.Frustration.Min = 0.7
		p.Frustration.Max = 1.0
	}
	if p.Frustration.Step == 0 {
		p.Frustration.Step = 0.1
	}
	return p
}
