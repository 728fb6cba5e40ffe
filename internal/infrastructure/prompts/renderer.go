package prompts

import (
	"bytes"
	"fmt"
	"text/template"

	"agenda-agent/internal/domain/entity"
)

// Renderer renders stage prompts from the injected Config.
type Renderer struct {
	templates map[entity.AgentStage]*template.Template
}

func NewRenderer(cfg Config) (*Renderer, error) {
	templates := make(map[entity.AgentStage]*template.Template, len(cfg))
	for stage, text := range cfg {
		tmpl, err := template.New(string(stage)).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", stage, err)
		}
		templates[stage] = tmpl
	}
	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Render(stage entity.AgentStage, data any) (string, error) {
	tmpl, ok := r.templates[stage]
	if !ok {
		return "", fmt.Errorf("no template configured for stage %q", stage)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", stage, err)
	}
	return buf.String(), nil
}
