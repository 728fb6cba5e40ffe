package prompts

import (
	_ "embed"

	"agenda-agent/internal/domain/entity"
)

//go:embed summarize.txt
var SummarizePrompt string

//go:embed execute.txt
var ExecutePrompt string

//go:embed status.txt
var StatusPrompt string

//go:embed create_tasks.txt
var CreateTasksPrompt string

//go:embed select_action.txt
var SelectActionPrompt string

// Config maps each workflow agent stage to its prompt template. The mapping
// is explicit and injected at construction so substituting a template never
// depends on naming conventions.
type Config map[entity.AgentStage]string

func DefaultConfig() Config {
	return Config{
		entity.AgentStageSummarize:    SummarizePrompt,
		entity.AgentStageExecute:      ExecutePrompt,
		entity.AgentStageStatus:       StatusPrompt,
		entity.AgentStageCreateTasks:  CreateTasksPrompt,
		entity.AgentStageSelectAction: SelectActionPrompt,
	}
}
