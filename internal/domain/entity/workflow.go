package entity

// WorkflowStage identifies one step of the loop controller's cycle.
type WorkflowStage string

const (
	StageDisplay           WorkflowStage = "display"
	StageFetchContext      WorkflowStage = "fetch_context"
	StageFetchFeedback     WorkflowStage = "fetch_feedback"
	StageRunIteration      WorkflowStage = "run_iteration"
	StageDetermineStatus   WorkflowStage = "determine_status"
	StageAdjustFrustration WorkflowStage = "adjust_frustration"
)

// AgentStage identifies an LLM-backed workflow agent. Prompt templates are
// looked up by stage through an explicit mapping injected at construction.
type AgentStage string

const (
	AgentStageSummarize    AgentStage = "summarize"
	AgentStageExecute      AgentStage = "execute"
	AgentStageStatus       AgentStage = "evaluate_status"
	AgentStageCreateTasks  AgentStage = "create_tasks"
	AgentStageSelectAction AgentStage = "select_action"
)

// WorkflowState is the transient, process-lifetime state owned exclusively
// by the loop controller. Stages receive the fields they need by value and
// must not retain references across iterations.
type WorkflowState struct {
	Current        *Task
	PriorResult    string
	Summary        string
	Context        string
	Feedback       string
	Reason         string
	SelectedAction *Action
	Execution      *ExecutionResult
	Status         StatusResult
	Frustration    float64
}
