package di

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	lcopenai "github.com/tmc/langchaingo/llms/openai"

	"agenda-agent/internal/application/port/input"
	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/infrastructure/actions"
	"agenda-agent/internal/infrastructure/llm/openrouter"
	"agenda-agent/internal/infrastructure/logger"
	"agenda-agent/internal/infrastructure/persona"
	"agenda-agent/internal/infrastructure/prompts"
	"agenda-agent/internal/infrastructure/store/docstore"
	"agenda-agent/internal/infrastructure/transcript"
	"agenda-agent/internal/infrastructure/userinteraction"
	"agenda-agent/internal/usecase/agents/execution"
	"agenda-agent/internal/usecase/agents/summarizer"
	"agenda-agent/internal/usecase/agents/taskcreation"
	"agenda-agent/internal/usecase/dispatch"
	"agenda-agent/internal/usecase/frustration"
	"agenda-agent/internal/usecase/queue"
	"agenda-agent/internal/usecase/status"
	"agenda-agent/internal/usecase/workflow"
)

type Container struct {
	Logger      output.LoggerPort
	Store       output.DocumentStorePort
	Queue       *queue.Manager
	TaskCreator *taskcreation.Agent
	Workflow    input.WorkflowRunner
}

type Config struct {
	OpenRouterAPIKey string
	OpenRouterModel  string

	EmbeddingsAPIKey string
	EmbeddingsModel  string

	DataDir        string
	TranscriptPath string

	Persona  persona.Persona
	Dispatch dispatch.Config
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log, err := logger.NewZapAdapter(cfg.Persona.Objective)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	llmCfg := openrouter.DefaultConfig(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
	llmCfg.Logger = log
	llm := openrouter.NewOpenRouterAdapter(llmCfg)

	embClient, err := lcopenai.New(
		lcopenai.WithToken(cfg.EmbeddingsAPIKey),
		lcopenai.WithEmbeddingModel(cfg.EmbeddingsModel),
	)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create embeddings client: %w", err)
	}
	embedder, err := embeddings.NewEmbedder(embClient)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	store, err := docstore.New(docstore.Config{
		DataDir:  cfg.DataDir,
		Embedder: embedder,
		Logger:   log,
	})
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create document store: %w", err)
	}

	renderer, err := prompts.NewRenderer(prompts.DefaultConfig())
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to build prompt renderer: %w", err)
	}

	ui := userinteraction.NewConsoleUserInteraction()
	audit := transcript.New(cfg.TranscriptPath)

	queueManager := queue.New(store, log)
	if err := seedTasks(ctx, queueManager, store, cfg.Persona.Tasks); err != nil {
		log.Close()
		return nil, err
	}
	if err := actions.Seed(ctx, store, log); err != nil {
		log.Close()
		return nil, err
	}

	selector := actions.NewSelector(store, llm, renderer, log)
	actionExecutor := actions.NewExecutor(llm, log)
	directExecutor := execution.New(llm, store, renderer, log)
	policy := dispatch.New(selector, actionExecutor, directExecutor, log, cfg.Dispatch)

	evaluator := status.New(llm, store, audit, renderer, log)
	controller := frustration.New(frustration.Config{
		Min:  cfg.Persona.Frustration.Min,
		Max:  cfg.Persona.Frustration.Max,
		Step: cfg.Persona.Frustration.Step,
	}, selector, log)

	summarizerAgent := summarizer.New(llm, store, renderer, log)
	creator := taskcreation.New(llm, renderer, log)

	loop := workflow.New(
		queueManager,
		policy,
		evaluator,
		controller,
		summarizerAgent,
		store,
		ui,
		audit,
		log,
		cfg.Persona.Objective,
	)

	return &Container{
		Logger:      log,
		Store:       store,
		Queue:       queueManager,
		TaskCreator: creator,
		Workflow:    loop,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

// seedTasks prefills the queue with the persona's seed agenda on first run.
// A populated queue is left alone so completed statuses survive restarts.
func seedTasks(ctx context.Context, queueManager *queue.Manager, store output.DocumentStorePort, seed []string) error {
	existing, err := store.LoadAll(ctx, "Tasks")
	if err != nil {
		return fmt.Errorf("failed to inspect task queue: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	if err := queueManager.ReplaceQueue(ctx, seed); err != nil {
		return fmt.Errorf("failed to seed task queue: %w", err)
	}
	return nil
}
