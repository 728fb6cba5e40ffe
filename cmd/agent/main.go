package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"agenda-agent/internal/di"
	"agenda-agent/internal/domain/entity"
	"agenda-agent/internal/infrastructure/env"
	"agenda-agent/internal/infrastructure/persona"
	"agenda-agent/internal/usecase/dispatch"
)

func main() {
	envService := env.NewEnvService()

	personaPath := envService.GetDefault("PERSONA_PATH", "persona.yaml")
	p, err := persona.Load(personaPath)
	if err != nil {
		log.Fatalf("Failed to load persona: %v", err)
	}

	fmt.Print("\nDefine Objective (leave empty to use defaults): ")
	reader := bufio.NewReader(os.Stdin)
	objective, err := reader.ReadString('\n')
	if err != nil {
		log.Fatal("Failed to read input: ", err)
	}
	objective = strings.TrimSpace(objective)

	replanned := objective != ""
	if replanned {
		p.Objective = objective
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatchCfg := dispatch.DefaultConfig()
	dispatchCfg.RunFallbackAfterAction = envService.GetBool("RUN_FALLBACK_AFTER_ACTION", dispatchCfg.RunFallbackAfterAction)
	dispatchCfg.ResultCount = envService.GetInt("ACTION_RESULT_COUNT", dispatchCfg.ResultCount)

	container, err := di.NewContainer(ctx, di.Config{
		OpenRouterAPIKey: envService.MustGet("OPENROUTER_API_KEY"),
		OpenRouterModel:  envService.MustGet("OPENROUTER_MODEL_NAME"),
		EmbeddingsAPIKey: envService.GetDefault("EMBEDDINGS_API_KEY", envService.Get("OPENAI_API_KEY")),
		EmbeddingsModel:  envService.GetDefault("EMBEDDINGS_MODEL", "text-embedding-3-small"),
		DataDir:          envService.GetDefault("DATA_DIR", "data"),
		TranscriptPath:   envService.Get("TRANSCRIPT_PATH"),
		Persona:          p,
		Dispatch:         dispatchCfg,
	})
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer container.Close()

	if replanned {
		tasks, err := container.TaskCreator.CreateTasks(ctx, p.Objective)
		if err != nil {
			container.Logger.Error("Task planning failed, keeping existing queue", "error", err)
		} else if err := container.Queue.ReplaceQueue(ctx, tasks); err != nil {
			container.Logger.Error("Queue replacement failed", "error", err)
		}
	}

	container.Logger.Info("Workflow started", "objective", p.Objective)

	err = container.Workflow.Run(ctx)
	switch {
	case errors.Is(err, entity.ErrQueueExhausted):
		fmt.Println("\nTask list has been completed!")
	case errors.Is(err, context.Canceled):
		fmt.Println("\nLoop interrupted by user")
	case err != nil:
		container.Logger.Error("Workflow failed", "error", err)
		os.Exit(1)
	}
}
