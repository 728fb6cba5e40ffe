package userinteraction

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/domain/entity"
)

var _ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)

type ConsoleUserInteraction struct {
	reader *bufio.Reader
}

func NewConsoleUserInteraction() *ConsoleUserInteraction {
	return &ConsoleUserInteraction{
		reader: bufio.NewReader(os.Stdin),
	}
}

func (u *ConsoleUserInteraction) GetFeedback(ctx context.Context) (string, error) {
	fmt.Print("\nFeedback (leave empty to skip): ")

	answer, err := u.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read user input: %w", err)
	}

	return strings.TrimSpace(answer), nil
}

func (u *ConsoleUserInteraction) ShowTaskList(ctx context.Context, objective string, tasks []entity.Task) {
	header := color.New(color.FgBlue, color.Bold)
	header.Printf("\n***** TASK LIST *****\n")
	header.Printf("Objective: %s\n", objective)

	completed := color.New(color.FgGreen)
	pending := color.New(color.FgRed)

	for _, task := range tasks {
		fmt.Printf("%d: %s - ", task.Order, task.Description)
		if task.Status == entity.TaskStatusCompleted {
			completed.Println(string(task.Status))
		} else {
			pending.Println(string(task.Status))
		}
	}

	header.Println("*****")
}

func (u *ConsoleUserInteraction) ShowResult(ctx context.Context, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	color.New(color.FgCyan, color.Bold).Printf("\n----- %s -----\n", title)
	fmt.Println(body)
}
