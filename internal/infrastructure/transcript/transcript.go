package transcript

import (
	"fmt"
	"os"
	"path/filepath"

	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/domain/entity"
)

var _ output.TranscriptPort = (*FileTranscript)(nil)

// separator sits between transcript entries, matching the historical
// task_results.txt layout.
const separator = "\n\n\n\n---\n\n\n\n"

// FileTranscript appends completed-task transcripts and task-list snapshots
// to a free-text audit file. Write-only; never read back into the workflow.
type FileTranscript struct {
	path string
}

func New(path string) *FileTranscript {
	if path == "" {
		path = filepath.Join("Results", "task_results.txt")
	}
	return &FileTranscript{path: path}
}

func (t *FileTranscript) AppendTaskResult(task entity.Task, result string) error {
	entry := separator + "\nTask: " + task.Description + "\n\n" + result
	return t.append(entry)
}

func (t *FileTranscript) AppendTaskList(rendered string) error {
	return t.append(rendered)
}

func (t *FileTranscript) append(text string) error {
	if dir := filepath.Dir(t.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create results dir: %w", err)
		}
	}

	file, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(text); err != nil {
		return fmt.Errorf("append transcript: %w", err)
	}
	return nil
}
