package yamlout

import "testing"

type report struct {
	Status string `yaml:"status"`
	Reason string `yaml:"reason"`
}

func TestExtract_PlainYAML(t *testing.T) {
	var r report
	if err := Extract("status: completed\nreason: done", &r); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if r.Status != "completed" || r.Reason != "done" {
		t.Errorf("unexpected result: %+v", r)
	}
}

func TestExtract_FencedBlock(t *testing.T) {
	raw := "Here you go:\n```yaml\nstatus: completed\nreason: all good\n```\nLet me know!"

	var r report
	if err := Extract(raw, &r); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if r.Status != "completed" {
		t.Errorf("expected fenced body parsed, got %+v", r)
	}
}

func TestExtract_FenceWithoutInfoString(t *testing.T) {
	raw := "```\nstatus: not completed\n```"

	var r report
	if err := Extract(raw, &r); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if r.Status != "not completed" {
		t.Errorf("unexpected result: %+v", r)
	}
}

func TestExtract_ProseFallsThroughToWholePayload(t *testing.T) {
	// No fence: the whole payload is tried, and flat prose happens to be
	// invalid YAML mapping content for the target struct.
	var r report
	if err := Extract("I think it went well.", &r); err == nil {
		t.Error("expected an error for unstructured prose")
	}
}

func TestExtract_Empty(t *testing.T) {
	var r report
	if err := Extract("   \n", &r); err == nil {
		t.Error("expected an error for an empty payload")
	}
}

func TestExtract_ListPayload(t *testing.T) {
	var parsed struct {
		Tasks []string `yaml:"tasks"`
	}
	raw := "```yaml\ntasks:\n  - collect sources\n  - write summary\n```"

	if err := Extract(raw, &parsed); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(parsed.Tasks) != 2 || parsed.Tasks[0] != "collect sources" {
		t.Errorf("unexpected tasks: %v", parsed.Tasks)
	}
}
