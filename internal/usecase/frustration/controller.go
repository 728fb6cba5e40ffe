package frustration

import (
	"math"

	"agenda-agent/internal/application/port/output"
	"agenda-agent/internal/domain/entity"
)

// Controller is a bounded, monotonically-stepped scalar: every
// non-completed outcome raises the value by one step up to Max, a completed
// outcome resets it to Min. The value doubles as the confidence threshold
// of the action selector, and this controller is its sole writer.
//
// Intentionally simple: linear, capped, no decay over time, no per-task
// memory.
type Controller struct {
	min   float64
	max   float64
	step  float64
	value float64

	selector output.ActionSelectorPort
	logger   output.LoggerPort
}

type Config struct {
	Min  float64
	Max  float64
	Step float64
}

func DefaultConfig() Config {
	return Config{
		Min:  0.7,
		Max:  1.0,
		Step: 0.1,
	}
}

func New(cfg Config, selector output.ActionSelectorPort, logger output.LoggerPort) *Controller {
	c := &Controller{
		min:      cfg.Min,
		max:      cfg.Max,
		step:     cfg.Step,
		value:    cfg.Min,
		selector: selector,
		logger:   logger,
	}
	c.selector.SetThreshold(c.value)
	return c
}

// OnTaskOutcome adjusts the frustration level for one iteration's status
// and pushes the new threshold into the action selector. Returns the new
// value.
func (c *Controller) OnTaskOutcome(status entity.TaskStatus) float64 {
	if status != entity.TaskStatusCompleted {
		raised := math.Min(c.value+c.step, c.max)
		if raised > c.value {
			c.logger.Info("Increased frustration level", "frustration", raised)
		} else {
			c.logger.Info("Max frustration level reached", "frustration", raised)
		}
		c.value = raised
	} else {
		c.value = c.min
		c.logger.Debug("Frustration reset", "frustration", c.value)
	}

	c.selector.SetThreshold(c.value)
	return c.value
}

// Value returns the current frustration level.
func (c *Controller) Value() float64 {
	return c.value
}
