package trigger

import (
	"time"

	"github.com/hookfire/core/internal/models"
)

// CreateTriggerDTO is the request body for registering a trigger.
type CreateTriggerDTO struct {
	Title    string                `json:"title"    binding:"required"`
	Kind     models.TriggerKind    `json:"kind"     binding:"required"`
	Template string                `json:"template"`
	Context  []models.ContextEntry `json:"context"`
}

// triggerResponse is the outbound representation of a trigger.
type triggerResponse struct {
	ID       string                `json:"id"`
	Title    string                `json:"title"`
	Kind     models.TriggerKind    `json:"kind"`
	Template string                `json:"template,omitempty"`
	Context  []models.ContextEntry `json:"context"`
	Created  time.Time             `json:"created"`
}

func toResponse(t *models.TriggerModel) triggerResponse {
	ctx := t.Context
	if ctx == nil {
		ctx = []models.ContextEntry{}
	}
	return triggerResponse{
		ID:       t.ID,
		Title:    t.Title,
		Kind:     t.Kind,
		Template: t.Template,
		Context:  ctx,
		Created:  t.CreatedAt,
	}
}

// TriggerData is the definition snapshot embedded in a successful run record.
type TriggerData struct {
	Title  string             `json:"title"`
	Kind   models.TriggerKind `json:"kind"`
	Prompt string             `json:"prompt"`
}

// LifecycleResult is returned by a completed firing.
type LifecycleResult struct {
	TriggerData     TriggerData `json:"triggerData"`
	ExternalWebhook string      `json:"externalWebhook"`
	TriggerRun      string      `json:"triggerRun"`
	CronExpression  string      `json:"cronExpression"`
	Success         bool        `json:"success"`
}
