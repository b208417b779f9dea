package trigger

import (
	"context"
	"fmt"
	"time"

	"github.com/hookfire/core/internal/models"
	"github.com/hookfire/core/internal/pkg/schedules"
	"go.uber.org/zap"
)

// defaultSettle is the pause between scheduler calls, giving the external
// service time to register a schedule before it is triggered and to finish the
// trigger before teardown.
const defaultSettle = time.Second

// TriggerStore loads trigger definitions for a firing.
type TriggerStore interface {
	FindTrigger(id string) (*models.TriggerModel, error)
}

// RunRecorder persists the audit entry for one firing attempt.
type RunRecorder interface {
	RecordRun(triggerID string, metadata map[string]interface{}) error
}

// ScheduleAPI is the external scheduler protocol required by one firing cycle.
type ScheduleAPI interface {
	CreateSchedule(ctx context.Context, token string, req schedules.CreateRequest) (string, error)
	TriggerSchedule(ctx context.Context, token, scheduleID string) (string, error)
	DeleteSchedule(ctx context.Context, token, scheduleID string) (string, error)
}

// Orchestrator sequences the end-to-end firing of one trigger: resolve a cron
// slot, create the ephemeral schedule, fire it, record the outcome, tear the
// schedule down. Each firing is an independent lifecycle; the orchestrator
// itself is stateless and safe for concurrent use.
type Orchestrator struct {
	store  TriggerStore
	runs   RunRecorder
	api    ScheduleAPI
	logger *zap.Logger

	settle time.Duration
	sleep  func(time.Duration)
	now    func() time.Time
}

// NewOrchestrator wires a lifecycle orchestrator with production defaults.
func NewOrchestrator(store TriggerStore, runs RunRecorder, api ScheduleAPI, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		store:  store,
		runs:   runs,
		api:    api,
		logger: logger,
		settle: defaultSettle,
		sleep:  time.Sleep,
		now:    time.Now,
	}
}

// SetSettle overrides the pause between scheduler calls.
func (o *Orchestrator) SetSettle(d time.Duration) {
	if d > 0 {
		o.settle = d
	}
}

// Fire runs one complete lifecycle. finalPrompt must already be resolved by
// the boundary; Fire is agnostic to the trigger kind. Any failure before the
// success record is written produces a best-effort minimal failure record and
// re-raises the original error.
func (o *Orchestrator) Fire(ctx context.Context, triggerID, authToken, finalPrompt string) (*LifecycleResult, error) {
	cronExpr := oneShotCron(o.now())

	def, err := o.store.FindTrigger(triggerID)
	if err != nil {
		return nil, o.failRun(triggerID, err)
	}

	scheduleID, err := o.api.CreateSchedule(ctx, authToken, schedules.CreateRequest{
		Title:          def.Title,
		Instructions:   finalPrompt,
		Context:        def.Context,
		CronExpression: cronExpr,
	})
	if err != nil {
		return nil, o.failRun(triggerID, err)
	}

	o.sleep(o.settle)

	runResult, err := o.api.TriggerSchedule(ctx, authToken, scheduleID)
	if err != nil {
		return nil, o.failRun(triggerID, err)
	}

	data := TriggerData{Title: def.Title, Kind: def.Kind, Prompt: finalPrompt}
	if err := o.runs.RecordRun(triggerID, map[string]interface{}{
		"externalWebhookId": scheduleID,
		"triggerResult":     runResult,
		"triggerData": map[string]interface{}{
			"title":  data.Title,
			"kind":   string(data.Kind),
			"prompt": data.Prompt,
		},
	}); err != nil {
		// Primary write failure: no second record, the attempt already has its
		// one (failed) persistence outcome.
		return nil, fmt.Errorf("record run: %w", err)
	}

	o.sleep(o.settle)

	if _, err := o.api.DeleteSchedule(ctx, authToken, scheduleID); err != nil {
		// The success record stays; the external schedule may leak.
		o.logger.Warn("schedule teardown failed, external schedule may be leaked",
			zap.String("trigger_id", triggerID),
			zap.String("schedule_id", scheduleID),
			zap.Error(err),
		)
		return nil, err
	}

	return &LifecycleResult{
		TriggerData:     data,
		ExternalWebhook: scheduleID,
		TriggerRun:      runResult,
		CronExpression:  cronExpr,
		Success:         true,
	}, nil
}

// failRun writes the minimal failure record and always returns the original
// error; a failing best-effort write is logged and swallowed so it can never
// mask the real cause.
func (o *Orchestrator) failRun(triggerID string, cause error) error {
	meta := map[string]interface{}{
		"status": "failed",
		"error":  cause.Error(),
	}
	if err := o.runs.RecordRun(triggerID, meta); err != nil {
		o.logger.Warn("failed to write failure run record",
			zap.String("trigger_id", triggerID),
			zap.NamedError("record_error", err),
			zap.NamedError("cause", cause),
		)
	}
	return cause
}

// oneShotCron computes a six-field cron expression roughly one hour out,
// rounded up to the next 5-minute boundary. The external scheduler is
// cron-based, so "fire almost now" is approximated by the nearest future slot.
func oneShotCron(now time.Time) string {
	target := now.Add(time.Hour).Truncate(time.Minute)
	if rem := target.Minute() % 5; rem != 0 {
		target = target.Add(time.Duration(5-rem) * time.Minute)
	}
	return fmt.Sprintf("0 %d %d %d %d *",
		target.Minute(), target.Hour(), target.Day(), int(target.Month()))
}
