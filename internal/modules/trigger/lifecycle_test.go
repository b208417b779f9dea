package trigger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hookfire/core/internal/models"
	"github.com/hookfire/core/internal/pkg/schedules"
	"go.uber.org/zap"
)

type fakeStore struct {
	trig *models.TriggerModel
	err  error
}

func (f *fakeStore) FindTrigger(id string) (*models.TriggerModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.trig, nil
}

type fakeRecorder struct {
	err     error
	records []map[string]interface{}
}

func (f *fakeRecorder) RecordRun(triggerID string, metadata map[string]interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, metadata)
	return nil
}

type fakeAPI struct {
	calls      []string
	createdReq schedules.CreateRequest

	createErr  error
	triggerErr error
	deleteErr  error
}

func (f *fakeAPI) CreateSchedule(_ context.Context, _ string, req schedules.CreateRequest) (string, error) {
	f.calls = append(f.calls, "create")
	f.createdReq = req
	if f.createErr != nil {
		return "", f.createErr
	}
	return "sched-1", nil
}

func (f *fakeAPI) TriggerSchedule(_ context.Context, _, _ string) (string, error) {
	f.calls = append(f.calls, "trigger")
	if f.triggerErr != nil {
		return "", f.triggerErr
	}
	return "fired", nil
}

func (f *fakeAPI) DeleteSchedule(_ context.Context, _, _ string) (string, error) {
	f.calls = append(f.calls, "delete")
	if f.deleteErr != nil {
		return "", f.deleteErr
	}
	return "deleted", nil
}

func testTrigger() *models.TriggerModel {
	t := &models.TriggerModel{
		Title:    "Daily digest",
		Kind:     models.TriggerTextBased,
		Template: "Send ${what}",
		Context:  []models.ContextEntry{{Label: "Audience", Content: "team"}},
	}
	t.ID = "trig-1"
	return t
}

func newTestOrchestrator(store TriggerStore, runs RunRecorder, api ScheduleAPI) *Orchestrator {
	o := NewOrchestrator(store, runs, api, zap.NewNop())
	o.sleep = func(time.Duration) {}
	o.now = func() time.Time {
		return time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC)
	}
	return o
}

func TestFireSuccessRoundTrip(t *testing.T) {
	store := &fakeStore{trig: testTrigger()}
	runs := &fakeRecorder{}
	api := &fakeAPI{}
	o := newTestOrchestrator(store, runs, api)

	res, err := o.Fire(context.Background(), "trig-1", "tok", "Send everything")
	if err != nil {
		t.Fatalf("Fire: %v", err)
	}

	wantCalls := []string{"create", "trigger", "delete"}
	if len(api.calls) != 3 || api.calls[0] != wantCalls[0] || api.calls[1] != wantCalls[1] || api.calls[2] != wantCalls[2] {
		t.Fatalf("api calls = %v, want %v", api.calls, wantCalls)
	}

	if api.createdReq.Title != "Daily digest" || api.createdReq.Instructions != "Send everything" {
		t.Fatalf("createdReq = %+v", api.createdReq)
	}
	if len(api.createdReq.Context) != 1 || api.createdReq.Context[0].Label != "Audience" {
		t.Fatalf("context not forwarded: %+v", api.createdReq.Context)
	}

	if !res.Success || res.ExternalWebhook != "sched-1" || res.TriggerRun != "fired" {
		t.Fatalf("result = %+v", res)
	}
	if res.CronExpression != "0 30 9 1 2 *" {
		t.Fatalf("cron = %q", res.CronExpression)
	}
	if res.TriggerData.Prompt != "Send everything" || res.TriggerData.Kind != models.TriggerTextBased {
		t.Fatalf("trigger data = %+v", res.TriggerData)
	}

	if len(runs.records) != 1 {
		t.Fatalf("records = %d, want exactly 1", len(runs.records))
	}
	rec := runs.records[0]
	if rec["externalWebhookId"] != "sched-1" || rec["triggerResult"] != "fired" {
		t.Fatalf("record = %v", rec)
	}
	if _, failed := rec["status"]; failed {
		t.Fatalf("success record must not carry a failure status: %v", rec)
	}
}

func TestFireCreateFailureRecordsOnce(t *testing.T) {
	cause := errors.New("boom")
	store := &fakeStore{trig: testTrigger()}
	runs := &fakeRecorder{}
	api := &fakeAPI{createErr: cause}
	o := newTestOrchestrator(store, runs, api)

	_, err := o.Fire(context.Background(), "trig-1", "tok", "p")
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want original cause", err)
	}
	if len(api.calls) != 1 {
		t.Fatalf("api calls = %v, want create only", api.calls)
	}
	if len(runs.records) != 1 {
		t.Fatalf("records = %d, want exactly 1", len(runs.records))
	}
	rec := runs.records[0]
	if rec["status"] != "failed" || rec["error"] != "boom" {
		t.Fatalf("failure record = %v", rec)
	}
}

func TestFireTriggerFailureSkipsDelete(t *testing.T) {
	cause := errors.New("fire refused")
	store := &fakeStore{trig: testTrigger()}
	runs := &fakeRecorder{}
	api := &fakeAPI{triggerErr: cause}
	o := newTestOrchestrator(store, runs, api)

	_, err := o.Fire(context.Background(), "trig-1", "tok", "p")
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want original cause", err)
	}
	for _, call := range api.calls {
		if call == "delete" {
			t.Fatalf("delete must not run after a failed trigger: %v", api.calls)
		}
	}
	if len(runs.records) != 1 || runs.records[0]["status"] != "failed" {
		t.Fatalf("records = %v, want one failed record", runs.records)
	}
}

func TestFireDeleteFailureKeepsSuccessRecord(t *testing.T) {
	cause := errors.New("teardown refused")
	store := &fakeStore{trig: testTrigger()}
	runs := &fakeRecorder{}
	api := &fakeAPI{deleteErr: cause}
	o := newTestOrchestrator(store, runs, api)

	_, err := o.Fire(context.Background(), "trig-1", "tok", "p")
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want teardown cause", err)
	}
	if len(runs.records) != 1 {
		t.Fatalf("records = %d, want exactly 1", len(runs.records))
	}
	if _, failed := runs.records[0]["status"]; failed {
		t.Fatalf("the success record must survive a teardown failure: %v", runs.records[0])
	}
}

func TestFireRecorderFailureNeverMasksCause(t *testing.T) {
	cause := errors.New("store down")
	store := &fakeStore{err: cause}
	runs := &fakeRecorder{err: errors.New("db offline")}
	api := &fakeAPI{}
	o := newTestOrchestrator(store, runs, api)

	_, err := o.Fire(context.Background(), "trig-1", "tok", "p")
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want original cause", err)
	}
	if len(api.calls) != 0 {
		t.Fatalf("no scheduler calls expected, got %v", api.calls)
	}
}

func TestOneShotCron(t *testing.T) {
	cases := []struct {
		now  time.Time
		want string
	}{
		// exact multiple stays put
		{time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), "0 0 13 10 3 *"},
		// rounds up to the next 5-minute slot
		{time.Date(2026, 3, 10, 12, 1, 10, 0, time.UTC), "0 5 13 10 3 *"},
		{time.Date(2026, 3, 10, 12, 58, 0, 0, time.UTC), "0 0 14 10 3 *"},
		// hour/day overflow rolls naturally
		{time.Date(2026, 3, 10, 23, 58, 0, 0, time.UTC), "0 0 1 11 3 *"},
		{time.Date(2026, 3, 31, 23, 58, 0, 0, time.UTC), "0 0 1 1 4 *"},
	}
	for _, tc := range cases {
		if got := oneShotCron(tc.now); got != tc.want {
			t.Fatalf("oneShotCron(%v) = %q, want %q", tc.now, got, tc.want)
		}
	}
}
