package schedules

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hookfire/core/internal/models"
)

func TestCreateScheduleRequestShape(t *testing.T) {
	var (
		gotPath   string
		gotBody   createBody
		gotHeader http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotHeader = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Write([]byte(`{"data":{"schedule":{"scheduleId":"sched-1"}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "Asia/Tokyo")
	id, err := c.CreateSchedule(context.Background(), "tok-123", CreateRequest{
		Title:          "Daily digest",
		Instructions:   "Send the digest",
		Context:        []models.ContextEntry{{Label: "Audience", Content: "team"}},
		CronExpression: "0 30 9 1 2 *",
	})
	if err != nil {
		t.Fatalf("CreateSchedule: %v", err)
	}
	if id != "sched-1" {
		t.Fatalf("schedule id = %q, want sched-1", id)
	}
	if gotPath != "POST /schedules" {
		t.Fatalf("request = %q, want POST /schedules", gotPath)
	}
	if got := gotHeader.Get("authorization"); got != "Bearer tok-123" {
		t.Fatalf("authorization = %q", got)
	}
	if got := gotHeader.Get("timezone"); got != "Asia/Tokyo" {
		t.Fatalf("timezone = %q", got)
	}
	if got := gotHeader.Get("content-type"); got != "application/json" {
		t.Fatalf("content-type = %q", got)
	}
	if gotBody.Recurring {
		t.Fatal("recurring must be false for one-shot schedules")
	}
	if gotBody.CronExpression != "0 30 9 1 2 *" {
		t.Fatalf("cronExpression = %q", gotBody.CronExpression)
	}
	if len(gotBody.Input.Text) != 2 {
		t.Fatalf("text fragments = %d, want 2", len(gotBody.Input.Text))
	}
	if f := gotBody.Input.Text[0]; f.Label != "Instructions" || f.Content != "Send the digest" {
		t.Fatalf("first fragment = %+v, want Instructions first", f)
	}
	if f := gotBody.Input.Text[1]; f.Label != "Audience" || f.Content != "team" {
		t.Fatalf("context fragment = %+v", f)
	}
}

func TestCreateScheduleIDFallbacks(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"nested v2", `{"data":{"schedule":{"scheduleId":"a"}}}`, "a"},
		{"top-level id", `{"id":"b"}`, "b"},
		{"legacy _id", `{"_id":"c"}`, "c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()
			id, err := New(srv.URL, "").CreateSchedule(context.Background(), "t", CreateRequest{})
			if err != nil {
				t.Fatalf("CreateSchedule: %v", err)
			}
			if id != tc.want {
				t.Fatalf("id = %q, want %q", id, tc.want)
			}
		})
	}
}

func TestCreateScheduleMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").CreateSchedule(context.Background(), "t", CreateRequest{})
	if !errors.Is(err, ErrMissingScheduleID) {
		t.Fatalf("err = %v, want ErrMissingScheduleID", err)
	}
}

func TestCreateScheduleStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").CreateSchedule(context.Background(), "bad", CreateRequest{})
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want StatusError", err)
	}
	if se.Op != "create" || se.Status != http.StatusUnauthorized {
		t.Fatalf("StatusError = %+v", se)
	}
}

func TestTriggerAndDeletePaths(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.URL.Path)
		if auth := r.Header.Get("authorization"); auth != "Bearer tok" {
			t.Errorf("authorization = %q", auth)
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	out, err := c.TriggerSchedule(context.Background(), "tok", "s1")
	if err != nil || out != "ok" {
		t.Fatalf("TriggerSchedule = %q, %v", out, err)
	}
	if _, err := c.DeleteSchedule(context.Background(), "tok", "s1"); err != nil {
		t.Fatalf("DeleteSchedule: %v", err)
	}

	want := []string{"POST /schedules/s1/trigger", "DELETE /schedules/s1"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("requests = %v, want %v", got, want)
	}
}
