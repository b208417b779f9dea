package trigger

import (
	"errors"
	"testing"

	"github.com/hookfire/core/internal/models"
)

func TestResolveFinalPromptDynamicVerbatim(t *testing.T) {
	def := &models.TriggerModel{Kind: models.TriggerDynamic}
	body := map[string]interface{}{
		"authToken": "tok",
		"prompt":    "Run ${this} exactly as given",
	}

	got, err := resolveFinalPrompt(def, body)
	if err != nil {
		t.Fatalf("resolveFinalPrompt: %v", err)
	}
	// dynamic prompts bypass template substitution entirely
	if got != "Run ${this} exactly as given" {
		t.Fatalf("prompt = %q", got)
	}
}

func TestResolveFinalPromptDynamicRequiresPrompt(t *testing.T) {
	def := &models.TriggerModel{Kind: models.TriggerDynamic}
	_, err := resolveFinalPrompt(def, map[string]interface{}{"authToken": "tok"})
	if !errors.Is(err, ErrPromptRequired) {
		t.Fatalf("err = %v, want ErrPromptRequired", err)
	}
}

func TestResolveFinalPromptTextBasedSubstitutes(t *testing.T) {
	def := &models.TriggerModel{
		Kind:     models.TriggerTextBased,
		Template: "Notify ${user.name} about ${topic}",
	}
	body := map[string]interface{}{
		"authToken": "tok",
		"user":      map[string]interface{}{"name": "Ada"},
		"topic":     "deploys",
	}

	got, err := resolveFinalPrompt(def, body)
	if err != nil {
		t.Fatalf("resolveFinalPrompt: %v", err)
	}
	if got != "Notify Ada about deploys" {
		t.Fatalf("prompt = %q", got)
	}
}

func TestResolveFinalPromptTextBasedFailsClosedWithoutTemplate(t *testing.T) {
	def := &models.TriggerModel{Kind: models.TriggerTextBased, Template: "   "}
	_, err := resolveFinalPrompt(def, map[string]interface{}{"authToken": "tok"})
	if !errors.Is(err, ErrTemplateMissing) {
		t.Fatalf("err = %v, want ErrTemplateMissing", err)
	}
}

func TestResolveFinalPromptUnknownKind(t *testing.T) {
	def := &models.TriggerModel{Kind: models.TriggerKind("Nope")}
	if _, err := resolveFinalPrompt(def, map[string]interface{}{}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
