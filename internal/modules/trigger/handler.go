package trigger

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hookfire/core/internal/middleware"
	"github.com/hookfire/core/internal/models"
	"github.com/hookfire/core/internal/modules/processing/prompt"
	"github.com/hookfire/core/internal/pkg/pagination"
	"github.com/hookfire/core/internal/pkg/response"
)

// Handler wires trigger HTTP endpoints.
type Handler struct {
	svc  *Service
	orch *Orchestrator
}

func NewHandler(svc *Service, orch *Orchestrator) *Handler {
	return &Handler{svc: svc, orch: orch}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/triggers", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.delete)
	g.GET("/:id/variables", h.variables)
	g.GET("/:id/runs", h.listRuns)
	g.DELETE("/:id/runs", h.clearRuns)

	// The firing endpoint authenticates with the scheduler bearer token
	// carried in the body, not the site session.
	rg.POST("/webhook-lifecycle", h.fire)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]triggerResponse, len(items))
	for i, t := range items {
		out[i] = toResponse(&t)
	}
	response.OK(c, out)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateTriggerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	t, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, toResponse(t))
}

func (h *Handler) get(c *gin.Context) {
	t, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if t == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(t))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// variables lists the ${...} names a stored template references so callers can
// build the fire payload. Dynamic triggers have none.
func (h *Handler) variables(c *gin.Context) {
	t, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if t == nil {
		response.NotFound(c)
		return
	}
	names := []string{}
	if t.Kind == models.TriggerTextBased {
		names = prompt.Variables(t.Template)
	}
	response.OK(c, names)
}

func (h *Handler) listRuns(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.ListRuns(q, c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, items, pag)
}

func (h *Handler) clearRuns(c *gin.Context) {
	if err := h.svc.ClearRuns(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// fire is the lifecycle boundary: POST /webhook-lifecycle?triggerId=<id> with
// an arbitrary JSON body carrying authToken, an optional prompt, and template
// substitution values.
func (h *Handler) fire(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid JSON body")
		return
	}

	triggerID := strings.TrimSpace(c.Query("triggerId"))
	authToken, _ := body["authToken"].(string)
	if triggerID == "" || authToken == "" {
		response.BadRequest(c, "missing required fields")
		return
	}

	def, err := h.svc.GetByID(triggerID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if def == nil {
		response.NotFoundMsg(c, ErrTriggerNotFound.Error())
		return
	}

	finalPrompt, err := resolveFinalPrompt(def, body)
	switch {
	case errors.Is(err, ErrPromptRequired):
		response.BadRequest(c, err.Error())
		return
	case errors.Is(err, ErrTemplateMissing):
		response.NotFoundMsg(c, err.Error())
		return
	case err != nil:
		response.InternalError(c, err)
		return
	}

	result, err := h.orch.Fire(c.Request.Context(), triggerID, authToken, finalPrompt)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, result)
}

// resolveFinalPrompt dispatches on the trigger kind: dynamic triggers use the
// caller's prompt verbatim, text-based triggers substitute the stored template
// with the whole request body as the payload.
func resolveFinalPrompt(def *models.TriggerModel, body map[string]interface{}) (string, error) {
	switch def.Kind {
	case models.TriggerDynamic:
		p, _ := body["prompt"].(string)
		if p == "" {
			return "", ErrPromptRequired
		}
		return p, nil
	case models.TriggerTextBased:
		if strings.TrimSpace(def.Template) == "" {
			return "", ErrTemplateMissing
		}
		return prompt.Resolve(def.Template, body), nil
	default:
		return "", errors.New("unknown trigger kind " + string(def.Kind))
	}
}
