package projects

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/aiig/deliverables-backend/internal/api/http"
	"github.com/aiig/deliverables-backend/internal/domain"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := httpapi.UUIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) create(c *gin.Context) {
	var req domain.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "", "invalid request body: "+err.Error())
		return
	}
	if !httpapi.ValidUUID(req.ProjectManagerID) {
		httpapi.BadRequest(c, "projectManagerId", "must be a valid UUID")
		return
	}
	p, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) update(c *gin.Context) {
	id, ok := httpapi.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req domain.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "", "invalid request body: "+err.Error())
		return
	}
	if req.ProjectManagerID != nil && !httpapi.ValidUUID(*req.ProjectManagerID) {
		httpapi.BadRequest(c, "projectManagerId", "must be a valid UUID")
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := httpapi.UUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
