package managers

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
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projectManagers": items})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := httpapi.UUIDParam(c, "id")
	if !ok {
		return
	}
	m, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projectManager": m})
}

func (h *Handler) create(c *gin.Context) {
	var req domain.CreateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "", "invalid request body: "+err.Error())
		return
	}
	m, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "projectManager": m})
}

func (h *Handler) update(c *gin.Context) {
	id, ok := httpapi.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req domain.UpdateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "", "invalid request body: "+err.Error())
		return
	}
	m, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projectManager": m})
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
