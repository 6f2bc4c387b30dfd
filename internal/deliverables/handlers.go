package deliverables

import (
	"net/http"
	"strconv"

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

// parseFilter validates the recognized query options: projectId, status,
// dueBefore, dueAfter.
func parseFilter(c *gin.Context) (domain.DeliverableFilter, bool) {
	var f domain.DeliverableFilter

	if v := c.Query("projectId"); v != "" {
		if !httpapi.ValidUUID(v) {
			httpapi.BadRequest(c, "projectId", "must be a valid UUID")
			return f, false
		}
		f.ProjectID = v
	}
	if v := c.Query("status"); v != "" {
		status := domain.DeliverableStatus(v)
		if !status.Valid() {
			httpapi.BadRequest(c, "status", "must be one of pending, in_progress, completed, overdue")
			return f, false
		}
		f.Status = status
	}
	if v := c.Query("dueBefore"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			httpapi.BadRequest(c, "dueBefore", err.Error())
			return f, false
		}
		f.DueBefore = &d
	}
	if v := c.Query("dueAfter"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			httpapi.BadRequest(c, "dueAfter", err.Error())
			return f, false
		}
		f.DueAfter = &d
	}
	return f, true
}

func (h *Handler) list(c *gin.Context) {
	f, ok := parseFilter(c)
	if !ok {
		return
	}
	items, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deliverables": items})
}

func (h *Handler) upcoming(c *gin.Context) {
	days := DefaultUpcomingDays
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httpapi.BadRequest(c, "days", "must be a positive integer")
			return
		}
		days = n
	}
	items, err := h.svc.ListUpcoming(c.Request.Context(), days)
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deliverables": items})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := httpapi.UUIDParam(c, "id")
	if !ok {
		return
	}
	d, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deliverable": d})
}

func (h *Handler) create(c *gin.Context) {
	var req domain.CreateDeliverableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "", "invalid request body: "+err.Error())
		return
	}
	if !httpapi.ValidUUID(req.ProjectID) {
		httpapi.BadRequest(c, "projectId", "must be a valid UUID")
		return
	}
	if !httpapi.ValidUUID(req.ProjectManagerID) {
		httpapi.BadRequest(c, "projectManagerId", "must be a valid UUID")
		return
	}
	d, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "deliverable": d})
}

func (h *Handler) update(c *gin.Context) {
	id, ok := httpapi.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req domain.UpdateDeliverableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "", "invalid request body: "+err.Error())
		return
	}
	if req.ProjectID != nil && !httpapi.ValidUUID(*req.ProjectID) {
		httpapi.BadRequest(c, "projectId", "must be a valid UUID")
		return
	}
	if req.ProjectManagerID != nil && !httpapi.ValidUUID(*req.ProjectManagerID) {
		httpapi.BadRequest(c, "projectManagerId", "must be a valid UUID")
		return
	}
	d, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deliverable": d})
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
