package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
	ucQueue "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
)

// ======================================================
// HANDLER
// ======================================================

type QueueHandler struct {
	createUC   *ucQueue.CreateEntry
	cancelUC   *ucQueue.CancelEntry
	startUC    *ucQueue.StartEntry
	completeUC *ucQueue.CompleteEntry
	skipUC     *ucQueue.SkipEntry
	listUC     *ucQueue.ListActiveQueue
}

func NewQueueHandler(
	createUC *ucQueue.CreateEntry,
	cancelUC *ucQueue.CancelEntry,
	startUC *ucQueue.StartEntry,
	completeUC *ucQueue.CompleteEntry,
	skipUC *ucQueue.SkipEntry,
	listUC *ucQueue.ListActiveQueue,
) *QueueHandler {
	return &QueueHandler{
		createUC:   createUC,
		cancelUC:   cancelUC,
		startUC:    startUC,
		completeUC: completeUC,
		skipUC:     skipUC,
		listUC:     listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateQueueEntryRequest struct {
	UserID   uint                       `json:"user_id" binding:"required"`
	BarberID uint                       `json:"barber_id" binding:"required"`
	Services []QueueServiceSelectionReq `json:"services" binding:"required,min=1,dive"`
}

type QueueServiceSelectionReq struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Extra     bool `json:"extra"`
}

// ======================================================
// HELPERS
// ======================================================

func entryIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_queue_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// writeQueueError maps use case failures onto the wire: recoverable
// business codes become 4xx, everything else stays a generic 500.
func writeQueueError(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case "entry_not_found", "user_not_found", "barber_not_found", "service_not_found":
		httperr.NotFound(c, code, "Registro não encontrado.")
	case "illegal_transition":
		httperr.Conflict(c, code, "Transição de status não permitida.")
	case "already_in_queue":
		httperr.Conflict(c, code, "Cliente já está na fila.")
	case "barber_inactive", "services_required":
		httperr.BadRequest(c, code, "Dados inválidos.")
	default:
		httperr.Internal(c, "try_again", "Erro interno, tente novamente.")
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *QueueHandler) Create(c *gin.Context) {
	var req CreateQueueEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in := ucQueue.CreateEntryInput{
		UserID:   req.UserID,
		BarberID: req.BarberID,
	}
	for _, sel := range req.Services {
		in.Services = append(in.Services, ucQueue.ServiceSelection{
			ServiceID: sel.ServiceID,
			Extra:     sel.Extra,
		})
	}

	entry, err := h.createUC.Execute(c.Request.Context(), in)
	if err != nil {
		writeQueueError(c, err)
		return
	}

	c.JSON(201, entry)
}

// ======================================================
// LIST
// ======================================================

func (h *QueueHandler) List(c *gin.Context) {
	entries, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_queue", "Erro ao listar a fila.")
		return
	}

	httpresp.List(c, entries)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *QueueHandler) Cancel(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := entryIDParam(c)
	if !ok {
		return
	}

	entry, err := h.cancelUC.Execute(c.Request.Context(), actorID, id)
	if err != nil {
		writeQueueError(c, err)
		return
	}

	httpresp.Ack(c, entry.Status)
}

func (h *QueueHandler) Start(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := entryIDParam(c)
	if !ok {
		return
	}

	entry, err := h.startUC.Execute(c.Request.Context(), actorID, id)
	if err != nil {
		writeQueueError(c, err)
		return
	}

	httpresp.Ack(c, entry.Status)
}

func (h *QueueHandler) Complete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := entryIDParam(c)
	if !ok {
		return
	}

	entry, err := h.completeUC.Execute(c.Request.Context(), actorID, id)
	if err != nil {
		writeQueueError(c, err)
		return
	}

	httpresp.Ack(c, entry.Status)
}

func (h *QueueHandler) Skip(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := entryIDParam(c)
	if !ok {
		return
	}

	entry, err := h.skipUC.Execute(c.Request.Context(), actorID, id)
	if err != nil {
		writeQueueError(c, err)
		return
	}

	httpresp.Ack(c, entry.Status)
}
