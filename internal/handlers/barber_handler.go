package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	ucQueue "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
)

type BarberHandler struct {
	db        *gorm.DB
	audit     *audit.Dispatcher
	publisher ucQueue.ChangePublisher
}

func NewBarberHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	publisher ucQueue.ChangePublisher,
) *BarberHandler {
	return &BarberHandler{
		db:        db,
		audit:     auditDispatcher,
		publisher: publisher,
	}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

type UpdateBarberRequest struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Status *string `json:"status,omitempty"`
}

// --------- Handlers ---------

func (h *BarberHandler) List(c *gin.Context) {
	q := h.db

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var barbers []models.Barber
	if err := q.Order("id ASC").Find(&barbers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_barbers"})
		return
	}

	c.JSON(http.StatusOK, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	barber := models.Barber{
		Name:   req.Name,
		Phone:  req.Phone,
		Status: models.BarberActive,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_barber"})
		return
	}

	c.JSON(http.StatusCreated, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var barber models.Barber
	if err := h.db.First(&barber, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "barber_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_barber"})
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	statusChanged := false

	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.Phone != nil {
		barber.Phone = *req.Phone
	}
	if req.Status != nil {
		if *req.Status != models.BarberActive && *req.Status != models.BarberInactive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
			return
		}
		statusChanged = barber.Status != *req.Status
		barber.Status = *req.Status
	}

	if err := h.db.Save(&barber).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_barber"})
		return
	}

	if statusChanged {
		h.audit.Dispatch(audit.Event{
			UserID:   &actorID,
			Action:   "barber_status_changed",
			Entity:   "barber",
			EntityID: &barber.ID,
			Metadata: map[string]any{"status": barber.Status},
		})

		// toggling a barber changes which entries are visible;
		// every display needs to re-fetch
		h.publisher.QueueChanged(c.Request.Context())
	}

	c.JSON(http.StatusOK, barber)
}
