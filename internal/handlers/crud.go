package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CrudHandler serves the plain record tables: list, fetch, create, partial
// update, delete, keyed by id. One type parameterized by model instead of a
// copy per table.
type CrudHandler[T any] struct {
	DB   *gorm.DB
	Name string
}

func NewCrudHandler[T any](db *gorm.DB, name string) *CrudHandler[T] {
	return &CrudHandler[T]{DB: db, Name: name}
}

func (h *CrudHandler[T]) List(c *gin.Context) {
	var rows []T
	if err := h.DB.Find(&rows).Error; err != nil {
		slog.Error("crud list failed", "resource", h.Name, "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "failed to fetch records")
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *CrudHandler[T]) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var row T
	if err := h.DB.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, CodeNotFound, h.Name+" not found")
			return
		}
		slog.Error("crud get failed", "resource", h.Name, "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "failed to fetch record")
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *CrudHandler[T]) Create(c *gin.Context) {
	var row T
	if err := c.ShouldBindJSON(&row); err != nil {
		fail(c, http.StatusUnprocessableEntity, CodeValidation, "invalid input")
		return
	}

	if err := h.DB.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			fail(c, http.StatusConflict, CodeConflict, "record already exists")
			return
		}
		slog.Error("crud create failed", "resource", h.Name, "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "failed to create record")
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *CrudHandler[T]) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var existing T
	if err := h.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, CodeNotFound, h.Name+" not found")
			return
		}
		slog.Error("crud update lookup failed", "resource", h.Name, "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "failed to update record")
		return
	}

	updates := map[string]any{}
	if err := c.ShouldBindJSON(&updates); err != nil || len(updates) == 0 {
		fail(c, http.StatusUnprocessableEntity, CodeValidation, "invalid input")
		return
	}
	delete(updates, "id")
	delete(updates, "created_at")

	if err := h.DB.Model(&existing).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			fail(c, http.StatusConflict, CodeConflict, "record already exists")
			return
		}
		slog.Error("crud update failed", "resource", h.Name, "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "failed to update record")
		return
	}

	var row T
	if err := h.DB.First(&row, "id = ?", id).Error; err != nil {
		slog.Error("crud update reload failed", "resource", h.Name, "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "failed to fetch updated record")
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *CrudHandler[T]) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var existing T
	if err := h.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, CodeNotFound, h.Name+" not found")
			return
		}
		slog.Error("crud delete lookup failed", "resource", h.Name, "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "failed to delete record")
		return
	}

	if err := h.DB.Delete(&existing).Error; err != nil {
		slog.Error("crud delete failed", "resource", h.Name, "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "failed to delete record")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": h.Name + " deleted successfully"})
}

func (h *CrudHandler[T]) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusUnprocessableEntity, CodeValidation, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
