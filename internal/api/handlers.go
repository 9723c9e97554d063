package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/idilsaglam/todolist/internal/model"
)

// Handler serves the /todos routes from a shared State.
type Handler struct {
	state *State
}

func NewHandler(state *State) *Handler {
	return &Handler{state: state}
}

type titleRequest struct {
	Title *string `json:"title" binding:"required"`
}

// bindTitle reads {"title": ...}. The title is stored as sent; only a
// missing field or a malformed body is rejected.
func bindTitle(c *gin.Context) (string, bool) {
	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return *req.Title, true
}

func paramID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// fail maps domain errors to a response.
func fail(c *gin.Context, err error) {
	var nf *model.NotFoundError
	if errors.As(err, &nf) {
		c.String(http.StatusNotFound, nf.Error())
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// List handles GET /todos?mode=all|todo|done
func (h *Handler) List(c *gin.Context) {
	f, err := model.ParseFilter(c.Query("mode"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.state.List(f))
}

// Create handles POST /todos
func (h *Handler) Create(c *gin.Context) {
	title, ok := bindTitle(c)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, h.state.Add(title))
}

// Update handles PUT /todos/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	title, ok := bindTitle(c)
	if !ok {
		return
	}
	if err := h.state.UpdateTitle(id, title); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) MarkDone(c *gin.Context) { h.mark(c, true) }
func (h *Handler) UndoDone(c *gin.Context) { h.mark(c, false) }

func (h *Handler) mark(c *gin.Context, done bool) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.state.Mark(id, done); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Delete handles DELETE /todos/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.state.Remove(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reset handles DELETE /todos/reset
func (h *Handler) Reset(c *gin.Context) {
	h.state.Reset()
	c.String(http.StatusOK, "Reset")
}
