package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/aromanza/gateway/crud"
	"github.com/aromanza/gateway/utils"
)

// AdminCRUD serves list/create/update/delete of one admin entity. Mutations
// answer with the entity and the collection reconciled after the backend
// acknowledged them, so the admin screen can redraw without listing again.
type AdminCRUD[T any] struct {
	Collection *crud.Collection[T]
}

// NewAdminCRUD wraps a collection in gin handlers
func NewAdminCRUD[T any](col *crud.Collection[T]) *AdminCRUD[T] {
	return &AdminCRUD[T]{Collection: col}
}

// Name is the route segment of the entity
func (h *AdminCRUD[T]) Name() string {
	return h.Collection.Descriptor().Name
}

func (h *AdminCRUD[T]) List(c *gin.Context) {
	utils.LogInfo("Admin list %s called", h.Name())
	items, err := h.Collection.List(c.Request.Context())
	if err != nil {
		utils.FromError(c, "No se pudo cargar el listado", err)
		return
	}
	utils.Success(c, "Listado obtenido", items)
}

func (h *AdminCRUD[T]) Create(c *gin.Context) {
	utils.LogInfo("Admin create %s called", h.Name())
	var payload T
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.LogError("Invalid %s payload: %v", h.Name(), err)
		utils.BadRequest(c, utils.ErrInvalidPayload, err.Error())
		return
	}

	created, err := h.Collection.Create(c.Request.Context(), payload)
	if err != nil {
		utils.FromError(c, "No se pudo crear", err)
		return
	}
	utils.Created(c, utils.MsgCreateSuccess, gin.H{"item": created, "items": h.Collection.Snapshot()})
}

func (h *AdminCRUD[T]) Update(c *gin.Context) {
	id, ok := paramID(c, "id", utils.ErrInvalidID)
	if !ok {
		return
	}
	utils.LogInfo("Admin update %s %d called", h.Name(), id)

	var payload T
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.LogError("Invalid %s payload: %v", h.Name(), err)
		utils.BadRequest(c, utils.ErrInvalidPayload, err.Error())
		return
	}

	updated, err := h.Collection.Update(c.Request.Context(), id, payload)
	if err != nil {
		utils.FromError(c, "No se pudo actualizar", err)
		return
	}
	utils.Success(c, utils.MsgUpdateSuccess, gin.H{"item": updated, "items": h.Collection.Snapshot()})
}

func (h *AdminCRUD[T]) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", utils.ErrInvalidID)
	if !ok {
		return
	}
	utils.LogInfo("Admin delete %s %d called", h.Name(), id)

	if err := h.Collection.Delete(c.Request.Context(), id); err != nil {
		utils.FromError(c, "No se pudo eliminar", err)
		return
	}
	utils.Success(c, utils.MsgDeleteSuccess, gin.H{"id": id, "items": h.Collection.Snapshot()})
}
