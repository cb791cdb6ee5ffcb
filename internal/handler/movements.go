package handler

import (
	"net/http"

	"github.com/f3rnandojr/newapp-coffe/internal/dto"
	"github.com/f3rnandojr/newapp-coffe/internal/middleware"
	"github.com/f3rnandojr/newapp-coffe/internal/service"

	"github.com/gin-gonic/gin"
)

type MovementsHandler struct{ svc service.StockService }

func NewMovementsHandler(svc service.StockService) *MovementsHandler {
	return &MovementsHandler{svc: svc}
}

func (h *MovementsHandler) Register(c *gin.Context) {
	var req dto.RegisterMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.User == "" {
		if claims := middleware.GetClaims(c); claims != nil {
			req.User = claims.Login
		}
	}
	resp, err := h.svc.RegisterMovement(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MovementsHandler) List(c *gin.Context) {
	var filter dto.MovementFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
