package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) getOrder(c *gin.Context) {
	order, err := h.deps.Orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
