package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listProducts(c *gin.Context) {
	products, err := h.deps.ProductSvc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *handlers) productDetail(c *gin.Context) {
	detail, err := h.deps.ProductSvc.Detail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
