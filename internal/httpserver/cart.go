package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type addCartItemRequest struct {
	SizeID string `json:"sizeId" form:"sizeId"`
}

type updateCartItemRequest struct {
	Amount any `json:"amount"`
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.CartSvc.Get(c.Request.Context(), h.cookies.read(c)))
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	view, token, err := h.deps.CartSvc.Add(c.Request.Context(), h.cookies.read(c), req.SizeID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.cookies.write(c, token)
	c.JSON(http.StatusCreated, view)
}

// updateCartItem passes the amount through untyped: JSON numbers, strings and
// form values are all coerced by the cart service.
func (h *handlers) updateCartItem(c *gin.Context) {
	var amount any
	if c.ContentType() == binding.MIMEJSON {
		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		amount = req.Amount
	} else if v, ok := c.GetPostForm("amount"); ok {
		amount = v
	}

	view, token, err := h.deps.CartSvc.UpdateAmount(c.Request.Context(), h.cookies.read(c), c.Param("sizeId"), amount)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.cookies.write(c, token)
	c.JSON(http.StatusOK, view)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	view, token, err := h.deps.CartSvc.Remove(c.Request.Context(), h.cookies.read(c), c.Param("sizeId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.cookies.write(c, token)
	c.JSON(http.StatusOK, view)
}
