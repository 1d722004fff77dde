package httpserver

import (
	"net/http"

	"storefront/internal/service/checkout"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func submissionFromForm(c *gin.Context) checkout.Submission {
	return checkout.Submission{
		Email:          c.PostForm("email-address"),
		SimulateError:  c.PostForm("simulate-error") != "",
		FirstName:      c.PostForm("first-name"),
		LastName:       c.PostForm("last-name"),
		Company:        c.PostForm("company"),
		Address:        c.PostForm("address"),
		Apartment:      c.PostForm("apartment"),
		PostalCode:     c.PostForm("postal-code"),
		City:           c.PostForm("city"),
		Country:        c.PostForm("country"),
		Phone:          c.PostForm("phone"),
		DeliveryMethod: c.PostForm("delivery-method[title]"),
		DeliveryPrice:  c.PostForm("delivery-method[price]"),
		CardNumber:     c.PostForm("card-number"),
		NameOnCard:     c.PostForm("name-on-card"),
		ExpirationDate: c.PostForm("expiration-date"),
		CVC:            c.PostForm("cvc"),
	}
}

func (h *handlers) checkout(c *gin.Context) {
	res, err := h.deps.CheckoutSvc.Run(c.Request.Context(), submissionFromForm(c), h.cookies.read(c))
	if err != nil {
		_ = c.Error(err)
		h.logger.Error("checkout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"formError": "Une erreur est survenue, veuillez réessayer."})
		return
	}
	h.cookies.write(c, res.Token)

	out := res.Outcome
	switch out.Kind {
	case checkout.OutcomeSuccess:
		c.JSON(http.StatusCreated, gin.H{"orderId": out.OrderID})
	case checkout.OutcomeFieldValidationFailed:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"fieldErrors": out.FieldErrors, "formError": nil})
	default:
		c.JSON(http.StatusConflict, gin.H{"outcome": out.Kind, "formError": out.Message})
	}
}
