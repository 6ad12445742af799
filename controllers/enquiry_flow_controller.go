package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/princinho/tradecatalog/models"
	"github.com/princinho/tradecatalog/store"
)

// FlowCookie identifies the visitor whose enquiry dialog a request touches.
const FlowCookie = "enquiry_client"

type openFlowBody struct {
	ProductID   string             `json:"productId" binding:"required"`
	ProductType models.ProductType `json:"productType" binding:"required"`
}

// flowClient returns the caller's dialog key, issuing a cookie when create is set.
func flowClient(c *gin.Context, create bool) string {
	if key, err := c.Cookie(FlowCookie); err == nil && key != "" {
		return key
	}
	if !create {
		return ""
	}
	key := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlowCookie, key, 0, "/", "", false, true)
	return key
}

// OpenEnquiryFlow opens the caller's enquiry dialog for a catalog product.
func OpenEnquiryFlow(flows *store.FlowSessions, products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body openFlowBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !body.ProductType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product type"})
			return
		}

		p, ok := lookupProduct(products, body.ProductType, body.ProductID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		c.JSON(http.StatusOK, flows.Open(flowClient(c, true), models.ContextFor(p)))
	}
}

func CloseEnquiryFlow(flows *store.FlowSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := flowClient(c, false); key != "" {
			flows.Close(key)
		}
		c.JSON(http.StatusOK, models.EnquiryFlow{})
	}
}

func GetEnquiryFlow(flows *store.FlowSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := flowClient(c, false)
		if key == "" {
			c.JSON(http.StatusOK, models.EnquiryFlow{})
			return
		}
		c.JSON(http.StatusOK, flows.Get(key))
	}
}
