package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/tradecatalog/models"
	"github.com/princinho/tradecatalog/store"
)

// GetCategories lists the distinct categories of one product line with product counts.
func GetCategories(products store.ProductStore, kind models.ProductType) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := products.Categories(kind)
		c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
	}
}
