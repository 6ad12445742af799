package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/tradecatalog/dto"
	"github.com/princinho/tradecatalog/models"
	"github.com/princinho/tradecatalog/store"
	"github.com/princinho/tradecatalog/utils"
)

// GetProducts lists one product line. Query params: q, category, type
// (trading only) and featured=true, which narrows the matches to the
// featured subset.
func GetProducts(products store.ProductStore, kind models.ProductType) gin.HandlerFunc {
	return func(c *gin.Context) {
		featured, err := utils.ParseBoolQuery(c.Query("featured"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid featured flag"})
			return
		}
		var filter dto.ProductFilter
		if err := c.ShouldBindQuery(&filter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		onlyFeatured := featured != nil && *featured

		switch kind {
		case models.ProductTypeManufactured:
			items := products.SearchManufactured(filter)
			if onlyFeatured {
				items = featuredMatches(products.FeaturedManufactured(), items)
			}
			c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
		case models.ProductTypeTrading:
			items := products.SearchTrading(filter)
			if onlyFeatured {
				items = featuredMatches(products.FeaturedTrading(), items)
			}
			c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
		default:
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown product line"})
		}
	}
}

func GetProduct(products store.ProductStore, kind models.ProductType) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := lookupProduct(products, kind, c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func AddProduct(products store.ProductStore, kind models.ProductType) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateProductDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var (
			created models.Product
			err     error
		)
		switch kind {
		case models.ProductTypeManufactured:
			created, err = products.AddManufactured(ctx, body)
		case models.ProductTypeTrading:
			created, err = products.AddTrading(ctx, body)
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateProduct merges the given fields. An unknown id is not an error.
func UpdateProduct(products store.ProductStore, kind models.ProductType) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")

		var body dto.UpdateProductDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if body.IsEmpty() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		var err error
		switch kind {
		case models.ProductTypeManufactured:
			err = products.UpdateManufactured(ctx, id, body)
		case models.ProductTypeTrading:
			err = products.UpdateTrading(ctx, id, body)
		}
		if err != nil {
			respondError(c, err)
			return
		}

		p, ok := lookupProduct(products, kind, id)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func DeleteProduct(products store.ProductStore, kind models.ProductType) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")

		var err error
		switch kind {
		case models.ProductTypeManufactured:
			err = products.DeleteManufactured(ctx, id)
		case models.ProductTypeTrading:
			err = products.DeleteTrading(ctx, id)
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// featuredMatches keeps the featured products that are also in matches.
func featuredMatches[T models.Product](featured, matches []T) []T {
	ids := make(map[string]bool, len(matches))
	for _, p := range matches {
		ids[p.Base().ID] = true
	}
	out := make([]T, 0, len(featured))
	for _, p := range featured {
		if ids[p.Base().ID] {
			out = append(out, p)
		}
	}
	return out
}

func lookupProduct(products store.ProductStore, kind models.ProductType, id string) (models.Product, bool) {
	switch kind {
	case models.ProductTypeManufactured:
		if p, ok := products.GetManufacturedByID(id); ok {
			return p, true
		}
	case models.ProductTypeTrading:
		if p, ok := products.GetTradingByID(id); ok {
			return p, true
		}
	}
	return nil, false
}
