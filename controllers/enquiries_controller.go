package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/tradecatalog/dto"
	"github.com/princinho/tradecatalog/models"
	"github.com/princinho/tradecatalog/store"
)

// refresher is implemented by stores that mirror a backend.
type refresher interface {
	Refresh(ctx context.Context) error
}

func SubmitEnquiry(enquiries store.EnquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateEnquiryDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		e, err := enquiries.Submit(c.Request.Context(), body.SubmitEnquiryDTO, body.Product())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, e)
	}
}

func SubmitContact(enquiries store.EnquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ContactDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		e, err := enquiries.SubmitContact(c.Request.Context(), body)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, e)
	}
}

// GetEnquiries lists enquiries newest first, optionally filtered by ?status=.
// Backed stores are refreshed first.
func GetEnquiries(enquiries store.EnquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r, ok := enquiries.(refresher); ok {
			if err := r.Refresh(c.Request.Context()); err != nil {
				respondError(c, err)
				return
			}
		}

		status := models.EnquiryStatus(c.Query("status"))
		if status != "" && !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": store.ErrInvalidStatus.Error()})
			return
		}

		items := make([]models.Enquiry, 0)
		for _, e := range enquiries.Enquiries() {
			if status == "" || e.Status == status {
				items = append(items, e)
			}
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
	}
}

func GetEnquiry(enquiries store.EnquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, ok := enquiries.GetEnquiry(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "enquiry not found"})
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

func UpdateEnquiryStatus(enquiries store.EnquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateEnquiryStatusDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := enquiries.SetStatus(c.Request.Context(), c.Param("id"), body.Status); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func DeleteEnquiry(enquiries store.EnquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := enquiries.Remove(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
