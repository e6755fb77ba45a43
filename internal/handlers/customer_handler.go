package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// ======================================================
// LIST CUSTOMERS (DONO)
// ======================================================
func (h *CustomerHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("shop_id = ?", shopID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var customers []models.Customer
	if err := q.
		Preload("Tags").
		Order("created_at DESC").
		Find(&customers).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_customers",
		})
		return
	}

	httpresp.List(c, customers)
}

// ======================================================
// TAGS
// ======================================================

type AddTagRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
}

func (h *CustomerHandler) ownedCustomer(c *gin.Context) (*models.Customer, bool) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var customer models.Customer
	if err := h.db.
		Where("id = ? AND shop_id = ?", c.Param("id"), shopID).
		First(&customer).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "customer_not_found"})
		return nil, false
	}
	return &customer, true
}

func (h *CustomerHandler) AddTag(c *gin.Context) {
	customer, ok := h.ownedCustomer(c)
	if !ok {
		return
	}

	var req AddTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	name := strings.ToLower(strings.TrimSpace(req.Name))

	tag := models.CustomerTag{
		CustomerID: customer.ID,
		Name:       name,
		Value:      strings.TrimSpace(req.Value),
	}

	// Mesma tag gravada de novo substitui o valor anterior.
	if err := h.db.
		Where("customer_id = ? AND name = ?", customer.ID, name).
		Delete(&models.CustomerTag{}).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_tag"})
		return
	}

	if err := h.db.Create(&tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_tag"})
		return
	}

	c.JSON(http.StatusCreated, tag)
}

func (h *CustomerHandler) RemoveTag(c *gin.Context) {
	customer, ok := h.ownedCustomer(c)
	if !ok {
		return
	}

	name := strings.ToLower(strings.TrimSpace(c.Param("tag")))

	res := h.db.
		Where("customer_id = ? AND name = ?", customer.ID, name).
		Delete(&models.CustomerTag{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_remove_tag"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "tag_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
