package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-scheduler/internal/httperr"
	"github.com/glowdesk/salon-scheduler/internal/httpresp"
	"github.com/glowdesk/salon-scheduler/internal/middleware"
	"github.com/glowdesk/salon-scheduler/internal/models"
)

type InventoryHandler struct {
	db *gorm.DB
}

func NewInventoryHandler(db *gorm.DB) *InventoryHandler {
	return &InventoryHandler{db: db}
}

type inventoryItemRequest struct {
	Name       string `json:"name" binding:"required"`
	SKU        string `json:"sku"`
	PriceCents int64  `json:"price_cents"`
	StockQty   int    `json:"stock_qty"`
	Active     *bool  `json:"active"`
}

func (h *InventoryHandler) List(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	var items []models.InventoryItem
	q := h.db.Where("salon_id = ?", salonID).Order("name ASC")
	if search := c.Query("q"); search != "" {
		q = q.Where("name ILIKE ? OR sku ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if err := q.Find(&items).Error; err != nil {
		httperr.Internal(c, "internal_error", "Failed to list inventory.")
		return
	}

	httpresp.List(c, items)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	var req inventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.StockQty < 0 {
		httperr.BadRequest(c, "invalid_stock", "Stock must be >= 0.")
		return
	}

	item := models.InventoryItem{
		SalonID:    salonID,
		Name:       req.Name,
		SKU:        req.SKU,
		PriceCents: req.PriceCents,
		StockQty:   req.StockQty,
		Active:     true,
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "create_failed", "Failed to create item.")
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var item models.InventoryItem
	if err := h.db.
		Where("id = ? AND salon_id = ?", itemID, salonID).
		First(&item).Error; err != nil {
		httperr.NotFound(c, "item_not_found", "Item not found.")
		return
	}

	var req inventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.StockQty < 0 {
		httperr.BadRequest(c, "invalid_stock", "Stock must be >= 0.")
		return
	}

	item.Name = req.Name
	item.SKU = req.SKU
	item.PriceCents = req.PriceCents
	item.StockQty = req.StockQty
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "update_failed", "Failed to update item.")
		return
	}

	httpresp.OK(c, item)
}

type adjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// AdjustStock soma delta (positivo ou negativo) ao estoque, com piso em
// zero validado no UPDATE para não correr com a venda.
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res := h.db.Model(&models.InventoryItem{}).
		Where("id = ? AND salon_id = ? AND stock_qty + ? >= 0", itemID, salonID, req.Delta).
		Update("stock_qty", gorm.Expr("stock_qty + ?", req.Delta))
	if res.Error != nil {
		httperr.Internal(c, "update_failed", "Failed to adjust stock.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.BadRequest(c, "insufficient_stock", "Adjustment would make stock negative.")
		return
	}

	var item models.InventoryItem
	if err := h.db.
		Where("id = ? AND salon_id = ?", itemID, salonID).
		First(&item).Error; err != nil {
		httperr.NotFound(c, "item_not_found", "Item not found.")
		return
	}

	httpresp.OK(c, item)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	salonID := c.GetUint(middleware.ContextSalonID)

	itemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.db.Model(&models.InventoryItem{}).
		Where("id = ? AND salon_id = ?", itemID, salonID).
		Update("active", false).Error; err != nil {
		httperr.Internal(c, "delete_failed", "Failed to delete item.")
		return
	}

	c.Status(http.StatusNoContent)
}
