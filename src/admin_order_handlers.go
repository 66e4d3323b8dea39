package main

import (
	"errors"
	"log"
	"net/http"
	"receh48/src/booking"
	"receh48/src/db"
	"receh48/src/models"
	"receh48/src/models/scopes"
	"receh48/src/types"
	"receh48/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errInvalidTransition = errors.New("perubahan status tidak diizinkan")

func adminOrderHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/orders", func(ctx *gin.Context) {
			var query types.OrderQueryFilters
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			orderType := ""
			if query.OrderType != "" {
				st, ok := parseServiceType(ctx, query.OrderType)
				if !ok {
					return
				}
				orderType = string(st)
			}
			filters := []func(*gorm.DB) *gorm.DB{
				scopes.WithOptional("status", query.Status),
				scopes.WithOptional("order_type", orderType),
				scopes.SearchOrders(query.Q),
			}
			db := db.GetDb()
			var total int64
			if err := db.Model(&models.Order{}).Scopes(filters...).Count(&total).Error; err != nil {
				log.Printf("Error counting Orders: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			var orders []models.Order
			if err := db.
				Scopes(filters...).
				Scopes(scopes.Paginate(query.Limit, query.Offset, 100)).
				Order("created_at desc").
				Find(&orders).
				Error; err != nil {
				log.Printf("Error retrieving Orders: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": orders, "total": total})
		}).
		GET("/orders/:id", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var order models.Order
			db := db.GetDb()
			if err := db.Where("id = ?", params.ID).First(&order).Error; err != nil {
				respondError(ctx, err)
				return
			}
			password, err := utils.OpenSecret(order.PasswordJKT, order.PasswordSealed)
			if err != nil {
				log.Printf("Error unsealing credential for order %s: %s\n", order.ID.String(), err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal membaca kredensial"})
				return
			}
			lines, err := booking.ParseNote(order.Note)
			if err != nil {
				log.Printf("Order %s has an unreadable note: %s\n", order.ID.String(), err.Error())
			}
			ctx.JSON(http.StatusOK, gin.H{
				"data":         order,
				"password_jkt": password,
				"items":        lines,
			})
		}).
		PUT("/orders/:id/status", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateOrderStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			next := types.OrderStatus(body.Status)
			var order models.Order
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Where("id = ?", params.ID).First(&order).Error; err != nil {
					return err
				}
				if !order.Status.CanTransitionTo(next) {
					return errInvalidTransition
				}
				res := tx.Model(&models.Order{}).
					Where("id = ? AND status = ?", params.ID, order.Status).
					Update("status", next)
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return errInvalidTransition
				}
				order.Status = next
				return nil
			})
			if errors.Is(err, errInvalidTransition) {
				ctx.JSON(http.StatusConflict, gin.H{"error": err.Error(), "status": order.Status})
				return
			}
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": order})
		}).
		PUT("/orders/:id/meta", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateOrderMetaRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates := map[string]any{}
			if body.TotalFee != nil {
				updates["total_fee"] = *body.TotalFee
			}
			if body.HandledBy != nil {
				updates["handled_by"] = utils.NullIfBlank(*body.HandledBy)
			}
			if len(updates) == 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Tidak ada perubahan"})
				return
			}
			db := db.GetDb()
			res := db.Model(&models.Order{}).Where("id = ?", params.ID).Updates(updates)
			if res.Error != nil {
				log.Printf("Error updating Order: %s\n", res.Error.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			if res.RowsAffected == 0 {
				respondError(ctx, gorm.ErrRecordNotFound)
				return
			}
			var order models.Order
			if err := db.Where("id = ?", params.ID).First(&order).Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": order})
		}).
		DELETE("/orders/:id", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.Where("id = ?", params.ID).Delete(&models.Order{})
			if res.Error != nil {
				log.Printf("Error deleting Order: %s\n", res.Error.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			if res.RowsAffected == 0 {
				respondError(ctx, gorm.ErrRecordNotFound)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		POST("/orders/bulk-delete", func(ctx *gin.Context) {
			var body types.BulkDeleteRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.Scopes(scopes.WithIDs(body.IDs...)).Delete(&models.Order{})
			if res.Error != nil {
				log.Printf("Error deleting Orders: %s\n", res.Error.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"deleted": res.RowsAffected})
		})
	return g
}
