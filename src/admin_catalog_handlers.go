package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"receh48/src/db"
	"receh48/src/lib"
	"receh48/src/models"
	"receh48/src/models/scopes"
	"receh48/src/types"
	"receh48/src/utils"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errFeeTypeMismatch  = errors.New("tipe fee group tidak sesuai dengan layanan")
	errFeeTypeImmutable = errors.New("tipe fee group tidak dapat diubah")
)

func invalidateCatalogs(ctx context.Context, sts ...types.ServiceType) {
	if err := db.InvalidateCatalogCache(ctx, lib.GetRedisClient(), sts...); err != nil {
		log.Printf("[redis] Error invalidating catalog cache: %s\n", err.Error())
	}
}

func adminMemberHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/members", func(ctx *gin.Context) {
			var members []models.Member
			db := db.GetDb()
			if err := db.
				Preload("MemberFees").
				Preload("MemberFees.FeeGroup").
				Order("name asc").
				Find(&members).
				Error; err != nil {
				log.Printf("Error retrieving Members: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": members})
		}).
		POST("/members", func(ctx *gin.Context) {
			var body types.CreateMemberRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			member := models.Member{
				Name:     strings.TrimSpace(body.Name),
				PhotoURL: body.PhotoURL,
				IsActive: body.IsActive == nil || *body.IsActive,
			}
			db := db.GetDb()
			if err := db.Create(&member).Error; err != nil {
				log.Printf("Error creating Member: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			invalidateCatalogs(ctx.Request.Context())
			ctx.JSON(http.StatusCreated, gin.H{"data": member})
		}).
		PUT("/members/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateMemberRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates := map[string]any{}
			if body.Name != nil {
				updates["name"] = strings.TrimSpace(*body.Name)
			}
			if body.PhotoURL != nil {
				updates["photo_url"] = utils.NullIfBlank(*body.PhotoURL)
			}
			if body.IsActive != nil {
				updates["is_active"] = *body.IsActive
			}
			if len(updates) == 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Tidak ada perubahan"})
				return
			}
			db := db.GetDb()
			res := db.Model(&models.Member{}).Scopes(scopes.WithID(params.ID)).Updates(updates)
			if res.Error != nil {
				log.Printf("Error updating Member: %s\n", res.Error.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			if res.RowsAffected == 0 {
				respondError(ctx, gorm.ErrRecordNotFound)
				return
			}
			var member models.Member
			if err := db.Preload("MemberFees").Scopes(scopes.WithID(params.ID)).First(&member).Error; err != nil {
				respondError(ctx, err)
				return
			}
			invalidateCatalogs(ctx.Request.Context())
			ctx.JSON(http.StatusOK, gin.H{"data": member})
		}).
		PUT("/members/:id/fees/:type", func(ctx *gin.Context) {
			var params types.MemberFeeURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.AssignFeeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			st, ok := parseServiceType(ctx, params.Type)
			if !ok {
				return
			}
			var fee models.MemberFee
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var member models.Member
				if err := tx.Scopes(scopes.WithID(params.ID)).First(&member).Error; err != nil {
					return err
				}
				var group models.FeeGroup
				if err := tx.Scopes(scopes.WithID(body.FeeGroupID)).First(&group).Error; err != nil {
					return err
				}
				if group.FeeType != st {
					return errFeeTypeMismatch
				}
				fee = models.MemberFee{MemberID: member.ID, FeeType: st, FeeGroupID: group.ID}
				if err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "member_id"}, {Name: "fee_type"}},
					DoUpdates: clause.AssignmentColumns([]string{"fee_group_id", "updated_at"}),
				}).Create(&fee).Error; err != nil {
					return err
				}
				return tx.Preload("FeeGroup").
					Where(&models.MemberFee{MemberID: member.ID, FeeType: st}).
					First(&fee).
					Error
			})
			if errors.Is(err, errFeeTypeMismatch) {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if err != nil {
				respondError(ctx, err)
				return
			}
			invalidateCatalogs(ctx.Request.Context(), st)
			ctx.JSON(http.StatusOK, gin.H{"data": fee})
		}).
		DELETE("/members/:id/fees/:type", func(ctx *gin.Context) {
			var params types.MemberFeeURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			st, ok := parseServiceType(ctx, params.Type)
			if !ok {
				return
			}
			db := db.GetDb()
			res := db.Where(&models.MemberFee{MemberID: params.ID, FeeType: st}).Delete(&models.MemberFee{})
			if res.Error != nil {
				log.Printf("Error deleting MemberFee: %s\n", res.Error.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			if res.RowsAffected == 0 {
				respondError(ctx, gorm.ErrRecordNotFound)
				return
			}
			invalidateCatalogs(ctx.Request.Context(), st)
			ctx.Status(http.StatusNoContent)
		})
	return g
}

func adminFeeGroupHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/fee-groups", func(ctx *gin.Context) {
			var query types.FeeGroupQueryFilters
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			feeType := ""
			if query.FeeType != "" {
				st, ok := parseServiceType(ctx, query.FeeType)
				if !ok {
					return
				}
				feeType = string(st)
			}
			var groups []models.FeeGroup
			db := db.GetDb()
			if err := db.
				Scopes(scopes.WithOptional("fee_type", feeType)).
				Order("fee desc").
				Order("name asc").
				Find(&groups).
				Error; err != nil {
				log.Printf("Error retrieving FeeGroups: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": groups})
		}).
		POST("/fee-groups", func(ctx *gin.Context) {
			var body types.CreateFeeGroupRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			st, ok := parseServiceType(ctx, body.FeeType)
			if !ok {
				return
			}
			group := models.FeeGroup{
				Name:        strings.TrimSpace(body.Name),
				Fee:         *body.Fee,
				Description: body.Description,
				FeeType:     st,
				IsActive:    body.IsActive == nil || *body.IsActive,
			}
			db := db.GetDb()
			if err := db.Create(&group).Error; err != nil {
				log.Printf("Error creating FeeGroup: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": group})
		}).
		PUT("/fee-groups/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateFeeGroupRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var group models.FeeGroup
			db := db.GetDb()
			if err := db.Scopes(scopes.WithID(params.ID)).First(&group).Error; err != nil {
				respondError(ctx, err)
				return
			}
			if body.FeeType != nil {
				st, err := types.ParseServiceType(*body.FeeType)
				if err != nil || st != group.FeeType {
					ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": errFeeTypeImmutable.Error()})
					return
				}
			}
			updates := map[string]any{}
			if body.Name != nil {
				updates["name"] = strings.TrimSpace(*body.Name)
			}
			if body.Fee != nil {
				updates["fee"] = *body.Fee
			}
			if body.Description != nil {
				updates["description"] = utils.NullIfBlank(*body.Description)
			}
			if body.IsActive != nil {
				updates["is_active"] = *body.IsActive
			}
			if len(updates) > 0 {
				if err := db.Model(&group).Updates(updates).Error; err != nil {
					log.Printf("Error updating FeeGroup: %s\n", err.Error())
					ctx.Status(http.StatusBadRequest)
					return
				}
			}
			if err := db.Scopes(scopes.WithID(params.ID)).First(&group).Error; err != nil {
				respondError(ctx, err)
				return
			}
			invalidateCatalogs(ctx.Request.Context(), group.FeeType)
			ctx.JSON(http.StatusOK, gin.H{"data": group})
		})
	return g
}

func adminServiceHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/services", func(ctx *gin.Context) {
			var statuses []models.ServiceStatus
			db := db.GetDb()
			if err := db.Order("service_key asc").Find(&statuses).Error; err != nil {
				log.Printf("Error retrieving ServiceStatus: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": statuses})
		}).
		PUT("/services/:key/status", func(ctx *gin.Context) {
			var params types.ServiceKeyURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateServiceStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			st, _ := types.ServiceTypeFromKey(params.Key)
			var message *string
			if body.Message != nil {
				message = utils.NullIfBlank(*body.Message)
			}
			status := models.ServiceStatus{
				ServiceKey:  params.Key,
				ServiceName: st.Label(),
				Status:      types.AvailabilityStatus(body.Status),
				Message:     message,
			}
			db := db.GetDb()
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "service_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"status", "message", "updated_at"}),
			}).Create(&status).Error; err != nil {
				log.Printf("Error saving ServiceStatus: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			if err := db.Where(&models.ServiceStatus{ServiceKey: params.Key}).First(&status).Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": status})
		})
	return g
}
