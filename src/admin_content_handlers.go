package main

import (
	"log"
	"net/http"
	"receh48/src/db"
	"receh48/src/models"
	"receh48/src/models/scopes"
	"receh48/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func adminContentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/content/:key", func(ctx *gin.Context) {
			var params types.ContentKeyURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var content models.SiteContent
			db := db.GetDb()
			if err := db.Where(&models.SiteContent{Key: params.Key}).First(&content).Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": content})
		}).
		PUT("/content/:key", func(ctx *gin.Context) {
			var params types.ContentKeyURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateContentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			content := models.SiteContent{Key: params.Key, Value: body.Value}
			db := db.GetDb()
			if err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&content).Error; err != nil {
				log.Printf("Error saving SiteContent: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			if err := db.Where(&models.SiteContent{Key: params.Key}).First(&content).Error; err != nil {
				respondError(ctx, err)
				return
			}
			if st, ok := termsServiceType(params.Key); ok {
				invalidateCatalogs(ctx.Request.Context(), st)
			}
			ctx.JSON(http.StatusOK, gin.H{"data": content})
		})
	return g
}

func termsServiceType(key string) (types.ServiceType, bool) {
	for _, st := range types.ServiceTypes {
		if st.TermsKey() == key {
			return st, true
		}
	}
	return "", false
}

func adminReviewHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/reviews", func(ctx *gin.Context) {
			var query types.AdminReviewQueryFilters
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var reviews []models.Review
			db := db.GetDb()
			q := db.Order("created_at desc")
			if query.Approved != nil {
				q = q.Scopes(scopes.WithApproved(*query.Approved))
			}
			if err := q.Find(&reviews).Error; err != nil {
				log.Printf("Error retrieving Reviews: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reviews})
		}).
		PUT("/reviews/:id/approval", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.ReviewApprovalRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.Model(&models.Review{}).Where("id = ?", params.ID).Update("is_approved", *body.Approved)
			if res.Error != nil {
				log.Printf("Error updating Review: %s\n", res.Error.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			if res.RowsAffected == 0 {
				respondError(ctx, gorm.ErrRecordNotFound)
				return
			}
			var review models.Review
			if err := db.Where("id = ?", params.ID).First(&review).Error; err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": review})
		}).
		DELETE("/reviews/:id", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.Where("id = ?", params.ID).Delete(&models.Review{})
			if res.Error != nil {
				log.Printf("Error deleting Review: %s\n", res.Error.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			if res.RowsAffected == 0 {
				respondError(ctx, gorm.ErrRecordNotFound)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}

func adminTimetableHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/timetable", func(ctx *gin.Context) {
			var body types.CreateTimetableImageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			image := models.TimetableImage{
				ImageURL:  body.ImageURL,
				Caption:   body.Caption,
				SortOrder: body.SortOrder,
				IsActive:  body.IsActive == nil || *body.IsActive,
			}
			db := db.GetDb()
			if err := db.Create(&image).Error; err != nil {
				log.Printf("Error creating TimetableImage: %s\n", err.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": image})
		}).
		DELETE("/timetable/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.Scopes(scopes.WithID(params.ID)).Delete(&models.TimetableImage{})
			if res.Error != nil {
				log.Printf("Error deleting TimetableImage: %s\n", res.Error.Error())
				ctx.Status(http.StatusBadRequest)
				return
			}
			if res.RowsAffected == 0 {
				respondError(ctx, gorm.ErrRecordNotFound)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
