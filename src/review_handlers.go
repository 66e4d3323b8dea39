package main

import (
	"fmt"
	"log"
	"net/http"
	"receh48/src/booking"
	"receh48/src/config"
	"receh48/src/db"
	"receh48/src/lib"
	"receh48/src/middlewares"
	"receh48/src/models"
	"receh48/src/models/scopes"
	"receh48/src/types"
	"strings"

	"github.com/gin-gonic/gin"
)

func reviewCooldownKey(clientIP string) string {
	return fmt.Sprintf("review:cooldown:%s", clientIP)
}

func reviewHandlers(g *gin.RouterGroup, store booking.Store, limiter *middlewares.RateLimiter, metrics *lib.Metrics) *gin.RouterGroup {
	g.
		GET("/reviews", func(ctx *gin.Context) {
			var query types.ReviewQueryFilters
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var reviews []models.Review
			db := db.GetDb()
			if err := db.
				Scopes(scopes.WithApproved(true), scopes.Paginate(query.Limit, 0, 50)).
				Order("created_at desc").
				Find(&reviews).
				Error; err != nil {
				log.Printf("Error retrieving Reviews: %s\n", err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reviews})
		}).
		POST("/reviews", limiter.Limit, func(ctx *gin.Context) {
			var body types.CreateReviewRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if strings.TrimSpace(body.Website) != "" {
				log.Printf("[reviews] Honeypot filled from %s\n", ctx.ClientIP())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Spam terdeteksi."})
				return
			}
			rdb := lib.GetRedisClient()
			key := reviewCooldownKey(ctx.ClientIP())
			ok, err := lib.AcquireCooldown(ctx.Request.Context(), rdb, key, config.ReviewCooldown)
			if err != nil {
				log.Printf("[redis] Cooldown check failed, allowing review: %s\n", err.Error())
			}
			if !ok {
				ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Tunggu sebentar sebelum kirim lagi."})
				return
			}
			review := &models.Review{
				Name:        strings.TrimSpace(body.Name),
				ServiceType: body.ServiceType,
				Rating:      body.Rating,
				Message:     strings.TrimSpace(body.Message),
			}
			if err := store.InsertReview(ctx.Request.Context(), review); err != nil {
				log.Printf("Error saving Review: %s\n", err.Error())
				if rdb != nil {
					rdb.Del(ctx.Request.Context(), key)
				}
				ctx.JSON(http.StatusBadGateway, gin.H{"error": "Gagal mengirim ulasan"})
				return
			}
			metrics.ReviewsReceived.Inc()
			ctx.JSON(http.StatusCreated, gin.H{"data": review})
		}).
		GET("/timetable", func(ctx *gin.Context) {
			var images []models.TimetableImage
			db := db.GetDb()
			if err := db.
				Scopes(scopes.WithActive).
				Order("sort_order asc").
				Order("id asc").
				Find(&images).
				Error; err != nil {
				log.Printf("Error retrieving Timetable: %s\n", err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": images})
		})
	return g
}
