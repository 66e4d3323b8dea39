package main

import (
	"net/http"
	"receh48/src/booking"
	"receh48/src/types"

	"github.com/gin-gonic/gin"
)

func serviceHandlers(g *gin.RouterGroup, store booking.Store) *gin.RouterGroup {
	g.
		GET("/services/status", func(ctx *gin.Context) {
			statuses := make([]booking.Availability, 0, len(types.ServiceTypes))
			for _, st := range types.ServiceTypes {
				statuses = append(statuses, booking.LoadAvailability(ctx.Request.Context(), store, st))
			}
			ctx.JSON(http.StatusOK, gin.H{"data": statuses})
		}).
		GET("/services/:type/status", func(ctx *gin.Context) {
			var params types.ServiceTypeURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			st, ok := parseServiceType(ctx, params.Type)
			if !ok {
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking.LoadAvailability(ctx.Request.Context(), store, st)})
		}).
		GET("/services/:type/catalog", func(ctx *gin.Context) {
			var params types.ServiceTypeURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			st, ok := parseServiceType(ctx, params.Type)
			if !ok {
				return
			}
			catalog, err := booking.LoadCatalog(ctx.Request.Context(), store, st)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"data":         catalog,
				"availability": booking.LoadAvailability(ctx.Request.Context(), store, st),
			})
		})
	return g
}
