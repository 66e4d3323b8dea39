package main

import (
	"log"
	"net/http"
	"receh48/src/booking"
	"receh48/src/lib"
	"receh48/src/middlewares"
	"receh48/src/types"

	"github.com/gin-gonic/gin"
)

const idempotencyHeader = "Idempotency-Key"

func lookupSession(ctx *gin.Context, reg *booking.Registry, id string) (*booking.Session, bool) {
	s, err := reg.Get(id)
	if err != nil {
		respondError(ctx, err)
		return nil, false
	}
	return s, true
}

func respondView(ctx *gin.Context, status int, s *booking.Session, extra gin.H) {
	view, err := s.View(ctx.Request.Context(), true)
	if err != nil {
		respondError(ctx, err)
		return
	}
	body := gin.H{"data": view}
	for k, v := range extra {
		body[k] = v
	}
	ctx.JSON(status, body)
}

func cartHandlers(g *gin.RouterGroup, reg *booking.Registry, limiter *middlewares.RateLimiter, metrics *lib.Metrics) *gin.RouterGroup {
	g.
		POST("/carts", func(ctx *gin.Context) {
			var body types.CreateCartRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			st, ok := parseServiceType(ctx, body.ServiceType)
			if !ok {
				return
			}
			s, catalog, err := reg.Open(ctx.Request.Context(), st)
			if err != nil {
				log.Printf("Error opening cart for %s: %s\n", st, err.Error())
				respondError(ctx, err)
				return
			}
			respondView(ctx, http.StatusCreated, s, gin.H{"catalog": catalog})
		}).
		GET("/carts/:id", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			s, ok := lookupSession(ctx, reg, params.ID)
			if !ok {
				return
			}
			respondView(ctx, http.StatusOK, s, nil)
		}).
		PUT("/carts/:id/refresh", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			s, ok := lookupSession(ctx, reg, params.ID)
			if !ok {
				return
			}
			if err := s.Refresh(ctx.Request.Context()); err != nil {
				respondError(ctx, err)
				return
			}
			catalog, err := s.Catalog(ctx.Request.Context())
			if err != nil {
				respondError(ctx, err)
				return
			}
			respondView(ctx, http.StatusOK, s, gin.H{"catalog": catalog})
		}).
		POST("/carts/:id/items", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.AddCartItemRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			s, ok := lookupSession(ctx, reg, params.ID)
			if !ok {
				return
			}
			item, err := s.AddItem(ctx.Request.Context(), body.MemberID)
			if err != nil {
				respondError(ctx, err)
				return
			}
			respondView(ctx, http.StatusCreated, s, gin.H{"item": item})
		}).
		DELETE("/carts/:id/items", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			s, ok := lookupSession(ctx, reg, params.ID)
			if !ok {
				return
			}
			if err := s.Clear(ctx.Request.Context()); err != nil {
				respondError(ctx, err)
				return
			}
			respondView(ctx, http.StatusOK, s, nil)
		}).
		DELETE("/carts/:id/items/:clientId", func(ctx *gin.Context) {
			var params types.CartItemURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			s, ok := lookupSession(ctx, reg, params.ID)
			if !ok {
				return
			}
			if err := s.RemoveItem(ctx.Request.Context(), params.ClientID); err != nil {
				respondError(ctx, err)
				return
			}
			respondView(ctx, http.StatusOK, s, nil)
		}).
		PATCH("/carts/:id/items/:clientId", func(ctx *gin.Context) {
			var params types.CartItemURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateCartItemRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			field, err := booking.ParseCartField(body.Field)
			if err != nil {
				respondError(ctx, err)
				return
			}
			s, ok := lookupSession(ctx, reg, params.ID)
			if !ok {
				return
			}
			if err := s.UpdateItem(ctx.Request.Context(), params.ClientID, field, body.Value); err != nil {
				respondError(ctx, err)
				return
			}
			respondView(ctx, http.StatusOK, s, nil)
		}).
		PUT("/carts/:id/items/:clientId/backup", func(ctx *gin.Context) {
			var params types.CartItemURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.SetBackupMemberRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			s, ok := lookupSession(ctx, reg, params.ID)
			if !ok {
				return
			}
			if err := s.SetBackupMember(ctx.Request.Context(), params.ClientID, body.MemberID); err != nil {
				respondError(ctx, err)
				return
			}
			respondView(ctx, http.StatusOK, s, nil)
		}).
		POST("/carts/:id/checkout", limiter.Limit, func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var form types.CustomerForm
			if err := ctx.ShouldBindJSON(&form); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			key := ctx.GetHeader(idempotencyHeader)
			if len(key) > 64 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key terlalu panjang"})
				return
			}
			s, ok := lookupSession(ctx, reg, params.ID)
			if !ok {
				return
			}
			order, err := s.Submit(ctx.Request.Context(), form, key)
			if err != nil {
				metrics.SubmissionsFailed.WithLabelValues(submissionFailureReason(err)).Inc()
				log.Printf("Checkout failed for cart %s: %s\n", s.ID, err.Error())
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": order})
		}).
		DELETE("/carts/:id", func(ctx *gin.Context) {
			var params types.UUIDRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if !reg.Close(params.ID) {
				respondError(ctx, booking.ErrSessionNotFound)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
