package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path"
	"receh48/src/booking"
	"receh48/src/boot"
	"receh48/src/common"
	"receh48/src/config"
	"receh48/src/db"
	"receh48/src/lib"
	"receh48/src/middlewares"
	"receh48/src/models"
	"receh48/src/utils"
	"regexp"
	"strconv"
	"syscall"
	"time"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	apiPrefix string = "/api/v1"
)

type dependencies struct {
	Store    booking.Store
	Registry *booking.Registry
	Limiter  *middlewares.RateLimiter
	Metrics  *lib.Metrics
}

func newDependencies(store booking.Store, metrics *lib.Metrics) *dependencies {
	countOrder := func(ctx context.Context, order *models.Order) {
		metrics.OrdersCreated.WithLabelValues(string(order.OrderType)).Inc()
	}
	reg := booking.NewRegistry(booking.Collaborators{
		Store:    store,
		Notifier: booking.LogNotifier{},
		OnOrderCreated: []booking.OrderHook{
			countOrder,
			common.SendOrderConfirmation,
			common.NotifyAdminNewOrder,
		},
	}, config.SessionIdleTTL)
	if err := metrics.RegisterGauge("receh48_cart_sessions_open", "Cart sessions currently open.", func() float64 {
		return float64(reg.Len())
	}); err != nil {
		log.Printf("Error registering session gauge: %s\n", err.Error())
	}
	return &dependencies{
		Store:    store,
		Registry: reg,
		Limiter:  middlewares.NewRateLimiter(config.RateLimitPerMin),
		Metrics:  metrics,
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

// maintenanceModeMiddleware rejects every request while MAINTENANCE_MODE is true.
func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		mm := os.Getenv("MAINTENANCE_MODE")
		if mm == "" {
			return
		}
		on, err := strconv.ParseBool(mm)
		if err != nil || on {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, err.Error())
			return
		}
	})
	return g
}

func requestMetrics(m *lib.Metrics) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
	}
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		utils.RegisterValidations(v)
	}
}

func registerRoutes(router *gin.Engine, deps *dependencies) {
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	router.GET("/healthz", func(ctx *gin.Context) {
		if err := db.Ping(ctx.Request.Context()); err != nil {
			log.Printf("Health check failed: %s\n", err.Error())
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"database": "down"})
			return
		}
		redisStatus := "disabled"
		if lib.GetRedisClient() != nil {
			redisStatus = "up"
			if err := lib.PingRedis(ctx.Request.Context()); err != nil {
				redisStatus = "down"
			}
		}
		ctx.JSON(http.StatusOK, gin.H{"database": "up", "redis": redisStatus})
	})

	public := apiv1Group(router)
	public = serviceHandlers(public, deps.Store)
	public = cartHandlers(public, deps.Registry, deps.Limiter, deps.Metrics)
	public = reviewHandlers(public, deps.Store, deps.Limiter, deps.Metrics)

	admin := router.Group(apiPrefix + "/admin")
	admin.Use(middlewares.AdminMiddleware)
	{
		admin = adminOrderHandlers(admin)
		admin = adminMemberHandlers(admin)
		admin = adminFeeGroupHandlers(admin)
		admin = adminServiceHandlers(admin)
		admin = adminContentHandlers(admin)
		admin = adminReviewHandlers(admin)
		admin = adminTimetableHandlers(admin)
	}
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	if err := os.MkdirAll(path.Join(cwd, "logs"), 0o755); err != nil {
		log.Printf("Could not create logs directory: %s\n", err.Error())
		return
	}
	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}))
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "" || apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			log.Printf("No .env file loaded: %s\n", err.Error())
		}
	}
	config.Load()
	initLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boot.InitDb()

	store := db.NewCachedStore(db.NewStore(db.GetDb()), lib.GetRedisClient(), config.CatalogCacheTTL)
	deps := newDependencies(store, lib.GetMetrics())

	boot.InitScheduler(deps.Registry, deps.Limiter)
	boot.InitConsumers(ctx)

	router := setupRouter()
	router.Use(requestMetrics(deps.Metrics))

	if config.API_ENV == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization", idempotencyHeader)
		cc.AllowOriginFunc = func(origin string) bool {
			if config.APP_HOST == "" {
				return false
			}
			match, _ := regexp.MatchString(config.APP_HOST, origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	registerValidations()

	router = maintenanceModeMiddleware(router)

	registerRoutes(router, deps)

	srv := &http.Server{
		Addr:    ":" + config.PORT,
		Handler: router,
	}
	go func() {
		var err error
		if os.Getenv("TLS_ENABLE") == "true" {
			cwd, _ := os.Getwd()
			certpath := path.Join(cwd, "certificates", "localhost.pem")
			keypath := path.Join(cwd, "certificates", "localhost-key.pem")
			err = srv.ListenAndServeTLS(certpath, keypath)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %s", err)
		}
	}()
	log.Printf("Listening on %s\n", srv.Addr)

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %s\n", err.Error())
	}
	boot.StopScheduler()
	deps.Registry.Shutdown()
}
