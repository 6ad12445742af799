package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/princinho/tradecatalog/client"
	"github.com/princinho/tradecatalog/controllers"
	"github.com/princinho/tradecatalog/database"
	"github.com/princinho/tradecatalog/middleware"
	"github.com/princinho/tradecatalog/models"
	"github.com/princinho/tradecatalog/seed"
	"github.com/princinho/tradecatalog/store"
	"github.com/princinho/tradecatalog/utils"
	"go.uber.org/zap"
)

type app struct {
	auth      *store.AuthStore
	products  store.ProductStore
	enquiries store.EnquiryStore
	flows     *store.FlowSessions
	uploader  store.ImageUploader
	secret    string
}

func main() {
	cfg := utils.LoadConfig()
	logger, err := utils.InitLogger(cfg.LogMode, cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	if !cfg.DotEnvLoaded {
		zap.S().Debug("no .env file found, using system environment variables")
	}

	sessions, err := database.OpenBoltStorage(cfg.SessionDBPath)
	if err != nil {
		zap.S().Fatal(err)
	}
	defer sessions.Close()

	ctx := context.Background()
	events := store.NewNotifier()
	logChanges(events)

	a, err := build(ctx, cfg, sessions, events)
	if err != nil {
		zap.S().Fatal(err)
	}
	a.auth.RestoreSession()

	r := newRouter(cfg, a)
	zap.S().Infof("listening on :%s (store mode %s)", cfg.Port, cfg.StoreMode)
	if err := r.Run(":" + cfg.Port); err != nil {
		zap.S().Fatal(err)
	}
}

func build(ctx context.Context, cfg utils.Config, sessions store.TokenStorage, events *store.Notifier) (*app, error) {
	opts := []store.Option{store.WithNotifier(events)}

	if cfg.StoreMode == utils.StoreModeRemote {
		api := client.New(cfg.APIBaseURL, cfg.HTTPTimeout)
		auth := store.NewAuthStore(api, sessions, opts...)
		api.SetTokenSource(auth.Token)

		products := store.NewRemoteProductStore(api, opts...)
		if err := products.Refresh(ctx); err != nil {
			zap.S().Warnf("initial catalog load from %s failed: %v", cfg.APIBaseURL, err)
		}
		return &app{
			auth:      auth,
			products:  products,
			enquiries: store.NewRemoteEnquiryStore(api, opts...),
			flows:     store.NewFlowSessions(cfg.FlowTTL, opts...),
			uploader:  api,
		}, nil
	}

	admin, err := utils.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return nil, err
	}
	local, err := store.NewLocalAuthenticator(admin, cfg.JWTSecret, cfg.AccessTTL)
	if err != nil {
		return nil, err
	}

	products := store.NewMemoryProductStore(opts...)
	enquiries := store.NewMemoryEnquiryStore(opts...)
	if cfg.SeedDemoData {
		demo, err := seed.Demo()
		if err != nil {
			return nil, err
		}
		seed.Load(demo, products, enquiries)
	}

	a := &app{
		auth:      store.NewAuthStore(local, sessions, opts...),
		products:  products,
		enquiries: enquiries,
		flows:     store.NewFlowSessions(cfg.FlowTTL, opts...),
		secret:    cfg.JWTSecret,
	}
	if cfg.R2.Enabled() {
		r2, err := utils.NewR2Client(ctx, cfg.R2)
		if err != nil {
			return nil, err
		}
		a.uploader = r2
	}
	return a, nil
}

func logChanges(events *store.Notifier) {
	topics := []string{
		store.TopicManufactured,
		store.TopicTrading,
		store.TopicEnquiries,
		store.TopicEnquiryFlow,
		store.TopicSession,
	}
	for _, topic := range topics {
		if err := events.Subscribe(topic, func(ch store.Change) {
			zap.S().Debugw("store change", "topic", ch.Topic, "op", ch.Op, "id", ch.ID)
		}); err != nil {
			zap.S().Warnf("subscribe %s: %v", topic, err)
		}
	}
}

func newRouter(cfg utils.Config, a *app) *gin.Engine {
	r := gin.New()
	v := utils.NewImageValidator(cfg.Upload)

	allowedOrigins := map[string]bool{}
	for _, origin := range cfg.AllowedOrigins {
		allowedOrigins[origin] = true
	}
	zap.S().Infof("allowed origins: %v", cfg.AllowedOrigins)
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	requireAdmin := middleware.AuthMiddleware(a.auth, a.secret)

	r.POST("/auth/login", controllers.Login(a.auth))
	r.POST("/auth/logout", requireAdmin, controllers.Logout(a.auth))
	r.GET("/auth/session", controllers.GetSession(a.auth))

	r.POST("/enquiries", controllers.SubmitEnquiry(a.enquiries))
	r.POST("/contact", controllers.SubmitContact(a.enquiries))
	r.GET("/enquiry-flow", controllers.GetEnquiryFlow(a.flows))
	r.POST("/enquiry-flow/open", controllers.OpenEnquiryFlow(a.flows, a.products))
	r.POST("/enquiry-flow/close", controllers.CloseEnquiryFlow(a.flows))

	admin := r.Group("/admin")
	admin.Use(requireAdmin)
	{
		admin.GET("/enquiries", controllers.GetEnquiries(a.enquiries))
		admin.GET("/enquiries/:id", controllers.GetEnquiry(a.enquiries))
		admin.PATCH("/enquiries/:id/status", controllers.UpdateEnquiryStatus(a.enquiries))
		admin.DELETE("/enquiries/:id", controllers.DeleteEnquiry(a.enquiries))
		admin.POST("/upload/image", controllers.UploadImage(v, a.uploader))
	}

	for _, kind := range []models.ProductType{models.ProductTypeManufactured, models.ProductTypeTrading} {
		base := "/" + string(kind)
		r.GET(base, controllers.GetProducts(a.products, kind))
		r.GET(base+"/categories", controllers.GetCategories(a.products, kind))
		r.GET(base+"/:id", controllers.GetProduct(a.products, kind))

		admin.POST(base, controllers.AddProduct(a.products, kind))
		admin.PATCH(base+"/:id", controllers.UpdateProduct(a.products, kind))
		admin.DELETE(base+"/:id", controllers.DeleteProduct(a.products, kind))
	}

	return r
}
