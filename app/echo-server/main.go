package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"krishiCMS/app/echo-server/metrics"
	"krishiCMS/app/echo-server/router"
	"krishiCMS/business/auth"
	"krishiCMS/business/common"
	"krishiCMS/business/contact"
	"krishiCMS/business/entity"
	"krishiCMS/business/product"
	"krishiCMS/domain"
	"krishiCMS/internal/middleware"
	"krishiCMS/internal/repository/mysql"
	"krishiCMS/internal/repository/notification"
	redisRepo "krishiCMS/internal/repository/redis"
	"krishiCMS/internal/rest"
	"krishiCMS/pkg/config"
	"krishiCMS/pkg/database"
	"krishiCMS/pkg/database/redis"
	"krishiCMS/pkg/filestore"
	"krishiCMS/pkg/logger"
	httpmetrics "krishiCMS/pkg/metrics"
	"krishiCMS/pkg/utils"
	"krishiCMS/pkg/validation"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version)

	db, err := database.Init(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	logger.Info("Database connected successfully", "driver", cfg.Database.Driver)

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", err)
	}

	// Redis keeps revocable sessions; without it tokens live until expiry.
	var tokens auth.TokenStore
	if redis.Enabled(cfg.Redis) {
		redisClient, err := redis.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", err)
		}
		defer func() {
			if err := redis.CloseRedisClient(redisClient); err != nil {
				logger.Error("Failed to close redis", err)
			}
		}()
		tokens = redisRepo.NewTokenRepository(redisClient)
	}

	var notifier contact.Notifier
	if cfg.MailjetEnabled() {
		notifier = notification.NewMailjetRepository(notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		})
	}

	files := filestore.New(cfg.Upload.Dir, cfg.Upload.MaxSizeMB)
	validate := validation.New()

	metrics.Init()
	recorder := metrics.Recorder{}

	// Init repo
	categoryRepo := mysql.NewEntityRepository[domain.Category](db, domain.CategoryDescriptor)
	skuRepo := mysql.NewEntityRepository[domain.SKU](db, domain.SKUDescriptor)
	productRepo := mysql.NewProductRepository(db)
	innovationRepo := mysql.NewEntityRepository[domain.Innovation](db, domain.InnovationDescriptor)
	mediaCategoryRepo := mysql.NewEntityRepository[domain.MediaCategory](db, domain.MediaCategoryDescriptor)
	mediaRepo := mysql.NewEntityRepository[domain.MediaModule](db, domain.MediaModuleDescriptor)
	galleryRepo := mysql.NewEntityRepository[domain.MediaModule](db, domain.MediaModuleDescriptor.WithActiveOnly())
	bannerRepo := mysql.NewEntityRepository[domain.Banner](db, domain.BannerDescriptor)
	departmentRepo := mysql.NewEntityRepository[domain.Department](db, domain.DepartmentDescriptor)
	designationRepo := mysql.NewEntityRepository[domain.Designation](db, domain.DesignationDescriptor)
	userRepo := mysql.NewAdminUserRepository(db)
	contactRepo := mysql.NewEntityRepository[domain.ContactMessage](db, domain.ContactMessageDescriptor)

	// Init service
	categoryService := entity.NewService[domain.Category](categoryRepo, files, entity.WithObserver[domain.Category](recorder))
	skuService := entity.NewService[domain.SKU](skuRepo, files, entity.WithObserver[domain.SKU](recorder))
	productService := entity.NewService[domain.Product](productRepo, files, entity.WithObserver[domain.Product](recorder))
	innovationService := entity.NewService[domain.Innovation](innovationRepo, files, entity.WithObserver[domain.Innovation](recorder))
	mediaCategoryService := entity.NewService[domain.MediaCategory](mediaCategoryRepo, files, entity.WithObserver[domain.MediaCategory](recorder))
	mediaService := entity.NewService[domain.MediaModule](mediaRepo, files, entity.WithObserver[domain.MediaModule](recorder))
	galleryService := entity.NewService[domain.MediaModule](galleryRepo, files, entity.WithObserver[domain.MediaModule](recorder))
	bannerService := entity.NewService[domain.Banner](bannerRepo, files, entity.WithObserver[domain.Banner](recorder))
	departmentService := entity.NewService[domain.Department](departmentRepo, files, entity.WithObserver[domain.Department](recorder))
	designationService := entity.NewService[domain.Designation](designationRepo, files, entity.WithObserver[domain.Designation](recorder))
	userService := entity.NewService[domain.AdminUser](userRepo, files, entity.WithObserver[domain.AdminUser](recorder))
	contactStore := entity.NewService[domain.ContactMessage](contactRepo, files, entity.WithObserver[domain.ContactMessage](recorder))

	commonService := common.NewService(map[string]common.StatusStore{
		domain.CategoryDescriptor.Table:       categoryRepo,
		domain.SKUDescriptor.Table:            skuRepo,
		domain.ProductDescriptor.Table:        productRepo,
		domain.InnovationDescriptor.Table:     innovationRepo,
		domain.MediaCategoryDescriptor.Table:  mediaCategoryRepo,
		domain.MediaModuleDescriptor.Table:    mediaRepo,
		domain.BannerDescriptor.Table:         bannerRepo,
		domain.DepartmentDescriptor.Table:     departmentRepo,
		domain.DesignationDescriptor.Table:    designationRepo,
		domain.AdminUserDescriptor.Table:      userRepo,
		domain.ContactMessageDescriptor.Table: contactRepo,
	})
	authService := auth.NewAuthService(userRepo, utils.NewJWT(cfg.JWT.SecretKey, cfg.JWT.TTL), tokens)
	contactService := contact.NewContactService(contactStore, notifier, cfg.App.AdminEmail)
	byCategoryService := product.NewProductService(productRepo)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.SeedAdmin(seedCtx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.FullName); err != nil {
		logger.Error("Failed to seed admin user", err)
	}
	cancelSeed()

	// Init handler
	categoryHandler := rest.NewEntityHandler[domain.Category](categoryService, rest.FormBinder(validate, rest.ApplyCategory), "category", "categories")
	skuHandler := rest.NewEntityHandler[domain.SKU](skuService, rest.FormBinder(validate, rest.ApplySKU), "sku", "skus")
	productHandler := rest.NewEntityHandler[domain.Product](productService, rest.FormBinder(validate, rest.ApplyProduct), "product", "products")
	innovationHandler := rest.NewEntityHandler[domain.Innovation](innovationService, rest.FormBinder(validate, rest.ApplyInnovation), "innovation", "innovations")
	mediaCategoryHandler := rest.NewEntityHandler[domain.MediaCategory](mediaCategoryService, rest.FormBinder(validate, rest.ApplyMediaCategory), "media-category", "media-categories")
	mediaHandler := rest.NewEntityHandler[domain.MediaModule](mediaService, rest.FormBinder(validate, rest.ApplyMedia), "media", "media")
	galleryHandler := rest.NewEntityHandler[domain.MediaModule](galleryService, nil, "gallery", "gallery")
	bannerHandler := rest.NewEntityHandler[domain.Banner](bannerService, rest.FormBinder(validate, rest.ApplyBanner), "banner", "banners")
	departmentHandler := rest.NewEntityHandler[domain.Department](departmentService, rest.FormBinder(validate, rest.ApplyDepartment), "department", "departments")
	designationHandler := rest.NewEntityHandler[domain.Designation](designationService, rest.FormBinder(validate, rest.ApplyDesignation), "designation", "designations")
	userHandler := rest.NewEntityHandler[domain.AdminUser](userService, rest.FormBinder(validate, rest.ApplyUser), "user", "users")
	contactHandler := rest.NewEntityHandler[domain.ContactMessage](contactStore, rest.FormBinder(validate, rest.ApplyContact), "contact", "contacts")

	commonHandler := rest.NewCommonHandler(commonService)
	authHandler := rest.NewAuthHandler(authService, validate, rest.CookieOptions{
		Name:   cfg.JWT.CookieName,
		Secure: cfg.JWT.CookieSecure,
	})
	submitHandler := rest.NewContactHandler(contactService, validate)
	byCategoryHandler := rest.NewProductHandler(byCategoryService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler(cfg.IsDevelopment())

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echomiddleware.BodyLimit(cfg.Server.BodyLimit))
	e.Use(httpmetrics.NewHTTPMetrics(cfg.App.Name).Middleware())
	e.Use(logger.Middleware())

	e.Static(cfg.Upload.URLPrefix, cfg.Upload.Dir)
	e.GET("/health", rest.Health(cfg.App.Name, cfg.App.Version))
	e.GET("/metrics", echo.WrapHandler(httpmetrics.Handler()))

	authRequired := middleware.AuthMiddleware(authService, cfg.JWT.CookieName)

	// Setup routes
	api := e.Group("/api")
	router.SetupAuthRoutes(api, authHandler, authRequired)
	router.SetupCommonRoutes(api, commonHandler, authRequired)

	router.SetupEntityRoutes(api, "categories", categoryHandler, authRequired, router.RouteOptions{})
	router.SetupEntityRoutes(api, "skus", skuHandler, authRequired, router.RouteOptions{})
	products := router.SetupEntityRoutes(api, "products", productHandler, authRequired, router.RouteOptions{})
	router.SetupProductRoutes(products, byCategoryHandler)
	router.SetupEntityRoutes(api, "innovations", innovationHandler, authRequired, router.RouteOptions{})
	router.SetupEntityRoutes(api, "media-categories", mediaCategoryHandler, authRequired, router.RouteOptions{})
	media := router.SetupEntityRoutes(api, "media", mediaHandler, authRequired, router.RouteOptions{})
	router.SetupGalleryRoutes(media, galleryHandler)
	router.SetupEntityRoutes(api, "banners", bannerHandler, authRequired, router.RouteOptions{})
	router.SetupEntityRoutes(api, "departments", departmentHandler, authRequired, router.RouteOptions{})
	router.SetupEntityRoutes(api, "designations", designationHandler, authRequired, router.RouteOptions{})
	router.SetupEntityRoutes(api, "users", userHandler, authRequired, router.RouteOptions{PrivateRead: true})
	router.SetupContactRoutes(api, contactHandler, submitHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	logger.Info("Server stopped")
}
