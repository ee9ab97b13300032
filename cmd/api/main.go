package main

import (
	"context"
	"log"
	"os"
	"time"

	"quanan/internal/attribute"
	"quanan/internal/auth"
	"quanan/internal/cache"
	"quanan/internal/cart"
	"quanan/internal/catalog"
	"quanan/internal/category"
	"quanan/internal/db"
	"quanan/internal/middleware"
	"quanan/internal/order"
	"quanan/internal/promo"
	"quanan/internal/rating"
	"quanan/internal/restaurant"
	"quanan/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── CACHE ─────────────────────────
	var itemCache catalog.Cache
	redisCache, err := cache.NewRedis(context.Background())
	if err != nil {
		log.Println("⚠️ Redis unavailable, item cache disabled:", err)
	} else {
		defer redisCache.Close()
		itemCache = redisCache
	}

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.NewRateLimiter(20, 40).Limit())

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── REPOS ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	restaurantRepo := restaurant.NewPostgresRepository(pgDB)
	categoryRepo := category.NewPostgresRepository(pgDB)
	attributeRepo := attribute.NewPostgresRepository(pgDB)
	catalogRepo := catalog.NewPostgresRepository(pgDB)
	cartRepo := cart.NewPostgresRepository(pgDB)
	orderRepo := order.NewPostgresRepository(pgDB)
	ratingRepo := rating.NewPostgresRepository(pgDB)
	promoRepo := promo.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	authService := auth.NewService(userRepo)
	restaurantService := restaurant.NewService(restaurantRepo, r2Client)
	categoryService := category.NewService(categoryRepo)
	normalizer := attribute.NewNormalizer(attributeRepo)

	catalogService := catalog.NewService(
		catalogRepo,
		normalizer,
		restaurantService,
		categoryRepo,
		itemCache,
	)

	cartService := cart.NewService(cartRepo, catalogService)
	promoService := promo.NewService(promoRepo)

	orderService := order.NewService(
		orderRepo,
		authService,
		restaurantService,
		catalogService,
		promoService,
	)

	ratingService := rating.NewService(
		ratingRepo,
		catalogService,
		restaurantService,
		authService,
	)

	// ───────────────────────── HANDLERS ─────────────────────────
	authHandler := auth.NewHandler(authService)
	restaurantHandler := restaurant.NewHandler(restaurantService)
	categoryHandler := category.NewHandler(categoryService)
	foodHandler := catalog.NewHandler(catalogService, catalog.KindFood)
	drinkHandler := catalog.NewHandler(catalogService, catalog.KindDrink)
	cartHandler := cart.NewHandler(cartService)
	orderHandler := order.NewHandler(orderService)
	ratingHandler := rating.NewHandler(ratingService)
	promoHandler := promo.NewHandler(promoService)

	// ───────────────────────── AUTH ROUTES ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)

		protected := authGroup.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", authHandler.Profile)
		}
	}

	// ───────────────────────── RESTAURANT ROUTES ─────────────────────────
	restaurants := r.Group("/restaurants")
	{
		restaurants.GET("", restaurantHandler.ListRestaurants)
		restaurants.GET("/:id", restaurantHandler.GetRestaurant)

		owner := restaurants.Group("")
		owner.Use(
			middleware.AuthMiddleware(),
			middleware.RequireRole(auth.RoleRestaurant, auth.RoleAdmin),
		)
		{
			owner.POST("", restaurantHandler.CreateRestaurant)
			owner.POST("/:id/logo", restaurantHandler.UploadLogo)
		}
	}

	// ───────────────────────── CATEGORY ROUTES ─────────────────────────
	categories := r.Group("/categories")
	{
		categories.GET("", categoryHandler.ListCategories)
		categories.GET("/:id", categoryHandler.GetCategory)

		admin := categories.Group("")
		admin.Use(
			middleware.AuthMiddleware(),
			middleware.RequireRole(auth.RoleAdmin),
		)
		{
			admin.POST("", categoryHandler.CreateCategory)
		}
	}

	// ───────────────────────── CATALOG ROUTES ─────────────────────────
	registerItemRoutes(r, "/foods", foodHandler)
	registerItemRoutes(r, "/drinks", drinkHandler)

	// ───────────────────────── CART ROUTES ─────────────────────────
	carts := r.Group("/cart")
	carts.Use(middleware.AuthMiddleware())
	{
		carts.POST("/add", cartHandler.AddToCart)
		carts.PATCH("/increment", cartHandler.IncrementQuantity)
		carts.PATCH("/decrement", cartHandler.DecrementQuantity)
		carts.DELETE("/lines/:id", cartHandler.RemoveLine)
		carts.DELETE("", cartHandler.Clear)
		carts.GET("", cartHandler.GetCart)
		carts.GET("/count", cartHandler.Count)
	}

	// ───────────────────────── ORDER ROUTES ─────────────────────────
	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.POST("", orderHandler.PlaceOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)

		staff := orders.Group("")
		staff.Use(middleware.RequireRole(auth.RoleRestaurant, auth.RoleAdmin))
		{
			staff.PATCH("/:id/status", orderHandler.UpdateStatus)
		}
	}

	// ───────────────────────── RATING ROUTES ─────────────────────────
	ratings := r.Group("/ratings")
	ratings.Use(middleware.AuthMiddleware())
	{
		ratings.POST("", ratingHandler.SubmitRating)
		ratings.GET("", ratingHandler.CheckUserRating)
		ratings.DELETE("/:id", ratingHandler.DeleteRating)
	}

	// ───────────────────────── PROMO ROUTES ─────────────────────────
	promos := r.Group("/promos")
	promos.Use(middleware.AuthMiddleware())
	{
		promos.GET("/:code", promoHandler.ResolvePromo)

		admin := promos.Group("")
		admin.Use(middleware.RequireRole(auth.RoleAdmin))
		{
			admin.POST("", promoHandler.CreatePromo)
			admin.GET("", promoHandler.ListPromos)
			admin.PATCH("/:id/disable", promoHandler.DisablePromo)
		}
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 API listening on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

// registerItemRoutes mounts the same catalog surface under a kind-specific
// prefix. Reads are public; writes need the restaurant or admin role.
func registerItemRoutes(r *gin.Engine, prefix string, handler *catalog.Handler) {
	group := r.Group(prefix)
	{
		group.GET("/:id", handler.GetItem)
		group.GET("", handler.ListByCategoryAndCode)
		group.GET("/search", handler.SearchItems)
		group.GET("/restaurant/:restaurantId", handler.ListByRestaurant)

		staff := group.Group("")
		staff.Use(
			middleware.AuthMiddleware(),
			middleware.RequireRole(auth.RoleRestaurant, auth.RoleAdmin),
		)
		{
			staff.POST("", handler.CreateItem)
			staff.PUT("/:id", handler.UpdateItem)
			staff.DELETE("/:id", handler.DeleteItem)
			staff.PATCH("/:id/availability", handler.SetAvailability)
		}
	}
}
