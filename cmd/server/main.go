package main

import (
	"context"
	"log"
	"time"

	"shop-service/internal/config"
	httpctrl "shop-service/internal/controllers/http"
	mmysql "shop-service/internal/infra/mysql"
	"shop-service/internal/infra/payment"
	"shop-service/internal/infra/rabbitmq"
	"shop-service/internal/metrics"
	mysqlrepo "shop-service/internal/repository/mysql"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := mmysql.NewMySQL(cfg.MySQL)
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	userRepo := mysqlrepo.NewUserRepository(db)
	productRepo := mysqlrepo.NewProductRepository(db)
	categoryRepo := mysqlrepo.NewCategoryRepository(db)
	brandRepo := mysqlrepo.NewBrandRepository(db)
	couponRepo := mysqlrepo.NewCouponRepository(db)
	reviewRepo := mysqlrepo.NewReviewRepository(db)
	cartRepo := mysqlrepo.NewCartRepository(db)
	orderRepo := mysqlrepo.NewOrderRepository(db)

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	checkoutClient := payment.NewClient(cfg.Payment.APIBase, cfg.Payment.SecretKey, 10*time.Second)

	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	brandService := services.NewBrandService(brandRepo)
	couponService := services.NewCouponService(couponRepo)
	reviewService := services.NewReviewService(reviewRepo, productRepo)
	cartService := services.NewCartService(cartRepo, productRepo, couponService)
	orderService := services.NewOrderService(orderRepo, cartRepo, userRepo, checkoutClient, publisher, cfg.Payment)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		DB:           0,
		PoolSize:     100,
		MinIdleConns: 10,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	productService.SetRedisClient(redisClient)

	m := metrics.NewServerMetrics("api")
	orderService.SetMetrics(m)

	ctx := context.Background()
	if err := couponService.LoadPrefilter(ctx); err != nil {
		log.Printf("coupon prefilter load failed, lookups fall through to the database: %v", err)
	}

	handler := httpctrl.NewHandler(
		authService,
		userService,
		productService,
		categoryService,
		brandService,
		couponService,
		reviewService,
		cartService,
		orderService,
	)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r, m)

	log.Printf("Starting shop service on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
