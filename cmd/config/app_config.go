package config

import (
	"CanteenHub-Backend/internal/api/handlers"
	"CanteenHub-Backend/internal/api/routes"
	"CanteenHub-Backend/internal/middleware"
	"CanteenHub-Backend/internal/utils"
	"CanteenHub-Backend/internal/utils/storage"
	"CanteenHub-Backend/pkg/food"
	"CanteenHub-Backend/pkg/jwt"
	"CanteenHub-Backend/pkg/order"
	"CanteenHub-Backend/pkg/payment"
	"CanteenHub-Backend/pkg/user"
	"CanteenHub-Backend/pkg/wallet"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	walletRepository := wallet.NewWalletRepository(db)
	foodRepository := food.NewFoodRepository(db)
	orderRepository := order.NewOrderRepository(db)
	paymentRepository := payment.NewPaymentRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	walletService := wallet.NewWalletService(walletRepository)
	foodService := food.NewFoodService(foodRepository, s3)
	orderService := order.NewOrderService(orderRepository, foodRepository, userRepository, s3)
	paymentService := payment.NewPaymentService(paymentRepository, orderRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	walletHandler := handlers.NewWalletHandler(walletService, validator)
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	orderHandler := handlers.NewOrderHandler(orderService, validator)
	paymentHandler := handlers.NewPaymentHandler(paymentService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		WalletHandler:  walletHandler,
		FoodHandler:    foodHandler,
		OrderHandler:   orderHandler,
		PaymentHandler: paymentHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
