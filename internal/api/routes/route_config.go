package routes

import (
	"CanteenHub-Backend/domain"
	"CanteenHub-Backend/internal/api/handlers"
	"CanteenHub-Backend/internal/middleware"
	"CanteenHub-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	WalletHandler  handlers.WalletHandler
	FoodHandler    handlers.FoodHandler
	OrderHandler   handlers.OrderHandler
	PaymentHandler handlers.PaymentHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Food()
	c.Order()
	c.Payment()
	c.GuestRoute()
}

func (c *Config) User() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	adminOnly := c.Middleware.RoleMiddleware(domain.RoleAdmin)
	studentOnly := c.Middleware.RoleMiddleware(domain.RoleStudent)

	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/logout", auth, c.UserHandler.Logout)
		user.Post("/refreshToken", c.UserHandler.RefreshToken)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
		user.Get("/me", auth, c.UserHandler.Me)
		user.Patch("/update", auth, c.UserHandler.UpdateUser)

		user.Post("/orderFood", auth, studentOnly, c.OrderHandler.OrderFood)
		user.Post("/cancelOrder", auth, c.OrderHandler.CancelOrder)

		user.Post("/addMoney", auth, c.WalletHandler.AddMoney)
		user.Post("/deductFromWallet", auth, c.WalletHandler.DeductFromWallet)
		user.Get("/wallet", auth, c.WalletHandler.GetWallet)

		user.Post("/addFriend", auth, c.UserHandler.AddFriend)
		user.Get("/getFriends", auth, c.UserHandler.GetFriends)

		user.Post("/updateRole", auth, adminOnly, c.UserHandler.UpdateRole)
		user.Post("/toggleBlockUser", auth, adminOnly, c.UserHandler.ToggleBlockUser)
		user.Post("/deleteUser", auth, adminOnly, c.UserHandler.DeleteUser)
	}
}

func (c *Config) Food() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	staffOrAdmin := c.Middleware.RoleMiddleware(domain.RoleStaff, domain.RoleAdmin)

	food := c.App.Group("/api/v1/food", auth)
	{
		food.Post("/addItem", staffOrAdmin, c.FoodHandler.AddItem)
		food.Post("/updateItem", staffOrAdmin, c.FoodHandler.UpdateItem)
		food.Post("/removeItem", staffOrAdmin, c.FoodHandler.RemoveItem)
		food.Post("/getCategoryItems", c.FoodHandler.GetCategoryItems)
		food.Get("/getAllFoods", c.FoodHandler.GetAllFoods)
	}
}

func (c *Config) Order() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	staffOrAdmin := c.Middleware.RoleMiddleware(domain.RoleStaff, domain.RoleAdmin)
	adminOnly := c.Middleware.RoleMiddleware(domain.RoleAdmin)

	order := c.App.Group("/api/v1/order", auth)
	{
		order.Post("/getOrderList", staffOrAdmin, c.OrderHandler.GetOrderList)
		order.Post("/getUserOrderList", c.OrderHandler.GetUserOrderList)
		order.Post("/updateStatus", staffOrAdmin, c.OrderHandler.UpdateOrderStatus)
		order.Post("/attachReceipt", staffOrAdmin, c.OrderHandler.AttachReceipt)
		order.Post("/scanReceipt", staffOrAdmin, c.OrderHandler.ScanReceipt)
		order.Get("/getStats", adminOnly, c.OrderHandler.GetOrderStats)
	}
}

func (c *Config) Payment() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	c.App.Post("/api/v1/payment/checkout", auth, c.PaymentHandler.Checkout)
	c.App.Post("/webhook/midtrans", c.PaymentHandler.MidtransWebhookHandler)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
