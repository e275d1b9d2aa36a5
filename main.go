package main

import (
	"fmt"
	"log"
	"os"

	"github.com/MohamedAmineBenGhouizia/real-estate/routes"
	"github.com/MohamedAmineBenGhouizia/real-estate/storage"
	"github.com/MohamedAmineBenGhouizia/real-estate/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	// Initialize services
	storage.InitializeDB()
	storage.InitializeCloudinary()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	// Minimal middleware - compression only
	app.Use(iris.Compression)

	// JWT Verifiers
	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	// Health check endpoint
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	// Routes
	auth := app.Party("/api/auth")
	{
		auth.Post("/register", routes.Register)
		auth.Post("/login", routes.Login)
		auth.Get("/profile", accessTokenVerifierMiddleware, routes.GetProfile)
		auth.Patch("/pushtoken", accessTokenVerifierMiddleware, routes.AlterPushToken)
	}

	properties := app.Party("/api/properties")
	{
		properties.Get("/", routes.GetProperties)
		properties.Get("/{id}", routes.GetProperty)
		properties.Get("/{id}/availability", routes.GetPropertyAvailability)
		properties.Post("/{id}/validate-stay", routes.ValidateStay)
	}

	reservations := app.Party("/api/reservations")
	{
		reservations.Post("/", accessTokenVerifierMiddleware, routes.CreateReservation)
		reservations.Get("/my", accessTokenVerifierMiddleware, routes.GetMyReservations)
		reservations.Post("/{id:uint}/request-modification", accessTokenVerifierMiddleware, routes.RequestModification)
	}

	invoices := app.Party("/api/invoices", accessTokenVerifierMiddleware)
	{
		invoices.Get("/{id:uint}", routes.GetInvoice)
		invoices.Get("/", utils.AdminOnlyMiddleware, routes.AdminListInvoices)
		invoices.Post("/", utils.AdminOnlyMiddleware, routes.AdminCreateInvoice)
		invoices.Put("/{id:uint}", utils.AdminOnlyMiddleware, routes.AdminUpdateInvoice)
		invoices.Delete("/{id:uint}", utils.AdminOnlyMiddleware, routes.AdminDeleteInvoice)
	}

	payments := app.Party("/api/payments")
	{
		payments.Post("/", accessTokenVerifierMiddleware, routes.CreatePayment)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", routes.AdminListUsers)
		admin.Get("/users/{id:uint}", routes.AdminGetUser)
		admin.Post("/users", routes.AdminCreateUser)
		admin.Put("/users/{id:uint}", routes.AdminUpdateUser)
		admin.Patch("/users/{id:uint}/role", routes.AdminChangeUserRole)
		admin.Delete("/users/{id:uint}", routes.AdminDeleteUser)
		admin.Post("/properties", routes.AdminCreateProperty)
		admin.Put("/properties/{id:uint}", routes.AdminUpdateProperty)
		admin.Delete("/properties/{id:uint}", routes.AdminDeleteProperty)
		admin.Get("/reservations", routes.AdminListReservations)
		admin.Patch("/reservations/{id:uint}/status", routes.AdminUpdateReservationStatus)
		admin.Post("/reservations/{id:uint}/approve-modification", routes.AdminApproveModification)
		admin.Post("/reservations/{id:uint}/reject-modification", routes.AdminRejectModification)
		admin.Get("/stats", routes.AdminStats)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
