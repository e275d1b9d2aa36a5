package routes

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/MohamedAmineBenGhouizia/real-estate/models"
	"github.com/MohamedAmineBenGhouizia/real-estate/storage"
	"github.com/MohamedAmineBenGhouizia/real-estate/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB wires an in-memory database into the storage package so
// handlers run against it.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Reservation{},
		&models.Invoice{},
		&models.Notification{},
		&models.AuditLog{},
	)
	assert.NoError(t, err)

	storage.DB = db
	return db
}

// buildTestApp registers the real route tree with the real JWT verifier
// and middlewares.
func buildTestApp(t *testing.T) *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	// Login and registration issue token pairs; the refresh token write is
	// best-effort, so no live Redis is needed here.
	storage.InitializeRedis()

	auth := app.Party("/api/auth")
	{
		auth.Post("/register", Register)
		auth.Post("/login", Login)
		auth.Get("/profile", accessTokenVerifierMiddleware, GetProfile)
		auth.Patch("/pushtoken", accessTokenVerifierMiddleware, AlterPushToken)
	}

	properties := app.Party("/api/properties")
	{
		properties.Get("/", GetProperties)
		properties.Get("/{id}", GetProperty)
		properties.Get("/{id}/availability", GetPropertyAvailability)
		properties.Post("/{id}/validate-stay", ValidateStay)
	}

	reservations := app.Party("/api/reservations")
	{
		reservations.Post("/", accessTokenVerifierMiddleware, CreateReservation)
		reservations.Get("/my", accessTokenVerifierMiddleware, GetMyReservations)
		reservations.Post("/{id:uint}/request-modification", accessTokenVerifierMiddleware, RequestModification)
	}

	invoices := app.Party("/api/invoices", accessTokenVerifierMiddleware)
	{
		invoices.Get("/{id:uint}", GetInvoice)
		invoices.Get("/", utils.AdminOnlyMiddleware, AdminListInvoices)
		invoices.Post("/", utils.AdminOnlyMiddleware, AdminCreateInvoice)
		invoices.Put("/{id:uint}", utils.AdminOnlyMiddleware, AdminUpdateInvoice)
		invoices.Delete("/{id:uint}", utils.AdminOnlyMiddleware, AdminDeleteInvoice)
	}

	payments := app.Party("/api/payments")
	{
		payments.Post("/", accessTokenVerifierMiddleware, CreatePayment)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", AdminListUsers)
		admin.Get("/users/{id:uint}", AdminGetUser)
		admin.Post("/users", AdminCreateUser)
		admin.Put("/users/{id:uint}", AdminUpdateUser)
		admin.Patch("/users/{id:uint}/role", AdminChangeUserRole)
		admin.Delete("/users/{id:uint}", AdminDeleteUser)
		admin.Post("/properties", AdminCreateProperty)
		admin.Put("/properties/{id:uint}", AdminUpdateProperty)
		admin.Delete("/properties/{id:uint}", AdminDeleteProperty)
		admin.Get("/reservations", AdminListReservations)
		admin.Patch("/reservations/{id:uint}/status", AdminUpdateReservationStatus)
		admin.Post("/reservations/{id:uint}/approve-modification", AdminApproveModification)
		admin.Post("/reservations/{id:uint}/reject-modification", AdminRejectModification)
		admin.Get("/stats", AdminStats)
	}

	err := app.Build()
	assert.NoError(t, err)
	return app
}

// signTestToken returns a signed access token for the given user.
func signTestToken(id uint, role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), time.Hour)
	token, _ := signer.Sign(utils.AccessToken{ID: id, Role: role})
	return string(token)
}

func createTestUser(t *testing.T, db *gorm.DB, role string) models.User {
	user := models.User{
		FirstName: "Test",
		LastName:  role,
		Email:     role + "-" + time.Now().Format("150405.000000000") + "@example.com",
		Password:  "not-a-real-hash",
		Role:      role,
	}
	assert.NoError(t, db.Create(&user).Error)
	return user
}

func createTestProperty(t *testing.T, db *gorm.DB, price float64) models.Property {
	property := models.Property{
		Title:    "Seaside Villa",
		Address:  "1 Shore Road",
		Price:    price,
		Type:     "Villa",
		Status:   "available",
		Bedrooms: 3,
	}
	assert.NoError(t, db.Create(&property).Error)
	return property
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(app *iris.Application, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func uintPath(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
