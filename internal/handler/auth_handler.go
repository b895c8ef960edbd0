package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"storefront-service/internal/model"
	"storefront-service/internal/repository"
	"storefront-service/pkg/jwtutil"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"
)

// Login authenticates a customer by email and password and issues a JWT
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Email == "" {
		prometheus.RecordAuthError("missing_email")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}

	store := repository.Active()

	defer prometheus.TrackDBOperation("login")(time.Now())
	customer, err := store.Login(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("Login for unknown email", zap.String("email", req.Email))
			prometheus.RecordAuthError("user_not_found")
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		log.Error("Login lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(customer.Email, customer.ID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("Customer logged in",
		zap.String("email", customer.Email),
		zap.Uint("customer_id", customer.ID))

	return c.JSON(http.StatusOK, echo.Map{
		"token":    token,
		"customer": customer,
	})
}

// Register creates a new customer account
func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		City      string `json:"city"`
		Password  string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Email == "" || req.FirstName == "" || req.LastName == "" {
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first name, last name and email are required"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	customer := model.Customer{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		City:         req.City,
		PasswordHash: string(hashedPassword),
	}

	store := repository.Active()

	defer prometheus.TrackDBOperation("register")(time.Now())
	if err := store.Register(c.Request().Context(), &customer); err != nil {
		// Uniqueness lives in the database; a duplicate surfaces here as a
		// distinct conflict rather than a generic failure.
		if errors.Is(err, repository.ErrEmailTaken) {
			log.Warn("Email already registered", zap.String("email", req.Email))
			prometheus.RecordAuthError("email_already_exists")
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		log.Error("Failed to register customer", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	log.Info("Customer registered",
		zap.String("email", customer.Email),
		zap.Uint("customer_id", customer.ID))

	return c.JSON(http.StatusCreated, echo.Map{"message": "registration successful"})
}
