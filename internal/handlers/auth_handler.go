package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"culvana/internal/middleware"
	"culvana/internal/services"
)

// AuthHandler handles HTTP requests for signup, verification, login, and
// profile maintenance.
type AuthHandler struct {
	registration *services.RegistrationService
	auth         *services.AuthService
	tokens       *services.TokenService
	validate     *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(registration *services.RegistrationService, auth *services.AuthService, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{
		registration: registration,
		auth:         auth,
		tokens:       tokens,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/resend-otp", h.HandleResendOTP)
	authRoutes.Post("/verify-signup", h.HandleVerifySignup)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/update-user", h.HandleUpdateUser)
	authRoutes.Get("/me", middleware.AuthRequired(h.tokens), h.HandleMe)
}

// SignupRequest represents the request body for signup.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleSignup starts a registration and dispatches a verification code.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing signup request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	if err := h.registration.Signup(req.Email, req.Password); err != nil {
		log.Printf("Error processing signup for %s: %v", req.Email, err)
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Verification code sent successfully",
		"email":   req.Email,
	})
}

// ResendOTPRequest represents the request body for an OTP resend.
type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleResendOTP issues a fresh verification code for a pending signup.
func (h *AuthHandler) HandleResendOTP(c *fiber.Ctx) error {
	var req ResendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing resend request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	if err := h.registration.ResendOTP(req.Email); err != nil {
		log.Printf("Error resending code for %s: %v", req.Email, err)
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "New verification code sent successfully",
		"email":   req.Email,
	})
}

// VerifySignupRequest represents the request body for signup verification.
type VerifySignupRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

// HandleVerifySignup checks the submitted code and, on success, creates
// the account and returns a session token.
func (h *AuthHandler) HandleVerifySignup(c *fiber.Ctx) error {
	var req VerifySignupRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing verify request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	token, user, err := h.registration.VerifySignup(req.Email, req.OTP)
	if err != nil {
		log.Printf("Error verifying signup for %s: %v", req.Email, err)
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Email verified successfully",
		"token":   token,
		"user": fiber.Map{
			"email":    user.Email,
			"verified": user.Verified,
		},
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

// HandleLogin authenticates a user and issues a session token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	token, user, err := h.auth.Login(req.Email, req.Password, req.RememberMe)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Login successful",
		"token":   token,
		"user": fiber.Map{
			"email":    user.Email,
			"verified": user.Verified,
		},
	})
}

// UpdateUserRequest represents the request body for a profile update. All
// profile fields are required.
type UpdateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	CompanyName string `json:"companyName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Country     string `json:"country" validate:"required"`
}

// HandleUpdateUser completes a user's profile.
func (h *AuthHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update user request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user, err := h.auth.UpdateProfile(req.Email, services.ProfileUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CompanyName: req.CompanyName,
		PhoneNumber: req.PhoneNumber,
		Country:     req.Country,
	})
	if err != nil {
		log.Printf("Error updating profile for %s: %v", req.Email, err)
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "User information updated successfully",
		"user": fiber.Map{
			"email":        user.Email,
			"first_name":   user.FirstName,
			"last_name":    user.LastName,
			"company_name": user.CompanyName,
			"phone_number": user.PhoneNumber,
			"country":      user.Country,
		},
	})
}

// HandleMe echoes the identity carried by a valid session token. It sits
// behind the auth middleware, so reaching it means the token verified.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "success",
		"user_id": c.Locals("user_id"),
	})
}
