package handler

import (
	"github.com/gofiber/fiber/v2"

	"labpipe/internal/http/middleware"
	"labpipe/internal/model"
	"labpipe/internal/service"
)

type signupRequest struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	StaffRole string `json:"staff_role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Signup creates a lab member account and returns it with a session token.
func Signup(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signupRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "invalid request body")
		}

		user, token, err := svc.Signup(c.UserContext(), service.SignupInput{
			FullName:  req.FullName,
			Email:     req.Email,
			Password:  req.Password,
			StaffRole: req.StaffRole,
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(authResponse{User: user, Token: token})
	}
}

// Login verifies credentials and returns the account with a session token.
// The failure response has the same shape whether the email is unknown or
// the password is wrong.
func Login(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "invalid request body")
		}

		user, token, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(authResponse{User: user, Token: token})
	}
}

// Me returns the authenticated caller's profile.
func Me(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := middleware.UserID(c)
		if userID == "" {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid credentials")
		}

		user, err := svc.Profile(c.UserContext(), userID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(user)
	}
}
