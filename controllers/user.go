package controllers

import (
	"errors"
	"net/http"
	"strings"

	"carx-store/models"
	"carx-store/store"
	"carx-store/utils"
)

// UserController handles user-related requests
type UserController struct {
	Store        store.Store
	EmailService *utils.EmailService
}

// NewUserController creates a new UserController with EmailService
func NewUserController(s store.Store, emailService *utils.EmailService) *UserController {
	return &UserController{
		Store:        s,
		EmailService: emailService,
	}
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decodeJSON(r, &input); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid input")
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" || input.Password == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	if input.Password != input.ConfirmPassword {
		utils.ErrorResponse(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.ErrorResponse(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     models.RoleUser,
		Cart:     []models.CartItem{},
		Wishlist: []models.Product{},
		Orders:   []models.Order{},
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := uc.Store.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.ErrorResponse(w, http.StatusConflict, "User already exists")
			return
		}
		storeError(w, err, "User not found")
		return
	}

	token, err := utils.GenerateJWT(&user)
	if err != nil {
		utils.ErrorResponse(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	welcome := user.Public()
	sendAsync("welcome email", func() error { return uc.EmailService.SendWelcomeEmail(welcome) })

	utils.JSONResponse(w, http.StatusCreated, authResponse{Token: token, User: user.Public()})
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &creds); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	user, err := uc.Store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if errors.Is(err, store.ErrNotFound) || (err == nil && !utils.CheckPassword(user.Password, creds.Password)) {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		storeError(w, err, "User not found")
		return
	}
	if user.Blocked {
		utils.ErrorResponse(w, http.StatusForbidden, "Your account has been blocked")
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		utils.ErrorResponse(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	utils.JSONResponse(w, http.StatusOK, authResponse{Token: token, User: user.Public()})
}

// GetProfile retrieves the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user, ok := currentUser(ctx, w, r, uc.Store)
	if !ok {
		return
	}

	utils.JSONResponse(w, http.StatusOK, struct {
		models.User
		CartCount     int `json:"cartCount"`
		WishlistCount int `json:"wishlistCount"`
		OrderCount    int `json:"orderCount"`
	}{
		User:          user.Public(),
		CartCount:     len(user.Cart),
		WishlistCount: len(user.Wishlist),
		OrderCount:    len(user.Orders),
	})
}
