package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/platform/operator"
)

// OperatorServiceInterface defines the operator operations needed by AuthHandler
type OperatorServiceInterface interface {
	Register(ctx context.Context, email, password, fullName string) (*operator.Operator, error)
	Login(ctx context.Context, email, password string) (*operator.Operator, error)
}

// JWTServiceInterface defines the interface for JWT operations
type JWTServiceInterface interface {
	GenerateToken(operatorID uuid.UUID, email string) (string, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	operatorService OperatorServiceInterface
	jwtService      JWTServiceInterface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(operatorService OperatorServiceInterface, jwtService JWTServiceInterface) *AuthHandler {
	return &AuthHandler{
		operatorService: operatorService,
		jwtService:      jwtService,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token    string        `json:"token"`
	Operator *OperatorInfo `json:"operator"`
}

// OperatorInfo represents operator information (without sensitive data)
type OperatorInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// Register handles operator registration (POST /auth/register)
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" {
		respondError(w, "email is required", http.StatusBadRequest)
		return
	}

	if req.Password == "" {
		respondError(w, "password is required", http.StatusBadRequest)
		return
	}

	registered, err := h.operatorService.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, operator.ErrOperatorAlreadyExists) {
			respondError(w, "operator with this email already exists", http.StatusConflict)
			return
		}
		if errors.Is(err, operator.ErrPasswordTooShort) {
			respondError(w, "password must be at least 8 characters", http.StatusBadRequest)
			return
		}
		if errors.Is(err, operator.ErrInvalidEmail) {
			respondError(w, "invalid email address", http.StatusBadRequest)
			return
		}
		respondError(w, "failed to register operator", http.StatusInternalServerError)
		return
	}

	token, err := h.jwtService.GenerateToken(registered.ID, registered.Email)
	if err != nil {
		respondError(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, AuthResponse{
		Token: token,
		Operator: &OperatorInfo{
			ID:       registered.ID.String(),
			Email:    registered.Email,
			FullName: registered.FullName,
		},
	}, http.StatusCreated)
}

// Login handles operator login (POST /auth/login)
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" {
		respondError(w, "email is required", http.StatusBadRequest)
		return
	}

	if req.Password == "" {
		respondError(w, "password is required", http.StatusBadRequest)
		return
	}

	authenticated, err := h.operatorService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, operator.ErrInvalidPassword) {
			respondError(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		respondError(w, "failed to login", http.StatusInternalServerError)
		return
	}

	token, err := h.jwtService.GenerateToken(authenticated.ID, authenticated.Email)
	if err != nil {
		respondError(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, AuthResponse{
		Token: token,
		Operator: &OperatorInfo{
			ID:       authenticated.ID.String(),
			Email:    authenticated.Email,
			FullName: authenticated.FullName,
		},
	}, http.StatusOK)
}
