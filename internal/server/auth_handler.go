package server

import (
	"mime"
	"net/http"
	"strings"

	"github.com/jonathan/mindwise/internal/server/middleware"
	"github.com/jonathan/mindwise/internal/types"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

// Register handles user registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, validationError(err))
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, user)
}

// Login accepts a JSON body or an OAuth2 password form whose username field holds the email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := loginRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, validationError(err))
		return
	}

	user, err := h.userService.Login(r.Context(), req)
	if err != nil {
		if _, ok := err.(*ErrInvalidCredentials); ok {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		writeError(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusOK, user)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *types.User) {
	token, err := h.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, status, types.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

func loginRequest(r *http.Request) (*types.LoginRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, &ErrValidation{Message: "invalid form body"}
		}
		email := r.PostForm.Get("username")
		if email == "" {
			email = r.PostForm.Get("email")
		}
		return &types.LoginRequest{Email: strings.TrimSpace(email), Password: r.PostForm.Get("password")}, nil
	}

	var req types.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
