package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/IlyasAtabaev731/expense-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/expense-tracker/internal/lib/jwt"
	"github.com/IlyasAtabaev731/expense-tracker/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ProfileImageURL string `json:"profileImageUrl"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	ID    string       `json:"id"`
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (s *APIServer) registerHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		fullName := strings.TrimSpace(req.FullName)
		if fullName == "" || email == "" || req.Password == "" {
			writeMessage(w, http.StatusBadRequest, msgAllFieldsRequired)
			return
		}

		passHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
		if err != nil {
			s.serverError(w, r, "Failed to hash password", err)
			return
		}

		user := &models.User{
			FullName:        fullName,
			Email:           email,
			PasswordHash:    string(passHash),
			ProfileImageURL: req.ProfileImageURL,
			CreatedAt:       s.now().UTC(),
		}
		if err := s.storage.SaveUser(r.Context(), user); err != nil {
			if errors.Is(err, storage.ErrUserExists) {
				writeMessage(w, http.StatusBadRequest, "Email already in use")
				return
			}
			s.serverError(w, r, "Failed to save user", err)
			return
		}

		s.logger.Info("Register new user", slog.String("id", user.ID))
		s.writeAuthResponse(w, r, http.StatusCreated, user)
	}
}

func (s *APIServer) loginHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || req.Password == "" {
			writeMessage(w, http.StatusBadRequest, msgAllFieldsRequired)
			return
		}

		user, err := s.storage.GetUserByEmail(r.Context(), email)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.serverError(w, r, "Failed to get user", err)
			return
		}
		if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid credentials")
			return
		}

		s.writeAuthResponse(w, r, http.StatusOK, user)
	}
}

func (s *APIServer) getUserHandler() identityHandler {
	return func(w http.ResponseWriter, r *http.Request, id models.Identity) {
		user, err := s.storage.GetUserByID(r.Context(), id.UserID)
		if errors.Is(err, storage.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			s.serverError(w, r, "Failed to get user", err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

func (s *APIServer) writeAuthResponse(w http.ResponseWriter, r *http.Request, status int, user *models.User) {
	token, err := jwt.NewToken(user, string(s.jwtSecret), s.config.JWT.TTL)
	if err != nil {
		s.serverError(w, r, "Failed to issue token", err)
		return
	}

	writeJSON(w, status, AuthResponse{ID: user.ID, User: user, Token: token})
}
