package api

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/rqa-security/guardhouse/datastore"
)

// BcryptCost is the cost of the password hashes written by the service.
const BcryptCost = 10

// adminRole is the role of every dashboard user.
const adminRole = "admin"

var errInvalidCredentials = &requestError{status: http.StatusUnauthorized, msg: "Invalid email or password"}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	User    userView `json:"user"`
}

// HashPassword returns the bcrypt hash of password at BcryptCost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		s.fail(w, r, badRequest("Email and password are required"))
		return
	}

	user, err := s.store.Users().ByEmail(r.Context(), req.Email)
	if errors.Is(err, datastore.ErrUserNotFound) {
		s.lggr.Warnw("Login for unknown email", "requestID", requestIDFrom(r.Context()))
		s.fail(w, r, errInvalidCredentials)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if !s.checkPassword(r, user, req.Password) {
		s.lggr.Warnw("Login with wrong password", "requestID", requestIDFrom(r.Context()), "userID", user.UserID)
		s.fail(w, r, errInvalidCredentials)
		return
	}

	name, _, _ := strings.Cut(user.Email, "@")
	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Message: "Login successful",
		User: userView{
			ID:    user.UserID,
			Email: user.Email,
			Name:  name,
			Role:  adminRole,
		},
	})
}

// checkPassword compares password with the stored one. A matching plaintext password
// is replaced by its bcrypt hash; a failure to do so does not fail the login.
func (s *Server) checkPassword(r *http.Request, user datastore.User, password string) bool {
	if user.HasHashedPassword() {
		return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
	}

	if subtle.ConstantTimeCompare([]byte(user.PasswordHash), []byte(password)) != 1 {
		return false
	}

	hash, err := HashPassword(password)
	if err == nil {
		err = s.store.Users().UpdatePasswordHash(r.Context(), user.UserID, hash)
	}
	if err != nil {
		s.lggr.Warnw("Failed to rehash plaintext password", "userID", user.UserID, "err", err)
	} else {
		s.lggr.Infow("Rehashed plaintext password", "userID", user.UserID)
	}

	return true
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.lggr.Errorw("Health check failed", "requestID", requestIDFrom(r.Context()), "err", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "Database unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "Server is running"})
}
