package httpapi

import (
	"errors"
	"net/http"

	"github.com/authgate/authgate"
	"github.com/authgate/authgate/middleware"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

const (
	msgGenericReset   = "If an account exists with this email, a password reset code has been sent."
	msgInternalError  = "Internal server error"
	msgInvalidCode    = "Invalid verification code"
	msgNotFound       = "User with this email does not exist"
	msgInvalidLogin   = "Invalid email or password"
	msgUnverifiedUser = "Please verify your email address before logging in"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "All fields (name, email, password) are required")
		return
	}

	user, err := s.engine.Register(requestContext(r), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authgate.ErrInvalidInput):
			s.writeError(w, http.StatusBadRequest, "All fields (name, email, password) are required")
		case errors.Is(err, authgate.ErrEmailTaken):
			s.writeError(w, http.StatusConflict, "User with this email already exists")
		case errors.Is(err, authgate.ErrNotifyFailed):
			s.writeError(w, http.StatusInternalServerError, "Failed to send verification email. Please try again.")
		default:
			s.internalError(w, r, "register", err)
		}
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully. Please check your email for the verification code.",
		"user":    user,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := s.engine.Login(requestContext(r), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authgate.ErrInvalidInput):
			s.writeError(w, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, authgate.ErrAccountUnverified):
			s.writeJSON(w, http.StatusUnauthorized, map[string]any{
				"error":                msgUnverifiedUser,
				"requiresVerification": true,
			})
		case errors.Is(err, authgate.ErrInvalidCredentials):
			s.writeError(w, http.StatusUnauthorized, msgInvalidLogin)
		default:
			s.internalError(w, r, "login", err)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   s.cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	s.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Email and verification code are required")
		return
	}

	user, err := s.engine.ConfirmEmailVerification(requestContext(r), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, authgate.ErrInvalidInput):
			s.writeError(w, http.StatusBadRequest, "Email and verification code are required")
		case errors.Is(err, authgate.ErrUserNotFound):
			s.writeError(w, http.StatusNotFound, msgNotFound)
		case errors.Is(err, authgate.ErrAlreadyVerified):
			s.writeError(w, http.StatusBadRequest, "Email is already verified")
		case errors.Is(err, authgate.ErrCodeInvalid):
			s.writeError(w, http.StatusBadRequest, msgInvalidCode)
		case errors.Is(err, authgate.ErrCodeExpired):
			s.writeError(w, http.StatusBadRequest, "Verification code has expired. Please register again.")
		default:
			s.internalError(w, r, "verify", err)
		}
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Email verified successfully",
		"user":    user,
	})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	if err := s.engine.RequestPasswordReset(requestContext(r), req.Email); err != nil {
		switch {
		case errors.Is(err, authgate.ErrInvalidInput):
			s.writeError(w, http.StatusBadRequest, "Email is required")
		case errors.Is(err, authgate.ErrNotifyFailed):
			s.writeError(w, http.StatusInternalServerError, "Failed to send password reset email. Please try again.")
		default:
			s.internalError(w, r, "forgot-password", err)
		}
		return
	}

	// Same body whether or not the account exists.
	s.writeJSON(w, http.StatusOK, map[string]string{"message": msgGenericReset})
}

func (s *Server) handleVerifyResetCode(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Email and code are required")
		return
	}

	if err := s.engine.CheckResetCode(requestContext(r), req.Email, req.Code); err != nil {
		s.writeResetCodeError(w, r, "verify-reset-code", err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Code verified successfully"})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Email, verification code, and new password are required")
		return
	}

	err := s.engine.CompleteReset(requestContext(r), req.Email, req.Code, req.NewPassword)
	if err != nil {
		if errors.Is(err, authgate.ErrPasswordPolicy) {
			s.writeError(w, http.StatusBadRequest, "Password must be at least 6 characters long")
			return
		}
		s.writeResetCodeError(w, r, "reset-password", err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.engine.User(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, authgate.ErrUserNotFound) {
			s.writeError(w, http.StatusNotFound, msgNotFound)
			return
		}
		s.internalError(w, r, "me", err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) writeResetCodeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, authgate.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, "Email and code are required")
	case errors.Is(err, authgate.ErrUserNotFound):
		s.writeError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, authgate.ErrCodeInvalid):
		s.writeError(w, http.StatusBadRequest, msgInvalidCode)
	case errors.Is(err, authgate.ErrCodeExpired):
		s.writeError(w, http.StatusBadRequest, "Verification code has expired. Please request a new one.")
	default:
		s.internalError(w, r, op, err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.Error("internal failure", "op", op, "path", r.URL.Path, "error", err)
	s.writeError(w, http.StatusInternalServerError, msgInternalError)
}
