package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/etczermerivil/Rgb-bnb/internal/domain"
)

type sessionUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
}

func newSessionUser(u domain.User) sessionUser {
	return sessionUser{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Username: u.Username}
}

type sessionResponse struct {
	User  sessionUser `json:"user"`
	Token string      `json:"token"`
}

func (h *Handlers) signup(w http.ResponseWriter, r *http.Request) {
	var in struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Username  string `json:"username"`
		Password  string `json:"password"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}

	errs := map[string]string{}
	if strings.TrimSpace(in.FirstName) == "" {
		errs["firstName"] = "First Name is required"
	}
	if strings.TrimSpace(in.LastName) == "" {
		errs["lastName"] = "Last Name is required"
	}
	if !strings.Contains(in.Email, "@") {
		errs["email"] = "Invalid email"
	}
	if strings.TrimSpace(in.Username) == "" {
		errs["username"] = "Username is required"
	}
	if len(in.Password) < 6 {
		errs["password"] = "Password must be 6 characters or more"
	}
	if len(errs) > 0 {
		writeError(w, domain.NewValidation(errs))
		return
	}

	hash, err := h.Auth.HashPassword(in.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	u, err := h.Users.CreateUser(r.Context(), domain.User{
		FirstName: in.FirstName, LastName: in.LastName,
		Email: in.Email, Username: in.Username, HashedPassword: hash,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := h.Auth.IssueToken(u.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{User: newSessionUser(u), Token: token})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Credential string `json:"credential"`
		Password   string `json:"password"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}

	errs := map[string]string{}
	if strings.TrimSpace(in.Credential) == "" {
		errs["credential"] = "Email or username is required"
	}
	if in.Password == "" {
		errs["password"] = "Password is required"
	}
	if len(errs) > 0 {
		writeError(w, domain.NewValidation(errs))
		return
	}

	u, err := h.Users.GetUserByCredential(r.Context(), in.Credential)
	var nf *domain.NotFoundError
	if errors.As(err, &nf) || (err == nil && !h.Auth.CheckPassword(u.HashedPassword, in.Password)) {
		writeJSON(w, http.StatusUnauthorized, errorBody{Message: "Invalid credentials"})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := h.Auth.IssueToken(u.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: newSessionUser(u), Token: token})
}

func (h *Handlers) currentUser(w http.ResponseWriter, r *http.Request) {
	id := requesterID(r)
	if id == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}
	u, err := h.Users.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": newSessionUser(u)})
}
