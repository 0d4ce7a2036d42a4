package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/md-rashed-zaman/fuelstation/libs/auth"
	"github.com/md-rashed-zaman/fuelstation/libs/docstore"
	"github.com/md-rashed-zaman/fuelstation/libs/httpx"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/model"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

type fuelUserPayload struct {
	FirstName validation.Field[string] `json:"firstName"`
	LastName  validation.Field[string] `json:"lastName"`
	Type      validation.Field[string] `json:"type"`
	Phone     validation.Field[string] `json:"phone"`
	Email     validation.Field[string] `json:"email"`
	Password  validation.Field[string] `json:"password"`
	Address   validation.Field[string] `json:"address"`
}

func (p *fuelUserPayload) validate(partial bool) validation.Violations {
	var v validation.Violations
	validation.Required(&v, partial, "firstName", p.FirstName, validation.Length(2, 50))
	validation.Required(&v, partial, "lastName", p.LastName, validation.Length(2, 50))
	validation.Required(&v, partial, "type", p.Type, validation.OneOf(model.UserTypes...))
	validation.Required(&v, partial, "phone", p.Phone, validation.Phone())
	validation.Required(&v, partial, "email", p.Email, validation.Email())
	validation.Optional(&v, "password", p.Password, validation.MinLength(6))
	validation.Required(&v, partial, "address", p.Address, validation.Length(5, 200))
	return v
}

func (p *fuelUserPayload) build(id string, now time.Time) (model.FuelUser, error) {
	u := model.FuelUser{
		ID:        id,
		FirstName: p.FirstName.Value,
		LastName:  p.LastName.Value,
		Type:      p.Type.Value,
		Phone:     p.Phone.Value,
		Email:     strings.ToLower(p.Email.Value),
		Address:   p.Address.Value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Password.Present() {
		hash, err := hashPassword(p.Password.Value)
		if err != nil {
			return model.FuelUser{}, err
		}
		u.PasswordHash = hash
	}
	return u, nil
}

func (p *fuelUserPayload) patch(now time.Time) (docstore.Patch, error) {
	patch := docstore.Patch{"updatedAt": now}
	set(patch, "firstName", p.FirstName)
	set(patch, "lastName", p.LastName)
	set(patch, "type", p.Type)
	set(patch, "phone", p.Phone)
	if p.Email.Present() {
		patch["email"] = strings.ToLower(p.Email.Value)
	}
	set(patch, "address", p.Address)
	if p.Password.Present() {
		hash, err := hashPassword(p.Password.Value)
		if err != nil {
			return nil, err
		}
		patch["passwordHash"] = hash
	}
	return patch, nil
}

func (a *API) newFuelUsers() *resource[model.FuelUser, *fuelUserPayload] {
	return &resource[model.FuelUser, *fuelUserPayload]{
		entity:     "User",
		noun:       "user",
		plural:     "users",
		conflict:   "Email already in use",
		store:      a.stores.FuelUsers,
		newPayload: func() *fuelUserPayload { return &fuelUserPayload{} },
		logger:     a.logger,
		now:        a.now,
		heading:    a.settings.Name,
		present: func(_ context.Context, u model.FuelUser) (any, error) {
			return u.Public(), nil
		},
		presentAll: func(_ context.Context, users []model.FuelUser) (any, error) {
			out := make([]model.PublicFuelUser, 0, len(users))
			for _, u := range users {
				out = append(out, u.Public())
			}
			return out, nil
		},
		report: reportLayout[model.FuelUser]{
			title:    "User Report",
			filename: "user_report",
			columns:  []string{"First Name", "Last Name", "Type", "Phone", "Email", "Address"},
			rows: func(_ context.Context, docs []model.FuelUser) ([][]string, error) {
				rows := make([][]string, 0, len(docs))
				for _, d := range docs {
					rows = append(rows, []string{d.FirstName, d.LastName, d.Type, d.Phone, d.Email, d.Address})
				}
				return rows, nil
			},
		},
	}
}

type loginRequest struct {
	Email    validation.Field[string] `json:"email"`
	Password validation.Field[string] `json:"password"`
}

type loginResponse struct {
	User  model.PublicFuelUser `json:"user"`
	Token string               `json:"token"`
}

// login answers unknown emails and wrong passwords identically.
func (a *API) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var v validation.Violations
	validation.Required(&v, false, "email", req.Email, validation.NotBlank())
	validation.Required(&v, false, "password", req.Password, validation.NotBlank())
	if !v.Empty() {
		validationFailed(w, v)
		return
	}

	users, err := a.stores.FuelUsers.Find(ctx, docstore.Filter{"email": strings.ToLower(req.Email.Value)})
	if err != nil {
		a.loginFailed(w, r, err)
		return
	}
	if len(users) == 0 || verifyPassword(users[0].PasswordHash, req.Password.Value) != nil {
		a.logger.Info("login rejected", "request_id", httpx.RequestIDFromContext(ctx))
		httpx.Error(w, http.StatusUnauthorized, "Authentication failed")
		return
	}

	user := users[0]
	token, err := auth.SignHS256(auth.NewClaims(user.ID, user.Type, a.now(), a.auth.TTL), a.auth.Secret)
	if err != nil {
		a.loginFailed(w, r, fmt.Errorf("sign token: %w", err))
		return
	}
	a.logger.Info("login succeeded", "user_id", user.ID, "type", user.Type)
	httpx.JSON(w, http.StatusOK, loginResponse{User: user.Public(), Token: token})
}

func (a *API) loginFailed(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Error("login failed", "err", err, "request_id", httpx.RequestIDFromContext(r.Context()))
	httpx.Error(w, http.StatusInternalServerError, "Error logging in")
}

func hashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(hash string, raw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
}
