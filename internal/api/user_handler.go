package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/itomysh95/task-manager-project/internal/api/middleware"
	"github.com/itomysh95/task-manager-project/internal/api/shared"
	"github.com/itomysh95/task-manager-project/internal/service"
)

// maxAvatarUploadBytes bounds how much of an avatar upload is read from the
// wire. Slightly above the stored 1MB limit so the service can tell an
// oversized file apart from a truncated one.
const maxAvatarUploadBytes = 1_000_000 + 64*1024

// UserHandler handles profile, session and avatar operations for the
// authenticated user.
type UserHandler struct {
	userService   *service.UserService
	avatarService *service.AvatarService
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService *service.UserService, avatarService *service.AvatarService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		avatarService: avatarService,
	}
}

// GetMe handles GET /users/me.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Please authenticate")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// UpdateMe handles PATCH /users/me. Updates naming any field outside
// {name,email,password,age} are rejected whole; no partial application.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Please authenticate")
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSONFields(r, &req, userUpdateAllowedFields); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid updates")
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), user, service.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// DeleteMe handles DELETE /users/me. Account deletion cascades to every
// owned task; the farewell notification is fire-and-forget.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Please authenticate")
		return
	}

	if err := h.userService.DeleteAccount(r.Context(), user); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to delete account", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Logout handles POST /users/logout. Exactly the presented token is
// revoked; other sessions stay logged in.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	token, tokenOK := middleware.GetToken(r)
	if !ok || !tokenOK {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Please authenticate")
		return
	}

	if err := h.userService.Logout(r.Context(), user.ID, token); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to logout", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "logged out"})
}

// LogoutAll handles POST /users/logoutAll, revoking every session.
func (h *UserHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Please authenticate")
		return
	}

	if err := h.userService.LogoutAll(r.Context(), user.ID); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to logout", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "all sessions logged out"})
}

// UploadAvatar handles POST /users/me/avatar. Accepts a multipart form with
// an "avatar" file, capped at 1MB before any processing.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Please authenticate")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarUploadBytes)

	file, header, err := r.FormFile("avatar")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Please upload an avatar file")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Failed to read avatar file")
		return
	}

	if err := h.avatarService.Upload(r.Context(), user.ID, header.Filename, data); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "avatar uploaded"})
}

// DeleteAvatar handles DELETE /users/me/avatar.
func (h *UserHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Please authenticate")
		return
	}

	if err := h.avatarService.Delete(r.Context(), user.ID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "avatar deleted"})
}

// GetAvatar handles GET /users/{id}/avatar. Public: anyone can fetch a
// user's avatar by id; a missing user and a missing avatar are both 404.
func (h *UserHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Avatar not found")
		return
	}

	avatar, err := h.avatarService.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Avatar not found")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(avatar); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to write avatar", err)
	}
}
