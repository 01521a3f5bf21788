package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/expenso/expenso/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Uid         string      `json:"uid"`
	Username    string      `json:"username"`
	DisplayName string      `json:"displayName"`
	Settings    SettingsDTO `json:"settings"`
}

type SettingsDTO struct {
	DisplayCurrency string `json:"displayCurrency"`
	WeekFirstDay    string `json:"weekFirstDay"`
	Theme           string `json:"theme"`
}

// Seeder populates default records (categories, payment methods) for a freshly created user.
type Seeder func(ctx context.Context, userId int) error

type Handler struct {
	userService Service
	seeders     []Seeder
}

func NewHandler(userService Service, seeders ...Seeder) *Handler {
	return &Handler{
		userService: userService,
		seeders:     seeders,
	}
}

// CreateUser godoc
// @Summary Create a new user
// @Description Register a new user in the system
// @Tags User
// @Accept json
// @Produce json
// @Param user body UserDTO true "User"
// @Success 201 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/user [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Creating user")

	var userDTO UserDTO
	if err := json.NewDecoder(r.Body).Decode(&userDTO); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}
	log.Tracef("Creating new user: %+v", userDTO)

	if len(userDTO.Username) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Username is required",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	createdUser, err := h.userService.CreateUser(r.Context(), dtoToUser(userDTO))
	if err != nil {
		if errors.Is(err, ErrUserDataInvalid) || errors.Is(err, ErrUsernameTaken) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: err.Error(),
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Tracef("Created user: %+v", createdUser)

	seedCtx := WithUser(r.Context(), createdUser)
	for _, seed := range h.seeders {
		if err := seed(seedCtx, createdUser.Id); err != nil {
			log.Warnf("failed to seed defaults for user %d: %v", createdUser.Id, err)
		}
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(userToDTO(&createdUser)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CurrentUser godoc
// @Summary Get current user
// @Description Retrieve the currently authenticated user's information
// @Tags User
// @Produce json
// @Success 200 {object} UserDTO
// @Failure 404 {string} string "User Not Found"
// @Router /api/user/current [get]
// @Security XUserId
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Getting current user")

	currentUser, err := h.userService.GetCurrentUser(r.Context())
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrNoUser) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(userToDTO(&currentUser)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateUser godoc
// @Summary Update current user
// @Description Update the currently authenticated user's display name and settings
// @Tags User
// @Accept json
// @Produce json
// @Param user body UserDTO true "User"
// @Success 200 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/user/current [put]
// @Security XUserId
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var userDTO UserDTO
	if err := json.NewDecoder(r.Body).Decode(&userDTO); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	updatedUser, err := h.userService.UpdateUser(r.Context(), dtoToUser(userDTO))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(userToDTO(&updatedUser)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetAvailableUsers godoc
// @Summary List users
// @Tags User
// @Produce json
// @Success 200 {array} UserDTO
// @Router /api/user [get]
func (h *Handler) GetAvailableUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	users, err := h.userService.GetAllUsers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	usersDTO := make([]UserDTO, 0, len(users))
	for _, u := range users {
		usersDTO = append(usersDTO, userToDTO(&u))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(usersDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// IsUsernameAvailable godoc
// @Summary Check username availability
// @Tags User
// @Produce json
// @Param username query string true "Username"
// @Success 200 {object} map[string]bool
// @Router /api/user/name-availability [get]
func (h *Handler) IsUsernameAvailable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "username query parameter is required", http.StatusBadRequest)
		return
	}

	available, err := h.userService.IsUsernameAvailable(r.Context(), username)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]bool{"available": available}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags User
// @Param userUid path string true "User UID"
// @Success 204
// @Router /api/user/{userUid} [delete]
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	uid := vars["userUid"]

	if err := h.userService.DeleteUser(r.Context(), uid); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func dtoToUser(dto UserDTO) User {
	return User{
		Uid:         dto.Uid,
		Username:    dto.Username,
		DisplayName: dto.DisplayName,
		Settings: Settings{
			DisplayCurrency: dto.Settings.DisplayCurrency,
			WeekFirstDay:    parseWeekday(dto.Settings.WeekFirstDay),
			Theme:           dto.Settings.Theme,
		},
	}
}

func userToDTO(u *User) UserDTO {
	return UserDTO{
		Uid:         u.Uid,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Settings: SettingsDTO{
			DisplayCurrency: u.Settings.DisplayCurrency,
			WeekFirstDay:    u.Settings.WeekFirstDay.String(),
			Theme:           u.Settings.Theme,
		},
	}
}

func parseWeekday(name string) time.Weekday {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == name {
			return d
		}
	}
	return time.Monday
}
