package user

import (
	"net/http"
	"time"

	"github.com/budgetbee/budgetbee/internal/rest"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Uid         string     `json:"uid"`
	Username    string     `json:"username"`
	DisplayName string     `json:"displayName"`
	Email       string     `json:"email"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{
		userService: userService,
	}
}

// CreateUser godoc
// @Summary Create a new user
// @Description Register a new identity and provision the default accounts and categories
// @Tags User
// @Accept json
// @Produce json
// @Param user body UserDTO true "User"
// @Success 201 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/user [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating user")

	var userDTO UserDTO
	if err := rest.DecodeJSON(r, &userDTO); err != nil {
		rest.BadRequest(w, "Invalid request body format", err)
		return
	}
	log.Tracef("Creating new user: %+v", userDTO)

	createdUser, err := h.userService.CreateUser(r.Context(), dtoToUser(userDTO))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Tracef("Created user: %+v", createdUser)

	rest.WriteJSON(w, http.StatusCreated, userToDTO(createdUser))
}

// CurrentUser godoc
// @Summary Get current user
// @Description Retrieve the identity of the current request
// @Tags User
// @Produce json
// @Success 200 {object} UserDTO
// @Failure 403 {object} rest.ErrorResponse "User not found"
// @Router /api/user/current [get]
// @Security XUserId
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting current user")

	currentUser, err := h.userService.GetCurrentUser(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, userToDTO(currentUser))
}

// UpdateUser godoc
// @Summary Update current user
// @Description Update the display name and email of the current user
// @Tags User
// @Accept json
// @Produce json
// @Param user body UserDTO true "User"
// @Success 200 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 403 {object} rest.ErrorResponse "User not found"
// @Router /api/user/current [put]
// @Security XUserId
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	log.Trace("Updating user")

	var userDTO UserDTO
	if err := rest.DecodeJSON(r, &userDTO); err != nil {
		rest.BadRequest(w, "Invalid request body format", err)
		return
	}

	updatedUser, err := h.userService.UpdateUser(r.Context(), dtoToUser(userDTO))
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	log.Debug("Updated user: ", updatedUser.Username)

	rest.WriteJSON(w, http.StatusOK, userToDTO(updatedUser))
}

// IsUsernameAvailable godoc
// @Summary Check username availability
// @Description Check if a username is available for registration
// @Tags User
// @Produce json
// @Param username query string true "Username to check"
// @Success 200 {object} object{available=bool}
// @Failure 400 {object} rest.ErrorResponse "Username is required"
// @Router /api/user/name-availability [get]
func (h *Handler) IsUsernameAvailable(w http.ResponseWriter, r *http.Request) {
	log.Trace("Checking if username is available")

	username := r.URL.Query().Get("username")
	if len(username) == 0 {
		rest.BadRequest(w, "Username is required", nil)
		return
	}

	isAvailable, err := h.userService.IsUsernameAvailable(r.Context(), username)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]bool{"available": isAvailable})
}

func userToDTO(user User) UserDTO {
	dto := UserDTO{
		Uid:         user.Uid,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}
	if !user.CreatedAt.IsZero() {
		createdAt := user.CreatedAt
		dto.CreatedAt = &createdAt
	}
	return dto
}

func dtoToUser(userDTO UserDTO) User {
	return User{
		Uid:         userDTO.Uid,
		Username:    userDTO.Username,
		DisplayName: userDTO.DisplayName,
		Email:       userDTO.Email,
	}
}
