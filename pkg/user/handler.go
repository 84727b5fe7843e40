package user

import (
	"context"
	"net/http"

	"github.com/eventhub-br/eventhub/internal/handler"
	"github.com/eventhub-br/eventhub/pkg/audit"
	"github.com/eventhub-br/eventhub/pkg/model"
	"github.com/eventhub-br/eventhub/pkg/token"

	"github.com/gin-gonic/gin"
)

func NewHandler(userService userService, tokenService tokenService, recorder auditRecorder) Handler {
	return Handler{
		userService,
		tokenService,
		recorder,
	}
}

type Handler struct {
	userService  userService
	tokenService tokenService
	recorder     auditRecorder
}

type userService interface {
	SignUp(ctx context.Context, input SignUpInput) (*model.User, error)
	FindById(ctx context.Context, id uint) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User, input UpdateProfileInput) (*model.User, error)
	Deactivate(ctx context.Context, id uint) error
}

type tokenService interface {
	IssueToken(user *model.User) (*token.Tokens, error)
}

type auditRecorder interface {
	Record(actor *model.User, action string, entityType string, entityID uint, details model.JSONMap, meta audit.RequestMeta)
}

type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,gte=8,lte=128"`
	Phone    string `json:"phone" binding:"omitempty,brphone"`
	Document string `json:"document" binding:"omitempty,cpfcnpj"`
}

// SignUp user
func (h Handler) SignUp(c *gin.Context) {
	// swagger:route POST /users signUp
	//
	// SignUp user
	//
	// Sign up a user. This endpoint is publicly accessible and therefor anyone can sign up.
	//
	// responses:
	//   201: User
	//   400: Error
	//   409: Error
	//   415: Error
	var request SignUpRequest

	if err := handler.DataBinder(c, &request); err != nil {
		return
	}

	user, err := h.userService.SignUp(c.Request.Context(), SignUpInput{
		Name:     request.Name,
		Email:    request.Email,
		Password: request.Password,
		Phone:    request.Phone,
		Document: request.Document,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.recorder.Record(user, model.ActionUserRegister, "User", user.ID, model.JSONMap{
		"email": user.Email,
	}, audit.GetRequestMeta(c))

	c.JSON(http.StatusCreated, user)
}

// SignIn user
func (h Handler) SignIn(c *gin.Context) {
	// swagger:route POST /tokens signIn
	//
	// Sign in
	//
	// Sign in... And get an access token
	//
	// security:
	//   basicAuth:
	//
	// responses:
	//   201: Tokens
	//   401: Error
	//   415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	tokens, err := h.tokenService.IssueToken(user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.recorder.Record(user, model.ActionUserLogin, "User", user.ID, nil, audit.GetRequestMeta(c))

	c.JSON(http.StatusCreated, tokens)
}

// Me returns the current user
func (h Handler) Me(c *gin.Context) {
	// swagger:route GET /me me
	//
	// Current user
	//
	// Return the user who signed the access token on the request.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: User
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone" binding:"omitempty,brphone"`
	Document *string `json:"document" binding:"omitempty,cpfcnpj"`
}

// UpdateMe updates the current user
func (h Handler) UpdateMe(c *gin.Context) {
	// swagger:route PUT /me updateMe
	//
	// Update current user
	//
	// Update the profile of the user who signed the access token on the request. Omitted fields are left untouched, empty phone or document clears the value.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: User
	//   400: Error
	//   401: Error
	//   415: Error
	var request UpdateProfileRequest

	if err := handler.DataBinder(c, &request); err != nil {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), user, UpdateProfileInput{
		Name:     request.Name,
		Phone:    request.Phone,
		Document: request.Document,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// FindAll users
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /users listUsers
	//
	// List users
	//
	// List all active users.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []User
	//   401: Error
	//   403: Error
	users, err := h.userService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Deactivate user
func (h Handler) Deactivate(c *gin.Context) {
	// swagger:route DELETE /users/{id} deactivateUser
	//
	// Deactivate user
	//
	// Deactivate a user. The user record and their enrollment history are kept, sign in and token authentication start failing immediately.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   204:
	//   401: Error
	//   403: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	err := h.userService.Deactivate(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
