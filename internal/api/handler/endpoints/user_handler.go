package endpoints

import (
	"errors"
	"net/http"

	"iotplatform"
	"iotplatform/internal/api/handler/mapper"
	"iotplatform/internal/api/handler/middleware"
	"iotplatform/internal/api/handler/request"
	"iotplatform/internal/api/handler/response"
	"iotplatform/internal/api/service"
	"iotplatform/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type userHandler struct {
	userService *service.UserService
	userMapper  mapper.UserMapper
	config      iotplatform.AppConfig
	logger      zerolog.Logger
}

func newUserHandler() *userHandler {
	return &userHandler{
		userService: service.NewUserService(),
		userMapper:  mapper.NewUserMapper(),
		config:      iotplatform.GetConfig(),
		logger:      iotplatform.Logger,
	}
}

func UserHandler(router *graceful.Graceful) {
	newUserHandler().register(router)
}

func (slf *userHandler) register(router gin.IRouter) {
	routes := router.Group("/api/v1/users")
	routes.Use(middleware.AuthMiddleware(slf.config))
	{
		routes.GET("/me", slf.me)
		routes.PUT("/me", slf.updateMe)
	}
}

func (slf *userHandler) me(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}

	user, err := slf.userService.GetByID(userID)
	if err != nil {
		slf.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, slf.userMapper.EntityToUserResponse(*user))
}

func (slf *userHandler) updateMe(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}

	var req request.UpdateUser
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	user, err := slf.userService.UpdateProfile(userID, req)
	if err != nil {
		slf.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, slf.userMapper.EntityToUserResponse(*user))
}

func (slf *userHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, response.APIError{Message: "User not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve user"})
}
