package mapper

import (
	"iotplatform/internal/api/handler/request"
	"iotplatform/internal/api/handler/response"
	"iotplatform/internal/api/models"
)

type UserMapper interface {
	// --update
	DtoToUpdate(req request.UpdateUser, user *models.User)

	EntityToUserResponse(user models.User) response.User
}

// UserMapperImpl implements UserMapper
type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m UserMapperImpl) DtoToUpdate(req request.UpdateUser, user *models.User) {
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
}

func (m UserMapperImpl) EntityToUserResponse(user models.User) response.User {
	return response.User{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
