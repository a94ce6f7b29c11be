package service

import (
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"iotplatform"
	"iotplatform/internal/api/handler/mapper"
	"iotplatform/internal/api/handler/request"
	"iotplatform/internal/api/models"
	"iotplatform/internal/api/repo"
)

type UserService struct {
	userRepo   *repo.UserRepository
	userMapper mapper.UserMapper
	logger     zerolog.Logger
}

func NewUserService() *UserService {
	return &UserService{
		userRepo:   repo.NewUserRepository(),
		userMapper: mapper.NewUserMapper(),
		logger:     iotplatform.Logger,
	}
}

func (slf *UserService) GetByID(id uint) (*models.User, error) {
	user, err := slf.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		slf.logger.Error().Err(err).Uint("userId", id).Msg("Error finding user by ID")
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the set fields of dto to the user
func (slf *UserService) UpdateProfile(id uint, dto request.UpdateUser) (*models.User, error) {
	user, err := slf.GetByID(id)
	if err != nil {
		return nil, err
	}

	slf.userMapper.DtoToUpdate(dto, user)
	if err := slf.userRepo.Update(user); err != nil {
		slf.logger.Error().Err(err).Uint("userId", id).Msg("Error updating user")
		return nil, err
	}

	slf.logger.Info().Uint("userId", id).Msg("User profile updated")
	return user, nil
}
