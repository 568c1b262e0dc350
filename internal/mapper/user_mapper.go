package mapper

import (
	"hand-analysis-be/internal/entity"
	"hand-analysis-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:           u.Id,
		DisplayName:  u.DisplayName,
		Email:        u.Email,
		AuthProvider: u.AuthProvider,
		GoogleSub:    u.GoogleSub,
		LastActiveAt: u.LastActiveAt,
		CreatedAt:    u.CreatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:           u.Id,
		DisplayName:  u.DisplayName,
		Email:        u.Email,
		AuthProvider: u.AuthProvider,
		GoogleSub:    u.GoogleSub,
		LastActiveAt: u.LastActiveAt,
		CreatedAt:    u.CreatedAt,
	}
}
