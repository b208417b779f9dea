package user

import "github.com/hookfire/core/internal/models"

func toResponse(u *models.UserModel) *userResponse {
	return &userResponse{
		ID: u.ID, Username: u.Username, Name: u.Name, Mail: u.Mail,
		LastLoginTime: u.LastLoginTime, LastLoginIP: u.LastLoginIP,
	}
}
