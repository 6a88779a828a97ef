package services

import (
	"waroengpos/app/models"
	"waroengpos/app/repositories"
	"waroengpos/pkg/apperr"
	"waroengpos/pkg/auth"
)

// AuthService authenticates dashboard operators.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Login verifies the credentials and returns a signed token plus the user.
// Wrong email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (string, models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return "", models.User{}, apperr.Validation("invalid credentials")
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", models.User{}, apperr.Validation("invalid credentials")
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

// Me loads the authenticated user's profile.
func (s *AuthService) Me(userID uint) (models.User, error) {
	return s.users.FindByID(userID)
}

// RegisterUser creates an operator account with a hashed password. Used by
// the seeder and the admin CLI, not exposed over HTTP.
func (s *AuthService) RegisterUser(name, email, password, role string) (models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{Name: name, Email: email, Password: hash, Role: role}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
