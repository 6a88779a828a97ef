package controllers

import (
	"waroengpos/app/services"
	"waroengpos/pkg/ctx"
	"waroengpos/pkg/middleware"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Login exchanges credentials for a bearer token.
func (c *AuthController) Login(cc *ctx.Context) {
	var body loginRequest
	if !cc.BindJSON(&body) {
		return
	}

	token, user, err := c.service.Login(body.Email, body.Password)
	if err != nil {
		cc.Fail(err)
		return
	}

	cc.Success(map[string]interface{}{
		"token": token,
		"user":  map[string]interface{}{"id": user.ID, "name": user.Name, "role": user.Role},
	})
}

// Me returns the authenticated operator's profile.
func (c *AuthController) Me(cc *ctx.Context) {
	userID, ok := middleware.UserIDFromCtx(cc.R)
	if !ok {
		cc.Unauthorized()
		return
	}

	user, err := c.service.Me(userID)
	if err != nil {
		cc.Fail(err)
		return
	}
	cc.Success(user)
}
