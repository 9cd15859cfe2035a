package httpdto

import (
	"chatline/internal/domain/user"
)

// UserRequest is the body of POST /user/signup, POST /user/login and
// PATCH /user/resetPassword.
type UserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r UserRequest) Credentials() user.Credentials {
	return user.Credentials{Username: r.Username, Password: r.Password}
}
