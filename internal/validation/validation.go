// Package validation holds the structural checks run on inbound payloads
// before any service or store is touched.
package validation

import (
	"chatline/internal/domain/user"
	"chatline/internal/transport/httpdto"
)

// IsUserBodyValid reports whether both username and password are non-empty.
// Signup, login and password reset bodies all share this shape.
func IsUserBodyValid(body user.Credentials) bool {
	return body.Username != "" && body.Password != ""
}

// IsMessageValid reports whether msg and msgFrom are non-empty and a
// timestamp was supplied. Any supplied instant counts, the zero one
// included; parsing it is the caller's job.
func IsMessageValid(body httpdto.MessageBody) bool {
	return body.Msg != "" &&
		body.MsgFrom != "" &&
		body.MsgDateTime != nil &&
		*body.MsgDateTime != ""
}

// IsAddMessageRequestValid reports whether the request carries a message
// with non-empty text. It runs before IsMessageValid.
func IsAddMessageRequestValid(req httpdto.AddMessageRequest) bool {
	return req.MessageToAdd != nil && req.MessageToAdd.Msg != ""
}
