package domain

import "time"

// User is a registered account. Email is the unique key, stored lower-cased.
// Password is an opaque credential string; how it is produced and compared is
// owned by the account service's verifier, not by the model.
type User struct {
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Session is the single signed-in identity for the local client context.
// Its absence means anonymous.
type Session struct {
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"issuedAt"`
}
