package user

import "time"

// User is the identity row. Authentication happens outside this service.
type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Email       string
	CreatedAt   time.Time
}
