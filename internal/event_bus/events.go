package event_bus

import "time"

const UserCreatedType EventType = "user.created"

// UserCreated is published inside the transaction that inserted the user row. Subscribers writing to the
// database with the event context take part in that transaction.
type UserCreated struct {
	Id        int
	Uid       string
	Username  string
	CreatedAt time.Time
}
