package domain

import "time"

type OrderID string

// OrderSession identifies one physical order for one customer call.
// It is created when the phone number is submitted and never mutated afterwards.
type OrderSession struct {
	ID        OrderID
	Phone     string
	StartTime time.Time
}
