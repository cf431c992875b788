// Package queue defines message payloads exchanged over the message broker.
package queue

// VerificationEmailQueue is the durable queue carrying verification emails.
const VerificationEmailQueue = "email.verification"

// VerificationEmailEvent is published when an account registers or asks for
// its code again. It carries everything the consumer needs to deliver the
// mail without querying the primary database.
type VerificationEmailEvent struct {
	UserID   uint64 `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Code     string `json:"code"`
	IssuedAt string `json:"issued_at"`
}
