package domain

import "time"

// DeviceChallenge tracks a pending device-login flow. The device code is
// chosen by the polling client, not the server; uniqueness is enforced by
// the storage layer.
type DeviceChallenge struct {
	ID         int64
	DeviceCode string
	// Token is nil while the challenge is pending and set once a user has
	// approved the device on the web form.
	Token      *string
	ExpireDate time.Time
	CreatedAt  time.Time
}

// Fulfilled reports whether a token has been attached.
func (c DeviceChallenge) Fulfilled() bool { return c.Token != nil }

// ChallengeStatus is the outcome of polling a device code.
type ChallengeStatus int

const (
	// ChallengeNone means no active challenge exists for the code. Expired
	// and never-created are indistinguishable on purpose.
	ChallengeNone ChallengeStatus = iota
	// ChallengePending means the challenge exists but no user has approved
	// the device yet.
	ChallengePending
	// ChallengeFulfilled means a token is ready to be collected.
	ChallengeFulfilled
)
