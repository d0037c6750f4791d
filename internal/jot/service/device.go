package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jotapp/jot/internal/jot/domain"
	"github.com/jotapp/jot/internal/jot/store"
	"github.com/jotapp/jot/pkg/slogx"
)

var (
	ErrChallengeExists   = errors.New("challenge_exists")
	ErrChallengeNotFound = errors.New("challenge_not_found")
)

// DeviceService drives the device authorization flow: a device registers a
// challenge under its own code, the user fulfills it from a browser, and the
// device collects the token by polling.
type DeviceService struct {
	Store store.Store
	Auth  *AuthService

	// ChallengeTTL bounds how long a challenge stays claimable.
	ChallengeTTL time.Duration
}

func (s *DeviceService) ttl() time.Duration {
	if s.ChallengeTTL <= 0 {
		return 15 * time.Minute
	}
	return s.ChallengeTTL
}

// CreateChallenge registers a pending challenge for the given device code.
// A still-active challenge with the same code yields ErrChallengeExists.
func (s *DeviceService) CreateChallenge(ctx context.Context, deviceCode string) error {
	deviceCode = strings.TrimSpace(deviceCode)
	if deviceCode == "" {
		return ErrInvalidRequest
	}

	now := time.Now().UTC()
	err := s.Store.DeviceChallenges().CreateDeviceChallenge(ctx, deviceCode, now.Add(s.ttl()))
	if errors.Is(err, store.ErrAlreadyExists) {
		// The clash may be an expired leftover waiting for the sweeper.
		// Reclaim the code in that case rather than blocking it until
		// the next housekeeping run.
		return s.reclaimCode(ctx, deviceCode, now)
	}
	return err
}

// reclaimCode resolves a code clash inside a single transaction: an expired
// leftover row is deleted and the code reissued, while a still-live challenge
// keeps the code and the caller sees ErrChallengeExists. Concurrent creates
// for the same code serialize on the transaction, so exactly one wins.
func (s *DeviceService) reclaimCode(ctx context.Context, deviceCode string, now time.Time) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.DeviceChallenges().GetActiveDeviceChallenge(ctx, deviceCode, now)
		if err == nil {
			return ErrChallengeExists
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if _, err := tx.DeviceChallenges().DeleteDeviceChallenge(ctx, deviceCode); err != nil {
			return err
		}
		return tx.DeviceChallenges().CreateDeviceChallenge(ctx, deviceCode, now.Add(s.ttl()))
	})
}

// Status reports where a challenge sits in its lifecycle. The token is
// returned only once the challenge is fulfilled.
func (s *DeviceService) Status(ctx context.Context, deviceCode string) (domain.ChallengeStatus, string, error) {
	challenge, err := s.Store.DeviceChallenges().GetActiveDeviceChallenge(ctx, deviceCode, time.Now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ChallengeNone, "", nil
		}
		return domain.ChallengeNone, "", err
	}

	if challenge.Fulfilled() {
		return domain.ChallengeFulfilled, *challenge.Token, nil
	}
	return domain.ChallengePending, "", nil
}

// Fulfill authenticates the user and binds a freshly issued token to the
// pending challenge. An expired or unknown code returns ErrChallengeNotFound;
// bad credentials return ErrInvalidCredentials without touching the challenge.
func (s *DeviceService) Fulfill(ctx context.Context, deviceCode, username, password string) error {
	log := slogx.FromContext(ctx)

	token, err := s.Auth.Login(ctx, username, password)
	if err != nil {
		return err
	}

	attached, err := s.Store.DeviceChallenges().AttachToken(ctx, deviceCode, token, time.Now().UTC())
	if err != nil {
		return err
	}
	if !attached {
		log.Warn("device fulfill: challenge missing or expired", "device_code", deviceCode)
		return ErrChallengeNotFound
	}
	return nil
}

// Delete removes a challenge regardless of its state. A code that matches
// nothing returns ErrChallengeNotFound.
func (s *DeviceService) Delete(ctx context.Context, deviceCode string) error {
	deleted, err := s.Store.DeviceChallenges().DeleteDeviceChallenge(ctx, deviceCode)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrChallengeNotFound
	}
	return nil
}
