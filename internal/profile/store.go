package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/talkbuddy/internal/store"
)

// ErrNoProfile is returned by Load when no profile has been saved yet.
var ErrNoProfile = errors.New("no profile saved")

// Load reads the saved profile. A stored profile that no longer validates is
// reported as ErrInvalid so the caller can ask the learner to recreate it.
func Load(ctx context.Context, kv store.KV) (Profile, error) {
	var p Profile
	ok, err := store.LoadJSON(ctx, kv, store.KeyProfile, &p)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		return Profile{}, ErrNoProfile
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Save validates and stores p.
func Save(ctx context.Context, kv store.KV, p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := store.SaveJSON(ctx, kv, store.KeyProfile, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Delete removes the saved profile.
func Delete(ctx context.Context, kv store.KV) error {
	if err := kv.Delete(ctx, store.KeyProfile); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
