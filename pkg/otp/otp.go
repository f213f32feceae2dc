package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// Deliverer is the outbound channel used to carry a one-time code to its
// destination.
type Deliverer interface {
	Deliver(ctx context.Context, destination string, artifact []byte, metadata map[string]string) error
}

// Sender issues numeric one-time codes and pushes them over an outbound
// channel. Codes are six digits with leading zeros preserved.
type Sender struct {
	channel Deliverer
}

func NewSender(channel Deliverer) *Sender {
	return &Sender{channel: channel}
}

// Issue generates a fresh code and delivers it to destination. The generated
// code is returned so the caller can stash it for later confirmation.
func (s *Sender) Issue(ctx context.Context, destination string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	message := []byte(fmt.Sprintf("Your verification code is %s. It expires shortly.", code))
	if err := s.channel.Deliver(ctx, destination, message, map[string]string{"kind": "otp"}); err != nil {
		return "", fmt.Errorf("failed to deliver code: %w", err)
	}

	return code, nil
}

// Confirm compares a submitted code against the issued one in constant time.
func (s *Sender) Confirm(submitted, issued string) bool {
	if issued == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(issued)) == 1
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
