package otp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureChannel struct {
	destination string
	message     []byte
	metadata    map[string]string
	err         error
}

func (c *captureChannel) Deliver(ctx context.Context, destination string, artifact []byte, metadata map[string]string) error {
	c.destination = destination
	c.message = artifact
	c.metadata = metadata
	return c.err
}

func TestIssueDeliversSixDigitCode(t *testing.T) {
	channel := &captureChannel{}
	sender := NewSender(channel)

	code, err := sender.Issue(context.Background(), "+919876543210")
	require.NoError(t, err)

	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "code %q must be numeric", code)
	}
	assert.Equal(t, "+919876543210", channel.destination)
	assert.Contains(t, string(channel.message), code)
	assert.Equal(t, "otp", channel.metadata["kind"])
}

func TestIssueDeliveryFailure(t *testing.T) {
	channel := &captureChannel{err: errors.New("gateway down")}
	sender := NewSender(channel)

	code, err := sender.Issue(context.Background(), "+919876543210")
	require.Error(t, err)
	assert.Empty(t, code)
}

func TestConfirm(t *testing.T) {
	sender := NewSender(&captureChannel{})

	assert.True(t, sender.Confirm("123456", "123456"))
	assert.False(t, sender.Confirm("123457", "123456"))
	assert.False(t, sender.Confirm("", "123456"))
	assert.False(t, sender.Confirm("123456", ""))
	assert.False(t, sender.Confirm("", ""))
}
