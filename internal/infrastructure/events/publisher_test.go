package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/tripshare/internal/domain/service"
)

type recordingConn struct {
	subjects []string
	payloads [][]byte
	err      error
	drained  bool
}

func (c *recordingConn) Publish(subject string, data []byte) error {
	if c.err != nil {
		return c.err
	}
	c.subjects = append(c.subjects, subject)
	c.payloads = append(c.payloads, data)
	return nil
}

func (c *recordingConn) Drain() error {
	c.drained = true
	return nil
}

func TestSubject(t *testing.T) {
	tests := []struct {
		eventType string
		want      string
	}{
		{"group.member_join", "tripshare.group.member_join"},
		{"group.delete", "tripshare.group.delete"},
		{"join_request.approve", "tripshare.group.join_request.approve"},
	}
	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			assert.Equal(t, tt.want, Subject("tripshare", tt.eventType))
		})
	}
}

func TestNATSPublisher_Publish_EncodesEventAsJSON(t *testing.T) {
	c := &recordingConn{}
	p := newPublisher(c, "")
	groupID := uuid.New()

	err := p.Publish(context.Background(), service.MembershipEvent{
		Type:       "group.member_remove",
		GroupID:    groupID,
		ActorID:    "admin-1",
		SubjectID:  "member-2",
		OccurredAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Equal(t, []string{"tripshare.group.member_remove"}, c.subjects)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(c.payloads[0], &decoded))
	assert.Equal(t, groupID.String(), decoded["groupId"])
	assert.Equal(t, "member-2", decoded["subjectId"])
}

func TestNATSPublisher_Publish_ConnError_Wrapped(t *testing.T) {
	connErr := errors.New("nats: connection closed")
	p := newPublisher(&recordingConn{err: connErr}, "trips")

	err := p.Publish(context.Background(), service.MembershipEvent{Type: "group.create"})

	assert.ErrorIs(t, err, connErr)
	assert.Contains(t, err.Error(), "trips.group.create")
}

func TestNATSPublisher_Close_Drains(t *testing.T) {
	c := &recordingConn{}
	require.NoError(t, newPublisher(c, "").Close())
	assert.True(t, c.drained)
}
