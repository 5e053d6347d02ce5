package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/projeval-api/internal/dto"
	"github.com/noah-isme/projeval-api/internal/models"
	"github.com/noah-isme/projeval-api/internal/repository"
)

func TestChangePublisherPublishesToRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), Protocol: 2})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := client.Subscribe(ctx, "projeval:test")
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	publisher := NewChangePublisher(client, nil, "projeval:test", testLogger())
	require.NoError(t, publisher.Publish(ctx, ChangeEvent{Entity: models.EntityMarks, Operation: "update", Key: 4}))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var event ChangeEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
	require.Equal(t, models.EntityMarks, event.Entity)
	require.Equal(t, "update", event.Operation)
	require.Equal(t, uint(4), event.Key)
	require.False(t, event.OccurredAt.IsZero())
	require.NotEmpty(t, event.Source)
}

func TestChangePublisherWithoutTransportsIsNoop(t *testing.T) {
	publisher := NewChangePublisher(nil, nil, "", testLogger())
	require.NoError(t, publisher.Publish(context.Background(), ChangeEvent{Entity: "team"}))
}

func TestSubjectForChannel(t *testing.T) {
	require.Equal(t, "projeval.changes", SubjectForChannel("projeval:changes"))
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	db := setupTestDB(t)
	publisher := &recordingPublisher{err: errors.New("broker down")}
	students := NewStudentService(repository.NewStudentRepository(db), testValidator(), ChangeHooks{Publisher: publisher}, testLogger())

	student, err := students.Create(context.Background(), dto.StudentCreateRequest{ID: 9, Department: "ME", FirstName: "Chen"})
	require.NoError(t, err)
	require.Equal(t, uint(9), student.ID)
	require.Len(t, publisher.Events(), 1)

	stored, err := students.Get(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, "Chen", stored.FirstName)
}
