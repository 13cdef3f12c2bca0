package usecase

import (
	"context"
	"testing"

	"ideahub/internal/domain/idea"
	"ideahub/internal/domain/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagement_SparkNotifiesAuthorOnce(t *testing.T) {
	ideas := newFakeIdeas()
	n := &fakeNotifier{}
	uc := NewEngagementUsecase(ideas, newFakeEngagement(ideas), n, quietLogger)
	author, fan := uuid.New(), uuid.New()
	it := ideas.add(idea.Idea{AuthorID: author, Title: "sparkable"})

	count, err := uc.Spark(context.Background(), fan, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = uc.Spark(context.Background(), fan, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.Len(t, n.sent, 1)
	assert.Equal(t, author, n.sent[0].to)
	assert.Equal(t, notification.TypeIdeaSparked, n.sent[0].ev.Type)
	assert.Equal(t, fan, n.sent[0].ev.ActorID)

	_, err = uc.Spark(context.Background(), author, it.ID)
	require.NoError(t, err)
	assert.Len(t, n.sent, 1)

	count, err = uc.Unspark(context.Background(), fan, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEngagement_CannotTouchHiddenIdeas(t *testing.T) {
	ideas := newFakeIdeas()
	uc := NewEngagementUsecase(ideas, newFakeEngagement(ideas), nil, quietLogger)
	hidden := ideas.add(idea.Idea{AuthorID: uuid.New(), Title: "secret", Visibility: idea.VisibilityPrivate})

	_, err := uc.Spark(context.Background(), uuid.New(), hidden.ID)
	assert.ErrorIs(t, err, ErrIdeaNotFound)
	assert.ErrorIs(t, uc.Bookmark(context.Background(), uuid.New(), hidden.ID), ErrIdeaNotFound)
	assert.ErrorIs(t, uc.Bookmark(context.Background(), uuid.Nil, hidden.ID), ErrUnauthorized)
}

func TestEngagement_Bookmarks(t *testing.T) {
	ideas := newFakeIdeas()
	uc := NewEngagementUsecase(ideas, newFakeEngagement(ideas), nil, quietLogger)
	me := uuid.New()
	it := ideas.add(idea.Idea{AuthorID: uuid.New(), Title: "keep"})

	require.NoError(t, uc.Bookmark(context.Background(), me, it.ID))
	require.NoError(t, uc.Bookmark(context.Background(), me, it.ID))

	got, err := uc.ListBookmarks(context.Background(), me, 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, it.ID, got[0].ID)

	require.NoError(t, uc.Unbookmark(context.Background(), me, it.ID))
	require.NoError(t, uc.Unbookmark(context.Background(), me, it.ID))
	got, err = uc.ListBookmarks(context.Background(), me, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
