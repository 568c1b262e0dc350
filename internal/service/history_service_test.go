package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hand-analysis-be/internal/dto"
	"hand-analysis-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(uow *fakeUow, userId uuid.UUID, handId, title string, createdAt time.Time) *entity.HandHistory {
	h := &entity.HandHistory{
		Id:           uuid.New(),
		UserId:       userId,
		HandId:       handId,
		Title:        title,
		Snapshot:     json.RawMessage(`{"board":"AhKs2d"}`),
		Evaluation:   json.RawMessage(`{"score":70}`),
		Conversation: json.RawMessage(`[]`),
		Markdown:     "## Hand",
		CreatedAt:    createdAt,
	}
	uow.hist.items[h.Id] = h
	return h
}

func TestSaveHistoryDefaultsTitle(t *testing.T) {
	uow := newFakeUow()
	svc := NewHistoryService(&fakeUowFactory{uow: uow})
	userId := uuid.New()

	res, err := svc.Save(context.Background(), &dto.SaveHistoryRequest{
		UserId:   userId.String(),
		HandId:   "h-1",
		Snapshot: json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	assert.True(t, res.Ok)
	stored := uow.hist.items[res.Id]
	require.NotNil(t, stored)
	assert.Equal(t, "Hand h-1", stored.Title)
	assert.Equal(t, userId, stored.UserId)
}

func TestListReturnsOwnRowsNewestFirst(t *testing.T) {
	uow := newFakeUow()
	svc := NewHistoryService(&fakeUowFactory{uow: uow})
	userId := uuid.New()

	seedHistory(uow, userId, "h-old", "Old", time.Now().Add(-2*time.Hour))
	seedHistory(uow, userId, "h-new", "New", time.Now())
	seedHistory(uow, uuid.New(), "h-other", "Other user", time.Now())

	res, err := svc.List(context.Background(), userId)
	require.NoError(t, err)

	require.Len(t, res.Histories, 2)
	assert.Equal(t, "h-new", res.Histories[0].HandId)
	assert.Equal(t, "h-old", res.Histories[1].HandId)
}

func TestDetailEnforcesOwnership(t *testing.T) {
	uow := newFakeUow()
	svc := NewHistoryService(&fakeUowFactory{uow: uow})
	owner := uuid.New()
	h := seedHistory(uow, owner, "h-1", "Mine", time.Now())

	res, err := svc.Detail(context.Background(), owner, h.Id)
	require.NoError(t, err)
	assert.Equal(t, h.Id, res.History.Id)
	assert.JSONEq(t, `{"board":"AhKs2d"}`, string(res.History.Snapshot))

	_, err = svc.Detail(context.Background(), uuid.New(), h.Id)
	assert.ErrorIs(t, err, dto.ErrNotFound)
}

func TestRenameUpdatesOwnRowOnly(t *testing.T) {
	uow := newFakeUow()
	svc := NewHistoryService(&fakeUowFactory{uow: uow})
	owner := uuid.New()
	h := seedHistory(uow, owner, "h-1", "Before", time.Now())

	res, err := svc.Rename(context.Background(), &dto.RenameHistoryRequest{
		UserId: owner.String(),
		Id:     h.Id.String(),
		Title:  "After",
	})
	require.NoError(t, err)
	assert.True(t, res.Ok)
	assert.Equal(t, "After", uow.hist.items[h.Id].Title)

	_, err = svc.Rename(context.Background(), &dto.RenameHistoryRequest{
		UserId: uuid.New().String(),
		Id:     h.Id.String(),
		Title:  "Hijacked",
	})
	assert.ErrorIs(t, err, dto.ErrNotFound)
	assert.Equal(t, "After", uow.hist.items[h.Id].Title)
}

func TestUpdateConversation(t *testing.T) {
	uow := newFakeUow()
	svc := NewHistoryService(&fakeUowFactory{uow: uow})
	owner := uuid.New()
	h := seedHistory(uow, owner, "h-1", "Title", time.Now())

	conversation := json.RawMessage(`[{"role":"user","content":"why fold?"}]`)
	res, err := svc.UpdateConversation(context.Background(), &dto.UpdateConversationRequest{
		UserId:       owner.String(),
		Id:           h.Id.String(),
		Conversation: conversation,
	})
	require.NoError(t, err)
	assert.True(t, res.Ok)
	assert.JSONEq(t, string(conversation), string(uow.hist.items[h.Id].Conversation))
}

func TestDeleteAllScopesToUser(t *testing.T) {
	uow := newFakeUow()
	svc := NewHistoryService(&fakeUowFactory{uow: uow})
	userId := uuid.New()
	other := uuid.New()

	seedHistory(uow, userId, "h-1", "A", time.Now())
	seedHistory(uow, userId, "h-2", "B", time.Now())
	kept := seedHistory(uow, other, "h-3", "C", time.Now())

	res, err := svc.DeleteAll(context.Background(), userId)
	require.NoError(t, err)

	assert.Equal(t, int64(2), res.Deleted)
	require.Len(t, uow.hist.items, 1)
	assert.NotNil(t, uow.hist.items[kept.Id])
}
