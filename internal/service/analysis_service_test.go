package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hand-analysis-be/internal/constant"
	"hand-analysis-be/internal/dto"
	"hand-analysis-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalysisFixture(t *testing.T, llmReply string, llmErr error) (*fakeUow, *fakeLLM, IAnalysisService, uuid.UUID) {
	t.Helper()
	uow := newFakeUow()
	userId := uuid.New()
	llmFake := &fakeLLM{reply: llmReply, err: llmErr}
	entSvc := NewEntitlementService(&fakeUowFactory{uow: uow})
	svc := NewAnalysisService(entSvc, llmFake, nopLogger{})
	return uow, llmFake, svc, userId
}

func TestAnalyzeSuccessRecordsUsageAndReportsPostActionCount(t *testing.T) {
	uow, llmFake, svc, userId := newAnalysisFixture(t, `{"summary":"fine","score":80}`, nil)
	seedAnalyzes(uow, userId, 1, time.Now().UTC())

	handId := "h-1"
	res, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{
		UserId: userId.String(),
		HandId: &handId,
		Hand:   json.RawMessage(`{"hero":"AhKs"}`),
	})
	require.NoError(t, err)

	assert.True(t, res.Ok)
	assert.JSONEq(t, `{"summary":"fine","score":80}`, string(res.Evaluation))
	assert.Empty(t, res.AnalysisText)
	assert.Equal(t, entity.PlanFree, res.Usage.Plan)
	assert.Equal(t, 2, res.Usage.UsedThisMonth)

	// One new analyze row in the ledger, tied to the hand.
	require.Len(t, uow.usage.entries, 2)
	last := uow.usage.entries[1]
	assert.Equal(t, entity.UsageActionAnalyze, last.ActionType)
	require.NotNil(t, last.HandId)
	assert.Equal(t, handId, *last.HandId)

	// Prompt carries the system instruction and the verbatim hand payload.
	require.Len(t, llmFake.lastHistory, 2)
	assert.Equal(t, constant.AnalyzeSystemPrompt, llmFake.lastHistory[0].Content)
	assert.Equal(t, `{"hero":"AhKs"}`, llmFake.lastHistory[1].Content)
}

func TestAnalyzeNonJSONReplyFallsBackToText(t *testing.T) {
	_, _, svc, userId := newAnalysisFixture(t, "You played this hand well overall.", nil)

	res, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{
		UserId: userId.String(),
		Hand:   json.RawMessage(`{"hero":"7c2d"}`),
	})
	require.NoError(t, err)

	assert.Nil(t, res.Evaluation)
	assert.Equal(t, "You played this hand well overall.", res.AnalysisText)
}

func TestAnalyzeUnwrapsFencedJSON(t *testing.T) {
	reply := "```json\n{\"score\": 42}\n```"
	_, _, svc, userId := newAnalysisFixture(t, reply, nil)

	res, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{
		UserId: userId.String(),
		Hand:   json.RawMessage(`{}`),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":42}`, string(res.Evaluation))
}

func TestAnalyzeQuotaDenialSkipsModelCall(t *testing.T) {
	uow, llmFake, svc, userId := newAnalysisFixture(t, "unused", nil)
	seedAnalyzes(uow, userId, 3, time.Now().UTC())

	_, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{
		UserId: userId.String(),
		Hand:   json.RawMessage(`{}`),
	})

	var quotaErr *dto.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, 0, llmFake.calls)
	assert.Len(t, uow.usage.entries, 3)
}

func TestAnalyzeUpstreamFailureChargesNothing(t *testing.T) {
	uow, _, svc, userId := newAnalysisFixture(t, "", errors.New("model timeout"))

	_, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{
		UserId: userId.String(),
		Hand:   json.RawMessage(`{}`),
	})

	var upstreamErr *dto.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "llm", upstreamErr.Source)
	assert.Empty(t, uow.usage.entries)
}

func TestAnalyzeLedgerWriteFailureStillSucceeds(t *testing.T) {
	uow, _, svc, userId := newAnalysisFixture(t, "ok", nil)
	uow.usage.createErr = errors.New("db down")

	res, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{
		UserId: userId.String(),
		Hand:   json.RawMessage(`{}`),
	})
	require.NoError(t, err)
	assert.True(t, res.Ok)
}

func TestFollowupSuccess(t *testing.T) {
	uow, llmFake, svc, userId := newAnalysisFixture(t, "Raise bigger on the turn.", nil)
	handId := "h-7"
	uow.subs.subs = append(uow.subs.subs, activeSub(userId, entity.PlanBasic, "sub_1", time.Now()))

	res, err := svc.Followup(context.Background(), &dto.FollowupRequest{
		UserId:     userId.String(),
		HandId:     handId,
		Question:   "Should I have raised the turn?",
		Snapshot:   json.RawMessage(`{"board":"AhKs2d"}`),
		Evaluation: json.RawMessage(`{"score":55}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "Raise bigger on the turn.", res.Answer)
	assert.Equal(t, handId, res.HandId)
	assert.Equal(t, 1, res.Usage.UsedForThisHand)
	assert.Equal(t, 3, res.Usage.FollowupsPerHand.Value())

	require.Len(t, llmFake.lastHistory, 2)
	assert.Contains(t, llmFake.lastHistory[1].Content, `{"board":"AhKs2d"}`)
	assert.Contains(t, llmFake.lastHistory[1].Content, "Should I have raised the turn?")

	require.Len(t, uow.usage.entries, 1)
	assert.Equal(t, entity.UsageActionFollowup, uow.usage.entries[0].ActionType)
}

func TestFollowupDenialAfterBudgetSpent(t *testing.T) {
	uow, llmFake, svc, userId := newAnalysisFixture(t, "unused", nil)
	handId := "h-8"
	uow.usage.entries = append(uow.usage.entries, &entity.UsageLogEntry{
		Id: uuid.New(), UserId: userId, ActionType: entity.UsageActionFollowup, HandId: &handId, CreatedAt: time.Now().UTC(),
	})

	_, err := svc.Followup(context.Background(), &dto.FollowupRequest{
		UserId:   userId.String(),
		HandId:   handId,
		Question: "And the river?",
	})

	var followupErr *dto.FollowupLimitExceededError
	require.ErrorAs(t, err, &followupErr)
	assert.Equal(t, 0, llmFake.calls)
}
