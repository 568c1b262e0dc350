package service

import (
	"context"
	"encoding/json"
	"strings"

	"hand-analysis-be/internal/constant"
	"hand-analysis-be/internal/dto"
	"hand-analysis-be/internal/entity"
	"hand-analysis-be/internal/pkg/logger"
	"hand-analysis-be/pkg/llm"

	"github.com/google/uuid"
)

type IAnalysisService interface {
	Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error)
	Followup(ctx context.Context, req *dto.FollowupRequest) (*dto.FollowupResponse, error)
}

type analysisService struct {
	entitlementService IEntitlementService
	llmProvider        llm.LLMProvider
	log                logger.ILogger
}

func NewAnalysisService(
	entitlementService IEntitlementService,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IAnalysisService {
	return &analysisService{
		entitlementService: entitlementService,
		llmProvider:        llmProvider,
		log:                log,
	}
}

func (s *analysisService) Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error) {
	userId, err := uuid.Parse(req.UserId)
	if err != nil {
		return nil, dto.ErrBadRequest
	}

	ent, err := s.entitlementService.CheckAnalyze(ctx, userId)
	if err != nil {
		return nil, err
	}

	history := []llm.Message{
		{Role: "system", Content: constant.AnalyzeSystemPrompt},
		{Role: "user", Content: string(req.Hand)},
	}

	answer, err := s.llmProvider.Chat(ctx, history, llm.WithTemperature(0.2))
	if err != nil {
		// Nothing is charged for a failed upstream call.
		return nil, &dto.UpstreamError{Source: "llm", Err: err}
	}

	// Charge after success. A ledger write failure gives the user a free
	// action rather than failing a delivered analysis.
	if err := s.entitlementService.RecordUsage(ctx, userId, entity.UsageActionAnalyze, req.HandId); err != nil {
		s.log.Warn("analysis", "failed to record analyze usage", map[string]interface{}{
			"user_id": req.UserId,
			"error":   err.Error(),
		})
	}

	res := &dto.AnalyzeResponse{
		Ok:     true,
		HandId: req.HandId,
		Usage: dto.MonthlyUsageDTO{
			Plan:          ent.Plan,
			LimitPerMonth: ent.LimitPerMonth,
			UsedThisMonth: ent.UsedThisMonth + 1,
		},
	}
	if evaluation, ok := extractJSON(answer); ok {
		res.Evaluation = evaluation
	} else {
		res.AnalysisText = answer
	}
	return res, nil
}

func (s *analysisService) Followup(ctx context.Context, req *dto.FollowupRequest) (*dto.FollowupResponse, error) {
	userId, err := uuid.Parse(req.UserId)
	if err != nil {
		return nil, dto.ErrBadRequest
	}

	ent, used, err := s.entitlementService.CheckFollowup(ctx, userId, req.HandId)
	if err != nil {
		return nil, err
	}

	history := []llm.Message{
		{Role: "system", Content: constant.FollowupSystemPrompt},
		{Role: "user", Content: buildFollowupPrompt(req)},
	}

	answer, err := s.llmProvider.Chat(ctx, history, llm.WithTemperature(0.4))
	if err != nil {
		return nil, &dto.UpstreamError{Source: "llm", Err: err}
	}

	handId := req.HandId
	if err := s.entitlementService.RecordUsage(ctx, userId, entity.UsageActionFollowup, &handId); err != nil {
		s.log.Warn("analysis", "failed to record followup usage", map[string]interface{}{
			"user_id": req.UserId,
			"hand_id": req.HandId,
			"error":   err.Error(),
		})
	}

	return &dto.FollowupResponse{
		Ok:     true,
		HandId: req.HandId,
		Answer: answer,
		Usage: dto.HandUsageDTO{
			Plan:             ent.Plan,
			FollowupsPerHand: ent.FollowupsPerHand,
			UsedForThisHand:  used + 1,
		},
	}, nil
}

func buildFollowupPrompt(req *dto.FollowupRequest) string {
	var sb strings.Builder
	if len(req.Snapshot) > 0 {
		sb.WriteString("Hand snapshot:\n")
		sb.Write(req.Snapshot)
		sb.WriteString("\n\n")
	}
	if len(req.Evaluation) > 0 {
		sb.WriteString("Previous evaluation:\n")
		sb.Write(req.Evaluation)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Question: ")
	sb.WriteString(req.Question)
	return sb.String()
}

// extractJSON pulls a JSON object out of a model reply, tolerating markdown
// code fences around it.
func extractJSON(answer string) (json.RawMessage, bool) {
	text := strings.TrimSpace(answer)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
		return nil, false
	}
	if !json.Valid([]byte(text)) {
		return nil, false
	}
	return json.RawMessage(text), true
}
