package service

import (
	"context"
	"fmt"
	"time"

	"hand-analysis-be/internal/dto"
	"hand-analysis-be/internal/entity"
	"hand-analysis-be/internal/repository/specification"
	"hand-analysis-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IHistoryService interface {
	Save(ctx context.Context, req *dto.SaveHistoryRequest) (*dto.SaveHistoryResponse, error)
	List(ctx context.Context, userId uuid.UUID) (*dto.HistoryListResponse, error)
	Detail(ctx context.Context, userId, id uuid.UUID) (*dto.HistoryDetailResponse, error)
	Rename(ctx context.Context, req *dto.RenameHistoryRequest) (*dto.SimpleOkResponse, error)
	UpdateConversation(ctx context.Context, req *dto.UpdateConversationRequest) (*dto.SimpleOkResponse, error)
	DeleteAll(ctx context.Context, userId uuid.UUID) (*dto.DeleteAllHistoryResponse, error)
}

type historyService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewHistoryService(uowFactory unitofwork.RepositoryFactory) IHistoryService {
	return &historyService{
		uowFactory: uowFactory,
	}
}

func (s *historyService) Save(ctx context.Context, req *dto.SaveHistoryRequest) (*dto.SaveHistoryResponse, error) {
	userId, err := uuid.Parse(req.UserId)
	if err != nil {
		return nil, dto.ErrBadRequest
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("Hand %s", req.HandId)
	}

	history := &entity.HandHistory{
		Id:           uuid.New(),
		UserId:       userId,
		HandId:       req.HandId,
		Title:        title,
		Snapshot:     req.Snapshot,
		Evaluation:   req.Evaluation,
		Conversation: req.Conversation,
		Markdown:     req.Markdown,
		CreatedAt:    time.Now().UTC(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.HandHistoryRepository().Create(ctx, history); err != nil {
		return nil, err
	}

	return &dto.SaveHistoryResponse{Ok: true, Id: history.Id}, nil
}

func (s *historyService) List(ctx context.Context, userId uuid.UUID) (*dto.HistoryListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	histories, err := uow.HandHistoryRepository().FindAllSummaries(ctx, userId)
	if err != nil {
		return nil, err
	}

	result := make([]dto.HistorySummaryDTO, 0, len(histories))
	for _, h := range histories {
		result = append(result, dto.HistorySummaryDTO{
			Id:         h.Id,
			HandId:     h.HandId,
			Title:      h.Title,
			Evaluation: h.Evaluation,
			Markdown:   h.Markdown,
			CreatedAt:  h.CreatedAt,
		})
	}

	return &dto.HistoryListResponse{Ok: true, Histories: result}, nil
}

func (s *historyService) Detail(ctx context.Context, userId, id uuid.UUID) (*dto.HistoryDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	history, err := uow.HandHistoryRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if history == nil {
		return nil, dto.ErrNotFound
	}

	return &dto.HistoryDetailResponse{
		Ok: true,
		History: dto.HistoryDetailDTO{
			Id:           history.Id,
			UserId:       history.UserId,
			HandId:       history.HandId,
			Title:        history.Title,
			Snapshot:     history.Snapshot,
			Evaluation:   history.Evaluation,
			Conversation: history.Conversation,
			Markdown:     history.Markdown,
			CreatedAt:    history.CreatedAt,
		},
	}, nil
}

func (s *historyService) Rename(ctx context.Context, req *dto.RenameHistoryRequest) (*dto.SimpleOkResponse, error) {
	userId, id, err := parseOwnedId(req.UserId, req.Id)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.ensureOwned(ctx, uow, userId, id); err != nil {
		return nil, err
	}

	affected, err := uow.HandHistoryRepository().UpdateTitle(ctx, id, req.Title)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, dto.ErrNotFound
	}

	return &dto.SimpleOkResponse{Ok: true}, nil
}

func (s *historyService) UpdateConversation(ctx context.Context, req *dto.UpdateConversationRequest) (*dto.SimpleOkResponse, error) {
	userId, id, err := parseOwnedId(req.UserId, req.Id)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.ensureOwned(ctx, uow, userId, id); err != nil {
		return nil, err
	}

	affected, err := uow.HandHistoryRepository().UpdateConversation(ctx, id, req.Conversation)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, dto.ErrNotFound
	}

	return &dto.SimpleOkResponse{Ok: true}, nil
}

func (s *historyService) DeleteAll(ctx context.Context, userId uuid.UUID) (*dto.DeleteAllHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	deleted, err := uow.HandHistoryRepository().DeleteAllByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	return &dto.DeleteAllHistoryResponse{Ok: true, Deleted: deleted}, nil
}

func (s *historyService) ensureOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) error {
	history, err := uow.HandHistoryRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if history == nil {
		return dto.ErrNotFound
	}
	return nil
}

func parseOwnedId(userIdStr, idStr string) (uuid.UUID, uuid.UUID, error) {
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, dto.ErrBadRequest
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, dto.ErrBadRequest
	}
	return userId, id, nil
}
