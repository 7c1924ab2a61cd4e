package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quest_backend/internal/model"
	"quest_backend/internal/repository"
	"quest_backend/internal/util"
	"quest_backend/pkg/logger"
	"quest_backend/pkg/monitoring"
	"quest_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuestService struct {
	QuestRepo *repository.QuestRepository
}

func NewQuestService(questRepo *repository.QuestRepository) *QuestService {
	return &QuestService{QuestRepo: questRepo}
}

type CreateQuestRequest struct {
	Name        string        `json:"name" binding:"required,max=128"`
	Description string        `json:"description" binding:"max=256"`
	Tasks       []TaskRequest `json:"tasks" binding:"dive"`
}

type SortRequest struct {
	Column string `json:"column"`
	Order  string `json:"order" binding:"required,oneof=asc desc"`
}

// PaginationRequest keeps pointers so that an absent field takes its
// default while an explicit zero limit is still rejected.
type PaginationRequest struct {
	Limit  *int `json:"limit" binding:"omitempty,gt=0"`
	Offset *int `json:"offset" binding:"omitempty,gte=0"`
}

func (p PaginationRequest) Values() (limit, offset int) {
	limit, offset = util.DefaultLimit, util.DefaultOffset
	if p.Limit != nil {
		limit = *p.Limit
	}
	if p.Offset != nil {
		offset = *p.Offset
	}
	return limit, offset
}

type FilterRequest struct {
	Sorts      []SortRequest     `json:"sorts" binding:"dive"`
	Pagination PaginationRequest `json:"pagination"`
}

type QuestSummary = repository.QuestSummaryRow

type TaskResponse struct {
	ID        uint           `json:"id"`
	Type      model.TaskType `json:"type"`
	Question  string         `json:"question"`
	Responses []string       `json:"responses"`
	Answers   []string       `json:"answers"`
	Order     int            `json:"order"`
}

type QuestDetail struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Tasks       []TaskResponse `json:"tasks"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toTaskResponse(t model.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		Type:      t.Type,
		Question:  t.Question,
		Responses: nonNil(t.Responses),
		Answers:   nonNil(t.Answers),
		Order:     t.Order,
	}
}

func toQuestDetail(q *model.Quest, tasks []model.Task) *QuestDetail {
	detail := &QuestDetail{
		ID:          q.ID,
		Name:        q.Name,
		Description: q.Description,
		Tasks:       make([]TaskResponse, 0, len(tasks)),
	}
	for _, t := range tasks {
		detail.Tasks = append(detail.Tasks, toTaskResponse(t))
	}
	return detail
}

// ListQuests is the fixed id-ordered listing kept for older clients.
func (s *QuestService) ListQuests(ctx context.Context, limit, offset int) ([]QuestSummary, error) {
	return s.QuestRepo.ListQuests(ctx, []repository.SortSpec{{Column: "id"}}, limit, offset)
}

func (s *QuestService) ListQuestsByFilters(ctx context.Context, req FilterRequest) ([]QuestSummary, error) {
	sorts := make([]repository.SortSpec, 0, len(req.Sorts))
	for _, sr := range req.Sorts {
		column := sr.Column
		if column == "" {
			column = "id"
		}
		sorts = append(sorts, repository.SortSpec{Column: column, Desc: sr.Order == util.SortDesc})
	}

	limit, offset := req.Pagination.Values()
	rows, err := s.QuestRepo.ListQuests(ctx, sorts, limit, offset)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownSortColumn) {
			return nil, util.NewValidationError("Sort by non-existing field")
		}
		return nil, err
	}
	return rows, nil
}

// CreateQuest validates every task and then stores the quest together with
// its tasks. Task order follows the request.
func (s *QuestService) CreateQuest(ctx context.Context, req CreateQuestRequest) (*QuestDetail, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, util.NewValidationError("Quest name must not be empty")
	}
	for i, t := range req.Tasks {
		if err := ValidateTask(t); err != nil {
			return nil, util.NewValidationError(fmt.Sprintf("tasks[%d]: %s", i, err.Error()))
		}
	}

	ctx, span := tracing.Tracer.Start(ctx, "QuestService.CreateQuest")
	defer span.End()
	span.SetAttributes(
		attribute.String("quest.name", req.Name),
		attribute.Int("quest.tasks", len(req.Tasks)),
	)

	quest := &model.Quest{
		Name:        req.Name,
		Description: req.Description,
	}
	tasks := make([]model.Task, 0, len(req.Tasks))
	for _, t := range req.Tasks {
		tasks = append(tasks, model.Task{
			Type:      t.Type,
			Question:  t.Question,
			Responses: model.StringList(nonNil(t.Responses)),
			Answers:   model.StringList(nonNil(t.Answers)),
		})
	}

	if err := s.QuestRepo.CreateWithTasks(ctx, quest, tasks); err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, repository.ErrQuestNameTaken):
			span.SetStatus(codes.Error, "duplicate quest name")
			return nil, util.NewDuplicateError("Quest with this name already exists")
		case errors.Is(err, repository.ErrQuestionNotUnique):
			span.SetStatus(codes.Error, "duplicate question")
			return nil, util.NewDuplicateError("Each question should be unique")
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("create quest: %w", err)
	}

	monitoring.QuestsCreated.Inc()
	logger.Log.Info("Quest created",
		zap.Uint("quest_id", quest.ID),
		zap.String("name", quest.Name),
		zap.Int("tasks", len(tasks)),
	)

	return toQuestDetail(quest, quest.Tasks), nil
}

func (s *QuestService) GetQuestDetail(ctx context.Context, id uint) (*QuestDetail, error) {
	quest, err := s.QuestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("Quest with given id not exist")
		}
		return nil, fmt.Errorf("find quest %d: %w", id, err)
	}

	tasks, err := s.QuestRepo.ListTasks(ctx, quest.ID)
	if err != nil {
		return nil, err
	}
	return toQuestDetail(quest, tasks), nil
}
