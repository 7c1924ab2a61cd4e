package service

import (
	"context"
	"errors"
	"testing"

	"quest_backend/internal/model"
	"quest_backend/internal/repository"
	"quest_backend/internal/testutil"
	"quest_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*QuestService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewQuestService(repository.NewQuestRepository(db)), db
}

func textTaskRequest(question string) TaskRequest {
	return TaskRequest{Type: model.TaskText, Question: question, Answers: []string{"yes"}}
}

func intPtr(v int) *int { return &v }

func TestCreateQuest_ReturnsDetailInInputOrder(t *testing.T) {
	svc, _ := newTestService(t)

	detail, err := svc.CreateQuest(context.Background(), CreateQuestRequest{
		Name:        "Geography",
		Description: "Countries and capitals",
		Tasks: []TaskRequest{
			textTaskRequest("Capital of France?"),
			{Type: model.TaskSingle, Question: "Largest ocean?", Responses: []string{"Pacific", "Atlantic"}, Answers: []string{"Pacific"}},
		},
	})
	require.NoError(t, err)

	assert.NotZero(t, detail.ID)
	assert.Equal(t, "Geography", detail.Name)
	require.Len(t, detail.Tasks, 2)
	assert.Equal(t, "Capital of France?", detail.Tasks[0].Question)
	assert.Equal(t, 0, detail.Tasks[0].Order)
	assert.Equal(t, []string{}, detail.Tasks[0].Responses)
	assert.Equal(t, model.TaskSingle, detail.Tasks[1].Type)
	assert.Equal(t, 1, detail.Tasks[1].Order)

	fetched, err := svc.GetQuestDetail(context.Background(), detail.ID)
	require.NoError(t, err)
	assert.Equal(t, detail, fetched)
}

func TestCreateQuest_InvalidTaskWritesNothing(t *testing.T) {
	svc, db := newTestService(t)

	_, err := svc.CreateQuest(context.Background(), CreateQuestRequest{
		Name: "Broken",
		Tasks: []TaskRequest{
			textTaskRequest("Fine?"),
			{Type: model.TaskSingle, Question: "Pick one", Responses: []string{"only"}, Answers: []string{"only"}},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrValidation))
	assert.Contains(t, err.Error(), "tasks[1]")
	assert.Contains(t, err.Error(), "Single questions accept at least 2 response variants")

	var quests int64
	require.NoError(t, db.Model(&model.Quest{}).Count(&quests).Error)
	assert.Zero(t, quests)
}

func TestCreateQuest_EmptyNameOrQuestionWritesNothing(t *testing.T) {
	svc, db := newTestService(t)

	_, err := svc.CreateQuest(context.Background(), CreateQuestRequest{
		Name:  " ",
		Tasks: []TaskRequest{textTaskRequest("Fine?")},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrValidation))
	assert.Equal(t, "Quest name must not be empty", err.Error())

	_, err = svc.CreateQuest(context.Background(), CreateQuestRequest{
		Name:  "Blank question",
		Tasks: []TaskRequest{textTaskRequest("")},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrValidation))
	assert.Equal(t, "tasks[0]: Question must not be empty", err.Error())

	var quests, tasks int64
	require.NoError(t, db.Model(&model.Quest{}).Count(&quests).Error)
	require.NoError(t, db.Model(&model.Task{}).Count(&tasks).Error)
	assert.Zero(t, quests)
	assert.Zero(t, tasks)
}

func TestCreateQuest_DuplicateQuestionIsAtomic(t *testing.T) {
	svc, db := newTestService(t)

	_, err := svc.CreateQuest(context.Background(), CreateQuestRequest{
		Name:  "Q1",
		Tasks: []TaskRequest{textTaskRequest("Same?"), textTaskRequest("Same?")},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrDuplicate))
	assert.Equal(t, "Each question should be unique", err.Error())

	var quests int64
	require.NoError(t, db.Model(&model.Quest{}).Where("name = ?", "Q1").Count(&quests).Error)
	assert.Zero(t, quests)
}

func TestCreateQuest_DuplicateName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateQuest(ctx, CreateQuestRequest{Name: "Trivia", Tasks: []TaskRequest{textTaskRequest("A?")}})
	require.NoError(t, err)

	_, err = svc.CreateQuest(ctx, CreateQuestRequest{Name: "Trivia", Tasks: []TaskRequest{textTaskRequest("B?")}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrDuplicate))
	assert.Equal(t, "Quest with this name already exists", err.Error())
}

func TestGetQuestDetail_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetQuestDetail(context.Background(), 12345)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrResourceNotFound))
	assert.Equal(t, "Quest with given id not exist", err.Error())
}

func TestListQuestsByFilters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for _, n := range []string{"Charlie", "Alpha", "Bravo"} {
		_, err := svc.CreateQuest(ctx, CreateQuestRequest{Name: n})
		require.NoError(t, err)
	}

	rows, err := svc.ListQuestsByFilters(ctx, FilterRequest{Sorts: []SortRequest{{Column: "name", Order: util.SortAsc}}})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Alpha", rows[0].Name)
	assert.Equal(t, "Charlie", rows[2].Name)

	rows, err = svc.ListQuestsByFilters(ctx, FilterRequest{
		Sorts:      []SortRequest{{Order: util.SortDesc}},
		Pagination: PaginationRequest{Limit: intPtr(1), Offset: intPtr(1)},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alpha", rows[0].Name)

	_, err = svc.ListQuestsByFilters(ctx, FilterRequest{Sorts: []SortRequest{{Column: "questions_number", Order: util.SortAsc}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrValidation))
	assert.Equal(t, "Sort by non-existing field", err.Error())
}

func TestListQuests_IDOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for _, n := range []string{"Zeta", "Eta"} {
		_, err := svc.CreateQuest(ctx, CreateQuestRequest{Name: n, Tasks: []TaskRequest{textTaskRequest("Q?")}})
		require.NoError(t, err)
	}

	rows, err := svc.ListQuests(ctx, util.DefaultLimit, util.DefaultOffset)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Zeta", rows[0].Name)
	assert.Equal(t, int64(1), rows[0].QuestionsNumber)
	assert.Equal(t, int64(0), rows[0].CompletionsNumber)
}

func TestPaginationRequest_Values(t *testing.T) {
	limit, offset := PaginationRequest{}.Values()
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	limit, offset = PaginationRequest{Limit: intPtr(5), Offset: intPtr(10)}.Values()
	assert.Equal(t, 5, limit)
	assert.Equal(t, 10, offset)
}
