package repository

import (
	"context"
	"errors"
	"fmt"

	"quest_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrQuestNameTaken    = errors.New("quest name already taken")
	ErrQuestionNotUnique = errors.New("question is not unique within the quest")
	ErrUnknownSortColumn = errors.New("unknown sort column")
)

type QuestRepository struct {
	DB *gorm.DB
}

func NewQuestRepository(db *gorm.DB) *QuestRepository {
	return &QuestRepository{DB: db}
}

// QuestSummaryRow is one row of the quest listing.
type QuestSummaryRow struct {
	ID                uint   `gorm:"column:id" json:"id"`
	Name              string `gorm:"column:name" json:"name"`
	Description       string `gorm:"column:description" json:"description"`
	QuestionsNumber   int64  `gorm:"column:questions_number" json:"questionsNumber"`
	CompletionsNumber int64  `gorm:"column:completions_number" json:"completionsNumber"`
}

// questSortColumns maps every QuestSummaryRow json name to the column it sorts by.
var questSortColumns = map[string]clause.Column{
	"id":                {Table: "quest", Name: "id"},
	"name":              {Table: "quest", Name: "name"},
	"description":       {Table: "quest", Name: "description"},
	"questionsNumber":   {Name: "questions_number"},
	"completionsNumber": {Name: "completions_number"},
}

type SortSpec struct {
	Column string
	Desc   bool
}

// questOrderBy always ends with quest.id so equal keys keep a stable order.
func questOrderBy(sorts []SortSpec) (clause.OrderBy, error) {
	columns := make([]clause.OrderByColumn, 0, len(sorts)+1)
	for _, s := range sorts {
		col, ok := questSortColumns[s.Column]
		if !ok {
			return clause.OrderBy{}, fmt.Errorf("%w: %q", ErrUnknownSortColumn, s.Column)
		}
		columns = append(columns, clause.OrderByColumn{Column: col, Desc: s.Desc})
	}
	columns = append(columns, clause.OrderByColumn{Column: questSortColumns["id"]})
	return clause.OrderBy{Columns: columns}, nil
}

func (r *QuestRepository) ListQuests(ctx context.Context, sorts []SortSpec, limit, offset int) ([]QuestSummaryRow, error) {
	orderBy, err := questOrderBy(sorts)
	if err != nil {
		return nil, err
	}

	rows := make([]QuestSummaryRow, 0)
	err = r.DB.WithContext(ctx).
		Table("quest").
		Select("quest.id, quest.name, quest.description, " +
			"COUNT(DISTINCT task.id) AS questions_number, " +
			"COUNT(DISTINCT completion.id) AS completions_number").
		Joins("LEFT JOIN task ON task.quest_id = quest.id").
		Joins("LEFT JOIN completion ON completion.quest_id = quest.id").
		Group("quest.id, quest.name, quest.description").
		Order(orderBy).
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list quests: %w", err)
	}
	return rows, nil
}

// CreateWithTasks inserts quest and then tasks in one transaction. Tasks get
// their position as Order and receive generated ids in place. Nothing is
// committed unless both inserts succeed.
func (r *QuestRepository) CreateWithTasks(ctx context.Context, quest *model.Quest, tasks []model.Task) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(quest).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrQuestNameTaken
			}
			return fmt.Errorf("insert quest: %w", err)
		}

		if len(tasks) == 0 {
			return nil
		}

		for i := range tasks {
			tasks[i].QuestID = quest.ID
			tasks[i].Order = i
		}

		if err := tx.Create(&tasks).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrQuestionNotUnique
			}
			return fmt.Errorf("insert tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	quest.Tasks = tasks
	return nil
}

func (r *QuestRepository) FindByID(ctx context.Context, id uint) (*model.Quest, error) {
	var q model.Quest
	if err := r.DB.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// ListTasks returns the tasks of a quest by order, then id.
func (r *QuestRepository) ListTasks(ctx context.Context, questID uint) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	err := r.DB.WithContext(ctx).
		Where("quest_id = ?", questID).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "order"}},
			{Column: clause.Column{Name: "id"}},
		}}).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks of quest %d: %w", questID, err)
	}
	return tasks, nil
}
