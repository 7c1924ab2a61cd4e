package service

import (
	"fmt"
	"strings"

	"quest_backend/internal/model"
	"quest_backend/internal/util"
)

type TaskRequest struct {
	Type      model.TaskType `json:"type" binding:"required"`
	Question  string         `json:"question" binding:"required,max=512"`
	Responses []string       `json:"responses"`
	Answers   []string       `json:"answers" binding:"required,min=1"`
}

// taskRule is the cardinality rule of one task type.
type taskRule struct {
	label        string
	minResponses int
	maxResponses int // -1 means unbounded
	minAnswers   int
	maxAnswers   int
}

var taskRules = map[model.TaskType]taskRule{
	model.TaskText:     {label: "Text", minResponses: 0, maxResponses: 0, minAnswers: 1, maxAnswers: 1},
	model.TaskSingle:   {label: "Single", minResponses: 2, maxResponses: -1, minAnswers: 1, maxAnswers: 1},
	model.TaskImage:    {label: "Image", minResponses: 2, maxResponses: -1, minAnswers: 1, maxAnswers: 1},
	model.TaskMultiple: {label: "Multiple", minResponses: 2, maxResponses: -1, minAnswers: 1, maxAnswers: -1},
}

// ValidateTask checks the response and answer counts required by the task type.
func ValidateTask(t TaskRequest) error {
	if !t.Type.Valid() {
		return util.NewValidationError(fmt.Sprintf("Unknown task type %q", t.Type))
	}
	if strings.TrimSpace(t.Question) == "" {
		return util.NewValidationError("Question must not be empty")
	}
	rule := taskRules[t.Type]

	responses, answers := len(t.Responses), len(t.Answers)

	switch {
	case rule.maxResponses == 0 && responses > 0:
		return util.NewValidationError(rule.label + " questions do not accept any response variants")
	case responses < rule.minResponses:
		return util.NewValidationError(fmt.Sprintf("%s questions accept at least %d response variants", rule.label, rule.minResponses))
	}

	switch {
	case rule.maxAnswers == 1 && answers != 1:
		return util.NewValidationError(rule.label + " questions accept only 1 correct answer")
	case answers < rule.minAnswers:
		return util.NewValidationError(fmt.Sprintf("%s questions accept at least %d correct answer", rule.label, rule.minAnswers))
	}

	return nil
}
