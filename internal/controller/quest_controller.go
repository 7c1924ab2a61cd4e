package controller

import (
	"strconv"

	"quest_backend/internal/service"
	"quest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestController struct {
	QuestService *service.QuestService
}

func NewQuestController(questService *service.QuestService) *QuestController {
	return &QuestController{QuestService: questService}
}

type listQuestsQuery struct {
	Limit  int `form:"limit,default=20" binding:"gt=0"`
	Offset int `form:"offset,default=0" binding:"gte=0"`
}

// @Summary List quests
// @Description Deprecated: use POST /quests/by_filters. Quests ordered by id.
// @Tags Quest Management
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {object} util.Response{data=[]service.QuestSummary}
// @Failure 400 {object} util.Response
// @Deprecated
// @Router /v1/quests [get]
func (c *QuestController) ListQuests(ctx *gin.Context) {
	var q listQuestsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quests, err := c.QuestService.ListQuests(ctx.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quests)
}

// @Summary Create quest
// @Description Creates a quest and its tasks in one transaction.
// @Tags Quest Management
// @Accept json
// @Produce json
// @Param quest body service.CreateQuestRequest true "Quest with tasks"
// @Success 201 {object} util.Response{data=service.QuestDetail}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /v1/quests [post]
func (c *QuestController) CreateQuest(ctx *gin.Context) {
	var req service.CreateQuestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quest, err := c.QuestService.CreateQuest(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, quest)
}

// @Summary List quests by filters
// @Description Sorted and paginated quest listing with task and completion counts.
// @Tags Quest Management
// @Accept json
// @Produce json
// @Param filters body service.FilterRequest true "Sorts and pagination"
// @Success 200 {object} util.Response{data=[]service.QuestSummary}
// @Failure 400 {object} util.Response
// @Router /v1/quests/by_filters [post]
func (c *QuestController) ListQuestsByFilters(ctx *gin.Context) {
	var req service.FilterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quests, err := c.QuestService.ListQuestsByFilters(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quests)
}

// @Summary Quest detail
// @Tags Quest Management
// @Produce json
// @Param id path int true "Quest ID"
// @Success 200 {object} util.Response{data=service.QuestDetail}
// @Failure 404 {object} util.Response
// @Router /v1/quests/{id} [get]
func (c *QuestController) GetQuest(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	quest, err := c.QuestService.GetQuestDetail(ctx.Request.Context(), uint(id))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, quest)
}
