package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gymsheet/training-app/internal/domain"
	"gymsheet/training-app/internal/pagination"
	"gymsheet/training-app/internal/pkg/logger"
	"gymsheet/training-app/internal/service"
)

// GroupHandler holds the group composition engine dependency.
type GroupHandler struct {
	groupService service.GroupService
	log          *logger.Logger
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService service.GroupService, logg *logger.Logger) *GroupHandler {
	return &GroupHandler{groupService: groupService, log: logg}
}

// --- DTOs ---

type ExerciseConfigurationRequest struct {
	ExerciseID uint   `json:"exerciseId" binding:"required,gt=0"`
	MethodID   *uint  `json:"methodId" binding:"omitempty,gt=0"`
	Series     string `json:"series" binding:"required"`
	Reps       string `json:"reps" binding:"required"`
}

type ExerciseMethodRequest struct {
	Rest                   *string                        `json:"rest"`
	Observations           *string                        `json:"observations"`
	ExerciseConfigurations []ExerciseConfigurationRequest `json:"exerciseConfigurations" binding:"omitempty,dive"`
}

// CreateGroupRequest defines the composite creation payload: the group row
// plus its ordered slots and their configurations.
type CreateGroupRequest struct {
	Name            string                  `json:"name" binding:"required"`
	PublicName      *string                 `json:"publicName"`
	CategoryID      uint                    `json:"categoryId" binding:"required,gt=0"`
	ExerciseMethods []ExerciseMethodRequest `json:"exerciseMethods" binding:"omitempty,dive"`
}

// UpdateGroupRequest touches group metadata only.
type UpdateGroupRequest struct {
	Name       *string `json:"name"`
	PublicName *string `json:"publicName"`
}

// UpdateConfigurationRequest is a partial configuration edit; clearMethod
// removes the optional method reference.
type UpdateConfigurationRequest struct {
	ExerciseID  *uint   `json:"exerciseId" binding:"omitempty,gt=0"`
	MethodID    *uint   `json:"methodId" binding:"omitempty,gt=0"`
	ClearMethod bool    `json:"clearMethod"`
	Series      *string `json:"series"`
	Reps        *string `json:"reps"`
}

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ExerciseConfigurationResponse struct {
	ID               uint              `json:"id"`
	ExerciseMethodID uint              `json:"exerciseMethodId"`
	ExerciseID       uint              `json:"exerciseId"`
	MethodID         *uint             `json:"methodId,omitempty"`
	Series           string            `json:"series"`
	Reps             string            `json:"reps"`
	Exercise         *ExerciseResponse `json:"exercise,omitempty"`
	Method           *MethodResponse   `json:"method,omitempty"`
}

type ExerciseMethodResponse struct {
	ID                     uint                            `json:"id"`
	Rest                   string                          `json:"rest"`
	Observations           string                          `json:"observations"`
	Order                  int                             `json:"order"`
	ExerciseConfigurations []ExerciseConfigurationResponse `json:"exerciseConfigurations"`
}

// GroupResponse is the canonical full group shape: the same structure is
// returned after a create, an update, or a plain fetch.
type GroupResponse struct {
	ID              uint                     `json:"id"`
	Name            string                   `json:"name"`
	PublicName      *string                  `json:"publicName,omitempty"`
	CategoryID      uint                     `json:"categoryId"`
	Category        *CategoryResponse        `json:"category,omitempty"`
	ExerciseMethods []ExerciseMethodResponse `json:"exerciseMethods"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

func mapCategoryToResponse(cat *domain.ExerciseGroupCategory) *CategoryResponse {
	if cat == nil {
		return nil
	}
	return &CategoryResponse{ID: cat.ID, Name: cat.Name}
}

func mapConfigurationToResponse(cfg *domain.ExerciseConfiguration) ExerciseConfigurationResponse {
	resp := ExerciseConfigurationResponse{
		ID:               cfg.ID,
		ExerciseMethodID: cfg.ExerciseMethodID,
		ExerciseID:       cfg.ExerciseID,
		MethodID:         cfg.MethodID,
		Series:           cfg.Series,
		Reps:             cfg.Reps,
	}
	if cfg.Exercise != nil {
		ex := MapExerciseToResponse(cfg.Exercise)
		resp.Exercise = &ex
	}
	if cfg.Method != nil {
		m := MapMethodToResponse(cfg.Method)
		resp.Method = &m
	}
	return resp
}

func mapExerciseMethodToResponse(method *domain.ExerciseMethod) ExerciseMethodResponse {
	configs := make([]ExerciseConfigurationResponse, len(method.ExerciseConfigurations))
	for i := range method.ExerciseConfigurations {
		configs[i] = mapConfigurationToResponse(&method.ExerciseConfigurations[i])
	}
	return ExerciseMethodResponse{
		ID:                     method.ID,
		Rest:                   method.Rest,
		Observations:           method.Observations,
		Order:                  method.Order,
		ExerciseConfigurations: configs,
	}
}

// MapGroupToResponse converts a full domain.ExerciseGroup graph to its
// canonical response shape.
func MapGroupToResponse(group *domain.ExerciseGroup) GroupResponse {
	if group == nil {
		return GroupResponse{}
	}
	methods := make([]ExerciseMethodResponse, len(group.ExerciseMethods))
	for i := range group.ExerciseMethods {
		methods[i] = mapExerciseMethodToResponse(&group.ExerciseMethods[i])
	}
	return GroupResponse{
		ID:              group.ID,
		Name:            group.Name,
		PublicName:      group.PublicName,
		CategoryID:      group.CategoryID,
		Category:        mapCategoryToResponse(group.Category),
		ExerciseMethods: methods,
		CreatedAt:       group.CreatedAt,
		UpdatedAt:       group.UpdatedAt,
	}
}

func mapGroupsToResponse(groups []domain.ExerciseGroup) []GroupResponse {
	responses := make([]GroupResponse, len(groups))
	for i := range groups {
		responses[i] = MapGroupToResponse(&groups[i])
	}
	return responses
}

func mapMethodRequestToInput(req ExerciseMethodRequest) service.ExerciseMethodInput {
	configs := make([]service.ExerciseConfigurationInput, len(req.ExerciseConfigurations))
	for i, cfg := range req.ExerciseConfigurations {
		configs[i] = service.ExerciseConfigurationInput{
			ExerciseID: cfg.ExerciseID,
			MethodID:   cfg.MethodID,
			Series:     cfg.Series,
			Reps:       cfg.Reps,
		}
	}
	return service.ExerciseMethodInput{
		Rest:                   req.Rest,
		Observations:           req.Observations,
		ExerciseConfigurations: configs,
	}
}

// --- Handler Methods ---

func (h *GroupHandler) ListCategories(c *gin.Context) {
	categories, err := h.groupService.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *mapCategoryToResponse(&categories[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	methods := make([]service.ExerciseMethodInput, len(req.ExerciseMethods))
	for i, methodReq := range req.ExerciseMethods {
		methods[i] = mapMethodRequestToInput(methodReq)
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), service.CreateGroupInput{
		Name:            req.Name,
		PublicName:      req.PublicName,
		CategoryID:      req.CategoryID,
		ExerciseMethods: methods,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, MapGroupToResponse(group))
}

func (h *GroupHandler) GetGroup(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	group, err := h.groupService.GetGroupFull(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	if group == nil {
		abortWithError(c, http.StatusNotFound, "Exercise group not found.")
		return
	}
	c.JSON(http.StatusOK, MapGroupToResponse(group))
}

func (h *GroupHandler) ListGroups(c *gin.Context) {
	page, ok := parsePageParams(c)
	if !ok {
		return
	}
	categoryID, err := pagination.ParseCategoryFilter(c.Query("categoryId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	groups, total, err := h.groupService.ListGroups(c.Request.Context(), page, categoryID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(mapGroupsToResponse(groups), total, page))
}

func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	group, err := h.groupService.UpdateGroup(c.Request.Context(), id, service.UpdateGroupInput{
		Name:       req.Name,
		PublicName: req.PublicName,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MapGroupToResponse(group))
}

func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.groupService.DeleteGroup(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GroupHandler) AddExerciseMethod(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ExerciseMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	group, err := h.groupService.AddExerciseMethod(c.Request.Context(), id, mapMethodRequestToInput(req))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, MapGroupToResponse(group))
}

func (h *GroupHandler) DeleteExerciseMethod(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.groupService.DeleteExerciseMethod(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GroupHandler) GetConfiguration(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	cfg, err := h.groupService.GetConfigurationFull(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	if cfg == nil {
		abortWithError(c, http.StatusNotFound, "Exercise configuration not found.")
		return
	}
	c.JSON(http.StatusOK, mapConfigurationToResponse(cfg))
}

func (h *GroupHandler) UpdateConfiguration(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	cfg, err := h.groupService.UpdateConfiguration(c.Request.Context(), id, service.UpdateConfigurationInput{
		ExerciseID:  req.ExerciseID,
		MethodID:    req.MethodID,
		ClearMethod: req.ClearMethod,
		Series:      req.Series,
		Reps:        req.Reps,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, mapConfigurationToResponse(cfg))
}

func (h *GroupHandler) DeleteConfiguration(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.groupService.DeleteConfiguration(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
