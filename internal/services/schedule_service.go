package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"filmdesk/internal/apperrors"
	"filmdesk/internal/models"
)

const (
	NoLocation          = "No Location"
	locationManagerRole = "Location Manager"
	propMasterRole      = "Prop Master"
)

type CreateScheduleItemRequest struct {
	TaskDescription string  `json:"task_description" binding:"required"`
	StartDate       string  `json:"start_date" binding:"required"`
	EndDate         string  `json:"end_date" binding:"required"`
	AssignedTo      *string `json:"assigned_to"`
	Status          *string `json:"status"`
	Location        *string `json:"location"`
}

// UpdateScheduleItemRequest changes only the fields that are present.
type UpdateScheduleItemRequest struct {
	TaskDescription *string `json:"task_description"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	AssignedTo      *string `json:"assigned_to"`
	Status          *string `json:"status"`
	Location        *string `json:"location"`
}

type LocationGroup struct {
	Location string                `json:"location"`
	Items    []models.ScheduleItem `json:"items"`
}

// ScheduleBoard is the schedule grouped by location together with the
// breakdown elements that still need scheduling.
type ScheduleBoard struct {
	Groups     []LocationGroup    `json:"groups"`
	Characters []models.Character `json:"characters"`
	Locations  []models.Location  `json:"locations"`
	Props      []string           `json:"props"`
}

type GeneratedTasks struct {
	Message string   `json:"message"`
	Count   int      `json:"count"`
	Tasks   []string `json:"tasks"`
}

type ScheduleService struct {
	items ScheduleStore
	guard ownershipGuard
}

func NewScheduleService(projects ProjectStore, items ScheduleStore) *ScheduleService {
	return &ScheduleService{items: items, guard: ownershipGuard{projects: projects}}
}

func (s *ScheduleService) List(ctx context.Context, userID, projectID uuid.UUID) ([]models.ScheduleItem, error) {
	if _, err := s.guard.project(ctx, userID, projectID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule: %w", err)
	}
	return items, nil
}

func (s *ScheduleService) Board(ctx context.Context, userID, projectID uuid.UUID) (*ScheduleBoard, error) {
	project, err := s.guard.project(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule: %w", err)
	}

	board := &ScheduleBoard{
		Groups:     groupByLocation(items),
		Characters: []models.Character{},
		Locations:  []models.Location{},
		Props:      []string{},
	}
	breakdown, err := project.Breakdown()
	if err != nil {
		return nil, fmt.Errorf("stored analysis is unreadable: %w", err)
	}
	if breakdown != nil {
		board.Characters = breakdown.Characters
		board.Locations = breakdown.Locations
		board.Props = breakdown.Props
	}
	return board, nil
}

// groupByLocation keeps first-seen location order; items without a location
// go to the NoLocation bucket.
func groupByLocation(items []models.ScheduleItem) []LocationGroup {
	groups := []LocationGroup{}
	index := map[string]int{}
	for _, item := range items {
		key := NoLocation
		if item.Location != nil && strings.TrimSpace(*item.Location) != "" {
			key = *item.Location
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, LocationGroup{Location: key})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

func (s *ScheduleService) Create(ctx context.Context, userID, projectID uuid.UUID, req CreateScheduleItemRequest) (*models.ScheduleItem, error) {
	if _, err := s.guard.project(ctx, userID, projectID); err != nil {
		return nil, err
	}

	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}

	item := &models.ScheduleItem{
		ProjectID:       projectID,
		TaskDescription: req.TaskDescription,
		StartDate:       start,
		EndDate:         end,
		AssignedTo:      req.AssignedTo,
		Location:        req.Location,
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create schedule item: %w", err)
	}
	return item, nil
}

func (s *ScheduleService) Update(ctx context.Context, userID, itemID uuid.UUID, req UpdateScheduleItemRequest) (*models.ScheduleItem, error) {
	item, err := s.load(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if req.TaskDescription != nil {
		item.TaskDescription = *req.TaskDescription
	}
	if req.StartDate != nil && *req.StartDate != "" {
		if item.StartDate, err = parseDate("start_date", *req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != nil && *req.EndDate != "" {
		if item.EndDate, err = parseDate("end_date", *req.EndDate); err != nil {
			return nil, err
		}
	}
	if req.AssignedTo != nil {
		item.AssignedTo = req.AssignedTo
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	if req.Location != nil {
		item.Location = req.Location
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update schedule item: %w", err)
	}
	return item, nil
}

func (s *ScheduleService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	if _, err := s.load(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete schedule item: %w", err)
	}
	return nil
}

// Generate creates one pending task per character, location and prop of the
// stored breakdown, all dated today.
func (s *ScheduleService) Generate(ctx context.Context, userID, projectID uuid.UUID) (*GeneratedTasks, error) {
	project, err := s.guard.project(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if !project.HasAnalysis() {
		return nil, apperrors.InvalidInput("No script analysis found for this project")
	}
	breakdown, err := project.Breakdown()
	if err != nil {
		return nil, fmt.Errorf("stored analysis is unreadable: %w", err)
	}

	today := models.Today()
	task := func(description, assignee string, location *string) models.ScheduleItem {
		assigned := assignee
		return models.ScheduleItem{
			ProjectID:       projectID,
			TaskDescription: description,
			StartDate:       today,
			EndDate:         today,
			AssignedTo:      &assigned,
			Status:          models.DefaultScheduleStatus,
			Location:        location,
		}
	}

	var items []models.ScheduleItem
	for _, c := range breakdown.Characters {
		items = append(items, task(
			fmt.Sprintf("Character: %s - Costume fitting, makeup test, and rehearsal.", c.Name), c.Name, nil))
	}
	for _, l := range breakdown.Locations {
		name := l.Name
		items = append(items, task(
			fmt.Sprintf("Location: %s - Scouting, permits, and set dressing.", l.Name), locationManagerRole, &name))
	}
	for _, p := range breakdown.Props {
		items = append(items, task(
			fmt.Sprintf("Prop: %s - Sourcing, acquisition, or fabrication.", p), propMasterRole, nil))
	}

	if err := s.items.CreateMany(ctx, items); err != nil {
		return nil, fmt.Errorf("failed to create generated tasks: %w", err)
	}

	tasks := make([]string, len(items))
	for i, item := range items {
		tasks[i] = item.TaskDescription
	}
	return &GeneratedTasks{
		Message: fmt.Sprintf("%d tasks generated successfully from script analysis.", len(items)),
		Count:   len(items),
		Tasks:   tasks,
	}, nil
}

func (s *ScheduleService) load(ctx context.Context, userID, itemID uuid.UUID) (*models.ScheduleItem, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule item: %w", err)
	}
	if item == nil {
		return nil, apperrors.NotFound("Schedule item not found")
	}
	if _, err := s.guard.project(ctx, userID, item.ProjectID); err != nil {
		return nil, err
	}
	return item, nil
}

func parseDate(field, value string) (models.Date, error) {
	d, err := models.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return models.Date{}, apperrors.Newf(apperrors.ErrInvalidInput, "Invalid %s %q: expected YYYY-MM-DD", field, value)
	}
	return d, nil
}
