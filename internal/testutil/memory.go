package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"filmdesk/internal/models"
)

// ErrDuplicateEmail mirrors the unique-index violation of the users table.
var ErrDuplicateEmail = errors.New("duplicate key value violates unique constraint \"users_email_key\"")

// MemoryStore is an in-memory stand-in for the PostgreSQL repositories. Lookups
// return (nil, nil) when nothing matches and deleting a project removes its
// children, the same as the real schema.
type MemoryStore struct {
	mu            sync.Mutex
	users         map[uuid.UUID]models.User
	projects      map[uuid.UUID]models.Project
	schedule      map[uuid.UUID]models.ScheduleItem
	expenses      map[uuid.UUID]models.Expense
	assets        map[uuid.UUID]models.Asset
	scenes        map[uuid.UUID]models.Scene
	conversations map[uuid.UUID]models.Conversation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         map[uuid.UUID]models.User{},
		projects:      map[uuid.UUID]models.Project{},
		schedule:      map[uuid.UUID]models.ScheduleItem{},
		expenses:      map[uuid.UUID]models.Expense{},
		assets:        map[uuid.UUID]models.Asset{},
		scenes:        map[uuid.UUID]models.Scene{},
		conversations: map[uuid.UUID]models.Conversation{},
	}
}

func (m *MemoryStore) Users() *MemoryUsers                 { return &MemoryUsers{m} }
func (m *MemoryStore) Projects() *MemoryProjects           { return &MemoryProjects{m} }
func (m *MemoryStore) Schedule() *MemorySchedule           { return &MemorySchedule{m} }
func (m *MemoryStore) Expenses() *MemoryExpenses           { return &MemoryExpenses{m} }
func (m *MemoryStore) Assets() *MemoryAssets               { return &MemoryAssets{m} }
func (m *MemoryStore) Scenes() *MemoryScenes               { return &MemoryScenes{m} }
func (m *MemoryStore) Conversations() *MemoryConversations { return &MemoryConversations{m} }

// users

type MemoryUsers struct{ m *MemoryStore }

func (s *MemoryUsers) Create(_ context.Context, user *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	user.Prepare()
	for _, u := range s.m.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.m.users[user.ID] = *user
	return nil
}

func (s *MemoryUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *MemoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryUsers) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if u, ok := s.m.users[id]; ok {
		u.LastLoginAt = &at
		s.m.users[id] = u
	}
	return nil
}

func (s *MemoryUsers) MarkConfirmed(_ context.Context, id uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if u, ok := s.m.users[id]; ok {
		u.Confirmed = true
		s.m.users[id] = u
	}
	return nil
}

// projects

type MemoryProjects struct{ m *MemoryStore }

func (s *MemoryProjects) Create(_ context.Context, project *models.Project) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	project.Prepare()
	s.m.projects[project.ID] = *project
	return nil
}

func (s *MemoryProjects) GetByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.projects[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *MemoryProjects) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Project, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Project
	for _, p := range s.m.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryProjects) Update(_ context.Context, project *models.Project) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.projects[project.ID]
	if !ok {
		return nil
	}
	p.Name = project.Name
	p.Logline = project.Logline
	p.ForecastedBudget = project.ForecastedBudget
	s.m.projects[project.ID] = p
	return nil
}

func (s *MemoryProjects) Delete(_ context.Context, id uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.projects, id)
	for k, v := range s.m.schedule {
		if v.ProjectID == id {
			delete(s.m.schedule, k)
		}
	}
	for k, v := range s.m.expenses {
		if v.ProjectID == id {
			delete(s.m.expenses, k)
		}
	}
	for k, v := range s.m.assets {
		if v.ProjectID == id {
			delete(s.m.assets, k)
		}
	}
	for k, v := range s.m.scenes {
		if v.ProjectID == id {
			delete(s.m.scenes, k)
		}
	}
	for k, v := range s.m.conversations {
		if v.ProjectID == id {
			delete(s.m.conversations, k)
		}
	}
	return nil
}

func (s *MemoryProjects) SaveAnalysis(_ context.Context, projectID uuid.UUID, breakdown *models.Breakdown) error {
	encoded, err := breakdown.Encode()
	if err != nil {
		return err
	}

	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.projects[projectID]
	if !ok {
		return nil
	}
	genre := breakdown.Genre
	p.AnalysisJSON = &encoded
	p.Genre = &genre
	if breakdown.Logline != "" {
		logline := breakdown.Logline
		p.Logline = &logline
	}
	s.m.projects[projectID] = p

	if len(breakdown.Scenes) == 0 {
		return nil
	}
	statuses := make(map[int]string)
	for k, v := range s.m.scenes {
		if v.ProjectID == projectID {
			statuses[v.SceneNumber] = v.Status
			delete(s.m.scenes, k)
		}
	}
	for _, outline := range breakdown.Scenes {
		scene := models.Scene{
			ProjectID:   projectID,
			SceneNumber: outline.SceneNumber,
			Description: outline.Description,
			Status:      statuses[outline.SceneNumber],
		}
		scene.Prepare()
		s.m.scenes[scene.ID] = scene
	}
	return nil
}

// schedule

type MemorySchedule struct{ m *MemoryStore }

func (s *MemorySchedule) Create(_ context.Context, item *models.ScheduleItem) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	item.Prepare()
	s.m.schedule[item.ID] = *item
	return nil
}

func (s *MemorySchedule) CreateMany(_ context.Context, items []models.ScheduleItem) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range items {
		items[i].Prepare()
		s.m.schedule[items[i].ID] = items[i]
	}
	return nil
}

func (s *MemorySchedule) GetByID(_ context.Context, id uuid.UUID) (*models.ScheduleItem, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	item, ok := s.m.schedule[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *MemorySchedule) ListByProject(_ context.Context, projectID uuid.UUID) ([]models.ScheduleItem, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.ScheduleItem
	for _, item := range s.m.schedule {
		if item.ProjectID == projectID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate.Time) {
			return out[i].StartDate.Before(out[j].StartDate.Time)
		}
		return out[i].TaskDescription < out[j].TaskDescription
	})
	return out, nil
}

func (s *MemorySchedule) Update(_ context.Context, item *models.ScheduleItem) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.schedule[item.ID]; ok {
		s.m.schedule[item.ID] = *item
	}
	return nil
}

func (s *MemorySchedule) Delete(_ context.Context, id uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.schedule, id)
	return nil
}

// expenses

type MemoryExpenses struct{ m *MemoryStore }

func (s *MemoryExpenses) Create(_ context.Context, expense *models.Expense) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	expense.Prepare()
	s.m.expenses[expense.ID] = *expense
	return nil
}

func (s *MemoryExpenses) GetByID(_ context.Context, id uuid.UUID) (*models.Expense, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	e, ok := s.m.expenses[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *MemoryExpenses) ListByProject(_ context.Context, projectID uuid.UUID) ([]models.Expense, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Expense
	for _, e := range s.m.expenses {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].Description < out[j].Description
	})
	return out, nil
}

func (s *MemoryExpenses) Update(_ context.Context, expense *models.Expense) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.expenses[expense.ID]; ok {
		s.m.expenses[expense.ID] = *expense
	}
	return nil
}

func (s *MemoryExpenses) Delete(_ context.Context, id uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.expenses, id)
	return nil
}

// assets

type MemoryAssets struct{ m *MemoryStore }

func (s *MemoryAssets) Create(_ context.Context, asset *models.Asset) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	asset.Prepare()
	s.m.assets[asset.ID] = *asset
	return nil
}

func (s *MemoryAssets) GetByID(_ context.Context, id uuid.UUID) (*models.Asset, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	a, ok := s.m.assets[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *MemoryAssets) ListByProject(_ context.Context, projectID uuid.UUID) ([]models.Asset, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Asset
	for _, a := range s.m.assets {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryAssets) Update(_ context.Context, asset *models.Asset) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.assets[asset.ID]; ok {
		s.m.assets[asset.ID] = *asset
	}
	return nil
}

func (s *MemoryAssets) Delete(_ context.Context, id uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.assets, id)
	return nil
}

// scenes

type MemoryScenes struct{ m *MemoryStore }

func (s *MemoryScenes) Create(_ context.Context, scene *models.Scene) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	scene.Prepare()
	s.m.scenes[scene.ID] = *scene
	return nil
}

func (s *MemoryScenes) GetByID(_ context.Context, id uuid.UUID) (*models.Scene, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	sc, ok := s.m.scenes[id]
	if !ok {
		return nil, nil
	}
	return &sc, nil
}

func (s *MemoryScenes) ListByProject(_ context.Context, projectID uuid.UUID) ([]models.Scene, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Scene
	for _, sc := range s.m.scenes {
		if sc.ProjectID == projectID {
			out = append(out, sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SceneNumber < out[j].SceneNumber })
	return out, nil
}

func (s *MemoryScenes) Update(_ context.Context, scene *models.Scene) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.scenes[scene.ID]; ok {
		s.m.scenes[scene.ID] = *scene
	}
	return nil
}

func (s *MemoryScenes) Delete(_ context.Context, id uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.scenes, id)
	return nil
}

// conversations

type MemoryConversations struct{ m *MemoryStore }

func (s *MemoryConversations) GetByProject(_ context.Context, projectID uuid.UUID) (*models.Conversation, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	c, ok := s.m.conversations[projectID]
	if !ok {
		return nil, nil
	}
	c.History = append([]models.Turn(nil), c.History...)
	return &c, nil
}

func (s *MemoryConversations) Save(_ context.Context, conv *models.Conversation) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	conv.Prepare()
	stored := *conv
	stored.History = append([]models.Turn(nil), conv.History...)
	s.m.conversations[conv.ProjectID] = stored
	return nil
}
