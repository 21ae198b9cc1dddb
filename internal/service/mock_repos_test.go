package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
	"github.com/Vihaan004/Map-My-Major-sub000/internal/repository"
)

// memStore backs every mock repository so cascades and per-map listings see the same rows.
// Rows are stored by value and copied out, the way a database hands back fresh structs.
type memStore struct {
	seq          int
	users        map[string]model.User
	maps         map[string]model.Map
	semesters    map[string]model.Semester
	classes      map[string]model.Class
	courses      map[string]model.Course
	requirements map[string]model.Requirement

	currentWrites int // UpdateCurrent calls
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[string]model.User),
		maps:         make(map[string]model.Map),
		semesters:    make(map[string]model.Semester),
		classes:      make(map[string]model.Class),
		courses:      make(map[string]model.Course),
		requirements: make(map[string]model.Requirement),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

// newMockRepository wires all mocks into a Repository without a database;
// Transaction then runs its callback directly.
func newMockRepository() (*repository.Repository, *memStore) {
	s := newMemStore()
	return &repository.Repository{
		User:        &mockUserRepo{s},
		Map:         &mockMapRepo{s},
		Semester:    &mockSemesterRepo{s},
		Class:       &mockClassRepo{s},
		Course:      &mockCourseRepo{s},
		Requirement: &mockRequirementRepo{s},
	}, s
}

// ── Mock UserRepository ──

type mockUserRepo struct{ s *memStore }

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.s.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		user.UserID = m.s.nextID("user")
	}
	if user.Role == "" {
		user.Role = model.RoleStudent
	}
	m.s.users[user.UserID] = *user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.s.users[id]; ok {
		return &u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.s.users[user.UserID] = *user
	return nil
}

// ── Mock MapRepository ──

type mockMapRepo struct{ s *memStore }

func (m *mockMapRepo) Create(_ context.Context, mp *model.Map) error {
	if mp.MapID == "" {
		mp.MapID = m.s.nextID("map")
	}
	row := *mp
	row.Semesters, row.Requirements = nil, nil
	m.s.maps[mp.MapID] = row
	return nil
}

func (m *mockMapRepo) GetByID(_ context.Context, id string) (*model.Map, error) {
	if mp, ok := m.s.maps[id]; ok {
		return &mp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMapRepo) GetDetail(ctx context.Context, id string) (*model.Map, error) {
	mp, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sems, _ := (&mockSemesterRepo{m.s}).ListByMap(ctx, id)
	for i := range sems {
		sems[i].Classes, _ = (&mockClassRepo{m.s}).ListBySemester(ctx, sems[i].SemesterID)
	}
	mp.Semesters = sems
	mp.Requirements, _ = (&mockRequirementRepo{m.s}).ListByMap(ctx, id)
	return mp, nil
}

func (m *mockMapRepo) ListByUser(_ context.Context, userID, status string) ([]model.Map, error) {
	var result []model.Map
	for _, mp := range m.s.maps {
		if mp.UserID == userID && (status == "" || mp.Status == status) {
			result = append(result, mp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MapID < result[j].MapID })
	return result, nil
}

func (m *mockMapRepo) ListIDs(_ context.Context) ([]string, error) {
	var ids []string
	for id := range m.s.maps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *mockMapRepo) Update(_ context.Context, mp *model.Map) error {
	if _, ok := m.s.maps[mp.MapID]; !ok {
		return gorm.ErrRecordNotFound
	}
	row := *mp
	row.Semesters, row.Requirements = nil, nil
	m.s.maps[mp.MapID] = row
	return nil
}

func (m *mockMapRepo) UpdateTotalCredits(_ context.Context, id string, total int) error {
	mp, ok := m.s.maps[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	mp.TotalCredits = total
	m.s.maps[id] = mp
	return nil
}

func (m *mockMapRepo) Delete(_ context.Context, id string) error {
	for k, c := range m.s.classes {
		if c.MapID == id {
			delete(m.s.classes, k)
		}
	}
	for k, sem := range m.s.semesters {
		if sem.MapID == id {
			delete(m.s.semesters, k)
		}
	}
	for k, r := range m.s.requirements {
		if r.MapID == id {
			delete(m.s.requirements, k)
		}
	}
	delete(m.s.maps, id)
	return nil
}

// ── Mock SemesterRepository ──

type mockSemesterRepo struct{ s *memStore }

func (m *mockSemesterRepo) Create(_ context.Context, sem *model.Semester) error {
	for _, other := range m.s.semesters {
		if other.MapID == sem.MapID && other.Term == sem.Term && other.Year == sem.Year {
			return gorm.ErrDuplicatedKey
		}
	}
	if sem.SemesterID == "" {
		sem.SemesterID = m.s.nextID("sem")
	}
	row := *sem
	row.Classes = nil
	m.s.semesters[sem.SemesterID] = row
	return nil
}

func (m *mockSemesterRepo) BatchCreate(ctx context.Context, semesters []model.Semester) error {
	for i := range semesters {
		if err := m.Create(ctx, &semesters[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockSemesterRepo) GetByID(_ context.Context, id string) (*model.Semester, error) {
	if sem, ok := m.s.semesters[id]; ok {
		return &sem, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) GetByTermYear(_ context.Context, mapID, term string, year int) (*model.Semester, error) {
	for _, sem := range m.s.semesters {
		if sem.MapID == mapID && sem.Term == term && sem.Year == year {
			sem := sem
			return &sem, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) ListByMap(_ context.Context, mapID string) ([]model.Semester, error) {
	var result []model.Semester
	for _, sem := range m.s.semesters {
		if sem.MapID == mapID {
			result = append(result, sem)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Position != result[j].Position {
			return result[i].Position < result[j].Position
		}
		return result[i].SemesterID < result[j].SemesterID
	})
	return result, nil
}

func (m *mockSemesterRepo) Update(_ context.Context, sem *model.Semester) error {
	row := *sem
	row.Classes = nil
	m.s.semesters[sem.SemesterID] = row
	return nil
}

func (m *mockSemesterRepo) UpdatePosition(_ context.Context, id string, position int) error {
	sem, ok := m.s.semesters[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	sem.Position = position
	m.s.semesters[id] = sem
	return nil
}

func (m *mockSemesterRepo) Delete(_ context.Context, id string) error {
	delete(m.s.semesters, id)
	return nil
}

// ── Mock ClassRepository ──

type mockClassRepo struct{ s *memStore }

func (m *mockClassRepo) Create(_ context.Context, c *model.Class) error {
	if c.ClassID == "" {
		c.ClassID = m.s.nextID("class")
	}
	m.s.classes[c.ClassID] = *c
	return nil
}

func (m *mockClassRepo) GetByID(_ context.Context, id string) (*model.Class, error) {
	if c, ok := m.s.classes[id]; ok {
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) list(keep func(model.Class) bool) []model.Class {
	var result []model.Class
	for _, c := range m.s.classes {
		if keep(c) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.SemesterID != b.SemesterID {
			return a.SemesterID < b.SemesterID
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ClassID < b.ClassID
	})
	return result
}

func (m *mockClassRepo) ListByMap(_ context.Context, mapID string) ([]model.Class, error) {
	return m.list(func(c model.Class) bool { return c.MapID == mapID }), nil
}

func (m *mockClassRepo) ListBySemester(_ context.Context, semesterID string) ([]model.Class, error) {
	return m.list(func(c model.Class) bool { return c.SemesterID == semesterID }), nil
}

func (m *mockClassRepo) CountBySemester(ctx context.Context, semesterID string) (int64, error) {
	list, _ := m.ListBySemester(ctx, semesterID)
	return int64(len(list)), nil
}

func (m *mockClassRepo) Update(_ context.Context, c *model.Class) error {
	m.s.classes[c.ClassID] = *c
	return nil
}

func (m *mockClassRepo) UpdatePosition(_ context.Context, id string, position int) error {
	c, ok := m.s.classes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Position = position
	m.s.classes[id] = c
	return nil
}

func (m *mockClassRepo) UpdateTags(_ context.Context, id string, tags model.StringArray) error {
	c, ok := m.s.classes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Tags = tags
	m.s.classes[id] = c
	return nil
}

func (m *mockClassRepo) Delete(_ context.Context, id string) error {
	delete(m.s.classes, id)
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct{ s *memStore }

func (m *mockCourseRepo) Create(_ context.Context, c *model.Course) error {
	for _, other := range m.s.courses {
		if other.Code == c.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	if c.CourseID == "" {
		c.CourseID = m.s.nextID("course")
	}
	m.s.courses[c.CourseID] = *c
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.s.courses[id]; ok {
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByCode(_ context.Context, code string) (*model.Course, error) {
	for _, c := range m.s.courses {
		if c.Code == code {
			c := c
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) Search(_ context.Context, f repository.CourseFilter) ([]model.Course, int64, error) {
	var matched []model.Course
	q := strings.ToUpper(f.Query)
	for _, c := range m.s.courses {
		if q != "" && !strings.Contains(strings.ToUpper(c.Code), q) && !strings.Contains(strings.ToUpper(c.Name), q) {
			continue
		}
		if f.Subject != "" && c.Subject != strings.ToUpper(f.Subject) {
			continue
		}
		if f.Tag != "" && !c.Tags.Contains(f.Tag) {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Code < matched[j].Code })

	total := int64(len(matched))
	start := (f.Page - 1) * f.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *mockCourseRepo) Update(_ context.Context, c *model.Course) error {
	m.s.courses[c.CourseID] = *c
	return nil
}

func (m *mockCourseRepo) Upsert(ctx context.Context, c *model.Course) error {
	if existing, err := m.GetByCode(ctx, c.Code); err == nil {
		c.CourseID = existing.CourseID
		m.s.courses[c.CourseID] = *c
		return nil
	}
	return m.Create(ctx, c)
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.s.courses, id)
	return nil
}

// ── Mock RequirementRepository ──

type mockRequirementRepo struct{ s *memStore }

func (m *mockRequirementRepo) Create(_ context.Context, r *model.Requirement) error {
	for _, other := range m.s.requirements {
		if other.MapID == r.MapID && other.Tag == r.Tag {
			return gorm.ErrDuplicatedKey
		}
	}
	if r.RequirementID == "" {
		r.RequirementID = m.s.nextID("req")
	}
	m.s.requirements[r.RequirementID] = *r
	return nil
}

func (m *mockRequirementRepo) GetByID(_ context.Context, id string) (*model.Requirement, error) {
	if r, ok := m.s.requirements[id]; ok {
		return &r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRequirementRepo) GetByTag(_ context.Context, mapID, tag string) (*model.Requirement, error) {
	for _, r := range m.s.requirements {
		if r.MapID == mapID && r.Tag == tag {
			r := r
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRequirementRepo) ListByMap(_ context.Context, mapID string) ([]model.Requirement, error) {
	var result []model.Requirement
	for _, r := range m.s.requirements {
		if r.MapID == mapID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RequirementID < result[j].RequirementID })
	return result, nil
}

func (m *mockRequirementRepo) Update(_ context.Context, r *model.Requirement) error {
	m.s.requirements[r.RequirementID] = *r
	return nil
}

func (m *mockRequirementRepo) UpdateCurrent(_ context.Context, id string, current int) error {
	r, ok := m.s.requirements[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.s.currentWrites++
	r.Current = current
	m.s.requirements[id] = r
	return nil
}

func (m *mockRequirementRepo) Delete(_ context.Context, id string) error {
	delete(m.s.requirements, id)
	return nil
}

// ── fixtures ──

// seedPlan creates a user with one map and a FALL 2024 semester
func seedPlan(s *memStore) (userID, mapID, semesterID string) {
	userID = s.nextID("user")
	s.users[userID] = model.User{UserID: userID, Email: userID + "@example.edu", Name: "Student", Role: model.RoleStudent}

	mapID = s.nextID("map")
	s.maps[mapID] = model.Map{MapID: mapID, UserID: userID, Name: "CS Plan", StartTerm: model.TermFall, StartYear: 2024, Status: model.MapStatusActive}

	semesterID = s.nextID("sem")
	s.semesters[semesterID] = model.Semester{SemesterID: semesterID, MapID: mapID, Term: model.TermFall, Year: 2024}
	return userID, mapID, semesterID
}

func seedRequirement(s *memStore, mapID, tag, typ string, goal int) string {
	id := s.nextID("req")
	s.requirements[id] = model.Requirement{RequirementID: id, MapID: mapID, Name: tag, Tag: tag, Type: typ, Goal: goal}
	return id
}
