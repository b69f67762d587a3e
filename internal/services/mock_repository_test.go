package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pixalara/placement-service/internal/auth"
	"github.com/pixalara/placement-service/internal/models"
	"github.com/pixalara/placement-service/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubRepository is a minimal Repository implementation for tests. Tests
// set only the sub-repositories they exercise.
type stubRepository struct {
	admin     repositories.AdminRepository
	student   repositories.StudentRepository
	jobSeeker repositories.JobSeekerRepository
	mentor    repositories.MentorRepository
	course    repositories.CourseRepository
	chat      repositories.ChatRepository
	directory repositories.DirectoryRepository
	dashboard repositories.DashboardRepository
}

func (r *stubRepository) Admin() repositories.AdminRepository         { return r.admin }
func (r *stubRepository) Student() repositories.StudentRepository     { return r.student }
func (r *stubRepository) JobSeeker() repositories.JobSeekerRepository { return r.jobSeeker }
func (r *stubRepository) Mentor() repositories.MentorRepository       { return r.mentor }
func (r *stubRepository) Course() repositories.CourseRepository       { return r.course }
func (r *stubRepository) Chat() repositories.ChatRepository           { return r.chat }
func (r *stubRepository) Directory() repositories.DirectoryRepository { return r.directory }
func (r *stubRepository) Dashboard() repositories.DashboardRepository { return r.dashboard }
func (r *stubRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(r)
}
func (r *stubRepository) Ping(ctx context.Context) error { return nil }
func (r *stubRepository) Close() error                   { return nil }

// ===== FAKE PROVIDER =====

type fakeProvider struct {
	passwords  map[string]string          // email -> password
	principals map[string]*auth.Principal // uid -> principal
	tokens     map[string]string          // token -> uid

	nextUID int
	deleted []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		passwords:  make(map[string]string),
		principals: make(map[string]*auth.Principal),
		tokens:     make(map[string]string),
	}
}

func (p *fakeProvider) addUser(uid, email, password, name string) {
	p.passwords[email] = password
	p.principals[uid] = &auth.Principal{UID: uid, Email: email, DisplayName: name}
	p.tokens["token-"+uid] = uid
}

func (p *fakeProvider) SignIn(_ context.Context, email, password string) (string, *auth.Principal, error) {
	if stored, ok := p.passwords[email]; !ok || stored != password {
		return "", nil, auth.ErrInvalidCredential
	}
	for uid, principal := range p.principals {
		if principal.Email == email {
			return "token-" + uid, principal, nil
		}
	}
	return "", nil, auth.ErrInvalidCredential
}

func (p *fakeProvider) ParseToken(_ context.Context, token string) (*auth.Principal, error) {
	uid, ok := p.tokens[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return p.principals[uid], nil
}

func (p *fakeProvider) CreateUser(_ context.Context, email, password, displayName string) (string, error) {
	p.nextUID++
	uid := fmt.Sprintf("uid-%d", p.nextUID)
	p.addUser(uid, email, password, displayName)
	return uid, nil
}

func (p *fakeProvider) DeleteUser(_ context.Context, uid string) error {
	p.deleted = append(p.deleted, uid)
	delete(p.principals, uid)
	return nil
}

// ===== FAKE ROLE-BACKED REPOSITORIES =====

type fakeJobSeekerRepo struct {
	seekers map[string]*models.JobSeeker
}

func newFakeJobSeekerRepo(seekers ...*models.JobSeeker) *fakeJobSeekerRepo {
	r := &fakeJobSeekerRepo{seekers: make(map[string]*models.JobSeeker)}
	for _, s := range seekers {
		r.seekers[s.UID] = s
	}
	return r
}

func (r *fakeJobSeekerRepo) Role() models.Role { return models.RoleJobSeeker }
func (r *fakeJobSeekerRepo) Contains(_ context.Context, uid string) (bool, error) {
	_, ok := r.seekers[uid]
	return ok, nil
}
func (r *fakeJobSeekerRepo) Create(_ context.Context, s *models.JobSeeker) error {
	r.seekers[s.UID] = s
	return nil
}
func (r *fakeJobSeekerRepo) GetByUID(_ context.Context, uid string) (*models.JobSeeker, error) {
	s, ok := r.seekers[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}
func (r *fakeJobSeekerRepo) Update(_ context.Context, s *models.JobSeeker) error {
	if _, ok := r.seekers[s.UID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *s
	r.seekers[s.UID] = &copied
	return nil
}
func (r *fakeJobSeekerRepo) Delete(_ context.Context, uid string) error {
	if _, ok := r.seekers[uid]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.seekers, uid)
	return nil
}
func (r *fakeJobSeekerRepo) List(_ context.Context, filters repositories.JobSeekerFilters) ([]*models.JobSeeker, int64, error) {
	var out []*models.JobSeeker
	for _, s := range r.seekers {
		if filters.Stage != nil && s.Stage != *filters.Stage {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, int64(len(out)), nil
}
func (r *fakeJobSeekerRepo) UpdateStage(_ context.Context, uid string, stage models.PipelineStage) error {
	s, ok := r.seekers[uid]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Stage = stage
	return nil
}
func (r *fakeJobSeekerRepo) UpdateFees(_ context.Context, uid string, registration, final *models.FeeStatus) error {
	s, ok := r.seekers[uid]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if registration != nil {
		s.RegistrationFee = *registration
	}
	if final != nil {
		s.FinalFee = *final
	}
	return nil
}
func (r *fakeJobSeekerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.seekers)), nil
}
func (r *fakeJobSeekerRepo) CountByStage(_ context.Context, stage models.PipelineStage) (int64, error) {
	var n int64
	for _, s := range r.seekers {
		if s.Stage == stage {
			n++
		}
	}
	return n, nil
}

type fakeStudentRepo struct {
	students map[string]*models.Student
}

func newFakeStudentRepo(students ...*models.Student) *fakeStudentRepo {
	r := &fakeStudentRepo{students: make(map[string]*models.Student)}
	for _, s := range students {
		r.students[s.UID] = s
	}
	return r
}

func (r *fakeStudentRepo) Role() models.Role { return models.RoleStudent }
func (r *fakeStudentRepo) Contains(_ context.Context, uid string) (bool, error) {
	_, ok := r.students[uid]
	return ok, nil
}
func (r *fakeStudentRepo) Create(_ context.Context, s *models.Student) error {
	r.students[s.UID] = s
	return nil
}
func (r *fakeStudentRepo) GetByUID(_ context.Context, uid string) (*models.Student, error) {
	s, ok := r.students[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}
func (r *fakeStudentRepo) Update(_ context.Context, s *models.Student) error {
	if _, ok := r.students[s.UID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *s
	r.students[s.UID] = &copied
	return nil
}
func (r *fakeStudentRepo) Delete(_ context.Context, uid string) error {
	if _, ok := r.students[uid]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.students, uid)
	return nil
}
func (r *fakeStudentRepo) List(_ context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	var out []*models.Student
	for _, s := range r.students {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, int64(len(out)), nil
}
func (r *fakeStudentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.students)), nil
}
func (r *fakeStudentRepo) CountByCourse(_ context.Context) ([]models.CourseDistribution, error) {
	return nil, nil
}

type fakeMentorRepo struct {
	mentors map[string]*models.Mentor
}

func newFakeMentorRepo(mentors ...*models.Mentor) *fakeMentorRepo {
	r := &fakeMentorRepo{mentors: make(map[string]*models.Mentor)}
	for _, m := range mentors {
		r.mentors[m.UID] = m
	}
	return r
}

func (r *fakeMentorRepo) Role() models.Role { return models.RoleMentor }
func (r *fakeMentorRepo) Contains(_ context.Context, uid string) (bool, error) {
	_, ok := r.mentors[uid]
	return ok, nil
}
func (r *fakeMentorRepo) Create(_ context.Context, m *models.Mentor) error {
	r.mentors[m.UID] = m
	return nil
}
func (r *fakeMentorRepo) GetByUID(_ context.Context, uid string) (*models.Mentor, error) {
	m, ok := r.mentors[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *m
	return &copied, nil
}
func (r *fakeMentorRepo) Update(_ context.Context, m *models.Mentor) error {
	if _, ok := r.mentors[m.UID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *m
	r.mentors[m.UID] = &copied
	return nil
}
func (r *fakeMentorRepo) Delete(_ context.Context, uid string) error {
	if _, ok := r.mentors[uid]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.mentors, uid)
	return nil
}
func (r *fakeMentorRepo) List(_ context.Context, filters repositories.MentorFilters) ([]*models.Mentor, int64, error) {
	var out []*models.Mentor
	for _, m := range r.mentors {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, int64(len(out)), nil
}
func (r *fakeMentorRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.mentors)), nil
}

type fakeAdminRepo struct {
	admins map[string]*models.Admin
}

func newFakeAdminRepo(admins ...*models.Admin) *fakeAdminRepo {
	r := &fakeAdminRepo{admins: make(map[string]*models.Admin)}
	for _, a := range admins {
		r.admins[a.UID] = a
	}
	return r
}

func (r *fakeAdminRepo) Role() models.Role { return models.RoleAdmin }
func (r *fakeAdminRepo) Contains(_ context.Context, uid string) (bool, error) {
	_, ok := r.admins[uid]
	return ok, nil
}
func (r *fakeAdminRepo) Create(_ context.Context, a *models.Admin) error {
	r.admins[a.UID] = a
	return nil
}
func (r *fakeAdminRepo) GetByUID(_ context.Context, uid string) (*models.Admin, error) {
	a, ok := r.admins[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *a
	return &copied, nil
}
func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	for _, a := range r.admins {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeAdminRepo) Update(_ context.Context, a *models.Admin) error {
	existing, ok := r.admins[a.UID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.Name = a.Name
	existing.Phone = a.Phone
	return nil
}
func (r *fakeAdminRepo) List(_ context.Context) ([]*models.Admin, error) {
	var out []*models.Admin
	for _, a := range r.admins {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, nil
}
func (r *fakeAdminRepo) Delete(_ context.Context, uid string) error {
	if _, ok := r.admins[uid]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.admins, uid)
	return nil
}

// ===== FAKE COURSE REPOSITORY =====

type fakeCourseRepo struct {
	courses map[uint]*models.Course
	nextID  uint
}

func newFakeCourseRepo(courses ...*models.Course) *fakeCourseRepo {
	r := &fakeCourseRepo{courses: make(map[uint]*models.Course)}
	for _, c := range courses {
		if c.ID == 0 {
			r.nextID++
			c.ID = r.nextID
		} else if c.ID > r.nextID {
			r.nextID = c.ID
		}
		r.courses[c.ID] = c
	}
	return r
}

func (r *fakeCourseRepo) Create(_ context.Context, c *models.Course) error {
	r.nextID++
	c.ID = r.nextID
	r.courses[c.ID] = c
	return nil
}
func (r *fakeCourseRepo) GetByID(_ context.Context, id uint) (*models.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}
func (r *fakeCourseRepo) GetByTitle(_ context.Context, title string) (*models.Course, error) {
	for _, c := range r.courses {
		if c.Title == title {
			copied := *c
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeCourseRepo) Update(_ context.Context, c *models.Course) error {
	if _, ok := r.courses[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *c
	r.courses[c.ID] = &copied
	return nil
}
func (r *fakeCourseRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.courses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.courses, id)
	return nil
}
func (r *fakeCourseRepo) List(_ context.Context) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range r.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (r *fakeCourseRepo) ExistsByTitle(_ context.Context, title string) (bool, error) {
	for _, c := range r.courses {
		if c.Title == title {
			return true, nil
		}
	}
	return false, nil
}
func (r *fakeCourseRepo) SeedDefaults(ctx context.Context) (int, error) {
	created := 0
	for _, def := range models.DefaultCourses {
		exists, _ := r.ExistsByTitle(ctx, def.Title)
		if exists {
			continue
		}
		course := def
		if err := r.Create(ctx, &course); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// ===== FAKE CHAT REPOSITORY =====

type fakeChatRepo struct {
	chats    map[string]*models.Chat
	messages map[string][]*models.ChatMessage
	nextID   int
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[string]*models.Chat),
		messages: make(map[string][]*models.ChatMessage),
	}
}

func (r *fakeChatRepo) GetOrCreate(_ context.Context, studentID, studentName, mentorID, mentorName string) (*models.Chat, error) {
	for _, c := range r.chats {
		if c.StudentID == studentID && c.MentorID == mentorID {
			return c, nil
		}
	}
	r.nextID++
	chat := &models.Chat{
		ID:              fmt.Sprintf("chat-%d", r.nextID),
		StudentID:       studentID,
		MentorID:        mentorID,
		StudentName:     studentName,
		MentorName:      mentorName,
		LastUpdated:     time.Now(),
		IsReadByStudent: true,
		IsReadByMentor:  true,
	}
	r.chats[chat.ID] = chat
	return chat, nil
}
func (r *fakeChatRepo) GetByID(_ context.Context, chatID string) (*models.Chat, error) {
	c, ok := r.chats[chatID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}
func (r *fakeChatRepo) ListByStudent(_ context.Context, studentID string) ([]*models.Chat, error) {
	var out []*models.Chat
	for _, c := range r.chats {
		if c.StudentID == studentID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *fakeChatRepo) ListByMentor(_ context.Context, mentorID string) ([]*models.Chat, error) {
	var out []*models.Chat
	for _, c := range r.chats {
		if c.MentorID == mentorID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *fakeChatRepo) AppendMessage(_ context.Context, message *models.ChatMessage) error {
	chat, ok := r.chats[message.ChatID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if message.ID == "" {
		r.nextID++
		message.ID = fmt.Sprintf("msg-%d", r.nextID)
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.messages[chat.ID] = append(r.messages[chat.ID], message)
	chat.LastMessage = message.Text
	chat.LastUpdated = message.CreatedAt
	chat.IsReadByStudent = message.SenderID == chat.StudentID
	chat.IsReadByMentor = message.SenderID == chat.MentorID
	return nil
}
func (r *fakeChatRepo) ListMessages(_ context.Context, chatID string, filters repositories.MessageFilters) ([]*models.ChatMessage, int64, error) {
	msgs := r.messages[chatID]
	return msgs, int64(len(msgs)), nil
}
func (r *fakeChatRepo) MarkRead(_ context.Context, chatID string, reader models.Role) error {
	chat, ok := r.chats[chatID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	switch reader {
	case models.RoleStudent:
		chat.IsReadByStudent = true
	case models.RoleMentor:
		chat.IsReadByMentor = true
	default:
		return errors.New("not a chat participant")
	}
	return nil
}
func (r *fakeChatRepo) CountUnread(_ context.Context, participantID string, role models.Role) (int64, error) {
	var count int64
	for _, c := range r.chats {
		switch role {
		case models.RoleStudent:
			if c.StudentID == participantID && !c.IsReadByStudent {
				count++
			}
		case models.RoleMentor:
			if c.MentorID == participantID && !c.IsReadByMentor {
				count++
			}
		}
	}
	return count, nil
}

// ===== FAKE DIRECTORY REPOSITORY =====

type fakeDirectoryRepo struct {
	users map[string]*models.DirectoryUser // keyed by uid
}

func newFakeDirectoryRepo(users ...*models.DirectoryUser) *fakeDirectoryRepo {
	r := &fakeDirectoryRepo{users: make(map[string]*models.DirectoryUser)}
	for _, u := range users {
		r.users[u.UID] = u
	}
	return r
}

func (r *fakeDirectoryRepo) GetByUID(_ context.Context, uid string) (*models.DirectoryUser, error) {
	u, ok := r.users[uid]
	if !ok {
		return nil, errors.New("user not found in directory")
	}
	return u, nil
}
func (r *fakeDirectoryRepo) GetByEmail(_ context.Context, email string) (*models.DirectoryUser, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.New("user not found in directory")
}
func (r *fakeDirectoryRepo) List(_ context.Context, filters repositories.DirectoryFilters) ([]*models.DirectoryUser, int64, error) {
	var out []*models.DirectoryUser
	for _, u := range r.users {
		if filters.Query != "" && !strings.Contains(u.Email, filters.Query) && !strings.Contains(u.Name, filters.Query) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, int64(len(out)), nil
}
func (r *fakeDirectoryRepo) ExistsByUID(_ context.Context, uid string) (bool, error) {
	_, ok := r.users[uid]
	return ok, nil
}
func (r *fakeDirectoryRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}
