package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/skillforge-io/skillforge-backend/internal/logger"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// fakeStore is an in-memory stand-in for the repo layer. It implements every
// repo interface the services consume; the tx argument is ignored.
type fakeStore struct {
	users         map[uuid.UUID]*types.User
	domains       map[uuid.UUID]*types.Domain
	modules       map[uuid.UUID]*types.Module
	domainModules []*types.DomainModule
	userDomains   []*types.UserDomain
	userModules   []*types.UserModule
	quizzes       map[uuid.UUID]*types.Quiz
	questions     map[uuid.UUID]*types.QuizQuestion
	options       map[uuid.UUID]*types.QuizQuestionOption
	responses     []*types.UserQuizResponse
	tools         map[uuid.UUID]*types.Tool
	userTools     []*types.UserTool
	changeLogs    []*types.ChangeLog
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     map[uuid.UUID]*types.User{},
		domains:   map[uuid.UUID]*types.Domain{},
		modules:   map[uuid.UUID]*types.Module{},
		quizzes:   map[uuid.UUID]*types.Quiz{},
		questions: map[uuid.UUID]*types.QuizQuestion{},
		options:   map[uuid.UUID]*types.QuizQuestionOption{},
		tools:     map[uuid.UUID]*types.Tool{},
	}
}

// --- UserRepo ---

func (f *fakeStore) Create(ctx context.Context, tx *gorm.DB, rows []*types.User) ([]*types.User, error) {
	for _, u := range rows {
		f.users[u.ID] = u
	}
	return rows, nil
}

func (f *fakeStore) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.User, error) {
	var out []*types.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok && !u.DeletedAt.Valid {
			out = append(out, u)
		}
	}
	return out, nil
}

// The remaining repos get their own narrow fakes so the interface method sets
// do not collide.

type fakeUserDomainRepo struct{ st *fakeStore }

func (f fakeUserDomainRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserDomain) ([]*types.UserDomain, error) {
	f.st.userDomains = append(f.st.userDomains, rows...)
	return rows, nil
}

func (f fakeUserDomainRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.UserDomain, error) {
	var out []*types.UserDomain
	for _, row := range f.st.userDomains {
		for _, id := range ids {
			if row.ID == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func (f fakeUserDomainRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserDomain, error) {
	var out []*types.UserDomain
	for _, row := range f.st.userDomains {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f fakeUserDomainRepo) GetByUserAndDomain(ctx context.Context, tx *gorm.DB, userID, domainID uuid.UUID) (*types.UserDomain, error) {
	for _, row := range f.st.userDomains {
		if row.UserID == userID && row.DomainID == domainID {
			return row, nil
		}
	}
	return nil, nil
}

type fakeDomainModuleRepo struct{ st *fakeStore }

func (f fakeDomainModuleRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.DomainModule) ([]*types.DomainModule, error) {
	f.st.domainModules = append(f.st.domainModules, rows...)
	return rows, nil
}

func (f fakeDomainModuleRepo) GetByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.DomainModule, error) {
	var out []*types.DomainModule
	for _, row := range f.st.domainModules {
		for _, id := range moduleIDs {
			if row.ModuleID == id {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func (f fakeDomainModuleRepo) GetByDomainAndModule(ctx context.Context, tx *gorm.DB, domainID, moduleID uuid.UUID) (*types.DomainModule, error) {
	for _, row := range f.st.domainModules {
		if row.DomainID == domainID && row.ModuleID == moduleID {
			return row, nil
		}
	}
	return nil, nil
}

type fakeDomainRepo struct{ st *fakeStore }

func (f fakeDomainRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Domain) ([]*types.Domain, error) {
	for _, d := range rows {
		f.st.domains[d.ID] = d
	}
	return rows, nil
}

func (f fakeDomainRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Domain, error) {
	var out []*types.Domain
	for _, id := range ids {
		if d, ok := f.st.domains[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f fakeDomainRepo) GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Domain, error) {
	var out []*types.Domain
	for _, d := range f.st.domains {
		for _, name := range names {
			if d.Name == name {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

type fakeModuleRepo struct{ st *fakeStore }

func (f fakeModuleRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Module) ([]*types.Module, error) {
	for _, m := range rows {
		f.st.modules[m.ID] = m
	}
	return rows, nil
}

func (f fakeModuleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Module, error) {
	var out []*types.Module
	for _, id := range ids {
		if m, ok := f.st.modules[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f fakeModuleRepo) GetByTitles(ctx context.Context, tx *gorm.DB, titles []string) ([]*types.Module, error) {
	var out []*types.Module
	for _, m := range f.st.modules {
		for _, title := range titles {
			if m.Title == title {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

type fakeUserModuleRepo struct{ st *fakeStore }

func (f fakeUserModuleRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserModule) ([]*types.UserModule, error) {
	f.st.userModules = append(f.st.userModules, rows...)
	return rows, nil
}

func (f fakeUserModuleRepo) GetByScopeAndModule(ctx context.Context, tx *gorm.DB, userDomainID, moduleID uuid.UUID) (*types.UserModule, error) {
	for _, row := range f.st.userModules {
		if row.UserDomainID == userDomainID && row.ModuleID == moduleID {
			return row, nil
		}
	}
	return nil, nil
}

func (f fakeUserModuleRepo) GetByScopesAndModule(ctx context.Context, tx *gorm.DB, userDomainIDs []uuid.UUID, moduleID uuid.UUID) ([]*types.UserModule, error) {
	var out []*types.UserModule
	for _, row := range f.st.userModules {
		for _, id := range userDomainIDs {
			if row.UserDomainID == id && row.ModuleID == moduleID {
				out = append(out, row)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedOn.Before(out[j].JoinedOn) })
	return out, nil
}

func (f fakeUserModuleRepo) Save(ctx context.Context, tx *gorm.DB, row *types.UserModule) error {
	for i, existing := range f.st.userModules {
		if existing.ID == row.ID {
			f.st.userModules[i] = row
			return nil
		}
	}
	f.st.userModules = append(f.st.userModules, row)
	return nil
}

type fakeQuizRepo struct{ st *fakeStore }

func (f fakeQuizRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Quiz) ([]*types.Quiz, error) {
	for _, q := range rows {
		f.st.quizzes[q.ID] = q
	}
	return rows, nil
}

func (f fakeQuizRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Quiz, error) {
	var out []*types.Quiz
	for _, id := range ids {
		if q, ok := f.st.quizzes[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f fakeQuizRepo) GetByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.Quiz, error) {
	var out []*types.Quiz
	for _, q := range f.st.quizzes {
		for _, id := range moduleIDs {
			if q.ModuleID == id {
				out = append(out, q)
			}
		}
	}
	return out, nil
}

type fakeQuestionRepo struct{ st *fakeStore }

func (f fakeQuestionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.QuizQuestion) ([]*types.QuizQuestion, error) {
	for _, q := range rows {
		f.st.questions[q.ID] = q
	}
	return rows, nil
}

func (f fakeQuestionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.QuizQuestion, error) {
	var out []*types.QuizQuestion
	for _, id := range ids {
		if q, ok := f.st.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f fakeQuestionRepo) GetByQuizIDs(ctx context.Context, tx *gorm.DB, quizIDs []uuid.UUID) ([]*types.QuizQuestion, error) {
	var out []*types.QuizQuestion
	for _, q := range f.st.questions {
		for _, id := range quizIDs {
			if q.QuizID == id {
				out = append(out, q)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

type fakeOptionRepo struct{ st *fakeStore }

func (f fakeOptionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.QuizQuestionOption) ([]*types.QuizQuestionOption, error) {
	for _, o := range rows {
		f.st.options[o.ID] = o
	}
	return rows, nil
}

func (f fakeOptionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.QuizQuestionOption, error) {
	var out []*types.QuizQuestionOption
	for _, id := range ids {
		if o, ok := f.st.options[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f fakeOptionRepo) GetByQuestionID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) ([]*types.QuizQuestionOption, error) {
	var out []*types.QuizQuestionOption
	for _, o := range f.st.options {
		if o.QuestionID != nil && *o.QuestionID == questionID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f fakeOptionRepo) AttachToQuestion(ctx context.Context, tx *gorm.DB, questionID uuid.UUID, optionIDs []uuid.UUID) error {
	for _, id := range optionIDs {
		if o, ok := f.st.options[id]; ok {
			qid := questionID
			o.QuestionID = &qid
		}
	}
	return nil
}

func (f fakeOptionRepo) Detach(ctx context.Context, tx *gorm.DB, optionID uuid.UUID) error {
	if o, ok := f.st.options[optionID]; ok {
		o.QuestionID = nil
	}
	return nil
}

func (f fakeOptionRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(f.st.options, id)
	}
	return nil
}

type fakeResponseRepo struct{ st *fakeStore }

func (f fakeResponseRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserQuizResponse) ([]*types.UserQuizResponse, error) {
	f.st.responses = append(f.st.responses, rows...)
	return rows, nil
}

func (f fakeResponseRepo) GetByUserAndQuiz(ctx context.Context, tx *gorm.DB, userID, quizID uuid.UUID) ([]*types.UserQuizResponse, error) {
	var out []*types.UserQuizResponse
	for _, row := range f.st.responses {
		if row.UserID == userID && row.QuizID == quizID {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeToolRepo struct{ st *fakeStore }

func (f fakeToolRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Tool) ([]*types.Tool, error) {
	for _, t := range rows {
		f.st.tools[t.ID] = t
	}
	return rows, nil
}

func (f fakeToolRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Tool, error) {
	var out []*types.Tool
	for _, id := range ids {
		if t, ok := f.st.tools[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f fakeToolRepo) GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Tool, error) {
	var out []*types.Tool
	for _, t := range f.st.tools {
		for _, name := range names {
			if t.Name == name {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

type fakeUserToolRepo struct{ st *fakeStore }

func (f fakeUserToolRepo) Create(ctx context.Context, tx *gorm.DB, row *types.UserTool) (*types.UserTool, error) {
	f.st.userTools = append(f.st.userTools, row)
	return row, nil
}

func (f fakeUserToolRepo) GetByUserDomainID(ctx context.Context, tx *gorm.DB, userDomainID uuid.UUID) (*types.UserTool, error) {
	for _, row := range f.st.userTools {
		if row.UserDomainID == userDomainID {
			return row, nil
		}
	}
	return nil, nil
}

func (f fakeUserToolRepo) Save(ctx context.Context, tx *gorm.DB, row *types.UserTool) error {
	for i, existing := range f.st.userTools {
		if existing.ID == row.ID {
			f.st.userTools[i] = row
			return nil
		}
	}
	f.st.userTools = append(f.st.userTools, row)
	return nil
}

type fakeChangeLogRepo struct{ st *fakeStore }

func (f fakeChangeLogRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ChangeLog) ([]*types.ChangeLog, error) {
	f.st.changeLogs = append(f.st.changeLogs, rows...)
	return rows, nil
}

func newTestChangeLog(st *fakeStore) ChangeLogService {
	return &changeLogService{
		log:           testLogger(),
		changeLogRepo: fakeChangeLogRepo{st: st},
		now:           time.Now,
	}
}

// --- fixture helpers ---

func seedActiveUser(st *fakeStore) *types.User {
	u := &types.User{ID: uuid.New(), Email: uuid.NewString() + "@example.com", FirstName: "Test", LastName: "User"}
	st.users[u.ID] = u
	return u
}

func seedDomain(st *fakeStore, name string) *types.Domain {
	d := &types.Domain{ID: uuid.New(), Name: name}
	st.domains[d.ID] = d
	return d
}

func seedModule(st *fakeStore, title string, threshold float64) *types.Module {
	m := &types.Module{ID: uuid.New(), Title: title, ThresholdScore: threshold}
	st.modules[m.ID] = m
	return m
}

func seedLink(st *fakeStore, domain *types.Domain, module *types.Module) {
	st.domainModules = append(st.domainModules, &types.DomainModule{
		ID: uuid.New(), DomainID: domain.ID, ModuleID: module.ID,
	})
}

func seedScope(st *fakeStore, user *types.User, domain *types.Domain) *types.UserDomain {
	ud := &types.UserDomain{ID: uuid.New(), UserID: user.ID, DomainID: domain.ID}
	st.userDomains = append(st.userDomains, ud)
	return ud
}
