package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skillforge-io/skillforge-backend/internal/apierr"
	"github.com/skillforge-io/skillforge-backend/internal/types"
)

func newScoringFixture(st *fakeStore, now time.Time) *quizScoringService {
	return &quizScoringService{
		log:            testLogger(),
		userRepo:       st,
		quizRepo:       fakeQuizRepo{st: st},
		questionRepo:   fakeQuestionRepo{st: st},
		optionRepo:     fakeOptionRepo{st: st},
		responseRepo:   fakeResponseRepo{st: st},
		userDomainRepo: fakeUserDomainRepo{st: st},
		userModuleRepo: fakeUserModuleRepo{st: st},
		changeLog:      newTestChangeLog(st),
		now:            func() time.Time { return now },
	}
}

func seedQuiz(st *fakeStore, module *types.Module) *types.Quiz {
	q := &types.Quiz{ID: uuid.New(), ModuleID: module.ID, Title: "Checkpoint"}
	st.quizzes[q.ID] = q
	return q
}

func seedQuestion(st *fakeStore, quiz *types.Quiz, marks, position int) *types.QuizQuestion {
	q := &types.QuizQuestion{ID: uuid.New(), QuizID: quiz.ID, QuestionText: "q", Marks: marks, Position: position}
	st.questions[q.ID] = q
	return q
}

func seedOption(st *fakeStore, question *types.QuizQuestion, correct bool) *types.QuizQuestionOption {
	o := &types.QuizQuestionOption{ID: uuid.New(), OptionText: uuid.NewString(), IsCorrect: correct}
	if question != nil {
		qid := question.ID
		o.QuestionID = &qid
	}
	st.options[o.ID] = o
	return o
}

// twoQuestionQuiz seeds an enrolled user with a 5+5 mark quiz and returns the
// correct and wrong option per question.
type scoringScenario struct {
	user       *types.User
	module     *types.Module
	quiz       *types.Quiz
	questions  [2]*types.QuizQuestion
	correct    [2]*types.QuizQuestionOption
	wrong      [2]*types.QuizQuestionOption
	enrollment *types.UserModule
}

func seedScoringScenario(st *fakeStore) scoringScenario {
	user := seedActiveUser(st)
	domain := seedDomain(st, "engineering")
	module := seedModule(st, "Go Basics", 70)
	seedLink(st, domain, module)
	scope := seedScope(st, user, domain)

	quiz := seedQuiz(st, module)
	q1 := seedQuestion(st, quiz, 5, 1)
	q2 := seedQuestion(st, quiz, 5, 2)

	enrollment := &types.UserModule{
		ID:             uuid.New(),
		UserDomainID:   scope.ID,
		ModuleID:       module.ID,
		Status:         types.EnrollmentTodo,
		ThresholdScore: module.ThresholdScore,
		JoinedOn:       time.Now().Add(-time.Hour),
	}
	st.userModules = append(st.userModules, enrollment)

	return scoringScenario{
		user:       user,
		module:     module,
		quiz:       quiz,
		questions:  [2]*types.QuizQuestion{q1, q2},
		correct:    [2]*types.QuizQuestionOption{seedOption(st, q1, true), seedOption(st, q2, true)},
		wrong:      [2]*types.QuizQuestionOption{seedOption(st, q1, false), seedOption(st, q2, false)},
		enrollment: enrollment,
	}
}

func TestAttemptQuiz_AllCorrectPassesAndCompletes(t *testing.T) {
	st := newFakeStore()
	sc := seedScoringScenario(st)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := newScoringFixture(st, now)

	res, err := svc.AttemptQuiz(context.Background(), sc.user.ID, sc.quiz.ID, []AnswerInput{
		{QuestionID: sc.questions[0].ID, OptionID: sc.correct[0].ID},
		{QuestionID: sc.questions[1].ID, OptionID: sc.correct[1].ID},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Percentage != 100 {
		t.Fatalf("expected 100%%, got %v", res.Percentage)
	}
	if res.Outcome != OutcomePassed {
		t.Fatalf("expected passed, got %s", res.Outcome)
	}
	if res.MarksObtained != 10 || res.TotalMarks != 10 {
		t.Fatalf("expected 10/10 marks, got %d/%d", res.MarksObtained, res.TotalMarks)
	}
	if res.EnrollmentStatus != types.EnrollmentCompleted {
		t.Fatalf("passing attempt must complete the enrollment, got %s", res.EnrollmentStatus)
	}
	if res.CompletedOn == nil || !res.CompletedOn.Equal(now) {
		t.Fatalf("expected CompletedOn %v, got %v", now, res.CompletedOn)
	}
	if sc.enrollment.Score != 100 || sc.enrollment.QuestionsAnswered != 2 {
		t.Fatalf("enrollment must carry the attempt result, got score=%v answered=%d",
			sc.enrollment.Score, sc.enrollment.QuestionsAnswered)
	}
	if len(st.responses) != 2 {
		t.Fatalf("expected 2 response rows, got %d", len(st.responses))
	}
}

func TestAttemptQuiz_HalfCorrectIsInProgress(t *testing.T) {
	st := newFakeStore()
	sc := seedScoringScenario(st)
	svc := newScoringFixture(st, time.Now())

	res, err := svc.AttemptQuiz(context.Background(), sc.user.ID, sc.quiz.ID, []AnswerInput{
		{QuestionID: sc.questions[0].ID, OptionID: sc.correct[0].ID},
		{QuestionID: sc.questions[1].ID, OptionID: sc.wrong[1].ID},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Percentage != 50 {
		t.Fatalf("expected 50%%, got %v", res.Percentage)
	}
	if res.Outcome != OutcomeInProgress {
		t.Fatalf("expected in_progress, got %s", res.Outcome)
	}
	if res.EnrollmentStatus != types.EnrollmentInProgress || res.CompletedOn != nil {
		t.Fatalf("non-passing attempt must leave in_progress/uncompleted, got %s/%v",
			res.EnrollmentStatus, res.CompletedOn)
	}
}

func TestAttemptQuiz_AllWrongFailsOutcomeButEnrollmentStaysInProgress(t *testing.T) {
	st := newFakeStore()
	sc := seedScoringScenario(st)
	svc := newScoringFixture(st, time.Now())

	res, err := svc.AttemptQuiz(context.Background(), sc.user.ID, sc.quiz.ID, []AnswerInput{
		{QuestionID: sc.questions[0].ID, OptionID: sc.wrong[0].ID},
		{QuestionID: sc.questions[1].ID, OptionID: sc.wrong[1].ID},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeFailed {
		t.Fatalf("expected failed, got %s", res.Outcome)
	}
	if res.EnrollmentStatus != types.EnrollmentInProgress {
		t.Fatalf("a failed attempt still marks the enrollment in_progress, got %s", res.EnrollmentStatus)
	}
}

func TestAttemptQuiz_StaleAnswerIDsAreSkipped(t *testing.T) {
	st := newFakeStore()
	sc := seedScoringScenario(st)
	svc := newScoringFixture(st, time.Now())

	// Second answer points at a deleted question, third at a deleted option.
	res, err := svc.AttemptQuiz(context.Background(), sc.user.ID, sc.quiz.ID, []AnswerInput{
		{QuestionID: sc.questions[0].ID, OptionID: sc.correct[0].ID},
		{QuestionID: uuid.New(), OptionID: sc.correct[1].ID},
		{QuestionID: sc.questions[1].ID, OptionID: uuid.New()},
	})
	if err != nil {
		t.Fatalf("stale ids must not fail the attempt: %v", err)
	}
	if res.SubmittedAnswers != 3 || res.ScoredAnswers != 1 {
		t.Fatalf("expected 3 submitted / 1 scored, got %d/%d", res.SubmittedAnswers, res.ScoredAnswers)
	}
	if res.MarksObtained != 5 {
		t.Fatalf("expected 5 marks from the one resolvable answer, got %d", res.MarksObtained)
	}
	if len(st.responses) != 1 {
		t.Fatalf("only resolvable answers get response rows, got %d", len(st.responses))
	}
}

func TestAttemptQuiz_RepeatedQuestionScoredOnce(t *testing.T) {
	st := newFakeStore()
	sc := seedScoringScenario(st)
	svc := newScoringFixture(st, time.Now())

	// The first answer for a question wins; the repeat must not add marks or
	// a second response row, so the score stays within 0-100.
	res, err := svc.AttemptQuiz(context.Background(), sc.user.ID, sc.quiz.ID, []AnswerInput{
		{QuestionID: sc.questions[0].ID, OptionID: sc.correct[0].ID},
		{QuestionID: sc.questions[0].ID, OptionID: sc.correct[0].ID},
		{QuestionID: sc.questions[1].ID, OptionID: sc.correct[1].ID},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MarksObtained != 10 || res.TotalMarks != 10 {
		t.Fatalf("expected 10/10 marks, got %d/%d", res.MarksObtained, res.TotalMarks)
	}
	if res.Percentage != 100 {
		t.Fatalf("expected 100%%, got %v", res.Percentage)
	}
	if res.SubmittedAnswers != 3 || res.ScoredAnswers != 2 {
		t.Fatalf("expected 3 submitted / 2 scored, got %d/%d", res.SubmittedAnswers, res.ScoredAnswers)
	}
	if len(st.responses) != 2 {
		t.Fatalf("expected one response row per question, got %d", len(st.responses))
	}
	if sc.enrollment.Score != 100 || sc.enrollment.QuestionsAnswered != 2 {
		t.Fatalf("enrollment must carry the deduplicated result, got score=%v answered=%d",
			sc.enrollment.Score, sc.enrollment.QuestionsAnswered)
	}
}

func TestAttemptQuiz_WithoutEnrollmentFails(t *testing.T) {
	st := newFakeStore()
	sc := seedScoringScenario(st)
	st.userModules = nil
	svc := newScoringFixture(st, time.Now())

	_, err := svc.AttemptQuiz(context.Background(), sc.user.ID, sc.quiz.ID, []AnswerInput{
		{QuestionID: sc.questions[0].ID, OptionID: sc.correct[0].ID},
	})
	ae := wantKind(t, err, apierr.KindNotEnrolled)
	if ae.Code != "not_enrolled" {
		t.Fatalf("expected not_enrolled code, got %s", ae.Code)
	}
}

func TestAttemptQuiz_SecondAttemptOverwrites(t *testing.T) {
	st := newFakeStore()
	sc := seedScoringScenario(st)
	svc := newScoringFixture(st, time.Now())

	if _, err := svc.AttemptQuiz(context.Background(), sc.user.ID, sc.quiz.ID, []AnswerInput{
		{QuestionID: sc.questions[0].ID, OptionID: sc.correct[0].ID},
		{QuestionID: sc.questions[1].ID, OptionID: sc.correct[1].ID},
	}); err != nil {
		t.Fatalf("first attempt: %v", err)
	}

	res, err := svc.AttemptQuiz(context.Background(), sc.user.ID, sc.quiz.ID, []AnswerInput{
		{QuestionID: sc.questions[0].ID, OptionID: sc.wrong[0].ID},
		{QuestionID: sc.questions[1].ID, OptionID: sc.wrong[1].ID},
	})
	if err != nil {
		t.Fatalf("second attempt: %v", err)
	}
	if sc.enrollment.Score != 0 {
		t.Fatalf("second attempt must overwrite the score, not accumulate: got %v", sc.enrollment.Score)
	}
	if sc.enrollment.Status != types.EnrollmentInProgress || sc.enrollment.CompletedOn != nil {
		t.Fatalf("second attempt must revert the earlier completion, got %s/%v",
			sc.enrollment.Status, sc.enrollment.CompletedOn)
	}
	if res.Outcome != OutcomeFailed {
		t.Fatalf("expected failed, got %s", res.Outcome)
	}
	// Responses are append-only history; both attempts stay recorded.
	if len(st.responses) != 4 {
		t.Fatalf("expected 4 response rows across both attempts, got %d", len(st.responses))
	}
}

func TestAttemptQuiz_ZeroWeightQuizScoresZero(t *testing.T) {
	st := newFakeStore()
	sc := seedScoringScenario(st)
	sc.questions[0].Marks = 0
	sc.questions[1].Marks = 0
	svc := newScoringFixture(st, time.Now())

	res, err := svc.AttemptQuiz(context.Background(), sc.user.ID, sc.quiz.ID, []AnswerInput{
		{QuestionID: sc.questions[0].ID, OptionID: sc.correct[0].ID},
	})
	if err != nil {
		t.Fatalf("zero-weight quiz must not divide by zero: %v", err)
	}
	if res.Percentage != 0 || res.Outcome != OutcomeFailed {
		t.Fatalf("expected 0%%/failed, got %v/%s", res.Percentage, res.Outcome)
	}
}

func TestAttemptQuiz_UnknownQuizNotFound(t *testing.T) {
	st := newFakeStore()
	user := seedActiveUser(st)
	svc := newScoringFixture(st, time.Now())

	_, err := svc.AttemptQuiz(context.Background(), user.ID, uuid.New(), nil)
	wantKind(t, err, apierr.KindNotFound)
}

func TestGetQuizResult_DeletedUserFails(t *testing.T) {
	st := newFakeStore()
	sc := seedScoringScenario(st)
	svc := newScoringFixture(st, time.Now())

	if _, err := svc.AttemptQuiz(context.Background(), sc.user.ID, sc.quiz.ID, []AnswerInput{
		{QuestionID: sc.questions[0].ID, OptionID: sc.correct[0].ID},
	}); err != nil {
		t.Fatalf("attempt: %v", err)
	}

	sc.user.DeletedAt.Valid = true
	sc.user.DeletedAt.Time = time.Now()
	_, err := svc.GetQuizResult(context.Background(), sc.user.ID, sc.quiz.ID)
	wantKind(t, err, apierr.KindNotFound)
}

func TestGetQuizResult_ReflectsLatestAttempt(t *testing.T) {
	st := newFakeStore()
	sc := seedScoringScenario(st)
	svc := newScoringFixture(st, time.Now())

	if _, err := svc.AttemptQuiz(context.Background(), sc.user.ID, sc.quiz.ID, []AnswerInput{
		{QuestionID: sc.questions[0].ID, OptionID: sc.correct[0].ID},
		{QuestionID: sc.questions[1].ID, OptionID: sc.wrong[1].ID},
	}); err != nil {
		t.Fatalf("attempt: %v", err)
	}

	snap, err := svc.GetQuizResult(context.Background(), sc.user.ID, sc.quiz.ID)
	if err != nil {
		t.Fatalf("get result: %v", err)
	}
	if snap.Score != 50 || snap.Status != types.EnrollmentInProgress || snap.QuestionsAnswered != 2 {
		t.Fatalf("snapshot does not match the attempt: %+v", snap)
	}
}
