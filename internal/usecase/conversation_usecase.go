package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-screening-backend/config"
	"go-screening-backend/internal/domain"
	"go-screening-backend/pkg/apperror"
	"go-screening-backend/pkg/email"
	"go-screening-backend/pkg/geo"
	"go-screening-backend/pkg/logger"
	"go-screening-backend/pkg/nlp"
	"go-screening-backend/pkg/techstack"
	"go-screening-backend/pkg/validation"
)

type conversationUsecase struct {
	sessionRepo   domain.SessionRepository
	candidateRepo domain.CandidateRepository
	profileRepo   domain.ProfileRepository
	interview     domain.InterviewService
	locations     *geo.Validator
	mailer        *email.EmailService
	resolver      validation.MXResolver
	cfg           *config.Config

	// one mutex per live session; turns on the same session serialize
	locks sync.Map
}

func NewConversationUsecase(
	sessionRepo domain.SessionRepository,
	candidateRepo domain.CandidateRepository,
	profileRepo domain.ProfileRepository,
	interview domain.InterviewService,
	locations *geo.Validator,
	mailer *email.EmailService,
	resolver validation.MXResolver,
	cfg *config.Config,
) domain.ConversationUsecase {
	return &conversationUsecase{
		sessionRepo:   sessionRepo,
		candidateRepo: candidateRepo,
		profileRepo:   profileRepo,
		interview:     interview,
		locations:     locations,
		mailer:        mailer,
		resolver:      resolver,
		cfg:           cfg,
	}
}

// Prompts asked when a phase is entered. Assessment and closing manage
// their own output.
var promptKeys = map[domain.Phase]string{
	domain.PhaseConsent:    "ask_consent",
	domain.PhaseName:       "ask_name",
	domain.PhaseEmail:      "ask_email",
	domain.PhasePhone:      "ask_phone",
	domain.PhaseExperience: "ask_yexp",
	domain.PhasePositions:  "ask_roles",
	domain.PhaseLocation:   "ask_loc",
	domain.PhaseTechStack:  "ask_stack",
}

func (u *conversationUsecase) StartSession(ctx context.Context) (*domain.Session, error) {
	now := time.Now().UTC()
	session := &domain.Session{
		ID:    uuid.NewString(),
		Phase: domain.PhaseConsent,
		Candidate: domain.Candidate{
			ID:        shortCandidateID(),
			Language:  "en",
			CreatedAt: now,
			UpdatedAt: now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	u.reply(session, nil, tr("en", "greet"))
	u.reply(session, nil, tr("en", "ask_consent"))

	if err := u.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	logger.Log.Info("session started", "session_id", session.ID, "candidate_id", session.Candidate.ID)
	return session, nil
}

func (u *conversationUsecase) HandleMessage(ctx context.Context, sessionID, content string) (*domain.TurnResult, error) {
	lock := u.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := u.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("Session not found or expired")
	}
	if session.Done() {
		return nil, apperror.BadRequest("This conversation is already closed")
	}

	text := strings.TrimSpace(validation.EnsureText(content))
	if text == "" {
		return nil, apperror.BadRequest("Message content is required")
	}

	// The very first user turn picks the reply language.
	if !hasUserTurn(session.Transcript) {
		session.Candidate.Language = nlp.DetectLanguage(text, session.Candidate.Language)
	}

	sentiment := nlp.AnalyzeSentiment(text)
	session.Transcript = append(session.Transcript, domain.Message{
		Role:      domain.RoleUser,
		Content:   text,
		Sentiment: sentiment.Label,
		Language:  session.Candidate.Language,
		CreatedAt: time.Now().UTC(),
	})

	var replies []domain.Message
	switch {
	case validation.IsExitCommand(text):
		u.finish(ctx, session, &replies)
	case session.Phase == domain.PhaseAssessment:
		u.handleAnswer(ctx, session, &replies, text)
	default:
		u.handleFieldInput(ctx, session, &replies, text)
	}

	session.UpdatedAt = time.Now().UTC()
	if err := u.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	return &domain.TurnResult{
		SessionID: session.ID,
		Phase:     session.Phase,
		Replies:   replies,
		Progress:  assessmentProgress(session.Assessment),
		Done:      session.Done(),
	}, nil
}

func (u *conversationUsecase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := u.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("Session not found or expired")
	}
	return session, nil
}

func (u *conversationUsecase) SaveRecord(ctx context.Context, sessionID string) (*domain.Candidate, error) {
	lock := u.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := u.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("Session not found or expired")
	}
	if !session.Candidate.Consent {
		return nil, apperror.Forbidden("Cannot save without consent")
	}

	if session.Assessment != nil {
		session.Candidate.Exchanges = session.Assessment.Exchanges
	}
	session.Candidate.UpdatedAt = time.Now().UTC()
	if err := u.candidateRepo.Save(ctx, &session.Candidate); err != nil {
		return nil, err
	}
	u.saveProfile(ctx, session)

	session.UpdatedAt = time.Now().UTC()
	if err := u.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	logger.Log.Info("candidate record saved", "candidate_id", session.Candidate.ID)
	return &session.Candidate, nil
}

func (u *conversationUsecase) RestoreRecord(ctx context.Context, sessionID, candidateID string) (*domain.Session, error) {
	lock := u.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := u.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("Session not found or expired")
	}

	record, err := u.candidateRepo.GetByID(ctx, strings.TrimSpace(candidateID))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NotFound("No such record")
	}

	session.Candidate = *record
	if session.Candidate.Language == "" {
		session.Candidate.Language = "en"
	}
	session.Assessment = nil
	u.reply(session, nil, "Record loaded into session.")
	u.loadProfile(ctx, session)

	session.Phase = nextPhaseFor(&session.Candidate)
	if session.Phase == domain.PhaseAssessment {
		var replies []domain.Message
		u.beginAssessment(ctx, session, &replies)
	} else {
		u.reply(session, nil, tr(session.Candidate.Language, promptKeys[session.Phase]))
	}

	session.UpdatedAt = time.Now().UTC()
	if err := u.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// handleFieldInput validates the user's reply against the current
// phase's field. Acceptance advances the phase and asks the next
// prompt; rejection repeats the phase with the reason.
func (u *conversationUsecase) handleFieldInput(ctx context.Context, session *domain.Session, replies *[]domain.Message, text string) {
	switch session.Phase {
	case domain.PhaseConsent:
		if !validation.IsAffirmative(text) {
			u.reply(session, replies, "No problem. Type 'yes' to proceed with consent or 'exit' to end.")
			return
		}
		session.Candidate.Consent = true
		u.advance(session, replies)

	case domain.PhaseName:
		name, err := validation.ValidateFullName(text)
		if err != nil {
			u.rejectReply(session, replies, "full name", err)
			return
		}
		session.Candidate.FullName = name
		u.advance(session, replies)

	case domain.PhaseEmail:
		u.handleEmail(ctx, session, replies, text)

	case domain.PhasePhone:
		phone, err := validation.ValidatePhone(text, u.cfg.DefaultRegion)
		if err != nil {
			u.rejectReply(session, replies, "phone number", err)
			return
		}
		session.Candidate.Phone = phone
		u.advance(session, replies)

	case domain.PhaseExperience:
		years, err := validation.ValidateYears(text)
		if err != nil {
			u.rejectReply(session, replies, "years of experience", err)
			return
		}
		session.Candidate.YearsExperience = years
		u.advance(session, replies)

	case domain.PhasePositions:
		positions, err := validation.ValidatePositions(text)
		if err != nil {
			u.rejectReply(session, replies, "desired positions", err)
			return
		}
		session.Candidate.Positions = positions
		u.advance(session, replies)

	case domain.PhaseLocation:
		u.handleLocation(ctx, session, replies, text)

	case domain.PhaseTechStack:
		u.handleTechStack(ctx, session, replies, text)
	}
}

func (u *conversationUsecase) handleEmail(ctx context.Context, session *domain.Session, replies *[]domain.Message, text string) {
	addr, err := validation.ValidateEmail(text)
	if err != nil {
		u.rejectReply(session, replies, "email", err)
		return
	}

	if u.cfg.EmailDeliverability == config.DeliverabilityStrict {
		if err := validation.CheckDeliverability(ctx, u.resolver, addr); err != nil {
			u.reply(session, replies, "Email looks valid but DNS/MX couldn't be verified. Proceeding; this will be re-checked later.")
			session.Warnings = append(session.Warnings, err.Error())
		}
	}

	session.Candidate.Email = addr
	u.loadProfile(ctx, session)
	u.advance(session, replies)
}

func (u *conversationUsecase) handleLocation(ctx context.Context, session *domain.Session, replies *[]domain.Message, text string) {
	location, err := u.locations.ValidateLocation(ctx, text)
	if err != nil {
		var degraded *apperror.ServiceDegraded
		if errors.As(err, &degraded) {
			session.Warnings = append(session.Warnings, degraded.Error())
			session.Candidate.Location = location
			u.reply(session, replies, fmt.Sprintf("Couldn't verify that location right now; recording it as '%s'.", location))
			u.advance(session, replies)
			return
		}
		u.rejectReply(session, replies, "location", err)
		return
	}
	session.Candidate.Location = location
	u.advance(session, replies)
}

func (u *conversationUsecase) handleTechStack(ctx context.Context, session *domain.Session, replies *[]domain.Message, text string) {
	parsed := techstack.Parse(text)
	if parsed.Stack.IsEmpty() {
		u.reply(session, replies, "That input doesn't look like a technology list. Please enter items like 'Python, Django, PostgreSQL, Docker'.")
		return
	}

	session.Candidate.TechStack = domain.TechStack{
		Languages:  parsed.Stack.Languages,
		Frameworks: parsed.Stack.Frameworks,
		Databases:  parsed.Stack.Databases,
		Tools:      parsed.Stack.Tools,
	}
	if len(parsed.Unmatched) > 0 {
		u.reply(session, replies, fmt.Sprintf("Skipped entries I couldn't match to known technologies: %s.", strings.Join(parsed.Unmatched, ", ")))
	}

	session.Phase = domain.PhaseAssessment
	u.beginAssessment(ctx, session, replies)
}

// handleAnswer grades the reply to the pending question and moves the
// assessment cursor, refilling questions at each topic boundary.
func (u *conversationUsecase) handleAnswer(ctx context.Context, session *domain.Session, replies *[]domain.Message, text string) {
	a := session.Assessment
	question, ok := a.CurrentQuestion()
	if !ok {
		u.finish(ctx, session, replies)
		return
	}

	evaluation, err := u.interview.Evaluate(ctx, text, question, session.Candidate.Language)
	if err != nil {
		session.Warnings = append(session.Warnings, err.Error())
	}
	a.Exchanges = append(a.Exchanges, domain.Exchange{
		Question:   question,
		Answer:     text,
		Evaluation: evaluation,
	})
	u.reply(session, replies, formatEvaluation(evaluation))

	a.QuestionIdx++
	if a.QuestionIdx < len(a.Questions) {
		u.askCurrentQuestion(session, replies)
		return
	}

	a.TopicIdx++
	if a.TopicIdx < len(a.Topics) {
		u.loadTopicQuestions(ctx, session)
		u.askCurrentQuestion(session, replies)
		return
	}

	u.reply(session, replies, "Thanks for answering the questions.")
	u.finish(ctx, session, replies)
}

func (u *conversationUsecase) beginAssessment(ctx context.Context, session *domain.Session, replies *[]domain.Message) {
	topics := session.Candidate.TechStack.All()
	if u.cfg.MaxTopics > 0 && len(topics) > u.cfg.MaxTopics {
		topics = topics[:u.cfg.MaxTopics]
	}
	if len(topics) == 0 {
		u.reply(session, replies, "Unable to prepare questions right now. Please try again or type 'exit' to finish.")
		u.finish(ctx, session, replies)
		return
	}

	session.Assessment = &domain.Assessment{
		Topics:     topics,
		Difficulty: u.difficultyFor(session),
	}
	u.loadTopicQuestions(ctx, session)
	u.askCurrentQuestion(session, replies)
}

// difficultyFor prefers the stored profile preference; otherwise the
// years of experience decide.
func (u *conversationUsecase) difficultyFor(session *domain.Session) domain.Difficulty {
	if session.Profile != nil && session.Profile.Difficulty.IsValid() && session.Profile.Difficulty != domain.DifficultyAuto {
		return session.Profile.Difficulty
	}
	switch years := session.Candidate.YearsExperience; {
	case years < 2:
		return domain.DifficultyBeginner
	case years < 6:
		return domain.DifficultyIntermediate
	default:
		return domain.DifficultyAdvanced
	}
}

func (u *conversationUsecase) loadTopicQuestions(ctx context.Context, session *domain.Session) {
	a := session.Assessment
	topic, ok := a.CurrentTopic()
	if !ok {
		return
	}
	questions, err := u.interview.GenerateQuestions(ctx, topic, a.Difficulty, u.cfg.QuestionsPerTopic, session.Candidate.Language)
	if err != nil {
		session.Warnings = append(session.Warnings, err.Error())
	}
	a.Questions = questions
	a.QuestionIdx = 0
}

func (u *conversationUsecase) askCurrentQuestion(session *domain.Session, replies *[]domain.Message) {
	a := session.Assessment
	question, ok := a.CurrentQuestion()
	if !ok {
		return
	}
	n := len(a.Exchanges) + 1
	u.reply(session, replies, fmt.Sprintf("Q%d. [%s, %s] %s", n, question.Technology, question.Difficulty, question.Text))
}

// finish moves the session to closing, persists what consent allows and
// says goodbye.
func (u *conversationUsecase) finish(ctx context.Context, session *domain.Session, replies *[]domain.Message) {
	session.Phase = domain.PhaseClosing
	u.persistClosedSession(ctx, session)
	u.reply(session, replies, tr(session.Candidate.Language, "thanks"))
}

func (u *conversationUsecase) persistClosedSession(ctx context.Context, session *domain.Session) {
	if session.Assessment != nil {
		session.Candidate.Exchanges = session.Assessment.Exchanges
	}
	session.Candidate.UpdatedAt = time.Now().UTC()

	if !session.Candidate.Consent {
		return
	}

	if err := u.candidateRepo.Save(ctx, &session.Candidate); err != nil {
		perr := &apperror.PersistenceFailed{Op: "candidate save", Err: err}
		session.Warnings = append(session.Warnings, perr.Error())
		logger.Log.Error("candidate save failed", "candidate_id", session.Candidate.ID, "error", err)
	} else {
		logger.Log.Info("candidate record saved", "candidate_id", session.Candidate.ID)
	}

	u.saveProfile(ctx, session)
	u.sendCompletionEmail(session)
}

func (u *conversationUsecase) loadProfile(ctx context.Context, session *domain.Session) {
	emailAddr := session.Candidate.NormalizedEmail()
	if emailAddr == "" {
		return
	}
	prof, err := u.profileRepo.Get(ctx, emailAddr)
	if err != nil {
		logger.Log.Warn("profile lookup failed", "email", emailAddr, "error", err)
		return
	}
	if prof == nil {
		return
	}
	session.Profile = prof
	if prof.Language != "" {
		session.Candidate.Language = prof.Language
	}
	logger.Log.Info("profile loaded", "email", emailAddr, "difficulty", prof.Difficulty)
}

func (u *conversationUsecase) saveProfile(ctx context.Context, session *domain.Session) {
	emailAddr := session.Candidate.NormalizedEmail()
	if emailAddr == "" {
		return
	}

	prof := session.Profile
	if prof == nil {
		prof = domain.DefaultProfile(emailAddr)
	}
	prof.Language = session.Candidate.Language
	if session.Assessment != nil {
		prof.PushRecentTopics(session.Assessment.Topics...)
	}
	prof.UpdatedAt = time.Now().UTC()

	if err := u.profileRepo.Upsert(ctx, prof); err != nil {
		perr := &apperror.PersistenceFailed{Op: "profile save", Err: err}
		session.Warnings = append(session.Warnings, perr.Error())
		logger.Log.Error("profile save failed", "email", emailAddr, "error", err)
		return
	}
	session.Profile = prof
}

func (u *conversationUsecase) sendCompletionEmail(session *domain.Session) {
	if u.mailer == nil || !u.mailer.IsConfigured() || session.Candidate.Email == "" {
		return
	}
	data := email.CompletionEmailData{
		FullName:  session.Candidate.FullName,
		Positions: session.Candidate.Positions,
	}
	if session.Assessment != nil {
		data.Topics = session.Assessment.Topics
		data.QuestionCount = len(session.Assessment.Exchanges)
	}
	to := session.Candidate.Email
	go func() {
		if err := u.mailer.SendCompletionEmail(to, data); err != nil {
			logger.Log.Warn("completion email failed", "error", err)
		}
	}()
}

// reply appends an assistant message to the transcript and, when a
// collector is given, to the turn's replies.
func (u *conversationUsecase) reply(session *domain.Session, replies *[]domain.Message, text string) {
	msg := domain.Message{
		Role:      domain.RoleAssistant,
		Content:   text,
		CreatedAt: time.Now().UTC(),
	}
	session.Transcript = append(session.Transcript, msg)
	if replies != nil {
		*replies = append(*replies, msg)
	}
}

func (u *conversationUsecase) advance(session *domain.Session, replies *[]domain.Message) {
	session.Phase = session.Phase.Next()
	if key, ok := promptKeys[session.Phase]; ok {
		u.reply(session, replies, tr(session.Candidate.Language, key))
	}
}

func (u *conversationUsecase) rejectReply(session *domain.Session, replies *[]domain.Message, field string, err error) {
	if rej, ok := validation.AsRejection(err); ok {
		u.reply(session, replies, rej.Error())
		return
	}
	u.reply(session, replies, fmt.Sprintf("That doesn't look valid for %s. Please re-check and try again, or type 'exit' to finish.", field))
}

func (u *conversationUsecase) sessionLock(id string) *sync.Mutex {
	v, _ := u.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func formatEvaluation(ev *domain.Evaluation) string {
	verdict := validation.TitleCase(strings.ReplaceAll(string(ev.Verdict), "_", " "))
	if ev.Feedback != "" {
		return fmt.Sprintf("Evaluation: %s (score %d). %s", verdict, ev.Score, ev.Feedback)
	}
	return fmt.Sprintf("Evaluation: %s (score %d).", verdict, ev.Score)
}

func assessmentProgress(a *domain.Assessment) *domain.AssessmentProgress {
	if a == nil || a.Done() {
		return nil
	}
	topic, _ := a.CurrentTopic()
	return &domain.AssessmentProgress{
		Topic:          topic,
		TopicNumber:    a.TopicIdx + 1,
		TopicCount:     len(a.Topics),
		QuestionNumber: a.QuestionIdx + 1,
		QuestionCount:  len(a.Questions),
	}
}

// nextPhaseFor picks the phase for a restored candidate record: the
// first field still missing, or the assessment when everything is set.
func nextPhaseFor(c *domain.Candidate) domain.Phase {
	switch {
	case !c.Consent:
		return domain.PhaseConsent
	case c.FullName == "":
		return domain.PhaseName
	case c.Email == "":
		return domain.PhaseEmail
	case c.Phone == "":
		return domain.PhasePhone
	case c.YearsExperience == 0:
		return domain.PhaseExperience
	case len(c.Positions) == 0:
		return domain.PhasePositions
	case c.Location == "":
		return domain.PhaseLocation
	case c.TechStack.IsEmpty():
		return domain.PhaseTechStack
	default:
		return domain.PhaseAssessment
	}
}

func hasUserTurn(transcript []domain.Message) bool {
	for _, m := range transcript {
		if m.Role == domain.RoleUser {
			return true
		}
	}
	return false
}

func shortCandidateID() string {
	return uuid.NewString()[:8]
}
