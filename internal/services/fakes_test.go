package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/devlink/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repo doubles. They mimic the store contract the services rely
// on: duplicate keys surface as mongo write exceptions and missing documents
// as mongo.ErrNoDocuments.

func dupKeyErr() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, dupKeyErr()
		}
	}
	user.BeforeCreate()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if v, ok := fields["full_name"].(string); ok {
		u.FullName = v
	}
	if v, ok := fields["status"].(string); ok {
		u.Status = v
	}
	return u, nil
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.users, id)
	return nil
}

type fakeProfileRepo struct {
	developers map[primitive.ObjectID]*models.Developer
	employers  map[primitive.ObjectID]*models.Employer

	failDeveloperCreate bool
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		developers: map[primitive.ObjectID]*models.Developer{},
		employers:  map[primitive.ObjectID]*models.Employer{},
	}
}

func (f *fakeProfileRepo) CreateDeveloper(ctx context.Context, dev *models.Developer) (*models.Developer, error) {
	if f.failDeveloperCreate {
		return nil, fmt.Errorf("insert failed")
	}
	if _, exists := f.developers[dev.UserID]; exists {
		return nil, dupKeyErr()
	}
	dev.BeforeCreate()
	f.developers[dev.UserID] = dev
	return dev, nil
}

func (f *fakeProfileRepo) CreateEmployer(ctx context.Context, emp *models.Employer) (*models.Employer, error) {
	if _, exists := f.employers[emp.UserID]; exists {
		return nil, dupKeyErr()
	}
	emp.BeforeCreate()
	f.employers[emp.UserID] = emp
	return emp, nil
}

func (f *fakeProfileRepo) GetDeveloperByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Developer, error) {
	dev, ok := f.developers[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return dev, nil
}

func (f *fakeProfileRepo) GetEmployerByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Employer, error) {
	emp, ok := f.employers[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return emp, nil
}

func (f *fakeProfileRepo) UpdateDeveloper(ctx context.Context, userID primitive.ObjectID, fields map[string]interface{}) (*models.Developer, error) {
	dev, ok := f.developers[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if v, ok := fields["bio"].(string); ok {
		dev.Bio = v
	}
	if v, ok := fields["skills"].([]string); ok {
		dev.Skills = v
	}
	if v, ok := fields["avatar_url"].(string); ok {
		dev.AvatarURL = v
	}
	if v, ok := fields["resume_url"].(string); ok {
		dev.ResumeURL = v
	}
	if v, ok := fields["location"].(string); ok {
		dev.Location = v
	}
	return dev, nil
}

func (f *fakeProfileRepo) UpdateEmployer(ctx context.Context, userID primitive.ObjectID, fields map[string]interface{}) (*models.Employer, error) {
	emp, ok := f.employers[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if v, ok := fields["company_name"].(string); ok {
		emp.CompanyName = v
	}
	if v, ok := fields["avatar_url"].(string); ok {
		emp.AvatarURL = v
	}
	return emp, nil
}

func (f *fakeProfileRepo) SetDeveloperRating(ctx context.Context, userID primitive.ObjectID, ratingAvg float64) error {
	if dev, ok := f.developers[userID]; ok {
		dev.RatingAvg = ratingAvg
	}
	return nil
}

type fakeJobRepo struct {
	jobs map[primitive.ObjectID]*models.Job

	// afterGet runs after each GetJobByID, simulating a concurrent writer
	// landing between a service's read and its status write.
	afterGet func()
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[primitive.ObjectID]*models.Job{}}
}

func (f *fakeJobRepo) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	job.BeforeCreate()
	f.jobs[job.ID] = job
	return job, nil
}

func (f *fakeJobRepo) GetJobByID(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	snapshot := *job
	if f.afterGet != nil {
		f.afterGet()
	}
	return &snapshot, nil
}

func (f *fakeJobRepo) ListJobs(ctx context.Context, filter models.JobFilter, offset, limit int) ([]*models.Job, int, error) {
	var out []*models.Job
	for _, job := range f.jobs {
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		out = append(out, job)
	}
	return out, len(out), nil
}

func (f *fakeJobRepo) ListJobsByEmployer(ctx context.Context, employerID primitive.ObjectID, offset, limit int) ([]*models.Job, int, error) {
	var out []*models.Job
	for _, job := range f.jobs {
		if job.EmployerID == employerID {
			out = append(out, job)
		}
	}
	return out, len(out), nil
}

func (f *fakeJobRepo) UpdateJob(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if v, ok := fields["title"].(string); ok {
		job.Title = v
	}
	if v, ok := fields["description"].(string); ok {
		job.Description = v
	}
	if v, ok := fields["budget_min"].(float64); ok {
		job.BudgetMin = v
	}
	if v, ok := fields["budget_max"].(float64); ok {
		job.BudgetMax = v
	}
	if v, ok := fields["location"].(string); ok {
		job.Location = v
	}
	return job, nil
}

func (f *fakeJobRepo) SetJobStatus(ctx context.Context, id primitive.ObjectID, from, to string) error {
	job, ok := f.jobs[id]
	if !ok || job.Status != from {
		return mongo.ErrNoDocuments
	}
	job.Status = to
	return nil
}

type fakeApplicationRepo struct {
	applications map[primitive.ObjectID]*models.Application

	afterGet func()
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: map[primitive.ObjectID]*models.Application{}}
}

func (f *fakeApplicationRepo) CreateApplication(ctx context.Context, app *models.Application) (*models.Application, error) {
	for _, existing := range f.applications {
		if existing.JobID == app.JobID && existing.DeveloperID == app.DeveloperID {
			return nil, dupKeyErr()
		}
	}
	app.BeforeCreate()
	f.applications[app.ID] = app
	return app, nil
}

func (f *fakeApplicationRepo) GetApplicationByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	app, ok := f.applications[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	snapshot := *app
	if f.afterGet != nil {
		f.afterGet()
	}
	return &snapshot, nil
}

func (f *fakeApplicationRepo) ListApplicationsByJob(ctx context.Context, jobID primitive.ObjectID) ([]*models.Application, error) {
	var out []*models.Application
	for _, app := range f.applications {
		if app.JobID == jobID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ListApplicationsByDeveloper(ctx context.Context, developerID primitive.ObjectID) ([]*models.Application, error) {
	var out []*models.Application
	for _, app := range f.applications {
		if app.DeveloperID == developerID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) SetApplicationStatus(ctx context.Context, id primitive.ObjectID, from, to string) error {
	app, ok := f.applications[id]
	if !ok || app.Status != from {
		return mongo.ErrNoDocuments
	}
	app.Status = to
	return nil
}

type fakeContractRepo struct {
	contracts map[primitive.ObjectID]*models.Contract
	escrow    map[primitive.ObjectID][]*models.EscrowTransaction
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{
		contracts: map[primitive.ObjectID]*models.Contract{},
		escrow:    map[primitive.ObjectID][]*models.EscrowTransaction{},
	}
}

func (f *fakeContractRepo) CreateContract(ctx context.Context, contract *models.Contract) (*models.Contract, error) {
	contract.BeforeCreate()
	f.contracts[contract.ID] = contract
	return contract, nil
}

func (f *fakeContractRepo) GetContractByID(ctx context.Context, id primitive.ObjectID) (*models.Contract, error) {
	contract, ok := f.contracts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return contract, nil
}

func (f *fakeContractRepo) ListContractsByParty(ctx context.Context, userID primitive.ObjectID) ([]*models.Contract, error) {
	var out []*models.Contract
	for _, c := range f.contracts {
		if c.IsParty(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContractRepo) ListEscrowByContract(ctx context.Context, contractID primitive.ObjectID) ([]*models.EscrowTransaction, error) {
	return f.escrow[contractID], nil
}

type fakeConversationRepo struct {
	conversations map[primitive.ObjectID]*models.Conversation
	messages      map[primitive.ObjectID][]*models.Message
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: map[primitive.ObjectID]*models.Conversation{},
		messages:      map[primitive.ObjectID][]*models.Message{},
	}
}

func (f *fakeConversationRepo) FindOrCreateConversation(ctx context.Context, a, b primitive.ObjectID) (*models.Conversation, error) {
	first, second := models.CanonicalPair(a, b)
	for _, conv := range f.conversations {
		if conv.ParticipantA == first && conv.ParticipantB == second {
			return conv, nil
		}
	}
	conv := &models.Conversation{
		ID:           primitive.NewObjectID(),
		ParticipantA: first,
		ParticipantB: second,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.conversations[conv.ID] = conv
	return conv, nil
}

func (f *fakeConversationRepo) GetConversationByID(ctx context.Context, id primitive.ObjectID) (*models.Conversation, error) {
	conv, ok := f.conversations[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return conv, nil
}

func (f *fakeConversationRepo) ListConversationsByParticipant(ctx context.Context, userID primitive.ObjectID) ([]*models.Conversation, error) {
	var out []*models.Conversation
	for _, conv := range f.conversations {
		if conv.HasParticipant(userID) {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (f *fakeConversationRepo) CreateMessage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	msg.BeforeCreate()
	f.messages[msg.ConversationID] = append(f.messages[msg.ConversationID], msg)
	if conv, ok := f.conversations[msg.ConversationID]; ok {
		conv.LastMessageAt = msg.CreatedAt
	}
	return msg, nil
}

func (f *fakeConversationRepo) ListMessages(ctx context.Context, conversationID primitive.ObjectID, offset, limit int) ([]*models.Message, error) {
	msgs := f.messages[conversationID]
	if offset >= len(msgs) {
		return nil, nil
	}
	end := offset + limit
	if end > len(msgs) {
		end = len(msgs)
	}
	return msgs[offset:end], nil
}

type fakeReviewRepo struct {
	reviews []*models.Review
}

func (f *fakeReviewRepo) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.ContractID == review.ContractID && r.ReviewerID == review.ReviewerID {
			return nil, dupKeyErr()
		}
	}
	review.BeforeCreate()
	f.reviews = append(f.reviews, review)
	return review, nil
}

func (f *fakeReviewRepo) ListReviewsByReviewee(ctx context.Context, revieweeID primitive.ObjectID) ([]*models.Review, error) {
	var out []*models.Review
	for _, r := range f.reviews {
		if r.RevieweeID == revieweeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) AverageRatingForReviewee(ctx context.Context, revieweeID primitive.ObjectID) (float64, error) {
	sum, n := 0, 0
	for _, r := range f.reviews {
		if r.RevieweeID == revieweeID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

type fakeAuditRepo struct {
	entries []*models.AuditLog
}

func (f *fakeAuditRepo) AppendAuditLog(ctx context.Context, entry *models.AuditLog) error {
	entry.BeforeCreate()
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditRepo) ListAuditLogs(ctx context.Context, offset, limit int) ([]*models.AuditLog, int, error) {
	return f.entries, len(f.entries), nil
}

func (f *fakeAuditRepo) actions() []string {
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeVerificationRepo struct {
	records map[string]*models.EmailVerification
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{records: map[string]*models.EmailVerification{}}
}

func (f *fakeVerificationRepo) UpsertVerification(ctx context.Context, email, otp string, expiresAt time.Time) error {
	f.records[email] = &models.EmailVerification{
		ID:        primitive.NewObjectID(),
		Email:     email,
		OTP:       otp,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (f *fakeVerificationRepo) GetActiveVerification(ctx context.Context, email string) (*models.EmailVerification, error) {
	record, ok := f.records[email]
	if !ok || record.Verified {
		return nil, mongo.ErrNoDocuments
	}
	return record, nil
}

func (f *fakeVerificationRepo) ConsumeVerification(ctx context.Context, id primitive.ObjectID) error {
	for _, record := range f.records {
		if record.ID == id {
			record.Verified = true
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type fakeSender struct {
	sentTo   []string
	lastCode string
	failWith error
}

func (f *fakeSender) SendVerificationCode(to, code string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.sentTo = append(f.sentTo, to)
	f.lastCode = code
	return nil
}
