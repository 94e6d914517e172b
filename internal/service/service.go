package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tkmani91/khs-server/internal/models"
	"github.com/tkmani91/khs-server/internal/store"
)

// Errors surfaced to the API layer
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("user with this username already exists")
	ErrNotFound           = errors.New("record not found")
	ErrNegativeAmount     = errors.New("amount must not be negative")
	ErrInvalidDate        = errors.New("date must be in YYYY-MM-DD format")
)

// RemoteControl is the part of the remote adapter the service drives
// directly: enabling and disabling remote mode. Satisfied by *github.Client.
type RemoteControl interface {
	Configure(token string)
	ClearToken()
	IsConfigured() bool
	InvalidateCache()
}

// Service defines all the business logic operations
type Service interface {
	// Authentication
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	ViewerSession() (*models.AuthResponse, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.UserResponse, error)

	// Entity operations
	ListMembers(q string) []models.Member
	CreateMember(req models.MemberRequest) (*models.Member, error)
	UpdateMember(id string, req models.MemberRequest) (*models.Member, error)
	DeleteMember(id string) error

	ListPujas(q string) []models.Puja
	CreatePuja(req models.PujaRequest) (*models.Puja, error)
	UpdatePuja(id string, req models.PujaRequest) (*models.Puja, error)
	DeletePuja(id string) error

	ListContributions(pujaID, memberID string) []models.Contribution
	CreateContribution(req models.ContributionRequest) (*models.Contribution, error)
	UpdateContribution(id string, req models.ContributionRequest) (*models.Contribution, error)
	DeleteContribution(id string) error

	ListIncome(q string) []models.OtherIncome
	CreateIncome(req models.IncomeRequest) (*models.OtherIncome, error)
	UpdateIncome(id string, req models.IncomeRequest) (*models.OtherIncome, error)
	DeleteIncome(id string) error

	ListExpenses(q, pujaID string) []models.Expense
	CreateExpense(req models.ExpenseRequest) (*models.Expense, error)
	UpdateExpense(id string, req models.ExpenseRequest) (*models.Expense, error)
	DeleteExpense(id string) error

	ListNotices(q string) []models.Notice
	CreateNotice(req models.NoticeRequest) (*models.Notice, error)
	UpdateNotice(id string, req models.NoticeRequest) (*models.Notice, error)
	DeleteNotice(id string) error

	// Aggregations
	Dashboard() *models.DashboardResponse
	ContributionSummaries() []models.ContributionSummary
	Snapshot() *models.Database

	// Synchronization
	SyncNow(ctx context.Context) error
	SyncStatus() *models.SyncStatusResponse
	EnableRemote(ctx context.Context, token string) error
	DisableRemote()
}

// DefaultService implements the Service interface
type DefaultService struct {
	store         *store.Store
	remote        RemoteControl
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(st *store.Store, remote RemoteControl, jwtSecret string) Service {
	return &DefaultService{
		store:         st,
		remote:        remote,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour,
	}
}

// Authentication methods

func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user := s.store.FindUserByUsername(req.Username)
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.AuthResponse{
		Status:    "success",
		Username:  user.Username,
		Name:      user.Name,
		Role:      user.Role,
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
	}, nil
}

// ViewerSession issues a read-only session without credentials.
func (s *DefaultService) ViewerSession() (*models.AuthResponse, error) {
	token, err := s.generateJWT("viewer", models.RoleViewer)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.AuthResponse{
		Status:    "success",
		Username:  "viewer",
		Role:      models.RoleViewer,
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
	}, nil
}

func (s *DefaultService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.UserResponse, error) {
	// Username must be unique within the aggregate's user list
	if s.store.FindUserByUsername(req.Username) != nil {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := models.User{
		ID:        uuid.New().String(),
		Username:  req.Username,
		Password:  string(hashedPassword),
		Role:      req.Role,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}
	s.store.AddUser(user)

	return &models.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Name:      user.Name,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}, nil
}

// Aggregations

func (s *DefaultService) Dashboard() *models.DashboardResponse {
	db := s.store.Snapshot()

	stats := models.DashboardStats{
		TotalMembers:               len(db.Members),
		TotalIncome:                decimal.Zero,
		TotalExpenses:              decimal.Zero,
		TotalContributionsExpected: decimal.Zero,
		TotalContributionsReceived: decimal.Zero,
	}
	for _, in := range db.Income {
		stats.TotalIncome = stats.TotalIncome.Add(in.Amount)
	}
	for _, e := range db.Expenses {
		stats.TotalExpenses = stats.TotalExpenses.Add(e.Amount)
	}
	for _, c := range db.Contributions {
		stats.TotalContributionsExpected = stats.TotalContributionsExpected.Add(c.Amount)
		stats.TotalContributionsReceived = stats.TotalContributionsReceived.Add(c.PaidAmount)
	}
	stats.TotalContributionsPending = stats.TotalContributionsExpected.Sub(stats.TotalContributionsReceived)
	stats.Balance = stats.TotalIncome.Add(stats.TotalContributionsReceived).Sub(stats.TotalExpenses)

	today := time.Now().Format("2006-01-02")

	upcoming := make([]models.Puja, 0)
	for _, p := range db.Pujas {
		if p.Date >= today {
			upcoming = append(upcoming, p)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].Date < upcoming[j].Date })
	if len(upcoming) > 5 {
		upcoming = upcoming[:5]
	}

	important := make([]models.Notice, 0)
	for _, n := range db.Notices {
		if n.IsImportant {
			important = append(important, n)
		}
	}
	sort.SliceStable(important, func(i, j int) bool { return important[i].Date > important[j].Date })
	if len(important) > 3 {
		important = important[:3]
	}

	transactions := make([]models.Transaction, 0, len(db.Income)+len(db.Expenses))
	for _, in := range db.Income {
		transactions = append(transactions, models.Transaction{
			Kind:        "income",
			Description: in.Source,
			Amount:      in.Amount,
			Date:        in.Date,
		})
	}
	for _, e := range db.Expenses {
		transactions = append(transactions, models.Transaction{
			Kind:        "expense",
			Description: e.Description,
			Amount:      e.Amount,
			Date:        e.Date,
		})
	}
	sort.SliceStable(transactions, func(i, j int) bool { return transactions[i].Date > transactions[j].Date })
	if len(transactions) > 5 {
		transactions = transactions[:5]
	}

	return &models.DashboardResponse{
		Status:             "success",
		Stats:              stats,
		UpcomingPujas:      upcoming,
		ImportantNotices:   important,
		RecentTransactions: transactions,
	}
}

// ContributionSummaries aggregates expected/paid/pending dues per member, in
// member-list order.
func (s *DefaultService) ContributionSummaries() []models.ContributionSummary {
	db := s.store.Snapshot()

	summaries := make([]models.ContributionSummary, 0, len(db.Members))
	for _, m := range db.Members {
		sum := models.ContributionSummary{
			MemberID:      m.ID,
			MemberName:    m.Name,
			TotalExpected: decimal.Zero,
			TotalPaid:     decimal.Zero,
		}
		for _, c := range db.Contributions {
			if c.MemberID == m.ID {
				sum.TotalExpected = sum.TotalExpected.Add(c.Amount)
				sum.TotalPaid = sum.TotalPaid.Add(c.PaidAmount)
			}
		}
		sum.TotalPending = sum.TotalExpected.Sub(sum.TotalPaid)
		summaries = append(summaries, sum)
	}
	return summaries
}

// Snapshot exposes a copy of the aggregate for report generation.
func (s *DefaultService) Snapshot() *models.Database {
	return s.store.Snapshot()
}

// Synchronization

func (s *DefaultService) SyncNow(ctx context.Context) error {
	return s.store.SyncNow(ctx)
}

func (s *DefaultService) SyncStatus() *models.SyncStatusResponse {
	return &models.SyncStatusResponse{
		Status:     "success",
		SyncStatus: string(s.store.Status()),
		RemoteMode: s.store.RemoteMode(),
	}
}

// EnableRemote stores the token and reloads the aggregate from the
// repository.
func (s *DefaultService) EnableRemote(ctx context.Context, token string) error {
	s.remote.Configure(token)
	s.remote.InvalidateCache()
	s.store.Load(ctx)
	return nil
}

// DisableRemote drops the token; the store keeps serving local data.
func (s *DefaultService) DisableRemote() {
	s.remote.ClearToken()
}

// Helper methods

func (s *DefaultService) generateJWT(username string, role models.Role) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub":  username,
		"role": string(role),
		"exp":  expirationTime.Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func validDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

func validAmount(amounts ...decimal.Decimal) error {
	for _, a := range amounts {
		if a.IsNegative() {
			return ErrNegativeAmount
		}
	}
	return nil
}
