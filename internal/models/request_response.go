package models

import "github.com/shopspring/decimal"

// Request models
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     Role   `json:"role" binding:"required,oneof=admin viewer"`
	Name     string `json:"name" binding:"required"`
}

type MemberRequest struct {
	Name        string `json:"name" binding:"required"`
	Designation string `json:"designation" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Address     string `json:"address"`
	Photo       string `json:"photo"`
}

type PujaRequest struct {
	Name        string          `json:"name" binding:"required"`
	Type        PujaType        `json:"type" binding:"required"`
	Budget      decimal.Decimal `json:"budget"`
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description"`
}

type ContributionRequest struct {
	MemberID      string          `json:"memberId" binding:"required"`
	PujaID        string          `json:"pujaId" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	Status        PaymentStatus   `json:"status" binding:"required"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	PaymentDate   string          `json:"paymentDate"`
	Notes         string          `json:"notes"`
}

type IncomeRequest struct {
	Type        IncomeType      `json:"type" binding:"required"`
	Source      string          `json:"source" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" binding:"required"`
}

type ExpenseRequest struct {
	Category    ExpenseCategory `json:"category" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" binding:"required"`
	ReceiptNo   string          `json:"receiptNo"`
	PujaID      string          `json:"pujaId"`
}

type NoticeRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	IsImportant bool   `json:"isImportant"`
}

type GitHubSetupRequest struct {
	Token string `json:"token" binding:"required"`
}

// Response models
type AuthResponse struct {
	Status    string `json:"status"`
	Username  string `json:"username,omitempty"`
	Name      string `json:"name,omitempty"`
	Role      Role   `json:"role,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

// UserResponse is a user with the password hash stripped
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// DashboardStats holds the aggregate figures shown on the dashboard
type DashboardStats struct {
	TotalMembers               int             `json:"totalMembers"`
	TotalIncome                decimal.Decimal `json:"totalIncome"`
	TotalExpenses              decimal.Decimal `json:"totalExpenses"`
	Balance                    decimal.Decimal `json:"balance"`
	TotalContributionsExpected decimal.Decimal `json:"totalContributionsExpected"`
	TotalContributionsReceived decimal.Decimal `json:"totalContributionsReceived"`
	TotalContributionsPending  decimal.Decimal `json:"totalContributionsPending"`
}

// Transaction is a dashboard line item merging income and expense entries
type Transaction struct {
	Kind        string          `json:"kind"` // "income" or "expense"
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
}

type DashboardResponse struct {
	Status             string         `json:"status"`
	Stats              DashboardStats `json:"stats"`
	UpcomingPujas      []Puja         `json:"upcomingPujas"`
	ImportantNotices   []Notice       `json:"importantNotices"`
	RecentTransactions []Transaction  `json:"recentTransactions"`
}

// ContributionSummary aggregates one member's dues across all pujas
type ContributionSummary struct {
	MemberID      string          `json:"memberId"`
	MemberName    string          `json:"memberName"`
	TotalExpected decimal.Decimal `json:"totalExpected"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	TotalPending  decimal.Decimal `json:"totalPending"`
}

type SyncStatusResponse struct {
	Status     string `json:"status"`
	SyncStatus string `json:"syncStatus"` // idle, syncing, success, error
	RemoteMode bool   `json:"remoteMode"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
