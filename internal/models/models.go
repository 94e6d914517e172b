package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The durable file format stores amounts as bare JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Role determines what a logged-in user may do
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// User represents an account stored inside the database file
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"` // bcrypt hash, persisted as part of the aggregate
	Role      Role      `json:"role"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Member designations used by the committee
const (
	DesignationPresident = "সভাপতি"
	DesignationSecretary = "সম্পাদক"
	DesignationTreasurer = "কোষাধ্যক্ষ"
	DesignationMember    = "সদস্য"
)

// Member represents a committee member
type Member struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	Photo       string    `json:"photo,omitempty"` // data URI
	CreatedAt   time.Time `json:"createdAt"`
}

// PujaType classifies an event
type PujaType string

const (
	PujaTypeShyama    PujaType = "শ্যামা পূজা"
	PujaTypeSaraswati PujaType = "স্বরসতী পূজা"
	PujaTypeDurga     PujaType = "দূর্গা পূজা"
	PujaTypeOther     PujaType = "অন্যান্য"
)

// Puja represents an organized event with a budget
type Puja struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        PujaType        `json:"type"`
	Budget      decimal.Decimal `json:"budget"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// PaymentStatus of a contribution. User-set, never derived from amounts.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "পরিশোধিত"
	PaymentStatusDue     PaymentStatus = "বকেয়া"
	PaymentStatusOverdue PaymentStatus = "অতিরিক্ত বকেয়া"
)

// PaymentMethod of a contribution payment
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "নগদ"
	PaymentMethodOnline PaymentMethod = "অনলাইন"
	PaymentMethodCheque PaymentMethod = "চেক"
)

// Contribution links a member to a puja with dues
type Contribution struct {
	ID            string          `json:"id"`
	MemberID      string          `json:"memberId"`
	PujaID        string          `json:"pujaId"`
	Amount        decimal.Decimal `json:"amount"`     // amount due
	PaidAmount    decimal.Decimal `json:"paidAmount"` // may exceed or fall short of Amount
	Status        PaymentStatus   `json:"status"`
	PaymentMethod PaymentMethod   `json:"paymentMethod,omitempty"`
	PaymentDate   string          `json:"paymentDate,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// IncomeType classifies other income
type IncomeType string

const (
	IncomeTypeDonation    IncomeType = "দান"
	IncomeTypeSponsorship IncomeType = "স্পনসরশিপ"
	IncomeTypeGovtGrant   IncomeType = "সরকারি অনুদান"
	IncomeTypeOther       IncomeType = "অন্যান্য"
)

// OtherIncome represents income outside member contributions
type OtherIncome struct {
	ID          string          `json:"id"`
	Type        IncomeType      `json:"type"`
	Source      string          `json:"source"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ExpenseCategory classifies an expense
type ExpenseCategory string

const (
	ExpenseCategoryIdol     ExpenseCategory = "প্রতিমা"
	ExpenseCategoryPandal   ExpenseCategory = "মণ্ডপ"
	ExpenseCategorySupplies ExpenseCategory = "পুজো সামগ্রী"
	ExpenseCategoryFood     ExpenseCategory = "খাবার"
	ExpenseCategoryLighting ExpenseCategory = "আলোকসজ্জা"
	ExpenseCategoryMusic    ExpenseCategory = "বাজনা"
	ExpenseCategoryOther    ExpenseCategory = "অন্যান্য"
)

// Expense represents money spent, optionally against a puja
type Expense struct {
	ID          string          `json:"id"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	ReceiptNo   string          `json:"receiptNo,omitempty"`
	PujaID      string          `json:"pujaId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Notice represents an announcement
type Notice struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	IsImportant bool      `json:"isImportant"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Database is the aggregate holding every entity list. It is the unit of
// persistence: each save replaces the entire remote file.
type Database struct {
	Members       []Member       `json:"members"`
	Pujas         []Puja         `json:"pujas"`
	Contributions []Contribution `json:"contributions"`
	Income        []OtherIncome  `json:"income"`
	Expenses      []Expense      `json:"expenses"`
	Notices       []Notice       `json:"notices"`
	Users         []User         `json:"users"`
	LastUpdated   time.Time      `json:"lastUpdated"`
}

// DefaultDatabase builds a fresh aggregate with empty lists and the given
// seeded admin user.
func DefaultDatabase(admin User) *Database {
	return &Database{
		Members:       []Member{},
		Pujas:         []Puja{},
		Contributions: []Contribution{},
		Income:        []OtherIncome{},
		Expenses:      []Expense{},
		Notices:       []Notice{},
		Users:         []User{admin},
		LastUpdated:   time.Now().UTC(),
	}
}

// EnsureDefaults repairs an aggregate decoded from a partially-written or
// legacy file: absent lists become empty, an absent user list becomes the
// seeded default.
func (d *Database) EnsureDefaults(admin User) {
	if d.Members == nil {
		d.Members = []Member{}
	}
	if d.Pujas == nil {
		d.Pujas = []Puja{}
	}
	if d.Contributions == nil {
		d.Contributions = []Contribution{}
	}
	if d.Income == nil {
		d.Income = []OtherIncome{}
	}
	if d.Expenses == nil {
		d.Expenses = []Expense{}
	}
	if d.Notices == nil {
		d.Notices = []Notice{}
	}
	if len(d.Users) == 0 {
		d.Users = []User{admin}
	}
}

// Clone returns a deep copy of the aggregate. Record fields carry no shared
// references, so copying the slices is enough.
func (d *Database) Clone() *Database {
	c := &Database{
		Members:       make([]Member, len(d.Members)),
		Pujas:         make([]Puja, len(d.Pujas)),
		Contributions: make([]Contribution, len(d.Contributions)),
		Income:        make([]OtherIncome, len(d.Income)),
		Expenses:      make([]Expense, len(d.Expenses)),
		Notices:       make([]Notice, len(d.Notices)),
		Users:         make([]User, len(d.Users)),
		LastUpdated:   d.LastUpdated,
	}
	copy(c.Members, d.Members)
	copy(c.Pujas, d.Pujas)
	copy(c.Contributions, d.Contributions)
	copy(c.Income, d.Income)
	copy(c.Expenses, d.Expenses)
	copy(c.Notices, d.Notices)
	copy(c.Users, d.Users)
	return c
}
