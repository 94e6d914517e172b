package service

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tkmani91/khs-server/internal/models"
)

// matches reports whether any of the fields contains q, case-insensitively.
func matches(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Member operations

func (s *DefaultService) ListMembers(q string) []models.Member {
	all := s.store.Members()
	if q == "" {
		return all
	}
	out := make([]models.Member, 0, len(all))
	for _, m := range all {
		if matches(q, m.Name, m.Designation, m.Phone) {
			out = append(out, m)
		}
	}
	return out
}

func (s *DefaultService) CreateMember(req models.MemberRequest) (*models.Member, error) {
	m := models.Member{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Designation: req.Designation,
		Phone:       req.Phone,
		Address:     req.Address,
		Photo:       req.Photo,
		CreatedAt:   time.Now().UTC(),
	}
	s.store.AddMember(m)
	return &m, nil
}

func (s *DefaultService) UpdateMember(id string, req models.MemberRequest) (*models.Member, error) {
	m := models.Member{
		Name:        req.Name,
		Designation: req.Designation,
		Phone:       req.Phone,
		Address:     req.Address,
		Photo:       req.Photo,
	}
	updated, ok := s.store.UpdateMember(id, m)
	if !ok {
		return nil, ErrNotFound
	}
	return &updated, nil
}

func (s *DefaultService) DeleteMember(id string) error {
	if !s.store.DeleteMember(id) {
		return ErrNotFound
	}
	return nil
}

// Puja operations

func (s *DefaultService) ListPujas(q string) []models.Puja {
	all := s.store.Pujas()
	if q == "" {
		return all
	}
	out := make([]models.Puja, 0, len(all))
	for _, p := range all {
		if matches(q, p.Name, string(p.Type), p.Description) {
			out = append(out, p)
		}
	}
	return out
}

func (s *DefaultService) CreatePuja(req models.PujaRequest) (*models.Puja, error) {
	if err := validAmount(req.Budget); err != nil {
		return nil, err
	}
	if err := validDate(req.Date); err != nil {
		return nil, err
	}
	p := models.Puja{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Type:        req.Type,
		Budget:      req.Budget,
		Date:        req.Date,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	s.store.AddPuja(p)
	return &p, nil
}

func (s *DefaultService) UpdatePuja(id string, req models.PujaRequest) (*models.Puja, error) {
	if err := validAmount(req.Budget); err != nil {
		return nil, err
	}
	if err := validDate(req.Date); err != nil {
		return nil, err
	}
	p := models.Puja{
		Name:        req.Name,
		Type:        req.Type,
		Budget:      req.Budget,
		Date:        req.Date,
		Description: req.Description,
	}
	updated, ok := s.store.UpdatePuja(id, p)
	if !ok {
		return nil, ErrNotFound
	}
	return &updated, nil
}

func (s *DefaultService) DeletePuja(id string) error {
	if !s.store.DeletePuja(id) {
		return ErrNotFound
	}
	return nil
}

// Contribution operations

// ListContributions filters by puja and/or member, preserving the original
// relative order of the list.
func (s *DefaultService) ListContributions(pujaID, memberID string) []models.Contribution {
	all := s.store.Contributions()
	if pujaID == "" && memberID == "" {
		return all
	}
	out := make([]models.Contribution, 0, len(all))
	for _, c := range all {
		if pujaID != "" && c.PujaID != pujaID {
			continue
		}
		if memberID != "" && c.MemberID != memberID {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *DefaultService) CreateContribution(req models.ContributionRequest) (*models.Contribution, error) {
	if err := validAmount(req.Amount, req.PaidAmount); err != nil {
		return nil, err
	}
	c := models.Contribution{
		ID:            uuid.New().String(),
		MemberID:      req.MemberID,
		PujaID:        req.PujaID,
		Amount:        req.Amount,
		PaidAmount:    req.PaidAmount,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		PaymentDate:   req.PaymentDate,
		Notes:         req.Notes,
		CreatedAt:     time.Now().UTC(),
	}
	s.store.AddContribution(c)
	return &c, nil
}

func (s *DefaultService) UpdateContribution(id string, req models.ContributionRequest) (*models.Contribution, error) {
	if err := validAmount(req.Amount, req.PaidAmount); err != nil {
		return nil, err
	}
	c := models.Contribution{
		MemberID:      req.MemberID,
		PujaID:        req.PujaID,
		Amount:        req.Amount,
		PaidAmount:    req.PaidAmount,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		PaymentDate:   req.PaymentDate,
		Notes:         req.Notes,
	}
	updated, ok := s.store.UpdateContribution(id, c)
	if !ok {
		return nil, ErrNotFound
	}
	return &updated, nil
}

func (s *DefaultService) DeleteContribution(id string) error {
	if !s.store.DeleteContribution(id) {
		return ErrNotFound
	}
	return nil
}

// Other income operations

func (s *DefaultService) ListIncome(q string) []models.OtherIncome {
	all := s.store.Income()
	if q == "" {
		return all
	}
	out := make([]models.OtherIncome, 0, len(all))
	for _, in := range all {
		if matches(q, in.Source, in.Description, string(in.Type)) {
			out = append(out, in)
		}
	}
	return out
}

func (s *DefaultService) CreateIncome(req models.IncomeRequest) (*models.OtherIncome, error) {
	if err := validAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := validDate(req.Date); err != nil {
		return nil, err
	}
	in := models.OtherIncome{
		ID:          uuid.New().String(),
		Type:        req.Type,
		Source:      req.Source,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		CreatedAt:   time.Now().UTC(),
	}
	s.store.AddIncome(in)
	return &in, nil
}

func (s *DefaultService) UpdateIncome(id string, req models.IncomeRequest) (*models.OtherIncome, error) {
	if err := validAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := validDate(req.Date); err != nil {
		return nil, err
	}
	in := models.OtherIncome{
		Type:        req.Type,
		Source:      req.Source,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
	}
	updated, ok := s.store.UpdateIncome(id, in)
	if !ok {
		return nil, ErrNotFound
	}
	return &updated, nil
}

func (s *DefaultService) DeleteIncome(id string) error {
	if !s.store.DeleteIncome(id) {
		return ErrNotFound
	}
	return nil
}

// Expense operations

// ListExpenses filters by free text and/or puja, preserving the original
// relative order of the list.
func (s *DefaultService) ListExpenses(q, pujaID string) []models.Expense {
	all := s.store.Expenses()
	if q == "" && pujaID == "" {
		return all
	}
	out := make([]models.Expense, 0, len(all))
	for _, e := range all {
		if pujaID != "" && e.PujaID != pujaID {
			continue
		}
		if !matches(q, e.Description, string(e.Category), e.ReceiptNo) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *DefaultService) CreateExpense(req models.ExpenseRequest) (*models.Expense, error) {
	if err := validAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := validDate(req.Date); err != nil {
		return nil, err
	}
	e := models.Expense{
		ID:          uuid.New().String(),
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		ReceiptNo:   req.ReceiptNo,
		PujaID:      req.PujaID,
		CreatedAt:   time.Now().UTC(),
	}
	s.store.AddExpense(e)
	return &e, nil
}

func (s *DefaultService) UpdateExpense(id string, req models.ExpenseRequest) (*models.Expense, error) {
	if err := validAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := validDate(req.Date); err != nil {
		return nil, err
	}
	e := models.Expense{
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		ReceiptNo:   req.ReceiptNo,
		PujaID:      req.PujaID,
	}
	updated, ok := s.store.UpdateExpense(id, e)
	if !ok {
		return nil, ErrNotFound
	}
	return &updated, nil
}

func (s *DefaultService) DeleteExpense(id string) error {
	if !s.store.DeleteExpense(id) {
		return ErrNotFound
	}
	return nil
}

// Notice operations

// ListNotices returns notices newest first.
func (s *DefaultService) ListNotices(q string) []models.Notice {
	all := s.store.Notices()
	out := make([]models.Notice, 0, len(all))
	for _, n := range all {
		if matches(q, n.Title, n.Description) {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func (s *DefaultService) CreateNotice(req models.NoticeRequest) (*models.Notice, error) {
	if err := validDate(req.Date); err != nil {
		return nil, err
	}
	n := models.Notice{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		IsImportant: req.IsImportant,
		CreatedAt:   time.Now().UTC(),
	}
	s.store.AddNotice(n)
	return &n, nil
}

func (s *DefaultService) UpdateNotice(id string, req models.NoticeRequest) (*models.Notice, error) {
	if err := validDate(req.Date); err != nil {
		return nil, err
	}
	n := models.Notice{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		IsImportant: req.IsImportant,
	}
	updated, ok := s.store.UpdateNotice(id, n)
	if !ok {
		return nil, ErrNotFound
	}
	return &updated, nil
}

func (s *DefaultService) DeleteNotice(id string) error {
	if !s.store.DeleteNotice(id) {
		return ErrNotFound
	}
	return nil
}
