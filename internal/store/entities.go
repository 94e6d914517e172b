package store

import (
	"github.com/tkmani91/khs-server/internal/models"
)

// Member operations

func (s *Store) Members() []models.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Member, len(s.db.Members))
	copy(out, s.db.Members)
	return out
}

func (s *Store) AddMember(m models.Member) {
	s.mutate(func(db *models.Database) {
		db.Members = append(db.Members, m)
	})
}

// UpdateMember replaces the record with id, keeping its creation timestamp,
// and returns the stored result.
func (s *Store) UpdateMember(id string, m models.Member) (models.Member, bool) {
	var updated models.Member
	found := false
	s.mutate(func(db *models.Database) {
		for i := range db.Members {
			if db.Members[i].ID == id {
				m.ID = id
				m.CreatedAt = db.Members[i].CreatedAt
				db.Members[i] = m
				updated = db.Members[i]
				found = true
				return
			}
		}
	})
	return updated, found
}

func (s *Store) DeleteMember(id string) bool {
	found := false
	s.mutate(func(db *models.Database) {
		for i := range db.Members {
			if db.Members[i].ID == id {
				db.Members = append(db.Members[:i], db.Members[i+1:]...)
				found = true
				return
			}
		}
	})
	return found
}

// Puja operations

func (s *Store) Pujas() []models.Puja {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Puja, len(s.db.Pujas))
	copy(out, s.db.Pujas)
	return out
}

func (s *Store) AddPuja(p models.Puja) {
	s.mutate(func(db *models.Database) {
		db.Pujas = append(db.Pujas, p)
	})
}

func (s *Store) UpdatePuja(id string, p models.Puja) (models.Puja, bool) {
	var updated models.Puja
	found := false
	s.mutate(func(db *models.Database) {
		for i := range db.Pujas {
			if db.Pujas[i].ID == id {
				p.ID = id
				p.CreatedAt = db.Pujas[i].CreatedAt
				db.Pujas[i] = p
				updated = db.Pujas[i]
				found = true
				return
			}
		}
	})
	return updated, found
}

func (s *Store) DeletePuja(id string) bool {
	found := false
	s.mutate(func(db *models.Database) {
		for i := range db.Pujas {
			if db.Pujas[i].ID == id {
				db.Pujas = append(db.Pujas[:i], db.Pujas[i+1:]...)
				found = true
				return
			}
		}
	})
	return found
}

// Contribution operations

func (s *Store) Contributions() []models.Contribution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Contribution, len(s.db.Contributions))
	copy(out, s.db.Contributions)
	return out
}

func (s *Store) AddContribution(c models.Contribution) {
	s.mutate(func(db *models.Database) {
		db.Contributions = append(db.Contributions, c)
	})
}

func (s *Store) UpdateContribution(id string, c models.Contribution) (models.Contribution, bool) {
	var updated models.Contribution
	found := false
	s.mutate(func(db *models.Database) {
		for i := range db.Contributions {
			if db.Contributions[i].ID == id {
				c.ID = id
				c.CreatedAt = db.Contributions[i].CreatedAt
				db.Contributions[i] = c
				updated = db.Contributions[i]
				found = true
				return
			}
		}
	})
	return updated, found
}

func (s *Store) DeleteContribution(id string) bool {
	found := false
	s.mutate(func(db *models.Database) {
		for i := range db.Contributions {
			if db.Contributions[i].ID == id {
				db.Contributions = append(db.Contributions[:i], db.Contributions[i+1:]...)
				found = true
				return
			}
		}
	})
	return found
}

// Other income operations

func (s *Store) Income() []models.OtherIncome {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.OtherIncome, len(s.db.Income))
	copy(out, s.db.Income)
	return out
}

func (s *Store) AddIncome(in models.OtherIncome) {
	s.mutate(func(db *models.Database) {
		db.Income = append(db.Income, in)
	})
}

func (s *Store) UpdateIncome(id string, in models.OtherIncome) (models.OtherIncome, bool) {
	var updated models.OtherIncome
	found := false
	s.mutate(func(db *models.Database) {
		for i := range db.Income {
			if db.Income[i].ID == id {
				in.ID = id
				in.CreatedAt = db.Income[i].CreatedAt
				db.Income[i] = in
				updated = db.Income[i]
				found = true
				return
			}
		}
	})
	return updated, found
}

func (s *Store) DeleteIncome(id string) bool {
	found := false
	s.mutate(func(db *models.Database) {
		for i := range db.Income {
			if db.Income[i].ID == id {
				db.Income = append(db.Income[:i], db.Income[i+1:]...)
				found = true
				return
			}
		}
	})
	return found
}

// Expense operations

func (s *Store) Expenses() []models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Expense, len(s.db.Expenses))
	copy(out, s.db.Expenses)
	return out
}

func (s *Store) AddExpense(e models.Expense) {
	s.mutate(func(db *models.Database) {
		db.Expenses = append(db.Expenses, e)
	})
}

func (s *Store) UpdateExpense(id string, e models.Expense) (models.Expense, bool) {
	var updated models.Expense
	found := false
	s.mutate(func(db *models.Database) {
		for i := range db.Expenses {
			if db.Expenses[i].ID == id {
				e.ID = id
				e.CreatedAt = db.Expenses[i].CreatedAt
				db.Expenses[i] = e
				updated = db.Expenses[i]
				found = true
				return
			}
		}
	})
	return updated, found
}

func (s *Store) DeleteExpense(id string) bool {
	found := false
	s.mutate(func(db *models.Database) {
		for i := range db.Expenses {
			if db.Expenses[i].ID == id {
				db.Expenses = append(db.Expenses[:i], db.Expenses[i+1:]...)
				found = true
				return
			}
		}
	})
	return found
}

// Notice operations

func (s *Store) Notices() []models.Notice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Notice, len(s.db.Notices))
	copy(out, s.db.Notices)
	return out
}

func (s *Store) AddNotice(n models.Notice) {
	s.mutate(func(db *models.Database) {
		db.Notices = append(db.Notices, n)
	})
}

func (s *Store) UpdateNotice(id string, n models.Notice) (models.Notice, bool) {
	var updated models.Notice
	found := false
	s.mutate(func(db *models.Database) {
		for i := range db.Notices {
			if db.Notices[i].ID == id {
				n.ID = id
				n.CreatedAt = db.Notices[i].CreatedAt
				db.Notices[i] = n
				updated = db.Notices[i]
				found = true
				return
			}
		}
	})
	return updated, found
}

func (s *Store) DeleteNotice(id string) bool {
	found := false
	s.mutate(func(db *models.Database) {
		for i := range db.Notices {
			if db.Notices[i].ID == id {
				db.Notices = append(db.Notices[:i], db.Notices[i+1:]...)
				found = true
				return
			}
		}
	})
	return found
}

// User operations

func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.db.Users))
	copy(out, s.db.Users)
	return out
}

// FindUserByUsername returns nil when no user matches.
func (s *Store) FindUserByUsername(username string) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.db.Users {
		if s.db.Users[i].Username == username {
			u := s.db.Users[i]
			return &u
		}
	}
	return nil
}

func (s *Store) AddUser(u models.User) {
	s.mutate(func(db *models.Database) {
		db.Users = append(db.Users, u)
	})
}
