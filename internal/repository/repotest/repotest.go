// Package repotest provides in-memory stand-ins for the Postgres repositories.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"schoolhub/api/internal/models"
	"schoolhub/api/internal/repository"
)

// Accounts mimics AccountRepository, including the unique constraints on
// username and email. Err, when set, is returned by every call.
type Accounts struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Account
	Err    error
}

func NewAccounts() *Accounts {
	return &Accounts{nextID: 1000, rows: make(map[int64]models.Account)}
}

// Put stores account as-is, assigning an ID when it has none.
func (a *Accounts) Put(account models.Account) models.Account {
	a.mu.Lock()
	defer a.mu.Unlock()
	if account.ID == 0 {
		a.nextID++
		account.ID = a.nextID
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	a.rows[account.ID] = account
	return account
}

func (a *Accounts) Create(_ context.Context, account models.Account) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return 0, a.Err
	}
	for _, row := range a.rows {
		if row.Username == account.Username {
			return 0, repository.ErrUsernameTaken
		}
		if row.Email == account.Email {
			return 0, repository.ErrEmailTaken
		}
	}
	a.nextID++
	account.ID = a.nextID
	account.IsActive = true
	account.CreatedAt = time.Now()
	a.rows[account.ID] = account
	return account.ID, nil
}

func (a *Accounts) FindByUsername(_ context.Context, username string) (models.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return models.Account{}, a.Err
	}
	for _, row := range a.rows {
		if row.Username == username {
			return row, nil
		}
	}
	return models.Account{}, repository.ErrAccountNotFound
}

func (a *Accounts) GetByID(_ context.Context, id int64) (models.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return models.Account{}, a.Err
	}
	row, ok := a.rows[id]
	if !ok {
		return models.Account{}, repository.ErrAccountNotFound
	}
	return row, nil
}

func (a *Accounts) UsernameExists(_ context.Context, username string) (bool, error) {
	return a.any(func(row models.Account) bool { return row.Username == username })
}

func (a *Accounts) EmailExists(_ context.Context, email string) (bool, error) {
	return a.any(func(row models.Account) bool { return row.Email == email })
}

func (a *Accounts) List(context.Context) ([]models.Account, error) {
	return a.filter(func(models.Account) bool { return true })
}

func (a *Accounts) Search(_ context.Context, term string) ([]models.Account, error) {
	term = strings.ToLower(term)
	return a.filter(func(row models.Account) bool {
		return strings.Contains(strings.ToLower(row.Username), term)
	})
}

func (a *Accounts) UpdatePassword(_ context.Context, id int64, hash []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	row, ok := a.rows[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	row.PasswordHash = hash
	a.rows[id] = row
	return nil
}

func (a *Accounts) Delete(_ context.Context, id int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	if _, ok := a.rows[id]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(a.rows, id)
	return nil
}

func (a *Accounts) any(match func(models.Account) bool) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return false, a.Err
	}
	for _, row := range a.rows {
		if match(row) {
			return true, nil
		}
	}
	return false, nil
}

func (a *Accounts) filter(match func(models.Account) bool) ([]models.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return nil, a.Err
	}
	var out []models.Account
	for _, row := range a.rows {
		if match(row) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Classrooms mimics ClassroomRepository.
type Classrooms struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Classroom
	Err    error
}

func NewClassrooms() *Classrooms {
	return &Classrooms{rows: make(map[int64]models.Classroom)}
}

func (c *Classrooms) Put(classroom models.Classroom) models.Classroom {
	c.mu.Lock()
	defer c.mu.Unlock()
	if classroom.ID == 0 {
		c.nextID++
		classroom.ID = c.nextID
	}
	c.rows[classroom.ID] = classroom
	return classroom
}

func (c *Classrooms) List(context.Context) ([]models.Classroom, error) {
	return c.filter(func(models.Classroom) bool { return true })
}

func (c *Classrooms) GetByID(_ context.Context, id int64) (models.Classroom, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return models.Classroom{}, c.Err
	}
	row, ok := c.rows[id]
	if !ok {
		return models.Classroom{}, repository.ErrClassroomNotFound
	}
	return row, nil
}

func (c *Classrooms) Search(_ context.Context, term string) ([]models.Classroom, error) {
	term = strings.ToLower(term)
	return c.filter(func(row models.Classroom) bool {
		return strings.Contains(strings.ToLower(row.Name), term)
	})
}

func (c *Classrooms) Delete(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	if _, ok := c.rows[id]; !ok {
		return repository.ErrClassroomNotFound
	}
	delete(c.rows, id)
	return nil
}

func (c *Classrooms) filter(match func(models.Classroom) bool) ([]models.Classroom, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	var out []models.Classroom
	for _, row := range c.rows {
		if match(row) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
