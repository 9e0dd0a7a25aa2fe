// Package memory is an in-process store with the same unique constraints as the Mongo indexes.
// It backs the "memory" storage driver for local runs and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/ArowuTest/lottery-ticket-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds every collection behind one lock so unique checks and inserts are atomic.
type Store struct {
	mu      sync.RWMutex
	users   map[primitive.ObjectID]*models.User
	tickets map[primitive.ObjectID]*models.Ticket
	winners map[primitive.ObjectID]*models.Winner
	admins  map[primitive.ObjectID]*models.AdminUser
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:   make(map[primitive.ObjectID]*models.User),
		tickets: make(map[primitive.ObjectID]*models.Ticket),
		winners: make(map[primitive.ObjectID]*models.Winner),
		admins:  make(map[primitive.ObjectID]*models.AdminUser),
	}
}

// Users returns the user repository view of the store
func (s *Store) Users() repositories.UserRepository { return &userRepo{s} }

// Tickets returns the ticket repository view of the store
func (s *Store) Tickets() repositories.TicketRepository { return &ticketRepo{s} }

// Winners returns the winner repository view of the store
func (s *Store) Winners() repositories.WinnerRepository { return &winnerRepo{s} }

// Admins returns the admin repository view of the store
func (s *Store) Admins() repositories.AdminUserRepository { return &adminRepo{s} }

// Counts reports the number of stored users and tickets.
func (s *Store) Counts() (users, tickets int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), len(s.tickets)
}

func duplicate(collection, field string) error {
	return &repositories.DuplicateKeyError{Collection: collection, Field: field}
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		switch {
		case u.Mobile == user.Mobile:
			return duplicate("users", "mobile")
		case user.Email != "" && u.Email == user.Email:
			return duplicate("users", "email")
		case user.Aadhaar != "" && u.Aadhaar == user.Aadhaar:
			return duplicate("users", "aadhaar")
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	cp.Tickets = nil
	r.s.users[user.ID] = &cp
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepo) FindByMobile(ctx context.Context, mobile string) (*models.User, error) {
	return r.FindByMobileOrEmail(ctx, mobile, "")
}

func (r *userRepo) FindByMobileOrEmail(_ context.Context, mobile, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Mobile == mobile || (email != "" && u.Email == email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*models.User{}
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

type ticketRepo struct{ s *Store }

func (r *ticketRepo) Create(_ context.Context, ticket *models.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tickets {
		if t.SchemeID == ticket.SchemeID && t.TicketNumber == ticket.TicketNumber {
			return duplicate("tickets", "ticketNumber")
		}
	}
	ticket.ID = primitive.NewObjectID()
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	if ticket.PurchaseDate.IsZero() {
		ticket.PurchaseDate = ticket.CreatedAt
	}
	cp := *ticket
	r.s.tickets[ticket.ID] = &cp
	return nil
}

func (r *ticketRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if t, ok := r.s.tickets[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *ticketRepo) FindBySchemeAndNumber(_ context.Context, schemeID, ticketNumber string) (*models.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.tickets {
		if t.SchemeID == schemeID && t.TicketNumber == ticketNumber {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *ticketRepo) FindByUserID(_ context.Context, userID primitive.ObjectID) ([]*models.Ticket, error) {
	return r.filter(func(t *models.Ticket) bool { return t.UserID == userID }), nil
}

func (r *ticketRepo) FindByScheme(_ context.Context, schemeID string) ([]*models.Ticket, error) {
	return r.filter(func(t *models.Ticket) bool { return schemeID == "" || t.SchemeID == schemeID }), nil
}

func (r *ticketRepo) FindPage(_ context.Context, page, limit int) ([]*models.Ticket, error) {
	all := r.filter(func(*models.Ticket) bool { return true })
	if page < 1 || limit < 1 {
		return []*models.Ticket{}, nil
	}
	start := (page - 1) * limit
	if start < 0 || start >= len(all) {
		return []*models.Ticket{}, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *ticketRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.tickets)), nil
}

func (r *ticketRepo) SetDownloadLink(_ context.Context, id primitive.ObjectID, link string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return repositories.ErrNotFound
	}
	t.DownloadLink = link
	t.UpdatedAt = time.Now()
	return nil
}

func (r *ticketRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tickets[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.tickets, id)
	return nil
}

// filter returns matching copies, newest purchase first.
func (r *ticketRepo) filter(keep func(*models.Ticket) bool) []*models.Ticket {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*models.Ticket{}
	for _, t := range r.s.tickets {
		if keep(t) {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].ID.Hex() > out[j].ID.Hex()
		}
		return out[i].PurchaseDate.After(out[j].PurchaseDate)
	})
	return out
}

type winnerRepo struct{ s *Store }

func (r *winnerRepo) Create(_ context.Context, winner *models.Winner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.winners {
		if w.SchemeID == winner.SchemeID && w.TicketNumber == winner.TicketNumber {
			return duplicate("winners", "ticketNumber")
		}
	}
	winner.ID = primitive.NewObjectID()
	winner.CreatedAt = time.Now()
	winner.UpdatedAt = winner.CreatedAt
	cp := *winner
	cp.User = nil
	r.s.winners[winner.ID] = &cp
	return nil
}

func (r *winnerRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Winner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if w, ok := r.s.winners[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *winnerRepo) FindBySchemeAndNumber(_ context.Context, schemeID, ticketNumber string) (*models.Winner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, w := range r.s.winners {
		if w.SchemeID == schemeID && w.TicketNumber == ticketNumber {
			cp := *w
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *winnerRepo) FindAll(_ context.Context) ([]*models.Winner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*models.Winner{}
	for _, w := range r.s.winners {
		cp := *w
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SchemeID != out[j].SchemeID {
			return out[i].SchemeID < out[j].SchemeID
		}
		return out[i].Prize < out[j].Prize
	})
	return out, nil
}

func (r *winnerRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.winners[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.winners, id)
	return nil
}

type adminRepo struct{ s *Store }

func (r *adminRepo) Create(_ context.Context, admin *models.AdminUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.admins {
		if a.Username == admin.Username {
			return duplicate("admin_users", "username")
		}
	}
	admin.ID = primitive.NewObjectID()
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt
	cp := *admin
	r.s.admins[admin.ID] = &cp
	return nil
}

func (r *adminRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if a, ok := r.s.admins[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *adminRepo) FindByUsername(_ context.Context, username string) (*models.AdminUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.admins {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *adminRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Password = passwordHash
	a.UpdatedAt = time.Now()
	return nil
}

func (r *adminRepo) FindAll(_ context.Context) ([]*models.AdminUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*models.AdminUser{}
	for _, a := range r.s.admins {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
