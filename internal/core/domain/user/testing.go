package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "pms/internal/core/domain/common"
	"sort"
	"sync"
	"time"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeSessionTokenGenerator struct {
	Token string
}

func NewFakeSessionTokenGenerator(token string) *FakeSessionTokenGenerator {
	return &FakeSessionTokenGenerator{Token: token}
}

func (g *FakeSessionTokenGenerator) GenerateSessionToken() (SessionToken, error) {
	return SessionToken(g.Token), nil
}

// FakePasswordResetTokenGenerator hands out Tokens in order and then keeps
// returning the last one.
type FakePasswordResetTokenGenerator struct {
	Tokens      []PasswordResetToken
	ReturnError bool
	calls       int
	lock        sync.Mutex
}

func NewFakePasswordResetTokenGenerator(tokens ...string) *FakePasswordResetTokenGenerator {
	g := &FakePasswordResetTokenGenerator{}
	for _, t := range tokens {
		g.Tokens = append(g.Tokens, PasswordResetToken(t))
	}
	return g
}

func (g *FakePasswordResetTokenGenerator) GenerateToken() (PasswordResetToken, error) {
	if g.ReturnError {
		return "", fmt.Errorf("could not generate password reset token")
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	ix := g.calls
	if ix >= len(g.Tokens) {
		ix = len(g.Tokens) - 1
	}
	g.calls++
	return g.Tokens[ix], nil
}

type FakePasswordResetTokenHasher struct{}

func NewFakePasswordResetTokenHasher() *FakePasswordResetTokenHasher {
	return &FakePasswordResetTokenHasher{}
}

func (h *FakePasswordResetTokenHasher) HashToken(token PasswordResetToken) PasswordResetTokenHash {
	hash := md5.New()
	io.WriteString(hash, string(token))
	return PasswordResetTokenHash(fmt.Sprintf("%x", hash.Sum(nil)))
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	u = User{
		ID:           maxID + 1,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
		Department:   input.Department,
		IsActive:     input.IsActive,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by email")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByPasswordResetTokenHash(
	ctx context.Context,
	hash PasswordResetTokenHash,
	now time.Time,
) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	ix, ok := r.findByResetToken(hash, now)
	if !ok {
		return u, ErrInvalidOrExpiredPasswordResetToken
	}
	return r.Users[ix], nil
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPasswordResetToken(
	ctx context.Context,
	id ID,
	hash PasswordResetTokenHash,
	expiresAt time.Time,
) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].ResetTokenHash = c.NewOptional(hash, true)
			r.Users[ix].ResetTokenExpiresAt = c.NewOptional(expiresAt, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) ResetPassword(
	ctx context.Context,
	hash PasswordResetTokenHash,
	password PasswordHash,
	now time.Time,
) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not reset password")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	ix, ok := r.findByResetToken(hash, now)
	if !ok {
		return u, ErrInvalidOrExpiredPasswordResetToken
	}
	r.Users[ix].PasswordHash = password
	r.Users[ix].ResetTokenHash = c.None[PasswordResetTokenHash]()
	r.Users[ix].ResetTokenExpiresAt = c.None[time.Time]()
	return r.Users[ix], nil
}

func (r *FakeUserRepository) List(ctx context.Context) ([]User, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list users")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	users := make([]User, len(r.Users))
	copy(users, r.Users)
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *FakeUserRepository) Update(ctx context.Context, input UpdateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not update user %d", input.ID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if input.DoEmailUpdate {
		for _, other := range r.Users {
			if other.ID != input.ID && other.Email == input.Email {
				return u, ErrEmailAlreadyExists
			}
		}
	}
	for ix, u := range r.Users {
		if u.ID != input.ID {
			continue
		}
		if input.DoNameUpdate {
			r.Users[ix].Name = input.Name
		}
		if input.DoEmailUpdate {
			r.Users[ix].Email = input.Email
		}
		if input.DoRoleUpdate {
			r.Users[ix].Role = input.Role
		}
		if input.DoDepartmentUpdate {
			r.Users[ix].Department = input.Department
		}
		if input.DoIsActiveUpdate {
			r.Users[ix].IsActive = input.IsActive
		}
		return r.Users[ix], nil
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) Delete(ctx context.Context, id ID) error {
	if r.ReturnError {
		return fmt.Errorf("could not delete user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users = append(r.Users[:ix], r.Users[ix+1:]...)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) findByResetToken(hash PasswordResetTokenHash, now time.Time) (int, bool) {
	for ix, u := range r.Users {
		if u.ResetTokenHash.IsPresent && u.ResetTokenHash.Value == hash && u.HasValidResetToken(now) {
			return ix, true
		}
	}
	return 0, false
}

type FakeSessionRepository struct {
	UserIdByToken  map[SessionToken]ID
	UserRepository UserRepository
	ReturnError    bool
	lock           sync.Mutex
}

func NewFakeSessionRepository(userRepository UserRepository) *FakeSessionRepository {
	return &FakeSessionRepository{
		UserIdByToken:  make(map[SessionToken]ID),
		UserRepository: userRepository,
	}
}

func (r *FakeSessionRepository) Create(ctx context.Context, input CreateSessionInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not create session for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.UserIdByToken[input.Token] = input.UserID
	return nil
}

func (r *FakeSessionRepository) GetUserByToken(ctx context.Context, token SessionToken) (u User, err error) {
	r.lock.Lock()
	userId, ok := r.UserIdByToken[token]
	r.lock.Unlock()
	if !ok {
		return u, ErrUserDoesNotExist
	}
	return r.UserRepository.GetByID(ctx, userId)
}

func (r *FakeSessionRepository) Delete(ctx context.Context, token SessionToken) (ID, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	userID, ok := r.UserIdByToken[token]
	if !ok {
		return ID(0), ErrSessionDoesNotExist
	}
	delete(r.UserIdByToken, token)
	return userID, nil
}

func (r *FakeSessionRepository) DeleteAllForUser(ctx context.Context, userID ID) error {
	if r.ReturnError {
		return fmt.Errorf("could not delete sessions of user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for token, id := range r.UserIdByToken {
		if id == userID {
			delete(r.UserIdByToken, token)
		}
	}
	return nil
}

func (r *FakeSessionRepository) DeleteAllForUserExcept(ctx context.Context, userID ID, keep SessionToken) error {
	if r.ReturnError {
		return fmt.Errorf("could not delete sessions of user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for token, id := range r.UserIdByToken {
		if id == userID && token != keep {
			delete(r.UserIdByToken, token)
		}
	}
	return nil
}

func (r *FakeSessionRepository) CountForUser(userID ID) int {
	r.lock.Lock()
	defer r.lock.Unlock()
	count := 0
	for _, id := range r.UserIdByToken {
		if id == userID {
			count++
		}
	}
	return count
}
