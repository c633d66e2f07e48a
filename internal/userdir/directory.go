// Package userdir implements the user directory: registration,
// authentication, the single current-session record, saved recipes,
// and per-pair conversation threads. All state lives in an injected
// key-value store as two JSON documents (registeredUsers, currentUser);
// every mutation is a whole-collection read-modify-write.
//
// The directory assumes a single logical writer. The internal mutex
// serializes calls within one process; there is no cross-process
// coordination, so the last writer wins.
package userdir

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"homechefs/backend/internal/config"
	"homechefs/backend/internal/models"
	"homechefs/backend/internal/store"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrChefNotRegistered is returned when a chef account authenticates
	// before completing the Become a Home Chef form. Callers redirect to
	// chef registration.
	ErrChefNotRegistered = errors.New("chef must register first via Become a Home Chef form")
	ErrUserNotFound      = errors.New("user not found")
)

// Directory is the core user/session/conversation service.
type Directory struct {
	kv store.KV

	mu     sync.Mutex
	lastID int64

	bcryptCost int
}

func New(kv store.KV) *Directory {
	return &Directory{kv: kv, bcryptCost: config.BcryptCost}
}

// RegisterInput carries the registration form fields. Nationality, Bio
// and ProfilePhoto are optional role-specific extras.
type RegisterInput struct {
	Email        string
	Password     string
	FullName     string
	Role         models.Role
	Nationality  string
	Bio          string
	ProfilePhoto string
}

// Register creates a new user record. It fails with ErrDuplicateEmail if
// the email is already present. Chefs get IsChefRegistered set
// automatically and start in the pending moderation state.
//
// The duplicate check compares emails case-sensitively, as the system
// always has. Normalizing case here would orphan existing records.
func (d *Directory) Register(in RegisterInput) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email == in.Email {
			return nil, ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), d.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	status := models.StatusApproved
	if in.Role == models.RoleChef {
		status = models.StatusPending
	}

	user := models.User{
		ID:               d.nextID(),
		Email:            in.Email,
		PasswordHash:     string(hash),
		FullName:         in.FullName,
		Role:             in.Role,
		Nationality:      in.Nationality,
		Bio:              in.Bio,
		ProfilePhoto:     in.ProfilePhoto,
		Recipes:          []models.Recipe{},
		SavedRecipes:     []models.SavedRecipe{},
		Conversations:    []models.Conversation{},
		Status:           status,
		IsChefRegistered: in.Role == models.RoleChef,
		CreatedAt:        time.Now(),
	}

	users = append(users, user)
	if err := d.saveUsers(users); err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks the email/password/role triple against the stored
// collection and, on success, installs the session projection as the
// single current-session record, replacing any prior session.
func (d *Directory) Authenticate(email, password string, role models.Role) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return nil, err
	}

	var user *models.User
	for i := range users {
		if users[i].Email == email && users[i].Role == role {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if role == models.RoleChef && !user.IsChefRegistered {
		return nil, ErrChefNotRegistered
	}

	if err := d.putSession(models.NewSession(user)); err != nil {
		return nil, err
	}

	out := *user
	return &out, nil
}

// CurrentSession returns the session record, or nil when nobody is
// logged in.
func (d *Directory) CurrentSession() (*models.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loadSession()
}

// Logout removes the session record. Logging out twice is fine.
func (d *Directory) Logout() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.kv.Delete(store.SessionKey)
}

// UserByID returns the user with the given id, or nil when absent.
func (d *Directory) UserByID(id int64) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			out := users[i]
			return &out, nil
		}
	}
	return nil, nil
}

// UserPatch is a shallow partial update; nil fields are left untouched.
type UserPatch struct {
	FullName         *string
	Name             *string
	Nationality      *string
	Bio              *string
	ProfilePhoto     *string
	IsChefRegistered *bool
	Status           *models.ChefStatus
}

// UpdateUser merges the patch into the matching record. It returns nil
// (and no error) when the id is unknown. If the updated user holds the
// current session, the projection is refreshed so the two stay in sync.
func (d *Directory) UpdateUser(id int64, patch UserPatch) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return nil, err
	}

	idx := indexByID(users, id)
	if idx < 0 {
		return nil, nil
	}

	u := &users[idx]
	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Nationality != nil {
		u.Nationality = *patch.Nationality
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.ProfilePhoto != nil {
		u.ProfilePhoto = *patch.ProfilePhoto
	}
	if patch.IsChefRegistered != nil {
		u.IsChefRegistered = *patch.IsChefRegistered
	}
	if patch.Status != nil {
		u.Status = *patch.Status
	}

	if err := d.saveUsers(users); err != nil {
		return nil, err
	}
	if err := d.syncSession(users); err != nil {
		return nil, err
	}

	out := users[idx]
	return &out, nil
}

// SearchUsers returns users whose name, full name, email, or role
// contains the term (case-insensitive), excluding one id. An empty term
// matches nothing, not everything.
func (d *Directory) SearchUsers(term string, excludeID int64) ([]models.User, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []models.User{}, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return nil, err
	}

	matches := []models.User{}
	for i := range users {
		u := &users[i]
		if u.ID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(u.Name), term) ||
			strings.Contains(strings.ToLower(u.FullName), term) ||
			strings.Contains(strings.ToLower(u.Email), term) ||
			strings.Contains(strings.ToLower(string(u.Role)), term) {
			matches = append(matches, *u)
		}
	}
	return matches, nil
}

// IsChefRegistered reports whether a chef account with this email has
// completed chef registration.
func (d *Directory) IsChefRegistered(email string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return false, err
	}
	for i := range users {
		if users[i].Email == email && users[i].Role == models.RoleChef {
			return users[i].IsChefRegistered, nil
		}
	}
	return false, nil
}

// MarkChefAsRegistered flips the chef-registration flag for the chef
// account with this email. Unknown emails are a no-op.
func (d *Directory) MarkChefAsRegistered(email string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Email == email && users[i].Role == models.RoleChef {
			users[i].IsChefRegistered = true
			return d.saveUsers(users)
		}
	}
	return nil
}

// --- persistence helpers ---

func (d *Directory) loadUsers() ([]models.User, error) {
	raw, ok, err := d.kv.Get(store.UsersKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read user collection: %w", err)
	}
	if !ok {
		return []models.User{}, nil
	}

	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to decode user collection: %w", err)
	}

	for i := range users {
		if users[i].ID > d.lastID {
			d.lastID = users[i].ID
		}
	}
	return users, nil
}

func (d *Directory) saveUsers(users []models.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return d.kv.Put(store.UsersKey, raw)
}

func (d *Directory) loadSession() (*models.Session, error) {
	raw, ok, err := d.kv.Get(store.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var s models.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

func (d *Directory) putSession(s *models.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return d.kv.Put(store.SessionKey, raw)
}

// syncSession refreshes the session projection after a mutation so the
// session holder sees their own writes.
func (d *Directory) syncSession(users []models.User) error {
	s, err := d.loadSession()
	if err != nil || s == nil {
		return err
	}
	idx := indexByID(users, s.ID)
	if idx < 0 {
		return nil
	}
	return d.putSession(models.NewSession(&users[idx]))
}

// nextID generates monotonic millisecond-derived ids. Two calls within
// the same millisecond still get distinct ids.
func (d *Directory) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= d.lastID {
		id = d.lastID + 1
	}
	d.lastID = id
	return id
}

func indexByID(users []models.User, id int64) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
