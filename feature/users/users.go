package users

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fleetwash/core/middleware/auth"
	"fleetwash/core/utils"
	"fleetwash/feature/directory"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 4

var (
	// ErrInvalidUser is returned when a new user fails validation.
	ErrInvalidUser = errors.New("invalid user")
	// ErrUserExists is returned when the username is taken.
	ErrUserExists = errors.New("user already exists")
)

// User is one account of the users file.
// Passwords are verified against Bcrypt, then SHA256, then the legacy plain Password.
type User struct {
	Username     string    `json:"username"`
	Name         string    `json:"name,omitempty"`
	Nombre       string    `json:"nombre,omitempty"`
	Role         auth.Role `json:"role"`
	SupervisorID string    `json:"supervisor_id,omitempty"`
	Bcrypt       string    `json:"bcrypt,omitempty"`
	SHA256       string    `json:"sha256,omitempty"`
	Password     string    `json:"password,omitempty"`
}

// DisplayName returns the name shown for the user.
func (u User) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Nombre != "":
		return u.Nombre
	default:
		return u.Username
	}
}

// EffectiveRole returns the user's role. Entries without one are supervisors.
func (u User) EffectiveRole() auth.Role {
	if u.Role == "" {
		return auth.RoleSupervisor
	}
	return u.Role
}

// Principal converts the user for request authorization.
func (u User) Principal() auth.Principal {
	return auth.Principal{Username: u.Username, Name: u.DisplayName(), Role: u.EffectiveRole(), SupervisorID: u.SupervisorID}
}

func (u User) verify(password string) bool {
	switch {
	case u.Bcrypt != "":
		return bcrypt.CompareHashAndPassword([]byte(u.Bcrypt), []byte(password)) == nil
	case u.SHA256 != "":
		sum := sha256.Sum256([]byte(password))
		return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(strings.ToLower(u.SHA256))) == 1
	case u.Password != "":
		return subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1
	default:
		return false
	}
}

// NewUser is the input for creating an account.
type NewUser struct {
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Role         auth.Role `json:"role"`
	SupervisorID string    `json:"supervisor_id"`
	Password     string    `json:"password"`
}

type document struct {
	Users []User `json:"users"`
}

// Store reads and writes the users file. The file is read on every call.
type Store struct {
	mu   sync.Mutex
	path string
	dir  *directory.Directory
}

var _ auth.Users = (*Store)(nil)

// NewStore creates a store for the users file at path. dir validates supervisor ids.
func NewStore(path string, dir *directory.Directory) *Store {
	return &Store{path: path, dir: dir}
}

func (s *Store) read() (*document, error) {
	doc := &document{Users: []User{}}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if doc.Users == nil {
		doc.Users = []User{}
	}
	return doc, nil
}

func (s *Store) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(s.path), err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write users: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// List returns every user.
func (s *Store) List() ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

// Find looks up a user by username, ignoring case and diacritics.
func (s *Store) Find(username string) (User, bool) {
	list, err := s.List()
	if err != nil {
		return User{}, false
	}
	key := utils.Normalize(username)
	if key == "" {
		return User{}, false
	}
	for _, u := range list {
		if utils.Normalize(u.Username) == key {
			return u, true
		}
	}
	return User{}, false
}

// Authenticate reports whether the password matches the user's.
func (s *Store) Authenticate(username, password string) bool {
	u, ok := s.Find(username)
	return ok && u.verify(password)
}

// Principal returns the authorization principal of a user.
func (s *Store) Principal(username string) (auth.Principal, bool) {
	u, ok := s.Find(username)
	if !ok {
		return auth.Principal{}, false
	}
	return u.Principal(), true
}

// Add validates and appends a new user. The password is stored as a bcrypt hash.
func (s *Store) Add(in NewUser) (User, error) {
	username := strings.TrimSpace(in.Username)
	switch {
	case username == "" || strings.ContainsAny(username, " \t"):
		return User{}, fmt.Errorf("%w: username is required and may not contain spaces", ErrInvalidUser)
	case len(in.Password) < MinPasswordLength:
		return User{}, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidUser, MinPasswordLength)
	case in.Role != auth.RoleAdmin && in.Role != auth.RoleSupervisor:
		return User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidUser, in.Role)
	}
	if in.Role == auth.RoleSupervisor {
		if _, ok := s.dir.Supervisor(in.SupervisorID); !ok {
			return User{}, fmt.Errorf("%w: unknown supervisor id %q", ErrInvalidUser, in.SupervisorID)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	u := User{Username: username, Name: strings.TrimSpace(in.Name), Role: in.Role, Bcrypt: string(hash)}
	if u.Name == "" {
		u.Name = username
	}
	if in.Role == auth.RoleSupervisor {
		u.SupervisorID = in.SupervisorID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return User{}, err
	}
	key := utils.Normalize(username)
	for _, existing := range doc.Users {
		if utils.Normalize(existing.Username) == key {
			return User{}, fmt.Errorf("%w: %s", ErrUserExists, existing.Username)
		}
	}
	doc.Users = append(doc.Users, u)
	if err := s.write(doc); err != nil {
		return User{}, err
	}
	return u, nil
}
