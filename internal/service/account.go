package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/profilekeeper/internal/auth"
	"github.com/atinyakov/profilekeeper/internal/models"
	"github.com/atinyakov/profilekeeper/internal/repository"
)

// MaxImageSize is the upload ceiling for profile images.
const MaxImageSize = 5 << 20 // 5 MiB

// allowedImageTypes is the fixed allow-list of declared mime types for
// profile image uploads.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// AccountRepository defines the persistence operations required by the
// account service.
type AccountRepository interface {
	// Insert stores a new account and returns its identifier. Uniqueness
	// violations are reported as *repository.DuplicateKeyError.
	Insert(ctx context.Context, account *models.Account) (string, error)
	// FindByUsername returns the account with the given username,
	// including the password hash, or repository.ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	// FindByEmail returns the account with the given email, without the
	// password hash, or repository.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	// FindByID returns the account with the given id, without the
	// password hash. Malformed ids are reported as repository.ErrInvalidID,
	// missing accounts as repository.ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.Account, error)
	// FindAll returns every account without password hashes.
	FindAll(ctx context.Context) ([]models.Account, error)
	// UpdateByEmail applies profile changes and returns the updated
	// account without the password hash.
	UpdateByEmail(ctx context.Context, email string, changes models.ProfileChanges) (*models.Account, error)
	// SetImage records (or clears, with nil) the profile image path.
	SetImage(ctx context.Context, email string, path *string) error
	// DeleteByID removes the account with the given id.
	DeleteByID(ctx context.Context, id string) error
}

// FileStore defines the file-storage operations required by the account
// service.
type FileStore interface {
	// Save persists data under the given file name and returns the
	// stored path.
	Save(ctx context.Context, name string, data []byte) (string, error)
	// Delete removes the file at the given stored path. Missing files
	// are reported with an error satisfying errors.Is(err, os.ErrNotExist).
	Delete(ctx context.Context, path string) error
}

// AccountService implements signup, login and profile operations by
// delegating to the persistence and file-storage collaborators.
type AccountService struct {
	repo        AccountRepository
	files       FileStore
	tokenSecret []byte
	tokenTTL    time.Duration
	logger      *zap.Logger
}

// NewAccountService constructs an AccountService. The secret signs the
// session tokens minted at login; ttl bounds their lifetime.
func NewAccountService(repo AccountRepository, files FileStore, secret []byte, ttl time.Duration, logger *zap.Logger) *AccountService {
	return &AccountService{
		repo:        repo,
		files:       files,
		tokenSecret: secret,
		tokenTTL:    ttl,
		logger:      logger,
	}
}

// SignupInput carries the fields of a signup request. Username, Email and
// Password are mandatory; the names are optional.
type SignupInput struct {
	Username  string
	Email     string
	Password  string
	Firstname string
	Lastname  string
}

// Signup creates a new active account and returns its identifier. The
// password is hashed before storage and never travels further. A taken
// username or email is reported as *DuplicateError naming the field.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (string, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return "", &ValidationError{Msg: "username, email and password are required"}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return "", err
	}

	account := &models.Account{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Status:       models.StatusActive,
		ProfileImage: nil,
	}

	id, err := s.repo.Insert(ctx, account)
	if err != nil {
		var dup *repository.DuplicateKeyError
		if errors.As(err, &dup) {
			return "", &DuplicateError{Field: dup.Field}
		}
		return "", err
	}
	return id, nil
}

// Login verifies the credentials and, on success, returns the account
// (password hash stripped) together with a freshly issued session token.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, username, password string) (*models.Account, string, error) {
	if username == "" || password == "" {
		return nil, "", &ValidationError{Msg: "username and password are required"}
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(password, account.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.IssueToken(account.Email, s.tokenSecret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	account.PasswordHash = ""
	return account, token, nil
}

// GetProfile returns the account of the authenticated principal.
func (s *AccountService) GetProfile(ctx context.Context, principal *auth.Claims) (*models.Account, error) {
	if principal == nil {
		return nil, ErrUnauthorized
	}

	account, err := s.repo.FindByEmail(ctx, principal.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

// UpdateInput carries the fields of a profile update. Firstname, Lastname
// and Email are written as given, so a blank clears the stored field.
// A non-empty Password is re-hashed before storage.
type UpdateInput struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

// UpdateProfile applies the update to the principal's account and returns
// the updated record without the password hash.
func (s *AccountService) UpdateProfile(ctx context.Context, principal *auth.Claims, in UpdateInput) (*models.Account, error) {
	if principal == nil {
		return nil, ErrUnauthorized
	}

	changes := models.ProfileChanges{
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Email:     in.Email,
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = hash
	}

	updated, err := s.repo.UpdateByEmail(ctx, principal.Email, changes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		var dup *repository.DuplicateKeyError
		if errors.As(err, &dup) {
			return nil, &DuplicateError{Field: dup.Field}
		}
		return nil, err
	}
	return updated, nil
}

// UploadProfileImage validates and stores a new profile image for the
// principal, replacing any previous one, and returns the new stored path.
// The previous file is deleted best-effort: a failed deletion is logged
// and swallowed, never surfaced.
func (s *AccountService) UploadProfileImage(ctx context.Context, principal *auth.Claims, data []byte, contentType, ext string) (string, error) {
	if principal == nil {
		return "", ErrUnauthorized
	}
	if len(data) > MaxImageSize {
		return "", &ValidationError{Msg: "file exceeds the 5 MiB limit"}
	}
	if !allowedImageTypes[contentType] {
		return "", &ValidationError{Msg: "only image files are allowed"}
	}

	account, err := s.repo.FindByEmail(ctx, principal.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	path, err := s.files.Save(ctx, uuid.NewString()+normalizeExt(ext), data)
	if err != nil {
		return "", err
	}

	if account.ProfileImage != nil {
		if err := s.files.Delete(ctx, *account.ProfileImage); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to delete previous profile image",
				zap.String("path", *account.ProfileImage), zap.Error(err))
		}
	}

	if err := s.repo.SetImage(ctx, principal.Email, &path); err != nil {
		return "", err
	}
	return path, nil
}

// DeleteProfileImage removes the principal's profile image file
// best-effort (a missing file is ignored) and clears the account's image
// reference.
func (s *AccountService) DeleteProfileImage(ctx context.Context, principal *auth.Claims) error {
	if principal == nil {
		return ErrUnauthorized
	}

	account, err := s.repo.FindByEmail(ctx, principal.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if account.ProfileImage == nil {
		return nil
	}

	if err := s.files.Delete(ctx, *account.ProfileImage); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("failed to delete profile image",
			zap.String("path", *account.ProfileImage), zap.Error(err))
	}

	return s.repo.SetImage(ctx, principal.Email, nil)
}

// ListAccounts returns every account, passwords stripped at the query level.
func (s *AccountService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.repo.FindAll(ctx)
}

// GetAccount returns the account with the given identifier. A malformed
// identifier is a validation failure, not a missing account.
func (s *AccountService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			return nil, &ValidationError{Msg: "invalid id"}
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

// DeleteAccount hard-deletes the account with the given identifier.
func (s *AccountService) DeleteAccount(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			return &ValidationError{Msg: "invalid id"}
		}
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// normalizeExt returns a lower-cased extension with a single leading dot,
// or "" when no usable extension was supplied.
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimLeft(ext, "."))
	if ext == "" || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return "." + ext
}
