package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/itomysh95/task-manager-project/internal/domain"
	"github.com/itomysh95/task-manager-project/internal/events"
	"github.com/itomysh95/task-manager-project/internal/platform/logger"
	"github.com/itomysh95/task-manager-project/internal/service/auth"
	"github.com/itomysh95/task-manager-project/internal/store"
)

// ProfileUpdate carries the whitelisted mutable profile fields. nil means
// "leave unchanged"; in particular the password hash is only recomputed when
// Password is non-nil.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
}

// UserService implements the account workflows: registration, credential
// login, session revocation, profile updates and cascade account deletion.
type UserService struct {
	db         *sql.DB
	userStore  store.UserStore
	taskStore  store.TaskStore
	hasher     auth.PasswordHasher
	jwtService auth.JWTService
	emitter    events.EventEmitter
	logger     *slog.Logger
}

// NewUserService creates a UserService with the given dependencies.
// The *sql.DB is needed for the cascade-delete transaction; day-to-day
// operations go through the store interfaces.
func NewUserService(
	db *sql.DB,
	userStore store.UserStore,
	taskStore store.TaskStore,
	hasher auth.PasswordHasher,
	jwtService auth.JWTService,
	emitter events.EventEmitter,
	logger *slog.Logger,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		db:         db,
		userStore:  userStore,
		taskStore:  taskStore,
		hasher:     hasher,
		jwtService: jwtService,
		emitter:    emitter,
		logger:     logger.With(slog.String("component", "user_service")),
	}
}

// Register creates a new account and issues its first session token.
// The plaintext password is hashed exactly once, before the first persist,
// and never stored. A welcome notification is emitted fire-and-forget.
func (s *UserService) Register(
	ctx context.Context,
	name, email, password string,
	age int,
) (*domain.User, string, error) {
	user, err := domain.NewUser(name, email, password, age)
	if err != nil {
		return nil, "", err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.emit(ctx, events.NewAccountEvent(events.EventUserRegistered, user.ID, user.Name, user.Email))

	return user, token, nil
}

// Login authenticates by credentials and issues a fresh session token.
// Every failure path returns auth.ErrInvalidCredentials so a caller can
// never learn which part of the credentials was wrong.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, "", auth.ErrInvalidCredentials
		}
		log.Error("failed to look up user for login", slog.String("error", err.Error()))
		return nil, "", err
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// issueToken signs a new session token and appends it to the user's active
// token list. Multiple tokens per user are valid simultaneously, one per
// device.
func (s *UserService) issueToken(ctx context.Context, user *domain.User) (string, error) {
	token, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		return "", err
	}

	if err := s.userStore.AddToken(ctx, user.ID, token); err != nil {
		return "", err
	}

	user.Tokens = append(user.Tokens, token)
	return token, nil
}

// Logout revokes exactly the presented session token. Other sessions of the
// same user stay valid.
func (s *UserService) Logout(ctx context.Context, userID uuid.UUID, token string) error {
	return s.userStore.RemoveToken(ctx, userID, token)
}

// LogoutAll revokes every session token of the user at once.
func (s *UserService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return s.userStore.RemoveAllTokens(ctx, userID)
}

// UpdateProfile applies a whitelisted profile update to the user. The
// password is validated and re-hashed only when the update actually carries
// one; unrelated profile updates never touch the stored hash.
func (s *UserService) UpdateProfile(
	ctx context.Context,
	user *domain.User,
	update ProfileUpdate,
) (*domain.User, error) {
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = domain.NormalizeEmail(*update.Email)
	}
	if update.Age != nil {
		user.Age = *update.Age
	}
	if update.Password != nil {
		if err := domain.ValidatePassword(*update.Password); err != nil {
			return nil, err
		}
		hashed, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteAccount removes the user and all their tasks as one logical unit.
// Both deletes run in a single transaction: if the task sweep fails the
// account survives untouched, and the failure propagates to the caller
// rather than leaving an orphaned or half-deleted state. A farewell
// notification is emitted after the transaction commits.
func (s *UserService) DeleteAccount(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		deleted, err := s.taskStore.WithTx(tx).DeleteAllByOwner(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("failed to delete tasks for user %s: %w", user.ID, err)
		}

		if err := s.userStore.WithTx(tx).Delete(ctx, user.ID); err != nil {
			return err
		}

		log.Info("account deleted",
			slog.String("user_id", user.ID.String()),
			slog.Int64("tasks_deleted", deleted))
		return nil
	})
	if err != nil {
		return err
	}

	s.emit(ctx, events.NewAccountEvent(events.EventAccountClosed, user.ID, user.Name, user.Email))

	return nil
}

// emit publishes an account event. Emission failures are logged and
// swallowed: notifications are a side effect, never part of the operation's
// success contract.
func (s *UserService) emit(ctx context.Context, event *events.AccountEvent) {
	if s.emitter == nil {
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit account event",
			slog.String("error", err.Error()),
			slog.String("event_type", event.Type),
			slog.String("user_id", event.UserID.String()))
	}
}
