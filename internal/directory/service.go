package directory

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mohamim360/kanban-api/internal/auth"
	"github.com/mohamim360/kanban-api/internal/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUserNotFound = errors.New("user not found")

// Service maps external subject identities to internal user records.
type Service struct {
	db       *gorm.DB
	provider Provider
	logger   *slog.Logger
}

func NewService(db *gorm.DB, provider Provider, logger *slog.Logger) *Service {
	return &Service{db: db, provider: provider, logger: logger}
}

// UserSummary is keyed by the provider's subject id, the same shape the
// provider's own directory listing uses.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// FindOrCreate returns the user record for the identity's subject id,
// creating it on first login. Existing records are returned as-is; the
// profile is not refreshed.
func (s *Service) FindOrCreate(ctx context.Context, identity *auth.Identity) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("external_subject_id = ?", identity.SubjectID).
		First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		ExternalSubjectID: identity.SubjectID,
		Email:             identity.Email,
		Name:              identity.DisplayName,
	}

	// A concurrent first login can insert the same subject id between the
	// lookup and this insert. The unique index decides the winner; the
	// loser observes zero affected rows and returns the winner's record.
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_subject_id"}},
		DoNothing: true,
	}).Create(&user)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := s.db.WithContext(ctx).
			Where("external_subject_id = ?", identity.SubjectID).
			First(&user).Error; err != nil {
			return nil, err
		}
	}

	return &user, nil
}

// ListAll reconciles local records against the provider directory and
// returns provider-keyed summaries. When the provider is unreachable it
// degrades to locally stored users instead of failing.
func (s *Service) ListAll(ctx context.Context) ([]UserSummary, error) {
	remote, err := s.provider.ListUsers(ctx)
	if err != nil {
		s.logger.Warn("identity provider directory unavailable, serving local users", "error", err)
		return s.listLocal(ctx)
	}

	summaries := make([]UserSummary, 0, len(remote))
	for _, ru := range remote {
		if ru.Email == "" {
			// Placeholder emails are not synthesized for accountless
			// provider entries; they stay out of the directory.
			s.logger.Debug("skipping provider user without email", "subject_id", ru.ID)
			continue
		}

		user, err := s.FindOrCreate(ctx, &auth.Identity{
			SubjectID:   ru.ID,
			Email:       ru.Email,
			DisplayName: ru.DisplayName(),
		})
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, UserSummary{
			ID:    user.ExternalSubjectID,
			Email: user.Email,
			Name:  user.Name,
		})
	}

	return summaries, nil
}

func (s *Service) listLocal(ctx context.Context) ([]UserSummary, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	summaries := make([]UserSummary, len(users))
	for i, u := range users {
		summaries[i] = UserSummary{
			ID:    u.ExternalSubjectID,
			Email: u.Email,
			Name:  u.Name,
		}
	}

	return summaries, nil
}

func (s *Service) FindByExternalID(ctx context.Context, subjectID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("external_subject_id = ?", subjectID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Service) FindByInternalID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
