package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/berkecan/unienroll/internal/app/models"
	"github.com/berkecan/unienroll/internal/pkg/apperrors"
)

// PreferenceStore persists optional-course rankings
type PreferenceStore interface {
	ListForSpecialization(ctx context.Context, studentID, specializationID int64) ([]*models.OptionalPreference, error)
	ReplaceForSpecialization(ctx context.Context, studentID, specializationID int64, prefs []*models.OptionalPreference) error
}

// PreferenceService manages a student's ranked optional-course preferences
// within a specialization.
type PreferenceService struct {
	students        StudentStore
	specializations SpecializationStore
	preferences     PreferenceStore
	logger          zerolog.Logger
}

// NewPreferenceService creates a new PreferenceService
func NewPreferenceService(
	students StudentStore,
	specializations SpecializationStore,
	preferences PreferenceStore,
	logger zerolog.Logger,
) *PreferenceService {
	return &PreferenceService{
		students:        students,
		specializations: specializations,
		preferences:     preferences,
		logger:          logger,
	}
}

// RankedPreferences returns the student's optional preferences for the
// specialization, ordered by rank ascending with course id as tiebreak.
func (s *PreferenceService) RankedPreferences(ctx context.Context, studentID, specializationID int64) ([]*models.OptionalPreference, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	if _, err := s.specializations.GetByID(ctx, specializationID); err != nil {
		return nil, err
	}
	return s.preferences.ListForSpecialization(ctx, studentID, specializationID)
}

// SubmitPreferences replaces the student's rankings for the specialization
// in one transaction. Each rank must be unique within the submission and
// every course must be an optional course of the specialization.
func (s *PreferenceService) SubmitPreferences(ctx context.Context, studentID, specializationID int64, prefs []*models.OptionalPreference) error {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return err
	}
	if _, err := s.specializations.GetByID(ctx, specializationID); err != nil {
		return err
	}

	ranks := make(map[int]bool, len(prefs))
	for _, pref := range prefs {
		if ranks[pref.Rank] {
			return apperrors.ErrDuplicateRank
		}
		ranks[pref.Rank] = true
	}

	if err := s.preferences.ReplaceForSpecialization(ctx, studentID, specializationID, prefs); err != nil {
		return err
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Int64("specializationID", specializationID).
		Int("count", len(prefs)).
		Msg("Optional preferences replaced")

	return nil
}
