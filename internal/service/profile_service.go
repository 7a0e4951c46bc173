package service

import (
	"context"

	"github.com/noah-isme/educa-portal/internal/dispatcher"
	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
)

// ProfileService reads and edits the data of the logged in user.
type ProfileService struct {
	base
}

// NewProfileService constructs a ProfileService.
func NewProfileService(deps Deps) *ProfileService {
	return &ProfileService{base: newBase(deps, "profile")}
}

// Get returns the current user as stored by the API.
func (s *ProfileService) Get(ctx context.Context, sid string) (*models.CurrentUser, error) {
	token, err := s.token(ctx, sid, "current_user")
	if err != nil {
		return nil, err
	}
	return s.api.CurrentUser(ctx, token)
}

// Update saves the profile form.
func (s *ProfileService) Update(ctx context.Context, sid string, form dto.ProfileForm) (*Outcome, error) {
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind:    dispatcher.KindUpdate,
		Name:    "update_profile",
		Payload: form,
		Do: func(ctx context.Context, token string) (string, error) {
			return s.api.UpdateCurrentUser(ctx, token, form)
		},
		Success: "Datos actualizados correctamente.",
	})
	return outcome(res, nil)
}

// StatisticsService loads the admin dashboard figures.
type StatisticsService struct {
	base
}

// NewStatisticsService constructs a StatisticsService.
func NewStatisticsService(deps Deps) *StatisticsService {
	return &StatisticsService{base: newBase(deps, "statistics")}
}

// Statistics returns the dashboard figures.
func (s *StatisticsService) Statistics(ctx context.Context, sid string) (*models.Statistics, error) {
	token, err := s.token(ctx, sid, "statistics")
	if err != nil {
		return nil, err
	}
	return s.api.Statistics(ctx, token)
}
