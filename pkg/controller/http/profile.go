package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/utils/errutil"
)

type profilePreferencesDTO struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	AutoSave      bool   `json:"auto_save"`
}

type profileSubscriptionDTO struct {
	Plan      string     `json:"plan"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type profileStatsDTO struct {
	ResumesCreated     int       `json:"resumes_created"`
	ProfileViews       int       `json:"profile_views"`
	DownloadsThisMonth int       `json:"downloads_this_month"`
	LastActive         time.Time `json:"last_active"`
}

type profileDTO struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Title        string                 `json:"title"`
	Email        string                 `json:"email"`
	Phone        string                 `json:"phone"`
	Location     string                 `json:"location"`
	Linkedin     string                 `json:"linkedin,omitempty"`
	Website      string                 `json:"website,omitempty"`
	Avatar       string                 `json:"avatar,omitempty"`
	Bio          string                 `json:"bio,omitempty"`
	Preferences  profilePreferencesDTO  `json:"preferences"`
	Subscription profileSubscriptionDTO `json:"subscription"`
	Stats        profileStatsDTO        `json:"stats"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

func toProfileDTO(p *model.Profile) profileDTO {
	return profileDTO{
		ID:       p.ID,
		Name:     p.Name,
		Title:    p.Title,
		Email:    p.Email,
		Phone:    p.Phone,
		Location: p.Location,
		Linkedin: p.Linkedin,
		Website:  p.Website,
		Avatar:   p.Avatar,
		Bio:      p.Bio,
		Preferences: profilePreferencesDTO{
			Theme:         p.Theme,
			Notifications: p.Notifications,
			AutoSave:      p.AutoSave,
		},
		Subscription: profileSubscriptionDTO{
			Plan:      p.SubscriptionPlan,
			ExpiresAt: p.SubscriptionExpiresAt,
		},
		Stats: profileStatsDTO{
			ResumesCreated:     p.ResumesCreated,
			ProfileViews:       p.ProfileViews,
			DownloadsThisMonth: p.DownloadsThisMonth,
			LastActive:         p.LastActive,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type profileRequest struct {
	ID          string                 `json:"id,omitempty"`
	Name        string                 `json:"name"`
	Title       string                 `json:"title"`
	Email       string                 `json:"email"`
	Phone       string                 `json:"phone"`
	Location    string                 `json:"location"`
	Linkedin    string                 `json:"linkedin,omitempty"`
	Website     string                 `json:"website,omitempty"`
	Avatar      string                 `json:"avatar,omitempty"`
	Bio         string                 `json:"bio,omitempty"`
	Preferences *profilePreferencesDTO `json:"preferences,omitempty"`
}

func (req *profileRequest) apply(p *model.Profile) {
	p.Name = req.Name
	p.Title = req.Title
	p.Email = req.Email
	p.Phone = req.Phone
	p.Location = req.Location
	p.Linkedin = req.Linkedin
	p.Website = req.Website
	p.Avatar = req.Avatar
	p.Bio = req.Bio
	if req.Preferences != nil {
		p.Theme = req.Preferences.Theme
		p.Notifications = req.Preferences.Notifications
		p.AutoSave = req.Preferences.AutoSave
	}
}

func (s *Server) createProfileHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	profile := &model.Profile{
		ID:               req.ID,
		Theme:            "light",
		Notifications:    true,
		AutoSave:         true,
		SubscriptionPlan: "free",
	}
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	req.apply(profile)

	created, err := s.uc.Profile.Create(ctx, profile)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, toProfileDTO(created))
}

func (s *Server) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := s.uc.Profile.Get(ctx, chi.URLParam(r, "profileID"))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toProfileDTO(profile))
}

func (s *Server) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profileID := chi.URLParam(r, "profileID")

	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	existing, err := s.uc.Profile.Get(ctx, profileID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	req.apply(existing)
	updated, err := s.uc.Profile.Update(ctx, existing)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toProfileDTO(updated))
}
