package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/usecase"
	"github.com/resume-lab/vitae/pkg/utils/errutil"
)

type experienceEntryDTO struct {
	ID          string `json:"id,omitempty"`
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type educationEntryDTO struct {
	ID          string `json:"id,omitempty"`
	School      string `json:"school"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description,omitempty"`
}

type resumeDTO struct {
	ID        string               `json:"id"`
	ProfileID string               `json:"profile_id"`
	Name      string               `json:"name"`
	Title     string               `json:"title"`
	Email     string               `json:"email"`
	Phone     string               `json:"phone"`
	Location  string               `json:"location"`
	Linkedin  string               `json:"linkedin,omitempty"`
	Website   string               `json:"website,omitempty"`
	Summary   string               `json:"summary"`
	Exp       []experienceEntryDTO `json:"experience"`
	Edu       []educationEntryDTO  `json:"education"`
	Skills    []string             `json:"skills"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func toResumeDTO(r *model.Resume) resumeDTO {
	dto := resumeDTO{
		ID:        string(r.ID),
		ProfileID: r.ProfileID,
		Name:      r.Name,
		Title:     r.Title,
		Email:     r.Email,
		Phone:     r.Phone,
		Location:  r.Location,
		Linkedin:  r.Linkedin,
		Website:   r.Website,
		Summary:   r.Summary,
		Exp:       []experienceEntryDTO{},
		Edu:       []educationEntryDTO{},
		Skills:    append([]string{}, r.Skills...),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	for _, e := range r.Experience {
		dto.Exp = append(dto.Exp, experienceEntryDTO{
			ID:          e.ID,
			Company:     e.Company,
			Title:       e.Title,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: e.Description,
			Location:    e.Location,
			CreatedAt:   e.CreatedAt,
			UpdatedAt:   e.UpdatedAt,
		})
	}
	for _, e := range r.Education {
		dto.Edu = append(dto.Edu, educationEntryDTO{
			ID:          e.ID,
			School:      e.School,
			Degree:      e.Degree,
			Field:       e.Field,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: e.Description,
		})
	}
	return dto
}

type resumeRequest struct {
	ProfileID string               `json:"profile_id"`
	Name      string               `json:"name"`
	Title     string               `json:"title"`
	Email     string               `json:"email"`
	Phone     string               `json:"phone"`
	Location  string               `json:"location"`
	Linkedin  string               `json:"linkedin,omitempty"`
	Website   string               `json:"website,omitempty"`
	Summary   string               `json:"summary"`
	Exp       []experienceEntryDTO `json:"experience"`
	Edu       []educationEntryDTO  `json:"education"`
	Skills    []string             `json:"skills"`
}

func (req *resumeRequest) apply(r *model.Resume) {
	r.Name = req.Name
	r.Title = req.Title
	r.Email = req.Email
	r.Phone = req.Phone
	r.Location = req.Location
	r.Linkedin = req.Linkedin
	r.Website = req.Website
	r.Summary = req.Summary
	r.Skills = append([]string{}, req.Skills...)

	r.Experience = r.Experience[:0]
	for _, e := range req.Exp {
		r.Experience = append(r.Experience, model.ExperienceEntry{
			ID:          e.ID,
			Company:     e.Company,
			Title:       e.Title,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: e.Description,
			Location:    e.Location,
			CreatedAt:   e.CreatedAt,
			UpdatedAt:   e.UpdatedAt,
		})
	}
	r.Education = r.Education[:0]
	for _, e := range req.Edu {
		r.Education = append(r.Education, model.EducationEntry{
			ID:          e.ID,
			School:      e.School,
			Degree:      e.Degree,
			Field:       e.Field,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: e.Description,
		})
	}
}

func (s *Server) createResumeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req resumeRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	resume := &model.Resume{ProfileID: req.ProfileID}
	req.apply(resume)

	created, err := s.uc.Resume.Create(ctx, resume)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, toResumeDTO(created))
}

func (s *Server) listResumesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profileID := r.URL.Query().Get("profile_id")
	if profileID == "" {
		errutil.HandleHTTP(ctx, w,
			goerr.Wrap(usecase.ErrMissingUserID, "resume list without profile_id"),
			http.StatusBadRequest)
		return
	}

	resumes, err := s.uc.Resume.List(ctx, profileID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	items := make([]resumeDTO, 0, len(resumes))
	for _, resume := range resumes {
		items = append(items, toResumeDTO(resume))
	}
	respondJSON(ctx, w, http.StatusOK, map[string]any{"resumes": items})
}

func (s *Server) latestResumeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profileID := r.URL.Query().Get("profile_id")
	if profileID == "" {
		errutil.HandleHTTP(ctx, w,
			goerr.Wrap(usecase.ErrMissingUserID, "latest resume without profile_id"),
			http.StatusBadRequest)
		return
	}

	resume, err := s.uc.Resume.Latest(ctx, profileID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toResumeDTO(resume))
}

func (s *Server) getResumeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resume, err := s.uc.Resume.Get(ctx, model.ResumeID(chi.URLParam(r, "resumeID")))
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toResumeDTO(resume))
}

func (s *Server) updateResumeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resumeID := model.ResumeID(chi.URLParam(r, "resumeID"))

	var req resumeRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	existing, err := s.uc.Resume.Get(ctx, resumeID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	req.apply(existing)
	updated, err := s.uc.Resume.Update(ctx, existing)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, toResumeDTO(updated))
}
