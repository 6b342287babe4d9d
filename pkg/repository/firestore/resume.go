package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// resumeDoc is the Firestore document representation of model.Resume.
type resumeDoc struct {
	ID        string `firestore:"ID"`
	ProfileID string `firestore:"ProfileID"`

	Name     string `firestore:"Name"`
	Title    string `firestore:"Title"`
	Email    string `firestore:"Email"`
	Phone    string `firestore:"Phone"`
	Location string `firestore:"Location"`
	Linkedin string `firestore:"Linkedin"`
	Website  string `firestore:"Website"`

	Summary    string          `firestore:"Summary"`
	Experience []experienceDoc `firestore:"Experience"`
	Education  []educationDoc  `firestore:"Education"`
	Skills     []string        `firestore:"Skills"`

	CreatedAt time.Time `firestore:"CreatedAt"`
	UpdatedAt time.Time `firestore:"UpdatedAt"`
}

type experienceDoc struct {
	ID          string `firestore:"ID"`
	Company     string `firestore:"Company"`
	Title       string `firestore:"Title"`
	StartDate   string `firestore:"StartDate"`
	EndDate     string `firestore:"EndDate"`
	Description string `firestore:"Description"`
	Location    string `firestore:"Location"`
	CreatedAt   string `firestore:"CreatedAt"`
	UpdatedAt   string `firestore:"UpdatedAt"`
}

type educationDoc struct {
	ID          string `firestore:"ID"`
	School      string `firestore:"School"`
	Degree      string `firestore:"Degree"`
	Field       string `firestore:"Field"`
	StartDate   string `firestore:"StartDate"`
	EndDate     string `firestore:"EndDate"`
	Description string `firestore:"Description"`
}

func toResumeDoc(r *model.Resume) *resumeDoc {
	doc := &resumeDoc{
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
		Skills:    r.Skills,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	for _, e := range r.Experience {
		doc.Experience = append(doc.Experience, experienceDoc(e))
	}
	for _, e := range r.Education {
		doc.Education = append(doc.Education, educationDoc(e))
	}
	return doc
}

func fromResumeDoc(d *resumeDoc) *model.Resume {
	r := &model.Resume{
		ID:        model.ResumeID(d.ID),
		ProfileID: d.ProfileID,
		Name:      d.Name,
		Title:     d.Title,
		Email:     d.Email,
		Phone:     d.Phone,
		Location:  d.Location,
		Linkedin:  d.Linkedin,
		Website:   d.Website,
		Summary:   d.Summary,
		Skills:    d.Skills,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	for _, e := range d.Experience {
		r.Experience = append(r.Experience, model.ExperienceEntry(e))
	}
	for _, e := range d.Education {
		r.Education = append(r.Education, model.EducationEntry(e))
	}
	return r
}

type resumeRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newResumeRepository(client *firestore.Client) *resumeRepository {
	return &resumeRepository{client: client}
}

func (r *resumeRepository) collection() *firestore.CollectionRef {
	name := "resumes"
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_resumes"
	}
	return r.client.Collection(name)
}

func (r *resumeRepository) Create(ctx context.Context, resume *model.Resume) (*model.Resume, error) {
	now := time.Now().UTC()
	created := *resume
	if created.ID == "" {
		created.ID = model.NewResumeID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.collection().Doc(string(created.ID))
	if _, err := docRef.Set(ctx, toResumeDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create resume", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *resumeRepository) Get(ctx context.Context, id model.ResumeID) (*model.Resume, error) {
	docSnap, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get resume", goerr.V("id", id))
	}

	var d resumeDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode resume", goerr.V("id", id))
	}

	return fromResumeDoc(&d), nil
}

func (r *resumeRepository) GetLatestByProfile(ctx context.Context, profileID string) (*model.Resume, error) {
	resumes, err := r.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if len(resumes) == 0 {
		return nil, nil
	}
	return resumes[0], nil
}

func (r *resumeRepository) ListByProfile(ctx context.Context, profileID string) ([]*model.Resume, error) {
	iter := r.collection().Where("ProfileID", "==", profileID).Documents(ctx)
	defer iter.Stop()

	resumes := make([]*model.Resume, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate resumes", goerr.V("profileID", profileID))
		}

		var d resumeDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode resume", goerr.V("doc_id", docSnap.Ref.ID))
		}
		resumes = append(resumes, fromResumeDoc(&d))
	}

	sort.Slice(resumes, func(i, j int) bool {
		return resumes[i].UpdatedAt.After(resumes[j].UpdatedAt)
	})

	return resumes, nil
}

func (r *resumeRepository) Update(ctx context.Context, resume *model.Resume) (*model.Resume, error) {
	docRef := r.collection().Doc(string(resume.ID))

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.New("resume not found", goerr.V("id", resume.ID))
		}
		return nil, goerr.Wrap(err, "failed to check resume existence", goerr.V("id", resume.ID))
	}

	var existing resumeDoc
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode resume", goerr.V("id", resume.ID))
	}

	updated := *resume
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toResumeDoc(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update resume", goerr.V("id", resume.ID))
	}

	return &updated, nil
}
