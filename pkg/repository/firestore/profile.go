package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// profileDoc is the Firestore document representation of model.Profile.
type profileDoc struct {
	ID       string `firestore:"ID"`
	Name     string `firestore:"Name"`
	Title    string `firestore:"Title"`
	Email    string `firestore:"Email"`
	Phone    string `firestore:"Phone"`
	Location string `firestore:"Location"`
	Linkedin string `firestore:"Linkedin"`
	Website  string `firestore:"Website"`
	Avatar   string `firestore:"Avatar"`
	Bio      string `firestore:"Bio"`

	Theme         string `firestore:"Theme"`
	Notifications bool   `firestore:"Notifications"`
	AutoSave      bool   `firestore:"AutoSave"`

	SubscriptionPlan      string     `firestore:"SubscriptionPlan"`
	SubscriptionExpiresAt *time.Time `firestore:"SubscriptionExpiresAt"`

	ResumesCreated     int       `firestore:"ResumesCreated"`
	ProfileViews       int       `firestore:"ProfileViews"`
	DownloadsThisMonth int       `firestore:"DownloadsThisMonth"`
	LastActive         time.Time `firestore:"LastActive"`

	CreatedAt time.Time `firestore:"CreatedAt"`
	UpdatedAt time.Time `firestore:"UpdatedAt"`
}

func toProfileDoc(p *model.Profile) *profileDoc {
	return &profileDoc{
		ID:                    p.ID,
		Name:                  p.Name,
		Title:                 p.Title,
		Email:                 p.Email,
		Phone:                 p.Phone,
		Location:              p.Location,
		Linkedin:              p.Linkedin,
		Website:               p.Website,
		Avatar:                p.Avatar,
		Bio:                   p.Bio,
		Theme:                 p.Theme,
		Notifications:         p.Notifications,
		AutoSave:              p.AutoSave,
		SubscriptionPlan:      p.SubscriptionPlan,
		SubscriptionExpiresAt: p.SubscriptionExpiresAt,
		ResumesCreated:        p.ResumesCreated,
		ProfileViews:          p.ProfileViews,
		DownloadsThisMonth:    p.DownloadsThisMonth,
		LastActive:            p.LastActive,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func fromProfileDoc(d *profileDoc) *model.Profile {
	return &model.Profile{
		ID:                    d.ID,
		Name:                  d.Name,
		Title:                 d.Title,
		Email:                 d.Email,
		Phone:                 d.Phone,
		Location:              d.Location,
		Linkedin:              d.Linkedin,
		Website:               d.Website,
		Avatar:                d.Avatar,
		Bio:                   d.Bio,
		Theme:                 d.Theme,
		Notifications:         d.Notifications,
		AutoSave:              d.AutoSave,
		SubscriptionPlan:      d.SubscriptionPlan,
		SubscriptionExpiresAt: d.SubscriptionExpiresAt,
		ResumesCreated:        d.ResumesCreated,
		ProfileViews:          d.ProfileViews,
		DownloadsThisMonth:    d.DownloadsThisMonth,
		LastActive:            d.LastActive,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

type profileRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProfileRepository(client *firestore.Client) *profileRepository {
	return &profileRepository{client: client}
}

func (r *profileRepository) collection() *firestore.CollectionRef {
	name := "profiles"
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_profiles"
	}
	return r.client.Collection(name)
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	if profile.ID == "" {
		return nil, goerr.New("profile ID is required")
	}

	now := time.Now().UTC()
	created := *profile
	created.CreatedAt = now
	created.UpdatedAt = now
	if created.LastActive.IsZero() {
		created.LastActive = now
	}

	docRef := r.collection().Doc(created.ID)
	if _, err := docRef.Create(ctx, toProfileDoc(&created)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(err, "profile already exists", goerr.V("id", created.ID))
		}
		return nil, goerr.Wrap(err, "failed to create profile", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *profileRepository) Get(ctx context.Context, id string) (*model.Profile, error) {
	docSnap, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("id", id))
	}

	var d profileDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode profile", goerr.V("id", id))
	}

	return fromProfileDoc(&d), nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	docRef := r.collection().Doc(profile.ID)

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.New("profile not found", goerr.V("id", profile.ID))
		}
		return nil, goerr.Wrap(err, "failed to check profile existence", goerr.V("id", profile.ID))
	}

	var existing profileDoc
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode profile", goerr.V("id", profile.ID))
	}

	updated := *profile
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toProfileDoc(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update profile", goerr.V("id", profile.ID))
	}

	return &updated, nil
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	docRef := r.collection().Doc(id)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.New("profile not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check profile existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete profile", goerr.V("id", id))
	}
	return nil
}
