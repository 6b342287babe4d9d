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

// versionDoc is the Firestore document representation of model.ResumeVersion.
type versionDoc struct {
	ID             string          `firestore:"ID"`
	UserID         string          `firestore:"UserID"`
	ResumeID       string          `firestore:"ResumeID"`
	VersionNumber  int             `firestore:"VersionNumber"`
	Content        *model.Snapshot `firestore:"Content"`
	ChangesSummary string          `firestore:"ChangesSummary"`
	CreatedBy      string          `firestore:"CreatedBy"`
	CreatedAt      time.Time       `firestore:"CreatedAt"`
}

func toVersionDoc(v *model.ResumeVersion) *versionDoc {
	return &versionDoc{
		ID:             string(v.ID),
		UserID:         v.UserID,
		ResumeID:       string(v.ResumeID),
		VersionNumber:  v.VersionNumber,
		Content:        v.Content,
		ChangesSummary: v.ChangesSummary,
		CreatedBy:      v.CreatedBy,
		CreatedAt:      v.CreatedAt,
	}
}

func fromVersionDoc(d *versionDoc) *model.ResumeVersion {
	return &model.ResumeVersion{
		ID:             model.VersionID(d.ID),
		UserID:         d.UserID,
		ResumeID:       model.ResumeID(d.ResumeID),
		VersionNumber:  d.VersionNumber,
		Content:        d.Content,
		ChangesSummary: d.ChangesSummary,
		CreatedBy:      d.CreatedBy,
		CreatedAt:      d.CreatedAt,
	}
}

type versionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newVersionRepository(client *firestore.Client) *versionRepository {
	return &versionRepository{client: client}
}

func (r *versionRepository) collection() *firestore.CollectionRef {
	name := "versions"
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_versions"
	}
	return r.client.Collection(name)
}

func (r *versionRepository) counterCollection() *firestore.CollectionRef {
	name := "counters"
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_counters"
	}
	return r.client.Collection(name)
}

// Create assigns the next version number and writes the version doc in one
// transaction, so concurrent writers never observe the same number.
func (r *versionRepository) Create(ctx context.Context, version *model.ResumeVersion) (*model.ResumeVersion, error) {
	created := *version
	if created.ID == "" {
		created.ID = model.NewVersionID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	counterRef := r.counterCollection().Doc("version_" + string(created.ResumeID))
	docRef := r.collection().Doc(string(created.ID))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		nextNumber := 1
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return goerr.Wrap(err, "failed to get version counter")
			}
		} else {
			currentValue, err := doc.DataAt("value")
			if err != nil {
				return goerr.Wrap(err, "failed to get counter value")
			}
			val, ok := currentValue.(int64)
			if !ok {
				return goerr.New("counter value is not of type int64", goerr.V("value", currentValue))
			}
			nextNumber = int(val) + 1
		}

		created.VersionNumber = nextNumber

		if err := tx.Set(counterRef, map[string]interface{}{
			"value": int64(nextNumber),
		}); err != nil {
			return goerr.Wrap(err, "failed to update version counter")
		}
		return tx.Set(docRef, toVersionDoc(&created))
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create version", goerr.V("resumeID", created.ResumeID))
	}

	return &created, nil
}

func (r *versionRepository) ListByResume(ctx context.Context, resumeID model.ResumeID, limit int) ([]*model.ResumeVersion, error) {
	iter := r.collection().Where("ResumeID", "==", string(resumeID)).Documents(ctx)
	defer iter.Stop()

	versions := make([]*model.ResumeVersion, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate versions", goerr.V("resumeID", resumeID))
		}

		var d versionDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode version", goerr.V("doc_id", docSnap.Ref.ID))
		}
		versions = append(versions, fromVersionDoc(&d))
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].VersionNumber > versions[j].VersionNumber
	})

	if limit > 0 && len(versions) > limit {
		versions = versions[:limit]
	}

	return versions, nil
}
