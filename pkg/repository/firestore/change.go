package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resume-lab/vitae/pkg/domain/model"
	"github.com/resume-lab/vitae/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// changeDoc is the Firestore document representation of model.ResumeChange.
type changeDoc struct {
	ID          string         `firestore:"ID"`
	UserID      string         `firestore:"UserID"`
	SessionID   string         `firestore:"SessionID"`
	ChangeType  string         `firestore:"ChangeType"`
	Section     string         `firestore:"Section"`
	FieldPath   string         `firestore:"FieldPath"`
	OldValue    any            `firestore:"OldValue"`
	NewValue    any            `firestore:"NewValue"`
	Description string         `firestore:"Description"`
	Timestamp   time.Time      `firestore:"Timestamp"`
	Metadata    map[string]any `firestore:"Metadata"`
}

func toChangeDoc(c *model.ResumeChange) *changeDoc {
	return &changeDoc{
		ID:          string(c.ID),
		UserID:      c.UserID,
		SessionID:   c.SessionID,
		ChangeType:  c.ChangeType.String(),
		Section:     c.Section,
		FieldPath:   c.FieldPath,
		OldValue:    c.OldValue,
		NewValue:    c.NewValue,
		Description: c.Description,
		Timestamp:   c.Timestamp,
		Metadata:    c.Metadata,
	}
}

func fromChangeDoc(d *changeDoc) *model.ResumeChange {
	return &model.ResumeChange{
		ID:          model.ChangeID(d.ID),
		UserID:      d.UserID,
		SessionID:   d.SessionID,
		ChangeType:  types.ChangeType(d.ChangeType),
		Section:     d.Section,
		FieldPath:   d.FieldPath,
		OldValue:    d.OldValue,
		NewValue:    d.NewValue,
		Description: d.Description,
		Timestamp:   d.Timestamp,
		Metadata:    d.Metadata,
	}
}

type changeRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newChangeRepository(client *firestore.Client) *changeRepository {
	return &changeRepository{client: client}
}

func (r *changeRepository) collection() *firestore.CollectionRef {
	name := "changes"
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_changes"
	}
	return r.client.Collection(name)
}

func (r *changeRepository) Put(ctx context.Context, change *model.ResumeChange) error {
	if change.ID == "" {
		return goerr.New("change ID is required")
	}

	stored := *change
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now().UTC()
	}

	docRef := r.collection().Doc(string(stored.ID))
	if _, err := docRef.Set(ctx, toChangeDoc(&stored)); err != nil {
		return goerr.Wrap(err, "failed to put change", goerr.V("id", stored.ID))
	}

	return nil
}

func (r *changeRepository) Get(ctx context.Context, id model.ChangeID) (*model.ResumeChange, error) {
	docSnap, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get change", goerr.V("id", id))
	}

	var d changeDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode change", goerr.V("id", id))
	}

	return fromChangeDoc(&d), nil
}

func (r *changeRepository) List(ctx context.Context, userID, sessionID string, changeType types.ChangeType, limit int) ([]*model.ResumeChange, error) {
	iter := r.collection().Where("UserID", "==", userID).Documents(ctx)
	defer iter.Stop()

	changes := make([]*model.ResumeChange, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate changes", goerr.V("userID", userID))
		}

		var d changeDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode change", goerr.V("doc_id", docSnap.Ref.ID))
		}

		change := fromChangeDoc(&d)
		if sessionID != "" && change.SessionID != sessionID {
			continue
		}
		if changeType != "" && change.ChangeType != changeType {
			continue
		}
		changes = append(changes, change)
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Timestamp.After(changes[j].Timestamp)
	})

	if limit > 0 && len(changes) > limit {
		changes = changes[:limit]
	}

	return changes, nil
}

func (r *changeRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	iter := r.collection().Where("Timestamp", "<", cutoff).Documents(ctx)
	defer iter.Stop()

	refs := make([]*firestore.DocumentRef, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to iterate expired changes")
		}
		refs = append(refs, docSnap.Ref)
	}

	if len(refs) == 0 {
		return 0, nil
	}

	bulkWriter := r.client.BulkWriter(ctx)
	defer bulkWriter.End()

	for _, ref := range refs {
		if _, err := bulkWriter.Delete(ref); err != nil {
			return 0, goerr.Wrap(err, "failed to add delete to bulk writer", goerr.V("doc_id", ref.ID))
		}
	}

	bulkWriter.Flush()
	return len(refs), nil
}
