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
)

// turnDoc is the Firestore document representation of model.Turn.
type turnDoc struct {
	ID        string         `firestore:"ID"`
	UserID    string         `firestore:"UserID"`
	SessionID string         `firestore:"SessionID"`
	Role      string         `firestore:"Role"`
	Content   string         `firestore:"Content"`
	Metadata  map[string]any `firestore:"Metadata"`
	CreatedAt time.Time      `firestore:"CreatedAt"`
	Seq       int64          `firestore:"Seq"`
}

func toTurnDoc(t *model.Turn) *turnDoc {
	return &turnDoc{
		ID:        string(t.ID),
		UserID:    t.UserID,
		SessionID: t.SessionID,
		Role:      t.Role.String(),
		Content:   t.Content,
		Metadata:  t.Metadata,
		CreatedAt: t.CreatedAt,
		Seq:       t.Seq,
	}
}

func fromTurnDoc(d *turnDoc) *model.Turn {
	return &model.Turn{
		ID:        model.TurnID(d.ID),
		UserID:    d.UserID,
		SessionID: d.SessionID,
		Role:      types.TurnRole(d.Role),
		Content:   d.Content,
		Metadata:  d.Metadata,
		CreatedAt: d.CreatedAt,
		Seq:       d.Seq,
	}
}

type turnRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTurnRepository(client *firestore.Client) *turnRepository {
	return &turnRepository{client: client}
}

func (r *turnRepository) collection() *firestore.CollectionRef {
	name := "turns"
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_turns"
	}
	return r.client.Collection(name)
}

func (r *turnRepository) Append(ctx context.Context, turn *model.Turn) (*model.Turn, error) {
	created := *turn
	if created.ID == "" {
		created.ID = model.NewTurnID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	// wall-clock nanoseconds are enough to break CreatedAt ties
	created.Seq = time.Now().UTC().UnixNano()

	docRef := r.collection().Doc(string(created.ID))
	if _, err := docRef.Set(ctx, toTurnDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to append turn", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *turnRepository) listByUser(ctx context.Context, userID, sessionID string) ([]*model.Turn, error) {
	query := r.collection().Where("UserID", "==", userID)
	if sessionID != "" {
		query = query.Where("SessionID", "==", sessionID)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	turns := make([]*model.Turn, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate turns", goerr.V("userID", userID))
		}

		var d turnDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode turn", goerr.V("doc_id", docSnap.Ref.ID))
		}
		turns = append(turns, fromTurnDoc(&d))
	}

	sort.Slice(turns, func(i, j int) bool {
		if turns[i].CreatedAt.Equal(turns[j].CreatedAt) {
			return turns[i].Seq < turns[j].Seq
		}
		return turns[i].CreatedAt.Before(turns[j].CreatedAt)
	})

	return turns, nil
}

func (r *turnRepository) ListRecent(ctx context.Context, userID, sessionID string, limit int) ([]*model.Turn, error) {
	turns, err := r.listByUser(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns, nil
}

func (r *turnRepository) ListByUser(ctx context.Context, userID string) ([]*model.Turn, error) {
	return r.listByUser(ctx, userID, "")
}

func (r *turnRepository) Latest(ctx context.Context, userID string) (*model.Turn, error) {
	turns, err := r.listByUser(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	if len(turns) == 0 {
		return nil, nil
	}
	return turns[len(turns)-1], nil
}

func (r *turnRepository) DeleteSession(ctx context.Context, userID, sessionID string) (int, error) {
	iter := r.collection().
		Where("UserID", "==", userID).
		Where("SessionID", "==", sessionID).
		Documents(ctx)
	defer iter.Stop()

	refs := make([]*firestore.DocumentRef, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to iterate session turns",
				goerr.V("userID", userID), goerr.V("sessionID", sessionID))
		}
		refs = append(refs, docSnap.Ref)
	}

	if err := r.deleteRefs(ctx, refs); err != nil {
		return 0, err
	}
	return len(refs), nil
}

func (r *turnRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	iter := r.collection().Where("CreatedAt", "<", cutoff).Documents(ctx)
	defer iter.Stop()

	refs := make([]*firestore.DocumentRef, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to iterate expired turns")
		}
		refs = append(refs, docSnap.Ref)
	}

	if err := r.deleteRefs(ctx, refs); err != nil {
		return 0, err
	}
	return len(refs), nil
}

// deleteRefs removes documents with a BulkWriter, which handles batching
func (r *turnRepository) deleteRefs(ctx context.Context, refs []*firestore.DocumentRef) error {
	if len(refs) == 0 {
		return nil
	}

	bulkWriter := r.client.BulkWriter(ctx)
	defer bulkWriter.End()

	for _, ref := range refs {
		if _, err := bulkWriter.Delete(ref); err != nil {
			return goerr.Wrap(err, "failed to add delete to bulk writer", goerr.V("doc_id", ref.ID))
		}
	}

	bulkWriter.Flush()
	return nil
}
