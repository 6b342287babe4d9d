package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resume-lab/vitae/pkg/domain/interfaces"
)

type Firestore struct {
	client  *firestore.Client
	profile *profileRepository
	resume  *resumeRepository
	turn    *turnRepository
	change  *changeRepository
	version *versionRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.profile.collectionPrefix = prefix
		f.resume.collectionPrefix = prefix
		f.turn.collectionPrefix = prefix
		f.change.collectionPrefix = prefix
		f.version.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:  client,
		profile: newProfileRepository(client),
		resume:  newResumeRepository(client),
		turn:    newTurnRepository(client),
		change:  newChangeRepository(client),
		version: newVersionRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Profile() interfaces.ProfileRepository {
	return f.profile
}

func (f *Firestore) Resume() interfaces.ResumeRepository {
	return f.resume
}

func (f *Firestore) Turn() interfaces.TurnRepository {
	return f.turn
}

func (f *Firestore) Change() interfaces.ChangeRepository {
	return f.change
}

func (f *Firestore) Version() interfaces.VersionRepository {
	return f.version
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
