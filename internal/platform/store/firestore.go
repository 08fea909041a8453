package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

const (
	defaultDialTimeout = 10 * time.Second
	envEmulatorHost    = "FIRESTORE_EMULATOR_HOST"
	envGoogleProjectID = "GOOGLE_CLOUD_PROJECT"
)

// FirestoreConfig carries the settings needed to dial Firestore.
type FirestoreConfig struct {
	ProjectID    string
	EmulatorHost string
	DialTimeout  time.Duration
}

// FirestoreStore is a DocumentStore backed by Cloud Firestore. The client is
// created lazily on first use so the process can start before credentials
// are reachable.
type FirestoreStore struct {
	cfg        FirestoreConfig
	clientOpts []option.ClientOption

	mu     sync.Mutex
	client *firestore.Client
}

// NewFirestoreStore constructs a FirestoreStore from cfg.
func NewFirestoreStore(cfg FirestoreConfig, opts ...option.ClientOption) *FirestoreStore {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	return &FirestoreStore{cfg: cfg, clientOpts: opts}
}

// Client returns the lazily initialised Firestore client.
func (s *FirestoreStore) Client(ctx context.Context) (*firestore.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}

	projectID := strings.TrimSpace(s.cfg.ProjectID)
	if projectID == "" {
		projectID = strings.TrimSpace(os.Getenv(envGoogleProjectID))
	}
	if projectID == "" {
		return nil, errors.New("firestore: project id is required")
	}

	dialCtx, cancel := context.WithTimeout(ctx, s.cfg.DialTimeout)
	defer cancel()

	opts := append([]option.ClientOption(nil), s.clientOpts...)
	if host := s.emulatorHost(); host != "" {
		if os.Getenv(envEmulatorHost) == "" {
			_ = os.Setenv(envEmulatorHost, host)
		}
		opts = append(opts,
			option.WithoutAuthentication(),
			option.WithEndpoint(host),
			option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	}

	client, err := firestore.NewClient(dialCtx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: create client: %w", err)
	}
	s.client = client
	return client, nil
}

func (s *FirestoreStore) emulatorHost() string {
	if trimmed := strings.TrimSpace(s.cfg.EmulatorHost); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(os.Getenv(envEmulatorHost))
}

// Close releases the underlying client, if one was created.
func (s *FirestoreStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

// Get implements DocumentStore.
func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (Document, error) {
	client, err := s.Client(ctx)
	if err != nil {
		return Document{}, err
	}
	snap, err := client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return Document{}, wrapFirestoreError(fmt.Sprintf("get %s/%s", collection, id), err)
	}
	return Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

// Put implements DocumentStore.
func (s *FirestoreStore) Put(ctx context.Context, collection, id string, data map[string]any) error {
	client, err := s.Client(ctx)
	if err != nil {
		return err
	}
	if _, err := client.Collection(collection).Doc(id).Set(ctx, data); err != nil {
		return wrapFirestoreError(fmt.Sprintf("put %s/%s", collection, id), err)
	}
	return nil
}

// Delete implements DocumentStore. The existence probe and delete run in one
// transaction so the reported flag is accurate under contention.
func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) (bool, error) {
	client, err := s.Client(ctx)
	if err != nil {
		return false, err
	}
	existed := false
	err = client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := client.Collection(collection).Doc(id)
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return nil
		}
		if err != nil {
			return err
		}
		existed = snap.Exists()
		if !existed {
			return nil
		}
		return tx.Delete(ref)
	})
	if err != nil {
		return false, wrapFirestoreError(fmt.Sprintf("delete %s/%s", collection, id), err)
	}
	return existed, nil
}

// ListAll implements DocumentStore.
func (s *FirestoreStore) ListAll(ctx context.Context, collection string) ([]Document, error) {
	client, err := s.Client(ctx)
	if err != nil {
		return nil, err
	}
	iter := client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, wrapFirestoreError(fmt.Sprintf("list %s", collection), err)
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

// RunTransaction implements DocumentStore via a native Firestore transaction.
func (s *FirestoreStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	client, err := s.Client(ctx)
	if err != nil {
		return err
	}
	err = client.RunTransaction(ctx, func(ctx context.Context, ftx *firestore.Transaction) error {
		return fn(ctx, &firestoreTx{ctx: ctx, client: client, tx: ftx})
	})
	return wrapFirestoreError("transaction", err)
}

type firestoreTx struct {
	ctx    context.Context
	client *firestore.Client
	tx     *firestore.Transaction
}

func (t *firestoreTx) Get(collection, id string) (Document, error) {
	snap, err := t.tx.Get(t.client.Collection(collection).Doc(id))
	if err != nil {
		return Document{}, wrapFirestoreError(fmt.Sprintf("get %s/%s", collection, id), err)
	}
	return Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (t *firestoreTx) ListAll(collection string) ([]Document, error) {
	iter := t.tx.Documents(t.client.Collection(collection))
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, wrapFirestoreError(fmt.Sprintf("list %s", collection), err)
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (t *firestoreTx) Put(collection, id string, data map[string]any) error {
	if err := t.tx.Set(t.client.Collection(collection).Doc(id), data); err != nil {
		return wrapFirestoreError(fmt.Sprintf("put %s/%s", collection, id), err)
	}
	return nil
}

func (t *firestoreTx) Delete(collection, id string) error {
	if err := t.tx.Delete(t.client.Collection(collection).Doc(id)); err != nil {
		return wrapFirestoreError(fmt.Sprintf("delete %s/%s", collection, id), err)
	}
	return nil
}

// wrapFirestoreError maps gRPC status codes onto the store error taxonomy.
// Context cancellations pass through untouched.
func wrapFirestoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	switch status.Code(err) {
	case codes.Canceled:
		return context.Canceled
	case codes.NotFound:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case codes.Unavailable, codes.ResourceExhausted, codes.Internal, codes.DeadlineExceeded:
		return Unavailable(op, err)
	}
	// Unknown codes include errors surfaced from transaction callbacks;
	// those carry their own semantics and must pass through intact.
	return err
}
