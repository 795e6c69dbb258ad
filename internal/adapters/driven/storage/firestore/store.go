// Package firestore provides a Cloud Firestore remote store for inspection
// reports and user accounts.
//
// Reports live in one collection keyed by primary id, with the short key and
// owner stored as queryable fields. gRPC status codes are mapped onto the
// domain's remote error kinds: PermissionDenied and Unauthenticated become
// domain.ErrPermissionDenied, FailedPrecondition (missing database or index)
// becomes domain.ErrSchemaMissing.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/custodia-labs/walkthrough/internal/core/domain"
	"github.com/custodia-labs/walkthrough/internal/core/ports/driven"
	"github.com/custodia-labs/walkthrough/internal/logger"
)

// DefaultCollection holds reports when no collection is configured.
const DefaultCollection = "inspection_reports"

// Config selects the Firestore project and collections.
type Config struct {
	// ProjectID is the Google Cloud project.
	ProjectID string

	// CredentialsFile is a service account JSON file.
	// When empty, application default credentials are used.
	CredentialsFile string

	// Collection holds reports. Defaults to DefaultCollection.
	Collection string

	// UsersCollection holds accounts. Defaults to "<Collection>_users".
	UsersCollection string
}

// reportDoc is the stored shape of one report.
type reportDoc struct {
	ID        string    `firestore:"id"`
	ShortID   string    `firestore:"short_id"`
	UserID    string    `firestore:"user_id"`
	Data      string    `firestore:"data"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

// userDoc is the stored shape of one account.
type userDoc struct {
	ID           string    `firestore:"id"`
	Email        string    `firestore:"email"`
	EmailKey     string    `firestore:"email_key"`
	PasswordHash string    `firestore:"password_hash"`
	CreatedAt    time.Time `firestore:"created_at"`
}

// Store wraps a Firestore client.
type Store struct {
	client *firestore.Client
	cfg    Config
}

// NewStore initialises a Firebase app and its Firestore client.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("%w: firestore project id is required", domain.ErrInvalidInput)
	}
	cfg = cfg.withDefaults()

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialising firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialising firestore client: %w", err)
	}

	logger.Debug("connected to firestore project %s (collection %s)", cfg.ProjectID, cfg.Collection)
	return &Store{client: client, cfg: cfg}, nil
}

func (c Config) withDefaults() Config {
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.UsersCollection == "" {
		c.UsersCollection = c.Collection + "_users"
	}
	return c
}

// Close closes the Firestore client.
func (s *Store) Close() error {
	return s.client.Close()
}

// ReportStore returns a ReportStore interface backed by this store.
func (s *Store) ReportStore() driven.ReportStore {
	return &reportStore{store: s}
}

// UserStore returns a UserStore interface backed by this store.
func (s *Store) UserStore() driven.UserStore {
	return &userStore{store: s}
}

// ==================== Report Store ====================

type reportStore struct {
	store *Store
}

var _ driven.ReportStore = (*reportStore)(nil)

func (r *reportStore) Name() string {
	return "firestore"
}

func (r *reportStore) collection() *firestore.CollectionRef {
	return r.store.client.Collection(r.store.cfg.Collection)
}

// Save upserts a report document. The stored creation time survives updates.
func (r *reportStore) Save(ctx context.Context, record *domain.ReportRecord) (*domain.ReportRecord, error) {
	if record == nil || record.ID == "" {
		return nil, fmt.Errorf("%w: report id is required", domain.ErrInvalidInput)
	}

	doc := toReportDoc(record, time.Now().UTC())
	ref := r.collection().Doc(record.ID)

	existing, err := ref.Get(ctx)
	switch {
	case err == nil:
		var prior reportDoc
		if err := existing.DataTo(&prior); err == nil && !prior.CreatedAt.IsZero() {
			doc.CreatedAt = prior.CreatedAt
		}
	case status.Code(err) != codes.NotFound:
		return nil, classifyError("reading report", err)
	}

	if _, err := ref.Set(ctx, doc); err != nil {
		return nil, classifyError("saving report", err)
	}
	return fromReportDoc(doc), nil
}

// Get retrieves a report by primary key.
func (r *reportStore) Get(ctx context.Context, id string) (*domain.ReportRecord, error) {
	snap, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		return nil, classifyError("getting report", err)
	}
	var doc reportDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decoding report %s: %w", id, err)
	}
	return fromReportDoc(doc), nil
}

// GetByShortID retrieves a report by its short key.
func (r *reportStore) GetByShortID(ctx context.Context, shortID string) (*domain.ReportRecord, error) {
	if shortID == "" {
		return nil, domain.ErrNotFound
	}
	docs, err := r.query(ctx, r.collection().Where("short_id", "==", shortID).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrNotFound
	}
	return &docs[0], nil
}

// Delete removes a report document. Firestore treats a missing document as deleted.
func (r *reportStore) Delete(ctx context.Context, id string) error {
	if _, err := r.collection().Doc(id).Delete(ctx); err != nil {
		return classifyError("deleting report", err)
	}
	return nil
}

// List returns reports newest first, restricted to userID when set.
// Ordering happens client side so no composite index is required.
func (r *reportStore) List(ctx context.Context, userID string) ([]domain.ReportRecord, error) {
	q := r.collection().Query
	if userID != "" {
		q = q.Where("user_id", "==", userID)
	}
	docs, err := r.query(ctx, q)
	if err != nil {
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].CreatedAt.After(docs[j].CreatedAt) })
	return docs, nil
}

func (r *reportStore) query(ctx context.Context, q firestore.Query) ([]domain.ReportRecord, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []domain.ReportRecord
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classifyError("querying reports", err)
		}
		var doc reportDoc
		if err := snap.DataTo(&doc); err != nil {
			logger.Warn("skipping unreadable report %s: %v", snap.Ref.ID, err)
			continue
		}
		out = append(out, *fromReportDoc(doc))
	}
	return out, nil
}

// ==================== User Store ====================

type userStore struct {
	store *Store
}

var _ driven.UserStore = (*userStore)(nil)

func (u *userStore) collection() *firestore.CollectionRef {
	return u.store.client.Collection(u.store.cfg.UsersCollection)
}

// Create registers an account. The document id is the lowercased email so
// Create fails atomically on duplicates.
func (u *userStore) Create(ctx context.Context, creds domain.UserCredentials) error {
	if creds.ID == "" || creds.Email == "" {
		return fmt.Errorf("%w: user id and email are required", domain.ErrInvalidInput)
	}
	doc := userDoc{
		ID:           creds.ID,
		Email:        creds.Email,
		EmailKey:     emailKey(creds.Email),
		PasswordHash: creds.PasswordHash,
		CreatedAt:    creds.CreatedAt.UTC(),
	}
	if creds.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	if _, err := u.collection().Doc(doc.EmailKey).Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("%w: email %s", domain.ErrAlreadyExists, creds.Email)
		}
		return classifyError("creating user", err)
	}
	return nil
}

// GetByEmail retrieves an account by email, ignoring case.
func (u *userStore) GetByEmail(ctx context.Context, email string) (*domain.UserCredentials, error) {
	snap, err := u.collection().Doc(emailKey(email)).Get(ctx)
	if err != nil {
		return nil, classifyError("getting user", err)
	}
	return decodeUser(snap)
}

// Get retrieves an account by id.
func (u *userStore) Get(ctx context.Context, id string) (*domain.User, error) {
	iter := u.collection().Where("id", "==", id).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, classifyError("getting user", err)
	}
	creds, err := decodeUser(snap)
	if err != nil {
		return nil, err
	}
	return &creds.User, nil
}

func decodeUser(snap *firestore.DocumentSnapshot) (*domain.UserCredentials, error) {
	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("decoding user %s: %w", snap.Ref.ID, err)
	}
	return &domain.UserCredentials{
		User:         domain.User{ID: doc.ID, Email: doc.Email, CreatedAt: doc.CreatedAt},
		PasswordHash: doc.PasswordHash,
	}, nil
}

// ==================== Helper Functions ====================

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toReportDoc(record *domain.ReportRecord, now time.Time) reportDoc {
	createdAt := record.CreatedAt.UTC()
	if record.CreatedAt.IsZero() {
		createdAt = now
	}
	return reportDoc{
		ID:        record.ID,
		ShortID:   record.ShortID,
		UserID:    record.UserID,
		Data:      string(record.Data),
		CreatedAt: createdAt,
		UpdatedAt: now,
	}
}

func fromReportDoc(doc reportDoc) *domain.ReportRecord {
	return &domain.ReportRecord{
		ID:        doc.ID,
		ShortID:   doc.ShortID,
		UserID:    doc.UserID,
		Data:      []byte(doc.Data),
		CreatedAt: doc.CreatedAt,
	}
}

// classifyError maps gRPC status codes onto the domain's remote error kinds.
func classifyError(op string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case codes.PermissionDenied, codes.Unauthenticated:
		return fmt.Errorf("%s: %w: %v", op, domain.ErrPermissionDenied, err)
	case codes.FailedPrecondition:
		return fmt.Errorf("%s: %w: %v", op, domain.ErrSchemaMissing, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
