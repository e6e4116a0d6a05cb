package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/ledger"
	"github.com/aussiebroadwan/certichain/internal/certichain/metadata"
	"github.com/aussiebroadwan/certichain/internal/certichain/notify"
	"github.com/aussiebroadwan/certichain/internal/certichain/service"
	"github.com/aussiebroadwan/certichain/internal/certichain/store"
	"github.com/aussiebroadwan/certichain/internal/certichain/store/drivers/sqlite"
	"github.com/aussiebroadwan/certichain/pkg/cryptox"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// callLog records the order of external calls across fakes.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(c string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, c)
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakePublisher struct {
	log  *callLog
	err  error
	mem  *metadata.MemoryPublisher
	docs []metadata.Document
}

func (p *fakePublisher) Publish(ctx context.Context, doc metadata.Document) (metadata.Publication, error) {
	p.log.add("publish")
	p.docs = append(p.docs, doc)
	if p.err != nil {
		return metadata.Publication{}, p.err
	}
	return p.mem.Publish(ctx, doc)
}

func (p *fakePublisher) Ping(context.Context) error { return nil }

type fakeMinter struct {
	log   *callLog
	err   error
	fixed *ledger.MintResult // returned instead of a fresh mint when set
	dev   *ledger.DevMinter
	reqs  []ledger.MintRequest
}

func (m *fakeMinter) Mint(ctx context.Context, req ledger.MintRequest) (ledger.MintResult, error) {
	m.log.add("mint")
	m.reqs = append(m.reqs, req)
	if m.err != nil {
		return ledger.MintResult{}, m.err
	}
	if m.fixed != nil {
		return *m.fixed, nil
	}
	return m.dev.Mint(ctx, req)
}

func (m *fakeMinter) Ping(context.Context) error { return nil }

type fakeDispatcher struct {
	log  *callLog
	err  error
	sent []notify.Message
}

func (d *fakeDispatcher) Dispatch(_ context.Context, msg notify.Message) error {
	d.log.add("dispatch")
	d.sent = append(d.sent, msg)
	return d.err
}

func (d *fakeDispatcher) Close() error { return nil }

type env struct {
	store      store.Store
	log        *callLog
	publisher  *fakePublisher
	minter     *fakeMinter
	dispatcher *fakeDispatcher
	sealer     *cryptox.Sealer
	now        time.Time

	issuance *service.IssuanceService
	ids      *service.IdentityService

	inst      domain.Institution
	issuer    domain.Identity
	recipient domain.Identity
}

func (e *env) clock() time.Time { return e.now }

func newStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "certichain.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newWallet(t *testing.T) string {
	t.Helper()
	k, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return k.PublicKey().String()
}

// newEnv seeds institution "Stanford" with an administrator and one student.
func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	log := &callLog{}
	sealer, err := cryptox.NewSealer([]byte("test master key"))
	require.NoError(t, err)

	e := &env{
		store:      newStore(t),
		log:        log,
		publisher:  &fakePublisher{log: log, mem: metadata.NewMemoryPublisher("")},
		minter:     &fakeMinter{log: log, dev: ledger.NewDevMinter()},
		dispatcher: &fakeDispatcher{log: log},
		sealer:     sealer,
		now:        t0,
	}

	e.ids = &service.IdentityService{Store: e.store, Now: e.clock}
	e.issuance = &service.IssuanceService{
		Store:      e.store,
		Publisher:  e.publisher,
		Minter:     e.minter,
		Sealer:     sealer,
		Dispatcher: e.dispatcher,
		Now:        e.clock,
	}

	insts := &service.InstitutionService{Store: e.store, Now: e.clock}
	issuerWallet := newWallet(t)
	e.inst, err = insts.Create(ctx, issuerWallet, "Stanford", "https://stanford.edu")
	require.NoError(t, err)

	e.issuer, err = e.ids.Upsert(ctx, service.UpsertIdentityInput{
		WalletAddress: issuerWallet,
		Role:          "INSTITUTION",
		DisplayName:   "Registrar",
		InstitutionID: e.inst.ID,
	})
	require.NoError(t, err)

	e.recipient, err = e.ids.Upsert(ctx, service.UpsertIdentityInput{
		WalletAddress: newWallet(t),
		DisplayName:   "Ada",
		Email:         "ada@example.com",
	})
	require.NoError(t, err)
	return e
}

func (e *env) degreeRequest() service.IssueRequest {
	return service.IssueRequest{
		Title:           "B.Sc. Computer Science",
		Type:            "DEGREE",
		RecipientWallet: e.recipient.WalletAddress,
		IssuerWallet:    e.issuer.WalletAddress,
		InstitutionID:   e.inst.ID,
		Metadata: domain.Metadata{
			Description: "Awarded with distinction",
			Attributes: []domain.Attribute{
				{Key: "major", Value: "Systems"},
				{Key: "gpa", Value: "3.9", Encrypted: true},
			},
		},
	}
}

func (e *env) countCertificates(t *testing.T) int {
	t.Helper()
	_, total, err := e.store.Certificates().ListByRecipient(context.Background(), e.recipient.ID, store.Page{Limit: 100})
	require.NoError(t, err)
	return total
}

func requireKind(t *testing.T, err error, kind service.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, service.KindOf(err), "err: %v", err)
	require.True(t, errors.Is(err, kind))
}
