package service

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/ledger"
	"github.com/aussiebroadwan/certichain/internal/certichain/metadata"
	"github.com/aussiebroadwan/certichain/internal/certichain/metrics"
	"github.com/aussiebroadwan/certichain/internal/certichain/notify"
	"github.com/aussiebroadwan/certichain/internal/certichain/store"
	"github.com/aussiebroadwan/certichain/pkg/cryptox"
	"github.com/aussiebroadwan/certichain/pkg/idx"
	"github.com/aussiebroadwan/certichain/pkg/slogx"
)

// Stage names an issuance step. Steps run in declaration order and never
// go back.
type Stage string

const (
	StageValidateInput      Stage = "validate_input"
	StageResolveIdentities  Stage = "resolve_identities"
	StageCheckAuthorization Stage = "check_authorization"
	StagePublishMetadata    Stage = "publish_metadata"
	StageMintAsset          Stage = "mint_asset"
	StageCommitLocalRecord  Stage = "commit_local_record"
	StageNotify             Stage = "notify"
	StageDone               Stage = "done"
)

const (
	maxTitle = 200

	// commitTimeout bounds the local commit. It runs detached from the
	// request context once an asset is minted.
	commitTimeout = 10 * time.Second
)

type IssueRequest struct {
	Title           string
	Type            string
	RecipientWallet string
	IssuerWallet    string
	InstitutionID   string
	Metadata        domain.Metadata
	ExpiryDate      *time.Time
}

// IssuanceService runs the certificate issuance workflow. Publisher and
// Minter are called at most once per issuance past authorization; only the
// publisher retries internally.
type IssuanceService struct {
	Store      store.Store
	Publisher  metadata.Publisher
	Minter     ledger.Minter
	Sealer     *cryptox.Sealer
	Dispatcher notify.Dispatcher
	Metrics    *metrics.Metrics
	Now        func() time.Time
}

// Each stage consumes the previous stage's value, so a later step cannot run
// without the earlier ones having succeeded.
type (
	validatedIssue struct {
		req             IssueRequest
		typ             domain.CertificateType
		recipientWallet string
		issuerWallet    string
		issuedAt        time.Time
	}
	resolvedIssue struct {
		validatedIssue
		recipient domain.Identity
		issuer    domain.Identity
	}
	authorizedIssue struct {
		resolvedIssue
		institution domain.Institution
	}
	publishedIssue struct {
		authorizedIssue
		publication metadata.Publication
	}
	// mintedIssue is past the point of no return.
	mintedIssue struct {
		publishedIssue
		mint ledger.MintResult
	}
	committedIssue struct {
		mintedIssue
		cert domain.Certificate
	}
)

func (s *IssuanceService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Issue runs every stage in order and returns the recorded certificate.
// A failure before commit leaves no local state. A commit failure returns a
// *ReconciliationError with the minted anchors.
func (s *IssuanceService) Issue(ctx context.Context, req IssueRequest) (domain.Certificate, error) {
	start := time.Now()
	log := slogx.FromContext(ctx).With(slog.String("component", "issuance"))

	fail := func(stage Stage, err error) (domain.Certificate, error) {
		s.Metrics.IssuanceFailed(string(stage))
		if KindOf(err) != KindReconciliationRequired {
			log.Info("issuance stopped", slog.String("stage", string(stage)), slog.Any("err", err))
		}
		return domain.Certificate{}, err
	}

	v, err := s.validate(req)
	if err != nil {
		return fail(StageValidateInput, err)
	}
	log.Debug("stage passed", slog.String("stage", string(StageValidateInput)))

	r, err := s.resolve(ctx, v)
	if err != nil {
		return fail(StageResolveIdentities, err)
	}
	log.Debug("stage passed", slog.String("stage", string(StageResolveIdentities)))

	a, err := s.authorize(ctx, r)
	if err != nil {
		return fail(StageCheckAuthorization, err)
	}
	log.Debug("stage passed", slog.String("stage", string(StageCheckAuthorization)))

	p, err := s.publish(ctx, a)
	if err != nil {
		return fail(StagePublishMetadata, err)
	}
	log.Debug("stage passed",
		slog.String("stage", string(StagePublishMetadata)),
		slog.String("content_address", p.publication.ContentAddress),
	)

	m, err := s.mint(ctx, p)
	if err != nil {
		log.Warn("metadata document orphaned by failed mint", slog.String("content_address", p.publication.ContentAddress))
		return fail(StageMintAsset, err)
	}
	log.Info("asset minted",
		slog.String("mint_address", m.mint.MintAddress),
		slog.String("transaction_id", m.mint.TransactionID),
		slog.String("content_address", p.publication.ContentAddress),
	)

	c, err := s.commit(ctx, m)
	if err != nil {
		s.Metrics.ReconciliationRequired()
		log.Error("certificate commit failed after mint",
			slog.String("alert", "reconciliation_required"),
			slog.String("mint_address", m.mint.MintAddress),
			slog.String("transaction_id", m.mint.TransactionID),
			slog.String("content_address", p.publication.ContentAddress),
			slog.Any("err", err),
		)
		return fail(StageCommitLocalRecord, err)
	}

	s.notify(ctx, c)

	s.Metrics.IssuanceSucceeded(time.Since(start))
	log.Info("certificate issued",
		slog.String("certificate_id", c.cert.ID),
		slog.String("mint_address", c.cert.MintAddress),
	)
	return c.cert, nil
}

func (s *IssuanceService) validate(req IssueRequest) (validatedIssue, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.InstitutionID = strings.TrimSpace(req.InstitutionID)

	switch {
	case req.Title == "":
		return validatedIssue{}, invalid("title is required")
	case len(req.Title) > maxTitle:
		return validatedIssue{}, invalid("title exceeds %d characters", maxTitle)
	case req.InstitutionID == "":
		return validatedIssue{}, invalid("institutionId is required")
	case req.RecipientWallet == "":
		return validatedIssue{}, invalid("recipientWallet is required")
	case req.IssuerWallet == "":
		return validatedIssue{}, invalid("issuerWallet is required")
	}

	typ, err := domain.ParseCertificateType(req.Type)
	if err != nil {
		return validatedIssue{}, invalid("%v", err)
	}

	recipient, err := parseWallet(req.RecipientWallet)
	if err != nil {
		return validatedIssue{}, err
	}
	issuer, err := parseWallet(req.IssuerWallet)
	if err != nil {
		return validatedIssue{}, err
	}

	if err := metadata.Validate(req.Metadata); err != nil {
		return validatedIssue{}, newError(KindInvalidRequest, err, "%v", err)
	}

	now := s.now()
	if req.ExpiryDate != nil {
		if !req.ExpiryDate.After(now) {
			return validatedIssue{}, invalid("expiryDate must be in the future")
		}
		exp := req.ExpiryDate.UTC()
		req.ExpiryDate = &exp
	}

	return validatedIssue{req: req, typ: typ, recipientWallet: recipient, issuerWallet: issuer, issuedAt: now}, nil
}

func (s *IssuanceService) resolve(ctx context.Context, v validatedIssue) (resolvedIssue, error) {
	recipient, err := resolveIdentity(ctx, s.Store, v.recipientWallet, ErrRecipientNotFound)
	if err != nil {
		return resolvedIssue{}, err
	}
	issuer, err := resolveIdentity(ctx, s.Store, v.issuerWallet, ErrIssuerNotFound)
	if err != nil {
		return resolvedIssue{}, err
	}
	return resolvedIssue{validatedIssue: v, recipient: recipient, issuer: issuer}, nil
}

func (s *IssuanceService) authorize(ctx context.Context, r resolvedIssue) (authorizedIssue, error) {
	if r.issuer.Role != domain.RoleInstitution {
		return authorizedIssue{}, newError(KindNotAuthorized, nil, "issuer %s is not an institution", r.issuer.WalletAddress)
	}
	if r.issuer.InstitutionID != r.req.InstitutionID {
		return authorizedIssue{}, newError(KindNotAuthorized, nil, "issuer %s does not administer institution %s",
			r.issuer.WalletAddress, r.req.InstitutionID)
	}

	inst, err := s.Store.Institutions().GetInstitutionByID(ctx, r.req.InstitutionID)
	if errors.Is(err, store.ErrNotFound) {
		return authorizedIssue{}, newError(KindNotFound, ErrUnknownInstitution, "unknown institution %s", r.req.InstitutionID)
	}
	if err != nil {
		return authorizedIssue{}, err
	}
	return authorizedIssue{resolvedIssue: r, institution: inst}, nil
}

func (s *IssuanceService) publish(ctx context.Context, a authorizedIssue) (publishedIssue, error) {
	doc := metadata.Document{
		Name:            a.req.Title,
		Type:            string(a.typ),
		Description:     a.req.Metadata.Description,
		Recipient:       a.recipient.WalletAddress,
		Issuer:          a.issuer.WalletAddress,
		InstitutionID:   a.institution.ID,
		InstitutionName: a.institution.Name,
		IssuedAt:        a.issuedAt,
		ExpiryDate:      a.req.ExpiryDate,
		Attributes:      a.req.Metadata.Attributes,
		Properties:      a.req.Metadata.Properties,
	}

	if a.req.Metadata.HasPrivate() {
		if s.Sealer == nil {
			return publishedIssue{}, errors.New("issuance: private attributes need a sealing key")
		}
		sealed, err := doc.Seal(s.Sealer)
		if err != nil {
			return publishedIssue{}, err
		}
		doc = sealed
	}

	pub, err := s.Publisher.Publish(ctx, doc)
	if err != nil {
		return publishedIssue{}, newError(KindUpstreamUnavailable, err, "metadata publish failed: %v", err)
	}
	return publishedIssue{authorizedIssue: a, publication: pub}, nil
}

func (s *IssuanceService) mint(ctx context.Context, p publishedIssue) (mintedIssue, error) {
	res, err := s.Minter.Mint(ctx, ledger.MintRequest{
		Owner:          p.recipient.WalletAddress,
		Title:          p.req.Title,
		ContentAddress: p.publication.ContentAddress,
		ContentURI:     p.publication.URI,
	})
	if err != nil {
		return mintedIssue{}, newError(KindUpstreamUnavailable, err, "ledger mint failed: %v", err)
	}
	return mintedIssue{publishedIssue: p, mint: res}, nil
}

// commit writes the certificate row in one transaction. The recipient's and
// issuer's certificate collections are the rows referencing them, so the
// single insert updates both.
func (s *IssuanceService) commit(ctx context.Context, m mintedIssue) (committedIssue, error) {
	md := m.req.Metadata
	md.Attributes = append([]domain.Attribute(nil), md.Attributes...)
	md.Properties = maps.Clone(md.Properties)
	md.ContentAddress = m.publication.ContentAddress
	md.ContentURI = m.publication.URI
	md.TransactionID = m.mint.TransactionID
	md.Network = m.mint.Network

	cert := domain.Certificate{
		ID:            idx.New().String(),
		Title:         m.req.Title,
		Type:          m.typ,
		RecipientID:   m.recipient.ID,
		IssuerID:      m.issuer.ID,
		InstitutionID: m.institution.ID,
		Metadata:      md,
		MintAddress:   m.mint.MintAddress,
		ExpiryDate:    m.req.ExpiryDate,
		CreatedAt:     m.issuedAt,
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), commitTimeout)
	defer cancel()

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Certificates().CreateCertificate(ctx, cert)
	})
	if err != nil {
		return committedIssue{}, &ReconciliationError{
			MintAddress:    m.mint.MintAddress,
			TransactionID:  m.mint.TransactionID,
			ContentAddress: m.publication.ContentAddress,
			Err:            err,
		}
	}

	cert.Recipient = party(m.recipient)
	cert.Issuer = party(m.issuer)
	cert.InstitutionName = m.institution.Name
	return committedIssue{mintedIssue: m, cert: cert}, nil
}

// notify is best-effort: failures are logged and never change the result.
func (s *IssuanceService) notify(ctx context.Context, c committedIssue) {
	ctx = context.WithoutCancel(ctx)
	log := slogx.FromContext(ctx)

	payload := map[string]string{
		"certificateId": c.cert.ID,
		"title":         c.cert.Title,
		"institution":   c.institution.Name,
		"mintAddress":   c.cert.MintAddress,
	}

	err := s.Store.Notifications().CreateNotification(ctx, domain.Notification{
		ID:          idx.New().String(),
		RecipientID: c.recipient.ID,
		Kind:        domain.NotificationCertificateIssued,
		Payload:     payload,
		CreatedAt:   s.now(),
	})
	if err != nil {
		log.Warn("failed to record issuance notification", slog.String("certificate_id", c.cert.ID), slog.Any("err", err))
	}

	if s.Dispatcher == nil || c.recipient.Email == "" {
		return
	}
	err = s.Dispatcher.Dispatch(ctx, notify.Message{
		ID:        idx.New().String(),
		Kind:      notify.KindCertificateIssued,
		To:        c.recipient.Email,
		Subject:   "You received a certificate from " + c.institution.Name,
		Data:      payload,
		CreatedAt: s.now(),
	})
	if err != nil {
		log.Warn("failed to dispatch issuance email", slog.String("certificate_id", c.cert.ID), slog.Any("err", err))
	}
}

func party(id domain.Identity) domain.Party {
	return domain.Party{ID: id.ID, WalletAddress: id.WalletAddress, DisplayName: id.DisplayName}
}
