package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/service"
	"github.com/stretchr/testify/require"
)

func TestIdentity_Upsert(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	wallet := newWallet(t)

	created, err := e.ids.Upsert(ctx, service.UpsertIdentityInput{WalletAddress: wallet, DisplayName: "Grace"})
	require.NoError(t, err)
	require.Equal(t, domain.RoleStudent, created.Role)
	require.Empty(t, created.InstitutionID)

	updated, err := e.ids.Upsert(ctx, service.UpsertIdentityInput{WalletAddress: wallet, Email: "grace@example.com"})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "Grace", updated.DisplayName, "empty fields keep stored values")
	require.Equal(t, "grace@example.com", updated.Email)

	resolved, err := e.ids.Resolve(ctx, wallet)
	require.NoError(t, err)
	require.Equal(t, updated.Email, resolved.Email)

	byEmail, err := e.ids.FindByEmail(ctx, "GRACE@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)
}

func TestIdentity_InstitutionRole(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	wallet := newWallet(t)

	_, err := e.ids.Upsert(ctx, service.UpsertIdentityInput{WalletAddress: wallet, Role: "INSTITUTION", InstitutionID: "nope"})
	requireKind(t, err, service.KindNotFound)
	require.ErrorIs(t, err, service.ErrUnknownInstitution)

	_, err = e.ids.Upsert(ctx, service.UpsertIdentityInput{WalletAddress: wallet, Role: "INSTITUTION"})
	requireKind(t, err, service.KindInvalidRequest)

	_, err = e.ids.Resolve(ctx, wallet)
	requireKind(t, err, service.KindNotFound)

	// Joining an institution that has administrators needs one of them.
	_, err = e.ids.Upsert(ctx, service.UpsertIdentityInput{WalletAddress: wallet, Role: "INSTITUTION", InstitutionID: e.inst.ID})
	requireKind(t, err, service.KindNotAuthorized)
	require.ErrorIs(t, err, service.ErrNotAdministrator)

	_, err = e.ids.Resolve(ctx, wallet)
	requireKind(t, err, service.KindNotFound)

	admin, err := e.ids.Upsert(ctx, service.UpsertIdentityInput{
		Actor:         e.issuer.WalletAddress,
		WalletAddress: wallet,
		Role:          "institution",
		InstitutionID: e.inst.ID,
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleInstitution, admin.Role)

	inst, err := (&service.InstitutionService{Store: e.store}).Get(ctx, e.inst.ID)
	require.NoError(t, err)
	require.Len(t, inst.Administrators, 2)

	// Leaving the role drops the institution binding.
	employer, err := e.ids.Upsert(ctx, service.UpsertIdentityInput{WalletAddress: wallet, Role: "EMPLOYER", InstitutionID: e.inst.ID})
	require.NoError(t, err)
	require.Empty(t, employer.InstitutionID)

	inst, err = (&service.InstitutionService{Store: e.store}).Get(ctx, e.inst.ID)
	require.NoError(t, err)
	require.Len(t, inst.Administrators, 1)
	require.Equal(t, e.issuer.ID, inst.Administrators[0].ID)
}

func TestIdentity_StrangerCannotIssueForInstitution(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	stranger := newWallet(t)

	_, err := e.ids.Upsert(ctx, service.UpsertIdentityInput{WalletAddress: stranger, Role: "INSTITUTION", InstitutionID: e.inst.ID})
	requireKind(t, err, service.KindNotAuthorized)

	// Without the role the stranger cannot pass authorization either.
	_, err = e.ids.UpsertStudent(ctx, stranger, "Mallory", "")
	require.NoError(t, err)

	req := e.degreeRequest()
	req.IssuerWallet = stranger
	_, err = e.issuance.Issue(ctx, req)
	requireKind(t, err, service.KindNotAuthorized)
	require.Empty(t, e.log.all())
}

func TestIdentity_OtherWalletNeedsAdministrator(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	// Students may not touch another wallet at all.
	_, err := e.ids.Upsert(ctx, service.UpsertIdentityInput{
		Actor:         e.recipient.WalletAddress,
		WalletAddress: newWallet(t),
		DisplayName:   "Eve",
	})
	requireKind(t, err, service.KindNotAuthorized)

	// Administrators may enroll, but not edit the profile of, another wallet.
	_, err = e.ids.Upsert(ctx, service.UpsertIdentityInput{
		Actor:         e.issuer.WalletAddress,
		WalletAddress: e.recipient.WalletAddress,
		Role:          "INSTITUTION",
		DisplayName:   "Renamed",
		InstitutionID: e.inst.ID,
	})
	requireKind(t, err, service.KindNotAuthorized)

	_, err = e.ids.Upsert(ctx, service.UpsertIdentityInput{
		Actor:         e.recipient.WalletAddress,
		WalletAddress: newWallet(t),
		Role:          "INSTITUTION",
		InstitutionID: e.inst.ID,
	})
	requireKind(t, err, service.KindNotAuthorized)
	require.ErrorIs(t, err, service.ErrNotAdministrator)
}

func TestIdentity_Errors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.ids.Resolve(ctx, "I1")
	requireKind(t, err, service.KindInvalidRequest)
	require.ErrorIs(t, err, service.ErrInvalidAddress)

	_, err = e.ids.Upsert(ctx, service.UpsertIdentityInput{WalletAddress: newWallet(t), Role: "ADMIN"})
	requireKind(t, err, service.KindInvalidRequest)

	_, err = e.ids.Upsert(ctx, service.UpsertIdentityInput{WalletAddress: newWallet(t), Email: "ada@example.com"})
	requireKind(t, err, service.KindInvalidRequest)
	require.ErrorIs(t, err, service.ErrEmailTaken)

	_, err = e.ids.FindByEmail(ctx, "nobody@example.com")
	requireKind(t, err, service.KindNotFound)
}

func TestIdentity_UpdateProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	name, email := "Ada Lovelace", ""
	got, err := e.ids.UpdateProfile(ctx, e.recipient.WalletAddress, &name, &email)
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", got.DisplayName)
	require.Empty(t, got.Email)

	_, err = e.ids.UpdateProfile(ctx, newWallet(t), &name, nil)
	requireKind(t, err, service.KindNotFound)
}

func TestIdentity_SearchRecipients(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.ids.UpsertStudent(ctx, newWallet(t), "Alan Turing", "alan@example.com")
	require.NoError(t, err)

	found, err := e.ids.SearchRecipients(ctx, "ada@", "", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, e.recipient.ID, found[0].ID)

	// Only students with a certificate from the institution.
	found, err = e.ids.SearchRecipients(ctx, "", e.inst.ID, 10)
	require.NoError(t, err)
	require.Empty(t, found)

	_, err = e.issuance.Issue(ctx, e.degreeRequest())
	require.NoError(t, err)

	found, err = e.ids.SearchRecipients(ctx, "", e.inst.ID, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestInstitution_CreateAndSearch(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	insts := &service.InstitutionService{Store: e.store}

	founder := newWallet(t)

	_, err := insts.Create(ctx, founder, " ", "")
	requireKind(t, err, service.KindInvalidRequest)
	_, err = insts.Create(ctx, founder, "Oxford", "ftp://ox.ac.uk")
	requireKind(t, err, service.KindInvalidRequest)
	_, err = insts.Create(ctx, "bad", "Oxford", "")
	requireKind(t, err, service.KindInvalidRequest)

	oxford, err := insts.Create(ctx, founder, "Oxford", "https://ox.ac.uk")
	require.NoError(t, err)
	require.Len(t, oxford.Administrators, 1)
	require.Equal(t, founder, oxford.Administrators[0].WalletAddress)

	founderID, err := e.ids.Resolve(ctx, founder)
	require.NoError(t, err)
	require.Equal(t, domain.RoleInstitution, founderID.Role)
	require.Equal(t, oxford.ID, founderID.InstitutionID)

	// One institution per administrator.
	_, err = insts.Create(ctx, founder, "Cambridge", "")
	requireKind(t, err, service.KindInvalidRequest)

	// An existing student becomes the administrator of what they create.
	mit, err := insts.Create(ctx, e.recipient.WalletAddress, "MIT", "")
	require.NoError(t, err)
	require.Equal(t, e.recipient.ID, mit.Administrators[0].ID)

	found, err := insts.Search(ctx, "STAN", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Len(t, found[0].Administrators, 1)

	_, err = insts.Get(ctx, "missing")
	requireKind(t, err, service.KindNotFound)
}

func TestCertificates_ListForWallet(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	certs := &service.CertificateService{Store: e.store}

	for range 3 {
		_, err := e.issuance.Issue(ctx, e.degreeRequest())
		require.NoError(t, err)
	}

	page, err := certs.ListForWallet(ctx, e.recipient.WalletAddress, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Certificates, 1)
	require.Equal(t, service.Pagination{CurrentPage: 2, TotalPages: 2, TotalItems: 3}, page.Pagination)

	issued, err := certs.ListForWallet(ctx, e.issuer.WalletAddress, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 3, issued.Pagination.TotalItems)

	none, err := certs.ListForWallet(ctx, newWallet(t), 1, 10)
	require.NoError(t, err)
	require.Empty(t, none.Certificates)
	require.Zero(t, none.Pagination.TotalItems)

	_, err = certs.ListForWallet(ctx, "bad", 1, 10)
	requireKind(t, err, service.KindInvalidRequest)

	_, err = certs.ListForWallet(ctx, e.recipient.WalletAddress, math.MaxInt/2, 100)
	requireKind(t, err, service.KindInvalidRequest)
}
