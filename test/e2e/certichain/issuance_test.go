package certichain_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/aussiebroadwan/certichain/pkg/certsdk"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := certsdk.NewClient(baseURL)

	issuer, inst := setupIssuer(t, client, "E2E University")
	student := setupRecipient(t, client, "ada@e2e.test")

	cert := issueDegree(t, issuer, inst, student.Wallet())
	require.Equal(t, student.Wallet(), cert.Recipient.WalletAddress)
	require.Equal(t, issuer.Wallet(), cert.Issuer.WalletAddress)
	require.NotEmpty(t, cert.Metadata.ContentAddress)
	require.NotEmpty(t, cert.Metadata.TransactionID)

	t.Run("verify by id hides private attributes", func(t *testing.T) {
		res, err := client.VerifyCertificate(ctx, cert.ID)
		require.NoError(t, err)
		require.True(t, res.Valid)
		require.Len(t, res.Certificate.Metadata.Attributes, 1)
		require.Equal(t, "major", res.Certificate.Metadata.Attributes[0].Key)
	})

	t.Run("verify by mint", func(t *testing.T) {
		res, err := client.VerifyMint(ctx, cert.MintAddress)
		require.NoError(t, err)
		require.Equal(t, cert.ID, res.Certificate.ID)
	})

	t.Run("recipient lists the certificate", func(t *testing.T) {
		page, err := student.ListCertificates(ctx, 1, 10)
		require.NoError(t, err)
		require.Len(t, page.Certificates, 1)
		require.Equal(t, 1, page.Pagination.TotalItems)
	})

	t.Run("recipient is notified", func(t *testing.T) {
		res, err := student.ListNotifications(ctx, true)
		require.NoError(t, err)
		require.NotEmpty(t, res.Notifications)
		require.Equal(t, "certificate_issued", res.Notifications[0].Kind)

		require.NoError(t, student.MarkNotificationRead(ctx, res.Notifications[0].ID))

		res, err = student.ListNotifications(ctx, true)
		require.NoError(t, err)
		require.Empty(t, res.Notifications)
	})

	t.Run("unknown certificate", func(t *testing.T) {
		_, err := client.VerifyCertificate(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV")
		require.True(t, certsdk.IsCode(err, certsdk.ErrorCodeNotFound), "got %v", err)
	})
}

func TestIssue_Rejected(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := certsdk.NewClient(baseURL)

	issuer, inst := setupIssuer(t, client, "Rejecting University")
	student := setupRecipient(t, client, "grace@e2e.test")

	t.Run("student cannot issue", func(t *testing.T) {
		_, err := student.IssueCertificate(ctx, certsdk.IssueCertificateRequest{
			Title:           "Self awarded",
			Type:            "DEGREE",
			RecipientWallet: student.Wallet(),
			InstitutionID:   inst.ID,
		})
		require.True(t, certsdk.IsCode(err, certsdk.ErrorCodeNotAuthorized), "got %v", err)
	})

	t.Run("unregistered recipient", func(t *testing.T) {
		key, err := solana.NewRandomPrivateKey()
		require.NoError(t, err)

		_, err = issuer.IssueCertificate(ctx, certsdk.IssueCertificateRequest{
			Title:           "Bachelor of Arts",
			Type:            "DEGREE",
			RecipientWallet: key.PublicKey().String(),
			InstitutionID:   inst.ID,
		})
		require.True(t, certsdk.IsCode(err, certsdk.ErrorCodeNotFound), "got %v", err)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := issuer.IssueCertificate(ctx, certsdk.IssueCertificateRequest{
			Type:            "DEGREE",
			RecipientWallet: student.Wallet(),
			InstitutionID:   inst.ID,
		})
		require.True(t, certsdk.IsCode(err, certsdk.ErrorCodeInvalidRequest), "got %v", err)
	})

	page, err := student.ListCertificates(ctx, 1, 10)
	require.NoError(t, err)
	require.Empty(t, page.Certificates)
}

func TestSignIn_BadSignature(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := certsdk.NewClient(baseURL)

	wallet, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	other, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	_, err = client.SignIn(t.Context(), wallet.PublicKey().String(), certsdk.Ed25519Signer(ed25519.PrivateKey(other)))
	require.True(t, certsdk.IsCode(err, certsdk.ErrorCodeUnauthenticated), "got %v", err)
}
