package certichain_test

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/certichain/pkg/certsdk"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and wallet helpers for the certichain end-to-end tests.
 * The service runs with the dev ledger and the in-memory publisher.
 */

const (
	testImageName = "certichain-test:latest"
	publicURL     = "https://certs.e2e.test"
)

// TestMain builds the Docker image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building certichain Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up certichain Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/certichain/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run()
}

// setupContainer starts the service and returns its base URL.
func setupContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"CERTICHAIN_DATABASE_FILE": "/data/certichain.db",
			"CERTICHAIN_ISSUER":        "certichain-e2e",
			"CERTICHAIN_PUBLIC_URL":    publicURL,
			"CERTICHAIN_MASTER_KEY":    "e2e master key",
			"CERTICHAIN_LEDGER_MODE":   "dev",
			"CERTICHAIN_METADATA_MODE": "memory",
			"ENV":                      "test",
			"LOG_LEVEL":                "info",
			"LOG_FORMAT":               "json",
			// Tests sign in many wallets in quick succession
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
			"RATELIMIT_PUBLIC_REQUESTS":   "1000",
			"RATELIMIT_PUBLIC_BURST":      "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// signIn creates a fresh wallet and completes the challenge flow with it.
func signIn(t *testing.T, client *certsdk.Client) *certsdk.Session {
	t.Helper()

	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	session, err := client.SignIn(t.Context(), key.PublicKey().String(), certsdk.Ed25519Signer(ed25519.PrivateKey(key)))
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken())
	return session
}

// setupIssuer signs in a wallet, creates an institution and registers the
// wallet as its administrator.
func setupIssuer(t *testing.T, client *certsdk.Client, name string) (*certsdk.Session, *certsdk.Institution) {
	t.Helper()
	ctx := t.Context()

	session := signIn(t, client)

	inst, err := session.CreateInstitution(ctx, certsdk.CreateInstitutionRequest{Name: name, Website: "https://example.edu"})
	require.NoError(t, err)

	id, err := session.UpsertIdentity(ctx, certsdk.UpsertIdentityRequest{
		Role:          "INSTITUTION",
		DisplayName:   name + " Registrar",
		InstitutionID: inst.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "INSTITUTION", id.Role)

	return session, inst
}

// setupRecipient signs in a wallet and registers it as a student.
func setupRecipient(t *testing.T, client *certsdk.Client, email string) *certsdk.Session {
	t.Helper()

	session := signIn(t, client)
	_, err := session.UpsertIdentity(t.Context(), certsdk.UpsertIdentityRequest{
		DisplayName: "Ada Lovelace",
		Email:       email,
	})
	require.NoError(t, err)
	return session
}

func issueDegree(t *testing.T, issuer *certsdk.Session, inst *certsdk.Institution, recipientWallet string) *certsdk.Certificate {
	t.Helper()

	cert, err := issuer.IssueCertificate(t.Context(), certsdk.IssueCertificateRequest{
		Title:           "Bachelor of Science",
		Type:            "DEGREE",
		RecipientWallet: recipientWallet,
		InstitutionID:   inst.ID,
		Metadata: certsdk.Metadata{
			Description: "Computer Science",
			Attributes: []certsdk.Attribute{
				{Key: "major", Value: "Computer Science"},
				{Key: "gpa", Value: "3.9", IsEncrypted: true},
			},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, cert.MintAddress)
	return cert
}

func assertHealthy(t *testing.T, health *certsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
