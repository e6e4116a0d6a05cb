package ledger

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/certichain/pkg/slogx"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/near/borsh-go"
)

// lamportsPerSignature is the base fee per signature. A mint carries two
// (payer and the new asset account).
const lamportsPerSignature = 5000

// RPC is the subset of *rpc.Client used by SolanaMinter.
type RPC interface {
	GetHealth(ctx context.Context) (string, error)
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
	GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64, commitment rpc.CommitmentType) (uint64, error)
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, sigs ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
}

type SolanaConfig struct {
	Network        string // devnet, testnet, mainnet-beta, localnet
	ProgramID      solana.PublicKey
	Payer          solana.PrivateKey
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
}

// SolanaMinter creates one program-owned account per certificate and records
// the owner, title and content address in it.
type SolanaMinter struct {
	RPC    RPC
	Config SolanaConfig
}

// LoadPayer reads a solana-keygen JSON file, or accepts a base58 secret key.
func LoadPayer(pathOrKey string) (solana.PrivateKey, error) {
	if strings.HasSuffix(pathOrKey, ".json") {
		return solana.PrivateKeyFromSolanaKeygenFile(pathOrKey)
	}
	return solana.PrivateKeyFromBase58(pathOrKey)
}

// NewSolanaMinter dials endpoint, for example rpc.DevNet_RPC.
func NewSolanaMinter(endpoint string, cfg SolanaConfig) *SolanaMinter {
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = 60 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	return &SolanaMinter{RPC: rpc.New(endpoint), Config: cfg}
}

// issueInstruction is the borsh layout read by the certificate program.
type issueInstruction struct {
	Discriminator  [8]byte
	Owner          [32]byte
	Title          string
	ContentAddress string
	URI            string
}

var issueDiscriminator = func() [8]byte {
	sum := sha256.Sum256([]byte("global:issue_certificate"))
	var d [8]byte
	copy(d[:], sum[:8])
	return d
}()

// accountSpace is the account data size: discriminator, owner, three
// length-prefixed strings, rounded up to 8 bytes.
func accountSpace(data []byte) uint64 {
	size := len(data) + 64
	if size%8 != 0 {
		size += 8 - size%8
	}
	return uint64(size)
}

func (m *SolanaMinter) Ping(ctx context.Context) error {
	status, err := m.RPC.GetHealth(ctx)
	if err != nil {
		return err
	}
	if status != rpc.HealthOk {
		return fmt.Errorf("ledger: node health %q", status)
	}
	return nil
}

func (m *SolanaMinter) Mint(ctx context.Context, req MintRequest) (MintResult, error) {
	log := slogx.FromContext(ctx).With(slog.String("component", "ledger"), slog.String("network", m.Config.Network))

	// 1. Validate the owner and encode the instruction
	owner, err := ParseAddress(req.Owner)
	if err != nil {
		return MintResult{}, fmt.Errorf("%w: owner: %v", ErrRejected, err)
	}

	data, err := borsh.Serialize(issueInstruction{
		Discriminator:  issueDiscriminator,
		Owner:          [32]byte(owner),
		Title:          req.Title,
		ContentAddress: req.ContentAddress,
		URI:            req.ContentURI,
	})
	if err != nil {
		return MintResult{}, fmt.Errorf("%w: encode instruction: %v", ErrRejected, err)
	}
	space := accountSpace(data)

	// 2. Rent and fee balance pre-check
	rent, err := m.RPC.GetMinimumBalanceForRentExemption(ctx, space, rpc.CommitmentFinalized)
	if err != nil {
		return MintResult{}, fmt.Errorf("%w: rent: %v", ErrRejected, err)
	}

	payer := m.Config.Payer.PublicKey()
	balance, err := m.RPC.GetBalance(ctx, payer, rpc.CommitmentConfirmed)
	if err != nil {
		return MintResult{}, fmt.Errorf("%w: payer balance: %v", ErrRejected, err)
	}
	if need := rent + 2*lamportsPerSignature; balance == nil || balance.Value < need {
		return MintResult{}, fmt.Errorf("%w: insufficient fee balance on %s: need %d lamports", ErrRejected, payer, need)
	}

	// 3. Fresh asset identity
	mint, err := solana.NewRandomPrivateKey()
	if err != nil {
		return MintResult{}, fmt.Errorf("%w: generate mint key: %v", ErrRejected, err)
	}
	mintAddr := mint.PublicKey()

	createAccount := system.NewCreateAccountInstruction(
		rent,
		space,
		m.Config.ProgramID,
		payer,
		mintAddr,
	).Build()

	issue := solana.NewInstruction(
		m.Config.ProgramID,
		solana.AccountMetaSlice{
			solana.NewAccountMeta(mintAddr, true, true),
			solana.NewAccountMeta(owner, false, false),
			solana.NewAccountMeta(payer, true, true),
		},
		data,
	)

	// 4. Build, sign and submit
	latest, err := m.RPC.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return MintResult{}, fmt.Errorf("%w: blockhash: %v", ErrRejected, err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{createAccount, issue},
		latest.Value.Blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return MintResult{}, fmt.Errorf("%w: build transaction: %v", ErrRejected, err)
	}

	_, err = tx.Sign(func(pk solana.PublicKey) *solana.PrivateKey {
		switch {
		case pk.Equals(payer):
			return &m.Config.Payer
		case pk.Equals(mintAddr):
			return &mint
		}
		return nil
	})
	if err != nil {
		return MintResult{}, fmt.Errorf("%w: sign: %v", ErrRejected, err)
	}

	sig, err := m.RPC.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		return MintResult{}, fmt.Errorf("%w: send: %v", ErrRejected, err)
	}

	log.Info("mint submitted",
		slog.String("mint_address", mintAddr.String()),
		slog.String("transaction_id", sig.String()),
	)

	// 5. Wait for confirmation
	if err := m.awaitConfirmation(ctx, sig); err != nil {
		log.Warn("mint not confirmed, asset may still land",
			slog.String("mint_address", mintAddr.String()),
			slog.String("transaction_id", sig.String()),
			slog.Any("err", err),
		)
		return MintResult{}, fmt.Errorf("%w: %s: %v", ErrRejected, sig, err)
	}

	return MintResult{
		MintAddress:   mintAddr.String(),
		TransactionID: sig.String(),
		Network:       m.Config.Network,
	}, nil
}

var errConfirmTimeout = errors.New("confirmation timed out")

func (m *SolanaMinter) awaitConfirmation(ctx context.Context, sig solana.Signature) error {
	ctx, cancel := context.WithTimeout(ctx, m.Config.ConfirmTimeout)
	defer cancel()

	ticker := time.NewTicker(m.Config.PollInterval)
	defer ticker.Stop()

	for {
		out, err := m.RPC.GetSignatureStatuses(ctx, false, sig)
		if err == nil && out != nil && len(out.Value) > 0 && out.Value[0] != nil {
			st := out.Value[0]
			if st.Err != nil {
				return fmt.Errorf("transaction failed: %v", st.Err)
			}
			switch st.ConfirmationStatus {
			case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
				return nil
			}
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return errConfirmTimeout
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
