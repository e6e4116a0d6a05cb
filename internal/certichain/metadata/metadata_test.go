package metadata_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/aussiebroadwan/certichain/internal/certichain/metadata"
	"github.com/aussiebroadwan/certichain/pkg/cryptox"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"
)

func sampleDocument() metadata.Document {
	return metadata.Document{
		Name:          "B.Sc. Computer Science",
		Type:          string(domain.CertificateDegree),
		Recipient:     "R1",
		Issuer:        "I1",
		InstitutionID: "S1",
		IssuedAt:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Attributes: []domain.Attribute{
			{Key: "gpa", Value: "3.9", Encrypted: true},
			{Key: "major", Value: "Systems"},
		},
	}
}

func TestContentAddress(t *testing.T) {
	data, err := metadata.Encode(sampleDocument())
	require.NoError(t, err)

	addr := metadata.ContentAddress(data)
	require.True(t, strings.HasPrefix(addr, "Qm"), addr)
	require.Len(t, addr, 46)
	require.True(t, metadata.ValidContentAddress(addr))
	require.Equal(t, addr, metadata.ContentAddress(data), "stable")

	other := sampleDocument()
	other.Name = "M.Sc."
	data2, err := metadata.Encode(other)
	require.NoError(t, err)
	require.NotEqual(t, addr, metadata.ContentAddress(data2))

	require.False(t, metadata.ValidContentAddress("not-an-address"))
	require.False(t, metadata.ValidContentAddress(""))
}

func TestDocumentSeal(t *testing.T) {
	s, err := cryptox.NewSealer([]byte("master"))
	require.NoError(t, err)

	doc := sampleDocument()
	sealed, err := doc.Seal(s)
	require.NoError(t, err)

	require.Equal(t, "3.9", doc.Attributes[0].Value, "original untouched")
	require.True(t, cryptox.IsSealed(sealed.Attributes[0].Value))
	require.Equal(t, "Systems", sealed.Attributes[1].Value)

	plain, err := s.Open(sealed.Attributes[0].Value, []byte("gpa"))
	require.NoError(t, err)
	require.Equal(t, "3.9", string(plain))

	again, err := sealed.Seal(s)
	require.NoError(t, err)
	require.Equal(t, sealed.Attributes[0].Value, again.Attributes[0].Value)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		meta    domain.Metadata
		wantErr bool
	}{
		{name: "empty", meta: domain.Metadata{}},
		{
			name: "attributes",
			meta: domain.Metadata{
				Description: "Awarded with honours",
				Attributes:  []domain.Attribute{{Key: "gpa", Value: "3.9", Encrypted: true}},
				Properties:  map[string]any{"credits": 360},
			},
		},
		{name: "empty key", meta: domain.Metadata{Attributes: []domain.Attribute{{Key: "", Value: "x"}}}, wantErr: true},
		{name: "duplicate key", meta: domain.Metadata{Attributes: []domain.Attribute{{Key: "a", Value: "1"}, {Key: "A", Value: "2"}}}, wantErr: true},
		{name: "client supplied anchor", meta: domain.Metadata{ContentAddress: "Qm"}, wantErr: true},
		{name: "long description", meta: domain.Metadata{Description: strings.Repeat("x", 4001)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := metadata.Validate(tt.meta)
			if tt.wantErr {
				require.ErrorIs(t, err, metadata.ErrInvalidDocument)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMemoryPublisher(t *testing.T) {
	p := metadata.NewMemoryPublisher("https://gateway.example/ipfs/")

	pub, err := p.Publish(context.Background(), sampleDocument())
	require.NoError(t, err)
	require.Equal(t, "https://gateway.example/ipfs/"+pub.ContentAddress, pub.URI)

	data, ok := p.Get(pub.ContentAddress)
	require.True(t, ok)
	require.Equal(t, pub.ContentAddress, metadata.ContentAddress(data))

	again, err := p.Publish(context.Background(), sampleDocument())
	require.NoError(t, err)
	require.Equal(t, pub, again)
	require.Equal(t, 1, p.Len())
}

// fakeS3 fails the first putFailures PutObject calls with putErr and the first
// headMisses HeadObject calls with NotFound.
type fakeS3 struct {
	mu          sync.Mutex
	putFailures int
	putErr      error
	headMisses  int

	puts, heads int
	objects     map[string][]byte
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.puts <= f.putFailures {
		return nil, f.putErr
	}
	body, _ := io.ReadAll(in.Body)
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[aws.ToString(in.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heads++
	if f.heads <= f.headMisses {
		return nil, &types.NotFound{}
	}
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(body)))}, nil
}

func (f *fakeS3) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, nil
}

func newS3Publisher(f *fakeS3, attempts int) *metadata.S3Publisher {
	return metadata.NewS3Publisher(f, metadata.S3Config{
		Bucket:          "certs",
		Gateway:         "https://cdn.example",
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	})
}

func TestS3Publisher(t *testing.T) {
	t.Run("transient failures then success", func(t *testing.T) {
		f := &fakeS3{putFailures: 2, putErr: errors.New("connection reset"), headMisses: 1}
		p := newS3Publisher(f, 5)
		var retries int
		p.OnRetry = func(error) { retries++ }

		pub, err := p.Publish(context.Background(), sampleDocument())
		require.NoError(t, err)
		require.Equal(t, 4, f.puts)
		require.Equal(t, 3, retries)
		require.Equal(t, "https://cdn.example/"+pub.ContentAddress, pub.URI)

		stored := f.objects["certificates/"+pub.ContentAddress+".json"]
		require.Equal(t, pub.ContentAddress, metadata.ContentAddress(stored))
	})

	t.Run("attempts are bounded", func(t *testing.T) {
		f := &fakeS3{putFailures: 100, putErr: errors.New("timeout")}
		_, err := newS3Publisher(f, 3).Publish(context.Background(), sampleDocument())
		require.ErrorIs(t, err, metadata.ErrUnavailable)
		require.Equal(t, 3, f.puts)
		require.Zero(t, f.heads)
	})

	t.Run("permanent error is not retried", func(t *testing.T) {
		f := &fakeS3{putFailures: 100, putErr: &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}}
		_, err := newS3Publisher(f, 5).Publish(context.Background(), sampleDocument())
		require.ErrorIs(t, err, metadata.ErrUnavailable)
		require.Equal(t, 1, f.puts)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		f := &fakeS3{putFailures: 100, putErr: context.Canceled}
		_, err := newS3Publisher(f, 5).Publish(ctx, sampleDocument())
		require.ErrorIs(t, err, metadata.ErrUnavailable)
		require.Equal(t, 1, f.puts)
	})
}

func TestS3Publisher_SameAddressAsMemory(t *testing.T) {
	doc := sampleDocument()
	mem, err := metadata.NewMemoryPublisher("").Publish(context.Background(), doc)
	require.NoError(t, err)

	f := &fakeS3{}
	pub, err := newS3Publisher(f, 1).Publish(context.Background(), doc)
	require.NoError(t, err)
	require.Equal(t, mem.ContentAddress, pub.ContentAddress)
	require.True(t, bytes.HasPrefix([]byte(mem.URI), []byte("cc://")))
}
