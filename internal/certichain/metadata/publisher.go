package metadata

import (
	"context"
	"errors"
	"strings"
)

// ErrUnavailable is returned when content storage rejected the document or
// stayed unreachable after every allowed attempt.
var ErrUnavailable = errors.New("metadata: content storage unavailable")

// Publication locates a published document.
type Publication struct {
	ContentAddress string
	URI            string
}

// Publisher stores a document in immutable content storage. Publish returns
// only once storage has acknowledged the document and it is resolvable under
// the returned address. Retrying a publish is safe: the address depends on
// the content alone.
type Publisher interface {
	Publish(ctx context.Context, doc Document) (Publication, error)
	Ping(ctx context.Context) error
}

func objectKey(addr string) string {
	return "certificates/" + addr + ".json"
}

func gatewayURI(gateway, addr string) string {
	if gateway == "" {
		return "cc://" + addr
	}
	return strings.TrimRight(gateway, "/") + "/" + addr
}
