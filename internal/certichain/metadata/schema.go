package metadata

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aussiebroadwan/certichain/internal/certichain/domain"
	"github.com/xeipuuv/gojsonschema"
)

var ErrInvalidDocument = errors.New("metadata: invalid document")

//go:embed schema/metadata.json
var metadataSchema []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchemaLoader().Compile(gojsonschema.NewBytesLoader(metadataSchema))
})

// Validate checks inbound certificate metadata before anything is published.
func Validate(m domain.Metadata) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile metadata schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(m))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !result.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, validationErrors(result.Errors()))
	}

	seen := make(map[string]struct{}, len(m.Attributes))
	for _, a := range m.Attributes {
		k := strings.ToLower(a.Key)
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%w: duplicate attribute %q", ErrInvalidDocument, a.Key)
		}
		seen[k] = struct{}{}
	}
	return nil
}

type validationErrors []gojsonschema.ResultError

func (e validationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, r := range e {
		msgs[i] = r.String()
	}
	return "[" + strings.Join(msgs, "; ") + "]"
}
