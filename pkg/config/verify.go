package config

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// VerifyRewrites checks that the rewrite table is usable as an ordered replacement list.
// An earlier key contained in a later one would shadow the later key, and a replacement
// containing any key would never settle to a stable result.
func VerifyRewrites(rewrites []Rewrite) error {
	for i, rw := range rewrites {
		from := strings.ToLower(rw.From)
		if from == "" {
			return fmt.Errorf("rewrite #%d has empty from", i)
		}
		for j, other := range rewrites {
			otherFrom := strings.ToLower(other.From)
			if j > i && strings.Contains(otherFrom, from) {
				return fmt.Errorf("rewrite %q shadows later rewrite %q, put the longer key first", rw.From, other.From)
			}
			if strings.Contains(strings.ToLower(rw.To), otherFrom) {
				return fmt.Errorf("replacement %q contains key %q", rw.To, other.From)
			}
		}
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
