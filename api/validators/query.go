package validators

import (
	"net/http"
	"regexp"

	pkgerrors "github.com/angelmondragon/rflink-backend/pkg/errors"
)

const maxSlugLength = 64

var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9 _-]*$`)

// ParseQuerySlug reads an optional slug query parameter. Empty values are
// allowed; anything that is not slug-shaped is a validation error.
func ParseQuerySlug(r *http.Request, key string) (string, error) {
	raw := cleanParam(r.URL.Query().Get(key), maxSlugLength)
	if raw == "" {
		return "", nil
	}
	if !slugPattern.MatchString(raw) {
		return "", pkgerrors.InvalidField(key, "query parameter must be a slug")
	}
	return raw, nil
}

// ParsePathID validates a product identifier taken from the URL.
func ParsePathID(raw, field string) (string, error) {
	id := cleanParam(raw, 0)
	if id == "" || len(id) > 128 {
		return "", pkgerrors.InvalidField(field, "invalid "+field)
	}
	return id, nil
}
