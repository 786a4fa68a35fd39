package search

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/dmitrymomot/searchkit/pkg/query"
)

// GenerateSecuredAPIKey derives a search key from parentKey that forces the
// parameters of restrictions on every query. A non-empty userToken is added
// to the restrictions. No request is made.
func GenerateSecuredAPIKey(parentKey string, restrictions query.Query, userToken string) string {
	if userToken != "" {
		restrictions = restrictions.Clone()
		restrictions.UserToken = userToken
	}
	params := restrictions.Encode()

	mac := hmac.New(sha256.New, []byte(parentKey))
	mac.Write([]byte(params))
	digest := hex.EncodeToString(mac.Sum(nil))

	return base64.StdEncoding.EncodeToString([]byte(digest + params))
}
