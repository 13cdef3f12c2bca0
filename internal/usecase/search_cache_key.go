package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	ideaMatchesPrefix      = "match:idea:"
	userMatchesPrefix      = "match:user:"
	userSearchPrefix       = "users:search:"
	websitePreviewPrefix   = "preview:"
	ideaMatchesPattern     = ideaMatchesPrefix + "*"
	userMatchesPattern     = userMatchesPrefix + "*"
	userSearchCachePattern = userSearchPrefix + "*"
)

func normalizeSearchValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func IdeaMatchesCacheKey(ideaID uuid.UUID, limit int) string {
	return ideaMatchesPrefix + ideaID.String() + ":" + strconv.Itoa(limit)
}

func UserMatchesCacheKey(userID uuid.UUID, limit int) string {
	return userMatchesPrefix + userID.String() + ":" + strconv.Itoa(limit)
}

func UserSearchCacheKey(query string, limit int) string {
	return userSearchPrefix + hashKey(normalizeSearchValue(query)+"|"+strconv.Itoa(limit))
}

func WebsitePreviewCacheKey(url string) string {
	return websitePreviewPrefix + hashKey(strings.TrimSpace(url))
}

func hashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
