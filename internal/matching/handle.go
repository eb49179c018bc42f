package matching

import (
	"crypto/sha256"
	"encoding/base32"
	"time"
)

const HandlePrefix = "anon_"

// AnonymousHandle derives the handle shown to a company for a candidate on the
// given UTC calendar day. Handles rotate at midnight UTC. With two base32
// characters only 1024 values exist, so distinct candidates may collide.
func AnonymousHandle(candidateID, companyID string, day time.Time) string {
	seed := candidateID + ":" + companyID + ":" + DayKey(day)
	sum := sha256.Sum256([]byte(seed))
	return HandlePrefix + base32.StdEncoding.EncodeToString(sum[:])[:2]
}

// DayKey is the UTC calendar date, ex: "2024-05-31".
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
