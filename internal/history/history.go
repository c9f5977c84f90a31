// Package history derives a date-bucketed view of past user queries for
// navigation. Groups are recomputed from the message sequence on every call
// and never stored, so they cannot drift from the source of truth.
package history

import (
	"time"

	"github.com/jalrakshak/jalrakshak-go/internal/session"
)

// Bucket labels, emitted in this fixed order.
const (
	LabelToday     = "Today"
	LabelYesterday = "Yesterday"
	LabelLastWeek  = "Previous 7 Days"
	LabelOlder     = "Older"
)

// Group is one date-relative bucket of user queries, most recent first.
type Group struct {
	Label string            `json:"label"`
	Items []session.Message `json:"items"`
}

// GroupByRecency buckets the user messages of a sequence relative to now.
// Only non-empty buckets are returned, always ordered Today, Yesterday,
// Previous 7 Days, Older. The function is pure: the same messages and now
// always produce the same groups. An empty input yields an empty slice.
func GroupByRecency(messages []session.Message, now time.Time) []Group {
	buckets := map[string][]session.Message{}

	// Walk newest-first so each bucket lists the most recent query on top.
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		if msg.Role != session.RoleUser {
			continue
		}
		label := bucketLabel(msg.Timestamp, now)
		buckets[label] = append(buckets[label], msg)
	}

	groups := make([]Group, 0, 4)
	for _, label := range []string{LabelToday, LabelYesterday, LabelLastWeek, LabelOlder} {
		if items, ok := buckets[label]; ok {
			groups = append(groups, Group{Label: label, Items: items})
		}
	}
	return groups
}

func bucketLabel(ts, now time.Time) string {
	switch {
	case sameDate(ts, now):
		return LabelToday
	case sameDate(ts, now.AddDate(0, 0, -1)):
		return LabelYesterday
	case ts.After(now.AddDate(0, 0, -7)):
		return LabelLastWeek
	default:
		return LabelOlder
	}
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
