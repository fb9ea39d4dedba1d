package registry

import (
	"encoding/json"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
)

type set map[string]struct{}

// Tracker remembers the groups each user wants to be subscribed to. Entries
// are never pruned when a group is deleted elsewhere; a stale room simply has
// no publisher.
type Tracker struct {
	mu     sync.RWMutex
	groups map[string]set // user_id → group ids
}

func NewTracker() *Tracker {
	return &Tracker{groups: make(map[string]set)}
}

// SetInitialGroups replaces the user's tracked groups and returns the
// normalized list that was stored.
func (t *Tracker) SetInitialGroups(userID string, groupIDs []string) []string {
	ids := normalize(groupIDs)
	next := make(set, len(ids))
	for _, id := range ids {
		next[id] = struct{}{}
	}
	t.mu.Lock()
	t.groups[userID] = next
	t.mu.Unlock()
	return ids
}

func (t *Tracker) AddGroup(userID, groupID string) {
	if groupID == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.groups[userID]; !ok {
		t.groups[userID] = make(set)
	}
	t.groups[userID][groupID] = struct{}{}
}

func (t *Tracker) RemoveGroup(userID, groupID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if groups, ok := t.groups[userID]; ok {
		delete(groups, groupID)
	}
}

// AllGroups returns the sorted group ids tracked for the user.
func (t *Tracker) AllGroups(userID string) []string {
	t.mu.RLock()
	ids := lo.Keys(t.groups[userID])
	t.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// ParseGroups decodes the handshake groups parameter, a JSON array of
// strings. Elements that are not strings are skipped; input that is not an
// array yields an empty list.
func ParseGroups(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return []string{}
	}
	ids := lo.FilterMap(elems, func(elem json.RawMessage, _ int) (string, bool) {
		var id string
		return id, json.Unmarshal(elem, &id) == nil
	})
	return normalize(ids)
}

func normalize(ids []string) []string {
	out := lo.Uniq(lo.Compact(lo.Map(ids, func(id string, _ int) string {
		return strings.TrimSpace(id)
	})))
	slices.Sort(out)
	return out
}
