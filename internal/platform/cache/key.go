package cache

import "strings"

// Key namespaces. Every read path that caches under a team must use one of
// these so Invalidate can find its entries by prefix.
const (
	NamespaceDashboard = "dashboard"
	NamespaceResponse  = "cache"
)

// Key identifies one cached entry. The canonical form is
// "{namespace}:{teamID}:{part[:part...]}". Building keys through this type
// instead of ad-hoc concatenation keeps the grammar in one place.
type Key struct {
	Namespace string
	TeamID    string
	Parts     []string
}

func DashboardKey(teamID, seasonID string) Key {
	return Key{Namespace: NamespaceDashboard, TeamID: teamID, Parts: []string{seasonID}}
}

func ResponseKey(teamID, pathWithQuery string) Key {
	return Key{Namespace: NamespaceResponse, TeamID: teamID, Parts: []string{pathWithQuery}}
}

func (k Key) String() string {
	elems := make([]string, 0, 2+len(k.Parts))
	elems = append(elems, k.Namespace, k.TeamID)
	elems = append(elems, k.Parts...)
	return strings.Join(elems, ":")
}

// TeamPrefix covers every key a team owns within a namespace. The trailing
// colon is load-bearing: without it team "12" would also match team "123".
func TeamPrefix(namespace, teamID string) string {
	return namespace + ":" + teamID + ":"
}
