package store

import (
	"errors"

	"github.com/webfolio/webfolio/internal/reactive"
)

// Query names accepted by the subscription endpoint.
const (
	QueryProfileGet          = "profile.get"
	QueryProjectsGetAll      = "projects.getAll"
	QueryProjectsGetFeatured = "projects.getFeatured"
	QueryProjectsGetBySlug   = "projects.getBySlug"
	QueryMessagesGetAll      = "messages.getAll"
	QueryMessagesGetUnread   = "messages.getUnread"
	QuerySettingsGetAll      = "settings.getAll"
	QuerySettingsResolved    = "settings.resolved"
)

// ErrUnknownQuery is returned when a subscription names a query that does
// not exist.
var ErrUnknownQuery = errors.New("unknown query")

// Subscribe opens a reactive subscription on a named query. Args is the
// canonical argument string; it is empty for queries without arguments and
// the slug for projects.getBySlug.
func (s *Store) Subscribe(query, args string) (*reactive.Subscription, error) {
	var (
		collections []string
		fn          reactive.QueryFunc
	)

	switch query {
	case QueryProfileGet:
		collections = []string{CollectionProfile}
		fn = func() (any, error) { return s.GetProfile() }
	case QueryProjectsGetAll:
		collections = []string{CollectionProjects}
		fn = func() (any, error) { return s.GetProjects() }
	case QueryProjectsGetFeatured:
		collections = []string{CollectionProjects}
		fn = func() (any, error) { return s.GetFeaturedProjects() }
	case QueryProjectsGetBySlug:
		slug := args
		collections = []string{CollectionProjects}
		fn = func() (any, error) { return s.GetProjectBySlug(slug) }
	case QueryMessagesGetAll:
		collections = []string{CollectionMessages}
		fn = func() (any, error) { return s.GetMessages() }
	case QueryMessagesGetUnread:
		collections = []string{CollectionMessages}
		fn = func() (any, error) { return s.GetUnreadMessages() }
	case QuerySettingsGetAll:
		collections = []string{CollectionSettings}
		fn = func() (any, error) { return s.GetSettings() }
	case QuerySettingsResolved:
		collections = []string{CollectionSettings}
		fn = func() (any, error) { return s.ResolveSettings() }
	default:
		return nil, ErrUnknownQuery
	}

	return s.registry.Subscribe(query, args, collections, fn), nil
}
