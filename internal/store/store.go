// Package store is the single sanctioned entry point into the document
// collections. It bundles the database with the reactive registry and
// publishes an invalidation for every collection a successful mutation
// touched, so active subscriptions are re-evaluated.
package store

import (
	"gorm.io/gorm"

	"github.com/webfolio/webfolio/internal/db/controller/message"
	"github.com/webfolio/webfolio/internal/db/controller/profile"
	"github.com/webfolio/webfolio/internal/db/controller/project"
	"github.com/webfolio/webfolio/internal/db/controller/setting"
	"github.com/webfolio/webfolio/internal/db/models"
	"github.com/webfolio/webfolio/internal/reactive"
	"github.com/webfolio/webfolio/internal/sitecfg"
)

// Collection names used for reactive invalidation.
const (
	CollectionProfile  = "profile"
	CollectionProjects = "projects"
	CollectionMessages = "messages"
	CollectionSettings = "settings"
)

// Store bundles the database handle with the reactive registry.
type Store struct {
	db       *gorm.DB
	registry *reactive.Registry
}

// New creates a store over db publishing to registry.
func New(db *gorm.DB, registry *reactive.Registry) *Store {
	return &Store{db: db, registry: registry}
}

// DB exposes the underlying database handle for migrations and seeding.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Registry exposes the reactive registry for the subscription endpoint.
func (s *Store) Registry() *reactive.Registry {
	return s.registry
}

// Profile operations.

// GetProfile returns the singleton profile or nil.
func (s *Store) GetProfile() (*models.Profile, error) {
	return profile.Get(s.db)
}

// UpsertProfile creates or patches the singleton profile.
func (s *Store) UpsertProfile(params profile.UpsertParams) (uint64, error) {
	id, err := profile.Upsert(s.db, params)
	if err != nil {
		return 0, err
	}

	s.registry.Publish(CollectionProfile)

	return id, nil
}

// UpdateProfile applies a partial patch to the profile.
func (s *Store) UpdateProfile(id uint64, params profile.UpdateParams) (*models.Profile, error) {
	p, err := profile.Update(s.db, id, params)
	if err != nil {
		return nil, err
	}

	s.registry.Publish(CollectionProfile)

	return p, nil
}

// AddSkill appends a skill to the profile.
func (s *Store) AddSkill(id uint64, skill string) (*models.Profile, error) {
	p, err := profile.AddSkill(s.db, id, skill)
	if err != nil {
		return nil, err
	}

	s.registry.Publish(CollectionProfile)

	return p, nil
}

// RemoveSkill removes a skill from the profile.
func (s *Store) RemoveSkill(id uint64, skill string) (*models.Profile, error) {
	p, err := profile.RemoveSkill(s.db, id, skill)
	if err != nil {
		return nil, err
	}

	s.registry.Publish(CollectionProfile)

	return p, nil
}

// Project operations.

// CreateProject stores a new project; the slug must be free.
func (s *Store) CreateProject(params project.CreateParams) (*models.Project, error) {
	p, err := project.Create(s.db, params)
	if err != nil {
		return nil, err
	}

	s.registry.Publish(CollectionProjects)

	return p, nil
}

// UpdateProject applies a partial patch to a project.
func (s *Store) UpdateProject(id uint64, params project.UpdateParams) (*models.Project, error) {
	p, err := project.Update(s.db, id, params)
	if err != nil {
		return nil, err
	}

	s.registry.Publish(CollectionProjects)

	return p, nil
}

// DeleteProject removes a project outright.
func (s *Store) DeleteProject(id uint64) error {
	if err := project.Delete(s.db, id); err != nil {
		return err
	}

	s.registry.Publish(CollectionProjects)

	return nil
}

// GetProject returns a project by id or nil.
func (s *Store) GetProject(id uint64) (*models.Project, error) {
	return project.GetByID(s.db, id)
}

// GetProjectBySlug returns a project by slug or nil.
func (s *Store) GetProjectBySlug(slug string) (*models.Project, error) {
	return project.GetBySlug(s.db, slug)
}

// GetProjects returns all projects, newest first.
func (s *Store) GetProjects() ([]models.Project, error) {
	return project.GetAll(s.db)
}

// GetFeaturedProjects returns featured projects, newest first.
func (s *Store) GetFeaturedProjects() ([]models.Project, error) {
	return project.GetFeatured(s.db)
}

// GetProjectsByTechnology returns projects tagged with tech, newest first.
func (s *Store) GetProjectsByTechnology(tech string) ([]models.Project, error) {
	return project.GetByTechnology(s.db, tech)
}

// Message operations.

// SubmitMessage stores a contact-form submission, always unread.
func (s *Store) SubmitMessage(params message.SubmitParams) (*models.Message, error) {
	m, err := message.Submit(s.db, params)
	if err != nil {
		return nil, err
	}

	s.registry.Publish(CollectionMessages)

	return m, nil
}

// GetMessages returns all messages, newest first.
func (s *Store) GetMessages() ([]models.Message, error) {
	return message.GetAll(s.db)
}

// GetMessage returns a message by id or nil.
func (s *Store) GetMessage(id uint64) (*models.Message, error) {
	return message.GetByID(s.db, id)
}

// GetUnreadMessages returns unread messages, newest first.
func (s *Store) GetUnreadMessages() ([]models.Message, error) {
	return message.GetUnread(s.db)
}

// MarkMessageAsRead flips the read flag; safe to retry.
func (s *Store) MarkMessageAsRead(id uint64) error {
	if err := message.MarkAsRead(s.db, id); err != nil {
		return err
	}

	s.registry.Publish(CollectionMessages)

	return nil
}

// DeleteMessage removes a message outright.
func (s *Store) DeleteMessage(id uint64) error {
	if err := message.Delete(s.db, id); err != nil {
		return err
	}

	s.registry.Publish(CollectionMessages)

	return nil
}

// Setting operations.

// GetSetting returns a setting by key.
func (s *Store) GetSetting(key string) (*models.Setting, error) {
	return setting.Get(s.db, key)
}

// GetSettings returns every setting as a flat key-value map.
func (s *Store) GetSettings() (map[string]models.Value, error) {
	return setting.GetAll(s.db)
}

// ResolveSettings returns the defaulted, structured site configuration.
func (s *Store) ResolveSettings() (sitecfg.Settings, error) {
	raw, err := setting.GetAll(s.db)
	if err != nil {
		return sitecfg.Settings{}, err
	}

	return sitecfg.Resolve(raw), nil
}

// SetSetting upserts one setting.
func (s *Store) SetSetting(key string, value models.Value) (*models.Setting, error) {
	out, err := setting.Set(s.db, key, value)
	if err != nil {
		return nil, err
	}

	s.registry.Publish(CollectionSettings)

	return out, nil
}

// UpdateSettings applies the batch as sequential upserts. The batch is not
// atomic; the returned keys are the ones that committed. A partial commit
// still publishes, so subscribers converge on whatever was applied.
func (s *Store) UpdateSettings(entries []setting.Entry) ([]string, error) {
	committed, err := setting.UpdateBatch(s.db, entries)

	if len(committed) > 0 {
		s.registry.Publish(CollectionSettings)
	}

	return committed, err
}

// DeleteSetting removes a setting by key.
func (s *Store) DeleteSetting(key string) error {
	if err := setting.Delete(s.db, key); err != nil {
		return err
	}

	s.registry.Publish(CollectionSettings)

	return nil
}
