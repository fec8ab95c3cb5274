// Package registry resolves clients to their membership-sharing groups and
// manages group membership.
package registry

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/mmynk/gymdesk/internal/models"
	"github.com/mmynk/gymdesk/internal/storage"
)

// Registry manages groups over a row store.
type Registry struct {
	store storage.RowStore
	now   func() time.Time
}

// New creates a Registry backed by store.
func New(store storage.RowStore) *Registry {
	return &Registry{store: store, now: time.Now}
}

// Resolve returns the group clientID leads or belongs to, with its current
// roster. It returns nil when the client is in no group.
func (r *Registry) Resolve(ctx context.Context, clientID string) (*models.GroupContext, error) {
	client, err := getClient(ctx, r.store, clientID)
	if err != nil {
		return nil, err
	}

	group, err := leaderGroup(ctx, r.store, clientID)
	if err != nil {
		return nil, err
	}

	if group == nil && client.GroupID != "" {
		group, err = findGroup(ctx, r.store, client.GroupID)
		if err != nil {
			return nil, err
		}
		if group == nil {
			slog.Warn("Client references a missing group", "client_id", clientID, "group_id", client.GroupID)
			return nil, nil
		}
	}
	if group == nil {
		return nil, nil
	}

	members, err := members(ctx, r.store, *group)
	if err != nil {
		return nil, err
	}
	return &models.GroupContext{Group: *group, Members: members}, nil
}

// CreateGroup creates a group led by leaderID. The leader becomes its first member.
func (r *Registry) CreateGroup(ctx context.Context, leaderID, name string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("group name is required")
	}

	var group models.Group
	err := storage.Atomically(ctx, r.store, func(tx storage.RowStore) error {
		client, err := getClient(ctx, tx, leaderID)
		if err != nil {
			return err
		}
		if client.GroupID != "" {
			return models.NewConflictError("client %s already belongs to a group", leaderID)
		}
		led, err := leaderGroup(ctx, tx, leaderID)
		if err != nil {
			return err
		}
		if led != nil {
			return models.NewConflictError("client %s already leads group %s", leaderID, led.ID)
		}

		row, err := tx.Insert(ctx, storage.TableGroups, storage.GroupToRow(models.Group{
			Name:      name,
			LeaderID:  leaderID,
			CreatedAt: r.now().Unix(),
		}))
		if err != nil {
			return err
		}
		group = storage.GroupFromRow(row)

		err = tx.Update(ctx, storage.TableClients,
			storage.Where(storage.Eq("id", leaderID)),
			storage.Row{"group_id": group.ID},
		)
		if err != nil && !transactional(r.store) {
			if derr := tx.Delete(ctx, storage.TableGroups, storage.Where(storage.Eq("id", group.ID))); derr != nil {
				slog.Error("CreateGroup compensation failed", "group_id", group.ID, "error", derr)
				return errors.Join(err, derr)
			}
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "leader_id", leaderID)
	return &group, nil
}

// AddMember adds clientID to groupID. Clients already in any group are rejected.
func (r *Registry) AddMember(ctx context.Context, groupID, clientID string) error {
	err := storage.Atomically(ctx, r.store, func(tx storage.RowStore) error {
		if _, err := getGroup(ctx, tx, groupID); err != nil {
			return err
		}
		client, err := getClient(ctx, tx, clientID)
		if err != nil {
			return err
		}
		if client.GroupID != "" {
			return models.NewValidationError("client %s already belongs to a group", clientID)
		}
		led, err := leaderGroup(ctx, tx, clientID)
		if err != nil {
			return err
		}
		if led != nil {
			return models.NewValidationError("client %s already leads a group", clientID)
		}
		return tx.Update(ctx, storage.TableClients,
			storage.Where(storage.Eq("id", clientID)),
			storage.Row{"group_id": groupID},
		)
	})
	if err != nil {
		return err
	}

	slog.Info("Group member added", "group_id", groupID, "client_id", clientID)
	return nil
}

// RemoveMember clears clientID's group reference. The leader cannot be removed.
func (r *Registry) RemoveMember(ctx context.Context, groupID, clientID string) error {
	err := storage.Atomically(ctx, r.store, func(tx storage.RowStore) error {
		group, err := getGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		if clientID == group.LeaderID {
			return models.NewValidationError("cannot remove leader")
		}
		client, err := getClient(ctx, tx, clientID)
		if err != nil {
			return err
		}
		if client.GroupID != groupID {
			return models.NewValidationError("client %s is not a member of group %s", clientID, groupID)
		}
		return tx.Update(ctx, storage.TableClients,
			storage.Where(storage.Eq("id", clientID)),
			storage.Row{"group_id": nil},
		)
	})
	if err != nil {
		return err
	}

	slog.Info("Group member removed", "group_id", groupID, "client_id", clientID)
	return nil
}

// DissolveGroup releases every member and then deletes the group.
// Members are released first so none is left pointing at a deleted group.
func (r *Registry) DissolveGroup(ctx context.Context, groupID string) error {
	err := storage.Atomically(ctx, r.store, func(tx storage.RowStore) error {
		if _, err := getGroup(ctx, tx, groupID); err != nil {
			return err
		}
		err := tx.Update(ctx, storage.TableClients,
			storage.Where(storage.Eq("group_id", groupID)),
			storage.Row{"group_id": nil},
		)
		if err != nil {
			return err
		}
		return tx.Delete(ctx, storage.TableGroups, storage.Where(storage.Eq("id", groupID)))
	})
	if err != nil {
		return err
	}

	slog.Info("Group dissolved", "group_id", groupID)
	return nil
}

// ListAvailableClients returns clients that belong to no group and can be
// added to one, excluding excludeID, filtered by a case-insensitive name match.
func (r *Registry) ListAvailableClients(ctx context.Context, excludeID, query string) ([]models.Client, error) {
	rows, err := r.store.Get(ctx, storage.TableClients, storage.Where(storage.IsNull("group_id")))
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	out := lo.FilterMap(rows, func(row storage.Row, _ int) (models.Client, bool) {
		c := storage.ClientFromRow(row)
		if c.ID == excludeID {
			return c, false
		}
		return c, query == "" || strings.Contains(strings.ToLower(c.Name), query)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func transactional(rs storage.RowStore) bool {
	_, ok := rs.(storage.Transactor)
	return ok
}

func getClient(ctx context.Context, rs storage.RowStore, id string) (*models.Client, error) {
	rows, err := rs.Get(ctx, storage.TableClients, storage.Where(storage.Eq("id", id)))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, models.NewNotFoundError("client", id)
	}
	c := storage.ClientFromRow(rows[0])
	return &c, nil
}

func findGroup(ctx context.Context, rs storage.RowStore, id string) (*models.Group, error) {
	rows, err := rs.Get(ctx, storage.TableGroups, storage.Where(storage.Eq("id", id)))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	g := storage.GroupFromRow(rows[0])
	return &g, nil
}

func getGroup(ctx context.Context, rs storage.RowStore, id string) (*models.Group, error) {
	g, err := findGroup(ctx, rs, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, models.NewNotFoundError("group", id)
	}
	return g, nil
}

func leaderGroup(ctx context.Context, rs storage.RowStore, clientID string) (*models.Group, error) {
	rows, err := rs.Get(ctx, storage.TableGroups, storage.Where(storage.Eq("leader_id", clientID)))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	g := storage.GroupFromRow(rows[0])
	return &g, nil
}

// members returns the roster of group, leader first, then by name.
func members(ctx context.Context, rs storage.RowStore, group models.Group) ([]models.Client, error) {
	rows, err := rs.Get(ctx, storage.TableClients, storage.Where(storage.Eq("group_id", group.ID)))
	if err != nil {
		return nil, err
	}
	out := lo.Map(rows, func(row storage.Row, _ int) models.Client { return storage.ClientFromRow(row) })
	sort.Slice(out, func(i, j int) bool {
		li, lj := out[i].ID == group.LeaderID, out[j].ID == group.LeaderID
		if li != lj {
			return li
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
