// Package catalog looks up membership plans. Plans are read-only here.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/mmynk/gymdesk/internal/models"
	"github.com/mmynk/gymdesk/internal/storage"
)

// Catalog resolves membership plans.
type Catalog interface {
	// Plan returns the plan with the given id or a *models.NotFoundError.
	Plan(ctx context.Context, id string) (*models.MembershipPlan, error)

	// Plans returns every plan sorted by name.
	Plans(ctx context.Context) ([]models.MembershipPlan, error)
}

// StoreCatalog reads plans from the membership_plans table.
type StoreCatalog struct {
	store storage.RowStore
}

// NewStoreCatalog creates a catalog over store.
func NewStoreCatalog(store storage.RowStore) *StoreCatalog {
	return &StoreCatalog{store: store}
}

func (c *StoreCatalog) Plan(ctx context.Context, id string) (*models.MembershipPlan, error) {
	rows, err := c.store.Get(ctx, storage.TableMembershipPlans, storage.Where(storage.Eq("id", id)))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, models.NewNotFoundError("membership plan", id)
	}
	plan := storage.PlanFromRow(rows[0])
	return &plan, nil
}

func (c *StoreCatalog) Plans(ctx context.Context) ([]models.MembershipPlan, error) {
	rows, err := c.store.Get(ctx, storage.TableMembershipPlans, nil)
	if err != nil {
		return nil, err
	}
	plans := make([]models.MembershipPlan, len(rows))
	for i, r := range rows {
		plans[i] = storage.PlanFromRow(r)
	}
	sortByName(plans)
	return plans, nil
}

// StaticCatalog serves a fixed list of plans, typically loaded from a file.
type StaticCatalog struct {
	plans map[string]models.MembershipPlan
}

// NewStaticCatalog creates a catalog from plans. Later duplicates win.
func NewStaticCatalog(plans []models.MembershipPlan) *StaticCatalog {
	byID := make(map[string]models.MembershipPlan, len(plans))
	for _, p := range plans {
		byID[p.ID] = p
	}
	return &StaticCatalog{plans: byID}
}

// planFile is the JSON layout of a catalog file.
type planFile struct {
	Plans []struct {
		ID             string  `json:"id"`
		Name           string  `json:"name"`
		Price          float64 `json:"price"`
		Type           string  `json:"type"`
		Modality       string  `json:"modality"`
		DurationMonths int     `json:"duration_months"`
		Monthly        *bool   `json:"monthly"`
	} `json:"plans"`
}

// LoadFile reads a JSON catalog file of the form {"plans": [...]}.
func LoadFile(path string) (*StaticCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var f planFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	plans := make([]models.MembershipPlan, 0, len(f.Plans))
	for _, p := range f.Plans {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog %s: plan %q has no id", path, p.Name)
		}
		plans = append(plans, models.MembershipPlan{
			ID:             p.ID,
			Name:           p.Name,
			Price:          p.Price,
			Type:           p.Type,
			Modality:       p.Modality,
			DurationMonths: p.DurationMonths,
			Monthly:        p.Monthly,
		})
	}
	return NewStaticCatalog(plans), nil
}

func (c *StaticCatalog) Plan(_ context.Context, id string) (*models.MembershipPlan, error) {
	p, ok := c.plans[id]
	if !ok {
		return nil, models.NewNotFoundError("membership plan", id)
	}
	return &p, nil
}

func (c *StaticCatalog) Plans(context.Context) ([]models.MembershipPlan, error) {
	plans := make([]models.MembershipPlan, 0, len(c.plans))
	for _, p := range c.plans {
		plans = append(plans, p)
	}
	sortByName(plans)
	return plans, nil
}

func sortByName(plans []models.MembershipPlan) {
	sort.Slice(plans, func(i, j int) bool {
		if plans[i].Name != plans[j].Name {
			return plans[i].Name < plans[j].Name
		}
		return plans[i].ID < plans[j].ID
	})
}
