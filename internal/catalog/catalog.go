// Package catalog holds the immutable master data a draft runs against:
// weapons, stages, and rules. It is loaded once at startup and safe for
// unsynchronized concurrent reads.
package catalog

import (
	"fmt"
	"math/rand"
	"sort"
)

// OmakaseID marks a stage/rule choice deferred to server-side random
// resolution at game start.
const OmakaseID = -1

type Weapon struct {
	ID            int
	Name          string
	Attribute     string
	SubWeapon     string
	SpecialWeapon string
	ImageURL      string
}

type Stage struct {
	ID   int
	Name string
}

type Rule struct {
	ID   int
	Name string
}

type Catalog struct {
	weapons map[int]Weapon
	ids     []int // sorted
	stages  []Stage
	rules   []Rule
}

// New validates the weapon set and builds a catalog. Duplicate or missing
// weapon IDs are a fatal inconsistency: the caller should refuse to start.
func New(weapons []Weapon) (*Catalog, error) {
	if len(weapons) == 0 {
		return nil, fmt.Errorf("catalog: no weapons")
	}
	byID := make(map[int]Weapon, len(weapons))
	ids := make([]int, 0, len(weapons))
	for _, w := range weapons {
		if w.ID <= 0 {
			return nil, fmt.Errorf("catalog: weapon %q has invalid id %d", w.Name, w.ID)
		}
		if _, dup := byID[w.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate weapon id %d", w.ID)
		}
		byID[w.ID] = w
		ids = append(ids, w.ID)
	}
	sort.Ints(ids)
	return &Catalog{weapons: byID, ids: ids, stages: defaultStages, rules: defaultRules}, nil
}

func (c *Catalog) Weapon(id int) (Weapon, bool) {
	w, ok := c.weapons[id]
	return w, ok
}

// WeaponIDs returns the sorted ID list. Callers must not modify it.
func (c *Catalog) WeaponIDs() []int { return c.ids }

func (c *Catalog) Stages() []Stage { return c.stages }
func (c *Catalog) Rules() []Rule   { return c.rules }

func (c *Catalog) HasStage(id int) bool {
	for _, s := range c.stages {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (c *Catalog) HasRule(id int) bool {
	for _, r := range c.rules {
		if r.ID == id {
			return true
		}
	}
	return false
}

// RandomStage resolves an omakase stage choice from the full stage pool.
func (c *Catalog) RandomStage(rng *rand.Rand) int {
	return c.stages[rng.Intn(len(c.stages))].ID
}

func (c *Catalog) RandomRule(rng *rand.Rand) int {
	return c.rules[rng.Intn(len(c.rules))].ID
}
