package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is the in-memory index of alarm rules, by id and by triggering sensor.
type Registry struct {
	mu       sync.RWMutex
	byID     map[uint]Rule
	bySensor map[string][]uint
	lastID   uint
}

func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[uint]Rule),
		bySensor: make(map[string][]uint),
	}
}

// Register validates rule and stores it. A zero ID gets the next free id;
// a non-zero ID (a rule reloaded from storage) is kept as is.
func (r *Registry) Register(rule Rule) (uint, error) {
	if err := rule.Validate(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if rule.ID == 0 {
		rule.ID = r.lastID + 1
	} else if _, exists := r.byID[rule.ID]; exists {
		return 0, fmt.Errorf("%w: id %d", ErrDuplicateRule, rule.ID)
	}

	r.put(rule.clone())
	return rule.ID, nil
}

// Load replaces the whole index with rules. Nothing changes when any rule is invalid.
func (r *Registry) Load(rules []Rule) error {
	seen := make(map[uint]bool, len(rules))
	for _, rule := range rules {
		if rule.ID == 0 {
			return fmt.Errorf("%w: rule %q has no id", ErrValidation, rule.Name)
		}
		if seen[rule.ID] {
			return fmt.Errorf("%w: id %d", ErrDuplicateRule, rule.ID)
		}
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("rule %d: %w", rule.ID, err)
		}
		seen[rule.ID] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[uint]Rule, len(rules))
	r.bySensor = make(map[string][]uint)
	r.lastID = 0
	for _, rule := range rules {
		r.put(rule.clone())
	}
	return nil
}

func (r *Registry) put(rule Rule) {
	r.byID[rule.ID] = rule
	r.bySensor[rule.SensorID] = append(r.bySensor[rule.SensorID], rule.ID)
	if rule.ID > r.lastID {
		r.lastID = rule.ID
	}
}

func (r *Registry) Get(id uint) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.byID[id]
	if !ok {
		return Rule{}, false
	}
	return rule.clone(), true
}

// RulesForSensor returns the rules whose primary sensor is sensorID.
func (r *Registry) RulesForSensor(sensorID string) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.bySensor[sensorID]
	rules := make([]Rule, 0, len(ids))
	for _, id := range ids {
		rules = append(rules, r.byID[id].clone())
	}
	return rules
}

// All returns every registered rule ordered by id.
func (r *Registry) All() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, 0, len(r.byID))
	for _, rule := range r.byID {
		rules = append(rules, rule.clone())
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
