package scoring

import "fmt"

// RuleTable holds the scoring configuration for a season. It is built once
// at process start and read-only afterwards, so concurrent lookups need no
// locking. Rule edits require a restart to avoid mid-match scoring drift.
type RuleTable struct {
	rules       []Rule
	byEventType map[EventType]int
	byStat      map[string][]int
}

// NewRuleTable validates and indexes the given rules. Registration order is
// preserved; it fixes the order of score breakdowns.
func NewRuleTable(rules []Rule) (*RuleTable, error) {
	table := &RuleTable{
		rules:       make([]Rule, 0, len(rules)),
		byEventType: make(map[EventType]int, len(rules)),
		byStat:      make(map[string][]int, len(rules)),
	}

	for _, rule := range rules {
		if rule.EventType == "" {
			return nil, fmt.Errorf("rule event type is required")
		}
		if rule.Stat == "" {
			return nil, fmt.Errorf("rule %q: stat name is required", rule.EventType)
		}
		if rule.PointsPerUnit == 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRulePointsPerUnit, rule.EventType)
		}
		if _, exists := table.byEventType[rule.EventType]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRuleEventType, rule.EventType)
		}

		idx := len(table.rules)
		table.rules = append(table.rules, rule)
		table.byEventType[rule.EventType] = idx
		table.byStat[rule.Stat] = append(table.byStat[rule.Stat], idx)
	}

	return table, nil
}

// Lookup returns the rule registered for the given event type.
func (t *RuleTable) Lookup(eventType EventType) (Rule, bool) {
	idx, ok := t.byEventType[eventType]
	if !ok {
		return Rule{}, false
	}
	return t.rules[idx], true
}

// RulesForStat returns every rule reading the given statistic, in
// registration order. A stat with no rules is not an error; performance
// feeds routinely carry fields the scoring config does not cover yet.
func (t *RuleTable) RulesForStat(stat string) []Rule {
	indexes := t.byStat[stat]
	if len(indexes) == 0 {
		return nil
	}
	out := make([]Rule, 0, len(indexes))
	for _, idx := range indexes {
		out = append(out, t.rules[idx])
	}
	return out
}

// Rules returns all rules in registration order.
func (t *RuleTable) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// DefaultRules is the built-in scoring configuration, used when the store
// carries no scoring_rules rows. Values follow common fantasy-cricket
// conventions and must be confirmed against product requirements.
func DefaultRules() []Rule {
	capAt := func(v float64) *float64 { return &v }

	return []Rule{
		{EventType: EventRun, Stat: "runs", PointsPerUnit: 1},
		{EventType: EventFour, Stat: "fours", PointsPerUnit: 1},
		{EventType: EventSix, Stat: "sixes", PointsPerUnit: 2},
		{EventType: EventHalfCentury, Stat: "half_centuries", PointsPerUnit: 8},
		{EventType: EventCentury, Stat: "centuries", PointsPerUnit: 16},
		{EventType: EventDuck, Stat: "ducks", PointsPerUnit: -5},
		{EventType: EventWicket, Stat: "wickets", PointsPerUnit: 25},
		{EventType: EventMaidenOver, Stat: "maiden_overs", PointsPerUnit: 12, Cap: capAt(36)},
		{EventType: EventCatch, Stat: "catches", PointsPerUnit: 8},
		{EventType: EventStumping, Stat: "stumpings", PointsPerUnit: 12},
		{EventType: EventRunOut, Stat: "run_outs", PointsPerUnit: 6},
	}
}
