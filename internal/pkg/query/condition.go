package query

import "fmt"

// Condition represents a WHERE clause condition.
// SQL returns the fragment and its parameters; paramIndex yields unique
// parameter names (@p0, @p1, ...).
type Condition interface {
	SQL(paramIndex int) (string, map[string]interface{})
}

type compareCondition struct {
	field string
	op    string
	value interface{}
}

// Eq creates an equality condition: Eq("tld_name", "example") generates "tld_name = @p0".
func Eq(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "=", value: value}
}

// Lt creates a less-than condition: Lt("event_time", t) generates "event_time < @p0".
func Lt(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "<", value: value}
}

func (c *compareCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, paramName), map[string]interface{}{
		paramName: c.value,
	}
}

type inCondition struct {
	field  string
	values []string
}

// In creates a membership condition over an array parameter:
// In("token", ids) generates "token IN UNNEST(@p0)".
func In(field string, values []string) Condition {
	return &inCondition{field: field, values: values}
}

func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, paramName), map[string]interface{}{
		paramName: c.values,
	}
}

type nullCondition struct {
	field string
	not   bool
}

// IsNull creates a NULL check: IsNull("redemption_history_id").
func IsNull(field string) Condition {
	return &nullCondition{field: field}
}

// IsNotNull creates a NOT NULL check: IsNotNull("processed_at").
func IsNotNull(field string) Condition {
	return &nullCondition{field: field, not: true}
}

func (c *nullCondition) SQL(int) (string, map[string]interface{}) {
	if c.not {
		return c.field + " IS NOT NULL", map[string]interface{}{}
	}
	return c.field + " IS NULL", map[string]interface{}{}
}
