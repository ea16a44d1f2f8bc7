package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

// PostgREST calls cannot be cancelled once sent; ctx is checked before each one.
func (su *SupabaseRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, _, err := su.supabaseClient.
		From(EventsTable).
		Insert(event, false, "", "representation", "").
		Execute()
	if err != nil {
		if strings.HasPrefix(err.Error(), "(23505)") {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, event.ID)
		}
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	created, err := decodeEvents(data)
	if err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return event, nil
	}
	return created[0], nil
}

func (su *SupabaseRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, _, err := su.supabaseClient.
		From(EventsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	events, err := decodeEvents(data)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrNotFound
	}
	return events[0], nil
}

func (su *SupabaseRepo) ListEvents(ctx context.Context) ([]*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, _, err := su.supabaseClient.
		From(EventsTable).
		Select("*", "", false).
		Order(ColStartDate, &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return decodeEvents(data)
}

func (su *SupabaseRepo) FindEvents(ctx context.Context, preds []Predicate) ([]*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query := su.supabaseClient.
		From(EventsTable).
		Select("*", "", false)

	if len(preds) > 0 {
		filter, err := PostgrestFilter(preds)
		if err != nil {
			return nil, err
		}
		// Each column can only carry one filter param, so the whole
		// conjunction goes into a single and=(...) tree.
		query = query.And(filter, "")
	}

	data, _, err := query.
		Order(ColStartDate, &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	return decodeEvents(data)
}

func (su *SupabaseRepo) ReplaceEvent(ctx context.Context, event *Event) (*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, _, err := su.supabaseClient.
		From(EventsTable).
		Update(event, "representation", "").
		Eq("id", event.ID.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	updated, err := decodeEvents(data)
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, ErrNotFound
	}
	return updated[0], nil
}

func (su *SupabaseRepo) DeleteAllEvents(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	// PostgREST refuses unfiltered deletes.
	_, count, err := su.supabaseClient.
		From(EventsTable).
		Delete("minimal", "exact").
		Not("id", "is", "null").
		Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to delete events: %w", err)
	}
	return count, nil
}

func decodeEvents(data []byte) ([]*Event, error) {
	var events []*Event
	if len(data) == 0 {
		return events, nil
	}
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

// PostgrestFilter renders preds as the body of a PostgREST and=(...) logic tree.
func PostgrestFilter(preds []Predicate) (string, error) {
	conds := make([]string, 0, len(preds))
	for _, p := range preds {
		cond, err := postgrestCondition(p)
		if err != nil {
			return "", err
		}
		conds = append(conds, cond)
	}
	return strings.Join(conds, ","), nil
}

func postgrestCondition(p Predicate) (string, error) {
	var cond string
	switch p.Op {
	case OpNotNull:
		cond = p.Column + ".not.is.null"
	case OpEq:
		if b, ok := p.Value.(bool); ok {
			cond = fmt.Sprintf("%s.is.%t", p.Column, b)
			break
		}
		v, err := postgrestValue(p.Value)
		if err != nil {
			return "", err
		}
		cond = fmt.Sprintf("%s.eq.%s", p.Column, v)
	case OpGte, OpLte:
		v, err := postgrestValue(p.Value)
		if err != nil {
			return "", err
		}
		cond = fmt.Sprintf("%s.%s.%s", p.Column, p.Op, v)
	default:
		return "", fmt.Errorf("unsupported operator %q on %s", p.Op, p.Column)
	}

	if p.OrNull && p.Op != OpNotNull {
		return fmt.Sprintf("or(%s.is.null,%s)", p.Column, cond), nil
	}
	return cond, nil
}

func postgrestValue(v any) (string, error) {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case int:
		return strconv.Itoa(val), nil
	case time.Time:
		return quotePostgrest(val.UTC().Format(time.RFC3339Nano)), nil
	case string:
		return quotePostgrest(val), nil
	}
	return "", fmt.Errorf("unsupported filter value %T", v)
}

// quotePostgrest wraps s in double quotes so reserved characters
// (commas, dots, parentheses) survive inside a logic tree.
func quotePostgrest(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
