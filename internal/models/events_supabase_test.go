package models

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgrestFilter(t *testing.T) {
	tests := []struct {
		name  string
		preds []Predicate
		want  string
	}{
		{
			name: "bounding box",
			preds: []Predicate{
				{Column: ColLatitude, Op: OpGte, Value: 35.5},
				{Column: ColLatitude, Op: OpLte, Value: 36.25},
				{Column: ColLongitude, Op: OpNotNull},
			},
			want: "latitude.gte.35.5,latitude.lte.36.25,longitude.not.is.null",
		},
		{
			name:  "fee or null",
			preds: []Predicate{{Column: ColMinBoothFee, Op: OpLte, Value: int64(5000), OrNull: true}},
			want:  "or(min_booth_fee.is.null,min_booth_fee.lte.5000)",
		},
		{
			name: "booleans",
			preds: []Predicate{
				{Column: ColIsIndoor, Op: OpEq, Value: true},
				{Column: ColRequiresTent, Op: OpEq, Value: false, OrNull: true},
			},
			want: "is_indoor.is.true,or(requires_tent.is.null,requires_tent.is.false)",
		},
		{
			name:  "deadline present",
			preds: []Predicate{{Column: ColApplicationDeadline, Op: OpNotNull, OrNull: true}},
			want:  "application_deadline.not.is.null",
		},
		{
			name:  "quoted category",
			preds: []Predicate{{Column: ColCategory, Op: OpEq, Value: `arts, "crafts"`}},
			want:  `category.eq."arts, \"crafts\""`,
		},
		{
			name: "start date in utc",
			preds: []Predicate{{
				Column: ColStartDate, Op: OpGte,
				Value: time.Date(2025, 1, 1, 0, 0, 0, 0, time.FixedZone("EST", -5*3600)),
			}},
			want: `start_date.gte."2025-01-01T05:00:00Z"`,
		},
		{name: "empty", preds: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PostgrestFilter(tt.preds)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostgrestFilter_Unsupported(t *testing.T) {
	_, err := PostgrestFilter([]Predicate{{Column: ColCategory, Op: "like", Value: "x"}})
	assert.Error(t, err)

	_, err = PostgrestFilter([]Predicate{{Column: ColCategory, Op: OpEq, Value: []string{"x"}}})
	assert.Error(t, err)
}

func TestSupabaseRepo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// a cancelled request never reaches the client
	repo := SupabaseNewRepo(nil)

	_, err := repo.CreateEvent(ctx, &Event{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.GetEventByID(ctx, uuid.New())
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.ListEvents(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.FindEvents(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.ReplaceEvent(ctx, &Event{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.DeleteAllEvents(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
