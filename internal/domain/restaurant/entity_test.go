//go:build unit

package restaurant_test

import (
	"strings"
	"testing"
	"time"

	"session-booking/internal/domain/money"
	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/rules"
	"session-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	now := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	price, err := money.Parse("4500", "jpy")
	require.NoError(t, err)

	tests := []struct {
		name     string
		title    string
		timezone string
		rules    rules.Rules
		errIs    error
	}{
		{name: "valid", title: "Sakura", timezone: "Asia/Tokyo", rules: rules.Default()},
		{name: "empty timezone uses default", title: "Sakura", rules: rules.Default()},
		{name: "blank name", title: "   ", timezone: "Asia/Tokyo", rules: rules.Default(), errIs: restaurant.ErrEmptyName},
		{name: "long name", title: strings.Repeat("a", restaurant.MaxNameLength+1), rules: rules.Default(), errIs: restaurant.ErrNameTooLong},
		{name: "unknown timezone", title: "Sakura", timezone: "Mars/Olympus", rules: rules.Default(), errIs: restaurant.ErrInvalidTimezone},
		{name: "invalid rules", title: "Sakura", rules: rules.Rules{CutoffMinutes: -1, ChildPricing: rules.ChildFullPrice}, errIs: rules.ErrInvalidCutoff},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rest, err := restaurant.New(tc.title, price, tc.timezone, tc.rules, now)

			if tc.errIs != nil {
				assert.True(t, errs.Is(err, tc.errIs), "got %v", err)
				assert.Equal(t, errs.CodeValidation, errs.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, rest.IsActive())
			assert.Equal(t, money.Currency("JPY"), rest.Price().Currency())
			assert.Equal(t, "Asia/Tokyo", rest.Location().String())
		})
	}
}

func TestRestaurantMutations(t *testing.T) {
	now := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	price, err := money.Parse("4500", "JPY")
	require.NoError(t, err)
	rest, err := restaurant.New("Sakura", price, "Asia/Tokyo", rules.Default(), now)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	bad := rules.Default()
	bad.ChildPricing = "kids_eat_free"
	assert.True(t, errs.Is(rest.ChangeRules(bad, later), rules.ErrInvalidChildPricing))
	assert.Equal(t, rules.ChildFullPrice, rest.Rules().ChildPricing)
	assert.Equal(t, now, rest.UpdatedAt())

	rest.SetActive(false, later)
	err = rest.EnsureBookable()
	assert.Equal(t, errs.CodeNotFound, errs.CodeOf(err))
	assert.Equal(t, later, rest.UpdatedAt())
}
