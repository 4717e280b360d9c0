package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViolatesRules(t *testing.T) {
	label := &ShiftLabel{ID: 7, ShopID: 1, Name: "Closing"}

	tests := []struct {
		name  string
		day   Weekday
		rules []*Rule
		want  bool
	}{
		{
			name: "no rules",
			day:  Friday,
			want: false,
		},
		{
			name: "exclude_label matches label and day",
			day:  Friday,
			rules: []*Rule{
				{ShopID: 1, Kind: RuleExcludeLabel, Payload: RulePayload{LabelID: 7, Day: Friday}},
			},
			want: true,
		},
		{
			name: "exclude_label same label different day",
			day:  Saturday,
			rules: []*Rule{
				{ShopID: 1, Kind: RuleExcludeLabel, Payload: RulePayload{LabelID: 7, Day: Friday}},
			},
			want: false,
		},
		{
			name: "exclude_label different label same day",
			day:  Friday,
			rules: []*Rule{
				{ShopID: 1, Kind: RuleExcludeLabel, Payload: RulePayload{LabelID: 8, Day: Friday}},
			},
			want: false,
		},
		{
			name: "exclude_days matches any label on that day",
			day:  Sunday,
			rules: []*Rule{
				{ShopID: 1, Kind: RuleExcludeDays, Payload: RulePayload{Day: Sunday}},
			},
			want: true,
		},
		{
			name: "exclude_days other day",
			day:  Monday,
			rules: []*Rule{
				{ShopID: 1, Kind: RuleExcludeDays, Payload: RulePayload{Day: Sunday}},
			},
			want: false,
		},
		{
			name: "rule from another shop is ignored",
			day:  Friday,
			rules: []*Rule{
				{ShopID: 2, Kind: RuleExcludeLabel, Payload: RulePayload{LabelID: 7, Day: Friday}},
				{ShopID: 2, Kind: RuleExcludeDays, Payload: RulePayload{Day: Friday}},
			},
			want: false,
		},
		{
			name: "one match among many is enough",
			day:  Friday,
			rules: []*Rule{
				{ShopID: 1, Kind: RuleExcludeDays, Payload: RulePayload{Day: Monday}},
				{ShopID: 1, Kind: RuleExcludeDays, Payload: RulePayload{Day: Friday}},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ViolatesRules(label, tt.day, tt.rules))
		})
	}
}
