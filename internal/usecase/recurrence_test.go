package usecase

import (
	"testing"
	"time"

	"clinic-scheduler/internal/domain/entity"
)

func TestExpandOccurrences(t *testing.T) {
	start := mustTime(t, "2024-01-01T09:00:00Z")
	end := mustTime(t, "2024-01-01T09:30:00Z")

	tests := []struct {
		name  string
		rule  entity.RecurrenceRule
		until time.Time
		want  []occurrence
	}{
		{
			name:  "weekly excludes the parent slot",
			rule:  entity.RecurrenceWeekly,
			until: mustTime(t, "2024-01-22T09:00:00Z"),
			want: []occurrence{
				{Start: mustTime(t, "2024-01-08T09:00:00Z"), End: mustTime(t, "2024-01-08T09:30:00Z")},
				{Start: mustTime(t, "2024-01-15T09:00:00Z"), End: mustTime(t, "2024-01-15T09:30:00Z")},
				{Start: mustTime(t, "2024-01-22T09:00:00Z"), End: mustTime(t, "2024-01-22T09:30:00Z")},
			},
		},
		{
			name:  "daily",
			rule:  entity.RecurrenceDaily,
			until: mustTime(t, "2024-01-03T12:00:00Z"),
			want: []occurrence{
				{Start: mustTime(t, "2024-01-02T09:00:00Z"), End: mustTime(t, "2024-01-02T09:30:00Z")},
				{Start: mustTime(t, "2024-01-03T09:00:00Z"), End: mustTime(t, "2024-01-03T09:30:00Z")},
			},
		},
		{
			name:  "until before first occurrence yields nothing",
			rule:  entity.RecurrenceDaily,
			until: mustTime(t, "2024-01-01T23:00:00Z"),
			want:  nil,
		},
		{
			name:  "unknown rule yields nothing",
			rule:  entity.RecurrenceRule("fortnightly"),
			until: mustTime(t, "2024-06-01T00:00:00Z"),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandOccurrences(start, end, tt.rule, tt.until)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d occurrences, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !got[i].Start.Equal(tt.want[i].Start) || !got[i].End.Equal(tt.want[i].End) {
					t.Errorf("occurrence %d: got [%v, %v), want [%v, %v)",
						i, got[i].Start, got[i].End, tt.want[i].Start, tt.want[i].End)
				}
			}
		})
	}
}

func TestExpandOccurrencesMonthlyAnchoredToParent(t *testing.T) {
	start := mustTime(t, "2024-01-31T10:00:00Z")
	end := mustTime(t, "2024-01-31T11:00:00Z")
	until := mustTime(t, "2024-04-30T23:59:59Z")

	got := expandOccurrences(start, end, entity.RecurrenceMonthly, until)

	// Jan 31 + 1 month normalizes to Mar 2 (2024 is a leap year), and
	// every later occurrence steps from the parent date, not the
	// normalized one.
	want := []time.Time{
		mustTime(t, "2024-03-02T10:00:00Z"),
		mustTime(t, "2024-03-31T10:00:00Z"),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences, want %d", len(got), len(want))
	}
	for i := range got {
		if !got[i].Start.Equal(want[i]) {
			t.Errorf("occurrence %d start: got %v, want %v", i, got[i].Start, want[i])
		}
		if d := got[i].End.Sub(got[i].Start); d != time.Hour {
			t.Errorf("occurrence %d duration: got %v, want 1h", i, d)
		}
	}
}
