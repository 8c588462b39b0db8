package models

import (
	"errors"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPreset_String(t *testing.T) {
	tests := []struct {
		name string
		p    Preset
		want string
	}{
		{"Yesterday", PresetYesterday, "yesterday"},
		{"Week", PresetWeek, "week"},
		{"Month", PresetMonth, "month"},
		{"All", PresetAll, "all"},
		{"Custom", PresetCustom, "custom"},
		{"Unknown", Preset(42), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.String(); got != tt.want {
				t.Errorf("Preset.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPreset_Next(t *testing.T) {
	if got := PresetCustom.Next(); got != PresetYesterday {
		t.Errorf("PresetCustom.Next() = %v, want %v", got, PresetYesterday)
	}
	if got := PresetWeek.Next(); got != PresetMonth {
		t.Errorf("PresetWeek.Next() = %v, want %v", got, PresetMonth)
	}
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset(" Month ")
	if err != nil || p != PresetMonth {
		t.Errorf("ParsePreset(Month) = %v, %v", p, err)
	}
	if _, err := ParsePreset("fortnight"); err == nil {
		t.Error("ParsePreset(fortnight) should fail")
	}
}

func TestTimeWindow_SelectPresetClearsDates(t *testing.T) {
	for _, p := range []Preset{PresetYesterday, PresetWeek, PresetMonth, PresetAll} {
		t.Run(p.String(), func(t *testing.T) {
			w := NewTimeWindow(PresetYesterday)
			w.SetStart(date("2025-01-01"))
			w.SetEnd(date("2025-01-31"))
			if w.Preset != PresetCustom {
				t.Fatalf("setting dates should switch to custom, got %v", w.Preset)
			}

			w.SelectPreset(p)

			if w.Start != nil || w.End != nil {
				t.Errorf("SelectPreset(%v) kept dates %v..%v", p, w.Start, w.End)
			}
			if w.Preset != p {
				t.Errorf("Preset = %v, want %v", w.Preset, p)
			}
		})
	}
}

func TestTimeWindow_SelectCustomKeepsDates(t *testing.T) {
	w := NewTimeWindow(PresetWeek)
	w.SetStart(date("2025-02-01"))
	w.SelectPreset(PresetCustom)

	if w.Start == nil {
		t.Error("switching to custom should not discard the start date")
	}
	if w.Preset != PresetCustom {
		t.Errorf("Preset = %v, want custom", w.Preset)
	}
}

func TestTimeWindow_Validate(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{"complete", "2025-01-01", "2025-01-31", nil},
		{"same day", "2025-01-01", "2025-01-01", nil},
		{"missing end", "2025-01-01", "", ErrIncompleteRange},
		{"missing start", "", "2025-01-01", ErrIncompleteRange},
		{"inverted", "2025-02-01", "2025-01-01", ErrInvertedRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewTimeWindow(PresetCustom)
			if tt.start != "" {
				w.SetStart(date(tt.start))
			}
			if tt.end != "" {
				w.SetEnd(date(tt.end))
			}
			if err := w.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTimeWindow_ToggleCompare(t *testing.T) {
	w := NewTimeWindow(PresetMonth)
	w.ToggleCompare()
	if !w.Compare {
		t.Fatal("expected compare on")
	}
	w.ToggleCompare()
	if w.Compare {
		t.Fatal("expected compare off")
	}
}

func TestTimeWindow_Resolve(t *testing.T) {
	tests := []struct {
		name         string
		window       func() TimeWindow
		wantInsights string
		wantRange    string
	}{
		{
			name:         "preset",
			window:       func() TimeWindow { return NewTimeWindow(PresetMonth) },
			wantInsights: "period=month",
			wantRange:    "",
		},
		{
			name: "preset with compare",
			window: func() TimeWindow {
				w := NewTimeWindow(PresetWeek)
				w.ToggleCompare()
				return w
			},
			wantInsights: "compare=true&period=week",
			wantRange:    "",
		},
		{
			name: "custom range",
			window: func() TimeWindow {
				w := NewTimeWindow(PresetYesterday)
				w.SetStart(date("2025-03-01"))
				w.SetEnd(date("2025-03-15"))
				w.ToggleCompare()
				return w
			},
			wantInsights: "compare=true&end_date=2025-03-15&start_date=2025-03-01",
			wantRange:    "end_date=2025-03-15&start_date=2025-03-01",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := tt.window().Resolve()
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got := q.InsightsParams().Encode(); got != tt.wantInsights {
				t.Errorf("InsightsParams() = %q, want %q", got, tt.wantInsights)
			}
			if got := q.RangeParams().Encode(); got != tt.wantRange {
				t.Errorf("RangeParams() = %q, want %q", got, tt.wantRange)
			}
			if q.Period != "" && q.HasRange() {
				t.Error("query carries both a period and explicit bounds")
			}
		})
	}
}

func TestTimeWindow_ResolveRejectsIncomplete(t *testing.T) {
	w := NewTimeWindow(PresetCustom)
	w.SetStart(date("2025-03-01"))
	if _, err := w.Resolve(); !errors.Is(err, ErrIncompleteRange) {
		t.Errorf("Resolve() error = %v, want %v", err, ErrIncompleteRange)
	}
}

func TestQuery_KeyDistinguishesCompare(t *testing.T) {
	a := Query{Period: "month"}
	b := Query{Period: "month", Compare: true}
	if a.Key() == b.Key() {
		t.Error("compare flag should change the query key")
	}
	if a.RangeKey() != b.RangeKey() {
		t.Error("compare flag should not change the range key")
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2025-13-01"); err == nil {
		t.Error("expected error for invalid month")
	}
	got, err := ParseDate("2025-06-30")
	if err != nil {
		t.Fatal(err)
	}
	if got.Format(DateLayout) != "2025-06-30" {
		t.Errorf("ParseDate() = %v", got)
	}
}
