package service

import (
	"strconv"
	"testing"
	"time"

	"github.com/Vihaan004/Map-My-Major-sub000/internal/model"
)

func TestGenerateSemesters(t *testing.T) {
	tests := []struct {
		name   string
		term   string
		summer bool
		want   []string
	}{
		{"fall start without summers", model.TermFall, false, []string{"FALL 2024", "SPRING 2025", "FALL 2025", "SPRING 2026"}},
		{"spring start with summers", model.TermSpring, true, []string{"SPRING 2024", "SUMMER 2024", "FALL 2024", "SPRING 2025"}},
		{"summer start keeps the summer", model.TermSummer, false, []string{"SUMMER 2024", "FALL 2024", "SPRING 2025", "FALL 2025"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generateSemesters("m", tt.term, 2024, 4, tt.summer)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d semesters, got %d", len(tt.want), len(got))
			}
			for i, sem := range got {
				label := sem.Term + " " + strconv.Itoa(sem.Year)
				if label != tt.want[i] || sem.Position != i {
					t.Errorf("semester %d: expected %s@%d, got %s@%d", i, tt.want[i], i, label, sem.Position)
				}
			}
		})
	}
}

func TestSortSemesters(t *testing.T) {
	sems := []model.Semester{
		{Term: model.TermFall, Year: 2025},
		{Term: model.TermSummer, Year: 2025},
		{Term: model.TermFall, Year: 2024},
		{Term: model.TermSpring, Year: 2025},
	}
	sortSemesters(sems)

	want := []string{"FALL 2024", "SPRING 2025", "SUMMER 2025", "FALL 2025"}
	for i, sem := range sems {
		if got := sem.Term + " " + strconv.Itoa(sem.Year); got != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got)
		}
	}
}

func TestTermDates(t *testing.T) {
	start, end := termDates(model.TermFall, 2024)
	if !start.Equal(time.Date(2024, time.August, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected fall start %v", start)
	}
	if !end.Equal(time.Date(2024, time.December, 16, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected fall end %v", end)
	}
	if s, e := termDates(model.TermSpring, 2025); !s.Before(e) || s.Month() != time.January {
		t.Errorf("unexpected spring span %v - %v", s, e)
	}
}
