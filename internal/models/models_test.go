package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestScoreBadge(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{85, "red"},
		{70, "red"},
		{69.9, "yellow"},
		{40, "yellow"},
		{39.9, "green"},
		{0, "green"},
	}
	for _, tc := range cases {
		if got := ScoreBadge(tc.score); got != tc.want {
			t.Errorf("ScoreBadge(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestResolvedScorePrecedence(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	cases := []struct {
		name   string
		result ComparisonResult
		want   float64
	}{
		{"web score wins", ComparisonResult{WebScore: f(80), SimilarityScore: f(60), Similarity: f(40)}, 80},
		{"similarity score next", ComparisonResult{SimilarityScore: f(60), Similarity: f(40)}, 60},
		{"similarity last", ComparisonResult{Similarity: f(40)}, 40},
		{"all absent", ComparisonResult{}, 0},
		// First populated field wins even when a later one is larger.
		{"no max semantics", ComparisonResult{WebScore: f(10), SimilarityScore: f(90)}, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.result.ResolvedScore(); got != tc.want {
				t.Fatalf("ResolvedScore = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	err := NewValidationError("bad input")
	if !IsValidation(err) {
		t.Fatal("direct validation error not recognized")
	}
	if !IsValidation(fmt.Errorf("wrapped: %w", err)) {
		t.Fatal("wrapped validation error not recognized")
	}
	if IsValidation(errors.New("plain")) {
		t.Fatal("plain error misclassified as validation")
	}
}
