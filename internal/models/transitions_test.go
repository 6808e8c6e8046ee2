package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobTransitions(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{JobStatusOpen, JobStatusPaused, true},
		{JobStatusOpen, JobStatusClosed, true},
		{JobStatusPaused, JobStatusOpen, true},
		{JobStatusPaused, JobStatusClosed, true},
		{JobStatusClosed, JobStatusOpen, false},
		{JobStatusClosed, JobStatusPaused, false},
		{JobStatusOpen, JobStatusOpen, false},
		{JobStatusOpen, "archived", false},
		{"", JobStatusOpen, false},
	}

	for _, tc := range cases {
		got := CanTransitionJob(tc.from, tc.to)
		assert.Equal(t, tc.allowed, got, "transition %s -> %s", tc.from, tc.to)
	}
}

func TestApplicationTransitions(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{ApplicationStatusSubmitted, ApplicationStatusShortlisted, true},
		{ApplicationStatusSubmitted, ApplicationStatusRejected, true},
		{ApplicationStatusSubmitted, ApplicationStatusAccepted, true},
		{ApplicationStatusShortlisted, ApplicationStatusAccepted, true},
		{ApplicationStatusShortlisted, ApplicationStatusRejected, true},
		{ApplicationStatusShortlisted, ApplicationStatusSubmitted, false},
		{ApplicationStatusRejected, ApplicationStatusAccepted, false},
		{ApplicationStatusAccepted, ApplicationStatusRejected, false},
		{ApplicationStatusAccepted, ApplicationStatusAccepted, false},
	}

	for _, tc := range cases {
		got := CanTransitionApplication(tc.from, tc.to)
		assert.Equal(t, tc.allowed, got, "transition %s -> %s", tc.from, tc.to)
	}
}

func TestApplicationBeforeCreateForcesSubmitted(t *testing.T) {
	app := &Application{Status: ApplicationStatusAccepted}
	app.BeforeCreate()

	assert.Equal(t, ApplicationStatusSubmitted, app.Status)
	assert.False(t, app.ID.IsZero())
	assert.False(t, app.CreatedAt.IsZero())
}
