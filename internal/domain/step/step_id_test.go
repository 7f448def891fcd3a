package step

import (
	"errors"
	"testing"
)

func TestNewStepID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "valid simple ID",
			input:   "apt:install:nginx",
			wantErr: nil,
		},
		{
			name:    "valid with hyphens",
			input:   "apt:install:build-essential",
			wantErr: nil,
		},
		{
			name:    "valid with dots",
			input:   "apt:install:docker.io",
			wantErr: nil,
		},
		{
			name:    "valid rule spec with slash",
			input:   "ufw:allow:3000-3010/tcp",
			wantErr: nil,
		},
		{
			name:    "valid package name with plus",
			input:   "apt:install:g++",
			wantErr: nil,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: ErrEmptyStepID,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: ErrEmptyStepID,
		},
		{
			name:    "contains spaces",
			input:   "apt:install:not a package",
			wantErr: ErrInvalidStepID,
		},
		{
			name:    "leading colon",
			input:   ":install:nginx",
			wantErr: ErrInvalidStepID,
		},
		{
			name:    "trailing colon",
			input:   "apt:install:",
			wantErr: ErrInvalidStepID,
		},
		{
			name:    "shell metacharacters",
			input:   "apt:install:nginx;rm",
			wantErr: ErrInvalidStepID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewStepID(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewStepID(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr == nil && id.IsZero() {
				t.Errorf("NewStepID(%q) returned zero ID", tt.input)
			}
		})
	}
}

func TestStepID_Provider(t *testing.T) {
	id := MustNewStepID("ufw:allow:443")
	if got := id.Provider(); got != "ufw" {
		t.Errorf("Provider() = %q, want %q", got, "ufw")
	}
}

func TestStepID_Equals(t *testing.T) {
	a := MustNewStepID("apt:update")
	b := MustNewStepID("apt:update")
	c := MustNewStepID("apt:install:nginx")

	if !a.Equals(b) {
		t.Error("identical IDs should be equal")
	}
	if a.Equals(c) {
		t.Error("different IDs should not be equal")
	}
}

func TestMustNewStepID_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNewStepID with invalid input should panic")
		}
	}()
	MustNewStepID("not valid!")
}
