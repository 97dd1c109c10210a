package utils

import "testing"

func TestIconKey(t *testing.T) {
	tests := []struct {
		kind     string
		name     string
		filename string
		want     string
	}{
		{"badges", "Night Owl", "upload.png", "icons/badges/night-owl.png"},
		{"badges", "Night Owl", "UPLOAD.SVG", "icons/badges/night-owl.svg"},
		{"achievements", "Task Master III", "icon.webp", "icons/achievements/task-master-iii.webp"},
		{"achievements", "Über Planner", "photo.jpeg", "icons/achievements/uber-planner.jpeg"},
		{"badges", "First Steps", "noext", "icons/badges/first-steps.png"},
		{"badges", "First Steps", "payload.exe", "icons/badges/first-steps.png"},
	}

	for _, tt := range tests {
		if got := IconKey(tt.kind, tt.name, tt.filename); got != tt.want {
			t.Errorf("IconKey(%q, %q, %q) = %q, want %q", tt.kind, tt.name, tt.filename, got, tt.want)
		}
	}
}
