package utils

import (
	"testing"
)

func TestExtractModuleName(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"simple.l", "simple"},
		{"path/to/module.l", "module"},
		{"module", "module"},
		{"/absolute/path/to/mod.l", "mod"},
		{".l", ""}, // Edge case: just extension
		{"name.with.dots.l", "name.with.dots"},
		{"header.lpp", "header"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := ExtractModuleName(tt.path)
			if got != tt.expected {
				t.Errorf("ExtractModuleName(%q) = %q; want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestGetModuleDir(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"path/to/file.l", "path/to"},
		{"file.l", "."},
		{"/abs/file.l", "/abs"},
		{"header.lpp", "."},
		{"path/to/dir", "path/to/dir"},
		{"/abs/dir", "/abs/dir"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := GetModuleDir(tt.path)
			if got != tt.expected {
				t.Errorf("GetModuleDir(%q) = %q; want %q", tt.path, got, tt.expected)
			}
		})
	}
}
