package ui

import (
	"reflect"
	"testing"

	"github.com/piwi3910/splitgrid/internal/model"
)

func TestParsePalette(t *testing.T) {
	got, err := parsePalette("#ff0000, 00ff00 ,, #0000FF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"#FF0000", "#00FF00", "#0000FF"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParsePaletteEmptyUsesDefault(t *testing.T) {
	got, err := parsePalette("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, model.DefaultPalette) {
		t.Errorf("expected default palette, got %v", got)
	}
}

func TestParsePaletteRejectsBadColor(t *testing.T) {
	if _, err := parsePalette("#FF0000, purple"); err == nil {
		t.Error("expected error for a named color")
	}
}
