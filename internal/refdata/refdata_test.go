package refdata

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaults(t *testing.T) {
	ref := Defaults()

	if got := len(ref.BloodGroups); got != 4 {
		t.Errorf("expected 4 blood groups, got %d", got)
	}
	if ref.Genders[0] != "Laki-laki" || ref.Genders[1] != "Perempuan" {
		t.Errorf("unexpected genders %v", ref.Genders)
	}
	if len(ref.Products) != 9 {
		t.Errorf("expected 9 products, got %d", len(ref.Products))
	}
	if ref.HemoTypes[3] != "Other" {
		t.Errorf("unexpected hemo types %v", ref.HemoTypes)
	}
}

func TestLoad_NilPoolReturnsDefaults(t *testing.T) {
	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	ref := Load(context.Background(), nil, logger)
	if len(ref.Severities) != 4 || ref.Severities[0] != "Ringan" {
		t.Errorf("unexpected severities %v", ref.Severities)
	}
}

func TestOrderSeverities(t *testing.T) {
	tests := []struct {
		name  string
		in    []string
		first string
	}{
		{"alphabetical from enum", []string{"Berat", "Ringan", "Sedang", "Tidak diketahui"}, "Ringan"},
		{"custom labels kept as is", []string{"Mild", "Severe"}, "Mild"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orderSeverities(tt.in)
			if got[0] != tt.first {
				t.Errorf("expected first %q, got %v", tt.first, got)
			}
		})
	}
}
