package services

import (
	"context"
	"testing"

	"github.com/net2mulu/signature-gym/internal/pkg/errors"
)

func TestCatalogService(t *testing.T) {
	svc := NewCatalogService(nil, nil)
	ctx := context.Background()

	gym, err := svc.Gym(ctx)
	if err != nil {
		t.Fatalf("Gym() error = %v", err)
	}
	if len(gym.Zones) != 3 || len(gym.Classes) != 2 || len(gym.AccessMethods) != 3 {
		t.Errorf("Gym() = %d zones, %d classes, %d access methods", len(gym.Zones), len(gym.Classes), len(gym.AccessMethods))
	}

	studio, err := svc.Studio(ctx)
	if err != nil {
		t.Fatalf("Studio() error = %v", err)
	}
	if len(studio.Types) != 3 {
		t.Errorf("Studio() types = %d, want 3", len(studio.Types))
	}

	tests := []struct {
		id      string
		dropIn  int64
		wantErr bool
	}{
		{id: "yoga", dropIn: 1800},
		{id: "pilates", dropIn: 2200},
		{id: "s60", dropIn: 2000},
		{id: "boxing", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			st, err := svc.StudioType(ctx, tt.id)
			if tt.wantErr {
				if !errors.IsNotFound(err) {
					t.Errorf("StudioType() error = %v, want not found", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("StudioType() error = %v", err)
			}
			if st.Pricing.DropIn != tt.dropIn {
				t.Errorf("DropIn = %d, want %d", st.Pricing.DropIn, tt.dropIn)
			}
		})
	}
}
