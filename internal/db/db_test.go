package db

import (
	"testing"

	"github.com/bid2ship/bid2ship/internal/router/config"
)

func TestConnString(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		want    string
		wantErr bool
	}{
		{
			name: "explicit conn string wins",
			cfg: config.Config{
				PostgresConn: "postgresql://app:secret@db:5432/bid2ship",
				PostgresUser: "other",
			},
			want: "postgresql://app:secret@db:5432/bid2ship",
		},
		{
			name: "composed from discrete fields",
			cfg: config.Config{
				PostgresUser: "app",
				PostgresPass: "secret",
				PostgresHost: "db",
				PostgresPort: "5432",
				PostgresDB:   "bid2ship",
			},
			want: "postgresql://app:secret@db:5432/bid2ship",
		},
		{
			name: "missing discrete field",
			cfg: config.Config{
				PostgresUser: "app",
				PostgresPass: "secret",
				PostgresHost: "db",
				PostgresPort: "5432",
			},
			wantErr: true,
		},
		{
			name:    "empty config",
			cfg:     config.Config{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConnString(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
