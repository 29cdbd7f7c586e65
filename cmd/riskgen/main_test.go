package main

import "testing"

func TestStoreConfig(t *testing.T) {
	const ns = "6ba7b811-9dad-11d1-80b4-00c04fd430c8"

	tests := []struct {
		name      string
		dbFlag    string
		envDSN    string
		namespace string
		wipe      bool
		wantDSN   string
		wantErr   bool
	}{
		{"no store", "", "postgres://env", ns, false, "", false},
		{"wipe uses env", "", "postgres://env", ns, true, "postgres://env", false},
		{"flag wins over env", "postgres://flag", "postgres://env", ns, true, "postgres://flag", false},
		{"flag without wipe", "postgres://flag", "", ns, false, "postgres://flag", false},
		{"wipe without dsn", "", "", ns, true, "", true},
		{"missing namespace", "postgres://flag", "", "", true, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := storeConfig(tc.dbFlag, tc.envDSN, tc.namespace, tc.wipe)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			if tc.wantDSN == "" {
				if cfg != nil {
					t.Fatalf("expected no store, got %+v", cfg)
				}
				return
			}
			if cfg == nil || cfg.DatabaseURL != tc.wantDSN || cfg.Wipe != tc.wipe {
				t.Errorf("unexpected config: %+v", cfg)
			}
		})
	}
}
