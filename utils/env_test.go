package utils

import (
	"dietplan-go-worker/structs"
	"testing"
	"time"
)

func TestLockTTL(t *testing.T) {
	defer func(old *structs.EnviromentModel) { EnvConfig = old }(EnvConfig)

	cases := []struct {
		raw  string
		want time.Duration
	}{
		{"", 30 * time.Second},
		{"bogus", 30 * time.Second},
		{"-1s", 30 * time.Second},
		{"5s", 5 * time.Second},
		{"2m", 2 * time.Minute},
	}
	for _, c := range cases {
		EnvConfig = &structs.EnviromentModel{}
		EnvConfig.Redis.LockTTL = c.raw
		if got := LockTTL(); got != c.want {
			t.Errorf("LockTTL(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestLocationFallsBackToLocal(t *testing.T) {
	defer func(old *structs.EnviromentModel) { EnvConfig = old }(EnvConfig)

	EnvConfig = nil
	if Location() != time.Local {
		t.Fatal("expected time.Local without config")
	}
	EnvConfig = &structs.EnviromentModel{}
	EnvConfig.Server.Timezone = "Not/AZone"
	if Location() != time.Local {
		t.Fatal("expected time.Local for unknown zone")
	}
}
