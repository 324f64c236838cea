package config

import (
	"strings"
	"testing"
)

func TestNormalizeDSNForcesParseTime(t *testing.T) {
	out, err := normalizeDSN("user:pass@tcp(localhost:3306)/faregateway")
	if err != nil {
		t.Fatalf("normalizeDSN: %v", err)
	}
	if !strings.Contains(out, "parseTime=true") {
		t.Errorf("parseTime not forced: %q", out)
	}
	if !strings.Contains(out, "loc=Local") {
		t.Errorf("loc not defaulted to Local: %q", out)
	}
}

func TestNormalizeDSNOverridesParseTimeFalse(t *testing.T) {
	out, err := normalizeDSN("user:pass@tcp(db:3306)/faregateway?parseTime=false")
	if err != nil {
		t.Fatalf("normalizeDSN: %v", err)
	}
	if !strings.Contains(out, "parseTime=true") {
		t.Errorf("explicit parseTime=false must be overridden: %q", out)
	}
}

func TestNormalizeDSNKeepsExplicitLoc(t *testing.T) {
	out, err := normalizeDSN("user:pass@tcp(db:3306)/faregateway?loc=UTC&timeout=5s")
	if err != nil {
		t.Fatalf("normalizeDSN: %v", err)
	}
	if strings.Contains(out, "loc=Local") {
		t.Errorf("explicit loc must be kept: %q", out)
	}
	if !strings.Contains(out, "timeout=5s") {
		t.Errorf("unrelated params must survive: %q", out)
	}
}

func TestNormalizeDSNRejectsGarbage(t *testing.T) {
	if _, err := normalizeDSN("not a dsn at all"); err == nil {
		t.Fatal("expected an error for an unparsable DSN")
	}
}
