package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleCSV = `W,Q2,cos_theta,phi_deg,delta_ratio,asym_ratio,kin_ok,delta_ok,asym_ok
1.6975,0.4105,0.0,18,1.01,0.97,1,1,1
1.6975,0.4105,0.0,54,1.02,0.98,1,1,0
`

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestLoad_CSV(t *testing.T) {
	path := writeTempCSV(t, sampleCSV)
	tab, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tab.N != 2 {
		t.Fatalf("rows: got %d want 2", tab.N)
	}
	if tab.Path != path {
		t.Fatalf("path not recorded: %q", tab.Path)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatalf("expected TransportError")
	}
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
}

func TestLoad_HeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "W,Q2,cos_theta,phi_deg,delta_ratio,asym_ratio,kin_ok,delta_ok,asym_ok\n")
	_, err := Load(path)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("header-only file should be a TransportError, got %T: %v", err, err)
	}
}

func TestLoad_MissingColumnKeepsType(t *testing.T) {
	path := writeTempCSV(t, "W,Q2\n1.7,0.4\n")
	_, err := Load(path)
	var mce *MissingColumnError
	if !errors.As(err, &mce) {
		t.Fatalf("expected *MissingColumnError, got %T: %v", err, err)
	}
}
