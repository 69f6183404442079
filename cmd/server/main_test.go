package main

import "testing"

func TestParsePortDefault(t *testing.T) {
	port, err := parsePort(nil, 8288)
	if err != nil {
		t.Fatalf("parsePort: %v", err)
	}
	if port != 8288 {
		t.Fatalf("expected fallback 8288, got %d", port)
	}
}

func TestParsePortOverride(t *testing.T) {
	port, err := parsePort([]string{"--port", "9001"}, 8288)
	if err != nil {
		t.Fatalf("parsePort: %v", err)
	}
	if port != 9001 {
		t.Fatalf("expected 9001, got %d", port)
	}
}

func TestParsePortInvalid(t *testing.T) {
	if _, err := parsePort([]string{"--port", "notaport"}, 8288); err == nil {
		t.Fatal("expected error for non-numeric port")
	}
	if _, err := parsePort([]string{"--port", "0"}, 8288); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
	if _, err := parsePort([]string{"--port", "70000"}, 8288); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}
