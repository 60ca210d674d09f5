package javascript

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/depscout/depscout/pkg/scan"
)

func TestPackageJSONParser(t *testing.T) {
	data := []byte(`{
  "name": "demo",
  "version": "1.0.0",
  "dependencies": {
    "react": "^18.2.0",
    "@babel/core": "^7.22.0"
  },
  "devDependencies": {
    "typescript": "~5.1.0"
  },
  "peerDependencies": {
    "react-dom": ">=18"
  }
}`)
	p := &PackageJSONParser{}
	names, err := p.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// Manifest keys stay verbatim: the scoped package keeps its full name.
	want := []string{"@babel/core", "react", "react-dom", "typescript"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestPackageJSONParserInvalid(t *testing.T) {
	p := &PackageJSONParser{}
	if _, err := p.Parse([]byte("{broken")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestPackageJSONSupports(t *testing.T) {
	p := &PackageJSONParser{}
	if !p.Supports("package.json") {
		t.Error("Supports(package.json) should be true")
	}
	if p.Supports("package-lock.json") {
		t.Error("package-lock.json is not a dependency manifest here")
	}
}

func TestEcosystemDropsMalformedManifestKeys(t *testing.T) {
	root := t.TempDir()
	pkg := `{"dependencies": {
		"react": "^18.0.0",
		"@babel/core": "^7.0.0",
		"bad name; rm -rf /": "1.0.0",
		"$(whoami)": "1.0.0"
	}}`
	if err := os.WriteFile(filepath.Join(root, "package.json"), []byte(pkg), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := scan.Run(context.Background(), scan.Request{Root: root, Ecosystem: Ecosystem}, scan.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"@babel/core", "react"}
	if len(res.Names) != len(want) {
		t.Fatalf("Names = %v, want %v", res.Names, want)
	}
	for i := range want {
		if res.Names[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, res.Names[i], want[i])
		}
	}
}

func TestEcosystemEndToEnd(t *testing.T) {
	root := t.TempDir()
	src := `
import React from 'react';
import _ from 'lodash';
const fs = require('fs');
import helper from './helper';
`
	if err := os.WriteFile(filepath.Join(root, "app.jsx"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	pkg := `{"dependencies": {"express": "^4.18.0"}}`
	if err := os.WriteFile(filepath.Join(root, "package.json"), []byte(pkg), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := scan.Run(context.Background(), scan.Request{Root: root, Ecosystem: Ecosystem}, scan.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"express", "lodash", "react"}
	if len(res.Names) != len(want) {
		t.Fatalf("Names = %v, want %v", res.Names, want)
	}
	for i := range want {
		if res.Names[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, res.Names[i], want[i])
		}
	}
}
