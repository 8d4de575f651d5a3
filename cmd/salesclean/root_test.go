package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/salesclean/internal/config"
	"github.com/JonMunkholm/salesclean/internal/core"
)

func emptyConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(func(string) string { return "" })
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

// workdir makes a temp dir holding the batch layout and switches into it.
func workdir(t *testing.T, raw string) string {
	t.Helper()
	dir := t.TempDir()
	for _, sub := range []string{"data/raw", "data/processed"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if raw != "" {
		if err := os.WriteFile(filepath.Join(dir, core.DefaultInputPath), []byte(raw), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)
	return dir
}

func TestRunBatch(t *testing.T) {
	dir := workdir(t, "Price,Qty,ProdName,Category\n10,5, Shoes ,Footwear \n-5,3,Boots,Footwear\n")

	var stdout bytes.Buffer
	if err := runBatch(context.Background(), emptyConfig(t), &stdout); err != nil {
		t.Fatalf("runBatch: %v", err)
	}

	wantNotices := "Loading: " + core.DefaultInputPath + "\n" +
		"Saved cleaned file to: " + core.DefaultOutputPath + "\n"
	if stdout.String() != wantNotices {
		t.Errorf("stdout = %q, want %q", stdout.String(), wantNotices)
	}

	got, err := os.ReadFile(filepath.Join(dir, core.DefaultOutputPath))
	if err != nil {
		t.Fatal(err)
	}
	if want := "price,qty,prodname,category\n10,5,Shoes,Footwear\n"; string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunBatch_MissingInput(t *testing.T) {
	dir := workdir(t, "")

	var stdout bytes.Buffer
	err := runBatch(context.Background(), emptyConfig(t), &stdout)
	if err == nil {
		t.Fatal("expected error for missing input")
	}
	if msg := userError(err); !strings.Contains(msg, "FILE006") {
		t.Errorf("userError = %q, want FILE006", msg)
	}
	if _, statErr := os.Stat(filepath.Join(dir, core.DefaultOutputPath)); !os.IsNotExist(statErr) {
		t.Error("output written despite failed load")
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)

	if got := out.String(); got != "salesclean dev\n" {
		t.Errorf("version output = %q", got)
	}
}
