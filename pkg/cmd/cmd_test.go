package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/catalog"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(args)
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestCommands(t *testing.T) {
	ts := httptest.NewServer(catalog.NewHandler("", nil,
		dal.Car{CarID: "f1", Brand: "Ford", Model: "Focus", Price: 12000},
		dal.Car{CarID: "h1", Brand: "Honda", Model: "Civic", Price: 18500},
		dal.Car{CarID: "f2", Brand: "Ford", Model: "Ranger", Price: 31000, Description: "Midsize truck"},
	))
	defer ts.Close()

	out := execute(t, "browse", "--api-url", ts.URL, "--brand", "Honda", "--log-level", "error")
	if !strings.Contains(out, "Honda Civic") || strings.Contains(out, "Ford Focus") || !strings.Contains(out, "1 vehicle") {
		t.Errorf("unexpected browse output:\n%s", out)
	}

	image := filepath.Join(t.TempDir(), "ranger.png")
	if err := os.WriteFile(image, []byte("PNG"), 0o600); err != nil {
		t.Fatal(err)
	}
	out = execute(t, "upload", image, "--api-url", ts.URL)
	if !strings.HasPrefix(out, ts.URL+"/objects/") {
		t.Errorf("unexpected upload output: %q", out)
	}

	out = execute(t, "cars", "update", "f2", "--api-url", ts.URL, "--price", "29500")
	if !strings.Contains(out, "Car updated: f2") {
		t.Errorf("unexpected update output: %q", out)
	}
	out = execute(t, "cars", "get", "f2", "--api-url", ts.URL)
	if !strings.Contains(out, "$29,500") || !strings.Contains(out, "truck") {
		t.Errorf("unexpected get output:\n%s", out)
	}

	out = execute(t, "cars", "delete", "f1", "--api-url", ts.URL)
	if !strings.Contains(out, "Car deleted: f1") {
		t.Errorf("unexpected delete output: %q", out)
	}
	out = execute(t, "cars", "list", "--api-url", ts.URL)
	if strings.Contains(out, "Ford Focus") || !strings.Contains(out, "2 vehicles") {
		t.Errorf("unexpected list output:\n%s", out)
	}
}
