package infra_test

import (
	"os"
	"path/filepath"
	"testing"

	"todoweb/internal/infra"
)

func writeDecl(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decl.cue")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write declaration: %v", err)
	}
	return path
}

func TestLoad_EmbeddedDeclaration(t *testing.T) {
	decl, err := infra.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if decl.Instance.Region != "us-east-1" {
		t.Errorf("expected region us-east-1, got %q", decl.Instance.Region)
	}
	if decl.Instance.AMI == "" {
		t.Error("expected non-empty AMI")
	}
	if decl.Instance.Type != "t2.micro" {
		t.Errorf("expected instance type t2.micro, got %q", decl.Instance.Type)
	}
	if decl.Instance.KeyName == "" {
		t.Error("expected non-empty key name")
	}
	if decl.Bucket.Name != "todoweb-artifacts" {
		t.Errorf("expected bucket todoweb-artifacts, got %q", decl.Bucket.Name)
	}
}

func TestLoadFile_Valid(t *testing.T) {
	path := writeDecl(t, `
instance: {
	region:  "eu-west-1"
	ami:     "ami-0123456789abcdef0"
	type:    "t3.small"
	subnet:  "subnet-0a1b2c3d"
	keyName: "other-key"
}
bucket: {
	name: "other-bucket"
}
`)

	decl, err := infra.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if decl.Instance.Region != "eu-west-1" {
		t.Errorf("expected region eu-west-1, got %q", decl.Instance.Region)
	}
	if decl.Bucket.Name != "other-bucket" {
		t.Errorf("expected bucket other-bucket, got %q", decl.Bucket.Name)
	}
}

func TestLoadFile_MissingField(t *testing.T) {
	path := writeDecl(t, `
instance: {
	region:  "eu-west-1"
	ami:     "ami-0123456789abcdef0"
	type:    "t3.small"
	subnet:  "subnet-0a1b2c3d"
	keyName: "other-key"
}
`)

	if _, err := infra.LoadFile(path); err == nil {
		t.Fatal("expected error for missing bucket")
	}
}

func TestLoadFile_BadAMI(t *testing.T) {
	path := writeDecl(t, `
instance: {
	region:  "eu-west-1"
	ami:     "not-an-ami"
	type:    "t3.small"
	subnet:  "subnet-0a1b2c3d"
	keyName: "other-key"
}
bucket: {
	name: "other-bucket"
}
`)

	if _, err := infra.LoadFile(path); err == nil {
		t.Fatal("expected error for malformed ami")
	}
}

func TestLoadFile_UnknownField(t *testing.T) {
	path := writeDecl(t, `
instance: {
	region:  "eu-west-1"
	ami:     "ami-0123456789abcdef0"
	type:    "t3.small"
	subnet:  "subnet-0a1b2c3d"
	keyName: "other-key"
	count:   3
}
bucket: {
	name: "other-bucket"
}
`)

	if _, err := infra.LoadFile(path); err == nil {
		t.Fatal("expected error for field outside the schema")
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	if _, err := infra.LoadFile(filepath.Join(t.TempDir(), "missing.cue")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
