package inputval_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/grouphub/internal/app/system/inputval"
)

func TestValidateName(t *testing.T) {
	if err := inputval.ValidateName("Algorithms Study Group"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	if err := inputval.ValidateName("   "); err == nil {
		t.Error("blank name accepted")
	}
	if err := inputval.ValidateName(strings.Repeat("x", 101)); err == nil {
		t.Error("overlong name accepted")
	}
}

func TestValidateJoinType(t *testing.T) {
	for _, v := range []string{"open", "request", "invite"} {
		if err := inputval.ValidateJoinType(v); err != nil {
			t.Errorf("join_type %q rejected: %v", v, err)
		}
	}
	if err := inputval.ValidateJoinType("closed"); err == nil {
		t.Error("unknown join_type accepted")
	}
}

func TestValidateRole(t *testing.T) {
	for _, v := range []string{"member", "moderator", "admin"} {
		if err := inputval.ValidateRole(v); err != nil {
			t.Errorf("role %q rejected: %v", v, err)
		}
	}
	if err := inputval.ValidateRole("owner"); err == nil {
		t.Error("owner accepted as a role value")
	}
	if err := inputval.ValidateRole(""); err == nil {
		t.Error("empty role accepted")
	}
}

func TestValidateLabelRange(t *testing.T) {
	if err := inputval.ValidateLabelRange(1, 10); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
	if err := inputval.ValidateLabelRange(5, 5); err != nil {
		t.Errorf("single-value range rejected: %v", err)
	}
	if err := inputval.ValidateLabelRange(10, 1); err == nil {
		t.Error("inverted range accepted")
	}
	if err := inputval.ValidateLabelRange(-1, 1); err == nil {
		t.Error("negative range accepted")
	}
}

func TestValidateMaterialURL(t *testing.T) {
	valid := []string{
		"https://www.youtube.com/watch?v=abc123",
		"https://youtu.be/abc123",
		"https://vimeo.com/12345",
		"https://drive.google.com/file/d/xyz/view",
	}
	for _, u := range valid {
		if err := inputval.ValidateMaterialURL(u); err != nil {
			t.Errorf("%s rejected: %v", u, err)
		}
	}

	invalid := []string{
		"https://example.com/video",
		"ftp://youtube.com/watch",
		"not a url",
		"https://youtube.com.evil.net/watch",
		"",
	}
	for _, u := range invalid {
		if err := inputval.ValidateMaterialURL(u); err == nil {
			t.Errorf("%s accepted", u)
		}
	}
}

func TestValidateMaterialFileName(t *testing.T) {
	for _, name := range []string{"notes.pdf", "Slides.PPTX", "data.xlsx", "readme.txt"} {
		if err := inputval.ValidateMaterialFileName(name); err != nil {
			t.Errorf("%s rejected: %v", name, err)
		}
	}
	for _, name := range []string{"setup.exe", "archive.zip", "noext", "image.png"} {
		if err := inputval.ValidateMaterialFileName(name); err == nil {
			t.Errorf("%s accepted", name)
		}
	}
}

func TestValidateFileSize(t *testing.T) {
	const limit = 100 << 20
	if err := inputval.ValidateFileSize(1024, limit); err != nil {
		t.Errorf("small file rejected: %v", err)
	}
	if err := inputval.ValidateFileSize(limit+1, limit); err == nil {
		t.Error("oversized file accepted")
	}
	if err := inputval.ValidateFileSize(0, limit); err == nil {
		t.Error("empty file accepted")
	}
}
