// Package inputval validates user-supplied field values before they reach
// the stores. Policy decisions (who may do something) live in the policy
// packages; this package only answers whether a value is well-formed.
package inputval

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dalemusser/grouphub/internal/domain/models"
)

const (
	maxNameLen     = 100
	maxTitleLen    = 255
	maxLabelLen    = 64
	maxUsernameLen = 150
	minPasswordLen = 8
)

// ValidateEmail checks the shape of an email address. The store's unique
// index handles duplicates; this only rejects obviously malformed input.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return fmt.Errorf("email is not valid")
	}
	return nil
}

// ValidateUsername checks a display username.
func ValidateUsername(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("username is required")
	}
	if len(name) > maxUsernameLen {
		return fmt.Errorf("username must be at most %d characters", maxUsernameLen)
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(pw string) error {
	if len(pw) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

// ValidateName checks a group or course name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("name must be at most %d characters", maxNameLen)
	}
	return nil
}

// ValidateTitle checks a material title.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLen {
		return fmt.Errorf("title must be at most %d characters", maxTitleLen)
	}
	return nil
}

// ValidateLabelName checks a label name.
func ValidateLabelName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > maxLabelLen {
		return fmt.Errorf("name must be at most %d characters", maxLabelLen)
	}
	return nil
}

// ValidateJoinType checks a group join_type value.
func ValidateJoinType(v string) error {
	switch v {
	case models.JoinOpen, models.JoinTypeRequest, models.JoinInvite:
		return nil
	}
	return fmt.Errorf("join_type must be one of open, request, invite")
}

// ValidatePostPermission checks a group post_permission value.
func ValidatePostPermission(v string) error {
	switch v {
	case models.PostMembers, models.PostModerators, models.PostAdmins, models.PostOwner:
		return nil
	}
	return fmt.Errorf("post_permission must be one of members, moderators, admins, owner")
}

// ValidateEditPermissions checks a group edit_permissions value.
func ValidateEditPermissions(v string) error {
	switch v {
	case models.EditModerators, models.EditAdmins, models.EditOwner:
		return nil
	}
	return fmt.Errorf("edit_permissions must be one of moderators, admins, owner")
}

// ValidateRole checks a membership role value.
func ValidateRole(v string) error {
	if !models.ValidRole(v) {
		return fmt.Errorf("role must be one of member, moderator, admin")
	}
	return nil
}

// ValidateLabelRange checks a label's numeric range.
func ValidateLabelRange(min, max int) error {
	if min < 0 || max < 0 {
		return fmt.Errorf("label range values must not be negative")
	}
	if min > max {
		return fmt.Errorf("min_value must not exceed max_value")
	}
	return nil
}

// videoHosts are the providers accepted for URL materials.
var videoHosts = []string{
	"youtube.com",
	"youtu.be",
	"drive.google.com",
	"vimeo.com",
}

// ValidateMaterialURL checks that a URL material points at one of the
// accepted video providers over http(s).
func ValidateMaterialURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("url must be a valid http(s) URL")
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	for _, allowed := range videoHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return nil
		}
	}
	return fmt.Errorf("url must be a video URL from one of: %s", strings.Join(videoHosts, ", "))
}

// allowedFileExts are the upload types accepted for document materials.
var allowedFileExts = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true,
	".ppt": true, ".pptx": true,
	".xls": true, ".xlsx": true,
	".txt": true,
}

// ValidateMaterialFileName checks the extension of an uploaded file.
func ValidateMaterialFileName(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedFileExts[ext] {
		return fmt.Errorf("file type %q is not allowed", ext)
	}
	return nil
}

// ValidateFileSize checks an upload against the configured limit.
func ValidateFileSize(size, maxBytes int64) error {
	if size <= 0 {
		return fmt.Errorf("file is empty")
	}
	if size > maxBytes {
		return fmt.Errorf("file size must be under %d bytes, got %d", maxBytes, size)
	}
	return nil
}
