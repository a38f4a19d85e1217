package hub

import (
	"fmt"
	"strings"
)

// ResolveRepo determines the target repository id. An explicit
// override (the --repo-name flag) wins; otherwise the upload target
// selects between the personal and organization repo paths. A missing
// mapped value or an unknown target is a configuration error, raised
// before any network call.
func ResolveRepo(override, target, personalRepo, orgRepo string) (string, error) {
	repo := override
	if repo == "" {
		switch target {
		case "personal":
			if personalRepo == "" {
				return "", fmt.Errorf("UPLOAD_TARGET is 'personal', but PERSONAL_HUB_REPO_PATH is not set")
			}
			repo = personalRepo
		case "organization":
			if orgRepo == "" {
				return "", fmt.Errorf("UPLOAD_TARGET is 'organization', but ORG_HUB_REPO_PATH is not set")
			}
			repo = orgRepo
		default:
			return "", fmt.Errorf("invalid UPLOAD_TARGET %q: use 'personal' or 'organization'", target)
		}
	}

	if err := ValidateRepoID(repo); err != nil {
		return "", err
	}
	return repo, nil
}

// ValidateRepoID checks the namespace/name form of a repository id
func ValidateRepoID(repo string) error {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("malformed repository id %q: expected 'namespace/name'", repo)
	}
	return nil
}
