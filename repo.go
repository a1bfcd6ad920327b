package repodoc

import "strings"

// Repo identifies a repository on the hosting platform.
type Repo struct {
	// Namespace is the group or user owning the project. Nested groups are
	// expressed with slashes, e.g. "group/subgroup".
	Namespace string `json:"namespace"`

	// Project is the project slug within the namespace.
	Project string `json:"project"`
}

// ParseRepo parses a "namespace/project" string. The namespace may itself
// contain slashes for nested groups; the final segment is the project.
func ParseRepo(s string) (Repo, error) {
	s = strings.Trim(s, "/")
	i := strings.LastIndex(s, "/")
	if i < 0 {
		return Repo{}, Errorf(EINVALID, "repository must be in namespace/project form, got %q", s)
	}
	repo := Repo{Namespace: s[:i], Project: s[i+1:]}
	if err := repo.Validate(); err != nil {
		return Repo{}, err
	}
	return repo, nil
}

// Validate returns an error if the repo contains invalid fields.
func (r Repo) Validate() error {
	if r.Namespace == "" {
		return Errorf(EINVALID, "repository namespace required")
	}
	if r.Project == "" {
		return Errorf(EINVALID, "repository project required")
	}
	if strings.Contains(r.Project, "/") {
		return Errorf(EINVALID, "repository project must not contain slashes")
	}
	return nil
}

// String returns the "namespace/project" form.
func (r Repo) String() string {
	return r.Namespace + "/" + r.Project
}
