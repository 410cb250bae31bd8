package models

import (
	"encoding/json"
	"strings"

	"github.com/jmoiron/sqlx/types"
)

func DefaultHomepageTexts() HomepageTexts {
	return HomepageTexts{
		SiteTitle:         "Nebula Notes",
		HeroBadge:         "MODERN DARK BLOG SYSTEM",
		PrimaryCtaLabel:   "閱讀最新文章",
		SecondaryCtaLabel: "進入後台管理",
		SkillsTitle:       "技能",
		SkillsHint:        "可於後台隨時更新",
		ProjectsTitle:     "精選專案",
		PostsTitle:        "最新文章",
		ViewAllPostsLabel: "查看全部",
	}
}

func DefaultProfileView() ProfileView {
	return ProfileView{
		ID:            ProfileID,
		Name:          "Your Name",
		Role:          "Developer",
		Bio:           "Write your profile in the admin panel.",
		Skills:        []string{},
		Projects:      []Project{},
		HomepageTexts: DefaultHomepageTexts(),
	}
}

// ToProfileView coerces a stored row into a view. A nil row yields the
// default view. Malformed JSON columns never fail: unusable entries are
// dropped and missing texts fall back to their defaults.
func ToProfileView(raw *Profile) ProfileView {
	if raw == nil {
		return DefaultProfileView()
	}

	return ProfileView{
		ID:            raw.ID,
		Name:          raw.Name,
		Role:          raw.Role,
		Bio:           raw.Bio,
		School:        deref(raw.School),
		Location:      deref(raw.Location),
		Email:         deref(raw.Email),
		AvatarURL:     deref(raw.AvatarURL),
		GithubURL:     deref(raw.GithubURL),
		LinkedinURL:   deref(raw.LinkedinURL),
		Skills:        asStringSlice(raw.Skills),
		Projects:      asProjects(raw.Projects),
		HomepageTexts: asHomepageTexts(raw.HomepageTexts),
	}
}

// ToProfileRow is the inverse used when writing: empty optional texts
// become NULL columns.
func ToProfileRow(view ProfileView) (*Profile, error) {
	skills, err := json.Marshal(nonNilStrings(view.Skills))
	if err != nil {
		return nil, err
	}
	projects, err := json.Marshal(nonNilProjects(view.Projects))
	if err != nil {
		return nil, err
	}
	texts, err := json.Marshal(view.HomepageTexts)
	if err != nil {
		return nil, err
	}

	return &Profile{
		ID:            ProfileID,
		Name:          view.Name,
		Role:          view.Role,
		Bio:           view.Bio,
		School:        nullable(view.School),
		Location:      nullable(view.Location),
		Email:         nullable(view.Email),
		AvatarURL:     nullable(view.AvatarURL),
		GithubURL:     nullable(view.GithubURL),
		LinkedinURL:   nullable(view.LinkedinURL),
		Skills:        types.JSONText(skills),
		Projects:      types.JSONText(projects),
		HomepageTexts: types.JSONText(texts),
	}, nil
}

func decodeJSON(raw types.JSONText) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func asStringSlice(raw types.JSONText) []string {
	out := []string{}
	items, ok := decodeJSON(raw).([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func asProjects(raw types.JSONText) []Project {
	out := []Project{}
	items, ok := decodeJSON(raw).([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, okName := record["name"].(string)
		description, okDesc := record["description"].(string)
		if !okName || !okDesc {
			continue
		}
		url, _ := record["url"].(string)
		out = append(out, Project{Name: name, Description: description, URL: url})
	}
	return out
}

func asHomepageTexts(raw types.JSONText) HomepageTexts {
	defaults := DefaultHomepageTexts()
	record, ok := decodeJSON(raw).(map[string]any)
	if !ok {
		return defaults
	}

	return HomepageTexts{
		SiteTitle:         asString(record["siteTitle"], defaults.SiteTitle),
		HeroBadge:         asString(record["heroBadge"], defaults.HeroBadge),
		PrimaryCtaLabel:   asString(record["primaryCtaLabel"], defaults.PrimaryCtaLabel),
		SecondaryCtaLabel: asString(record["secondaryCtaLabel"], defaults.SecondaryCtaLabel),
		SkillsTitle:       asString(record["skillsTitle"], defaults.SkillsTitle),
		SkillsHint:        asString(record["skillsHint"], defaults.SkillsHint),
		ProjectsTitle:     asString(record["projectsTitle"], defaults.ProjectsTitle),
		PostsTitle:        asString(record["postsTitle"], defaults.PostsTitle),
		ViewAllPostsLabel: asString(record["viewAllPostsLabel"], defaults.ViewAllPostsLabel),
	}
}

func asString(value any, fallback string) string {
	s, ok := value.(string)
	if !ok {
		return fallback
	}
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		return trimmed
	}
	return fallback
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilProjects(p []Project) []Project {
	if p == nil {
		return []Project{}
	}
	return p
}
