package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"hack2hire/domain"
)

var knownSkills = []string{
	"Python", "Java", "React", "Node.js", "SQL", "FastAPI", "Docker", "AWS",
	"Machine Learning", "CSS", "HTML", "TypeScript", "JavaScript", "C++", "Go",
	"Rust", "Kubernetes", "Git",
}

var skillPatterns = compileSkillPatterns(knownSkills)

var (
	yearsPattern    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\b`)
	projectsHeading = regexp.MustCompile(`(?i)^\s*(?:personal\s+|key\s+|selected\s+)?projects\s*:?\s*$`)
	bulletLine      = regexp.MustCompile(`^\s*(?:[-*•▪●]|\d+[.)])\s+(.+)$`)
)

// compileSkillPatterns matches skills as whole words. Skills ending in a
// non-word character (C++) cannot use a trailing \b.
func compileSkillPatterns(skills []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(skills))
	for i, skill := range skills {
		quoted := regexp.QuoteMeta(skill)
		patterns[i] = regexp.MustCompile(`(?i)(?:^|\W)` + quoted + `(?:\W|$)`)
	}
	return patterns
}

// ParseResume derives a ResumeSummary from extracted resume text. Empty text
// yields an empty summary.
func ParseResume(text string) domain.ResumeSummary {
	return domain.ResumeSummary{
		RawText:         text,
		Skills:          extractSkills(text),
		ExperienceYears: estimateExperience(text),
		Projects:        extractProjects(text),
	}
}

func extractSkills(text string) []string {
	skills := []string{}
	for i, re := range skillPatterns {
		if re.MatchString(text) {
			skills = append(skills, knownSkills[i])
		}
	}
	return skills
}

// estimateExperience returns the largest "N years" mention.
func estimateExperience(text string) float64 {
	var best float64
	for _, m := range yearsPattern.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || v > 60 {
			continue
		}
		if v > best {
			best = v
		}
	}
	return best
}

// extractProjects collects bullet lines under a "Projects" heading until the
// next non-bullet, non-blank line.
func extractProjects(text string) []string {
	projects := []string{}
	inSection := false
	for _, line := range strings.Split(text, "\n") {
		if projectsHeading.MatchString(line) {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := bulletLine.FindStringSubmatch(line)
		if m == nil {
			inSection = false
			continue
		}
		projects = append(projects, strings.TrimSpace(m[1]))
	}
	return projects
}
