package extraction

import (
	"fmt"

	"screening-backend/internal/llm"
)

const jdSystemPrompt = `You are a precise job-description analyst. You extract structured hiring requirements and respond with a single JSON object only.`

const jdUserTemplate = `Analyze the job description below and extract its requirements.

Return a JSON object with exactly these fields:
- "must_have_skills": array of up to 10 skill names that are hard requirements, most important first
- "nice_to_have_skills": array of skills that are preferred but optional
- "years_of_experience": object with numeric "min", "max" and "total" years (use 0 when not stated)
- "domain_keywords": array of 5-8 short keywords describing the business or technical domain
- "role_seniority": one of "Entry", "Junior", "Mid", "Senior", "Lead", "Principal", "Executive"
- "education": required education as a short string, empty if none stated
- "certifications": array of required certifications, empty if none

Job description:
"""
%s
"""`

const resumeSystemPrompt = `You are a precise resume analyst. You extract verifiable signals from resumes and respond with a single JSON object only. Never invent facts that are not in the resume.`

const resumeUserTemplate = `Analyze the resume below and extract its signals.

Return a JSON object with exactly these fields:
- "skills": array of objects {"skill": name, "context": the sentence or phrase where the resume evidences this skill, empty string if bare-listed}
- "experience_duration": object {"total_years": number, "recent_years": number, "positions": array of {"role", "company", "duration", "years"} most recent first}
- "projects": array of {"name", "description", "impact"}
- "measurable_outcomes": array of quoted quantified achievements (numbers, percentages, scale)
- "recency_indicators": object {"has_recent_experience": bool, "most_recent_role_year": integer year, 0 if unknown}
- "domain_experience": array of short domain labels the candidate has worked in
- "education": highest education as a short string
- "certifications": array of certification names

Resume:
"""
%s
"""`

func jdPrompt(jdText string) []llm.Message {
	return []llm.Message{
		{Role: "system", Content: jdSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(jdUserTemplate, jdText)},
	}
}

func resumePrompt(resumeText string) []llm.Message {
	return []llm.Message{
		{Role: "system", Content: resumeSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(resumeUserTemplate, resumeText)},
	}
}
