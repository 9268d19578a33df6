package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeAnalysisPrompt asks for the five labelled sections that
// analysis.Parse reads back, with the résumé text appended last.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(resumeText string) string {
	return fmt.Sprintf(`Analyze the following resume and provide:

Professional Domain:

Identify the primary professional domain/field of the candidate (one word or short phrase only).

Key Skills:

List EXACTLY 4 key skills the candidate possesses based on the resume.
* Format as a bulleted list with asterisks (*)
* Use ONLY single words or very short technical terms (e.g., "Python", "Project Management", "SEO")
* DO NOT include descriptions or explanations

Missing Skills:

List EXACTLY 3 important skills that are typically expected in this domain but missing from the resume.
* Format as a bulleted list with asterisks (*)
* Use ONLY single words or very short technical terms (e.g., "Docker", "React", "Data Analysis")
* DO NOT include descriptions or explanations

Resume Score:

Rate the resume on a scale of 1-10 based on its completeness, relevance to the identified domain, and overall quality.

Resume Overview:

Write a concise 2-3 sentence summary of the candidate's profile, highlighting their experience level, key strengths, and potential fit for roles in their domain. Keep it professional and constructive.

Format your response EXACTLY as shown in this example:

Professional Domain:

Data Science

Key Skills:

* Python
* MySQL
* Machine Learning
* Tableau

Missing Skills:

* Cloud
* Deep Learning
* Big Data

Resume Score:

7

Resume Overview:

This resume belongs to a mid-level Data Science professional with strong technical skills in Python and Machine Learning. The candidate demonstrates proficiency in data visualization using Tableau and database management with MySQL. While the resume shows solid foundational skills, it could be enhanced by adding experience with Cloud technologies and Big Data tools to become more competitive in the Data Science field.

Resume Content:
%s`, resumeText)
}
