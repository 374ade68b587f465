// Package compose builds the task-specific instructions sent to the LLM
// capability. Pure, stateless string formatting only.
package compose

import (
	"fmt"
	"strings"
)

// EmailPrompt builds the cold-outreach email drafting prompt.
func EmailPrompt(cvText, profInfo, studentName string) string {
	if studentName == "" {
		studentName = "the applicant"
	}
	return fmt.Sprintf(`You are an elite academic writing coach and strategist. Your specialty is helping aspiring PhD students craft compelling, authentic, and highly personalized emails to professors that get noticed.

Your task is to draft a cold-outreach email from a student to a professor to inquire about PhD opportunities.

CONTEXT & INPUTS:
Student Name: %s

Student's CV/Resume:
--- CV START ---
%s
--- CV END ---

Professor's Information (publications, lab website, bio, etc.):
--- PROFESSOR INFO START ---
%s
--- PROFESSOR INFO END ---

Before writing, follow these steps:
Step A - Synthesize the professor's current research thrust from their most recent papers, projects, or grants.
Step B - Find the single most compelling project, skill, or experience in the CV that bridges to that work. Find a conceptual or methodological link, not a keyword match.
Step C - Formulate one sentence explaining why that experience makes the student uniquely prepared. This is the heart of the email.

The final email must:
- Have a specific subject line: "Inquiry from a Prospective PhD Student: %s" or "Interest in [Specific Research Area] - %s".
- Start with a personalized hook referencing a specific recent paper, talk, or project.
- Connect the student's experience to the professor's work in 1-2 clear sentences.
- Ask one clear question, e.g. whether they are accepting new PhD students this cycle.
- Be concise (250-300 words) and mention that the CV is attached.
- Sound human: no AI boilerplate like "I am writing to express my profound interest".
- End with "Best regards," or "Sincerely," followed by "%s". No other signature elements; those are appended separately.

OUTPUT ONLY THE DRAFTED EMAIL CONTENT (Subject + Body).`, studentName, cvText, profInfo, studentName, studentName, studentName)
}

// SOPPrompt builds the LaTeX Statement of Purpose tailoring prompt.
func SOPPrompt(cvText, profInfo, sopTemplate, studentName string) string {
	if studentName == "" {
		studentName = "the applicant"
	}
	return fmt.Sprintf(`You are an expert academic advisor helping a student update their Statement of Purpose (SOP) LaTeX template to be specifically tailored for a professor and their research. The output MUST be in LaTeX format, preserving the original template's structure; only modify or add content where it personalizes the SOP for the professor.

The student's name is: %s.

Student's CV/Resume:
--- CV START ---
%s
--- CV END ---

Professor's Information:
--- PROFESSOR INFO START ---
%s
--- PROFESSOR INFO END ---

Student's SOP LaTeX Template:
--- SOP TEMPLATE START ---
%s
--- SOP TEMPLATE END ---

Instructions:
1. Analyze the professor's recent work, research interests, and lab focus.
2. Find the sections discussing research interests, future goals, or reasons for choosing the program; customize those.
3. Fill placeholders if present (%%%%STUDENT_NAME%%%%, %%%%PROFESSOR_NAME%%%%, %%%%UNIVERSITY_NAME%%%%, %%%%SPECIFIC_RESEARCH_INTEREST_HERE%%%%, %%%%MENTION_PROFESSOR_WORK_ALIGNMENT%%%%). Replace %%%%STUDENT_NAME%%%% with "%s".
4. Integrate how the student's skills and experiences align directly with this professor's work; be concrete.
5. Keep the tone academic, enthusiastic, and professional.
6. Output the complete, updated SOP in LaTeX, preserving all LaTeX syntax from the template unless a change is strictly necessary.

Begin the output directly with the LaTeX code. Do not add any preamble like "Here is the updated SOP:".`, studentName, cvText, profInfo, sopTemplate, studentName)
}

// MatchPrompt builds the professor-selection prompt over the search corpus.
// The model must pick only professors present in the corpus, never from
// background knowledge.
func MatchPrompt(cvText, university, corpusText string, minProfessors, maxProfessors int) string {
	return fmt.Sprintf(`You are an expert academic research advisor. Using ONLY the faculty information in the search results below, select the %d-%d professors at %s whose research aligns best with the student's CV. Do NOT invent professors from background knowledge; every professor must appear in the search results.

Student's CV:
--- CV START ---
%s
--- CV END ---

University: %s

Search results gathered from faculty pages:
--- SEARCH RESULTS START ---
%s
--- SEARCH RESULTS END ---

Return a JSON object with this exact shape:
{
  "university": "...",
  "professors": [
    {
      "name": "Full Name",
      "title": "Professor",
      "department": "...",
      "research_areas": ["...", "..."],
      "email": null,
      "website": null,
      "google_scholar": null,
      "linkedin": null
    }
  ]
}

Rules:
- Use the field name "name", never "full_name".
- If a title is unknown use "Professor"; if a department is unknown leave it empty.
- Use null for unknown link fields.
- Order professors from best to worst match.
- Output ONLY the JSON object, no other text.`, minProfessors, maxProfessors, university, cvText, university, corpusText)
}

// TimingPrompt builds the LLM-based send-time analysis prompt. Kept for
// the provider-backed scheduling strategy.
func TimingPrompt(profInfo, originZone string, originNow string) string {
	return fmt.Sprintf(`You are an expert in time zone analysis and optimal email sending strategies. Analyze the professor's information and determine the best time to send them an email, considering their local time zone and typical working hours (9 AM to 5 PM) and avoiding weekends.

--- PROFESSOR INFO START ---
%s
--- PROFESSOR INFO END ---

The sender's current time is %s (%s).

Identify the professor's IANA time zone from location clues and return a JSON object with keys: "recipient_timezone", "recipient_current_time", "optimal_time_recipient", "optimal_time_origin". Times in 12-hour format with AM/PM.`, profInfo, originNow, originZone)
}

// AppendSignature appends a signature block after the conventional
// "--" separator. Empty signatures leave the body untouched.
func AppendSignature(body, signature string) string {
	if strings.TrimSpace(signature) == "" {
		return body
	}
	return body + "\n\n--\n" + signature
}

// CleanLaTeX strips markdown code fences the model sometimes wraps
// around LaTeX output.
func CleanLaTeX(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```latex")
	s = strings.TrimPrefix(s, "```tex")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
