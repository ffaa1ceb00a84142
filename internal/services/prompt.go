package services

import "fmt"

// resumeSystemInstruction is the fixed system message for the structured
// parser. The six key names must match the resume schema exactly.
const resumeSystemInstruction = "You are a CV/Resume parser. You will receive the text from a CV and your task " +
	"is to extract the following information:" +
	"1. Personal Info" +
	"2. Education" +
	"3. Work Experience" +
	"4. Skills" +
	"5. Projects" +
	"6. Certifications" +
	"You must return only valid JSON with these exact top-level keys:" +
	"personal_info, education, work_experience, skills, projects, certificates." +
	"Do not include any additional commentary. Output must be valid JSON only."

// BuildChatPrompt packages a user's question together with the structured
// fields of every committed candidate for the pass-through chat completion.
func BuildChatPrompt(prompt, candidateData string) string {
	return fmt.Sprintf("Use this prompt %s and an answer from %s", prompt, candidateData)
}
