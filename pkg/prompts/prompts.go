// Package prompts builds the natural-language prompts the CRM agents send
// to their LLM providers. Each builder interpolates contact or deal fields
// into a fixed template; system messages are constants.
package prompts

import (
	"fmt"
	"strings"

	"github.com/smartcrm/engine/pkg/models"
)

// System messages per agent persona.
const (
	ColdEmailSystem = `You are an expert SDR writing short, personalized cold outreach emails.
Keep the email under 120 words, reference the prospect's role and company,
and end with one low-friction call to action.
Respond ONLY with a JSON object like: {"subject": "...", "body": "..."}`

	FollowUpSystem = `You are an SDR writing follow-up emails in an ongoing outreach sequence.
Match the tone to the step you are given and never repeat earlier emails verbatim.
Respond ONLY with a JSON object like: {"subject": "...", "body": "..."}`

	ReactivationSystem = `You are an SDR re-engaging a contact who has gone quiet.
Acknowledge the silence without guilt-tripping and offer one concrete reason to reconnect.
Respond ONLY with a JSON object like: {"subject": "...", "body": "..."}`

	NegotiationCoachSystem = `You are an experienced AE coaching a colleague through a live negotiation.
Ground every suggestion in the deal facts provided.
Respond ONLY with a JSON object like:
{"assessment": "...", "tactics": ["..."], "risks": ["..."], "suggested_response": "..."}`

	VideoScriptSystem = `You write 60-second personalized sales video scripts.
Use a conversational spoken register, no camera directions.
Respond ONLY with a JSON object like: {"hook": "...", "script": "...", "call_to_action": "..."}`

	SummarizerSystem = `You summarize business documents for sales teams.
Respond ONLY with a JSON object like:
{"summary": "...", "key_points": ["..."], "action_items": ["..."]}`

	EnrichmentSystem = `You are a B2B research assistant enriching CRM records.
Infer only what the provided fields support; use null for anything unknown.
Respond ONLY with a JSON object like:
{"industry": "...", "company_size": "...", "persona": "...", "talking_points": ["..."]}`
)

// writeContactSection appends the shared contact block used by most prompts.
func writeContactSection(sb *strings.Builder, contact *models.Contact) {
	sb.WriteString("## Contact\n\n")
	sb.WriteString(fmt.Sprintf("- Name: %s\n", contact.FullName()))
	sb.WriteString(fmt.Sprintf("- Email: %s\n", contact.Email))
	if contact.Company != "" {
		sb.WriteString(fmt.Sprintf("- Company: %s\n", contact.Company))
	}
	if contact.Title != "" {
		sb.WriteString(fmt.Sprintf("- Title: %s\n", contact.Title))
	}
	if contact.InterestLevel != "" {
		sb.WriteString(fmt.Sprintf("- Interest level: %s\n", contact.InterestLevel))
	}
	sb.WriteString(fmt.Sprintf("- Engagement score: %d\n", contact.EngagementScore))
	if contact.Notes != "" {
		sb.WriteString(fmt.Sprintf("- Notes: %s\n", contact.Notes))
	}
	sb.WriteString("\n")
}

// writeActivitySection appends recent interactions, newest first.
func writeActivitySection(sb *strings.Builder, activities []*models.Activity) {
	if len(activities) == 0 {
		return
	}
	sb.WriteString("## Recent activity\n\n")
	for _, a := range activities {
		sb.WriteString(fmt.Sprintf("- [%s] %s: %s\n",
			a.CreatedAt.Format("2006-01-02"), a.Type, a.Description))
	}
	sb.WriteString("\n")
}

// BuildColdEmail builds the cold outreach prompt.
func BuildColdEmail(contact *models.Contact, activities []*models.Activity) string {
	var sb strings.Builder
	sb.WriteString("Write a cold outreach email for the contact below.\n\n")
	writeContactSection(&sb, contact)
	writeActivitySection(&sb, activities)
	return sb.String()
}

// followUpStepDirective selects the directive for a sequence step number.
// Steps past the defined bands reuse the final breakup directive.
func followUpStepDirective(step int) string {
	switch {
	case step <= 1:
		return "This is the first follow-up. Gently bump the original email and add one new piece of value."
	case step == 2:
		return "This is the second follow-up. Share a short, relevant proof point or customer example."
	case step == 3:
		return "This is the third follow-up. Ask a direct question that is easy to answer with one line."
	default:
		return "This is the final follow-up. Write a polite breakup email that leaves the door open."
	}
}

// BuildFollowUp builds the follow-up prompt for a sequence step.
func BuildFollowUp(contact *models.Contact, activities []*models.Activity, step int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Write follow-up email number %d for the contact below.\n", step))
	sb.WriteString(followUpStepDirective(step))
	sb.WriteString("\n\n")
	writeContactSection(&sb, contact)
	writeActivitySection(&sb, activities)
	return sb.String()
}

// reactivationTone varies the register by how long the contact has been
// inactive. daysInactive < 0 means no activity was ever recorded.
func reactivationTone(daysInactive int) string {
	switch {
	case daysInactive >= 0 && daysInactive < 60:
		return "They went quiet recently. Keep it light and assume they were simply busy."
	case daysInactive < 180:
		return "It has been a few months. Re-introduce yourself briefly and lead with what changed since you last spoke."
	default:
		return "It has been a long time. Treat this as a fresh start and do not reference old threads in detail."
	}
}

// BuildReactivation builds the re-engagement prompt.
func BuildReactivation(contact *models.Contact, daysInactive int) string {
	var sb strings.Builder
	sb.WriteString("Write a re-engagement email for the contact below.\n")
	if daysInactive >= 0 {
		sb.WriteString(fmt.Sprintf("They have been inactive for %d days. ", daysInactive))
	}
	sb.WriteString(reactivationTone(daysInactive))
	sb.WriteString("\n\n")
	writeContactSection(&sb, contact)
	return sb.String()
}

// BuildNegotiationCoach builds the deal coaching prompt.
func BuildNegotiationCoach(deal *models.Deal, contact *models.Contact, situation string) string {
	var sb strings.Builder
	sb.WriteString("Coach me through the negotiation below.\n\n")
	sb.WriteString("## Deal\n\n")
	sb.WriteString(fmt.Sprintf("- Title: %s\n", deal.Title))
	sb.WriteString(fmt.Sprintf("- Stage: %s\n", deal.Stage))
	sb.WriteString(fmt.Sprintf("- Value: %.2f\n", deal.Value))
	sb.WriteString(fmt.Sprintf("- Win probability: %d%%\n", deal.Probability))
	if deal.CloseDate != nil {
		sb.WriteString(fmt.Sprintf("- Target close: %s\n", deal.CloseDate.Format("2006-01-02")))
	}
	sb.WriteString("\n")
	writeContactSection(&sb, contact)
	if situation != "" {
		sb.WriteString("## Situation\n\n")
		sb.WriteString(situation)
		sb.WriteString("\n")
	}
	return sb.String()
}

// BuildVideoScript builds the personalized video script prompt.
func BuildVideoScript(contact *models.Contact, topic string) string {
	var sb strings.Builder
	sb.WriteString("Write a personalized sales video script for the contact below.\n")
	if topic != "" {
		sb.WriteString(fmt.Sprintf("The video is about: %s\n", topic))
	}
	sb.WriteString("\n")
	writeContactSection(&sb, contact)
	return sb.String()
}

// BuildDocumentSummary builds the summarization prompt.
func BuildDocumentSummary(text string) string {
	var sb strings.Builder
	sb.WriteString("Summarize the following document.\n\n")
	sb.WriteString("## Document\n\n")
	sb.WriteString(text)
	sb.WriteString("\n")
	return sb.String()
}

// BuildEnrichment builds the research prompt for the enrichment agent.
func BuildEnrichment(contact *models.Contact) string {
	var sb strings.Builder
	sb.WriteString("Enrich the CRM record for the contact below.\n\n")
	writeContactSection(&sb, contact)
	return sb.String()
}
