package llm

import (
	"fmt"
	"strings"
)

// BuildOutreachPrompt constructs the drafting prompt for one target. The model
// is asked for a JSON array so the output can be validated against a schema.
func BuildOutreachPrompt(req DraftRequest) string {
	count := req.Count
	if count <= 0 {
		count = DefaultDraftCount
	}

	var profileBits []string
	if req.Role != nil && *req.Role != "" {
		profileBits = append(profileBits, "Role: "+*req.Role)
	}
	if req.Company != nil && *req.Company != "" {
		profileBits = append(profileBits, "Company: "+*req.Company)
	}
	if req.ProfileSummary != nil && *req.ProfileSummary != "" {
		profileBits = append(profileBits, "Profile summary: "+*req.ProfileSummary)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are assisting a human sales consultant. Draft %d concise LinkedIn outreach messages. Each should:\n", count)
	sb.WriteString("- be professional and friendly, not pushy\n")
	sb.WriteString("- mention specifics from the profile\n")
	sb.WriteString("- invite a short intro call\n")
	sb.WriteString("- avoid sounding automated\n\n")

	sb.WriteString("Offer context:\n")
	sb.WriteString(req.OfferContext)
	sb.WriteString("\n\nProspect:\nName: ")
	sb.WriteString(req.Name)
	sb.WriteString("\n")
	if len(profileBits) > 0 {
		sb.WriteString(strings.Join(profileBits, "\n"))
		sb.WriteString("\n")
	}

	sb.WriteString("\nReturn ONLY a valid JSON array matching this exact structure:\n")
	sb.WriteString(`[{"variant": "V1", "content": "message body"}, {"variant": "V2", "content": "message body"}]` + "\n\n")
	sb.WriteString("IMPORTANT:\n")
	fmt.Fprintf(&sb, "- Produce exactly %d entries, variants labeled V1..V%d.\n", count, count)
	sb.WriteString("- The content is the message body only: no labels, numbering, or conversational filler.\n")
	sb.WriteString("- Return ONLY the JSON array, no markdown, no explanation, no code blocks.\n")

	return sb.String()
}
