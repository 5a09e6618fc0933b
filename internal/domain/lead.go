package domain

// Lead is one synthesized outreach target. All fields are plain text; nothing
// beyond non-empty checks is validated at this layer.
type Lead struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Description string `json:"description"`
	Relevance   string `json:"relevance"`
}

// EmailDraft is a composed outreach email, produced once per lead. Drafts are
// ephemeral: they live in memory until exported or sent.
type EmailDraft struct {
	Recipient string
	Subject   string
	Body      string
}
